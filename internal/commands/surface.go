// Package commands exposes session operations to outer surfaces such as the
// CLI: list sessions, switch or revert a model, and read the catalog.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oh-my-claude/menubar/internal/actions"
	"github.com/oh-my-claude/menubar/internal/models"
)

var (
	// ErrUnknownModel is returned when a provider/model pair is not in the catalog.
	ErrUnknownModel = errors.New("unknown provider or model")

	ErrSessionNotFound  = errors.New("session not found")
	ErrAmbiguousSession = errors.New("ambiguous session id")
)

// Lister produces the current session views.
type Lister interface {
	List(ctx context.Context) []models.SessionView
}

// Executor carries out a switch or revert synchronously.
type Executor interface {
	Execute(ctx context.Context, action actions.Action) (*models.SwitchResponse, error)
}

// Surface is a thin facade over the aggregator, router and catalog.
type Surface struct {
	lister   Lister
	executor Executor
	catalog  models.Catalog
}

// NewSurface creates a command surface.
func NewSurface(lister Lister, executor Executor, catalog models.Catalog) *Surface {
	return &Surface{
		lister:   lister,
		executor: executor,
		catalog:  catalog.Clone(),
	}
}

// ListSessions returns one view per live session.
func (s *Surface) ListSessions(ctx context.Context) []models.SessionView {
	return s.lister.List(ctx)
}

// CheckModel reports whether provider/model is offered by the catalog.
func (s *Surface) CheckModel(provider, model string) error {
	if _, ok := s.catalog.Lookup(provider, model); !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownModel, provider, model)
	}
	return nil
}

// SwitchModel routes a session to provider/model. The pair is forwarded
// as is; the proxy decides whether it can serve it.
func (s *Surface) SwitchModel(ctx context.Context, controlPort int, sessionID, provider, model string) (*models.SwitchResponse, error) {
	return s.executor.Execute(ctx, actions.Action{
		Kind:        actions.KindSwitch,
		ControlPort: controlPort,
		SessionID:   sessionID,
		Provider:    provider,
		Model:       model,
	})
}

// RevertModel routes a session back to its default upstream.
func (s *Surface) RevertModel(ctx context.Context, controlPort int, sessionID string) (*models.SwitchResponse, error) {
	return s.executor.Execute(ctx, actions.Action{
		Kind:        actions.KindRevert,
		ControlPort: controlPort,
		SessionID:   sessionID,
	})
}

// Providers returns a copy of the provider catalog.
func (s *Surface) Providers() models.Catalog {
	return s.catalog.Clone()
}

// FindSession returns the live session whose id equals or starts with
// prefix. A prefix matching more than one session is an error.
func (s *Surface) FindSession(ctx context.Context, prefix string) (*models.SessionView, error) {
	var found []models.SessionView
	for _, v := range s.ListSessions(ctx) {
		if v.SessionID == prefix {
			return &v, nil
		}
		if prefix != "" && strings.HasPrefix(v.SessionID, prefix) {
			found = append(found, v)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, prefix)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d sessions", ErrAmbiguousSession, prefix, len(found))
	}
}
