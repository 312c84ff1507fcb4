package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oh-my-claude/menubar/internal/actions"
	"github.com/oh-my-claude/menubar/internal/control"
	"github.com/oh-my-claude/menubar/internal/models"
	"github.com/oh-my-claude/menubar/internal/registry"
	"github.com/oh-my-claude/menubar/internal/sessions"
	"github.com/oh-my-claude/menubar/internal/testutil"
)

type fixedLister []models.SessionView

func (l fixedLister) List(context.Context) []models.SessionView { return l }

type recordingExecutor struct {
	actions []actions.Action
}

func (e *recordingExecutor) Execute(_ context.Context, a actions.Action) (*models.SwitchResponse, error) {
	e.actions = append(e.actions, a)
	return &models.SwitchResponse{Switched: a.Kind == actions.KindSwitch, SessionID: a.SessionID}, nil
}

func TestCheckModel(t *testing.T) {
	s := NewSurface(fixedLister(nil), &recordingExecutor{}, models.DefaultCatalog())

	assert.NoError(t, s.CheckModel("deepseek", "deepseek-chat"))
	assert.ErrorIs(t, s.CheckModel("nobody", "nothing"), ErrUnknownModel)
	assert.ErrorIs(t, s.CheckModel("deepseek", "K2.5"), ErrUnknownModel)
}

func TestSwitchModelForwardsUncataloguedPair(t *testing.T) {
	exec := &recordingExecutor{}
	s := NewSurface(fixedLister(nil), exec, models.DefaultCatalog())

	_, err := s.SwitchModel(context.Background(), 9000, "abc", "custom", "custom-large")
	require.NoError(t, err)
	assert.Equal(t, []actions.Action{{
		Kind: actions.KindSwitch, ControlPort: 9000, SessionID: "abc", Provider: "custom", Model: "custom-large",
	}}, exec.actions)
}

func TestSwitchModel(t *testing.T) {
	exec := &recordingExecutor{}
	s := NewSurface(fixedLister(nil), exec, models.DefaultCatalog())

	resp, err := s.SwitchModel(context.Background(), 9000, "abc", "deepseek", "deepseek-chat")
	require.NoError(t, err)
	assert.True(t, resp.Switched)
	require.Len(t, exec.actions, 1)
	assert.Equal(t, actions.Action{
		Kind: actions.KindSwitch, ControlPort: 9000, SessionID: "abc", Provider: "deepseek", Model: "deepseek-chat",
	}, exec.actions[0])
}

func TestRevertModel(t *testing.T) {
	exec := &recordingExecutor{}
	s := NewSurface(fixedLister(nil), exec, models.DefaultCatalog())

	_, err := s.RevertModel(context.Background(), 9000, "abc")
	require.NoError(t, err)
	assert.Equal(t, []actions.Action{{Kind: actions.KindRevert, ControlPort: 9000, SessionID: "abc"}}, exec.actions)
}

func TestProvidersReturnsCopy(t *testing.T) {
	s := NewSurface(fixedLister(nil), &recordingExecutor{}, models.DefaultCatalog())
	p := s.Providers()
	p[0].Name = "changed"
	assert.NotEqual(t, "changed", s.Providers()[0].Name)
}

func TestFindSession(t *testing.T) {
	s := NewSurface(fixedLister{
		{SessionID: "abcdef1234"},
		{SessionID: "abc999"},
		{SessionID: "zzz"},
	}, &recordingExecutor{}, nil)

	v, err := s.FindSession(context.Background(), "abcdef")
	require.NoError(t, err)
	assert.Equal(t, "abcdef1234", v.SessionID)

	v, err = s.FindSession(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, "zzz", v.SessionID)

	_, err = s.FindSession(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrAmbiguousSession)

	_, err = s.FindSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSurfaceEndToEnd(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	reg := testutil.WriteRegistry(t, []models.RegistryEntry{
		{SessionID: "abcdef1234567890", ControlPort: proxy.Port(), PID: 1, Cwd: "/work/menubar"},
	})

	client := control.New()
	agg := sessions.NewAggregator(registry.New(reg, registry.WithProber(func(int) bool { return true })), client)
	s := NewSurface(agg, actions.NewRouter(client), models.DefaultCatalog())

	list := s.ListSessions(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "menubar", list[0].ProjectName)
	assert.True(t, list[0].Healthy)
	assert.False(t, list[0].Switched)

	_, err := s.SwitchModel(context.Background(), proxy.Port(), "abcdef1234567890", "kimi", "K2.5")
	require.NoError(t, err)

	list = s.ListSessions(context.Background())
	require.Len(t, list, 1)
	assert.True(t, list[0].Switched)
	assert.Equal(t, "kimi", list[0].Provider)
	assert.Equal(t, "K2.5", list[0].Model)

	_, err = s.RevertModel(context.Background(), proxy.Port(), "abcdef1234567890")
	require.NoError(t, err)
	assert.False(t, s.ListSessions(context.Background())[0].Switched)
}
