package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oh-my-claude/menubar/internal/commands"
	"github.com/oh-my-claude/menubar/internal/models"
	"github.com/oh-my-claude/menubar/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// setup writes a registry with one live session on proxy and a settings
// file pointing at it.
func setup(t *testing.T, proxy *testutil.FakeProxy) string {
	t.Helper()
	reg := testutil.WriteRegistry(t, []models.RegistryEntry{{
		SessionID:   "abcdef1234567890",
		Port:        8001,
		ControlPort: proxy.Port(),
		PID:         os.Getpid(),
		StartedAt:   1700000000000,
		Cwd:         "/work/menubar",
	}})

	settings := filepath.Join(t.TempDir(), "menubar.yaml")
	content := fmt.Sprintf("registry_path: %s\nrequest_timeout: 2s\n", reg)
	require.NoError(t, os.WriteFile(settings, []byte(content), 0o644))
	return settings
}

func TestSessionsJSON(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	out, err := runCLI(t, "--settings", settings, "sessions", "--json")
	require.NoError(t, err)

	var views []models.SessionView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "abcdef1234567890", views[0].SessionID)
	assert.Equal(t, "menubar", views[0].ProjectName)
	assert.True(t, views[0].Healthy)
}

func TestSessionsDefaultsToJSONWhenPiped(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	out, err := runCLI(t, "--settings", settings, "sessions")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestSessionsTable(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)
	proxy.SetStatus("abcdef1234567890", models.StatusResponse{Switched: true, Provider: "kimi", Model: "K2.5"})

	out, err := runCLI(t, "--settings", settings, "sessions", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "kimi/K2.5")
	assert.Contains(t, out, "menubar")
}

func TestSwitchByPrefix(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	out, err := runCLI(t, "--settings", settings, "switch", "abcdef", "deepseek", "deepseek-chat")
	require.NoError(t, err)
	assert.Contains(t, out, "switched")

	calls := proxy.CallsTo("/switch")
	require.Len(t, calls, 1)
	assert.Equal(t, "abcdef1234567890", calls[0].Session)
	assert.Equal(t, models.SwitchRequest{Provider: "deepseek", Model: "deepseek-chat"}, calls[0].Body)
}

func TestSwitchUnknownModel(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	_, err := runCLI(t, "--settings", settings, "switch", "abcdef", "nobody", "nothing")
	require.ErrorIs(t, err, commands.ErrUnknownModel)
	assert.Empty(t, proxy.CallsTo("/switch"))
}

func TestSwitchUnknownModelWithForce(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	out, err := runCLI(t, "--settings", settings, "switch", "abcdef", "custom", "custom-large", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "unknown provider or model")

	calls := proxy.CallsTo("/switch")
	require.Len(t, calls, 1)
	assert.Equal(t, models.SwitchRequest{Provider: "custom", Model: "custom-large"}, calls[0].Body)
}

func TestSwitchUnknownSession(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	_, err := runCLI(t, "--settings", settings, "switch", "zzz", "kimi", "K2.5")
	assert.ErrorIs(t, err, commands.ErrSessionNotFound)
}

func TestRevertWithExplicitPort(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)

	out, err := runCLI(t, "--settings", settings, "revert", "other-session", "--port", fmt.Sprint(proxy.Port()))
	require.NoError(t, err)
	assert.Contains(t, out, "reverted")

	calls := proxy.CallsTo("/revert")
	require.Len(t, calls, 1)
	assert.Equal(t, "other-session", calls[0].Session)
}

func TestRevertFailure(t *testing.T) {
	proxy := testutil.NewFakeProxy(t)
	settings := setup(t, proxy)
	proxy.FailSwitch(true)

	_, err := runCLI(t, "--settings", settings, "revert", "abcdef")
	assert.ErrorContains(t, err, "failed to revert session")
}

func TestProvidersJSON(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "menubar.yaml")

	out, err := runCLI(t, "--settings", settings, "providers", "--json")
	require.NoError(t, err)

	var catalog models.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Equal(t, models.DefaultCatalog(), catalog)
}

func TestProvidersText(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "menubar.yaml")

	out, err := runCLI(t, "--settings", settings, "providers", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "deepseek")
	assert.Contains(t, out, "deepseek-chat")
}

func TestConfigInitAndShow(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "nested", "menubar.yaml")

	_, err := runCLI(t, "--settings", settings, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, settings)

	_, err = runCLI(t, "--settings", settings, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runCLI(t, "--settings", settings, "config", "init", "--force")
	require.NoError(t, err)

	out, err := runCLI(t, "--settings", settings, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "poll_interval: 2s")
	assert.Contains(t, out, "max_concurrency: 8")
}

func TestConfigInitDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := runCLI(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".claude", "oh-my-claude", "menubar.yaml")
	assert.FileExists(t, path)
	assert.Contains(t, out, path)
}

func TestConfigPath(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "menubar.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("registry_path: /tmp/reg.json\n"), 0o644))

	out, err := runCLI(t, "--settings", settings, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, settings)
	assert.Contains(t, out, "/tmp/reg.json")
}

func TestMalformedSettingsFail(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "menubar.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("poll_interval: [\n"), 0o644))

	_, err := runCLI(t, "--settings", settings, "sessions")
	assert.ErrorContains(t, err, "failed to load settings")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "omcbar")
	assert.Contains(t, out, "dev")
}
