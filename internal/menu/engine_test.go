package menu

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oh-my-claude/menubar/internal/models"
)

// recordingHost keeps every menu it was asked to install.
type recordingHost struct {
	mu    sync.Mutex
	menus []*Menu
	err   error
}

func (h *recordingHost) SetMenu(m *Menu) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.menus = append(h.menus, m)
	return nil
}

func (h *recordingHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.menus)
}

func (h *recordingHost) last() *Menu {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menus[len(h.menus)-1]
}

func smallCatalog() models.Catalog {
	return models.Catalog{
		{Name: "deepseek", Models: []models.ModelInfo{
			{ID: "deepseek-reasoner", Label: "DeepSeek Reasoner"},
			{ID: "deepseek-chat", Label: "DeepSeek Chat"},
		}},
		{Name: "kimi", Models: []models.ModelInfo{{ID: "K2.5", Label: "Kimi K2.5"}}},
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	res, err := engine.Reconcile(sampleViews())
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, res)

	res, err = engine.Reconcile(sampleViews())
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
	assert.Equal(t, 1, host.count())

	changed := sampleViews()
	changed[1].Switched = true
	changed[1].Provider = "kimi"
	changed[1].Model = "K2.5"
	res, err = engine.Reconcile(changed)
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, res)
	assert.Equal(t, 2, host.count())
}

func TestReconcileFirstCallAlwaysBuildsEvenWithoutSessions(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	res, err := engine.Reconcile(nil)
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, res)

	m := host.last()
	require.Len(t, m.Items, 3)
	assert.Equal(t, HeaderTitle, m.Items[0].Title)
	assert.False(t, m.Items[0].Enabled)
	assert.Equal(t, NoSessionsTitle, m.Items[1].Title)
	assert.False(t, m.Items[1].Enabled)
	assert.Equal(t, QuitTitle, m.Items[2].Title)
	assert.True(t, m.Items[2].Enabled)
	assert.Equal(t, TagQuit, StripSuffix(m.Items[2].ID))

	res, err = engine.Reconcile([]models.SessionView{})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
}

func TestReconcileBuildsSessionGroups(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	views := []models.SessionView{
		{SessionID: "abcdef1234567890", ControlPort: 9000, ProjectName: "myproj", Healthy: true, Switched: true, Provider: "deepseek", Model: "deepseek-chat"},
		{SessionID: "bbbbbbbbbbbb", ControlPort: 9001, ProjectName: "other", Healthy: true},
	}
	_, err := engine.Reconcile(views)
	require.NoError(t, err)

	m := host.last()
	require.Len(t, m.Items, 4)
	assert.Equal(t, "oh-my-claude - 2 sessions, 1 switched", m.Tooltip)

	switched := m.Items[1]
	assert.Equal(t, "abcdef12 - deepseek/deepseek-chat", switched.Title)
	assert.Equal(t, "myproj", switched.Tooltip)
	require.Len(t, switched.Children, 4)

	var actions []string
	for _, c := range switched.Children {
		actions = append(actions, StripSuffix(c.ID))
	}
	assert.Equal(t, []string{
		"switch:9000:abcdef1234567890:deepseek:deepseek-reasoner",
		"switch:9000:abcdef1234567890:deepseek:deepseek-chat",
		"switch:9000:abcdef1234567890:kimi:K2.5",
		"revert:9000:abcdef1234567890",
	}, actions)
	assert.Equal(t, "deepseek / DeepSeek Chat", switched.Children[1].Title)
	assert.Equal(t, RevertTitle, switched.Children[3].Title)

	native := m.Items[2]
	assert.Equal(t, "bbbbbbbb - "+NativeModel, native.Title)
	require.Len(t, native.Children, 3)
	for _, c := range native.Children {
		assert.True(t, strings.HasPrefix(c.ID, "switch:9001:bbbbbbbbbbbb:"))
	}
}

func TestReconcileMarksOfflineSessions(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	_, err := engine.Reconcile([]models.SessionView{
		{SessionID: "deadbeef00", ControlPort: 9000, Healthy: false, Switched: true, Provider: "kimi", Model: "K2.5"},
	})
	require.NoError(t, err)

	group := host.last().Items[1]
	assert.Equal(t, "deadbeef - "+NativeModel+OfflineSuffix, group.Title)
	for _, c := range group.Children {
		assert.NotEqual(t, TagRevert, strings.SplitN(c.ID, ":", 2)[0])
	}
}

func TestReconcileIgnoresPureReordering(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	views := sampleViews()
	_, err := engine.Reconcile(views)
	require.NoError(t, err)

	res, err := engine.Reconcile([]models.SessionView{views[1], views[0]})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, res)
	assert.Equal(t, 1, host.count())
}

func TestReconcileHostErrorIsRetried(t *testing.T) {
	host := &recordingHost{err: errors.New("tray not ready")}
	engine := NewEngine(host, smallCatalog())

	res, err := engine.Reconcile(sampleViews())
	require.Error(t, err)
	assert.Equal(t, Unchanged, res)

	host.err = nil
	res, err = engine.Reconcile(sampleViews())
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, res)
}

func TestIdentifiersUniqueAcrossRebuilds(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, models.DefaultCatalog())

	for i := 0; i < 5; i++ {
		views := sampleViews()
		views[0].Switched = i%2 == 0
		_, err := engine.Reconcile(views)
		require.NoError(t, err)
	}
	require.Equal(t, 5, host.count())

	seen := make(map[string]bool)
	for _, m := range host.menus {
		for _, id := range m.IDs() {
			require.False(t, seen[id], "identifier %s reused", id)
			seen[id] = true
		}
	}
}

func TestReconcileConcurrentCallsInstallOnce(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, smallCatalog())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = engine.Reconcile(sampleViews())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, host.count())
}

func TestEngineCopiesCatalog(t *testing.T) {
	catalog := smallCatalog()
	engine := NewEngine(&recordingHost{}, catalog)
	catalog[0].Name = "mutated"
	assert.Equal(t, "deepseek", engine.Catalog()[0].Name)
}

func TestRender(t *testing.T) {
	host := &recordingHost{}
	engine := NewEngine(host, models.Catalog{{Name: "kimi", Models: []models.ModelInfo{{ID: "K2.5", Label: "Kimi K2.5"}}}})
	_, err := engine.Reconcile([]models.SessionView{{SessionID: "abc", ControlPort: 9000, Healthy: true}})
	require.NoError(t, err)

	want := "- [oh-my-claude]\n" +
		"▸ abc - Claude (native)\n" +
		"  - kimi / Kimi K2.5\n" +
		"- Quit\n"
	assert.Equal(t, want, Render(host.last()))
}

func TestHostFunc(t *testing.T) {
	var got *Menu
	host := HostFunc(func(m *Menu) error {
		got = m
		return nil
	})
	_, err := NewEngine(host, nil).Reconcile(nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.IDs(), 3)
}
