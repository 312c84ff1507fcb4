package registry

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxy-sessions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func onlyAlive(pids ...int) Prober {
	set := make(map[int]bool, len(pids))
	for _, p := range pids {
		set[p] = true
	}
	return func(pid int) bool { return set[pid] }
}

func TestReadFiltersDeadPIDs(t *testing.T) {
	path := writeRegistry(t, `[
		{"sessionId":"aaa","port":8001,"controlPort":9001,"pid":100,"startedAt":1700000000000,"cwd":"/home/u/one"},
		{"sessionId":"bbb","port":8002,"controlPort":9002,"pid":200,"startedAt":1700000000001},
		{"sessionId":"ccc","port":8003,"controlPort":9003,"pid":300,"startedAt":1700000000002}
	]`)

	entries := New(path, WithProber(onlyAlive(100, 300))).Read()

	require.Len(t, entries, 2)
	assert.Equal(t, "aaa", entries[0].SessionID)
	assert.Equal(t, 9001, entries[0].ControlPort)
	assert.Equal(t, "/home/u/one", entries[0].Cwd)
	assert.Equal(t, int64(1700000000000), entries[0].StartedAt)
	assert.Equal(t, "ccc", entries[1].SessionID)
	assert.Empty(t, entries[1].Cwd)
}

func TestReadMissingFileIsEmpty(t *testing.T) {
	entries := New(filepath.Join(t.TempDir(), "nope.json")).Read()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestReadMalformedFileIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `[{"sessionId":"aaa",`},
		{name: "object instead of array", content: `{"sessionId":"aaa"}`},
		{name: "wrong field type", content: `[{"sessionId":"aaa","pid":"not-a-number"}]`},
		{name: "empty", content: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRegistry(t, tt.content)
			entries := New(path, WithProber(func(int) bool { return true })).Read()
			assert.Empty(t, entries)
		})
	}
}

func TestReadSkipsEntriesWithoutSessionID(t *testing.T) {
	path := writeRegistry(t, `[{"sessionId":"","controlPort":9001,"pid":1},{"sessionId":"ok","controlPort":9002,"pid":1}]`)
	entries := New(path, WithProber(func(int) bool { return true })).Read()
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].SessionID)
}

func TestReadUsesRealProber(t *testing.T) {
	path := writeRegistry(t, `[
		{"sessionId":"self","controlPort":9001,"pid":`+strconv.Itoa(os.Getpid())+`},
		{"sessionId":"zero","controlPort":9002,"pid":0},
		{"sessionId":"negative","controlPort":9003,"pid":-5}
	]`)

	entries := New(path).Read()
	require.Len(t, entries, 1)
	assert.Equal(t, "self", entries[0].SessionID)
}

func TestProcessAlive(t *testing.T) {
	assert.True(t, ProcessAlive(os.Getpid()))
	assert.False(t, ProcessAlive(0))
	assert.False(t, ProcessAlive(-1))
}
