package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionViewNormalizeDropsClaimsWhenUnhealthy(t *testing.T) {
	v := SessionView{SessionID: "abc", Switched: true, Provider: "deepseek", Model: "deepseek-chat"}
	v.Normalize()
	assert.False(t, v.Switched)
	assert.Empty(t, v.Provider)
	assert.Empty(t, v.Model)

	healthy := SessionView{SessionID: "abc", Healthy: true, Switched: true, Provider: "kimi", Model: "K2.5"}
	healthy.Normalize()
	assert.True(t, healthy.Switched)
	assert.Equal(t, "kimi", healthy.Provider)
}

func TestSessionViewCurrentModel(t *testing.T) {
	assert.Equal(t, "native", SessionView{}.CurrentModel("native"))
	assert.Equal(t, "deepseek/deepseek-chat",
		SessionView{Switched: true, Provider: "deepseek", Model: "deepseek-chat"}.CurrentModel("native"))
	assert.Equal(t, "?/?", SessionView{Switched: true}.CurrentModel("native"))
}

func TestSessionViewShortID(t *testing.T) {
	assert.Equal(t, "abcdef12", SessionView{SessionID: "abcdef1234567890"}.ShortID())
	assert.Equal(t, "abc", SessionView{SessionID: "abc"}.ShortID())
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	m, ok := catalog.Lookup("deepseek", "deepseek-chat")
	assert.True(t, ok)
	assert.Equal(t, "DeepSeek Chat", m.Label)

	_, ok = catalog.Lookup("deepseek", "GLM-5")
	assert.False(t, ok)
}

func TestCatalogCloneIsIndependent(t *testing.T) {
	catalog := DefaultCatalog()
	clone := catalog.Clone()
	clone[0].Models[0].Label = "changed"
	assert.Equal(t, "DeepSeek Reasoner", catalog[0].Models[0].Label)
}

func TestSettingsApplyDefaults(t *testing.T) {
	s := &Settings{MaxConcurrency: -1, LogLevel: "debug"}
	s.ApplyDefaults()

	d := NewSettings()
	assert.Equal(t, d.PollInterval, s.PollInterval)
	assert.Equal(t, d.RequestTimeout, s.RequestTimeout)
	assert.Equal(t, d.MaxConcurrency, s.MaxConcurrency)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, DefaultCatalog(), s.Catalog())
}
