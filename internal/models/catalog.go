package models

// ModelInfo is one switchable model of a provider.
type ModelInfo struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// ProviderInfo is a provider and its models, in menu order.
type ProviderInfo struct {
	Name   string      `yaml:"name" json:"name"`
	Models []ModelInfo `yaml:"models" json:"models"`
}

// Catalog is the ordered provider/model table offered in the menu.
type Catalog []ProviderInfo

// DefaultCatalog returns the built-in provider table.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Name: "deepseek",
			Models: []ModelInfo{
				{ID: "deepseek-reasoner", Label: "DeepSeek Reasoner"},
				{ID: "deepseek-chat", Label: "DeepSeek Chat"},
			},
		},
		{
			Name: "zhipu",
			Models: []ModelInfo{
				{ID: "GLM-5", Label: "ZhiPu GLM-5"},
				{ID: "glm-4v-flash", Label: "ZhiPu GLM-4V Flash"},
			},
		},
		{
			Name:   "minimax",
			Models: []ModelInfo{{ID: "MiniMax-M2.5", Label: "MiniMax M2.5"}},
		},
		{
			Name:   "kimi",
			Models: []ModelInfo{{ID: "K2.5", Label: "Kimi K2.5"}},
		},
		{
			Name:   "openai",
			Models: []ModelInfo{{ID: "gpt-5.3-codex", Label: "GPT-5.3 Codex"}},
		},
	}
}

// Lookup finds a model by provider name and model ID.
func (c Catalog) Lookup(provider, model string) (*ModelInfo, bool) {
	for i := range c {
		if c[i].Name != provider {
			continue
		}
		for j := range c[i].Models {
			if c[i].Models[j].ID == model {
				return &c[i].Models[j], true
			}
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers cannot mutate a shared catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, p := range c {
		out[i] = ProviderInfo{Name: p.Name, Models: append([]ModelInfo(nil), p.Models...)}
	}
	return out
}
