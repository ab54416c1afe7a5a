// Package registry holds the static catalog of selectable models. It is
// loaded once at startup, never mutated, and safe to call from anywhere
// without synchronization.
package registry

// Provider identifies who serves a model.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// DefaultModelID is the model selected at startup.
const DefaultModelID = "ollama/llama2"

// Model describes one selectable model.
type Model struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Provider    Provider `json:"provider"`
	Local       bool     `json:"isLocal"`
}

// catalog is the fixed set of models the client knows about.
var catalog = []Model{
	{
		ID:          "gpt-3.5-turbo",
		Name:        "GPT-3.5 Turbo",
		Description: "Fast and efficient for most queries",
		Provider:    ProviderOpenAI,
	},
	{
		ID:          "gpt-4",
		Name:        "GPT-4",
		Description: "Most capable model for complex tasks",
		Provider:    ProviderOpenAI,
	},
	{
		ID:          "claude-2",
		Name:        "Claude 2",
		Description: "Balanced performance with strong reasoning",
		Provider:    ProviderAnthropic,
	},
	{
		ID:          "ollama/llama2",
		Name:        "Llama 2",
		Description: "Open source large language model",
		Provider:    ProviderOllama,
		Local:       true,
	},
	{
		ID:          "ollama/mistral",
		Name:        "Mistral",
		Description: "Efficient open source model",
		Provider:    ProviderOllama,
		Local:       true,
	},
	{
		ID:          "ollama/codellama",
		Name:        "CodeLlama",
		Description: "Specialized for code generation",
		Provider:    ProviderOllama,
		Local:       true,
	},
}

// Registry is a read-only lookup over the model catalog.
type Registry struct {
	models []Model
	byID   map[string]Model
}

// New builds the registry from the static catalog.
func New() *Registry {
	byID := make(map[string]Model, len(catalog))
	for _, m := range catalog {
		byID[m.ID] = m
	}
	return &Registry{models: catalog, byID: byID}
}

// List returns the catalog in its declared order.
func (r *Registry) List() []Model {
	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}

// Get resolves a model id. An unknown id is reported, never defaulted.
func (r *Registry) Get(id string) (Model, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// RequiresCredential reports whether queries against the model must carry
// an API key. True exactly for cloud providers.
func (r *Registry) RequiresCredential(id string) bool {
	m, ok := r.byID[id]
	if !ok {
		return false
	}
	return m.Provider == ProviderOpenAI || m.Provider == ProviderAnthropic
}
