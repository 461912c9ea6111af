package ai

// ProviderName represents an AI provider identifier
type ProviderName string

// Provider name constants
const (
	ProviderNameGemini ProviderName = "gemini"
	ProviderNameOpenAI ProviderName = "openai"
)

// String returns the string representation of the provider name
func (p ProviderName) String() string {
	return string(p)
}

// IsValid checks if the provider name is supported
func (p ProviderName) IsValid() bool {
	switch p {
	case ProviderNameGemini, ProviderNameOpenAI:
		return true
	default:
		return false
	}
}
