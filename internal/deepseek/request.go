// Package deepseek implements the chat-completions client used to organize
// prompts. The generation contract is fixed: requests always target the same
// model with the same sampling parameters, so results stay comparable across
// runs and the wire shape stays auditable.
package deepseek

// Fixed generation contract for organize calls. These are constants rather
// than configuration on purpose; only the endpoint and credential vary.
const (
	Model       = "deepseek-chat"
	Temperature = 0.7
	MaxTokens   = 2000
)

const (
	roleSystem = "system"
	roleUser   = "user"
)

// Message is one chat turn in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completion payload sent to the API.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// NewRequest pairs a template's system instruction with the normalized user
// text. The user text is carried verbatim; nothing is prepended or appended.
func NewRequest(systemInstruction string, normalizedText string) Request {
	return Request{
		Model:       Model,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		Messages: []Message{
			{Role: roleSystem, Content: systemInstruction},
			{Role: roleUser, Content: normalizedText},
		},
	}
}
