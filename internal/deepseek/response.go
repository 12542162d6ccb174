package deepseek

import "strings"

// Completion is the decoded chat-completion envelope.
type Completion struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage keeps Content as a pointer so a missing or null field can be
// told apart from an empty string.
type ChoiceMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Extract returns the trimmed completion text. Envelopes missing the expected
// fields are malformed; a present-but-blank completion is empty.
func Extract(completion *Completion) (string, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return "", &ExtractionError{Kind: KindMalformed, Message: "completion has no choices"}
	}

	content := completion.Choices[0].Message.Content
	if content == nil {
		return "", &ExtractionError{Kind: KindMalformed, Message: "completion message has no content field"}
	}

	trimmed := strings.TrimSpace(*content)
	if trimmed == "" {
		return "", &ExtractionError{Kind: KindEmptyCompletion, Message: "completion text is empty"}
	}
	return trimmed, nil
}
