package promptloom

import "github.com/promptloom/promptloom/internal/prompts"

type useCaseFlagValue struct {
	target *prompts.UseCase
}

func newUseCaseFlagValue(target *prompts.UseCase) *useCaseFlagValue {
	return &useCaseFlagValue{target: target}
}

func (value *useCaseFlagValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return string(*value.target)
}

func (value *useCaseFlagValue) Set(input string) error {
	parsedUseCase, parseErr := prompts.ParseUseCase(input)
	if parseErr != nil {
		return parseErr
	}
	*value.target = parsedUseCase
	return nil
}

func (value *useCaseFlagValue) Type() string {
	return "use-case"
}
