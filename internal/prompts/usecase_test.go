package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptloom/promptloom/internal/prompts"
)

func TestParseUseCase(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		expected   prompts.UseCase
		expectErr  bool
	}{
		{name: "exact match", identifier: "coding", expected: prompts.UseCaseCoding},
		{name: "upper case", identifier: "CODING", expected: prompts.UseCaseCoding},
		{name: "underscores", identifier: "creative_writing", expected: prompts.UseCaseCreativeWriting},
		{name: "spaces and mixed case", identifier: "Creative Writing", expected: prompts.UseCaseCreativeWriting},
		{name: "surrounding whitespace", identifier: "  research  ", expected: prompts.UseCaseResearch},
		{name: "technical documentation", identifier: "technical-documentation", expected: prompts.UseCaseTechnicalDocumentation},
		{name: "unknown identifier", identifier: "poetry", expectErr: true},
		{name: "empty identifier", identifier: "", expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed, err := prompts.ParseUseCase(testCase.identifier)
			if testCase.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown use case")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, parsed)
		})
	}
}

func TestUseCasesOrderIsStable(t *testing.T) {
	useCases := prompts.UseCases()
	require.Len(t, useCases, 8)
	assert.Equal(t, prompts.UseCaseGeneral, useCases[0])
	assert.Equal(t, prompts.UseCaseTechnicalDocumentation, useCases[len(useCases)-1])

	names := prompts.UseCaseNames()
	require.Len(t, names, len(useCases))
	for index, useCase := range useCases {
		assert.Equal(t, useCase.String(), names[index])
	}
}
