package prompts

import (
	"fmt"
	"strings"
)

// UseCase identifies the target context an organized prompt is shaped for.
// The set is closed; every value maps to exactly one template in the catalog.
type UseCase string

const (
	UseCaseGeneral                UseCase = "general"
	UseCaseCoding                 UseCase = "coding"
	UseCaseCreativeWriting        UseCase = "creative-writing"
	UseCaseDataAnalysis           UseCase = "data-analysis"
	UseCaseResearch               UseCase = "research"
	UseCaseBusiness               UseCase = "business"
	UseCaseEducational            UseCase = "educational"
	UseCaseTechnicalDocumentation UseCase = "technical-documentation"
)

// UseCases returns every supported use case in presentation order.
func UseCases() []UseCase {
	return []UseCase{
		UseCaseGeneral,
		UseCaseCoding,
		UseCaseCreativeWriting,
		UseCaseDataAnalysis,
		UseCaseResearch,
		UseCaseBusiness,
		UseCaseEducational,
		UseCaseTechnicalDocumentation,
	}
}

func (useCase UseCase) String() string { return string(useCase) }

// ParseUseCase maps a user-supplied identifier onto the closed use-case set.
// Matching is case-insensitive and tolerates underscores and spaces.
func ParseUseCase(identifier string) (UseCase, error) {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	for _, candidate := range UseCases() {
		if normalized == string(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unknown use case %q (expected one of: %s)", identifier, strings.Join(UseCaseNames(), ", "))
}

// UseCaseNames returns the use-case identifiers as plain strings.
func UseCaseNames() []string {
	useCases := UseCases()
	names := make([]string, 0, len(useCases))
	for _, candidate := range useCases {
		names = append(names, string(candidate))
	}
	return names
}
