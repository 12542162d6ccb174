// Package analytics derives transformation metrics from prompt text.
// Everything here is pure computation on the input and output strings.
package analytics

import (
	"strings"
	"unicode/utf8"
)

// structureMarkers are the substrings that indicate the output gained
// Markdown structure (headings, bullets, numbered items, emphasis).
var structureMarkers = []string{"# ", "## ", "### ", "- ", "* ", "1. ", "**"}

// Metrics describes how a transformation changed the prompt text.
// Characters are Unicode code points, words are whitespace-separated runs.
type Metrics struct {
	InputCharacters     int     `json:"input_characters"`
	InputWords          int     `json:"input_words"`
	OutputCharacters    int     `json:"output_characters"`
	OutputWords         int     `json:"output_words"`
	ExpansionRatio      float64 `json:"expansion_ratio"`
	HasStructureMarkers bool    `json:"has_structure_markers"`
}

// Compute measures the normalized input against the organized output.
func Compute(normalizedInput string, organizedOutput string) Metrics {
	inputCharacters := utf8.RuneCountInString(normalizedInput)
	outputCharacters := utf8.RuneCountInString(organizedOutput)

	return Metrics{
		InputCharacters:     inputCharacters,
		InputWords:          len(strings.Fields(normalizedInput)),
		OutputCharacters:    outputCharacters,
		OutputWords:         len(strings.Fields(organizedOutput)),
		ExpansionRatio:      float64(outputCharacters) / float64(max(inputCharacters, 1)),
		HasStructureMarkers: hasStructureMarkers(organizedOutput),
	}
}

func hasStructureMarkers(text string) bool {
	for _, marker := range structureMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
