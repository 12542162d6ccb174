package promptloom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/promptloom/promptloom/internal/analytics"
	"github.com/promptloom/promptloom/internal/pipeline"
)

var (
	colorAccent = lipgloss.Color("#06B6D4")
	colorError  = lipgloss.Color("#EF4444")
	colorMuted  = lipgloss.Color("#6B7280")

	styleHeading = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleUseCaseName = lipgloss.NewStyle().
				Foreground(colorAccent)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

func renderResult(writer io.Writer, result *pipeline.Result) error {
	var builder strings.Builder
	builder.WriteString(styleHeading.Render(fmt.Sprintf("Organized prompt (%s)", result.UseCase)))
	builder.WriteString("\n\n")
	builder.WriteString(result.OrganizedPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(styleMuted.Render(metricsLine(result.Metrics)))
	builder.WriteString("\n")
	_, writeErr := io.WriteString(writer, builder.String())
	return writeErr
}

func metricsLine(metrics analytics.Metrics) string {
	structureLabel := "no"
	if metrics.HasStructureMarkers {
		structureLabel = "yes"
	}
	return fmt.Sprintf(
		"input: %d chars, %d words | output: %d chars, %d words | expansion: %.2fx | structured: %s",
		metrics.InputCharacters,
		metrics.InputWords,
		metrics.OutputCharacters,
		metrics.OutputWords,
		metrics.ExpansionRatio,
		structureLabel,
	)
}

func renderFailure(writer io.Writer, runErr error, hint string) error {
	var builder strings.Builder
	builder.WriteString(styleError.Render("organize failed"))
	builder.WriteString("\n")
	builder.WriteString(runErr.Error())
	builder.WriteString("\n")
	if hint != "" {
		builder.WriteString(styleMuted.Render(hint))
		builder.WriteString("\n")
	}
	_, writeErr := io.WriteString(writer, builder.String())
	return writeErr
}

type jsonErrorEnvelope struct {
	Error jsonErrorBody `json:"error"`
}

type jsonErrorBody struct {
	Stage   string `json:"stage,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func writeJSONResult(writer io.Writer, result *pipeline.Result) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeJSONError(writer io.Writer, runErr error) error {
	envelope := jsonErrorEnvelope{Error: jsonErrorBody{Message: runErr.Error()}}
	var pipelineErr *pipeline.Error
	if errors.As(runErr, &pipelineErr) {
		envelope.Error = jsonErrorBody{
			Stage:   string(pipelineErr.Stage),
			Kind:    pipelineErr.Kind,
			Message: pipelineErr.Message,
		}
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(envelope)
}
