package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// outputDirective closes every system instruction so responses stay plain
// prompt text rather than commentary around it.
const outputDirective = "Return only the reorganized prompt as plain Markdown. Do not wrap it in code fences and do not add commentary before or after it."

//go:embed templates.yaml
var embeddedTemplateBytes []byte

// Template is the static definition backing one use case.
// SystemInstruction is the exact text sent as the system message.
type Template struct {
	UseCase           UseCase
	Summary           string
	SystemInstruction string
	Sections          []string
}

// Catalog holds one template per use case. It is immutable once built.
type Catalog struct {
	templates map[UseCase]Template
}

type templateFile struct {
	Templates []templateRecord `yaml:"templates"`
}

type templateRecord struct {
	UseCase     string   `yaml:"use_case"`
	Summary     string   `yaml:"summary"`
	Instruction string   `yaml:"instruction"`
	Sections    []string `yaml:"sections"`
}

// NewCatalog parses template definitions and verifies they cover the whole
// use-case set with non-empty, pairwise-distinct instructions.
func NewCatalog(definitionBytes []byte) (*Catalog, error) {
	var parsed templateFile
	if err := yaml.Unmarshal(definitionBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal template catalog: %w", err)
	}

	templates := make(map[UseCase]Template, len(parsed.Templates))
	for _, record := range parsed.Templates {
		useCase, parseErr := ParseUseCase(record.UseCase)
		if parseErr != nil {
			return nil, fmt.Errorf("template catalog: %w", parseErr)
		}
		if _, exists := templates[useCase]; exists {
			return nil, fmt.Errorf("template catalog: duplicate entry for use case %q", useCase)
		}
		if strings.TrimSpace(record.Instruction) == "" {
			return nil, fmt.Errorf("template catalog: empty instruction for use case %q", useCase)
		}
		templates[useCase] = Template{
			UseCase:           useCase,
			Summary:           strings.TrimSpace(record.Summary),
			SystemInstruction: composeInstruction(record.Instruction, record.Sections),
			Sections:          record.Sections,
		}
	}

	seenInstructions := make(map[string]UseCase, len(templates))
	for _, useCase := range UseCases() {
		template, mapped := templates[useCase]
		if !mapped {
			return nil, fmt.Errorf("template catalog: no entry for use case %q", useCase)
		}
		if previous, duplicated := seenInstructions[template.SystemInstruction]; duplicated {
			return nil, fmt.Errorf("template catalog: use cases %q and %q share one instruction", previous, useCase)
		}
		seenInstructions[template.SystemInstruction] = useCase
	}

	return &Catalog{templates: templates}, nil
}

// Lookup returns the template for a use case. The catalog is total over the
// closed use-case set, so a missing entry is a programming error.
func (catalog *Catalog) Lookup(useCase UseCase) Template {
	template, mapped := catalog.templates[useCase]
	if !mapped {
		panic(fmt.Sprintf("prompts: no template registered for use case %q", useCase))
	}
	return template
}

// Templates returns every template in presentation order.
func (catalog *Catalog) Templates() []Template {
	useCases := UseCases()
	ordered := make([]Template, 0, len(useCases))
	for _, useCase := range useCases {
		ordered = append(ordered, catalog.Lookup(useCase))
	}
	return ordered
}

func composeInstruction(body string, sections []string) string {
	var builder strings.Builder
	builder.WriteString(strings.TrimSpace(body))
	if len(sections) > 0 {
		builder.WriteString("\n\nStructure the reorganized prompt with these sections:\n")
		for _, section := range sections {
			builder.WriteString("### ")
			builder.WriteString(section)
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\n")
	builder.WriteString(outputDirective)
	return builder.String()
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the catalog built from the embedded template definitions.
// The embedded catalog ships with the binary; failing to build it is fatal.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := NewCatalog(embeddedTemplateBytes)
		if err != nil {
			panic(fmt.Sprintf("prompts: embedded template catalog invalid: %v", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}
