package promptloom

const (
	rootCommandUse   = "promptloom"
	rootCommandShort = "Turn free-form text into a structured, use-case-tailored prompt"

	organizeCommandUse   = "organize [TEXT...]"
	organizeCommandShort = "Reorganize free-form text into a structured prompt"

	useCasesCommandUse   = "usecases"
	useCasesCommandShort = "List supported use cases and their section layouts"

	configFlagName       = "config"
	configFlagUsage      = "Path to a promptloom.yaml configuration file"
	useCaseFlagName      = "use-case"
	useCaseFlagShorthand = "u"
	useCaseFlagUsage     = "Use case shaping the organized prompt (run 'promptloom usecases' for the list)"
	fileFlagName         = "file"
	fileFlagShorthand    = "f"
	fileFlagUsage        = "Read the input text from a file (.txt, .md, or .doc)"
	apiKeyFlagName       = "api-key"
	apiKeyFlagUsage      = "API key for the completion endpoint (overrides the configured environment variable)"
	timeoutFlagName      = "timeout"
	timeoutFlagUsage     = "Completion request timeout (e.g., 45s; 0 = use configuration)"
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	outputFlagUsage      = "Write the organized prompt to a file as well as stdout"
	copyFlagName         = "copy"
	copyFlagUsage        = "Copy the organized prompt to the system clipboard"
	jsonFlagName         = "json"
	jsonFlagUsage        = "Emit the result or error as JSON"
	quietFlagName        = "quiet"
	quietFlagUsage       = "Print only the organized prompt"
	verboseFlagName      = "verbose"
	verboseFlagShorthand = "v"
	verboseFlagUsage     = "Enable debug logging"

	configurationLoaderErrorFormat = "initialize configuration loader: %w"
	configurationLoadErrorFormat   = "load configuration: %w"
	outputFileErrorFormat          = "write output file %s: %w"
	writeResultErrorFormat         = "write organize result: %w"
	useCaseListingErrorFormat      = "write use case listing: %w"
	clipboardWarningFormat         = "warning: copy to clipboard failed: %v\n"

	outputFilePermissions = 0o644
)
