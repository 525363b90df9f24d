package rules

// Rule categories for type graph linting

const (
	// CategoryVersioning represents rules that check versioning decorators for breaking changes
	CategoryVersioning = "versioning"

	// CategoryReferences represents rules that check which library declarations a project may use
	// Examples: references into Private or Legacy namespaces
	CategoryReferences = "references"

	// CategoryHTTP represents rules that check the HTTP shape of operations
	CategoryHTTP = "http"

	// CategoryARM represents rules specific to Azure resource manager APIs
	// Examples: unsupported scalar types, untyped objects
	CategoryARM = "arm"
)

// Ruleset names registered by the graph linter
const (
	RulesetAzureCore       = "azure-core"
	RulesetResourceManager = "resource-manager"
)
