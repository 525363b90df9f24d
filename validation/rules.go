package validation

const (
	// Snapshot Validation Rules
	RuleValidationRequiredField     = "validation-required-field"
	RuleValidationTypeMismatch      = "validation-type-mismatch"
	RuleValidationDuplicateKey      = "validation-duplicate-key"
	RuleValidationInvalidSyntax     = "validation-invalid-syntax"
	RuleValidationInvalidSchema     = "validation-invalid-schema"
	RuleValidationInvalidReference  = "validation-invalid-reference"
	RuleValidationAllowedValues     = "validation-allowed-values"
	RuleValidationCircularReference = "validation-circular-reference"
)

// RuleInfo documents a snapshot validation rule.
type RuleInfo struct {
	Summary     string
	Description string
	HowToFix    string
}

var ruleInfos = map[string]RuleInfo{
	RuleValidationRequiredField: {
		Summary:     "Missing required field.",
		Description: "Required fields must be present in the snapshot. Missing required fields cause loading to fail.",
		HowToFix:    "Provide the required field in the snapshot.",
	},
	RuleValidationTypeMismatch: {
		Summary:     "Type mismatch.",
		Description: "Snapshot values must have the type the snapshot format expects for the field.",
		HowToFix:    "Change the value to the expected type.",
	},
	RuleValidationDuplicateKey: {
		Summary:     "Duplicate declaration.",
		Description: "Declarations in the same namespace or model must have unique names.",
		HowToFix:    "Rename or remove one of the duplicate declarations.",
	},
	RuleValidationInvalidSyntax: {
		Summary:     "Invalid syntax.",
		Description: "The snapshot must be well formed YAML or JSON.",
		HowToFix:    "Fix the syntax error reported by the parser.",
	},
	RuleValidationInvalidSchema: {
		Summary:     "Invalid snapshot.",
		Description: "The snapshot must conform to the snapshot JSON Schema.",
		HowToFix:    "Adjust the reported field so it matches the snapshot format.",
	},
	RuleValidationInvalidReference: {
		Summary:     "Unresolved reference.",
		Description: "Type and decorator references must resolve to a declaration of the snapshot or a builtin.",
		HowToFix:    "Declare the referenced type or fix the reference name.",
	},
	RuleValidationAllowedValues: {
		Summary:     "Value not allowed.",
		Description: "Enumerated snapshot fields only accept their documented values.",
		HowToFix:    "Use one of the allowed values.",
	},
	RuleValidationCircularReference: {
		Summary:     "Circular inheritance.",
		Description: "A model must not extend itself, directly or through its base models.",
		HowToFix:    "Break the inheritance cycle.",
	},
}

// RuleInfoForID returns the documentation of a snapshot validation rule.
func RuleInfoForID(id string) (RuleInfo, bool) {
	info, ok := ruleInfos[id]
	return info, ok
}
