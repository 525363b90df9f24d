package format

import (
	"encoding/json"
	"errors"

	"github.com/speakeasy-api/schemagraph/validation"
)

type JSONFormatter struct {
	categories CategoryFunc
}

// NewJSONFormatter creates a JSON formatter. categories may be nil.
func NewJSONFormatter(categories CategoryFunc) *JSONFormatter {
	return &JSONFormatter{categories: categories}
}

type jsonOutput struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

type jsonResult struct {
	Rule      string       `json:"rule"`
	Category  string       `json:"category"`
	Severity  string       `json:"severity"`
	MessageID string       `json:"message_id,omitempty"`
	Message   string       `json:"message"`
	Location  jsonLocation `json:"location"`
}

type jsonLocation struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Path   string `json:"path,omitempty"`
}

type jsonSummary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Hints    int `json:"hints"`
}

func (f *JSONFormatter) Format(results []error) (string, error) {
	output := jsonOutput{
		Results: make([]jsonResult, 0, len(results)),
	}

	for _, err := range results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			output.Results = append(output.Results, jsonResult{
				Rule:      vErr.Rule,
				Category:  categoryOf(f.categories, vErr.Rule),
				Severity:  vErr.Severity.String(),
				MessageID: vErr.MessageID,
				Message:   vErr.UnderlyingError.Error(),
				Location: jsonLocation{
					Line:   vErr.GetLineNumber(),
					Column: vErr.GetColumnNumber(),
					Path:   vErr.DocumentLocation,
				},
			})

			switch vErr.Severity {
			case validation.SeverityError:
				output.Summary.Errors++
			case validation.SeverityWarning:
				output.Summary.Warnings++
			case validation.SeverityHint:
				output.Summary.Hints++
			}
		} else {
			output.Results = append(output.Results, jsonResult{
				Rule:     "internal",
				Category: "internal",
				Severity: "error",
				Message:  err.Error(),
			})
			output.Summary.Errors++
		}
	}

	output.Summary.Total = len(results)

	bytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
