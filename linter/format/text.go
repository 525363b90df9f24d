package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/schemagraph/validation"
)

// snapshotGroup heads findings that carry no type graph location.
const snapshotGroup = "(snapshot)"

// TextFormatter prints findings grouped by the declaration they were reported on, in the order
// each declaration is first seen.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Format(results []error) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	var (
		order  []string
		groups = make(map[string][]string)
		counts tally
	)
	for _, err := range results {
		group, line, severity := textLine(err)
		if _, ok := groups[group]; !ok {
			order = append(order, group)
		}
		groups[group] = append(groups[group], line)
		counts.add(severity)
	}

	var sb strings.Builder
	for _, group := range order {
		sb.WriteString(group)
		sb.WriteString("\n")
		for _, line := range groups[group] {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(counts.String())
	sb.WriteString("\n")

	return sb.String(), nil
}

func textLine(err error) (group, line string, severity validation.Severity) {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return snapshotGroup, fmt.Sprintf("-:-\terror\tinternal\t%s", err.Error()), validation.SeverityError
	}

	group = vErr.DocumentLocation
	if group == "" {
		group = snapshotGroup
	}

	pos := "-:-"
	if l := vErr.GetLineNumber(); l > 0 {
		pos = fmt.Sprintf("%d:%d", l, vErr.GetColumnNumber())
	}

	return group, fmt.Sprintf("%s\t%s\t%s\t%s", pos, vErr.Severity, vErr.Rule, vErr.UnderlyingError.Error()), vErr.Severity
}

// tally counts findings per severity. Anything that is not a validation error counts as an error.
type tally struct {
	total, errors, warnings, hints int
}

func (t *tally) add(severity validation.Severity) {
	t.total++
	switch severity {
	case validation.SeverityError:
		t.errors++
	case validation.SeverityWarning:
		t.warnings++
	case validation.SeverityHint:
		t.hints++
	}
}

func (t tally) String() string {
	return fmt.Sprintf("✖ %d problems (%d errors, %d warnings, %d hints)", t.total, t.errors, t.warnings, t.hints)
}
