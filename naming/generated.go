package naming

import (
	"log/slog"
	"strings"

	"github.com/speakeasy-api/schemagraph/typegraph"
)

// GeneratedName returns the name of an anonymous model, union or literal. The name is built from
// the context path of t, rooted at op when op is not nil, and is recorded so that later calls
// return it unchanged. It is "" when no path to t exists.
func (c *Context) GeneratedName(t typegraph.Type, op *typegraph.Operation) string {
	if name, ok := c.names.get(t); ok {
		return name
	}

	var path Path
	if op != nil {
		path = c.OperationContextPath(op, t)
	} else {
		path = c.FindContextPath(t)
	}
	if len(path) == 0 {
		return ""
	}

	name := c.names.assign(t, buildName(path))
	c.Logger.Debug("assigned generated name", slog.String("name", name), slog.String("type", typegraph.TypeName(t)))
	return name
}

// lastNamedIndex returns the index of the rightmost entry of path that is a named model, union or
// operation, or 0 when there is none.
func lastNamedIndex(path Path) int {
	for i := len(path) - 1; i >= 0; i-- {
		switch t := path[i].Type.(type) {
		case *typegraph.Model:
			if t.Name != "" {
				return i
			}
		case *typegraph.Union:
			if t.Name != "" {
				return i
			}
		case *typegraph.Operation:
			if t.Name != "" {
				return i
			}
		}
	}
	return 0
}

func buildName(path Path) string {
	var sb strings.Builder
	for _, entry := range path[lastNamedIndex(path):] {
		switch t := entry.Type.(type) {
		case *typegraph.StringLiteral, *typegraph.NumericLiteral, *typegraph.BooleanLiteral, *typegraph.Operation:
			sb.WriteString(PascalCase(entry.DisplayName))
		default:
			if name := typegraph.NameOf(t); name != "" {
				sb.WriteString(name)
			} else {
				sb.WriteString(PascalCase(entry.DisplayName))
			}
		}
	}
	return sb.String()
}
