package naming

import (
	"log/slog"

	"github.com/speakeasy-api/schemagraph/httpop"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

// Display names of the operation-rooted path steps.
const (
	RequestName  = "Request"
	ResponseName = "Response"
)

// FindContextPath returns the first context path to target. Declared models of the project are
// searched first (skipping models carrying only metadata), then the operations of every client
// and of their operation groups, in declaration order. The result is nil when target is unreachable.
func (c *Context) FindContextPath(target typegraph.Type) Path {
	for _, ns := range ListAllUserDefinedNamespaces(c.Program) {
		for m := range ns.Models.Values() {
			if !hasPayloadProperty(m) {
				continue
			}
			if path := c.locate(nil, target, m, m.Name, false); len(path) > 0 {
				return path
			}
		}
	}

	for _, client := range ListClients(c.Program) {
		for _, op := range OperationsInGroup(client) {
			if path := c.OperationContextPath(op, target); len(path) > 0 {
				return path
			}
		}
		for _, group := range SubGroups(client) {
			for _, op := range OperationsInGroup(group) {
				if path := c.OperationContextPath(op, target); len(path) > 0 {
					return path
				}
			}
		}
	}

	c.Logger.Debug("no context path found", slog.String("type", typegraph.TypeName(target)))
	return nil
}

// OperationContextPath returns the first context path from op to target, searching the request
// body, the request parameters, then each response body and its headers. Every path starts with
// the operation itself.
func (c *Context) OperationContextPath(op *typegraph.Operation, target typegraph.Type) Path {
	resolved, err := c.HTTP.Resolve(op)
	if err != nil {
		c.Logger.Debug("skipping operation without an HTTP shape", slog.String("operation", typegraph.FullName(op)), slog.Any("error", err))
		return nil
	}

	seed := Path{{DisplayName: op.Name, Type: op}}

	if body := resolved.Parameters.Body; body != nil {
		if path := c.locate(seed, target, httpop.SpreadModel(body), RequestName, false); len(path) > 0 {
			return path
		}
	}

	for _, param := range resolved.Parameters.Parameters {
		if path := c.locate(seed, target, param.Property.Type, RequestName+PascalCase(param.Name), false); len(path) > 0 {
			return path
		}
	}

	for _, response := range resolved.Responses {
		for _, status := range response.Responses {
			if status.Body != nil && status.Body.Type != nil {
				if path := c.locate(seed, target, status.Body.Type, ResponseName, true); len(path) > 0 {
					return path
				}
			}
			for name, header := range status.Headers.All() {
				if path := c.locate(seed, target, header.Type, ResponseName+PascalCase(name), false); len(path) > 0 {
					return path
				}
			}
		}
	}

	return nil
}

func hasPayloadProperty(m *typegraph.Model) bool {
	for prop := range m.Properties.Values() {
		if !typegraph.IsMetadata(prop) {
			return true
		}
	}
	return false
}
