package naming

import (
	"slices"

	"github.com/speakeasy-api/schemagraph/typegraph"
)

// Group is a client or an operation group: a namespace or an interface holding operations.
// Exactly one of Namespace and Interface is set.
type Group struct {
	Namespace *typegraph.Namespace
	Interface *typegraph.Interface
}

// Type returns the namespace or interface backing the group.
func (g Group) Type() typegraph.Type {
	if g.Interface != nil {
		return g.Interface
	}
	return g.Namespace
}

// Name returns the declared name of the group.
func (g Group) Name() string {
	if g.Interface != nil {
		return g.Interface.Name
	}
	if g.Namespace != nil {
		return g.Namespace.Name
	}
	return ""
}

// ListAllUserDefinedNamespaces returns every namespace declared by the project, depth first.
func ListAllUserDefinedNamespaces(program *typegraph.Program) []*typegraph.Namespace {
	return slices.Collect(program.UserNamespaces())
}

// ListAllServiceNamespaces returns the project namespaces marked as services.
func ListAllServiceNamespaces(program *typegraph.Program) []*typegraph.Namespace {
	var services []*typegraph.Namespace
	for _, ns := range ListAllUserDefinedNamespaces(program) {
		if ns.Service != nil {
			services = append(services, ns)
		}
	}
	return services
}

// ListClients returns one client per service namespace.
func ListClients(program *typegraph.Program) []Group {
	services := ListAllServiceNamespaces(program)
	clients := make([]Group, 0, len(services))
	for _, ns := range services {
		clients = append(clients, Group{Namespace: ns})
	}
	return clients
}

// OperationsInGroup returns the operations declared directly in the group, skipping templates.
func OperationsInGroup(g Group) []*typegraph.Operation {
	var ops []*typegraph.Operation
	switch {
	case g.Interface != nil:
		if typegraph.IsTemplateDeclaration(g.Interface) {
			return nil
		}
		for op := range g.Interface.Operations.Values() {
			ops = append(ops, op)
		}
	case g.Namespace != nil:
		for op := range g.Namespace.Operations.Values() {
			if typegraph.IsTemplatedOperationSignature(op) {
				continue
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// SubGroups returns the operation groups nested in g, depth first: each child namespace followed
// by its own sub groups, then the interfaces of g. Template interfaces and library namespaces are skipped.
func SubGroups(g Group) []Group {
	if g.Namespace == nil {
		return nil
	}

	var groups []Group
	for child := range g.Namespace.Namespaces.Values() {
		if child.Origin != typegraph.OriginProject {
			continue
		}
		sub := Group{Namespace: child}
		groups = append(groups, sub)
		groups = append(groups, SubGroups(sub)...)
	}
	for iface := range g.Namespace.Interfaces.Values() {
		if typegraph.IsTemplateDeclaration(iface) {
			continue
		}
		groups = append(groups, Group{Interface: iface})
	}
	return groups
}
