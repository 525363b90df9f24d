package typegraph

import (
	"context"
	"iter"
	"strconv"
)

// WalkItem represents a single item yielded by the Walk iterator.
type WalkItem struct {
	Match    MatchFunc
	Location Locations
	Type     Type
	Program  *Program
}

// Walk returns an iterator that yields MatchFunc items for every project-owned node of the program
// in declaration order. Anonymous models and unions are visited where they are referenced.
// Uninstantiated template declarations, and the operations of uninstantiated template interfaces,
// are never visited.
// Users can iterate over the results using a for loop and break out at any time.
func Walk(ctx context.Context, program *Program) iter.Seq[WalkItem] {
	return func(yield func(WalkItem) bool) {
		if program == nil {
			return
		}
		w := &walker{
			program:  program,
			yield:    yield,
			visited:  make(map[Type]bool),
			expanded: make(map[Type]bool),
		}
		w.walkNamespaceMembers(ctx, program.Global, nil)
	}
}

type walker struct {
	program *Program
	yield   func(WalkItem) bool
	visited map[Type]bool

	// expanded tracks named instantiations whose template arguments were already descended into.
	expanded map[Type]bool
}

func (w *walker) emit(t Type, loc Locations) bool {
	return w.yield(WalkItem{Match: getMatchFunc(t), Location: loc, Type: t, Program: w.program})
}

func child(loc Locations, parent Type, field, key string) Locations {
	next := make(Locations, len(loc), len(loc)+1)
	copy(next, loc)
	lc := LocationContext{ParentMatchFunc: getMatchFunc(parent), ParentField: field}
	if key != "" {
		lc.ParentKey = &key
	}
	return append(next, lc)
}

func (w *walker) walkNamespace(ctx context.Context, ns *Namespace, loc Locations) bool {
	if ns.Origin != OriginProject {
		// library namespaces may still contain project namespaces
		for name, sub := range ns.Namespaces.All() {
			if !w.walkNamespace(ctx, sub, child(loc, ns, "namespaces", name)) {
				return false
			}
		}
		return true
	}
	if !w.emit(ns, loc) {
		return false
	}
	return w.walkNamespaceMembers(ctx, ns, loc)
}

func (w *walker) walkNamespaceMembers(ctx context.Context, ns *Namespace, loc Locations) bool {
	if ctx.Err() != nil {
		return false
	}

	for name, m := range ns.Models.All() {
		if IsTemplateDeclaration(m) {
			continue
		}
		if !w.walkModel(ctx, m, child(loc, ns, "models", name)) {
			return false
		}
	}

	for name, u := range ns.Unions.All() {
		if !w.walkUnion(ctx, u, child(loc, ns, "unions", name)) {
			return false
		}
	}

	for name, e := range ns.Enums.All() {
		if !w.walkEnum(e, child(loc, ns, "enums", name)) {
			return false
		}
	}

	for name, s := range ns.Scalars.All() {
		if !w.emit(s, child(loc, ns, "scalars", name)) {
			return false
		}
	}

	for name, iface := range ns.Interfaces.All() {
		if IsTemplateDeclaration(iface) {
			continue
		}
		if !w.walkInterface(ctx, iface, child(loc, ns, "interfaces", name)) {
			return false
		}
	}

	for name, op := range ns.Operations.All() {
		if IsTemplatedOperationSignature(op) {
			continue
		}
		if !w.walkOperation(ctx, op, child(loc, ns, "operations", name)) {
			return false
		}
	}

	for name, sub := range ns.Namespaces.All() {
		if !w.walkNamespace(ctx, sub, child(loc, ns, "namespaces", name)) {
			return false
		}
	}

	return true
}

func (w *walker) walkModel(ctx context.Context, m *Model, loc Locations) bool {
	if w.visited[m] {
		return true
	}
	w.visited[m] = true

	if !w.emit(m, loc) {
		return false
	}

	for name, prop := range m.Properties.All() {
		propLoc := child(loc, m, "properties", name)
		if !w.emit(prop, propLoc) {
			return false
		}
		if !w.walkReferenced(ctx, prop.Type, child(propLoc, prop, "type", "")) {
			return false
		}
	}

	if m.Indexer != nil {
		if !w.walkReferenced(ctx, m.Indexer.Value, child(loc, m, "indexer", "")) {
			return false
		}
	}

	return true
}

func (w *walker) walkUnion(ctx context.Context, u *Union, loc Locations) bool {
	if w.visited[u] {
		return true
	}
	w.visited[u] = true

	if !w.emit(u, loc) {
		return false
	}

	for i, v := range u.Variants {
		key := v.Name
		if key == "" {
			key = strconv.Itoa(i)
		}
		variantLoc := child(loc, u, "variants", key)
		if !w.emit(v, variantLoc) {
			return false
		}
		if !w.walkReferenced(ctx, v.Type, child(variantLoc, v, "type", "")) {
			return false
		}
	}

	return true
}

func (w *walker) walkEnum(e *Enum, loc Locations) bool {
	if !w.emit(e, loc) {
		return false
	}
	for name, member := range e.Members.All() {
		if !w.emit(member, child(loc, e, "members", name)) {
			return false
		}
	}
	return true
}

func (w *walker) walkInterface(ctx context.Context, iface *Interface, loc Locations) bool {
	if !w.emit(iface, loc) {
		return false
	}
	for name, op := range iface.Operations.All() {
		if IsTemplatedOperationSignature(op) {
			continue
		}
		if !w.walkOperation(ctx, op, child(loc, iface, "operations", name)) {
			return false
		}
	}
	return true
}

func (w *walker) walkOperation(ctx context.Context, op *Operation, loc Locations) bool {
	if ctx.Err() != nil {
		return false
	}
	if !w.emit(op, loc) {
		return false
	}
	if op.Parameters != nil {
		if !w.walkModel(ctx, op.Parameters, child(loc, op, "parameters", "")) {
			return false
		}
	}
	return w.walkReferenced(ctx, op.ReturnType, child(loc, op, "returnType", ""))
}

// walkReferenced descends into the anonymous types reachable from a type reference. Named
// declarations are visited from their namespace instead.
func (w *walker) walkReferenced(ctx context.Context, t Type, loc Locations) bool {
	switch t := t.(type) {
	case *Model:
		if t.Name == "" {
			return w.walkModel(ctx, t, loc)
		}
		if w.expanded[t] {
			return true
		}
		w.expanded[t] = true
		for i, arg := range t.TemplateArgs {
			if !w.walkReferenced(ctx, arg, child(loc, t, "templateArgs", strconv.Itoa(i))) {
				return false
			}
		}
		if t.Part != nil {
			return w.walkReferenced(ctx, t.Part, child(loc, t, "part", ""))
		}
	case *Union:
		if t.Name == "" {
			return w.walkUnion(ctx, t, loc)
		}
	}
	return true
}
