package typegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	_ "embed"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/sequencedmap"
	"github.com/speakeasy-api/schemagraph/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var snapshotSchemaJSON string

const (
	// ErrInvalidSnapshot is returned when a snapshot does not conform to the snapshot format.
	ErrInvalidSnapshot = errors.Error("invalid snapshot")
	// ErrUnresolvedReference is returned when a snapshot references a type that is not declared.
	ErrUnresolvedReference = errors.Error("unresolved reference")
)

var (
	snapshotValidator *jsValidator.Schema
	defaultPrinter    = message.NewPrinter(language.English)

	validationInitialized bool
	initMutex             sync.Mutex
)

// Unmarshal loads a type graph snapshot from YAML or JSON.
//
// The document is validated against the snapshot JSON Schema first; violations are returned as
// validation errors together with ErrInvalidSnapshot. Declarations are then built in two passes so
// references may point forward. References are resolved relative to the enclosing namespaces, then
// as fully qualified names, then against the builtin TypeSpec namespace. Any reference that cannot
// be resolved makes the load fail with ErrUnresolvedReference.
func Unmarshal(ctx context.Context, r io.Reader) (*Program, []error, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		syntaxErr := validation.NewValidationError(validation.SeverityError, validation.RuleValidationInvalidSyntax, err, nil)
		return nil, []error{syntaxErr}, ErrInvalidSnapshot.Wrap(err)
	}

	program := NewProgram()
	if len(root.Content) == 0 {
		return program, nil, nil
	}
	content := root.Content[0]
	program.Root = content

	if errs := validateSnapshot(content); len(errs) > 0 {
		validation.SortValidationErrors(errs)
		return nil, errs, ErrInvalidSnapshot
	}

	var decl snapshotDecl
	if err := content.Decode(&decl); err != nil {
		return nil, nil, ErrInvalidSnapshot.Wrap(err)
	}

	b := &builder{
		ctx:           validation.ContextWithValidationContext(ctx),
		program:       program,
		pendingModels: make(map[*Model]*pendingModel),
		pendingIfaces: make(map[*Interface]*pendingInterface),
	}
	b.build(&decl)

	if errs := validation.GetValidationErrors(b.ctx); len(errs) > 0 {
		validation.SortValidationErrors(errs)
		if b.unresolved {
			return nil, errs, ErrUnresolvedReference
		}
		return nil, errs, ErrInvalidSnapshot
	}

	return program, nil, nil
}

func validateSnapshot(root *yaml.Node) []error {
	initValidation()

	var doc any
	if err := root.Decode(&doc); err != nil {
		return []error{validation.NewValidationError(validation.SeverityError, validation.RuleValidationInvalidSyntax, err, root)}
	}

	buf, err := json.Marshal(doc)
	if err != nil {
		return []error{validation.NewValidationError(validation.SeverityError, validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("snapshot is not valid json: %s", err.Error()), root)}
	}

	instance, err := jsValidator.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return []error{validation.NewValidationError(validation.SeverityError, validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("snapshot is not valid json: %s", err.Error()), root)}
	}

	err = snapshotValidator.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if errors.As(err, &validationErr) {
		return getRootCauses(validationErr, root)
	}
	return []error{validation.NewValidationError(validation.SeverityError, validation.RuleValidationInvalidSchema, validation.NewValueValidationError("snapshot invalid: %s", err.Error()), root)}
}

func getRootCauses(err *jsValidator.ValidationError, root *yaml.Node) []error {
	errs := []error{}

	if len(err.Causes) == 0 {
		return append(errs, rootCauseError(err, root))
	}

	for _, cause := range err.Causes {
		if len(cause.Causes) == 0 {
			errs = append(errs, rootCauseError(cause, root))
		} else {
			errs = append(errs, getRootCauses(cause, root)...)
		}
	}

	return errs
}

func rootCauseError(cause *jsValidator.ValidationError, root *yaml.Node) error {
	valueNode := nodeAt(root, cause.InstanceLocation)
	field := strings.Join(cause.InstanceLocation, ".")
	msg := cause.ErrorKind.LocalizedString(defaultPrinter)

	switch cause.ErrorKind.(type) {
	case *kind.Type:
		return validation.NewValidationError(validation.SeverityError, validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("snapshot field %s %s", field, msg), valueNode)
	case *kind.Required:
		return validation.NewValidationError(validation.SeverityError, validation.RuleValidationRequiredField, validation.NewMissingFieldError("snapshot field %s %s", field, msg), valueNode)
	case *kind.Enum, *kind.Const:
		return validation.NewValidationError(validation.SeverityError, validation.RuleValidationAllowedValues, validation.NewValueValidationError("snapshot field %s %s", field, msg), valueNode)
	default:
		return validation.NewValidationError(validation.SeverityError, validation.RuleValidationInvalidSchema, validation.NewValueValidationError("snapshot field %s %s", field, msg), valueNode)
	}
}

// nodeAt follows a JSON instance location through the YAML tree, stopping at the deepest node found.
func nodeAt(node *yaml.Node, path []string) *yaml.Node {
	for _, segment := range path {
		for node.Kind == yaml.DocumentNode || node.Kind == yaml.AliasNode {
			if node.Kind == yaml.AliasNode {
				node = node.Alias
			} else {
				node = node.Content[0]
			}
		}

		switch node.Kind {
		case yaml.MappingNode:
			found := false
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == segment {
					node = node.Content[i+1]
					found = true
					break
				}
			}
			if !found {
				return node
			}
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node.Content) {
				return node
			}
			node = node.Content[idx]
		default:
			return node
		}
	}
	return node
}

func initValidation() {
	initMutex.Lock()
	defer initMutex.Unlock()
	if validationInitialized {
		return
	}

	schema, err := jsValidator.UnmarshalJSON(strings.NewReader(snapshotSchemaJSON))
	if err != nil {
		panic(err)
	}

	c := jsValidator.NewCompiler()
	if err := c.AddResource("schema.json", schema); err != nil {
		panic(err)
	}
	snapshotValidator = c.MustCompile("schema.json")
	validationInitialized = true
}

// scope is the resolution context of a reference.
type scope struct {
	ns *Namespace
	// params are the template parameters visible to the reference.
	params []string
}

func (s scope) with(params []string) scope {
	if len(params) == 0 {
		return s
	}
	return scope{ns: s.ns, params: append(slices.Clone(s.params), params...)}
}

type buildState int

const (
	stateNew buildState = iota
	stateBuilding
	stateDone
)

type pendingModel struct {
	decl  *modelDecl
	scope scope
	state buildState
}

type pendingInterface struct {
	decl  *interfaceDecl
	scope scope
	state buildState
}

type pendingNamespace struct {
	ns   *Namespace
	decl *namespaceDecl
}

type pendingUnion struct {
	union *Union
	decl  *unionDecl
}

type pendingEnum struct {
	enum *Enum
	decl *enumDecl
}

type pendingScalar struct {
	scalar *Scalar
	decl   *scalarDecl
}

type pendingOperation struct {
	op    *Operation
	decl  *operationDecl
	scope scope
}

type pendingSource struct {
	prop  *ModelProperty
	ref   string
	scope scope
	node  *yaml.Node
}

type builder struct {
	ctx        context.Context
	program    *Program
	unresolved bool

	namespaces    []pendingNamespace
	models        []*Model
	pendingModels map[*Model]*pendingModel
	unions        []pendingUnion
	enums         []pendingEnum
	scalars       []pendingScalar
	operations    []pendingOperation
	interfaces    []*Interface
	pendingIfaces map[*Interface]*pendingInterface
	sources       []pendingSource
}

func (b *builder) build(decl *snapshotDecl) {
	for _, ns := range decl.Namespaces {
		b.declareNamespace(ns, b.program.Global)
	}

	for _, p := range b.namespaces {
		p.ns.Decorators = b.decorators(p.decl.Decorators, scope{ns: p.ns})
	}
	for _, p := range b.scalars {
		b.buildScalar(p.scalar, p.decl)
	}
	for _, m := range b.models {
		b.completeModel(m)
	}
	for _, p := range b.unions {
		sc := scope{ns: p.union.Namespace}
		p.union.Decorators = b.decorators(p.decl.Decorators, sc)
		b.addVariants(p.union, p.decl.Variants, sc)
	}
	for _, p := range b.enums {
		sc := scope{ns: p.enum.Namespace}
		p.enum.Decorators = b.decorators(p.decl.Decorators, sc)
		for _, md := range p.decl.Members {
			if member, ok := p.enum.Members.Get(md.Name); ok {
				member.Decorators = b.decorators(md.Decorators, sc)
			}
		}
	}
	for _, p := range b.operations {
		b.buildOperation(p.op, p.decl, p.scope)
	}
	for _, iface := range b.interfaces {
		b.completeInterface(iface)
	}
	for _, p := range b.sources {
		b.resolveSourceProperty(p)
	}
	b.checkInheritance()
}

func (b *builder) report(rule string, err error, node *yaml.Node) {
	validation.AddValidationError(b.ctx, validation.NewValidationError(validation.SeverityError, rule, err, node))
}

func (b *builder) reportUnresolved(name string, node *yaml.Node) {
	b.unresolved = true
	b.report(validation.RuleValidationInvalidReference, validation.NewValueValidationError("unresolved reference %q", name), node)
}

func (b *builder) reportDuplicate(what, name string, node *yaml.Node) {
	b.report(validation.RuleValidationDuplicateKey, validation.NewValueValidationError("duplicate %s %q", what, name), node)
}

func (b *builder) declareNamespace(d *namespaceDecl, parent *Namespace) {
	ns, exists := parent.Namespaces.Get(d.Name)
	if !exists {
		ns = NewNamespace(d.Name, parent)
		if d.Library {
			ns.Origin = OriginLibrary
		}
		ns.Source = d.node
		b.program.Register(ns)
	} else if d.Library {
		ns.Origin = OriginLibrary
	}
	if d.Service != nil {
		ns.Service = &Service{Title: d.Service.Title}
	}
	b.namespaces = append(b.namespaces, pendingNamespace{ns: ns, decl: d})

	origin := ns.Origin
	sc := scope{ns: ns}

	for _, md := range d.Models {
		if ns.Models.Has(md.Name) {
			b.reportDuplicate("model", md.Name, md.node)
			continue
		}
		m := NewModel(md.Name, ns)
		m.Origin = origin
		m.Source = md.node
		m.TemplateParameters = md.TemplateParameters
		ns.Models.Set(m.Name, m)
		b.program.Register(m)
		b.models = append(b.models, m)
		b.pendingModels[m] = &pendingModel{decl: md, scope: sc}
	}

	for _, ud := range d.Unions {
		if ns.Unions.Has(ud.Name) {
			b.reportDuplicate("union", ud.Name, ud.node)
			continue
		}
		u := &Union{Name: ud.Name, Namespace: ns}
		u.Origin = origin
		u.Source = ud.node
		ns.Unions.Set(u.Name, u)
		b.program.Register(u)
		b.unions = append(b.unions, pendingUnion{union: u, decl: ud})
	}

	for _, ed := range d.Enums {
		if ns.Enums.Has(ed.Name) {
			b.reportDuplicate("enum", ed.Name, ed.node)
			continue
		}
		e := &Enum{Name: ed.Name, Namespace: ns, Members: sequencedmap.New[string, *EnumMember]()}
		e.Origin = origin
		e.Source = ed.node
		for _, md := range ed.Members {
			if e.Members.Has(md.Name) {
				b.reportDuplicate("enum member", md.Name, md.node)
				continue
			}
			member := &EnumMember{Name: md.Name, Enum: e, Value: normalizeValue(md.Value)}
			member.Origin = origin
			member.Source = md.node
			e.Members.Set(member.Name, member)
		}
		ns.Enums.Set(e.Name, e)
		b.program.Register(e)
		for member := range e.Members.Values() {
			b.program.Register(member)
		}
		b.enums = append(b.enums, pendingEnum{enum: e, decl: ed})
	}

	for _, sd := range d.Scalars {
		if ns.Scalars.Has(sd.Name) {
			b.reportDuplicate("scalar", sd.Name, sd.node)
			continue
		}
		s := &Scalar{Name: sd.Name, Namespace: ns}
		s.Origin = origin
		s.Source = sd.node
		ns.Scalars.Set(s.Name, s)
		b.program.Register(s)
		b.scalars = append(b.scalars, pendingScalar{scalar: s, decl: sd})
	}

	for _, name := range d.DecoratorDefinitions {
		if ns.DecoratorDefinitions.Has(name) {
			continue
		}
		def := &DecoratorDefinition{Name: name, Namespace: ns}
		def.Origin = origin
		def.Source = d.node
		ns.DecoratorDefinitions.Set(name, def)
		b.program.Register(def)
	}

	for _, id := range d.Interfaces {
		if ns.Interfaces.Has(id.Name) {
			b.reportDuplicate("interface", id.Name, id.node)
			continue
		}
		iface := &Interface{
			Name:               id.Name,
			Namespace:          ns,
			Operations:         sequencedmap.New[string, *Operation](),
			TemplateParameters: id.TemplateParameters,
		}
		iface.Origin = origin
		iface.Source = id.node
		ns.Interfaces.Set(iface.Name, iface)
		b.program.Register(iface)
		b.interfaces = append(b.interfaces, iface)
		ifaceScope := sc.with(id.TemplateParameters)
		b.pendingIfaces[iface] = &pendingInterface{decl: id, scope: ifaceScope}

		for _, od := range id.Operations {
			if iface.Operations.Has(od.Name) {
				b.reportDuplicate("operation", od.Name, od.node)
				continue
			}
			op := b.declareOperation(od, ns)
			op.Interface = iface
			iface.Operations.Set(op.Name, op)
			b.program.Register(op)
			b.operations = append(b.operations, pendingOperation{op: op, decl: od, scope: ifaceScope})
		}
	}

	for _, od := range d.Operations {
		if ns.Operations.Has(od.Name) {
			b.reportDuplicate("operation", od.Name, od.node)
			continue
		}
		op := b.declareOperation(od, ns)
		ns.Operations.Set(op.Name, op)
		b.program.Register(op)
		b.operations = append(b.operations, pendingOperation{op: op, decl: od, scope: sc})
	}

	for _, child := range d.Namespaces {
		b.declareNamespace(child, ns)
	}
}

func (b *builder) declareOperation(d *operationDecl, ns *Namespace) *Operation {
	op := &Operation{Name: d.Name, Namespace: ns, TemplateParameters: d.TemplateParameters}
	op.Origin = ns.Origin
	op.Source = d.node
	return op
}

func (b *builder) buildScalar(s *Scalar, d *scalarDecl) {
	sc := scope{ns: s.Namespace}
	s.Decorators = b.decorators(d.Decorators, sc)
	if d.Extends == "" {
		return
	}
	t := b.lookup(d.Extends, sc)
	base, ok := t.(*Scalar)
	if !ok {
		b.reportUnresolved(d.Extends, d.node)
		return
	}
	s.BaseScalar = base
}

func (b *builder) completeModel(m *Model) {
	p, ok := b.pendingModels[m]
	if !ok {
		return
	}
	switch p.state {
	case stateDone:
		return
	case stateBuilding:
		b.report(validation.RuleValidationCircularReference, validation.NewValueValidationError("model %q is spread into itself", m.Name), p.decl.node)
		return
	}
	p.state = stateBuilding
	b.buildModel(m, p.decl, p.scope)
	p.state = stateDone
}

func (b *builder) buildModel(m *Model, d *modelDecl, sc scope) {
	sc = sc.with(d.TemplateParameters)
	m.Decorators = b.decorators(d.Decorators, sc)

	if d.Extends != nil {
		if base := b.resolveModel(d.Extends, sc); base != nil {
			m.BaseModel = base
			base.DerivedModels = append(base.DerivedModels, m)
		}
	}

	if d.Is != nil {
		if source := b.resolveModel(d.Is, sc); source != nil {
			b.completeModel(source)
			m.SourceModel = source
			if m.BaseModel == nil {
				m.BaseModel = source.BaseModel
			}
			m.Indexer = source.Indexer
			for prop := range source.Properties.Values() {
				b.addProperty(m, cloneProperty(prop, m.Origin), d.Is.node)
			}
		}
	}

	if d.Indexer != nil {
		if value := b.resolveType(d.Indexer.Value, sc); value != nil {
			m.Indexer = &Indexer{Key: b.program.Scalar(d.Indexer.Key), Value: value}
		}
	}

	for _, arg := range d.TemplateArgs {
		if t := b.resolveType(arg, sc); t != nil {
			m.TemplateArgs = append(m.TemplateArgs, t)
		}
	}

	if d.Part != nil {
		m.Part = b.resolveType(d.Part, sc)
	}

	b.addProperties(m, d.Properties, sc)
}

func (b *builder) addProperties(m *Model, decls []*propertyDecl, sc scope) {
	for _, pd := range decls {
		if pd.Spread != nil {
			source := b.resolveModel(pd.Spread, sc)
			if source == nil {
				continue
			}
			b.completeModel(source)
			for prop := range source.Properties.Values() {
				b.addProperty(m, cloneProperty(prop, m.Origin), pd.node)
			}
			continue
		}

		prop := &ModelProperty{
			Name:         pd.Name,
			Optional:     pd.Optional,
			DefaultValue: normalizeValue(pd.Default),
			HTTP:         pd.HTTP,
		}
		prop.Origin = m.Origin
		prop.Source = pd.node
		if pd.Visibility != nil {
			prop.Visibility = append([]string{}, (*pd.Visibility)...)
		}
		prop.Type = b.resolveType(pd.Type, sc)
		prop.Decorators = b.decorators(pd.Decorators, sc)
		if pd.Source != "" {
			b.sources = append(b.sources, pendingSource{prop: prop, ref: pd.Source, scope: sc, node: pd.node})
		}
		b.addProperty(m, prop, pd.node)
	}
}

func (b *builder) addProperty(m *Model, prop *ModelProperty, node *yaml.Node) {
	if m.Properties.Has(prop.Name) {
		b.reportDuplicate("property", prop.Name, node)
		return
	}
	m.AddProperty(prop)
	b.program.Register(prop)
}

func cloneProperty(prop *ModelProperty, origin Origin) *ModelProperty {
	clone := &ModelProperty{
		Name:           prop.Name,
		Type:           prop.Type,
		Optional:       prop.Optional,
		DefaultValue:   prop.DefaultValue,
		HTTP:           prop.HTTP,
		Visibility:     prop.Visibility,
		SourceProperty: prop,
	}
	clone.Origin = origin
	clone.Decorators = prop.Decorators
	clone.Source = prop.Source
	return clone
}

func (b *builder) addVariants(u *Union, decls []*variantDecl, sc scope) {
	for _, vd := range decls {
		v := &UnionVariant{Name: vd.Name}
		v.Origin = u.Origin
		v.Source = vd.node
		v.Type = b.resolveType(vd.Type, sc)
		v.Decorators = b.decorators(vd.Decorators, sc)
		u.AddVariant(v)
		b.program.Register(v)
	}
}

func (b *builder) buildOperation(op *Operation, d *operationDecl, sc scope) {
	sc = sc.with(d.TemplateParameters)
	op.Decorators = b.decorators(d.Decorators, sc)

	params := NewModel("", op.Namespace)
	params.Origin = op.Origin
	params.Source = d.node
	b.addProperties(params, d.Parameters, sc)
	op.Parameters = params

	if d.Returns != nil {
		op.ReturnType = b.resolveType(d.Returns, sc)
	} else {
		op.ReturnType = b.program.Intrinsic("void")
	}
}

func (b *builder) completeInterface(iface *Interface) {
	p, ok := b.pendingIfaces[iface]
	if !ok || p.state == stateDone {
		return
	}
	if p.state == stateBuilding {
		b.report(validation.RuleValidationCircularReference, validation.NewValueValidationError("interface %q extends itself", iface.Name), p.decl.node)
		return
	}
	p.state = stateBuilding
	defer func() { p.state = stateDone }()

	iface.Decorators = b.decorators(p.decl.Decorators, p.scope)
	for _, arg := range p.decl.TemplateArgs {
		if t := b.resolveType(arg, p.scope); t != nil {
			iface.TemplateArgs = append(iface.TemplateArgs, t)
		}
	}

	if len(p.decl.Extends) == 0 {
		return
	}

	// operations of extended interfaces come first, in extension order
	ops := sequencedmap.New[string, *Operation]()
	for _, name := range p.decl.Extends {
		source, ok := b.lookup(name, p.scope).(*Interface)
		if !ok {
			b.reportUnresolved(name, p.decl.node)
			continue
		}
		b.completeInterface(source)
		iface.SourceInterfaces = append(iface.SourceInterfaces, source)
		for op := range source.Operations.Values() {
			clone := &Operation{
				Name:               op.Name,
				Namespace:          iface.Namespace,
				Interface:          iface,
				Parameters:         op.Parameters,
				ReturnType:         op.ReturnType,
				TemplateParameters: op.TemplateParameters,
			}
			clone.Origin = iface.Origin
			clone.Decorators = op.Decorators
			clone.Source = op.Source
			ops.Set(clone.Name, clone)
		}
	}
	for op := range iface.Operations.Values() {
		ops.Set(op.Name, op)
	}
	iface.Operations = ops
	for op := range ops.Values() {
		b.program.Register(op)
	}
}

func (b *builder) resolveSourceProperty(p pendingSource) {
	source, ok := b.lookup(p.ref, p.scope).(*ModelProperty)
	if !ok {
		b.reportUnresolved(p.ref, p.node)
		return
	}
	p.prop.SourceProperty = source
}

// checkInheritance breaks base model cycles so traversals over the graph terminate.
func (b *builder) checkInheritance() {
	for _, m := range b.models {
		seen := map[*Model]bool{m: true}
		for base := m.BaseModel; base != nil; base = base.BaseModel {
			if seen[base] {
				b.report(validation.RuleValidationCircularReference, validation.NewValueValidationError("model %q extends itself", m.Name), m.Source)
				m.BaseModel = nil
				break
			}
			seen[base] = true
		}
	}
}

func (b *builder) lookup(name string, sc scope) Type {
	if slices.Contains(sc.params, name) {
		return b.program.Intrinsic("unknown")
	}
	for ns := sc.ns; ns != nil; ns = ns.Namespace {
		candidate := name
		if prefix := NamespaceFullName(ns); prefix != "" {
			candidate = prefix + "." + name
		}
		if t, ok := b.program.Lookup(candidate); ok {
			return t
		}
	}
	if t, ok := b.program.Lookup(name); ok {
		return t
	}
	if t, ok := b.program.Lookup(LibraryNamespace + "." + name); ok {
		return t
	}
	return nil
}

func (b *builder) resolveType(ref *typeRef, sc scope) Type {
	switch {
	case ref == nil:
		return nil
	case ref.Name != "":
		t := b.lookup(ref.Name, sc)
		if t == nil {
			b.reportUnresolved(ref.Name, ref.node)
		}
		return t
	case ref.Model != nil:
		m := NewModel("", sc.ns)
		m.Origin = sc.ns.Origin
		m.Source = ref.node
		b.buildModel(m, ref.Model, sc)
		return m
	case ref.Array != nil:
		if element := b.resolveType(ref.Array, sc); element != nil {
			return b.program.ArrayOf(element)
		}
	case ref.Record != nil:
		if element := b.resolveType(ref.Record, sc); element != nil {
			return b.program.RecordOf(element)
		}
	case ref.Part != nil:
		if wrapped := b.resolveType(ref.Part, sc); wrapped != nil {
			return b.program.HTTPPartOf(wrapped)
		}
	case ref.Union != nil:
		u := &Union{Namespace: sc.ns}
		u.Origin = sc.ns.Origin
		u.Source = ref.node
		b.addVariants(u, ref.Union, sc)
		return u
	case ref.Literal != nil:
		return b.program.Literal(normalizeValue(ref.Literal))
	}
	return nil
}

func (b *builder) resolveModel(ref *typeRef, sc scope) *Model {
	t := b.resolveType(ref, sc)
	if t == nil {
		return nil
	}
	m, ok := t.(*Model)
	if !ok {
		b.report(validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("expected a model, found %s %q", t.Kind(), TypeName(t)), ref.node)
		return nil
	}
	return m
}

func (b *builder) decorators(decls []*decoratorDecl, sc scope) []*Decorator {
	if len(decls) == 0 {
		return nil
	}
	decorators := make([]*Decorator, 0, len(decls))
	for _, dd := range decls {
		def, ok := b.lookup(dd.Name, sc).(*DecoratorDefinition)
		if !ok {
			b.reportUnresolved(dd.Name, dd.node)
			continue
		}
		d := &Decorator{Definition: def, Source: dd.node}
		for i := range dd.Args {
			d.Args = append(d.Args, b.decoratorArg(&dd.Args[i], sc))
		}
		decorators = append(decorators, d)
	}
	return decorators
}

func (b *builder) decoratorArg(node *yaml.Node, sc scope) any {
	if node.Kind == yaml.MappingNode {
		var ref struct {
			Ref string `yaml:"ref"`
		}
		if err := node.Decode(&ref); err != nil {
			b.report(validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("invalid decorator argument: %s", err.Error()), node)
			return nil
		}
		t := b.lookup(ref.Ref, sc)
		if t == nil {
			b.reportUnresolved(ref.Ref, node)
			return nil
		}
		return t
	}

	var value any
	if err := node.Decode(&value); err != nil {
		b.report(validation.RuleValidationTypeMismatch, validation.NewTypeMismatchError("invalid decorator argument: %s", err.Error()), node)
		return nil
	}
	return normalizeValue(value)
}

// normalizeValue converts decoded integers to float64 so numeric values compare consistently.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return v
}
