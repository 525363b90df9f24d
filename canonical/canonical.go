// Package canonical projects a versioned service into a single Swagger 2.0 document describing
// the union of all its versions.
package canonical

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/naming"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/speakeasy-api/schemagraph/versioning"
)

const (
	// Version is the info.version of every canonical document.
	Version = "canonical"
	// IncludedVersionsExtension lists the versions merged into the document.
	IncludedVersionsExtension = "x-canonical-included-versions"
)

// RuleUnsupportedVersioningDecorator is reported for versioning decorators a merged document
// cannot represent.
const RuleUnsupportedVersioningDecorator = "unsupported-versioning-decorator"

// ErrNoService is returned when a program declares no service namespace.
const ErrNoService = errors.Error("no service namespace")

var unsupportedDecoratorMessages = validation.Messages{
	validation.DefaultMessageID: "Decorator @{decorator} is not supported in AutorestCanonical.",
}

// Result is an emitted canonical document and the diagnostics reported while emitting it.
type Result struct {
	Document    *openapi2.T
	Diagnostics []error
}

// Option configures Emit.
type Option func(*emitOpts)

type emitOpts struct {
	naming *naming.Context
	logger *slog.Logger
}

// WithNamingContext shares an existing naming context, and therefore its generated-name table,
// with the emitter.
func WithNamingContext(ctx *naming.Context) Option {
	return func(o *emitOpts) {
		o.naming = ctx
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *emitOpts) {
		o.logger = logger
	}
}

// Emit builds the canonical document of the first service namespace of program. Every property
// of every version is included, and a property is required when it is not optional.
func Emit(ctx context.Context, program *typegraph.Program, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := &emitOpts{}
	for _, opt := range opts {
		opt(options)
	}
	if options.naming == nil {
		options.naming = naming.NewContext(program)
	}
	if options.logger == nil {
		options.logger = options.naming.Logger
	}

	services := naming.ListAllServiceNamespaces(program)
	if len(services) == 0 {
		return nil, ErrNoService
	}
	service := services[0]

	e := &emitter{
		naming:  options.naming,
		markers: options.naming.Markers,
		logger:  options.logger,
		service: service,
		keys:    make(map[*typegraph.Model]string),
		used:    make(map[string]*typegraph.Model),
		doc: &openapi2.T{
			Swagger: "2.0",
			Info: openapi3.Info{
				Title:   serviceTitle(service),
				Version: Version,
			},
			Consumes:    []string{"application/json"},
			Produces:    []string{"application/json"},
			Paths:       make(map[string]*openapi2.PathItem),
			Definitions: make(map[string]*openapi3.SchemaRef),
		},
	}

	versions, err := versioning.Versions(service)
	switch {
	case err == nil:
		included := make([]string, 0, len(versions))
		for _, v := range versions {
			included = append(included, v.Value)
		}
		e.doc.Info.Extensions = map[string]any{IncludedVersionsExtension: included}
	case errors.Is(err, versioning.ErrNotVersioned):
		e.logger.Debug("service is not versioned", "service", typegraph.NamespaceFullName(service))
	default:
		return nil, fmt.Errorf("failed to read versions of %s: %w", typegraph.NamespaceFullName(service), err)
	}

	for item := range typegraph.Walk(ctx, program) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.visit(item)
	}

	for len(e.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := e.pending[0]
		e.pending = e.pending[1:]
		e.doc.Definitions[e.keys[m]] = e.objectSchema(m)
	}

	validation.SortValidationErrors(e.diagnostics)

	return &Result{Document: e.doc, Diagnostics: e.diagnostics}, nil
}

func serviceTitle(ns *typegraph.Namespace) string {
	if ns.Service != nil && ns.Service.Title != "" {
		return ns.Service.Title
	}
	return ns.Name
}

type emitter struct {
	naming  *naming.Context
	markers versioning.Markers
	logger  *slog.Logger
	service *typegraph.Namespace
	doc     *openapi2.T

	keys    map[*typegraph.Model]string
	used    map[string]*typegraph.Model
	pending []*typegraph.Model

	diagnostics []error
}

func (e *emitter) visit(item typegraph.WalkItem) {
	if prop, ok := item.Type.(*typegraph.ModelProperty); !ok || prop.SourceProperty == nil {
		e.checkVersioning(item)
	}

	_ = item.Match(typegraph.Matcher{
		Model: func(m *typegraph.Model) error {
			if m.Name != "" && !typegraph.IsTemplateDeclaration(m) {
				e.definitionKey(m)
			}
			return nil
		},
		Operation: func(op *typegraph.Operation) error {
			e.addPayloads(op)
			return nil
		},
	})
}

func (e *emitter) checkVersioning(item typegraph.WalkItem) {
	t := item.Type
	if len(e.markers.RenamedFrom(t)) > 0 {
		e.reportUnsupported(item, versioning.DecoratorRenamedFrom)
	}
	if e.markers.TypeChangedFrom(t) != nil {
		e.reportUnsupported(item, versioning.DecoratorTypeChangedFrom)
	}
	if e.markers.ReturnTypeChangedFrom(t) != nil {
		e.reportUnsupported(item, versioning.DecoratorReturnTypeChangedFrom)
	}
}

func (e *emitter) reportUnsupported(item typegraph.WalkItem, decorator string) {
	name := decorator[strings.LastIndex(decorator, ".")+1:]
	err := unsupportedDecoratorMessages.Error(validation.DefaultMessageID, map[string]string{"decorator": name})

	node := item.Type.Meta().Source
	if decs := typegraph.DecoratorsNamed(item.Type, decorator); len(decs) > 0 && decs[0].Source != nil {
		node = decs[0].Source
	}

	e.diagnostics = append(e.diagnostics, validation.NewValidationError(validation.SeverityWarning, RuleUnsupportedVersioningDecorator, err, node).
		WithTarget(item.Type).
		WithDocumentLocation(item.Location.ToPath()))
}

// addPayloads defines the anonymous request and response bodies of op under their generated names.
func (e *emitter) addPayloads(op *typegraph.Operation) {
	resolved, err := e.naming.HTTP.Resolve(op)
	if err != nil {
		e.logger.Debug("skipping operation payloads", "operation", typegraph.FullName(op), "error", err)
		return
	}

	bodies := []typegraph.Type{}
	if body := resolved.Parameters.Body; body != nil && !body.Spread {
		bodies = append(bodies, body.Type)
	}
	for _, response := range resolved.Responses {
		for _, status := range response.Responses {
			if status.Body != nil {
				bodies = append(bodies, status.Body.Type)
			}
		}
	}

	for _, body := range bodies {
		m, ok := body.(*typegraph.Model)
		if !ok || m.Name != "" || m.Indexer != nil {
			continue
		}
		if _, defined := e.keys[m]; defined {
			continue
		}
		name := e.naming.GeneratedName(m, op)
		if name == "" {
			continue
		}
		e.define(m, name)
	}
}

// definitionKey returns the definitions key of a named model, queueing its definition on first use.
// Models of the service namespace are keyed relative to it, others by their full name.
func (e *emitter) definitionKey(m *typegraph.Model) string {
	if key, ok := e.keys[m]; ok {
		return key
	}

	name := e.naming.LibraryName(m, "")
	if prefix := e.namespacePrefix(m.Namespace); prefix != "" {
		name = prefix + "." + name
	}
	return e.define(m, name)
}

func (e *emitter) namespacePrefix(ns *typegraph.Namespace) string {
	full := typegraph.NamespaceFullName(ns)
	service := typegraph.NamespaceFullName(e.service)
	switch {
	case full == service:
		return ""
	case strings.HasPrefix(full, service+"."):
		return strings.TrimPrefix(full, service+".")
	}
	return full
}

func (e *emitter) define(m *typegraph.Model, name string) string {
	key := name
	for i := 1; ; i++ {
		if _, taken := e.used[key]; !taken {
			break
		}
		key = name + strconv.Itoa(i)
	}

	e.keys[m] = key
	e.used[key] = m
	e.pending = append(e.pending, m)
	e.logger.Debug("defining model", "key", key, "model", typegraph.TypeName(m))

	return key
}

func (e *emitter) ref(m *typegraph.Model) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(fmt.Sprintf("#/definitions/%s", e.definitionKey(m)), nil)
}
