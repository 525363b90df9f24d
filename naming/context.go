// Package naming derives stable cross-language names for the types of a program.
//
// Anonymous models, unions and literals have no declared name, so a name is synthesized from the
// first context path found from a named root (a declared model or an operation) down to the type.
// All names assigned during one compilation are recorded in the Context and are unique within it.
package naming

import (
	"iter"
	"log/slog"
	"strconv"
	"sync"

	"github.com/speakeasy-api/schemagraph/httpop"
	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/versioning"
)

// Context carries the state shared by all naming queries of one compilation.
type Context struct {
	Program *typegraph.Program
	HTTP    *httpop.Cache
	Markers versioning.Markers
	// APIVersion is the explicitly requested API version, empty when unset.
	APIVersion string
	Logger     *slog.Logger

	names *nameTable
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.Logger = logger
	}
}

// WithAPIVersion sets the explicitly requested API version. "latest" and "all" leave the versions untrimmed.
func WithAPIVersion(version string) Option {
	return func(c *Context) {
		c.APIVersion = version
	}
}

// WithHTTPResolver replaces the resolver used to compute operation shapes.
func WithHTTPResolver(resolver httpop.Resolver) Option {
	return func(c *Context) {
		c.HTTP = httpop.NewCache(resolver)
	}
}

// WithMarkers replaces the source of version markers.
func WithMarkers(markers versioning.Markers) Option {
	return func(c *Context) {
		c.Markers = markers
	}
}

// NewContext returns a context for program with an empty generated-name table.
func NewContext(program *typegraph.Program, opts ...Option) *Context {
	c := &Context{
		Program: program,
		HTTP:    httpop.NewCache(nil),
		Markers: versioning.DecoratorMarkers{},
		Logger:  slog.New(slog.DiscardHandler),
		names:   newNameTable(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeneratedNames returns the names assigned so far, in assignment order.
func (c *Context) GeneratedNames() iter.Seq2[typegraph.Type, string] {
	return c.names.all()
}

type nameTable struct {
	mu    sync.Mutex
	names map[typegraph.Type]string
	used  map[string]bool
	order []typegraph.Type
}

func newNameTable() *nameTable {
	return &nameTable{
		names: make(map[typegraph.Type]string),
		used:  make(map[string]bool),
	}
}

func (n *nameTable) get(t typegraph.Type) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	name, ok := n.names[t]
	return name, ok
}

// assign records a unique name for t derived from raw, appending 1, 2, ... until the name is
// unused. A type that already has a name keeps it.
func (n *nameTable) assign(t typegraph.Type, raw string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if name, ok := n.names[t]; ok {
		return name
	}

	name := raw
	for i := 1; n.used[name]; i++ {
		name = raw + strconv.Itoa(i)
	}
	n.names[t] = name
	n.used[name] = true
	n.order = append(n.order, t)

	return name
}

func (n *nameTable) all() iter.Seq2[typegraph.Type, string] {
	n.mu.Lock()
	order := append([]typegraph.Type(nil), n.order...)
	names := make([]string, len(order))
	for i, t := range order {
		names[i] = n.names[t]
	}
	n.mu.Unlock()

	return func(yield func(typegraph.Type, string) bool) {
		for i, t := range order {
			if !yield(t, names[i]) {
				return
			}
		}
	}
}
