package naming

import (
	"fmt"
	"slices"
	"strings"

	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/speakeasy-api/schemagraph/validation"
	"github.com/speakeasy-api/schemagraph/versioning"
)

// Decorators consulted for client names.
const (
	DecoratorClientName   = typegraph.ClientCoreNamespace + ".clientName"
	DecoratorAPIVersion   = typegraph.ClientCoreNamespace + ".apiVersion"
	DecoratorFriendlyName = typegraph.LibraryNamespace + ".friendlyName"
	DecoratorEncodedName  = typegraph.LibraryNamespace + ".encodedName"
)

// RuleMultipleServices is reported when a program declares more than one service.
const RuleMultipleServices = "multiple-services"

var multipleServicesMessages = validation.Messages{
	validation.DefaultMessageID: `Multiple services found. Only the first service "{service}" is used.`,
}

// JSONMediaType is the media type wire names are resolved for.
const JSONMediaType = "application/json"

// CrossLanguageDefinitionID returns the dotted identifier of t shared by every client language,
// e.g. "Contoso.Widgets.get". Anonymous models and unions are identified by the named part of
// their context path, rooted at op when op is not nil.
func (c *Context) CrossLanguageDefinitionID(t typegraph.Type, op *typegraph.Operation) string {
	return c.crossLanguageDefinitionID(t, op, true)
}

func (c *Context) crossLanguageDefinitionID(t typegraph.Type, op *typegraph.Operation, appendNamespace bool) string {
	id := typegraph.NameOf(t)
	if id == "" {
		id = "anonymous"
	}
	ns := typegraph.NamespaceOf(t)

	switch t := t.(type) {
	case *typegraph.Model, *typegraph.Union:
		if typegraph.NameOf(t) != "" {
			break
		}
		var path Path
		if op != nil {
			path = c.OperationContextPath(op, t)
		} else {
			path = c.FindContextPath(t)
		}
		if len(path) == 0 {
			break
		}
		namingPart := path[lastNamedIndex(path):]
		switch first := namingPart[0].Type.(type) {
		case *typegraph.Model, *typegraph.Union, *typegraph.Operation:
			ns = typegraph.NamespaceOf(first)
		}
		segments := make([]string, 0, len(namingPart)+1)
		for _, entry := range namingPart {
			segments = append(segments, segmentName(entry))
		}
		id = strings.Join(append(segments, id), ".")
	case *typegraph.ModelProperty:
		switch {
		case t.Model == nil:
		case op != nil && t.Model == op.Parameters:
			id = c.crossLanguageDefinitionID(op, nil, false) + "." + id
		default:
			id = c.crossLanguageDefinitionID(t.Model, op, false) + "." + id
		}
	case *typegraph.Operation:
		if t.Interface != nil {
			id = c.crossLanguageDefinitionID(t.Interface, nil, false) + "." + id
		}
	}

	if appendNamespace {
		if prefix := typegraph.NamespaceFullName(ns); prefix != "" {
			id = prefix + "." + id
		}
	}
	return id
}

func segmentName(entry PathEntry) string {
	switch t := entry.Type.(type) {
	case *typegraph.Model, *typegraph.Union:
		if name := typegraph.NameOf(t); name != "" {
			return name
		}
		return entry.DisplayName
	}
	if entry.DisplayName == "" {
		return "anonymous"
	}
	return entry.DisplayName
}

// CrossLanguagePackageID returns the full name of the first service namespace, or "" when the
// program declares no service. A diagnostic is returned when there is more than one service.
func (c *Context) CrossLanguagePackageID() (string, []error) {
	services := ListAllServiceNamespaces(c.Program)
	if len(services) == 0 {
		return "", nil
	}

	name := typegraph.NamespaceFullName(services[0])
	if len(services) == 1 {
		return name, nil
	}

	err := multipleServicesMessages.Error(validation.DefaultMessageID, map[string]string{"service": name})
	diag := validation.NewValidationError(validation.SeverityWarning, RuleMultipleServices, err, services[0].Source).WithTarget(services[0])
	return name, []error{diag}
}

// LibraryName returns the name client code should use for t. In order of priority: a @clientName
// for scope, an unscoped @clientName, a @friendlyName, the name of a template instance suffixed
// with the names of its named arguments, and finally the declared name.
func (c *Context) LibraryName(t typegraph.Type, scope string) string {
	name := typegraph.NameOf(t)

	if override := clientNameOverride(t, scope); override != "" && override != name {
		return override
	}

	for _, dec := range typegraph.DecoratorsNamed(t, DecoratorFriendlyName) {
		if friendly := stringArg(dec, 0); friendly != "" {
			return friendly
		}
	}

	if m, ok := t.(*typegraph.Model); ok && m.Name != "" && len(m.TemplateArgs) > 0 {
		if generated, ok := c.names.get(m); ok {
			return generated
		}
		var sb strings.Builder
		sb.WriteString(m.Name)
		for _, arg := range m.TemplateArgs {
			switch arg := arg.(type) {
			case *typegraph.Model, *typegraph.Enum, *typegraph.Union:
				if argName := typegraph.NameOf(arg); argName != "" {
					sb.WriteString(PascalCase(argName))
				}
			}
		}
		return c.names.assign(m, sb.String())
	}

	return name
}

func clientNameOverride(t typegraph.Type, scope string) string {
	decorators := typegraph.DecoratorsNamed(t, DecoratorClientName)
	if scope != "" {
		for _, dec := range decorators {
			if scopes := stringArg(dec, 1); scopes != "" && slices.Contains(strings.Split(scopes, ","), scope) {
				return stringArg(dec, 0)
			}
		}
	}
	for _, dec := range decorators {
		if stringArg(dec, 1) == "" {
			return stringArg(dec, 0)
		}
	}
	return ""
}

// WireName returns the JSON name of prop, honoring @encodedName.
func WireName(prop *typegraph.ModelProperty) string {
	for _, dec := range typegraph.DecoratorsNamed(prop, DecoratorEncodedName) {
		if stringArg(dec, 0) == JSONMediaType {
			if encoded := stringArg(dec, 1); encoded != "" {
				return encoded
			}
		}
	}
	return prop.Name
}

// PropertyNames returns the library name and the wire name of prop.
func (c *Context) PropertyNames(prop *typegraph.ModelProperty) (string, string) {
	return c.LibraryName(prop, ""), WireName(prop)
}

// EffectivePayloadType returns the named model an anonymous model is equivalent to, ignoring
// metadata properties and properties not visible for visibility (any visibility when empty).
// Named models and models without a named equivalent are returned unchanged.
func EffectivePayloadType(m *typegraph.Model, visibility string) *typegraph.Model {
	if m == nil || m.Name != "" {
		return m
	}

	effective := typegraph.EffectiveModelType(m, func(prop *typegraph.ModelProperty) bool {
		return !typegraph.IsMetadata(prop) &&
			!typegraph.HasNoneVisibility(prop) &&
			(visibility == "" || typegraph.IsVisible(prop, visibility))
	})
	if effective.Name != "" {
		return effective
	}
	return m
}

// IsAPIVersion reports whether prop carries the API version. An @apiVersion decorator decides
// when present, otherwise the name is matched.
func IsAPIVersion(prop *typegraph.ModelProperty) bool {
	for _, dec := range typegraph.DecoratorsNamed(prop, DecoratorAPIVersion) {
		if len(dec.Args) == 0 {
			return true
		}
		if value, ok := dec.Args[0].(bool); ok {
			return value
		}
	}
	return IsAPIVersionName(prop.Name)
}

// IsAPIVersionName reports whether name looks like an API version parameter.
func IsAPIVersionName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "apiversion") || strings.Contains(lower, "api-version")
}

// DefaultAPIVersion returns the latest version of a versioned service namespace, ignoring versions
// newer than the explicitly requested API version. It fails with versioning.ErrNotVersioned when
// the namespace is not versioned.
func (c *Context) DefaultAPIVersion(ns *typegraph.Namespace) (*versioning.Version, error) {
	versions, err := versioning.Versions(ns)
	if err != nil {
		return nil, err
	}

	if c.APIVersion != "" && c.APIVersion != "latest" && c.APIVersion != "all" {
		if i := slices.IndexFunc(versions, func(v *versioning.Version) bool { return v.Value == c.APIVersion }); i >= 0 {
			versions = versions[:i+1]
		}
	}

	if len(versions) == 0 {
		return nil, versioning.ErrNotVersioned.Wrap(fmt.Errorf("namespace %s declares no versions", typegraph.NamespaceFullName(ns)))
	}
	return versions[len(versions)-1], nil
}

func stringArg(dec *typegraph.Decorator, i int) string {
	if i >= len(dec.Args) {
		return ""
	}
	s, _ := dec.Args[i].(string)
	return s
}
