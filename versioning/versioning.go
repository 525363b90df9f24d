// Package versioning reads the version markers attached to types by the TypeSpec.Versioning decorators.
package versioning

import (
	"fmt"

	"github.com/speakeasy-api/schemagraph/errors"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

const (
	// ErrNotVersioned is returned when neither a namespace nor any of its ancestors declares versions.
	ErrNotVersioned errors.Error = "namespace is not versioned"
	// ErrInvalidVersionsEnum is returned when @versioned does not reference an enum.
	ErrInvalidVersionsEnum errors.Error = "@versioned must reference an enum"
)

// Decorator names of the versioning library.
const (
	DecoratorVersioned             = typegraph.VersioningNamespace + ".versioned"
	DecoratorAdded                 = typegraph.VersioningNamespace + ".added"
	DecoratorRemoved               = typegraph.VersioningNamespace + ".removed"
	DecoratorRenamedFrom           = typegraph.VersioningNamespace + ".renamedFrom"
	DecoratorMadeOptional          = typegraph.VersioningNamespace + ".madeOptional"
	DecoratorTypeChangedFrom       = typegraph.VersioningNamespace + ".typeChangedFrom"
	DecoratorReturnTypeChangedFrom = typegraph.VersioningNamespace + ".returnTypeChangedFrom"
)

// Version is one member of a versions enum.
type Version struct {
	Name string
	// Value is the member value, or its name when the member has no string value.
	Value string
	// Index is the position of the member in its enum; later versions have larger indexes.
	Index  int
	Member *typegraph.EnumMember
}

// Rename records the name a type had before the given version.
type Rename struct {
	Version *Version
	OldName string
}

// TypeChange records the type a property or operation had before the given version.
type TypeChange struct {
	Version *Version
	OldType typegraph.Type
}

// Markers answers versioning queries about a type. Absent markers are reported as nil.
type Markers interface {
	AddedOn(t typegraph.Type) []*Version
	RemovedOn(t typegraph.Type) []*Version
	RenamedFrom(t typegraph.Type) []*Rename
	MadeOptionalOn(t typegraph.Type) *Version
	TypeChangedFrom(t typegraph.Type) *TypeChange
	ReturnTypeChangedFrom(t typegraph.Type) *TypeChange
}

// VersionOf returns the version a versions enum member stands for.
func VersionOf(member *typegraph.EnumMember) *Version {
	if member == nil {
		return nil
	}

	v := &Version{Name: member.Name, Value: member.Name, Member: member}
	if s, ok := member.Value.(string); ok {
		v.Value = s
	}
	if member.Enum != nil {
		i := 0
		for m := range member.Enum.Members.Values() {
			if m == member {
				v.Index = i
				break
			}
			i++
		}
	}
	return v
}

// Versions returns the versions declared with @versioned on ns or its closest versioned ancestor,
// in declaration order.
func Versions(ns *typegraph.Namespace) ([]*Version, error) {
	for current := ns; current != nil; current = current.Namespace {
		decorators := typegraph.DecoratorsNamed(current, DecoratorVersioned)
		if len(decorators) == 0 {
			continue
		}

		dec := decorators[0]
		if len(dec.Args) == 0 {
			return nil, ErrInvalidVersionsEnum.Wrap(fmt.Errorf("namespace %s: missing argument", typegraph.NamespaceFullName(current)))
		}
		enum, ok := dec.Args[0].(*typegraph.Enum)
		if !ok {
			return nil, ErrInvalidVersionsEnum.Wrap(fmt.Errorf("namespace %s: found %v", typegraph.NamespaceFullName(current), dec.Args[0]))
		}

		versions := make([]*Version, 0, enum.Members.Len())
		for member := range enum.Members.Values() {
			versions = append(versions, VersionOf(member))
		}
		return versions, nil
	}

	name := "<global>"
	if ns != nil {
		name = typegraph.NamespaceFullName(ns)
	}
	return nil, ErrNotVersioned.Wrap(fmt.Errorf("namespace %s", name))
}
