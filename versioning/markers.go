package versioning

import (
	"github.com/speakeasy-api/schemagraph/typegraph"
)

// DecoratorMarkers reads markers from the versioning decorators applied to a type. Applications
// whose first argument is not a version enum member are ignored.
type DecoratorMarkers struct{}

var _ Markers = DecoratorMarkers{}

func (DecoratorMarkers) AddedOn(t typegraph.Type) []*Version {
	return versionsOf(t, DecoratorAdded)
}

func (DecoratorMarkers) RemovedOn(t typegraph.Type) []*Version {
	return versionsOf(t, DecoratorRemoved)
}

func (DecoratorMarkers) RenamedFrom(t typegraph.Type) []*Rename {
	var renames []*Rename
	for _, dec := range typegraph.DecoratorsNamed(t, DecoratorRenamedFrom) {
		v := versionArg(dec)
		if v == nil {
			continue
		}
		rename := &Rename{Version: v}
		if len(dec.Args) > 1 {
			rename.OldName, _ = dec.Args[1].(string)
		}
		renames = append(renames, rename)
	}
	return renames
}

func (DecoratorMarkers) MadeOptionalOn(t typegraph.Type) *Version {
	versions := versionsOf(t, DecoratorMadeOptional)
	if len(versions) == 0 {
		return nil
	}
	return versions[0]
}

func (DecoratorMarkers) TypeChangedFrom(t typegraph.Type) *TypeChange {
	return typeChangeOf(t, DecoratorTypeChangedFrom)
}

func (DecoratorMarkers) ReturnTypeChangedFrom(t typegraph.Type) *TypeChange {
	return typeChangeOf(t, DecoratorReturnTypeChangedFrom)
}

func versionsOf(t typegraph.Type, decorator string) []*Version {
	var versions []*Version
	for _, dec := range typegraph.DecoratorsNamed(t, decorator) {
		if v := versionArg(dec); v != nil {
			versions = append(versions, v)
		}
	}
	return versions
}

func typeChangeOf(t typegraph.Type, decorator string) *TypeChange {
	for _, dec := range typegraph.DecoratorsNamed(t, decorator) {
		v := versionArg(dec)
		if v == nil {
			continue
		}
		change := &TypeChange{Version: v}
		if len(dec.Args) > 1 {
			change.OldType, _ = dec.Args[1].(typegraph.Type)
		}
		return change
	}
	return nil
}

func versionArg(dec *typegraph.Decorator) *Version {
	if len(dec.Args) == 0 {
		return nil
	}
	member, ok := dec.Args[0].(*typegraph.EnumMember)
	if !ok {
		return nil
	}
	return VersionOf(member)
}
