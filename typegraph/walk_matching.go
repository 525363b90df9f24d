package typegraph

import (
	"fmt"

	walkpkg "github.com/speakeasy-api/schemagraph/walk"
)

// Matcher is a struct that can be used to match specific nodes of the type graph.
type Matcher struct {
	Namespace     func(*Namespace) error
	Model         func(*Model) error
	ModelProperty func(*ModelProperty) error
	Union         func(*Union) error
	UnionVariant  func(*UnionVariant) error
	Operation     func(*Operation) error
	Interface     func(*Interface) error
	Enum          func(*Enum) error
	EnumMember    func(*EnumMember) error
	Scalar        func(*Scalar) error
	Any           func(Type) error // Any will be called along with the other functions above on a match of a node
}

// MatchFunc represents a particular node of the type graph that can be matched.
// Pass it a Matcher with the appropriate functions populated to match the node kind(s) you are interested in.
type MatchFunc func(Matcher) error

// Use the shared walking infrastructure
type (
	LocationContext = walkpkg.LocationContext[MatchFunc]
	Locations       = walkpkg.Locations[MatchFunc]
)

func getMatchFunc(target Type) MatchFunc {
	return func(m Matcher) error {
		if m.Any != nil {
			if err := m.Any(target); err != nil {
				return err
			}
		}

		switch t := target.(type) {
		case *Namespace:
			return call(m.Namespace, t)
		case *Model:
			return call(m.Model, t)
		case *ModelProperty:
			return call(m.ModelProperty, t)
		case *Union:
			return call(m.Union, t)
		case *UnionVariant:
			return call(m.UnionVariant, t)
		case *Operation:
			return call(m.Operation, t)
		case *Interface:
			return call(m.Interface, t)
		case *Enum:
			return call(m.Enum, t)
		case *EnumMember:
			return call(m.EnumMember, t)
		case *Scalar:
			return call(m.Scalar, t)
		default:
			panic(fmt.Sprintf("no match handler registered for kind %v", target.Kind()))
		}
	}
}

func call[T any](specific func(*T) error, target *T) error {
	if specific == nil {
		return nil
	}
	return specific(target)
}
