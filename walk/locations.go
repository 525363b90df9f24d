// Package walk holds the shared pieces of the type graph walkers.
package walk

import (
	"strings"

	"github.com/speakeasy-api/schemagraph/errors"
)

const (
	// ErrTerminate is a sentinel error that can be returned from a MatchFunc to detect when to terminate the walk.
	// When used with the iterator API, users can check for this error and break out of the for loop.
	ErrTerminate = errors.Error("terminate")
)

// LocationContext represents the context of where an element is located within its parent.
// It uses generics to work with different MatchFunc types from different packages.
type LocationContext[T any] struct {
	ParentMatchFunc T
	ParentField     string
	ParentKey       *string
}

// Locations represents a slice of location contexts that can be converted to a path.
type Locations[T any] []LocationContext[T]

// ToPath renders the locations as a dotted path such as "MyService.models.Widget.properties.name".
func (l Locations[T]) ToPath() string {
	parts := make([]string, 0, len(l)*2)
	for _, location := range l {
		if location.ParentField != "" {
			parts = append(parts, location.ParentField)
		}
		if location.ParentKey != nil {
			parts = append(parts, *location.ParentKey)
		}
	}
	return strings.Join(parts, ".")
}

// IsParent reports whether the closest field in the locations is the given field.
func (l Locations[T]) IsParent(field string) bool {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].ParentField != "" {
			return l[i].ParentField == field
		}
	}
	return false
}
