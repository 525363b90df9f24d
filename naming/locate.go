package naming

import (
	"log/slog"

	"github.com/speakeasy-api/schemagraph/typegraph"
)

// AdditionalPropertyName is the display name of the value type of a map-like model.
const AdditionalPropertyName = "AdditionalProperty"

// PathEntry is one step of a context path.
type PathEntry struct {
	DisplayName string
	Type        typegraph.Type
}

// Path is a route from a named root down to a target type. An empty path means the target was not found.
type Path []PathEntry

// LocatePath searches depth-first from root for target and returns the path to it, or nil when
// target is not reachable. The first path found in declaration order wins. When
// needsEffectiveTypeResolution is set, an anonymous root model is replaced by its effective named
// model before its properties are searched.
func (c *Context) LocatePath(target, root typegraph.Type, rootDisplayName string, needsEffectiveTypeResolution bool) Path {
	return c.locate(nil, target, root, rootDisplayName, needsEffectiveTypeResolution)
}

func (c *Context) locate(seed Path, target, root typegraph.Type, displayName string, needsEffectiveTypeResolution bool) Path {
	l := &locator{
		target:  target,
		visited: make(map[typegraph.Type]bool),
		path:    append(Path(nil), seed...),
	}
	if !l.search(root, displayName, needsEffectiveTypeResolution) {
		return nil
	}

	c.Logger.Debug("located context path", slog.String("root", displayName), slog.Int("length", len(l.path)))
	return l.path
}

type locator struct {
	target  typegraph.Type
	visited map[typegraph.Type]bool
	path    Path
}

func (l *locator) push(displayName string, t typegraph.Type) {
	l.path = append(l.path, PathEntry{DisplayName: displayName, Type: t})
}

func (l *locator) pop() {
	l.path = l.path[:len(l.path)-1]
}

func (l *locator) search(current typegraph.Type, displayName string, needsEffectiveTypeResolution bool) bool {
	if current == nil || l.visited[current] {
		return false
	}

	switch current.Kind() {
	case typegraph.KindModel, typegraph.KindUnion, typegraph.KindString, typegraph.KindNumber, typegraph.KindBoolean:
	default:
		return false
	}

	l.visited[current] = true

	if current == l.target {
		l.push(displayName, current)
		return true
	}

	switch current := current.(type) {
	case *typegraph.Model:
		return l.searchModel(current, displayName, needsEffectiveTypeResolution)
	case *typegraph.Union:
		for _, v := range current.Variants {
			if l.search(v.Type, displayName, false) {
				return true
			}
		}
	}
	return false
}

func (l *locator) searchModel(m *typegraph.Model, displayName string, needsEffectiveTypeResolution bool) bool {
	if m.Part != nil {
		return l.search(m.Part, displayName, false)
	}

	if isPureCollection(m) {
		return l.search(m.Indexer.Value, Singular(displayName), false)
	}

	if needsEffectiveTypeResolution {
		m = typegraph.EffectiveModelType(m, nil)
	}

	l.push(displayName, m)
	for prop := range m.Properties.Values() {
		if l.search(prop.Type, prop.Name, false) {
			return true
		}
	}

	if source := m.SourceModel; source != nil && source.Name == "Record" && source.Indexer != nil {
		if l.search(source.Indexer.Value, AdditionalPropertyName, false) {
			return true
		}
	}
	if m.Indexer != nil {
		if l.search(m.Indexer.Value, AdditionalPropertyName, false) {
			return true
		}
	}
	if base := m.BaseModel; base != nil && base.Name == "Record" && base.Indexer != nil {
		if l.search(base.Indexer.Value, AdditionalPropertyName, false) {
			return true
		}
	}
	l.pop()

	if m.BaseModel != nil {
		if l.search(m.BaseModel, m.BaseModel.Name, false) {
			return true
		}
	}
	for _, derived := range m.DerivedModels {
		if l.search(derived, derived.Name, false) {
			return true
		}
	}
	return false
}

// isPureCollection reports whether m is an array, or a Record, without properties of its own.
func isPureCollection(m *typegraph.Model) bool {
	if m.Indexer == nil || m.Indexer.Key == nil || m.Properties.Len() > 0 {
		return false
	}
	switch m.Indexer.Key.Name {
	case "integer":
		return true
	case "string":
		return m.Name == "Record"
	}
	return false
}
