package typegraph

// PropertyFilter selects the properties taking part in an effective type computation.
// A nil filter selects every property.
type PropertyFilter func(*ModelProperty) bool

// RootSourceProperty follows the spread ancestry of prop back to the declaration it was copied from.
func RootSourceProperty(prop *ModelProperty) *ModelProperty {
	for prop.SourceProperty != nil {
		prop = prop.SourceProperty
	}
	return prop
}

// EffectiveModelType returns the named model an anonymous model is equivalent to: when every
// selected property traces back to the same named model and that model (with its base models)
// exposes the same number of selected properties, that model is returned. Otherwise m is returned.
func EffectiveModelType(m *Model, filter PropertyFilter) *Model {
	if m == nil {
		return nil
	}

	selected := 0
	var source *Model
	for _, prop := range m.Properties.All() {
		if filter != nil && !filter(prop) {
			continue
		}
		selected++

		owner := RootSourceProperty(prop).Model
		if owner == nil || owner == m || owner.Name == "" {
			return m
		}
		if source == nil {
			source = owner
		} else if source != owner {
			return m
		}
	}

	if m.Name != "" && selected == m.Properties.Len() {
		return m
	}
	if source == nil {
		return m
	}
	if countInheritedProperties(source, filter) != selected {
		return m
	}
	return source
}

func countInheritedProperties(m *Model, filter PropertyFilter) int {
	count := 0
	seen := make(map[*Model]bool)
	for ; m != nil && !seen[m]; m = m.BaseModel {
		seen[m] = true
		for prop := range m.Properties.Values() {
			if filter == nil || filter(prop) {
				count++
			}
		}
	}
	return count
}
