package format

// Formatter renders lint results.
type Formatter interface {
	Format(results []error) (string, error)
}

// CategoryFunc returns the category of a rule id, "" when unknown.
type CategoryFunc func(rule string) string

func categoryOf(f CategoryFunc, rule string) string {
	if f != nil {
		if category := f(rule); category != "" {
			return category
		}
	}
	return "unknown"
}
