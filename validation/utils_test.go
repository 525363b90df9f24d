package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSortValidationErrors_Success(t *testing.T) {
	t.Parallel()

	plain := errors.New("not a validation error")
	errs := []error{
		&Error{UnderlyingError: errors.New("third"), Node: &yaml.Node{Line: 10, Column: 5}},
		plain,
		&Error{UnderlyingError: errors.New("first"), Node: &yaml.Node{Line: 2, Column: 3}},
		&Error{UnderlyingError: errors.New("second-b"), Node: &yaml.Node{Line: 5, Column: 8}, Severity: SeverityWarning},
		&Error{UnderlyingError: errors.New("second-a"), Node: &yaml.Node{Line: 5, Column: 8}, Severity: SeverityError},
	}

	SortValidationErrors(errs)

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		var vErr *Error
		if errors.As(err, &vErr) {
			messages = append(messages, vErr.UnderlyingError.Error())
		} else {
			messages = append(messages, err.Error())
		}
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "third", "not a validation error"}, messages)
}

func TestSortValidationErrors_SameLocationByRule(t *testing.T) {
	t.Parallel()

	node := &yaml.Node{Line: 1, Column: 1}
	errs := []error{
		NewValidationError(SeverityWarning, "z-rule", errors.New("a"), node),
		NewValidationError(SeverityWarning, "a-rule", errors.New("b"), node),
	}

	SortValidationErrors(errs)

	var first *Error
	require.ErrorAs(t, errs[0], &first)
	assert.Equal(t, "a-rule", first.Rule)
}

func TestValidationContext_CollectsErrors(t *testing.T) {
	t.Parallel()

	ctx := ContextWithValidationContext(context.Background())
	assert.Nil(t, GetValidationErrors(ctx))

	AddValidationError(ctx, errors.New("one"))
	AddValidationError(ctx, errors.New("two"))
	require.Len(t, GetValidationErrors(ctx), 2)

	AddValidationError(context.Background(), errors.New("dropped"))
	assert.Nil(t, GetValidationErrors(context.Background()))
}
