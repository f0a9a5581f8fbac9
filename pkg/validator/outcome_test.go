package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/servicekit/pkg/validator"
)

func TestOutcome_Tag(t *testing.T) {
	t.Parallel()

	t.Run("matched nil is not a failure", func(t *testing.T) {
		t.Parallel()
		out := validator.Matched(nil)
		assert.True(t, out.Matched())
		assert.Nil(t, out.Value())
	})

	t.Run("matched zero values stay matched", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{"", 0, false, []any{}, map[string]any{}} {
			out := validator.Matched(v)
			assert.True(t, out.Matched())
			assert.Equal(t, v, out.Value())
		}
	})

	t.Run("failed carries no payload", func(t *testing.T) {
		t.Parallel()
		out := validator.Failed()
		assert.False(t, out.Matched())
		assert.Nil(t, out.Value())
	})

	t.Run("string form", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "matched(1)", validator.Matched(1).String())
		assert.Equal(t, "failed", validator.Failed().String())
	})
}

func TestOutcome_Conforms(t *testing.T) {
	t.Parallel()

	t.Run("plain matched value conforms", func(t *testing.T) {
		t.Parallel()
		assert.True(t, validator.Matched("x").Conforms())
		assert.True(t, validator.Matched(nil).Conforms())
	})

	t.Run("failed never conforms", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.Failed().Conforms())
	})

	t.Run("tuple payload of matched outcomes conforms", func(t *testing.T) {
		t.Parallel()
		out := validator.Matched(validator.Tuple{
			validator.Matched("name"),
			validator.Matched("svc1"),
		})
		assert.True(t, out.Conforms())
	})

	t.Run("embedded failure breaks conformance", func(t *testing.T) {
		t.Parallel()
		out := validator.Matched(validator.Tuple{
			validator.Matched("name"),
			validator.Failed(),
		})
		assert.False(t, out.Conforms())
	})

	t.Run("conformance descends nested tuples", func(t *testing.T) {
		t.Parallel()
		out := validator.Matched(validator.Tuple{
			validator.Matched(validator.Tuple{validator.Failed()}),
		})
		assert.False(t, out.Conforms())
	})
}
