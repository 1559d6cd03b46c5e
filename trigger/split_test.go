package trigger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trigwatch/trigwatch/trigger"
)

func collect(paths []string) []string {
	var out []string
	for p := range trigger.UniqueSplitPaths(paths) {
		out = append(out, p)
	}
	return out
}

func TestUniqueSplitPaths(t *testing.T) {
	t.Run("NotDotted", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, collect([]string{"a", "b"}))
	})

	t.Run("Dotted", func(t *testing.T) {
		assert.Equal(t,
			[]string{"a", "a.b", "a.b.c", "e", "e.f"},
			collect([]string{"a.b.c", "e.f"}))
	})

	t.Run("SharedPrefixes", func(t *testing.T) {
		assert.Equal(t,
			[]string{"a", "a.b", "a.b.c", "a.b.d"},
			collect([]string{"a.b.c", "a.b.d"}))
	})

	t.Run("DuplicateInput", func(t *testing.T) {
		assert.Equal(t, []string{"a", "a.b"}, collect([]string{"a.b", "a.b", "a"}))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, collect(nil))
	})

	t.Run("Lazy", func(t *testing.T) {
		// The sequence honors an early break.
		var got []string
		for p := range trigger.UniqueSplitPaths([]string{"a.b.c"}) {
			got = append(got, p)
			if len(got) == 2 {
				break
			}
		}
		assert.Equal(t, []string{"a", "a.b"}, got)
	})
}
