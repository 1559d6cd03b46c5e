package trigger

import (
	"iter"
	"strings"
)

// UniqueSplitPaths expands every dotted path into the sequence of its
// prefixes and yields each distinct prefix exactly once, parents before
// children, preserving the first-seen order of unrelated roots:
//
//	["a.b.c", "a.b.d"] -> "a", "a.b", "a.b.c", "a.b.d"
//
// Generating triggers from this sequence instead of the raw paths ensures
// each intermediate table shared by several longer paths gets its trigger
// exactly once.
func UniqueSplitPaths(paths []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, path := range paths {
			segs := strings.Split(path, ".")
			for i := range segs {
				prefix := strings.Join(segs[:i+1], ".")
				if _, ok := seen[prefix]; ok {
					continue
				}
				seen[prefix] = struct{}{}
				if !yield(prefix) {
					return
				}
			}
		}
	}
}
