package diff

import "github.com/tayjaybabee/mididiff/model"

// OnlyIn returns the notes of a that have no counterpart in b, under the
// velocity-insensitive NoteKey identity. Duplicates within a collapse to
// their first occurrence, so the surviving velocity is the earliest seen.
func OnlyIn(a, b []model.NoteEvent) []model.NoteEvent {
	other := make(map[model.NoteKey]bool, len(b))
	for _, n := range b {
		other[n.Key()] = true
	}

	var res []model.NoteEvent
	seen := make(map[model.NoteKey]bool, len(a))
	for _, n := range a {
		k := n.Key()
		if other[k] || seen[k] {
			continue
		}
		seen[k] = true
		res = append(res, n)
	}
	return res
}

// Notes is the symmetric difference: every note present in exactly one of
// a and b. Output order is a's survivors in encounter order followed by
// b's, which keeps the result deterministic regardless of how the inputs
// were produced.
func Notes(a, b []model.NoteEvent) []model.NoteEvent {
	return append(OnlyIn(a, b), OnlyIn(b, a)...)
}
