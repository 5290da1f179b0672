package model

import "fmt"

// NoteEvent is one sounded note: pitch, absolute start tick within its
// track, duration in ticks and the velocity it was struck with.
// Treat values as immutable once constructed.
type NoteEvent struct {
	Pitch    uint8
	Start    uint32
	Duration uint32
	Velocity uint8
}

// NoteKey is the identity of a note for diffing. Velocity is deliberately
// left out: two notes that differ only in loudness count as the same note,
// which is what lets a map keyed by NoteKey act as a note set.
type NoteKey struct {
	Pitch    uint8
	Start    uint32
	Duration uint32
}

// ValidationError reports a NoteEvent field (or a ticks-per-beat value)
// outside its legal range.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Msg)
}

// NewNoteEvent validates the MIDI ranges before handing the note out:
// pitch and velocity in [0,127], duration at least one tick.
func NewNoteEvent(pitch uint8, start, duration uint32, velocity uint8) (NoteEvent, error) {
	var blank NoteEvent
	if pitch > 127 {
		return blank, &ValidationError{Field: "pitch", Msg: fmt.Sprintf("%v is not in [0,127]", pitch)}
	}
	if velocity > 127 {
		return blank, &ValidationError{Field: "velocity", Msg: fmt.Sprintf("%v is not in [0,127]", velocity)}
	}
	if duration < 1 {
		return blank, &ValidationError{Field: "duration", Msg: "must be at least 1 tick"}
	}
	return NoteEvent{Pitch: pitch, Start: start, Duration: duration, Velocity: velocity}, nil
}

func (n NoteEvent) Key() NoteKey {
	return NoteKey{Pitch: n.Pitch, Start: n.Start, Duration: n.Duration}
}

func (n NoteEvent) String() string {
	return fmt.Sprintf("Note(p=%v, start=%v, dur=%v, vel=%v)", n.Pitch, n.Start, n.Duration, n.Velocity)
}
