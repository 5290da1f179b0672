package note

import (
	"log"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tayjaybabee/mididiff/model"
)

// pendingKey scopes open note-ons so equal pitches on different tracks or
// channels never pair with each other.
type pendingKey struct {
	track   int
	channel uint8
	pitch   uint8
}

type openNote struct {
	start    uint32
	velocity uint8
}

// Extract walks every track and pairs note-ons with note-offs into
// NoteEvents. A note-on with velocity 0 counts as a note-off. Overlapping
// notes of the same pitch pair innermost-first: an off closes the most
// recently opened on for its key. Offs with nothing open and ons that
// never close are absorbed without complaint since real-world files are
// full of both. Notes come out in the order their offs were encountered.
func Extract(s *smf.SMF) []model.NoteEvent {
	var res []model.NoteEvent

	for trackNo, events := range s.Tracks {
		open := make(map[pendingKey][]openNote)
		var absTicks uint32
		for _, event := range events {
			absTicks += event.Delta
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				k := pendingKey{track: trackNo, channel: channel, pitch: key}
				open[k] = append(open[k], openNote{start: absTicks, velocity: velocity})
			case event.Message.GetNoteEnd(&channel, &key):
				k := pendingKey{track: trackNo, channel: channel, pitch: key}
				stack := open[k]
				if len(stack) == 0 {
					// orphaned note-off
					continue
				}
				on := stack[len(stack)-1]
				open[k] = stack[:len(stack)-1]
				n, err := model.NewNoteEvent(key, on.start, absTicks-on.start, on.velocity)
				if err != nil {
					log.Printf("Skipping note (pitch %v at tick %v) because: %v", key, on.start, err)
					continue
				}
				res = append(res, n)
			}
		}
	}

	return res
}

type timedMessage struct {
	tick uint32
	msg  midi.Message
}

// ToSMF builds a single-track file containing exactly the given notes.
// The original track and channel layout is not preserved; everything
// lands on channel 0 of one track. ticksPerBeat only populates the file
// header, it plays no part in the tick arithmetic.
func ToSMF(notes []model.NoteEvent, ticksPerBeat uint16) (*smf.SMF, error) {
	if ticksPerBeat == 0 {
		return nil, &model.ValidationError{Field: "ticksPerBeat", Msg: "must be a positive number of ticks"}
	}

	sorted := make([]model.NoteEvent, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// Emit the on before the off for each note, then merge by tick. The
	// sort is stable and durations are >= 1, so an off can never land in
	// front of its own on.
	events := make([]timedMessage, 0, len(sorted)*2)
	for _, n := range sorted {
		events = append(events, timedMessage{tick: n.Start, msg: midi.NoteOn(0, n.Pitch, n.Velocity)})
		events = append(events, timedMessage{tick: n.Start + n.Duration, msg: midi.NoteOff(0, n.Pitch)})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var track smf.Track
	var lastTick uint32
	for _, evt := range events {
		track.Add(evt.tick-lastTick, evt.msg)
		lastTick = evt.tick
	}
	track.Close(0)

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerBeat)
	res.Add(track)
	return res, nil
}
