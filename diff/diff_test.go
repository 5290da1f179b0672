package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tayjaybabee/mididiff/model"
)

func mustNote(t *testing.T, pitch uint8, start, duration uint32, velocity uint8) model.NoteEvent {
	t.Helper()
	n, err := model.NewNoteEvent(pitch, start, duration, velocity)
	assert.NoError(t, err)
	return n
}

func keysOf(notes []model.NoteEvent) map[model.NoteKey]bool {
	res := make(map[model.NoteKey]bool)
	for _, n := range notes {
		res[n.Key()] = true
	}
	return res
}

func TestSelfDiffIsEmpty(t *testing.T) {
	a := []model.NoteEvent{
		mustNote(t, 60, 0, 4, 100),
		mustNote(t, 64, 0, 4, 90),
		mustNote(t, 67, 8, 2, 80),
	}

	assert.Empty(t, Notes(a, a))
}

func TestEmptyInputs(t *testing.T) {
	a := []model.NoteEvent{mustNote(t, 60, 0, 4, 100)}

	assert := assert.New(t)
	assert.Empty(Notes(nil, nil))
	assert.Equal(a, Notes(a, nil))
	assert.Equal(a, Notes(nil, a))
}

func TestKeepsNotesPresentInExactlyOneInput(t *testing.T) {
	shared := mustNote(t, 60, 0, 4, 100)
	extra := mustNote(t, 64, 0, 4, 100)

	a := []model.NoteEvent{shared}
	b := []model.NoteEvent{shared, extra}

	res := Notes(a, b)

	assert := assert.New(t)
	assert.Len(res, 1)
	assert.Equal(extra, res[0])
}

func TestDiffIsSymmetric(t *testing.T) {
	a := []model.NoteEvent{
		mustNote(t, 60, 0, 4, 100),
		mustNote(t, 62, 4, 4, 100),
	}
	b := []model.NoteEvent{
		mustNote(t, 62, 4, 4, 100),
		mustNote(t, 65, 8, 4, 100),
	}

	assert.Equal(t, keysOf(Notes(a, b)), keysOf(Notes(b, a)))
}

func TestVelocityDoesNotAffectDiff(t *testing.T) {
	a := []model.NoteEvent{mustNote(t, 60, 0, 4, 30)}
	b := []model.NoteEvent{mustNote(t, 60, 0, 4, 110)}

	assert.Empty(t, Notes(a, b))
}

func TestDuplicatesWithinOneInputCollapse(t *testing.T) {
	first := mustNote(t, 60, 0, 4, 30)
	louder := mustNote(t, 60, 0, 4, 110)

	res := Notes([]model.NoteEvent{first, louder}, nil)

	assert := assert.New(t)
	assert.Len(res, 1)
	// the first occurrence is the one that survives
	assert.Equal(first, res[0])
}

func TestDisjointInputsProduceUnion(t *testing.T) {
	a := []model.NoteEvent{mustNote(t, 60, 0, 4, 100)}
	b := []model.NoteEvent{mustNote(t, 64, 0, 4, 100)}

	res := Notes(a, b)

	assert := assert.New(t)
	assert.Len(res, 2)
	assert.Equal(a[0], res[0])
	assert.Equal(b[0], res[1])
}
