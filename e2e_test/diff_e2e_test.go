//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tayjaybabee/mididiff/cmd"
	"github.com/tayjaybabee/mididiff/midi"
	"github.com/tayjaybabee/mididiff/model"
	"github.com/tayjaybabee/mididiff/note"
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

func writeTempMidi(t *testing.T, dir string, notes []model.NoteEvent) string {
	t.Helper()
	s, err := note.ToSMF(notes, 480)
	assert.NoError(t, err)
	path := filepath.Join(dir, uuid.New().String()+".mid")
	assert.NoError(t, midi.WriteMidiFile(path, s))
	return path
}

func smfBytes(t *testing.T, notes []model.NoteEvent) []byte {
	t.Helper()
	s, err := note.ToSMF(notes, 480)
	assert.NoError(t, err)
	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	assert.NoError(t, err)
	return buf.Bytes()
}

func multipartBody(t *testing.T, parts map[string][]byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range parts {
		fw, err := w.CreateFormFile(name, name+".mid")
		assert.NoError(t, err)
		_, err = fw.Write(data)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestDiffCommandEndToEnd(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	shared := mustNote(t, 60, 0, 4, 100)
	onlyA := mustNote(t, 64, 4, 4, 90)
	onlyB := mustNote(t, 67, 8, 2, 80)

	fileA := writeTempMidi(t, dir, []model.NoteEvent{shared, onlyA})
	fileB := writeTempMidi(t, dir, []model.NoteEvent{shared, onlyB})
	outFile := filepath.Join(dir, "diff.mid")

	assert.NoError(cmd.RunDiff(fileA, fileB, outFile, false))

	out, err := midi.ReadMidiFile(outFile)
	assert.NoError(err)
	extracted := note.Extract(out)
	assert.Equal(keysOf([]model.NoteEvent{onlyA, onlyB}), keysOf(extracted))

	// output ticks-per-beat comes from file A
	assert.Equal(uint16(480), midi.TicksPerBeat(out))

	// second run must not clobber the first output
	assert.NoError(cmd.RunDiff(fileA, fileB, outFile, false))
	sibling := filepath.Join(dir, "diff_1.mid")
	_, err = midi.ReadMidiFile(sibling)
	assert.NoError(err)
}

func TestIdenticalFilesDiffToSilence(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	notes := []model.NoteEvent{mustNote(t, 60, 0, 4, 100)}
	fileA := writeTempMidi(t, dir, notes)
	outFile := filepath.Join(dir, "diff.mid")

	assert.NoError(cmd.RunDiff(fileA, fileA, outFile, true))

	out, err := midi.ReadMidiFile(outFile)
	assert.NoError(err)
	assert.Empty(note.Extract(out))
}

func TestDiffEndpointE2E(t *testing.T) {
	assert := assert.New(t)

	shared := mustNote(t, 60, 0, 4, 100)
	onlyB := mustNote(t, 64, 0, 4, 90)

	body, contentType := multipartBody(t, map[string][]byte{
		"a": smfBytes(t, []model.NoteEvent{shared}),
		"b": smfBytes(t, []model.NoteEvent{shared, onlyB}),
	})
	req := httptest.NewRequest(http.MethodPost, "/diff", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	cmd.HandleDiff(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.Equal("0", resp.Header.Get("X-Notes-Only-In-A"))
	assert.Equal("1", resp.Header.Get("X-Notes-Only-In-B"))

	parsed, err := smf.ReadFrom(bytes.NewReader(respBody))
	assert.NoError(err)
	assert.Equal(keysOf([]model.NoteEvent{onlyB}), keysOf(note.Extract(parsed)))
}

func TestDiffSummaryEndpointE2E(t *testing.T) {
	assert := assert.New(t)

	body, contentType := multipartBody(t, map[string][]byte{
		"a": smfBytes(t, []model.NoteEvent{mustNote(t, 60, 0, 4, 100)}),
		"b": smfBytes(t, []model.NoteEvent{mustNote(t, 64, 0, 4, 90)}),
	})
	req := httptest.NewRequest(http.MethodPost, "/diff/summary", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	cmd.HandleDiffSummary(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert.Equal(200, resp.StatusCode)

	var summary model.DiffSummary
	assert.NoError(json.Unmarshal(respBody, &summary))
	assert.Equal(model.DiffSummary{OnlyInA: 1, OnlyInB: 1}, summary)
}

func TestDiffEndpointRejectsMissingPart(t *testing.T) {
	assert := assert.New(t)

	body, contentType := multipartBody(t, map[string][]byte{
		"a": smfBytes(t, []model.NoteEvent{mustNote(t, 60, 0, 4, 100)}),
	})
	req := httptest.NewRequest(http.MethodPost, "/diff", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	cmd.HandleDiff(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert.Equal(400, resp.StatusCode)

	var errResp model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errResp))
	assert.Contains(errResp.Error, "b")
}
