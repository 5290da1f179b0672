package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tayjaybabee/mididiff/constants"
)

// MalformedStreamError reports bytes that could not be parsed as a
// standard MIDI file.
type MalformedStreamError struct {
	Err error
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("Error parsing midi stream... %s", e.Err.Error())
}

func (e *MalformedStreamError) Unwrap() error {
	return e.Err
}

// Decode parses an SMF stream.
func Decode(r io.Reader) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s = &blank
			e = &MalformedStreamError{Err: errors.New(r)}
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return &blank, &MalformedStreamError{Err: err}
	}

	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		var blank smf.SMF
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	return Decode(bytes.NewReader(dat))
}

func WriteMidiFile(filepath string, s *smf.SMF) error {
	f, err := os.Create(filepath)
	if err != nil {
		return errors.New("Error creating midi file... " + err.Error())
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return errors.New("Error writing midi file... " + err.Error())
	}
	return nil
}

// TicksPerBeat reads the metric resolution off a decoded file, falling
// back to the conventional 480 for SMPTE-timed files.
func TicksPerBeat(s *smf.SMF) uint16 {
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		return mt.Resolution()
	}
	return constants.DefaultTicksPerBeat
}
