package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/spaghettifunk/zippy/engine/core"
)

// Sound is a decoded clip held in memory so any number of players can
// stream it at once.
type Sound struct {
	Name   string
	buffer *beep.Buffer
}

func (s *Sound) Len() int {
	return s.buffer.Len()
}

func (s *Sound) Duration() float64 {
	return s.buffer.Format().SampleRate.D(s.buffer.Len()).Seconds()
}

func (s *Sound) stream() beep.StreamSeeker {
	return s.buffer.Streamer(0, s.buffer.Len())
}

// DecodeSound reads a wav clip and resamples it to rate when they differ.
func DecodeSound(name string, r io.Reader, rate beep.SampleRate) (*Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		err = fmt.Errorf("func DecodeSound - failed to decode `%s`: %w", name, err)
		core.LogError("%s", err)
		return nil, err
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != rate {
		source = beep.Resample(4, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}
	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return &Sound{Name: name, buffer: buffer}, nil
}

// NewSound wraps samples that were produced in code.
func NewSound(name string, s beep.Streamer, format beep.Format) *Sound {
	buffer := beep.NewBuffer(format)
	buffer.Append(s)
	return &Sound{Name: name, buffer: buffer}
}
