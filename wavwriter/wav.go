// This file is part of CompositeVideo.
//
// CompositeVideo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CompositeVideo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CompositeVideo.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter allows writing of the composite video waveform to disk as
// a WAV file. The file can then be loaded into an audio editor and the sync
// pulses, porches and picture lines inspected sample by sample.
//
// Note that the waveform is buffered in memory in its entirety and written to
// disk when the recording ends. It is therefore probably only suitable for
// short captures.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/logger"
	"github.com/beamloop/compositevideo/television/signal"
)

const pcmBitDepth = 16

// WavWriter implements the television.WaveformRecorder interface.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type. The
// sample rate should be that of the television the WavWriter is attached to.
//
// The WAV format carries an integer sample rate so the fractional part of the
// generator's rate is dropped. The pitch error this introduces is well below
// anything audible.
func New(filename string, sampleRate float64) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("wavwriter: bad sample rate: %.2f", sampleRate)
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: int(sampleRate),
		buffer:     make([]int, 0, 1024),
	}

	return aw, nil
}

// Record implements the television.WaveformRecorder interface.
func (aw *WavWriter) Record(s signal.Sample) error {
	// scale the 10 bit DAC value onto the signed 16 bit PCM range
	aw.buffer = append(aw.buffer, (int(s)<<6)-32768)
	return nil
}

// EndRecording implements the television.WaveformRecorder interface. The
// buffered waveform is written to disk.
func (aw *WavWriter) EndRecording() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, pcmBitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: pcmBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
