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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/television/signal"
	"github.com/beamloop/compositevideo/television/specification"
	"github.com/beamloop/compositevideo/test"
	"github.com/beamloop/compositevideo/wavwriter"
)

func TestNew(t *testing.T) {
	_, err := wavwriter.New("out.wav", 0)
	test.ExpectFailure(t, err)

	aw, err := wavwriter.New("out.wav", 786885.25)
	test.DemandSuccess(t, err)
	test.ExpectImplements(t, aw, (television.WaveformRecorder)(nil))
}

func TestRoundTrip(t *testing.T) {
	spec := specification.SpecNTSC40x24
	filename := filepath.Join(t.TempDir(), "waveform.wav")

	aw, err := wavwriter.New(filename, spec.SampleRate)
	test.DemandSuccess(t, err)

	// a recognisable stretch of waveform. sync, blank, black, grey, white
	stream := []signal.Sample{
		specification.LevelSync,
		specification.LevelBlank,
		specification.LevelBlack,
		specification.BrightnessToSample(128),
		specification.LevelWhite,
	}
	for _, s := range stream {
		err = aw.Record(s)
		test.DemandSuccess(t, err)
	}

	err = aw.EndRecording()
	test.DemandSuccess(t, err)

	f, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, int(dec.SampleRate), int(spec.SampleRate))
	test.ExpectEquality(t, int(dec.NumChans), 1)
	test.ExpectEquality(t, int(dec.BitDepth), 16)
	test.DemandEquality(t, len(buf.Data), len(stream))

	// every sample scaled onto the signed 16 bit range
	for i, s := range stream {
		test.ExpectEquality(t, buf.Data[i], (int(s)<<6)-32768, i)
	}
}
