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

package videoout_test

import (
	"testing"

	"github.com/beamloop/compositevideo/hardware/clocks"
	"github.com/beamloop/compositevideo/hardware/dac"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/hardware/tc"
	"github.com/beamloop/compositevideo/hardware/videoout"
	"github.com/beamloop/compositevideo/television/signal"
	"github.com/beamloop/compositevideo/television/specification"
	"github.com/beamloop/compositevideo/test"
)

type wire struct {
	samples []signal.Sample
}

func (w *wire) Signal(s signal.Sample) error {
	w.samples = append(w.samples, s)
	return nil
}

func newTestEngine(t *testing.T) (*videoout.Engine, *dmac.Controller, *dac.DAC) {
	t.Helper()

	ctrl := dmac.NewController()
	tmr := tc.NewTimer(clocks.GCLK0)
	d := dac.NewDAC()

	e, err := videoout.NewNTSC40x24(ctrl, tmr, d)
	test.DemandSuccess(t, err)

	return e, ctrl, d
}

func TestStateMachine(t *testing.T) {
	e, _, _ := newTestEngine(t)

	test.ExpectEquality(t, e.State(), videoout.Uninitialised)

	// pixel operations before Begin() are quiet no-ops
	e.DrawPixel(0, 0, 255)
	e.Clear()
	test.ExpectEquality(t, e.Sample(9, 0), uint16(0))

	test.ExpectSuccess(t, e.Begin())
	test.ExpectEquality(t, e.State(), videoout.Running)

	// Begin() on a running engine is a no-op success
	test.ExpectSuccess(t, e.Begin())
	test.ExpectEquality(t, e.State(), videoout.Running)
}

func TestBeginChannelExhaustion(t *testing.T) {
	e, ctrl, _ := newTestEngine(t)

	// drain the channel pool before the engine gets a look in
	channels := make([]*dmac.Channel, 0, dmac.NumChannels)
	for range dmac.NumChannels {
		chn, err := ctrl.Allocate()
		test.DemandSuccess(t, err)
		channels = append(channels, chn)
	}

	test.ExpectFailure(t, e.Begin())
	test.ExpectEquality(t, e.State(), videoout.Uninitialised)

	// freeing a channel lets a later Begin() succeed
	test.DemandSuccess(t, channels[0].Free())
	test.ExpectSuccess(t, e.Begin())
	test.ExpectEquality(t, e.State(), videoout.Running)
}

func TestNewEngineValidation(t *testing.T) {
	ctrl := dmac.NewController()
	tmr := tc.NewTimer(clocks.GCLK0)
	d := dac.NewDAC()

	// geometry must match the mode
	_, err := videoout.NewEngine(specification.SpecNTSC40x24, 30, 24, ctrl, tmr, d)
	test.ExpectFailure(t, err)

	// all collaborators are required
	_, err = videoout.NewEngine(specification.SpecNTSC40x24, 40, 24, nil, tmr, d)
	test.ExpectFailure(t, err)
}

func TestChainLayout(t *testing.T) {
	e, _, d := newTestEngine(t)
	test.DemandSuccess(t, e.Begin())

	spec := specification.SpecNTSC40x24
	ch := e.Chain()
	test.DemandSuccess(t, ch.IsLooped())
	test.ExpectEquality(t, ch.Len(), spec.NumDescriptors)

	// vertical sync blocks
	test.ExpectEquality(t, ch.At(0).Count, uint16(2300))
	test.ExpectEquality(t, ch.At(0).Width, dmac.HWord)
	test.ExpectSuccess(t, ch.At(0).SrcInc)
	test.ExpectEquality(t, ch.At(0).Next, 1)
	test.ExpectEquality(t, ch.At(218).Count, uint16(2350))

	// row descriptors reference the frame buffer row by oversampled
	// index. the stored source index is the end of the row
	for i := 1; i <= 216; i++ {
		dsc := ch.At(i)
		test.ExpectEquality(t, dsc.Count, uint16(spec.SamplesPerRow), "descriptor", i)
		test.ExpectEquality(t, dsc.Src.Index, ((i-1)/spec.Oversample)*spec.SamplesPerRow+spec.SamplesPerRow, "descriptor", i)
		test.ExpectSuccess(t, dsc.SrcInc, "descriptor", i)
	}
	for i := 219; i <= 434; i++ {
		dsc := ch.At(i)
		test.ExpectEquality(t, dsc.Src.Index, ((i-219)/spec.Oversample)*spec.SamplesPerRow+spec.SamplesPerRow, "descriptor", i)
	}

	// marker descriptors are single byte transfers from a fixed source
	for _, i := range []int{217, 435} {
		dsc := ch.At(i)
		test.ExpectEquality(t, dsc.Count, uint16(1), "descriptor", i)
		test.ExpectEquality(t, dsc.Width, dmac.Byte, "descriptor", i)
		test.ExpectFailure(t, dsc.SrcInc, "descriptor", i)
	}

	// the last descriptor closes the loop
	test.ExpectEquality(t, ch.At(435).Next, 0)

	// one pass of the loop delivers two fields of samples to the DAC
	// plus the two marker beats
	test.ExpectEquality(t, ch.SamplesPerLoop(d), spec.SamplesPerLoop)
	test.ExpectEquality(t, ch.BeatsPerLoop(), spec.SamplesPerLoop+2)
}

func TestClearAndDrawPixel(t *testing.T) {
	e, _, _ := newTestEngine(t)
	test.DemandSuccess(t, e.Begin())

	spec := specification.SpecNTSC40x24

	e.Clear()
	for row := range 24 {
		for col := range 40 {
			if e.Sample(spec.VisibleOffset+col, row) != uint16(specification.LevelBlack) {
				t.Fatalf("visible sample (%d,%d) not black after clear", col, row)
			}
		}
	}

	// sync and porch columns are fixed at allocation time
	test.ExpectEquality(t, e.Sample(0, 0), uint16(specification.LevelSync))
	test.ExpectEquality(t, e.Sample(4, 0), uint16(specification.LevelBlank))
	test.ExpectEquality(t, e.Sample(49, 0), uint16(specification.LevelBlank))

	e.DrawPixel(0, 0, 255)
	test.ExpectEquality(t, e.Sample(spec.VisibleOffset, 0), uint16(specification.LevelWhite))

	e.DrawPixel(1, 0, 128)
	test.ExpectEquality(t, e.Sample(spec.VisibleOffset+1, 0), uint16(185))

	// out of range writes change nothing
	e.DrawPixel(40, 0, 255)
	e.DrawPixel(0, 24, 255)
	e.DrawPixel(-1, -1, 255)
	test.ExpectEquality(t, e.Sample(spec.VisibleOffset+39, 23), uint16(specification.LevelBlack))
	test.ExpectEquality(t, e.Sample(49, 0), uint16(specification.LevelBlank))

	e.Clear()
	test.ExpectEquality(t, e.Sample(spec.VisibleOffset, 0), uint16(specification.LevelBlack))
}

func TestRotation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	test.DemandSuccess(t, e.Begin())

	white := uint16(specification.LevelWhite)

	// 90 degrees. logical dimensions swap
	e.SetRotation(1)
	test.ExpectEquality(t, e.Width(), 24)
	test.ExpectEquality(t, e.Height(), 40)

	e.DrawPixel(0, 0, 255)
	test.ExpectEquality(t, e.Sample(9+39, 0), white)
	e.DrawPixel(23, 39, 255)
	test.ExpectEquality(t, e.Sample(9+0, 23), white)

	// out of range against the rotated dimensions
	e.DrawPixel(30, 0, 255)
	test.ExpectEquality(t, e.Sample(9+30, 0), uint16(specification.LevelBlack))

	// 180 degrees maps the origin to the far corner
	e.Clear()
	e.SetRotation(2)
	e.DrawPixel(0, 0, 255)
	test.ExpectEquality(t, e.Sample(9+39, 23), white)

	// 270 degrees
	e.Clear()
	e.SetRotation(3)
	e.DrawPixel(0, 0, 255)
	test.ExpectEquality(t, e.Sample(9+0, 23), white)

	// unrecognised rotation values apply no transform
	e.Clear()
	e.SetRotation(7)
	test.ExpectEquality(t, e.Rotation(), 7)
	test.ExpectEquality(t, e.Width(), 40)
	test.ExpectEquality(t, e.Height(), 24)
	e.DrawPixel(0, 0, 255)
	test.ExpectEquality(t, e.Sample(9, 0), white)
}

func TestFieldFlag(t *testing.T) {
	e, ctrl, d := newTestEngine(t)

	w := &wire{}
	d.Attach(w)

	test.DemandSuccess(t, e.Begin())
	test.ExpectEquality(t, e.Field(), uint8(0))

	// the flag can be overwritten at any time
	e.SetField(9)
	test.ExpectEquality(t, e.Field(), uint8(9))

	// beats to the end of the odd field's rows, then the marker
	oddBeats := 2300 + 216*50
	for range oddBeats {
		ctrl.Event(dmac.TrigTCOverflow)
	}
	test.ExpectEquality(t, e.Field(), uint8(9))

	ctrl.Event(dmac.TrigTCOverflow)
	test.ExpectEquality(t, e.Field(), uint8(videoout.FieldOdd))

	// the even field's vertical sync, rows and marker
	evenBeats := 2350 + 216*50
	for range evenBeats {
		ctrl.Event(dmac.TrigTCOverflow)
	}
	ctrl.Event(dmac.TrigTCOverflow)
	test.ExpectEquality(t, e.Field(), uint8(videoout.FieldEven))

	// marker beats never reach the DAC. one pass of the loop delivers
	// exactly two fields of samples
	test.ExpectEquality(t, len(w.samples), specification.SpecNTSC40x24.SamplesPerLoop)
	test.ExpectEquality(t, w.samples[0], specification.LevelSync)
	test.ExpectEquality(t, w.samples[4], specification.LevelBlank)
	test.ExpectEquality(t, w.samples[2300+9], specification.LevelBlack)

	// the loop closes. the next beat is the head of the odd vertical
	// sync block again
	ctrl.Event(dmac.TrigTCOverflow)
	test.ExpectEquality(t, d.Value(), specification.LevelSync)
}
