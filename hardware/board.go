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

package hardware

import (
	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/hardware/clocks"
	"github.com/beamloop/compositevideo/hardware/dac"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/hardware/tc"
	"github.com/beamloop/compositevideo/hardware/videoout"
	"github.com/beamloop/compositevideo/television"
)

// Board is the main container for the emulated components of the video
// generator: the DMA controller, the sample clock timer, the DAC and
// the video output engine that programs them.
type Board struct {
	DMAC  *dmac.Controller
	TC    *tc.Timer
	DAC   *dac.DAC
	Video *videoout.Engine

	// tv is not part of the board but is attached to it
	TV *television.Television
}

// NewBoard creates a new Board and everything associated with the
// hardware. the television is attached to the DAC output pin and its
// specification selects the video mode.
func NewBoard(tv *television.Television) (*Board, error) {
	if tv == nil {
		return nil, curated.Errorf("hardware: board requires a television")
	}

	brd := &Board{TV: tv}
	brd.DMAC = dmac.NewController()
	brd.TC = tc.NewTimer(clocks.GCLK0)
	brd.DAC = dac.NewDAC()
	brd.DAC.Attach(tv)

	// the timer overflow is the DMA trigger. one overflow, one beat
	brd.TC.OnOverflow(func() {
		brd.DMAC.Event(dmac.TrigTCOverflow)
	})

	spec := tv.GetSpec()

	var err error
	brd.Video, err = videoout.NewEngine(spec, spec.Width, spec.Height, brd.DMAC, brd.TC, brd.DAC)
	if err != nil {
		return nil, err
	}

	return brd, nil
}

// Step services the sample clock for the given number of sample
// periods. stepping a board whose video output has not begun does
// nothing, the timer is not yet enabled.
func (brd *Board) Step(samples int) {
	brd.TC.Step(samples)
}

// Run services the sample clock in field-sized batches as quickly as
// possible. continueCheck() is consulted between batches and should
// return false when an external event indicates that the emulation
// should stop.
func (brd *Board) Run(continueCheck func() (bool, error)) error {
	if brd.Video.State() != videoout.Running {
		return curated.Errorf("hardware: video output has not begun")
	}

	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	// one batch is one field's worth of sample periods
	batch := brd.TV.GetSpec().SamplesPerLoop / 2

	cont := true
	var err error

	for cont {
		brd.TC.Step(batch)
		cont, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFieldCount runs the board until the television has decoded the
// given number of additional fields. Useful for fields-per-second and
// digest tests and for offline capture, where real time is not a
// consideration.
func (brd *Board) RunForFieldCount(numFields int, continueCheck func(field int) (bool, error)) error {
	if brd.Video.State() != videoout.Running {
		return curated.Errorf("hardware: video output has not begun")
	}

	if continueCheck == nil {
		continueCheck = func(_ int) (bool, error) { return true, nil }
	}

	// scanline-sized batches keep field boundaries sharp without
	// checking the television after every sample
	batch := brd.TV.GetSpec().SamplesPerRow

	field := brd.TV.GetCoords().Field
	target := field + numFields

	for field < target {
		brd.TC.Step(batch)
		field = brd.TV.GetCoords().Field

		cont, err := continueCheck(field)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	return nil
}
