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

package videoout

import (
	"github.com/beamloop/compositevideo/hardware/dac"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/hardware/tc"
	"github.com/beamloop/compositevideo/television/specification"
)

// fieldMarks is the source table for the two field flag marker
// descriptors.
var fieldMarks = []uint16{FieldOdd, FieldEven}

// NewNTSC40x24 builds an engine for the one supported mode, a 40x24
// grid centred in an interlaced NTSC raster.
func NewNTSC40x24(ctrl *dmac.Controller, tmr *tc.Timer, d *dac.DAC) (*Engine, error) {
	spec := specification.SpecNTSC40x24
	return NewEngine(spec, spec.Width, spec.Height, ctrl, tmr, d)
}

// layoutNTSC40x24 populates the descriptor chain for the NTSC40x24
// mode:
//
//	[0]          odd field vertical sync block
//	[1..216]     frame buffer rows, each row repeated oversample times
//	[217]        marker, writes FieldOdd to the field flag
//	[218]        even field vertical sync block
//	[219..434]   the second run of frame buffer rows
//	[435]        marker, writes FieldEven, links back to [0]
//
// vertical oversampling stretches each of the 24 logical rows across 9
// raster lines, centring the small grid in the field height. the two
// row runs reference the same frame buffer, interlace is carried
// entirely by the differing vertical sync blocks.
func (e *Engine) layoutNTSC40x24(chain *dmac.Chain) error {
	spr := e.spec.SamplesPerRow
	samples := e.arena.Samples()

	addRows := func() error {
		for i := range e.height * e.spec.Oversample {
			row := i / e.spec.Oversample
			_, err := chain.Add(dmac.Source{Data: samples, Index: row * spr}, e.dac, uint16(spr), dmac.HWord, true)
			if err != nil {
				return err
			}
		}
		return nil
	}

	addMark := func(idx int) error {
		_, err := chain.Add(dmac.Source{Data: fieldMarks, Index: idx}, &e.flag, 1, dmac.Byte, false)
		return err
	}

	_, err := chain.Add(dmac.Source{Data: beats(specification.VSyncOdd)}, e.dac, uint16(len(specification.VSyncOdd)), dmac.HWord, true)
	if err != nil {
		return err
	}
	if err := addRows(); err != nil {
		return err
	}
	if err := addMark(0); err != nil {
		return err
	}

	_, err = chain.Add(dmac.Source{Data: beats(specification.VSyncEven)}, e.dac, uint16(len(specification.VSyncEven)), dmac.HWord, true)
	if err != nil {
		return err
	}
	if err := addRows(); err != nil {
		return err
	}
	if err := addMark(1); err != nil {
		return err
	}

	// closing the loop validates that the layout exhausted the
	// descriptor pool exactly
	return chain.Loop()
}
