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

package specification

import (
	"github.com/beamloop/compositevideo/television/signal"
)

// The line archetypes for the NTSC 40x24 mode. The 25 and 50 in the names
// refer to the total number of pixel clocks in the line, which includes the
// horizontal sync pulse and the porches. The drawable raster is narrower
// than this (40 pixels).
//
// Half lines appear during the vertical blanking interval, where the NTSC
// standard doubles the pulse frequency so that the two interlaced fields,
// offset from one another by half a line, see the same sync pattern.
var (
	// one half of a vertical blanking line: a 2-clock equalisation pulse
	// followed by blanking
	EqualisationHalfLine = concat(
		run(LevelSync, 2),
		run(LevelBlank, 23),
	)

	// one half of a vertical sync line: a broad 22-clock serration pulse
	// with a short return to blanking
	SerrationHalfLine = concat(
		run(LevelSync, 22),
		run(LevelBlank, 3),
	)

	// a full line with a normal 4-clock horizontal sync pulse and nothing
	// but blanking after it
	BlankLine = concat(
		run(LevelSync, 4),
		run(LevelBlank, 46),
	)

	// a full picture line with every visible pixel at reference black:
	// horizontal sync, back porch, 40 pixel clocks of black, front porch.
	// frame buffer rows are initialised from this template
	BlackLine = concat(
		run(LevelSync, 4),
		run(LevelBlank, 5),
		run(LevelBlack, 40),
		run(LevelBlank, 1),
	)
)

// The complete vertical sync blocks for the odd and even fields. Each block
// is streamed by a single DMA descriptor.
//
// The blocks are longer than the vertical blanking interval itself: the
// blank lines at the bottom of the preceding field are merged into the
// front of each block, and the blank lines that centre the 24-row picture
// vertically are merged into the back. Merging them here saves a large
// number of DMA descriptors.
var (
	// VSyncOdd covers the bottom of the even field and the top of the odd
	// field: 16 trailing blank lines, the equalisation/serration train
	// (lines 1-9 of the field), 11 blank lines completing the vertical
	// blank (lines 10-20) and 10 more blank lines for vertical centring
	// (lines 21-30). Picture rows then occupy lines 31-246 (24 rows over
	// 216 scanlines).
	VSyncOdd = concat(
		repeat(BlankLine, 16),
		repeat(EqualisationHalfLine, 6),
		repeat(SerrationHalfLine, 6),
		repeat(EqualisationHalfLine, 6),
		repeat(BlankLine, 21),
	)

	// VSyncEven covers the bottom of the odd field and the top of the even
	// field. The odd field ends on a half line, so after its 16 trailing
	// blank lines the block carries one line made of a blank half-line and
	// an equalisation half-line before the train proper. The train is
	// followed by 22 blank lines; the last full blank line stands in for
	// the even field's opening half-line, which carries no picture this
	// high up the screen anyway.
	VSyncEven = concat(
		repeat(BlankLine, 16),
		run(LevelSync, 4),
		run(LevelBlank, 21),
		repeat(EqualisationHalfLine, 6),
		repeat(SerrationHalfLine, 6),
		repeat(EqualisationHalfLine, 5),
		repeat(BlankLine, 22),
	)
)

// run returns a block of ct samples all at the same level.
func run(lvl signal.Sample, ct int) []signal.Sample {
	b := make([]signal.Sample, ct)
	for i := range b {
		b[i] = lvl
	}
	return b
}

// repeat returns n copies of the block laid end to end.
func repeat(block []signal.Sample, n int) []signal.Sample {
	b := make([]signal.Sample, 0, len(block)*n)
	for range n {
		b = append(b, block...)
	}
	return b
}

// concat joins the blocks into a single table.
func concat(blocks ...[]signal.Sample) []signal.Sample {
	var b []signal.Sample
	for _, c := range blocks {
		b = append(b, c...)
	}
	return b
}
