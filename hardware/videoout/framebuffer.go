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
	"github.com/beamloop/compositevideo/television/signal"
)

// beats converts a specification table to the raw form the DMA engine
// streams from.
func beats(table []signal.Sample) []uint16 {
	b := make([]uint16, len(table))
	for i, s := range table {
		b[i] = uint16(s)
	}
	return b
}

// frameBuffer is the mutable pixel store. each logical row is held
// pre-expanded into a full raster line, sync and porch samples included,
// so that a descriptor can stream the row unmodified.
//
// the sample storage belongs to the arena, never to the frame buffer.
// the DMA engine holds a live reference to it for as long as the job
// runs.
type frameBuffer struct {
	samples []uint16

	// the full-line template rows are reset to. carries the sync and
	// porch samples as well as the black active window
	template []uint16

	rows          int
	samplesPerRow int
	visibleOffset int
	width         int
}

// newFrameBuffer wraps the arena's sample region. every row is filled
// from the template immediately, fixing the sync and porch columns for
// the lifetime of the buffer.
func newFrameBuffer(samples []uint16, template []uint16, rows int, visibleOffset int, width int) *frameBuffer {
	fb := &frameBuffer{
		samples:       samples,
		template:      template,
		rows:          rows,
		samplesPerRow: len(template),
		visibleOffset: visibleOffset,
		width:         width,
	}
	fb.clear()
	return fb
}

// clear copies the full template over every row. the non-visible columns
// receive the same values they were given at allocation time, so from
// the outside only the visible window changes.
func (fb *frameBuffer) clear() {
	for row := range fb.rows {
		copy(fb.samples[row*fb.samplesPerRow:(row+1)*fb.samplesPerRow], fb.template)
	}
}

// setPixel stores a raw sample at the visible coordinate. writes outside
// the visible window are a no-op, the defensive bounds check expected of
// a drawing back end.
func (fb *frameBuffer) setPixel(col int, row int, v uint16) {
	if col < 0 || col >= fb.width || row < 0 || row >= fb.rows {
		return
	}
	fb.samples[row*fb.samplesPerRow+fb.visibleOffset+col] = v
}

// sample returns the raw sample at the raster coordinate. col addresses
// the full raster line, sync and porch included.
func (fb *frameBuffer) sample(col int, row int) uint16 {
	return fb.samples[row*fb.samplesPerRow+col]
}
