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
	"sync/atomic"

	"github.com/beamloop/compositevideo/hardware/dmac"
)

// Field phase values written by the marker descriptors at the end of
// each field's row run.
const (
	FieldOdd  = 1
	FieldEven = 2
)

// fieldFlag is the shared phase byte. two descriptors in the chain
// target it, writing FieldOdd after the odd field's rows and FieldEven
// after the even field's rows.
//
// the flag is a best-effort phase indicator and nothing more. the DMA
// engine writes it asynchronously with no ordering guarantee toward a
// reader of the frame buffer. it must not be treated as a rendering
// complete signal.
type fieldFlag struct {
	v atomic.Uint32
}

// WriteBeat implements the dmac.Writable interface.
func (f *fieldFlag) WriteBeat(v uint16, _ dmac.BeatSize) {
	f.v.Store(uint32(v & 0xff))
}

func (f *fieldFlag) value() uint8 {
	return uint8(f.v.Load())
}

func (f *fieldFlag) set(v uint8) {
	f.v.Store(uint32(v))
}
