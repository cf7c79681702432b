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

package television

import (
	"fmt"
	"image"

	"github.com/beamloop/compositevideo/television/specification"
)

// FieldInfo records the measured shape of a field, as opposed to the optimal
// values of the specification, a copy of which is provided as reference.
type FieldInfo struct {
	Spec specification.Spec

	FieldNum int

	// true if this is the odd (first) field of the interlaced pair. parity
	// is measured from the half-line phase of the serration train
	IsOdd bool

	// the top and bottom scanlines of the picture area. measured from the
	// extent of non-blank output in the field
	//
	// see the Crop() function for the preferred way of using these values
	// to create a rectangle of the visible screen area. in particular, note
	// how the VisibleBottom value is treated in that context
	VisibleTop    int
	VisibleBottom int

	// the number of scanlines counted in the field. only full-line
	// horizontal sync pulses are counted so this will be less than the
	// 262.5 lines of a true NTSC field; the balance is made up of the
	// half-lines of the vertical interval
	TotalScanlines int

	// Stable is true once the field geometry has been consistent for
	// enough fields after reset. Useful for renderers that don't want to
	// show the loose fields that occur while the generator and television
	// are settling. once true it stays true until the next reset
	Stable bool
}

// NewFieldInfo returns an initialised FieldInfo for the specification.
func NewFieldInfo(spec specification.Spec) FieldInfo {
	info := FieldInfo{
		Spec: spec,
	}
	info.reset()
	return info
}

func (info FieldInfo) String() string {
	return fmt.Sprintf("field: %d (odd: %v) top: %d, bottom: %d, total: %d",
		info.FieldNum, info.IsOdd, info.VisibleTop, info.VisibleBottom, info.TotalScanlines)
}

// Crop returns an image.Rectangle for the picture region of the field. Using
// this is preferable to constructing the rectangle from the VisibleTop and
// VisibleBottom fields directly.
//
// If the VisibleTop/Bottom fields are used in preference to this function
// for whatever reason, bear in mind that the VisibleBottom value should be
// adjusted by +1 in order to include all visible scanlines in the rectangle.
//
// To prove the need for this, consider what would happen if the picture was
// one scanline tall. In that case both the top and bottom values would be
// the same and the height of the resulting rectangle would be zero.
func (info FieldInfo) Crop() image.Rectangle {
	return image.Rect(
		info.Spec.VisibleOffset, info.VisibleTop,
		info.Spec.VisibleOffset+info.Spec.Width, info.VisibleBottom+1,
	)
}

// IsDifferent returns true if any of the pertinent display information is
// different between the two copies of FieldInfo.
func (info FieldInfo) IsDifferent(cmp FieldInfo) bool {
	return info.Spec.ID != cmp.Spec.ID ||
		info.VisibleTop != cmp.VisibleTop ||
		info.VisibleBottom != cmp.VisibleBottom ||
		info.TotalScanlines != cmp.TotalScanlines
}

func (info *FieldInfo) reset() {
	info.FieldNum = 0
	info.IsOdd = false
	info.VisibleTop = 0
	info.VisibleBottom = 0
	info.TotalScanlines = info.Spec.ScanlinesPerField
	info.Stable = false
}
