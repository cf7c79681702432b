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
	"github.com/beamloop/compositevideo/television/signal"
)

// PixelRenderer implementations display, or otherwise work with, visual
// information from a television. For example digest.Video.
//
// PixelRenderer implementations often find it convenient to maintain a
// reference to the parent Television and maybe even embed it. ie.
//
//	type ExampleTV struct {
//		*television.Television
//		...
//	}
type PixelRenderer interface {
	// NewField is called at the start of a field, before any of the field's
	// pixels arrive. The FieldInfo argument describes the field that has
	// just concluded.
	NewField(info FieldInfo) error

	// NewScanline is called for every horizontal sync pulse. Scanline zero
	// is the start of the vertical sync; the first visible scanline is
	// given by the VisibleTop field of FieldInfo.
	NewScanline(scanline int) error

	// SetPixel is called for every sample regardless of whether the sample
	// is in the visible portion of the line.
	//
	// things to consider:
	//
	// o the x argument is measured from the horizontal sync pulse, so the
	//   visible picture begins at the VisibleOffset of the specification
	//
	// o when horizontal sync is absent, during the vertical interval for
	//   example, x can legitimately exceed the samples-per-line figure of
	//   the specification. renderers must ignore coordinates outside of
	//   their display area
	//
	// o renderers producing an accurate visual image should show blanked
	//   pixels as black. other renderers may find the luma value useful
	//   regardless, digest.Video for instance
	SetPixel(x, y int, luma uint8, blanked bool) error

	// some renderers may need to conclude and/or dispose of resources
	// gently. for simplicity, the PixelRenderer should be considered
	// unusable after EndRendering() has been called
	EndRendering() error
}

// FieldTrigger implementations listen for NewField events. FieldTrigger is a
// subset of PixelRenderer.
type FieldTrigger interface {
	NewField(info FieldInfo) error
}

// WaveformRecorder implementations receive every sample sent to the
// television before any decoding has taken place. For example,
// wavwriter.WavWriter.
type WaveformRecorder interface {
	Record(s signal.Sample) error

	// the WaveformRecorder should be considered unusable after
	// EndRecording() has been called
	EndRecording() error
}
