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

// Package specification contains the definition of the composite video modes
// supported by the signal generator. Currently there is exactly one mode,
// greyscale NTSC at 40x24 pixels, and maybe that's all there will ever be.
//
// The package defines the DAC levels used to build the waveform, the line
// and vertical-sync timing tables, and the Spec type that gathers the
// per-mode numbers together.
package specification

import (
	"github.com/beamloop/compositevideo/television/signal"
)

// PrimaryClock is the frequency (in Hz) of the clock feeding the
// timer/counter. The sample clock is an integer division of this.
const PrimaryClock = 48000000

// The DAC is capable of a 1.0 Volt reference selection, which is exactly what
// composite video wants. But the settling time of the DAC is a function of
// the distance between the previous and new 10-bit values, regardless of the
// reference voltage. Full rail-to-rail swings are too slow and produce blurry
// images and unreliable sync. So the default 3.3V reference is kept and only
// a narrow window of the 10-bit range is used; the window corresponds to
// 0.0 to 1.0 Volts.
const DACMax = 1023 * 10 / 33

// The four levels from which the NTSC waveform is built: sync tip, blanking,
// reference black and peak white. Values are in the DAC's 10-bit units within
// the DACMax window.
//
// Allowing space for the sync and blanking levels, there are 250 available
// brightness levels rather than 256. BrightnessToSample() takes care of the
// scaling so use 0 for black and 255 for white as normal.
const (
	LevelSync  signal.Sample = 0
	LevelBlank signal.Sample = 45
	LevelBlack signal.Sample = 60
	LevelWhite signal.Sample = 310
)

// IRE returns the DAC value for a level given in IRE units, for a DAC using
// the full 10-bit range against a 1.0 Volt reference. Sync tip is -40 IRE,
// blanking 0, black 8 (sic) and peak white 100.
//
// These are not the levels the generator uses. See the commentary for DACMax
// for why the narrower 3.3V-reference window is preferred.
func IRE(n int) signal.Sample {
	return signal.Sample(((1023 * (40 + n)) + 70) / 140)
}

// BrightnessToSample converts an 8-bit brightness value to the DAC sample
// that represents it. Zero maps to the reference black level and 255 to peak
// white. The mapping is monotonic but not injective; there are fewer DAC
// levels in the picture range than there are brightness values.
func BrightnessToSample(b uint8) signal.Sample {
	return LevelBlack + signal.Sample(uint32(b)*uint32(LevelWhite-LevelBlack)/255)
}

// SampleToBrightness is the reverse of BrightnessToSample. Samples outside
// the black-to-white window clamp to 0 and 255 respectively. Because the
// picture range has fewer DAC levels than there are brightness values, a
// round trip through BrightnessToSample can be out by one.
func SampleToBrightness(s signal.Sample) uint8 {
	if s <= LevelBlack {
		return 0
	}
	if s >= LevelWhite {
		return 255
	}
	return uint8(uint32(s-LevelBlack) * 255 / uint32(LevelWhite-LevelBlack))
}

// SpecList is the list of specifications that the video engine can generate.
var SpecList = []string{"NTSC40x24"}

// Spec is used to define a video mode. Only the NTSC 40x24 mode exists but
// on the off-chance that others are added in the future, everything that
// distinguishes one mode from another is gathered here.
type Spec struct {
	ID string

	// the number of primary clock ticks per pixel clock, minus one. this is
	// the value programmed into the timer/counter's compare register
	TimerPeriod uint16

	// the number of pixel clocks (NOT visible pixels) in every line of the
	// field, including the horizontal sync pulse and porches
	SamplesPerRow int

	// the offset in pixel clocks of the first visible pixel in a line
	VisibleOffset int

	// the number of scanlines over which each frame buffer row is repeated
	Oversample int

	// the number of DMA descriptors required for the odd+even field loop
	NumDescriptors int

	// the drawable raster size in pixels
	Width  int
	Height int

	// the pixel clock in Hz. equal to PrimaryClock/(TimerPeriod+1)
	SampleRate float64

	// the number of samples in one complete loop of the descriptor chain.
	// one loop is two interlaced fields
	SamplesPerLoop int

	// the nominal number of scanlines in a single field, rounded up from
	// the true figure of half an interlaced frame (262.5 for NTSC)
	ScanlinesPerField int

	// the field rate implied by the sample rate and loop length. for NTSC
	// this works out a shade under the nominal 60Hz
	FieldsPerSecond float64
}

// SpecNTSC40x24 is the specification for the greyscale NTSC 40x24 mode. The
// pixel clock is 48MHz/61, or roughly 786,885Hz; a pixel is about 1.27uS
// wide.
var SpecNTSC40x24 Spec

func init() {
	SpecNTSC40x24 = Spec{
		ID:             "NTSC40x24",
		TimerPeriod:    60,
		SamplesPerRow:  50,
		VisibleOffset:  9,
		Oversample:     9,
		NumDescriptors: 436,
		Width:          40,
		Height:         24,
	}

	SpecNTSC40x24.SampleRate = PrimaryClock / float64(SpecNTSC40x24.TimerPeriod+1)
	SpecNTSC40x24.SamplesPerLoop = len(VSyncOdd) + len(VSyncEven) +
		2*SpecNTSC40x24.Height*SpecNTSC40x24.Oversample*SpecNTSC40x24.SamplesPerRow
	SpecNTSC40x24.ScanlinesPerField = (SpecNTSC40x24.SamplesPerLoop/SpecNTSC40x24.SamplesPerRow + 1) / 2
	SpecNTSC40x24.FieldsPerSecond = 2 * SpecNTSC40x24.SampleRate / float64(SpecNTSC40x24.SamplesPerLoop)
}
