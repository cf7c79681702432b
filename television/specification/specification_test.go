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

package specification_test

import (
	"testing"

	"github.com/beamloop/compositevideo/television/signal"
	"github.com/beamloop/compositevideo/television/specification"
	"github.com/beamloop/compositevideo/test"
)

func countLevel(tbl []signal.Sample, lvl signal.Sample) int {
	ct := 0
	for _, s := range tbl {
		if s == lvl {
			ct++
		}
	}
	return ct
}

func TestTableLengths(t *testing.T) {
	test.ExpectEquality(t, len(specification.EqualisationHalfLine), 25)
	test.ExpectEquality(t, len(specification.SerrationHalfLine), 25)
	test.ExpectEquality(t, len(specification.BlankLine), 50)
	test.ExpectEquality(t, len(specification.BlackLine), 50)
	test.ExpectEquality(t, len(specification.VSyncOdd), 2300)
	test.ExpectEquality(t, len(specification.VSyncEven), 2350)
}

func TestLoopGeometry(t *testing.T) {
	spec := specification.SpecNTSC40x24

	// one loop of the descriptor chain is two interlaced fields of 262.5
	// lines. at 50 samples per line that is 525 whole lines
	test.ExpectEquality(t, spec.SamplesPerLoop, 26250)
	test.ExpectEquality(t, spec.SamplesPerLoop, 525*spec.SamplesPerRow)

	// the vertical sync blocks account for every sample not covered by the
	// picture rows
	rowSamples := 2 * spec.Height * spec.Oversample * spec.SamplesPerRow
	test.ExpectEquality(t, len(specification.VSyncOdd)+len(specification.VSyncEven)+rowSamples, 26250)

	// 24 rows over 9 scanlines each
	test.ExpectEquality(t, spec.Height*spec.Oversample, 216)
}

func TestLevels(t *testing.T) {
	test.ExpectSuccess(t, specification.LevelSync < specification.LevelBlank)
	test.ExpectSuccess(t, specification.LevelBlank < specification.LevelBlack)
	test.ExpectSuccess(t, specification.LevelBlack < specification.LevelWhite)
	test.ExpectEquality(t, specification.LevelWhite, signal.Sample(specification.DACMax))
}

func TestTableComposition(t *testing.T) {
	syncCount := func(tbl []signal.Sample) int {
		return countLevel(tbl, specification.LevelSync)
	}

	// sync widths give the pulse classes the television relies on
	test.ExpectEquality(t, syncCount(specification.EqualisationHalfLine), 2)
	test.ExpectEquality(t, syncCount(specification.SerrationHalfLine), 22)
	test.ExpectEquality(t, syncCount(specification.BlankLine), 4)
	test.ExpectEquality(t, syncCount(specification.BlackLine), 4)

	// every sync pulse starts the line
	test.ExpectEquality(t, specification.BlankLine[0], specification.LevelSync)
	test.ExpectEquality(t, specification.BlackLine[0], specification.LevelSync)

	// the picture window of the black line sits at the visible offset
	spec := specification.SpecNTSC40x24
	for i, s := range specification.BlackLine {
		if i >= spec.VisibleOffset && i < spec.VisibleOffset+spec.Width {
			test.ExpectEquality(t, s, specification.LevelBlack, "sample", i)
		} else {
			test.ExpectSuccess(t, s != specification.LevelBlack, "sample", i)
		}
	}

	// composition of the odd vertical sync block: 16 blank lines, the
	// 6/6/6 pulse train, 21 blank lines
	test.ExpectEquality(t, syncCount(specification.VSyncOdd), 16*4+6*2+6*22+6*2+21*4)

	// the even block carries a 6/6/5 train plus the odd field's closing
	// half line
	test.ExpectEquality(t, syncCount(specification.VSyncEven), 16*4+4+6*2+6*22+5*2+22*4)
}

func TestBrightness(t *testing.T) {
	test.ExpectEquality(t, specification.BrightnessToSample(0), specification.LevelBlack)
	test.ExpectEquality(t, specification.BrightnessToSample(255), specification.LevelWhite)

	// monotonic and reversible to within one brightness step
	prev := specification.BrightnessToSample(0)
	for b := 1; b <= 255; b++ {
		s := specification.BrightnessToSample(uint8(b))
		test.ExpectSuccess(t, s >= prev, "brightness", b)
		prev = s

		r := int(specification.SampleToBrightness(s))
		test.ExpectSuccess(t, b-r >= 0 && b-r <= 1, "brightness", b)
	}

	// clamping outside the picture window
	test.ExpectEquality(t, specification.SampleToBrightness(specification.LevelSync), 0)
	test.ExpectEquality(t, specification.SampleToBrightness(specification.LevelBlank), 0)
	test.ExpectEquality(t, specification.SampleToBrightness(1023), 255)
}

func TestIRE(t *testing.T) {
	// the full-range alternative levels. sync tip rounds to the bottom of
	// the range and peak white to the top
	test.ExpectEquality(t, specification.IRE(-40), signal.Sample(0))
	test.ExpectEquality(t, specification.IRE(100), signal.Sample(1023))
	test.ExpectSuccess(t, specification.IRE(-40) < specification.IRE(0))
	test.ExpectSuccess(t, specification.IRE(0) < specification.IRE(8))
	test.ExpectSuccess(t, specification.IRE(8) < specification.IRE(100))
}

func TestRates(t *testing.T) {
	spec := specification.SpecNTSC40x24
	test.ExpectApproximate(t, spec.SampleRate, 786885.0, 0.0001)
	test.ExpectApproximate(t, spec.FieldsPerSecond, 59.95, 0.001)
}
