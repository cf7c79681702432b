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

// Package signal exposes the interface between the DAC and the television
// implementation.
//
// The composite waveform is communicated one Sample at a time. A Sample is
// nothing more than the 10-bit value latched by the DAC; sync information is
// carried in-band, exactly as it is on a real composite cable, and it is the
// television's job to separate it out again.
package signal

import "fmt"

// Sample is a single level of the composite waveform, expressed in the DAC's
// 10-bit units. Only the bottom 10 bits are significant.
type Sample uint16

// Level is the broad classification of a Sample. It is intended for debugging
// output and for the television's sync separator, not as a replacement for
// working with the Sample value directly.
type Level int

// The list of valid Level values.
const (
	LevelSync Level = iota
	LevelBlank
	LevelBlack
	LevelLuma
)

func (l Level) String() string {
	switch l {
	case LevelSync:
		return "sync"
	case LevelBlank:
		return "blank"
	case LevelBlack:
		return "black"
	case LevelLuma:
		return "luma"
	}
	return fmt.Sprintf("unknown level (%d)", int(l))
}

// Classify converts a Sample to a Level. The caller supplies the decision
// points: syncThreshold is the level at or below which a sample is considered
// part of a sync pulse; blackLevel is the bottom of the picture range.
func Classify(s Sample, syncThreshold Sample, blackLevel Sample) Level {
	switch {
	case s <= syncThreshold:
		return LevelSync
	case s < blackLevel:
		return LevelBlank
	case s == blackLevel:
		return LevelBlack
	}
	return LevelLuma
}
