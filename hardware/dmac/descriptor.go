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

package dmac

// BeatSize selects the width of a single transferred beat.
type BeatSize int

// Valid BeatSize values. the video generator uses HWord for sample
// transfers and Byte for the field flag markers.
const (
	Byte BeatSize = iota
	HWord
)

func (s BeatSize) String() string {
	switch s {
	case Byte:
		return "byte"
	case HWord:
		return "hword"
	}
	return "unknown"
}

// Bytes returns the width of one beat in bytes.
func (s BeatSize) Bytes() int {
	if s == Byte {
		return 1
	}
	return 2
}

// Writable is the destination of a transfer, a register that accepts one
// beat at a time. write errors do not exist at this level, a bus write
// cannot fail.
type Writable interface {
	WriteBeat(v uint16, size BeatSize)
}

// Source locates the beat data for one descriptor in a sample table or
// in the arena's sample block.
//
// For incrementing transfers Index holds the end index, one past the
// last element of the block. this matches the hardware convention of
// programming the source end address, from which the engine works
// backwards by the remaining beat count. Chain.Add() performs the
// adjustment, so a Source is always constructed with the starting index.
//
// For non-incrementing transfers Index is the plain index of the element
// delivered on every beat.
type Source struct {
	Data  []uint16
	Index int
}

// Descriptor describes one autonomous block transfer. descriptors are
// stored in an arena and linked by the Next index. a Next of zero
// returns to the head of the chain.
//
// An invalid descriptor halts any job that reaches it.
type Descriptor struct {
	Valid  bool
	Width  BeatSize
	SrcInc bool
	Count  uint16
	Src    Source
	Dst    Writable
	Next   int
}

// Hardware footprint of a descriptor record. the arena accounts for
// these figures when checking its memory budget, even though the Go
// representation of a descriptor is larger. the alignment requirement
// is a property of the controller's descriptor fetch and applies to the
// start of the descriptor region and to every record in it.
const (
	DescriptorBytes = 16
	DescriptorAlign = 16
)
