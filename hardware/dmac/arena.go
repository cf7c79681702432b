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

import (
	"github.com/beamloop/compositevideo/curated"
)

// SRAMBudget is the memory available to an arena. the figure is the
// SRAM of the original target part. an arena that does not fit is an
// allocation failure at begin() time, not a runtime error.
const SRAMBudget = 32768

// Arena is the single allocation backing a descriptor chain: the
// descriptor array followed immediately by the sample block. the two
// regions are exposed as typed views rather than by offset arithmetic.
//
// The backing memory must stay put for the lifetime of any job that
// references it. nothing reallocates or resizes an arena after
// construction.
type Arena struct {
	descriptors []Descriptor
	samples     []uint16

	// hardware footprint in bytes, including any padding between the
	// descriptor region and the sample block
	size int
}

// NewArena allocates an arena with room for the given number of
// descriptors and samples. fails if the combined hardware footprint
// exceeds the SRAM budget.
func NewArena(numDescriptors int, numSamples int) (*Arena, error) {
	if numDescriptors < 1 || numSamples < 0 {
		return nil, curated.Errorf("dmac: arena: bad geometry (%d descriptors, %d samples)", numDescriptors, numSamples)
	}

	// the sample block begins on a descriptor-aligned boundary. with a
	// descriptor footprint equal to the alignment the padding is always
	// zero but the constraint is stated here rather than assumed
	descBytes := numDescriptors * DescriptorBytes
	if r := descBytes % DescriptorAlign; r != 0 {
		descBytes += DescriptorAlign - r
	}

	size := descBytes + numSamples*2
	if size > SRAMBudget {
		return nil, curated.Errorf("dmac: arena: %d bytes exceeds the %d byte budget", size, SRAMBudget)
	}

	return &Arena{
		descriptors: make([]Descriptor, numDescriptors),
		samples:     make([]uint16, numSamples),
		size:        size,
	}, nil
}

// Descriptors returns the descriptor region of the arena. the view is
// live, writes through it are seen by any chain built on the arena.
func (ar *Arena) Descriptors() []Descriptor {
	return ar.descriptors
}

// Samples returns the sample region of the arena. the view is live.
func (ar *Arena) Samples() []uint16 {
	return ar.samples
}

// Size returns the hardware footprint of the arena in bytes.
func (ar *Arena) Size() int {
	return ar.size
}
