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

// Chain populates an arena's descriptors in order and closes them into a
// circular list. descriptors are linked by index, the closing link being
// expressed as a Next of zero on the final descriptor.
type Chain struct {
	arena    *Arena
	nextFree int
	looped   bool
}

// NewChain prepares a chain builder over the given arena. the arena's
// descriptor region must be unused.
func NewChain(arena *Arena) *Chain {
	return &Chain{arena: arena}
}

// Add populates the next free descriptor and returns its index.
//
// src always describes the block by its starting index. for incrementing
// transfers Add applies the end-index adjustment required by the
// controller, advancing src.Index by count before it is stored.
func (ch *Chain) Add(src Source, dst Writable, count uint16, width BeatSize, srcInc bool) (int, error) {
	if ch.looped {
		return 0, curated.Errorf("dmac: chain: add to a closed chain")
	}
	if ch.nextFree >= len(ch.arena.descriptors) {
		return 0, curated.Errorf("dmac: chain: descriptor pool exhausted (%d)", len(ch.arena.descriptors))
	}
	if count == 0 {
		return 0, curated.Errorf("dmac: chain: zero length transfer")
	}
	if dst == nil {
		return 0, curated.Errorf("dmac: chain: no destination")
	}

	if srcInc {
		if src.Index < 0 || src.Index+int(count) > len(src.Data) {
			return 0, curated.Errorf("dmac: chain: source block [%d:%d] outside table of %d", src.Index, src.Index+int(count), len(src.Data))
		}
		src.Index += int(count)
	} else if src.Index < 0 || src.Index >= len(src.Data) {
		return 0, curated.Errorf("dmac: chain: source index %d outside table of %d", src.Index, len(src.Data))
	}

	idx := ch.nextFree
	ch.arena.descriptors[idx] = Descriptor{
		Valid:  true,
		Width:  width,
		SrcInc: srcInc,
		Count:  count,
		Src:    src,
		Dst:    dst,
		Next:   idx + 1,
	}
	ch.nextFree++

	return idx, nil
}

// Loop closes the chain into a circle. it is a configuration defect,
// not a runtime error, for the build not to have exhausted the arena's
// descriptor pool exactly.
func (ch *Chain) Loop() error {
	if ch.looped {
		return curated.Errorf("dmac: chain: already closed")
	}
	if ch.nextFree != len(ch.arena.descriptors) {
		return curated.Errorf("dmac: chain: populated %d of %d descriptors", ch.nextFree, len(ch.arena.descriptors))
	}

	for i, d := range ch.arena.descriptors {
		if !d.Valid {
			return curated.Errorf("dmac: chain: descriptor %d is not valid", i)
		}
	}

	ch.arena.descriptors[ch.nextFree-1].Next = 0
	ch.looped = true

	return nil
}

// IsLooped is true once the chain has been closed by Loop().
func (ch *Chain) IsLooped() bool {
	return ch.looped
}

// Len returns the number of populated descriptors.
func (ch *Chain) Len() int {
	return ch.nextFree
}

// At returns a copy of the descriptor at the given index.
func (ch *Chain) At(idx int) Descriptor {
	return ch.arena.descriptors[idx]
}

// BeatsPerLoop returns the number of beats transferred by one complete
// pass of the chain.
func (ch *Chain) BeatsPerLoop() int {
	n := 0
	for _, d := range ch.arena.descriptors[:ch.nextFree] {
		n += int(d.Count)
	}
	return n
}

// SamplesPerLoop returns the number of beats delivered to the given
// destination by one complete pass of the chain.
func (ch *Chain) SamplesPerLoop(dst Writable) int {
	n := 0
	for _, d := range ch.arena.descriptors[:ch.nextFree] {
		if d.Dst == dst {
			n += int(d.Count)
		}
	}
	return n
}
