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

// Package dmac emulates the direct memory access controller that streams
// samples to the DAC. The model is deliberately narrow. It implements the
// parts of the controller the video generator relies on and nothing more.
//
// Descriptors live in an Arena, a single allocation holding the
// descriptor array followed by the sample block, and are linked by index
// rather than by address. A Chain populates the arena one descriptor at
// a time and is closed into a circle with Loop(), which also validates
// that the build exhausted the descriptor pool exactly.
//
// The Controller owns a fixed pool of channels. A channel is reserved
// with Allocate(), configured with SetTrigger() and SetAction(), given a
// closed chain with SetDescriptorList() and set going with StartJob().
// There is no stop operation. Once a job is running it runs until an
// invalid descriptor halts it.
//
// Event() stands in for the peripheral trigger bus. Each call represents
// one trigger event and advances every busy channel configured for that
// source, by a single beat for beat-action channels or by the remainder
// of the current block for block-action channels.
//
// The quirk of the real controller most worth knowing about: for
// incrementing transfers the source reference held by a descriptor is
// the end of the block, not the start. The chain's Add() function
// performs the adjustment so that callers always describe blocks by
// their natural starting index.
package dmac
