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

// Package videoout is the heart of the video generator. It owns the
// frame buffer and the descriptor chain and it programs the hardware
// collaborators so that the chain replays forever with no further
// involvement from the program.
//
// The Engine moves through three states. Uninitialised, then Ready once
// the chain's memory is allocated and the timer and DAC are programmed,
// then Running once the DMA job has started. Running has no exit. video
// output is designed to run for the lifetime of the process and there is
// no stop operation to call.
//
// Once running, the engine's useful surface is DrawPixel(), Clear() and
// the field flag. pixel writes land in the frame buffer while the DMA
// engine is reading it, so a write can be picked up mid-scan. the field
// flag, written by two marker descriptors in the chain, lets a caller
// poll for a field boundary before redrawing, which is the only
// mitigation on offer.
package videoout
