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

// Package hardware is the base package for the board emulation. It and
// its sub-packages contain everything required to generate the video
// waveform.
//
// The Board type is the root of the emulation and wires the sub-systems
// together: the timer's overflow event triggers the DMA controller,
// the controller's beats land in the DAC, and the DAC's output pin
// drives whatever television is attached. From here the emulation can
// either be run continuously (with an optional callback to check for
// continuation) or stepped a sample period at a time.
package hardware
