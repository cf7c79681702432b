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

// Package clocks defines the constant values that define the speed of the
// clocks in the board's clock tree.
//
// Board bring-up is treated as already done. The only part of the clock
// tree the video generator cares about is the generic clock feeding the
// timer and DAC peripherals, assumed to be running at the full system
// speed with no division.
package clocks

const (
	// GCLK0 is the system clock in Hz, fed undivided to the timer that
	// paces sample transfers
	GCLK0 = 48000000
)
