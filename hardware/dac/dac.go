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

// Package dac emulates the 10 bit digital to analogue converter on the
// end of the sample pipeline. in the real circuit the DAC pin is the
// composite video output. in the emulation, attached listeners stand in
// for the wire.
package dac

import (
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/logger"
	"github.com/beamloop/compositevideo/television/signal"
)

// Listener receives every sample latched by an enabled DAC. the usual
// listener is a television.
type Listener interface {
	Signal(s signal.Sample) error
}

// DAC is the converter peripheral. it implements dmac.Writable so that
// descriptors can target its data register directly.
type DAC struct {
	enabled   bool
	value     signal.Sample
	listeners []Listener
}

// NewDAC is the preferred method of initialisation for the DAC type.
func NewDAC() *DAC {
	return &DAC{}
}

// Enable turns the converter's output on. enabling an enabled DAC is a
// no-op.
func (d *DAC) Enable() {
	d.enabled = true
}

// IsEnabled is true once Enable() has been called.
func (d *DAC) IsEnabled() bool {
	return d.enabled
}

// Attach adds a listener to the output pin.
func (d *DAC) Attach(l Listener) {
	d.listeners = append(d.listeners, l)
}

// WriteBeat implements the dmac.Writable interface. the data register
// masks to the converter's 10 bit range and latches. a disabled DAC
// still latches but drives nothing.
//
// a listener error cannot travel back up a bus write, so it is logged
// and the remaining listeners still receive the sample.
func (d *DAC) WriteBeat(v uint16, _ dmac.BeatSize) {
	v &= 0x03ff
	d.value = signal.Sample(v)

	if !d.enabled {
		return
	}

	for _, l := range d.listeners {
		if err := l.Signal(d.value); err != nil {
			logger.Logf(logger.Allow, "DAC", "listener: %v", err)
		}
	}
}

// Value returns the most recently latched sample.
func (d *DAC) Value() signal.Sample {
	return d.value
}
