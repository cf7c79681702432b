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

// Package tc emulates the timer/counter that produces the sample clock.
//
// The timer runs in match frequency mode with a prescaler of 1:1. the
// counter resets on reaching the programmed period, so an overflow event
// fires once every period+1 ticks of the input clock. the overflow event
// is the timer's only observable output and the model works at that
// granularity: Step(n) services n overflow periods, invoking the
// registered handlers once per period.
//
// The timer has no goroutine of its own. real-time pacing, when wanted,
// is the caller's business.
package tc

import (
	"github.com/beamloop/compositevideo/curated"
)

// Timer is the timer/counter peripheral.
type Timer struct {
	input    float64
	period   uint16
	enabled  bool
	overflow []func()
}

// NewTimer is the preferred method of initialisation for the Timer type.
// inputClock is the frequency of the generic clock feeding the
// peripheral, in Hz.
func NewTimer(inputClock float64) *Timer {
	return &Timer{input: inputClock}
}

// SetPeriod programmes the counter's match value. the overflow rate
// becomes inputClock/(period+1). the period cannot be changed once the
// timer is enabled, there is no reconfiguration path.
func (t *Timer) SetPeriod(period uint16) error {
	if t.enabled {
		return curated.Errorf("tc: timer is enabled")
	}
	t.period = period
	return nil
}

// OnOverflow registers a handler for the overflow event. handlers run in
// registration order, once per overflow period.
func (t *Timer) OnOverflow(fn func()) {
	t.overflow = append(t.overflow, fn)
}

// Enable starts the timer. enabling an already enabled timer is a no-op
// success. fails if the input clock is not running, which means board
// bring-up has not happened.
func (t *Timer) Enable() error {
	if t.enabled {
		return nil
	}
	if t.input <= 0 {
		return curated.Errorf("tc: no input clock")
	}
	t.enabled = true
	return nil
}

// IsEnabled is true once Enable() has succeeded.
func (t *Timer) IsEnabled() bool {
	return t.enabled
}

// Step services n overflow periods. a disabled timer does not count, so
// stepping it does nothing.
func (t *Timer) Step(n int) {
	if !t.enabled {
		return
	}
	for range n {
		for _, fn := range t.overflow {
			fn()
		}
	}
}

// Rate returns the overflow frequency in Hz.
func (t *Timer) Rate() float64 {
	return t.input / (float64(t.period) + 1)
}
