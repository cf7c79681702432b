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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate.
//
// A new FieldLimiter can be created with (error handling removed for
// clarity):
//
//	lim, _ := limiter.NewFieldLimiter(59.95)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		emitField()
//	}
package limiter

import (
	"time"
)

// this is a really rough attempt at rate limiting. probably only any good if
// base performance of the machine is well above the required rate.

// FieldLimiter will trigger at the specified number of fields per second
type FieldLimiter struct {
	fieldsPerSecond float64
	secondsPerField time.Duration

	tick chan bool
}

// NewFieldLimiter is the preferred method of initialisation for the
// FieldLimiter type
func NewFieldLimiter(fieldsPerSecond float64) (*FieldLimiter, error) {
	lim := &FieldLimiter{}
	lim.SetLimit(fieldsPerSecond)

	lim.tick = make(chan bool)

	// run ticker concurrently
	go func() {
		adjustedSecondPerField := lim.secondsPerField
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjustedSecondPerField)
			nt := time.Now()
			adjustedSecondPerField -= nt.Sub(t) - lim.secondsPerField
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the rate at which the FieldLimiter waits
func (lim *FieldLimiter) SetLimit(fieldsPerSecond float64) {
	lim.fieldsPerSecond = fieldsPerSecond
	lim.secondsPerField = time.Duration(float64(time.Second) / fieldsPerSecond)
}

// Wait will block until trigger
func (lim *FieldLimiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false if it is
// still yet to happen
func (lim *FieldLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}
