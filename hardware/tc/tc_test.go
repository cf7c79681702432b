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

package tc_test

import (
	"testing"

	"github.com/beamloop/compositevideo/hardware/clocks"
	"github.com/beamloop/compositevideo/hardware/tc"
	"github.com/beamloop/compositevideo/test"
)

func TestRate(t *testing.T) {
	tmr := tc.NewTimer(clocks.GCLK0)
	test.ExpectSuccess(t, tmr.SetPeriod(60))

	// 48MHz divided by 61
	test.ExpectApproximate(t, tmr.Rate(), 786885.25, 0.000001)
}

func TestOverflow(t *testing.T) {
	tmr := tc.NewTimer(clocks.GCLK0)
	test.DemandSuccess(t, tmr.SetPeriod(60))

	order := []int{}
	tmr.OnOverflow(func() { order = append(order, 1) })
	tmr.OnOverflow(func() { order = append(order, 2) })

	// a disabled timer does not count
	tmr.Step(10)
	test.ExpectEquality(t, len(order), 0)

	test.ExpectSuccess(t, tmr.Enable())
	test.ExpectSuccess(t, tmr.IsEnabled())

	tmr.Step(3)
	test.ExpectEquality(t, len(order), 6)

	// handlers run in registration order within each period
	for i, v := range order {
		test.ExpectEquality(t, v, i%2+1, "event", i)
	}
}

func TestEnable(t *testing.T) {
	tmr := tc.NewTimer(clocks.GCLK0)
	test.DemandSuccess(t, tmr.SetPeriod(60))

	test.ExpectSuccess(t, tmr.Enable())

	// enabling an enabled timer is a no-op success
	test.ExpectSuccess(t, tmr.Enable())

	// no reconfiguration path once enabled
	test.ExpectFailure(t, tmr.SetPeriod(100))

	// a timer without an input clock cannot be enabled
	dead := tc.NewTimer(0)
	test.ExpectFailure(t, dead.Enable())
}
