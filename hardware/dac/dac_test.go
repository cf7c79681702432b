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

package dac_test

import (
	"testing"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/hardware/dac"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/television/signal"
	"github.com/beamloop/compositevideo/test"
)

type wire struct {
	samples []signal.Sample
	err     error
}

func (w *wire) Signal(s signal.Sample) error {
	if w.err != nil {
		return w.err
	}
	w.samples = append(w.samples, s)
	return nil
}

func TestWriteBeat(t *testing.T) {
	d := dac.NewDAC()
	test.ExpectImplements(t, d, (dmac.Writable)(nil))

	w := &wire{}
	d.Attach(w)

	// a disabled DAC latches but drives nothing
	d.WriteBeat(0x07ff, dmac.HWord)
	test.ExpectEquality(t, d.Value(), signal.Sample(0x03ff))
	test.ExpectEquality(t, len(w.samples), 0)

	d.Enable()
	test.ExpectSuccess(t, d.IsEnabled())

	d.WriteBeat(310, dmac.HWord)
	test.ExpectEquality(t, d.Value(), signal.Sample(310))

	test.DemandEquality(t, len(w.samples), 1)
	test.ExpectEquality(t, w.samples[0], signal.Sample(310))
}

func TestListenerFanOut(t *testing.T) {
	d := dac.NewDAC()
	d.Enable()

	// the first listener fails on every sample. the error must not stop
	// the second listener receiving
	bad := &wire{err: curated.Errorf("broken wire")}
	good := &wire{}
	d.Attach(bad)
	d.Attach(good)

	d.WriteBeat(45, dmac.HWord)
	d.WriteBeat(60, dmac.HWord)

	test.DemandEquality(t, len(good.samples), 2)
	test.ExpectEquality(t, good.samples[0], signal.Sample(45))
	test.ExpectEquality(t, good.samples[1], signal.Sample(60))
}
