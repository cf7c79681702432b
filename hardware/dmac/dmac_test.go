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

package dmac_test

import (
	"strings"
	"testing"

	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/test"
)

// sink implements dmac.Writable, recording every beat.
type sink struct {
	beats []uint16
	sizes []dmac.BeatSize
}

func (s *sink) WriteBeat(v uint16, size dmac.BeatSize) {
	s.beats = append(s.beats, v)
	s.sizes = append(s.sizes, size)
}

func expectBeats(t *testing.T, s *sink, expected []uint16) {
	t.Helper()
	if !test.ExpectEquality(t, len(s.beats), len(expected)) {
		return
	}
	for i := range expected {
		test.ExpectEquality(t, s.beats[i], expected[i], "beat", i)
	}
}

func TestArena(t *testing.T) {
	ar, err := dmac.NewArena(436, 1200)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, len(ar.Descriptors()), 436)
	test.ExpectEquality(t, len(ar.Samples()), 1200)

	// 436 sixteen byte descriptors and 1200 two byte samples
	test.ExpectEquality(t, ar.Size(), 9376)

	// over budget
	_, err = dmac.NewArena(436, 20000)
	test.ExpectFailure(t, err)

	// bad geometry
	_, err = dmac.NewArena(0, 0)
	test.ExpectFailure(t, err)
}

func TestChainBuild(t *testing.T) {
	ar, err := dmac.NewArena(3, 0)
	test.DemandSuccess(t, err)

	table := []uint16{1, 2, 3, 4, 5}
	rows := &sink{}
	flag := &sink{}

	ch := dmac.NewChain(ar)

	// a block overrunning its table is rejected
	_, err = ch.Add(dmac.Source{Data: table, Index: 2}, rows, 5, dmac.HWord, true)
	test.ExpectFailure(t, err)

	idx, err := ch.Add(dmac.Source{Data: table}, rows, 5, dmac.HWord, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 0)

	// the stored source index is the end of the block
	test.ExpectEquality(t, ch.At(0).Src.Index, 5)
	test.ExpectEquality(t, ch.At(0).Next, 1)

	idx, err = ch.Add(dmac.Source{Data: table, Index: 1}, rows, 3, dmac.HWord, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 1)
	test.ExpectEquality(t, ch.At(1).Src.Index, 4)

	// closing before the pool is exhausted is a configuration defect
	test.ExpectFailure(t, ch.Loop())

	// non-incrementing sources keep their index as given
	idx, err = ch.Add(dmac.Source{Data: []uint16{0x1ff}}, flag, 1, dmac.Byte, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 2)
	test.ExpectEquality(t, ch.At(2).Src.Index, 0)

	test.ExpectSuccess(t, ch.Loop())
	test.ExpectSuccess(t, ch.IsLooped())

	// the final descriptor links back to the head
	test.ExpectEquality(t, ch.At(2).Next, 0)

	test.ExpectEquality(t, ch.BeatsPerLoop(), 9)
	test.ExpectEquality(t, ch.SamplesPerLoop(rows), 8)
	test.ExpectEquality(t, ch.SamplesPerLoop(flag), 1)

	// a closed chain accepts no more descriptors
	_, err = ch.Add(dmac.Source{Data: table}, rows, 1, dmac.HWord, true)
	test.ExpectFailure(t, err)
}

// twoBlockChain builds a chain of one incrementing hword block and one
// fixed byte marker, the shape the video generator uses.
func twoBlockChain(t *testing.T) (*dmac.Arena, *dmac.Chain, *sink, *sink) {
	t.Helper()

	ar, err := dmac.NewArena(2, 0)
	test.DemandSuccess(t, err)

	rows := &sink{}
	flag := &sink{}

	ch := dmac.NewChain(ar)
	_, err = ch.Add(dmac.Source{Data: []uint16{10, 20, 30}}, rows, 3, dmac.HWord, true)
	test.DemandSuccess(t, err)
	_, err = ch.Add(dmac.Source{Data: []uint16{0x1ff}}, flag, 1, dmac.Byte, false)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ch.Loop())

	return ar, ch, rows, flag
}

func TestBeatEngine(t *testing.T) {
	_, ch, rows, flag := twoBlockChain(t)

	co := dmac.NewController()
	chn, err := co.Allocate()
	test.DemandSuccess(t, err)

	chn.SetTrigger(dmac.TrigTCOverflow)
	chn.SetAction(dmac.ActionBeat)
	test.ExpectSuccess(t, chn.SetDescriptorList(ch))
	test.ExpectSuccess(t, chn.StartJob())

	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, rows, []uint16{10})

	co.Event(dmac.TrigTCOverflow)
	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, rows, []uint16{10, 20, 30})

	// fourth event reaches the marker. byte beats are masked to eight
	// bits before delivery
	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, flag, []uint16{0xff})
	test.ExpectEquality(t, flag.sizes[0], dmac.Byte)

	// the loop closes back to the head
	co.Event(dmac.TrigTCOverflow)
	co.Event(dmac.TrigTCOverflow)
	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, rows, []uint16{10, 20, 30, 10, 20, 30})

	test.ExpectSuccess(t, chn.Busy())

	// events on other triggers leave the channel alone
	co.Event(dmac.TrigNone)
	expectBeats(t, rows, []uint16{10, 20, 30, 10, 20, 30})
}

func TestBlockAction(t *testing.T) {
	_, ch, rows, flag := twoBlockChain(t)

	co := dmac.NewController()
	chn, err := co.Allocate()
	test.DemandSuccess(t, err)

	chn.SetTrigger(dmac.TrigTCOverflow)
	chn.SetAction(dmac.ActionBlock)
	test.DemandSuccess(t, chn.SetDescriptorList(ch))
	test.DemandSuccess(t, chn.StartJob())

	// one event transfers the whole of the current block
	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, rows, []uint16{10, 20, 30})
	expectBeats(t, flag, []uint16{})

	co.Event(dmac.TrigTCOverflow)
	expectBeats(t, flag, []uint16{0xff})
}

func TestInvalidDescriptorHalts(t *testing.T) {
	ar, ch, rows, flag := twoBlockChain(t)

	co := dmac.NewController()
	chn, err := co.Allocate()
	test.DemandSuccess(t, err)

	chn.SetTrigger(dmac.TrigTCOverflow)
	chn.SetAction(dmac.ActionBeat)
	test.DemandSuccess(t, chn.SetDescriptorList(ch))
	test.DemandSuccess(t, chn.StartJob())

	// invalidate the marker descriptor mid-job
	ar.Descriptors()[1].Valid = false

	for range 6 {
		co.Event(dmac.TrigTCOverflow)
	}

	// the job halts at the end of the first block and delivers nothing
	// further
	expectBeats(t, rows, []uint16{10, 20, 30})
	expectBeats(t, flag, []uint16{})
	test.ExpectFailure(t, chn.Busy())
}

func TestChannelPool(t *testing.T) {
	co := dmac.NewController()

	channels := make([]*dmac.Channel, 0, dmac.NumChannels)
	for range dmac.NumChannels {
		chn, err := co.Allocate()
		test.ExpectSuccess(t, err)
		channels = append(channels, chn)
	}

	// pool exhausted
	_, err := co.Allocate()
	test.ExpectFailure(t, err)

	// freeing returns the channel to the pool
	test.ExpectSuccess(t, channels[3].Free())
	_, err = co.Allocate()
	test.ExpectSuccess(t, err)

	// a running job cannot be freed
	_, ch, _, _ := twoBlockChain(t)
	test.DemandSuccess(t, channels[0].SetDescriptorList(ch))
	test.DemandSuccess(t, channels[0].StartJob())
	test.ExpectFailure(t, channels[0].Free())
}

func TestStartJobValidation(t *testing.T) {
	co := dmac.NewController()
	chn, err := co.Allocate()
	test.DemandSuccess(t, err)

	// no descriptor list
	test.ExpectFailure(t, chn.StartJob())

	// an open chain is not a descriptor list
	ar, err := dmac.NewArena(2, 0)
	test.DemandSuccess(t, err)
	open := dmac.NewChain(ar)
	test.ExpectFailure(t, chn.SetDescriptorList(open))

	_, ch, _, _ := twoBlockChain(t)
	test.DemandSuccess(t, chn.SetDescriptorList(ch))
	test.DemandSuccess(t, chn.StartJob())

	// a job cannot be started twice
	test.ExpectFailure(t, chn.StartJob())
}

func TestGraph(t *testing.T) {
	_, ch, _, _ := twoBlockChain(t)

	b := &strings.Builder{}
	test.ExpectSuccess(t, dmac.Graph(b, ch))
	test.ExpectSuccess(t, strings.Contains(b.String(), "digraph"))

	// open chains cannot be graphed
	ar, err := dmac.NewArena(1, 0)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dmac.Graph(b, dmac.NewChain(ar)))
}
