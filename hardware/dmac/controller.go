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

package dmac

import (
	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/logger"
)

// TriggerSource identifies the peripheral event that advances a channel.
type TriggerSource int

// Available trigger sources. TrigNone means the channel only advances
// under software control, which in this model means never.
const (
	TrigNone TriggerSource = iota
	TrigTCOverflow
)

// Action selects how much of a transfer one trigger event performs.
type Action int

// Available actions. the zero value mirrors the hardware reset state.
const (
	ActionBlock Action = iota
	ActionBeat
)

// NumChannels is the size of the controller's channel pool.
const NumChannels = 12

// Controller is the DMA controller, a fixed pool of channels sharing a
// trigger bus.
type Controller struct {
	channels [NumChannels]Channel
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController() *Controller {
	co := &Controller{}
	for i := range co.channels {
		co.channels[i].id = i
	}
	return co
}

// Allocate reserves a free channel from the pool. the reservation is a
// resource failure, not a panic, when the pool is exhausted.
func (co *Controller) Allocate() (*Channel, error) {
	for i := range co.channels {
		ch := &co.channels[i]
		if !ch.allocated {
			*ch = Channel{id: ch.id, allocated: true}
			return ch, nil
		}
	}
	return nil, curated.Errorf("dmac: no free channels")
}

// Event delivers one trigger event to the controller. every busy channel
// configured for the source performs its action, one beat for
// beat-action channels, the remainder of the current block for
// block-action channels.
func (co *Controller) Event(src TriggerSource) {
	if src == TrigNone {
		return
	}

	for i := range co.channels {
		ch := &co.channels[i]
		if !ch.busy || ch.trigger != src {
			continue
		}

		switch ch.action {
		case ActionBeat:
			ch.beat()
		case ActionBlock:
			n := ch.remaining
			for range n {
				ch.beat()
			}
		}
	}
}

// Channel is one member of the controller's pool. channels are acquired
// with Controller.Allocate() and configured before the job starts. there
// is no way to stop or reconfigure a running job.
type Channel struct {
	id        int
	allocated bool

	trigger TriggerSource
	action  Action
	chain   *Chain

	busy      bool
	current   int
	remaining int
}

// ID returns the channel number.
func (ch *Channel) ID() int {
	return ch.id
}

// SetTrigger selects the trigger source that advances the channel.
func (ch *Channel) SetTrigger(src TriggerSource) {
	ch.trigger = src
}

// SetAction selects how much of the transfer each trigger event
// performs.
func (ch *Channel) SetAction(act Action) {
	ch.action = act
}

// SetDescriptorList hands a closed descriptor chain to the channel. the
// equivalent of programming the controller's descriptor base address.
func (ch *Channel) SetDescriptorList(chain *Chain) error {
	if ch.busy {
		return curated.Errorf("dmac: channel %d: job is running", ch.id)
	}
	if chain == nil || !chain.IsLooped() {
		return curated.Errorf("dmac: channel %d: descriptor list is not a closed loop", ch.id)
	}
	ch.chain = chain
	return nil
}

// StartJob sets the channel running from the head of its descriptor
// list. from this point the only exit is an invalid descriptor.
func (ch *Channel) StartJob() error {
	if ch.busy {
		return curated.Errorf("dmac: channel %d: job already started", ch.id)
	}
	if ch.chain == nil {
		return curated.Errorf("dmac: channel %d: no descriptor list", ch.id)
	}

	d := ch.chain.At(0)
	if !d.Valid {
		return curated.Errorf("dmac: channel %d: head descriptor is not valid", ch.id)
	}

	ch.current = 0
	ch.remaining = int(d.Count)
	ch.busy = true

	return nil
}

// Busy is true while the channel's job is running.
func (ch *Channel) Busy() bool {
	return ch.busy
}

// Free returns the channel to the pool. fails while a job is running.
func (ch *Channel) Free() error {
	if ch.busy {
		return curated.Errorf("dmac: channel %d: job is running", ch.id)
	}
	ch.allocated = false
	ch.chain = nil
	return nil
}

// beat transfers one beat of the current descriptor and follows the
// chain when the block is exhausted.
func (ch *Channel) beat() {
	d := &ch.chain.arena.descriptors[ch.current]

	var v uint16
	if d.SrcInc {
		// the stored index is the end of the block. the engine works
		// backwards from it by the remaining count
		v = d.Src.Data[d.Src.Index-ch.remaining]
	} else {
		v = d.Src.Data[d.Src.Index]
	}

	if d.Width == Byte {
		v &= 0xff
	}

	d.Dst.WriteBeat(v, d.Width)

	ch.remaining--
	if ch.remaining == 0 {
		ch.advance()
	}
}

// advance follows the current descriptor's link. an invalid successor
// halts the job.
func (ch *Channel) advance() {
	next := ch.chain.arena.descriptors[ch.current].Next
	d := ch.chain.At(next)

	if !d.Valid {
		logger.Logf(logger.Allow, "DMAC", "channel %d: invalid descriptor %d: job halted", ch.id, next)
		ch.busy = false
		return
	}

	ch.current = next
	ch.remaining = int(d.Count)
}
