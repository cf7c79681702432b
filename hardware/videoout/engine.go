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

package videoout

import (
	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/hardware/dac"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/hardware/tc"
	"github.com/beamloop/compositevideo/television/specification"
)

// State records how far through initialisation the engine is.
type State int

// The three engine states. there is no transition out of Running.
const (
	Uninitialised State = iota
	Ready
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialised:
		return "uninitialised"
	case Ready:
		return "ready"
	case Running:
		return "running"
	}
	return "unknown"
}

// Engine generates the video signal. it owns the frame buffer and the
// descriptor chain and it programs the hardware collaborators handed to
// it at construction.
type Engine struct {
	spec   specification.Spec
	width  int
	height int

	ctrl *dmac.Controller
	tmr  *tc.Timer
	dac  *dac.DAC

	state    State
	rotation int

	arena   *dmac.Arena
	fb      *frameBuffer
	channel *dmac.Channel
	chain   *dmac.Chain
	flag    fieldFlag
}

// NewEngine is the preferred method of initialisation for the Engine
// type. the hardware collaborators are the board's, the engine does not
// create its own.
func NewEngine(spec specification.Spec, width int, height int, ctrl *dmac.Controller, tmr *tc.Timer, d *dac.DAC) (*Engine, error) {
	if ctrl == nil || tmr == nil || d == nil {
		return nil, curated.Errorf("videoout: missing hardware collaborator")
	}
	if width != spec.Width || height != spec.Height {
		return nil, curated.Errorf("videoout: %dx%d does not match mode %s", width, height, spec.ID)
	}

	return &Engine{
		spec:   spec,
		width:  width,
		height: height,
		ctrl:   ctrl,
		tmr:    tmr,
		dac:    d,
	}, nil
}

// Begin takes the engine through to the Running state. calling Begin()
// on an engine that is already running is a no-op success.
//
// failure leaves the engine where it was: a channel or memory failure
// leaves it Uninitialised with nothing reserved, a job start failure
// leaves it Ready. there is no retry policy here, the expected response
// to a failed Begin() is to halt. no video is better than a malformed
// signal.
func (e *Engine) Begin() error {
	if e.state == Running {
		return nil
	}

	if e.state == Uninitialised {
		if err := e.beginBase(); err != nil {
			return err
		}
		e.state = Ready
	}

	if err := e.beginMode(); err != nil {
		return err
	}
	e.state = Running

	return nil
}

// beginBase reserves the DMA channel and the arena and programs the
// timer and DAC.
func (e *Engine) beginBase() error {
	channel, err := e.ctrl.Allocate()
	if err != nil {
		return curated.Errorf("videoout: %v", err)
	}
	channel.SetTrigger(dmac.TrigTCOverflow)
	channel.SetAction(dmac.ActionBeat)

	// one allocation for the descriptors and the frame buffer together
	arena, err := dmac.NewArena(e.spec.NumDescriptors, e.height*e.spec.SamplesPerRow)
	if err != nil {
		_ = channel.Free()
		return curated.Errorf("videoout: %v", err)
	}

	if err := e.tmr.SetPeriod(e.spec.TimerPeriod); err != nil {
		_ = channel.Free()
		return curated.Errorf("videoout: %v", err)
	}
	if err := e.tmr.Enable(); err != nil {
		_ = channel.Free()
		return curated.Errorf("videoout: %v", err)
	}
	e.dac.Enable()

	e.channel = channel
	e.arena = arena
	e.fb = newFrameBuffer(arena.Samples(), beats(specification.BlackLine), e.height, e.spec.VisibleOffset, e.width)

	return nil
}

// beginMode builds the descriptor chain for the mode and starts the
// job.
func (e *Engine) beginMode() error {
	chain := dmac.NewChain(e.arena)

	if err := e.layout(chain); err != nil {
		return curated.Errorf("videoout: %v", err)
	}

	e.fb.clear()

	if err := e.channel.SetDescriptorList(chain); err != nil {
		return curated.Errorf("videoout: %v", err)
	}
	if err := e.channel.StartJob(); err != nil {
		return curated.Errorf("videoout: %v", err)
	}

	e.chain = chain

	return nil
}

// layout selects the descriptor layout for the mode. a tagged selection
// rather than subclassing, there being exactly one mode today.
func (e *Engine) layout(chain *dmac.Chain) error {
	switch e.spec.ID {
	case specification.SpecNTSC40x24.ID:
		return e.layoutNTSC40x24(chain)
	}
	return curated.Errorf("videoout: no descriptor layout for %s", e.spec.ID)
}

// DrawPixel writes one pixel at the logical coordinate, mapping
// brightness onto the black to white sample range. out of range
// coordinates are silently ignored, as is a call before Begin(). the
// single hot path of the package, there is no error return.
func (e *Engine) DrawPixel(x int, y int, brightness uint8) {
	if e.fb == nil {
		return
	}
	if x < 0 || x >= e.Width() || y < 0 || y >= e.Height() {
		return
	}

	// map through the active rotation using the unrotated dimensions.
	// values outside the four defined rotations apply no transform
	switch e.rotation {
	case 1:
		x, y = e.width-1-y, x
	case 2:
		x, y = e.width-1-x, e.height-1-y
	case 3:
		x, y = y, e.height-1-x
	}

	e.fb.setPixel(x, y, uint16(specification.BrightnessToSample(brightness)))
}

// Clear resets the visible window of every row to the black level. sync
// and porch samples are untouched. a no-op before Begin().
func (e *Engine) Clear() {
	if e.fb == nil {
		return
	}
	e.fb.clear()
}

// Field returns the field phase flag: FieldOdd or FieldEven as written
// by the marker descriptors, any value previously given to SetField(),
// or zero before the first marker is reached.
func (e *Engine) Field() uint8 {
	return e.flag.value()
}

// SetField overwrites the field phase flag. a debugging and polling
// reset aid.
func (e *Engine) SetField(v uint8) {
	e.flag.set(v)
}

// Width returns the logical width under the active rotation.
func (e *Engine) Width() int {
	if e.rotation == 1 || e.rotation == 3 {
		return e.height
	}
	return e.width
}

// Height returns the logical height under the active rotation.
func (e *Engine) Height() int {
	if e.rotation == 1 || e.rotation == 3 {
		return e.width
	}
	return e.height
}

// Rotation returns the rotation value last given to SetRotation().
func (e *Engine) Rotation() int {
	return e.rotation
}

// SetRotation sets the transform applied to subsequent pixel writes.
// the defined values are 0 to 3, for 0, 90, 180 and 270 degrees. other
// values are kept but apply no transform.
func (e *Engine) SetRotation(rotation int) {
	e.rotation = rotation
}

// Spec returns a copy of the mode specification the engine was built
// with.
func (e *Engine) Spec() specification.Spec {
	return e.spec
}

// State returns the engine state.
func (e *Engine) State() State {
	return e.state
}

// Chain returns the descriptor chain. nil until the engine has reached
// the Running state.
func (e *Engine) Chain() *dmac.Chain {
	return e.chain
}

// Sample returns the raw sample at the raster coordinate. col addresses
// the full raster line, sync and porch included. zero before Begin().
func (e *Engine) Sample(col int, row int) uint16 {
	if e.fb == nil {
		return 0
	}
	return e.fb.sample(col, row)
}
