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

package sdltv

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/beamloop/compositevideo/assert"
	"github.com/beamloop/compositevideo/gui"
)

func setupService() {
	// MOUSEMOTION events fill up the event queue pretty quickly and we have
	// no use for them
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
}

// Service implements the gui.Monitor interface.
//
// MUST only be called from the main goroutine.
func (scr *SdlTV) Service() []gui.Event {
	// polling from any other goroutine is a programming error that SDL will
	// not reliably report itself
	if assert.GetGoRoutineID() != scr.creator {
		panic("sdltv: Service() called from the wrong goroutine")
	}

	var events []gui.Event

	// loop until there are no more events to retrieve
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			events = append(events, gui.EventQuit{})

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				continue
			}

			switch key := strings.ToLower(sdl.GetKeyName(ev.Keysym.Sym)); key {
			case "q", "escape":
				events = append(events, gui.EventQuit{})
			case "o":
				// the overscan overlay is a display concern. deal with it
				// here rather than handing it to the caller
				scr.prefs.overlay.Set(!scr.prefs.overlay.Get().(bool))
			default:
				events = append(events, gui.EventKeyboard{Key: key})
			}
		}
	}

	return events
}
