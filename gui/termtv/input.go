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

package termtv

import (
	"os"
	"strings"
	"syscall"

	"github.com/pkg/term/termios"

	"github.com/beamloop/compositevideo/gui"
)

// ASCII codes for the control keys we care about
const (
	keyInterrupt = 3
	keyEsc       = 27
)

// input reads single key presses from standard input. when standard input
// is not a terminal there is no input and Service() never returns events.
type input struct {
	in *os.File

	// key presses straight off the wire. the reading goroutine fills the
	// channel and Service() drains it
	presses chan byte

	// canonical attributes, restored on exit
	canAttr     syscall.Termios
	restoreAttr bool
}

func newInput() (*input, error) {
	inp := &input{
		in:      os.Stdin,
		presses: make(chan byte, 8),
	}

	fi, err := inp.in.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice != os.ModeCharDevice {
		// not a terminal. no input is not an error
		return inp, nil
	}

	// cbreak mode gives us key presses without buffering or echo but,
	// unlike raw mode, leaves the interrupt key with its usual meaning
	if err := termios.Tcgetattr(inp.in.Fd(), &inp.canAttr); err != nil {
		return nil, err
	}
	cbreakAttr := inp.canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(inp.in.Fd(), termios.TCIFLUSH, &cbreakAttr); err != nil {
		return nil, err
	}
	inp.restoreAttr = true

	// the reading goroutine runs for the life of the process. a blocked
	// Read() cannot be interrupted cleanly and there is no need to try
	go func() {
		b := make([]byte, 1)
		for {
			n, err := inp.in.Read(b)
			if err != nil {
				return
			}
			if n != 1 {
				continue
			}
			select {
			case inp.presses <- b[0]:
			default:
				// drop key presses rather than stall the reader
			}
		}
	}()

	return inp, nil
}

func (inp *input) restore() {
	if inp.restoreAttr {
		termios.Tcsetattr(inp.in.Fd(), termios.TCIFLUSH, &inp.canAttr)
		inp.restoreAttr = false
	}
}

// Service implements the gui.Monitor interface.
func (scr *TermTV) Service() []gui.Event {
	var events []gui.Event

	for {
		select {
		case k := <-scr.input.presses:
			switch k {
			case 'q', 'Q', keyEsc, keyInterrupt:
				events = append(events, gui.EventQuit{})
			default:
				if k > ' ' && k < 127 {
					events = append(events, gui.EventKeyboard{Key: strings.ToLower(string(k))})
				}
			}
		default:
			return events
		}
	}
}
