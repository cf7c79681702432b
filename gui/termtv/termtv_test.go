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

package termtv_test

import (
	"strings"
	"testing"

	"github.com/beamloop/compositevideo/gui"
	"github.com/beamloop/compositevideo/gui/termtv"
	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/test"
)

func newTestMonitor(t *testing.T, ansi bool) (*termtv.TermTV, *strings.Builder) {
	t.Helper()

	tv, err := television.NewTelevision("NTSC40x24")
	if err != nil {
		t.Fatal(err)
	}
	tv.SetLogging(false)

	scr, err := termtv.NewTermTV(tv)
	if err != nil {
		t.Fatal(err)
	}

	b := &strings.Builder{}
	scr.SetOutput(b, ansi)

	// geometry for the following SetPixel() calls. not stable so nothing is
	// written yet
	err = scr.NewField(television.FieldInfo{VisibleTop: 22})
	test.DemandSuccess(t, err)
	test.DemandEquality(t, b.Len(), 0)

	return scr, b
}

func TestMonitorInterface(t *testing.T) {
	scr, _ := newTestMonitor(t, false)
	test.ExpectImplements(t, scr, (gui.Monitor)(nil))
	test.ExpectImplements(t, scr, (television.PixelRenderer)(nil))
}

func TestPlainDump(t *testing.T) {
	scr, b := newTestMonitor(t, false)

	// top left logical pixel white, bottom right mid-grey. the raster
	// coordinates are offset by the visible offset and top scanline, with
	// nine scanlines to the logical row
	err := scr.SetPixel(9, 22, 255, false)
	test.DemandSuccess(t, err)
	err = scr.SetPixel(9+39, 22+9*23, 128, false)
	test.DemandSuccess(t, err)

	err = scr.NewField(television.FieldInfo{VisibleTop: 22, Stable: true})
	test.DemandSuccess(t, err)

	lines := strings.Split(b.String(), "\n")
	test.DemandEquality(t, len(lines), 26)
	test.ExpectEquality(t, lines[0][0], byte('@'))
	test.ExpectEquality(t, lines[23][39], byte('+'))
	test.ExpectEquality(t, lines[0][1], byte(' '))

	// a static picture is not dumped again
	b.Reset()
	err = scr.NewField(television.FieldInfo{VisibleTop: 22, Stable: true})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Len(), 0)

	// but a changed picture is
	err = scr.SetPixel(10, 22, 255, false)
	test.DemandSuccess(t, err)
	err = scr.NewField(television.FieldInfo{VisibleTop: 22, Stable: true})
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, b.Len(), 0)
}

func TestAnsiFrame(t *testing.T) {
	scr, b := newTestMonitor(t, true)

	err := scr.SetPixel(9, 22, 255, false)
	test.DemandSuccess(t, err)

	err = scr.NewField(television.FieldInfo{VisibleTop: 22, Stable: true})
	test.DemandSuccess(t, err)

	// the first frame claims the screen before drawing
	frame := b.String()
	test.ExpectSuccess(t, strings.HasPrefix(frame, "\x1b[2J"))
	test.ExpectSuccess(t, strings.Contains(frame, "\x1b[38;2;255;255;255m"))
	test.ExpectSuccess(t, strings.Contains(frame, "▀"))
	test.ExpectEquality(t, strings.Count(frame, "\r\n"), 12)

	// subsequent frames home the cursor rather than clearing
	b.Reset()
	err = scr.NewField(television.FieldInfo{VisibleTop: 22, Stable: true})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(b.String(), "\x1b[H"))
}

func TestRasterFolding(t *testing.T) {
	scr, _ := newTestMonitor(t, false)

	// pixels outside the picture area are dropped without error
	err := scr.SetPixel(0, 0, 255, false)
	test.ExpectSuccess(t, err)
	err = scr.SetPixel(60, 30, 255, false)
	test.ExpectSuccess(t, err)
	err = scr.SetPixel(9, 500, 255, false)
	test.ExpectSuccess(t, err)

	// blanked pixels leave the grid black
	err = scr.SetPixel(9, 22, 200, true)
	test.ExpectSuccess(t, err)
}

func TestService(t *testing.T) {
	scr, _ := newTestMonitor(t, false)

	// no terminal input in the test environment so no events
	events := scr.Service()
	test.ExpectEquality(t, len(events), 0)
}
