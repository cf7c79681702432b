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

// Package termtv is the terminal front-end. The picture area of each field
// is rendered as rows of half-block characters, two picture rows per
// character row, in 24-bit colour. The cursor is homed between fields so the
// image updates in place.
//
// When standard output is not a terminal the monitor degrades to plain
// ASCII frame dumps, emitted only when the picture has changed.
package termtv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/television"
)

// ansi control sequences
const (
	clearScreen = "\x1b[2J"
	homeCursor  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	attrOff     = "\x1b[0m"
	penFormat   = "\x1b[38;2;%d;%d;%dm"
	paperFormat = "\x1b[48;2;%d;%d;%dm"
)

// the upper half block. the pen colours the top picture row of the pair and
// the paper the bottom
const halfBlock = "▀"

// the luma ramp for plain dumps, darkest first
const lumaRamp = " .:-=+*#%@"

// TermTV is the terminal implementation of the gui.Monitor interface.
type TermTV struct {
	*television.Television

	// the logical picture. one luma value for each logical pixel
	width  int
	height int
	grid   [][]uint8

	// geometry of the picture area within the raster. top comes from the
	// most recently concluded field, the others from the specification
	top        int
	offset     int
	oversample int

	// out is standard output unless redirected with SetOutput()
	out  io.Writer
	ansi bool

	// whether the screen has been claimed with a clear. used to restore the
	// terminal in EndRendering()
	homed bool

	// at least one grid value has changed since the last dump. plain dumps
	// are suppressed while the picture is static
	dirty bool

	input *input
}

// NewTermTV is the preferred method of initialisation for the TermTV type.
func NewTermTV(tv *television.Television) (*TermTV, error) {
	scr := &TermTV{
		Television: tv,
		out:        os.Stdout,
		dirty:      true,
	}

	spec := tv.GetSpec()
	scr.width = spec.Width
	scr.height = spec.Height
	scr.offset = spec.VisibleOffset
	scr.oversample = spec.Oversample

	scr.grid = make([][]uint8, scr.height)
	for i := range scr.grid {
		scr.grid[i] = make([]uint8, scr.width)
	}

	// ansi output only when standard output is a terminal
	if fi, err := os.Stdout.Stat(); err == nil {
		scr.ansi = fi.Mode()&os.ModeCharDevice == os.ModeCharDevice
	}

	var err error
	scr.input, err = newInput()
	if err != nil {
		return nil, curated.Errorf("termtv: %v", err)
	}

	// register ourselves as a television.PixelRenderer
	tv.AddPixelRenderer(scr)

	return scr, nil
}

// SetOutput redirects the monitor's output. Useful for capturing frames.
// The ansi argument says whether the writer understands ANSI control
// sequences.
func (scr *TermTV) SetOutput(w io.Writer, ansi bool) {
	scr.out = w
	scr.ansi = ansi
	scr.homed = false
	scr.dirty = true
}

// NewField implements the television.PixelRenderer interface.
func (scr *TermTV) NewField(info television.FieldInfo) error {
	scr.top = info.VisibleTop

	// show nothing until the image is stable
	if !info.Stable {
		return nil
	}

	if scr.ansi {
		if !scr.homed {
			if _, err := io.WriteString(scr.out, clearScreen+hideCursor); err != nil {
				return curated.Errorf("termtv: %v", err)
			}
			scr.homed = true
		}
		if _, err := io.WriteString(scr.out, scr.compose()); err != nil {
			return curated.Errorf("termtv: %v", err)
		}
		return nil
	}

	if !scr.dirty {
		return nil
	}
	scr.dirty = false

	if _, err := io.WriteString(scr.out, scr.composePlain()); err != nil {
		return curated.Errorf("termtv: %v", err)
	}

	return nil
}

// compose builds a whole ANSI frame. colour codes are only emitted when the
// colour changes, which keeps the write small enough for a terminal to
// handle at field rate.
func (scr *TermTV) compose() string {
	b := strings.Builder{}
	b.Grow(scr.width * scr.height * 4)

	b.WriteString(homeCursor)

	for row := 0; row < scr.height; row += 2 {
		lastPen := -1
		lastPaper := -1

		for col := 0; col < scr.width; col++ {
			pen := int(scr.grid[row][col])
			paper := 0
			if row+1 < scr.height {
				paper = int(scr.grid[row+1][col])
			}

			if pen != lastPen {
				fmt.Fprintf(&b, penFormat, pen, pen, pen)
				lastPen = pen
			}
			if paper != lastPaper {
				fmt.Fprintf(&b, paperFormat, paper, paper, paper)
				lastPaper = paper
			}
			b.WriteString(halfBlock)
		}

		b.WriteString(attrOff)
		b.WriteString("\r\n")
	}

	return b.String()
}

// composePlain builds a frame of plain characters from the luma ramp.
func (scr *TermTV) composePlain() string {
	b := strings.Builder{}
	b.Grow((scr.width + 1) * (scr.height + 1))

	for row := 0; row < scr.height; row++ {
		for col := 0; col < scr.width; col++ {
			b.WriteByte(lumaRamp[int(scr.grid[row][col])*len(lumaRamp)/256])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

// NewScanline implements the television.PixelRenderer interface.
func (scr *TermTV) NewScanline(scanline int) error {
	return nil
}

// SetPixel implements the television.PixelRenderer interface. The raster
// position is folded down to a logical pixel; samples outside the picture
// area are dropped.
func (scr *TermTV) SetPixel(x int, y int, luma uint8, blanked bool) error {
	if blanked {
		luma = 0
	}

	col := x - scr.offset
	row := (y - scr.top) / scr.oversample
	if y < scr.top || col < 0 || col >= scr.width || row >= scr.height {
		return nil
	}

	if scr.grid[row][col] != luma {
		scr.grid[row][col] = luma
		scr.dirty = true
	}

	return nil
}

// EndRendering implements the television.PixelRenderer interface. The
// terminal is put back the way it was found.
func (scr *TermTV) EndRendering() error {
	scr.input.restore()

	if scr.homed {
		if _, err := io.WriteString(scr.out, attrOff+showCursor+"\n"); err != nil {
			return curated.Errorf("termtv: %v", err)
		}
	}

	return nil
}
