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

package testcard_test

import (
	"testing"

	"github.com/beamloop/compositevideo/test"
	"github.com/beamloop/compositevideo/testcard"
)

// surface implements testcard.PixelWriter over a plain brightness grid.
// out of bounds writes are counted rather than honoured.
type surface struct {
	width  int
	height int
	pix    [][]uint8
	oob    int
}

func newSurface(width int, height int) *surface {
	s := &surface{width: width, height: height}
	s.pix = make([][]uint8, height)
	for i := range s.pix {
		s.pix[i] = make([]uint8, width)
	}
	return s
}

func (s *surface) DrawPixel(x int, y int, brightness uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		s.oob++
		return
	}
	s.pix[y][x] = brightness
}

func (s *surface) Clear() {
	for y := range s.pix {
		for x := range s.pix[y] {
			s.pix[y][x] = 0
		}
	}
}

func (s *surface) Width() int  { return s.width }
func (s *surface) Height() int { return s.height }

func TestDraw(t *testing.T) {
	s := newSurface(40, 24)

	err := testcard.Draw("no such card", s, 0)
	test.ExpectFailure(t, err)

	// names are not case sensitive
	err = testcard.Draw("BARS", s, 0)
	test.ExpectSuccess(t, err)
}

func TestList(t *testing.T) {
	l := testcard.List()
	test.DemandEquality(t, len(l), 6)

	// sorted
	for i := 1; i < len(l); i++ {
		test.ExpectSuccess(t, l[i-1] < l[i])
	}

	// default card is listed
	found := false
	for _, name := range l {
		if name == testcard.Default {
			found = true
		}
	}
	test.ExpectSuccess(t, found)
}

// no card may write outside the surface, whatever the frame number.
func TestBounds(t *testing.T) {
	s := newSurface(40, 24)
	for _, name := range testcard.List() {
		for frame := range 200 {
			err := testcard.Draw(name, s, frame)
			test.DemandSuccess(t, err)
		}
	}
	test.ExpectEquality(t, s.oob, 0)
}

func TestBars(t *testing.T) {
	s := newSurface(40, 24)
	err := testcard.Draw("bars", s, 0)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, s.pix[0][0], 0)
	test.ExpectEquality(t, s.pix[0][39], 255)

	for x := 1; x < s.width; x++ {
		if s.pix[0][x] < s.pix[0][x-1] {
			t.Fatalf("bars not monotonic at column %d", x)
		}
	}

	// bars are vertical. every row is the same as the first
	for y := 1; y < s.height; y++ {
		for x := range s.width {
			if s.pix[y][x] != s.pix[0][x] {
				t.Fatalf("bars not uniform at %d,%d", x, y)
			}
		}
	}
}

func TestGradient(t *testing.T) {
	s := newSurface(40, 24)
	err := testcard.Draw("gradient", s, 0)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, s.pix[0][0], 0)
	test.ExpectEquality(t, s.pix[0][39], 255)

	for x := 1; x < s.width; x++ {
		if s.pix[0][x] < s.pix[0][x-1] {
			t.Fatalf("gradient not monotonic at column %d", x)
		}
	}
}

func TestChecker(t *testing.T) {
	s := newSurface(40, 24)
	err := testcard.Draw("checker", s, 0)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, s.pix[0][0], 255)
	test.ExpectEquality(t, s.pix[0][1], 0)
	test.ExpectEquality(t, s.pix[1][0], 0)
	test.ExpectEquality(t, s.pix[1][1], 255)
}

func TestGrid(t *testing.T) {
	s := newSurface(40, 24)
	err := testcard.Draw("grid", s, 0)
	test.DemandSuccess(t, err)

	// border
	test.ExpectEquality(t, s.pix[0][0], 255)
	test.ExpectEquality(t, s.pix[0][39], 255)
	test.ExpectEquality(t, s.pix[23][0], 255)
	test.ExpectEquality(t, s.pix[23][39], 255)

	// crosshatch lines and the cells between them
	test.ExpectEquality(t, s.pix[2][4], 255)
	test.ExpectEquality(t, s.pix[2][2], 0)
}

func TestBounce(t *testing.T) {
	s := newSurface(40, 24)

	err := testcard.Draw("bounce", s, 0)
	test.DemandSuccess(t, err)

	// frame zero puts the ball in the top left corner, over the border
	test.ExpectEquality(t, s.pix[0][0], 255)
	test.ExpectEquality(t, s.pix[1][1], 255)

	// border is dim
	test.ExpectEquality(t, s.pix[0][5], 96)
	test.ExpectEquality(t, s.pix[23][5], 96)

	// ball moves diagonally before the first rebound
	err = testcard.Draw("bounce", s, 10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.pix[10][10], 255)
	test.ExpectEquality(t, s.pix[0][0], 96)

	// vertical travel has rebounded by frame 38 while horizontal travel
	// has not
	err = testcard.Draw("bounce", s, 38)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.pix[7][38], 255)
}

func TestNoise(t *testing.T) {
	a := newSurface(40, 24)
	b := newSurface(40, 24)

	// the same frame always produces the same pattern
	err := testcard.Draw("noise", a, 7)
	test.DemandSuccess(t, err)
	err = testcard.Draw("noise", b, 7)
	test.DemandSuccess(t, err)
	for y := range a.height {
		for x := range a.width {
			if a.pix[y][x] != b.pix[y][x] {
				t.Fatalf("noise not reproducible at %d,%d", x, y)
			}
		}
	}

	// while different frames produce different patterns
	err = testcard.Draw("noise", b, 8)
	test.DemandSuccess(t, err)
	same := true
	for y := range a.height {
		for x := range a.width {
			same = same && a.pix[y][x] == b.pix[y][x]
		}
	}
	test.ExpectSuccess(t, !same)
}
