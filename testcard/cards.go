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

package testcard

import "math/rand"

// bars is a step wedge. eight vertical bars from black on the left to
// full white on the right.
func bars(w PixelWriter, _ int) {
	width := w.Width()
	height := w.Height()
	for x := range width {
		b := uint8(x * 8 / width * 255 / 7)
		for y := range height {
			w.DrawPixel(x, y, b)
		}
	}
}

// gradient is a continuous horizontal ramp from black to white.
func gradient(w PixelWriter, _ int) {
	width := w.Width()
	height := w.Height()
	for x := range width {
		b := uint8(x * 255 / (width - 1))
		for y := range height {
			w.DrawPixel(x, y, b)
		}
	}
}

// checker alternates black and white at single pixel pitch. the finest
// detail the generator can produce and a good check of interlace
// stability.
func checker(w PixelWriter, _ int) {
	width := w.Width()
	height := w.Height()
	for y := range height {
		for x := range width {
			if (x+y)%2 == 0 {
				w.DrawPixel(x, y, 255)
			}
		}
	}
}

// grid is a crosshatch with a border. useful for judging geometry and
// overscan on a real display.
func grid(w PixelWriter, _ int) {
	width := w.Width()
	height := w.Height()
	for y := range height {
		for x := range width {
			if x == 0 || y == 0 || x == width-1 || y == height-1 || x%4 == 0 || y%4 == 0 {
				w.DrawPixel(x, y, 255)
			}
		}
	}
}

// bounce animates a small ball that rebounds off the display edges. the
// caller advances the frame number, typically once per completed field.
func bounce(w PixelWriter, frame int) {
	width := w.Width()
	height := w.Height()

	x := pingpong(frame, width-1)
	y := pingpong(frame, height-1)

	// dim border for reference
	for i := range width {
		w.DrawPixel(i, 0, 96)
		w.DrawPixel(i, height-1, 96)
	}
	for i := range height {
		w.DrawPixel(0, i, 96)
		w.DrawPixel(width-1, i, 96)
	}

	// ball is two pixels square
	for dy := range 2 {
		for dx := range 2 {
			w.DrawPixel(x+dx, y+dy, 255)
		}
	}
}

// noise fills the screen with static. the pattern is keyed on the frame
// number alone so a given frame always produces the same pixels, which
// keeps digests of the card reproducible.
func noise(w PixelWriter, frame int) {
	rng := rand.New(rand.NewSource(int64(frame)))
	width := w.Width()
	height := w.Height()
	for y := range height {
		for x := range width {
			w.DrawPixel(x, y, uint8(rng.Intn(256)))
		}
	}
}

// pingpong folds v into the range [0, limit) such that successive values
// of v sweep up and back down again.
func pingpong(v int, limit int) int {
	if limit <= 1 {
		return 0
	}
	v %= 2 * limit
	if v < 0 {
		v += 2 * limit
	}
	if v >= limit {
		v = 2*limit - 1 - v
	}
	return v
}
