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

// Package testcard draws simple test patterns through the video
// generator's single pixel-write entry point. It stands in for a full
// drawing library, which is outside the remit of this project, while
// giving the front-ends and the profiler something to put on screen.
package testcard

import (
	"sort"
	"strings"

	"github.com/beamloop/compositevideo/curated"
)

// PixelWriter is the drawing surface a card is given. the video output
// engine satisfies it.
type PixelWriter interface {
	DrawPixel(x int, y int, brightness uint8)
	Clear()
	Width() int
	Height() int
}

// Card draws one frame of a test pattern. static cards ignore the frame
// number.
type Card func(w PixelWriter, frame int)

// Default is the card used when the user has not asked for one.
const Default = "bars"

var cards = map[string]Card{
	"bars":     bars,
	"gradient": gradient,
	"checker":  checker,
	"grid":     grid,
	"bounce":   bounce,
	"noise":    noise,
}

// Draw clears the surface and draws one frame of the named card.
func Draw(name string, w PixelWriter, frame int) error {
	c, ok := cards[strings.ToLower(name)]
	if !ok {
		return curated.Errorf("testcard: unrecognised test card: %s", name)
	}

	w.Clear()
	c(w, frame)

	return nil
}

// List returns the available card names, sorted.
func List() []string {
	l := make([]string, 0, len(cards))
	for name := range cards {
		l = append(l, name)
	}
	sort.Strings(l)
	return l
}
