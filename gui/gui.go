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

// Package gui is the surface shared by the monitor front-ends. A monitor
// shows the television image somewhere and collects user input from the
// same place.
//
// Monitors do not act on user input themselves. Input is returned from the
// Service() function as a slice of events and it is for the caller to decide
// what a key press means.
package gui

import (
	"github.com/beamloop/compositevideo/television"
)

// Event represents user interaction with a monitor.
type Event interface{}

// EventQuit is sent when the user closes the monitor window or presses one
// of the quit keys.
type EventQuit struct{}

// EventKeyboard is sent for other recognised key presses. Key is the name of
// the key in lower case. eg. "c", "r", "1".
type EventKeyboard struct {
	Key string
}

// Monitor is a television.PixelRenderer that also accepts user input.
type Monitor interface {
	television.PixelRenderer

	// Service processes any pending user input and returns the resulting
	// events. MUST be called from the main goroutine, at field rate or
	// thereabouts.
	Service() []Event
}
