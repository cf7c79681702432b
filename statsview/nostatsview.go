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

//go:build !statsview

package statsview

import (
	"io"
)

// Address of the statsview web server. Meaningless in builds without the
// statsview build constraint.
const Address = ""

// Launch does nothing in builds without the statsview build constraint,
// except explain itself.
func Launch(output io.Writer) {
	output.Write([]byte("no statsview in this build (rebuild with the 'statsview' build tag)\n"))
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
