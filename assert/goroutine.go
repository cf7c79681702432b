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

// Package assert helps enforce runtime conditions that the type system
// cannot. Nothing in this package should be load bearing. It exists to catch
// programming errors, not to handle them.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID identifies the calling goroutine. The value is stable for
// the lifetime of the goroutine and distinct from every other goroutine
// running at the same time.
//
// The runtime deliberately makes this awkward so the identity is only ever
// used to detect misuse of an API with a same-goroutine requirement. Never
// use it to build anything.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]

	// the first line of a stack trace begins "goroutine N [status]:"
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]

	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
