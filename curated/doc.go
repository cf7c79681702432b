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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and can be used wherever a
// plain error is expected.
//
// Curated errors are created with the Errorf() function. It works like the
// Errorf() function in the fmt package except that the formatting pattern is
// retained and can be tested for later. The pattern is what identifies the
// error:
//
//	e := curated.Errorf("dmac: no free channels")
//
//	if curated.Is(e, "dmac: no free channels") {
//		fmt.Println("true")
//	}
//
// The Has() function is the looser test. It answers whether the pattern
// occurs anywhere in the error chain rather than just at the head:
//
//	e := curated.Errorf("dmac: no free channels")
//	f := curated.Errorf("videoout: %v", e)
//
//	curated.Is(f, "dmac: no free channels")   // false
//	curated.Has(f, "dmac: no free channels")  // true
//
// The IsAny() function says whether the error was created by this package at
// all. An uncurated error is one that has arrived from outside the project,
// the os package say, and which probably hasn't been anticipated.
//
// Errors created by Errorf() normalise their message chain, removing
// duplicate adjacent parts. This means functions can wrap and return errors
// without worrying about ugly repeated messages reaching the user.
//
// For interoperability with the errors package in the standard library,
// curated errors implement the Unwrap() method. Wrapped errors can therefore
// be retrieved with errors.As() in the normal way.
package curated
