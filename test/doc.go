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

// Package test contains helper functions to remove common boilerplate from
// package tests.
//
// Functions are in either the Expect or the Demand group. The two groups test
// for the same conditions. The difference is the severity of the response to
// a failed test: an Expect function registers a test error and allows the
// test to carry on. A Demand function is a test fatality.
//
// Demand functions are useful when the tested value is a precondition of
// everything that follows. For example, demanding that two slices are the
// same length before iterating over them in unison.
//
// The success and failure functions interpret their argument according to
// type: a bool is success if true; an error is success if nil. The nil type
// itself is treated as success, which follows from how the error convention
// treats nil. Unsupported types are a test fatality, there being no sensible
// way of interpreting them.
//
// All functions accept optional trailing tags. Tags are printed alongside a
// failed test and are useful for identifying an iteration of a table driven
// test.
package test
