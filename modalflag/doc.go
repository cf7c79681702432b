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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient way of handling program modes (and
// sub-modes) with a different set of flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package.
// Whereas with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first call NewArgs() with the array
// of arguments and then Parse() with no arguments (error handling removed
// for clarity):
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once parsed, non-flag arguments can be retrieved with the RemainingArgs()
// or GetArg() functions.
//
// Flags are added with the Add...() group of functions, each one of which
// returns a pointer to a variable of the specified type. The pointed-to
// values are valid once Parse() has returned:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
//	if *verbose {
//		...
//	}
//
// The point of the package however, is the handling of program modes. A mode
// is a special command line argument that puts the program into a different
// mode of operation, in the manner of the go command's build, test, doc,
// etc. modes. Each mode can have its own flags and its own list of further
// sub-modes.
//
// Modes are declared with the AddSubModes() function before parsing. After a
// successful parse, the Mode() function reveals which mode the user
// selected, which is also the cue for the next layer of flag definitions:
//
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "WAV", "CHAIN")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		scale := md.AddFloat64("scale", 2.0, "window scaling")
//		_, _ = md.Parse()
//		...
//	}
//
// The first mode in the AddSubModes() list is the default, selected when the
// user names no mode at all.
package modalflag
