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

// Package paths prepares paths to CompositeVideo resources. It should be
// used whenever a file is to be written to, or read from, the project's
// configuration area.
//
// The ResourcePath() function joins the supplied sub-path and filename to
// the appropriate base directory, creating intermediate directories as
// required. For example, the path to the preferences file is found with:
//
//	p, err := paths.ResourcePath("", "preferences")
//
// Which base directory is used depends on how the project was built. For
// development builds the base is the ".compositevideo" directory in the
// current working directory. For builds made with the "release" tag the base
// is inside the user's configuration directory, as reported by
// os.UserConfigDir(). On a typical Linux system that means:
//
//	/home/user/.config/compositevideo/preferences
package paths
