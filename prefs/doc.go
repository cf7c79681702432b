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

// Package prefs facilitates the storage of preference values on disk.
//
// Preference values are instances of the Bool, String, Int, Float64 or
// Generic types. They are useable in their own right but only become
// persistent once they have been registered with a Disk instance:
//
//	var scale prefs.Float64
//
//	dsk, _ := prefs.NewDisk(path)
//	dsk.Add("sdltv.scale", &scale)
//	dsk.Load(false)
//
// The Save() and Load() functions transfer all registered values to and from
// the disk file. Several Disk instances can point to the same file. Saving
// through one instance will not clobber entries owned by another, the file
// contents are merged.
//
// Values are safe to access concurrently. The hook mechanism (see the
// SetHookPre() and SetHookPost() functions) allows a package to react to a
// preference changing, rescaling a window for example.
package prefs
