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

package prefs

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/beamloop/compositevideo/curated"
)

// WarningBoilerPlate is the first line of every prefs file on disk.
var WarningBoilerPlate = "*** CompositeVideo preferences file. do not edit by hand ***"

// DefaultPrefsFile is the name of the preferences file shared by the whole
// application. Pass the name to paths.ResourcePath() to get the full path.
const DefaultPrefsFile = "compositevideo.prefs"

// the string used to separate keys from values in the prefs file.
const keySep = " :: "

// Disk represents the preference values filed under a single path on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the path to the preferences file. The file does not need
// to exist at this point.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add the pref value to the list of values registered with this Disk
// instance under the given key.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)

	if key == "" || strings.Contains(key, keySep) || strings.ContainsAny(key, "\n") {
		return curated.Errorf("prefs: not a valid key (%s)", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: key already registered (%s)", key)
	}

	dsk.entries[key] = p

	return nil
}

// Save all registered values to the disk file. Entries in the file that are
// not registered with this Disk instance are preserved.
func (dsk *Disk) Save() error {
	// load entries already on disk. another Disk instance may have saved
	// them and we don't want to clobber those
	onDisk, err := dsk.readFile()
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	for k, p := range dsk.entries {
		onDisk[k] = p.String()
	}

	// sorted keys mean the file is stable between saves, making it friendly
	// to version control and to the eye
	keys := make([]string, 0, len(onDisk))
	for k := range onDisk {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(k)
		s.WriteString(keySep)
		s.WriteString(onDisk[k])
		s.WriteString("\n")
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0600)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load all registered values from the disk file. Entries in the file that
// are not registered with this Disk instance are ignored, as are defunct
// entries.
//
// If the file does not exist and saveOnCreate is true then the file is
// created with the current values. A missing file is not otherwise an error,
// it just means the program has never run before.
func (dsk *Disk) Load(saveOnCreate bool) error {
	if _, err := os.Stat(dsk.path); err != nil {
		if saveOnCreate {
			return dsk.Save()
		}
		return nil
	}

	onDisk, err := dsk.readFile()
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	for k, v := range onDisk {
		if isDefunct(k) {
			continue
		}
		if p, ok := dsk.entries[k]; ok {
			err = p.Set(v)
			if err != nil {
				return curated.Errorf("prefs: %v", err)
			}
		}
	}

	return nil
}

// HasEntry returns true if the disk file contains a value for the key. The
// key does not need to be registered with this Disk instance.
func (dsk *Disk) HasEntry(key string) (bool, error) {
	onDisk, err := dsk.readFile()
	if err != nil {
		return false, curated.Errorf("prefs: %v", err)
	}
	_, ok := onDisk[key]
	return ok, nil
}

// readFile returns the raw key/value pairs in the disk file. A missing file
// results in an empty map, not an error.
func (dsk *Disk) readFile() (map[string]string, error) {
	onDisk := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return onDisk, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := scanner.Text()

		// ignore boilerplate and any other line that doesn't look like an
		// entry
		kv := strings.SplitN(s, keySep, 2)
		if len(kv) != 2 {
			continue
		}

		onDisk[kv[0]] = kv[1]
	}

	return onDisk, scanner.Err()
}
