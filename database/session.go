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

package database

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/beamloop/compositevideo/curated"
)

// Activity is the declared purpose of a database session.
type Activity int

// The activity gates committing, not opening. EndSession() will refuse to
// commit the changes of an ActivityReading session. ActivityCreating and
// ActivityModifying are equivalent beyond their documentary value.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session is an open database. Created with StartSession() and concluded
// with EndSession().
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession opens the database file at path. The init function is called
// before the file is read and is the opportunity to register the entry types
// the database may contain. A missing file is treated as an empty database;
// the file is only created by EndSession() when changes are committed.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, curated.Errorf("database: %v", err)
		}
	}

	buffer, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return db, nil
		}
		return nil, curated.Errorf("database: %v", err)
	}

	if err := db.readEntries(string(buffer)); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession concludes the session, writing any changes back to the database
// file if commit is true. A session should not be used after it has ended.
func (db *Session) EndSession(commit bool) (rerr error) {
	if !commit {
		return nil
	}

	if db.activity == ActivityReading {
		return curated.Errorf("database: cannot commit to a read only database")
	}

	f, err := os.Create(db.path)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("database: %v", err)
		}
	}()

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		record := recordHeader(key, ent.ID())
		if len(ser) > 0 {
			record += fieldSep + strings.Join(ser, fieldSep)
		}

		if _, err := f.WriteString(record + entrySep); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}

// readEntries clobbers the current entries map with the contents of the
// database file.
func (db *Session) readEntries(buffer string) error {
	db.entries = make(map[int]Entry)

	lines := strings.Split(buffer, entrySep)
	for i := range lines {
		line := strings.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: malformed entry at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: invalid key [%s] at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: duplicate key [%03d] at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: unrecognised entry type [%s] at line %d", fields[leaderFieldID], i+1)
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		db.entries[key] = ent
	}

	return nil
}
