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

package database_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/database"
	"github.com/beamloop/compositevideo/test"
)

// markEntry is a minimal database entry used by the tests. one field and a
// record of whether CleanUp() has been called.
type markEntry struct {
	mark    string
	cleaned bool
}

func deserialiseMarkEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != 1 {
		return nil, curated.Errorf("mark: wrong number of fields")
	}
	return &markEntry{mark: fields[0]}, nil
}

func (ent markEntry) ID() string {
	return "mark"
}

func (ent markEntry) String() string {
	return ent.mark
}

func (ent markEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.mark}, nil
}

func (ent *markEntry) CleanUp() error {
	ent.cleaned = true
	return nil
}

func startTestSession(t *testing.T, path string, activity database.Activity) *database.Session {
	t.Helper()
	db, err := database.StartSession(path, activity, func(db *database.Session) error {
		return db.RegisterEntryType("mark", deserialiseMarkEntry)
	})
	test.DemandSuccess(t, err)
	return db
}

func TestMissingFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	// a missing database file is an empty database, not an error
	db := startTestSession(t, pth, database.ActivityReading)
	test.ExpectEquality(t, db.NumEntries(), 0)

	err := db.EndSession(false)
	test.ExpectSuccess(t, err)

	// no commit, so the file still does not exist
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)
}

func TestReadOnlyCommit(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db := startTestSession(t, pth, database.ActivityReading)
	err := db.EndSession(true)
	test.ExpectFailure(t, err)
}

func TestRoundTrip(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db := startTestSession(t, pth, database.ActivityCreating)
	err := db.Add(&markEntry{mark: "foo"})
	test.ExpectSuccess(t, err)
	err = db.Add(&markEntry{mark: "bar"})
	test.ExpectSuccess(t, err)
	err = db.EndSession(true)
	test.DemandSuccess(t, err)

	db = startTestSession(t, pth, database.ActivityReading)
	test.ExpectEquality(t, db.NumEntries(), 2)

	// keys are allocated from zero
	keys := db.SortedKeyList()
	test.DemandEquality(t, len(keys), 2)
	test.ExpectEquality(t, keys[0], 0)
	test.ExpectEquality(t, keys[1], 1)

	// selecting a single key doubles as a lookup
	ent, err := db.SelectKeys(nil, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "foo")

	// a key that has never been allocated
	_, err = db.SelectKeys(nil, 100)
	test.ExpectFailure(t, err)

	// all entries are visited in key order
	visited := []string{}
	_, err = db.SelectAll(func(ent database.Entry) error {
		visited = append(visited, ent.String())
		return nil
	})
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(visited), 2)
	test.ExpectEquality(t, visited[0], "foo")
	test.ExpectEquality(t, visited[1], "bar")

	b := &strings.Builder{}
	err = db.List(b)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(b.String(), "000 foo"))
	test.ExpectSuccess(t, strings.Contains(b.String(), "001 bar"))
	test.ExpectSuccess(t, strings.Contains(b.String(), "Total: 2"))

	err = db.EndSession(false)
	test.ExpectSuccess(t, err)
}

func TestDelete(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db := startTestSession(t, pth, database.ActivityCreating)
	err := db.Add(&markEntry{mark: "foo"})
	test.ExpectSuccess(t, err)
	err = db.Add(&markEntry{mark: "bar"})
	test.ExpectSuccess(t, err)
	err = db.EndSession(true)
	test.DemandSuccess(t, err)

	db = startTestSession(t, pth, database.ActivityModifying)

	// deletion calls CleanUp() on the stored entry
	ent, err := db.SelectKeys(nil, 1)
	test.DemandSuccess(t, err)
	mark := ent.(*markEntry)

	err = db.Delete(1)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, mark.cleaned)
	test.ExpectEquality(t, db.NumEntries(), 1)

	// deleting the same key again fails
	err = db.Delete(1)
	test.ExpectFailure(t, err)

	err = db.EndSession(true)
	test.DemandSuccess(t, err)

	// the deletion has been committed
	db = startTestSession(t, pth, database.ActivityReading)
	test.ExpectEquality(t, db.NumEntries(), 1)
	err = db.EndSession(false)
	test.ExpectSuccess(t, err)
}

func TestSeparatorGuard(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db := startTestSession(t, pth, database.ActivityCreating)

	// a field containing the field separator would corrupt the database
	// file on the next read
	err := db.Add(&markEntry{mark: "contains, a comma"})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, db.NumEntries(), 0)

	err = db.EndSession(false)
	test.ExpectSuccess(t, err)
}

func TestMalformedFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	err := os.WriteFile(pth, []byte("000,unknown,x\n"), 0600)
	test.DemandSuccess(t, err)

	// the "unknown" entry type has not been registered
	_, err = database.StartSession(pth, database.ActivityReading, func(db *database.Session) error {
		return db.RegisterEntryType("mark", deserialiseMarkEntry)
	})
	test.ExpectFailure(t, err)

	// a key that does not parse as an integer
	err = os.WriteFile(pth, []byte("abc,mark,x\n"), 0600)
	test.DemandSuccess(t, err)

	_, err = database.StartSession(pth, database.ActivityReading, func(db *database.Session) error {
		return db.RegisterEntryType("mark", deserialiseMarkEntry)
	})
	test.ExpectFailure(t, err)
}
