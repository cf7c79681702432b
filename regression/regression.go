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

package regression

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/database"
	"github.com/beamloop/compositevideo/paths"
)

// the location of the regression database beneath the resource path.
const (
	regressionPath   = "regression"
	regressionDBFile = "db"
)

// CSI sequence to clear the current line. used to tidy up after the progress
// meter before the completion message is printed.
const clearLine = "\x1b[2K"

// Regressor is the generic entry type in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag indicates that the test is being added to the database and that
	// there are no stored digests to compare against; the test should store
	// its results instead.
	//
	// msg is the string to print while the regression is running. it has no
	// trailing newline.
	//
	// returns success (all digests match, or the new digests were stored) and
	// any error that stopped the test from completing.
	regress(newRegression bool, output io.Writer, msg string) (bool, error)
}

// when starting a database session we need to register the entry types we
// expect to find in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(digestEntryID, deserialiseDigestEntry); err != nil {
		return err
	}
	return nil
}

func startSession(activity database.Activity) (*database.Session, error) {
	pth, err := paths.ResourcePath(regressionPath, regressionDBFile)
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}
	return database.StartSession(pth, activity, initDBSession)
}

// RegressList displays every entry in the regression database.
func RegressList(output io.Writer) error {
	if output == nil {
		return curated.Errorf("regression: io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. the key is the
// database key as printed by RegressList. the confirmation reader is consulted
// before anything is removed.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) (rerr error) {
	if output == nil {
		return curated.Errorf("regression: io.Writer should not be nil (use a nopWriter)")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key [%s]", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.EndSession(true); err != nil && rerr == nil {
			rerr = err
		}
	}()

	// selecting a single key doubles as a lookup
	ent, err := db.SelectKeys(nil, v)
	if err != nil {
		return err
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent)))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return err
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from the regression database\n", key)))
	}

	return nil
}

// RegressAdd runs the regression and adds it to the database along with the
// digests the run produced.
func RegressAdd(output io.Writer, reg Regressor) (rerr error) {
	if output == nil {
		return curated.Errorf("regression: io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.EndSession(true); err != nil && rerr == nil {
			rerr = err
		}
	}()

	msg := fmt.Sprintf("adding: %s", reg)
	ok, err := reg.regress(true, output, msg)
	if err != nil {
		return err
	}
	if !ok {
		return curated.Errorf("regression: %v", "regression failed during add")
	}

	if err := db.Add(reg); err != nil {
		return err
	}

	output.Write([]byte(clearLine))
	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	return nil
}

// RegressRun runs the tests in the regression database. the filterKeys list
// specifies which entries to run. an empty list means every entry.
func RegressRun(output io.Writer, verbose bool, filterKeys []string) error {
	if output == nil {
		return curated.Errorf("regression: io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	// convert filter keys to ints and sort so tests run in database order
	keys := make([]int, 0, len(filterKeys))
	for k := range filterKeys {
		v, err := strconv.Atoi(filterKeys[k])
		if err != nil {
			return curated.Errorf("regression: invalid key [%s]", filterKeys[k])
		}
		keys = append(keys, v)
	}
	sort.Ints(keys)

	numSucceed := 0
	numFail := 0
	numError := 0

	defer func() {
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail", numSucceed, numFail)))
		if numError > 0 {
			output.Write([]byte(fmt.Sprintf(", %d error", numError)))
		}
		if n := db.NumEntries() - numSucceed - numFail - numError; len(keys) > 0 && n > 0 {
			output.Write([]byte(fmt.Sprintf(", %d skipped", n)))
		}
		output.Write([]byte("\n"))
	}()

	// nothing to run. returning now means the empty selection is not
	// mistaken for an error
	if db.NumEntries() == 0 {
		return nil
	}

	onSelect := func(ent database.Entry) error {
		// database entry should also satisfy the Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: database entry does not satisfy the Regressor interface")
		}

		msg := fmt.Sprintf("running: %s", reg)
		ok, err := reg.regress(false, output, msg)

		// once regress() has completed, clear the line ready for the
		// completion message
		output.Write([]byte(clearLine))

		if err != nil {
			numError++
			output.Write([]byte(fmt.Sprintf("\r* error: %s\n", reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("  %v\n", err)))
			}
		} else if !ok {
			numFail++
			output.Write([]byte(fmt.Sprintf("\rfailure: %s\n", reg)))
		} else {
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: %s\n", reg)))
		}

		return nil
	}

	if len(keys) == 0 {
		_, err = db.SelectAll(onSelect)
	} else {
		_, err = db.SelectKeys(onSelect, keys...)
	}

	return err
}
