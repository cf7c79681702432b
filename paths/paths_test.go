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

package paths_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/beamloop/compositevideo/paths"
	"github.com/beamloop/compositevideo/test"
)

func TestResourcePath(t *testing.T) {
	// getBasePath() creates directories so run the test somewhere
	// disposable. restore the working directory on the way out
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	defer func() {
		_ = os.Chdir(wd)
	}()

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".compositevideo/foo/bar/baz")

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".compositevideo/foo/bar")

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".compositevideo/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".compositevideo")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("capture", "bars")
	match, err := regexp.MatchString("^capture_bars_[0-9]{8}_[0-9]{6}$", fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, match, fn)

	// surrounding whitespace is trimmed from the label and an empty label
	// drops the label segment entirely
	fn = paths.UniqueFilename("capture", " ")
	match, err = regexp.MatchString("^capture_[0-9]{8}_[0-9]{6}$", fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, match, fn)
}
