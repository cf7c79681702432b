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

package curated_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/test"
)

const testPattern = "test: %v"
const otherPattern = "other: %d"

func TestMatching(t *testing.T) {
	e := curated.Errorf(testPattern, 10)

	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, otherPattern))

	// uncurated errors match nothing
	f := errors.New("uncurated")
	test.ExpectFailure(t, curated.IsAny(f))
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectFailure(t, curated.Has(f, testPattern))

	// nil never matches
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.Is(nil, testPattern))
	test.ExpectFailure(t, curated.Has(nil, testPattern))
}

func TestChaining(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(otherPattern, 20)
	g := curated.Errorf("wrapping: %v: %v", f, e)

	// Is() only matches the head of the chain
	test.ExpectFailure(t, curated.Is(g, testPattern))
	test.ExpectFailure(t, curated.Is(g, otherPattern))

	// Has() matches anywhere in the chain. including the head
	test.ExpectSuccess(t, curated.Has(g, "wrapping: %v: %v"))
	test.ExpectSuccess(t, curated.Has(g, testPattern))
	test.ExpectSuccess(t, curated.Has(g, otherPattern))
}

func TestDeduplication(t *testing.T) {
	// adjacent duplicate parts are removed when the error message is printed
	e := curated.Errorf("error: one")
	f := curated.Errorf("error: %v", e)
	test.ExpectEquality(t, f.Error(), "error: one")

	// non-adjacent parts are left alone
	g := curated.Errorf("another: %v", f)
	test.ExpectEquality(t, g.Error(), "another: error: one")
}

func TestUnwrap(t *testing.T) {
	e := fmt.Errorf("uncurated")
	f := curated.Errorf("curated: %v", e)

	test.ExpectSuccess(t, errors.Unwrap(f) == e)

	// no error in the values list means nothing to unwrap
	g := curated.Errorf("curated: %d", 100)
	test.ExpectSuccess(t, errors.Unwrap(g) == nil)
}
