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

// Package coords represents and can work with television coordinates.
//
// Coordinates represent the state of the signal from the point of view of
// the television. A good way to think about them is as a measurement of
// time. They define *when* something happened (this sample arrived, this
// field started, etc.) relative to the start of the stream.
package coords

import (
	"fmt"
)

// FieldIsUndefined is used to indicate that the Field field of the Coords
// struct is to be ignored.
const FieldIsUndefined = ^(0)

// Coords represents the state of the television at a moment in time. It can
// be used when all three values need to be stored or passed around.
//
// Scanline counts from the start of the field's vertical sync. Sample counts
// from the most recent horizontal sync pulse.
type Coords struct {
	Field    int
	Scanline int
	Sample   int
}

func (c Coords) String() string {
	if c.Field == FieldIsUndefined {
		return fmt.Sprintf("Scanline: %03d  Sample: %02d", c.Scanline, c.Sample)
	}
	return fmt.Sprintf("Field: %d  Scanline: %03d  Sample: %02d", c.Field, c.Scanline, c.Sample)
}

// Equal compares two instances of Coords and returns true if both are equal.
//
// If the Field field is undefined for either argument then the Field field
// is ignored for the test.
func Equal(A, B Coords) bool {
	if A.Field == FieldIsUndefined || B.Field == FieldIsUndefined {
		return A.Scanline == B.Scanline && A.Sample == B.Sample
	}
	return A.Field == B.Field && A.Scanline == B.Scanline && A.Sample == B.Sample
}

// GreaterThanOrEqual compares two instances of Coords and returns true if A
// is greater than or equal to B.
//
// If the Field field is undefined for either argument then the Field field
// is ignored for the test.
func GreaterThanOrEqual(A, B Coords) bool {
	if A.Field == FieldIsUndefined || B.Field == FieldIsUndefined {
		return A.Scanline > B.Scanline || (A.Scanline == B.Scanline && A.Sample >= B.Sample)
	}
	return A.Field > B.Field || (A.Field == B.Field && A.Scanline > B.Scanline) || (A.Field == B.Field && A.Scanline == B.Scanline && A.Sample >= B.Sample)
}

// GreaterThan compares two instances of Coords and returns true if A is
// greater than B.
//
// If the Field field is undefined for either argument then the Field field
// is ignored for the test.
func GreaterThan(A, B Coords) bool {
	if A.Field == FieldIsUndefined || B.Field == FieldIsUndefined {
		return A.Scanline > B.Scanline || (A.Scanline == B.Scanline && A.Sample > B.Sample)
	}
	return A.Field > B.Field || (A.Field == B.Field && A.Scanline > B.Scanline) || (A.Field == B.Field && A.Scanline == B.Scanline && A.Sample > B.Sample)
}

// Diff returns the difference between the A and B instances. The
// scanlinesPerField and samplesPerLine values describe the geometry of the
// signal being measured.
//
// If the Field field is undefined for either Coords argument then the Field
// field in the result of the function is also undefined.
func Diff(A, B Coords, scanlinesPerField int, samplesPerLine int) Coords {
	D := Coords{
		Field:    A.Field - B.Field,
		Scanline: A.Scanline - B.Scanline,
		Sample:   A.Sample - B.Sample,
	}

	if D.Sample < 0 {
		D.Scanline--
		D.Sample += samplesPerLine
	}

	if D.Scanline < 0 {
		D.Field--
		D.Scanline += scanlinesPerField
	}

	if D.Field < 0 {
		D.Field = 0
		D.Scanline = 0
		D.Sample = 0
	}

	// if the Field field in either A or B is undefined then the diff Field
	// field is undefined also
	if A.Field == FieldIsUndefined || B.Field == FieldIsUndefined {
		D.Field = FieldIsUndefined
	}

	return D
}

// Sum returns the number of samples represented by the television
// coordinates.
//
// If the Field field is undefined it does not contribute to the sum.
func Sum(A Coords, scanlinesPerField int, samplesPerLine int) int {
	if A.Field == FieldIsUndefined {
		return (A.Scanline * samplesPerLine) + A.Sample
	}

	numPerField := scanlinesPerField * samplesPerLine
	return (A.Field * numPerField) + (A.Scanline * samplesPerLine) + A.Sample
}
