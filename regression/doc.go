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

// Package regression facilitates the regression testing of the signal
// generator. Tests are stored in a database (the database package) and can be
// rerun at any time to check that the generator still produces the output it
// produced when the test was added.
//
// A test names a test card, a specification and a number of fields. Running a
// test draws the card onto a freshly created board, runs the board for the
// given number of fields and digests the output (the digest package). The
// digest mode says what is hashed: the rendered pixels, the DAC waveform, or
// both. A test succeeds if the digests match the ones stored when the test
// was added.
//
// The four main functions provided by the package are RegressAdd,
// RegressDelete, RegressList and RegressRun. The Regressor interface is
// currently implemented by just the one type, DigestRegression, but the
// database will happily store other entry types alongside it.
//
// Tests run with the field cap disabled so a long test completes as quickly
// as the host allows. Because the board is stepped deterministically from
// sample zero, and because the noise test card keys its pattern on the frame
// number, every card in the testcard package produces stable digests.
package regression
