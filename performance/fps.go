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

package performance

import "github.com/beamloop/compositevideo/television"

// CalcFPS takes the number of fields and duration (in seconds) and
// returns the fields-per-second and the accuracy of that value as a
// percentage of the specification's field rate.
func CalcFPS(tv *television.Television, numFields int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFields) / duration
	spec := tv.GetSpec()
	accuracy = 100 * float64(numFields) / (duration * spec.FieldsPerSecond)
	return fps, accuracy
}
