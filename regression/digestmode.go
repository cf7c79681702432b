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
	"strings"

	"github.com/beamloop/compositevideo/curated"
)

// DigestMode specifies what portion of the generator's output is to be
// digested and compared.
type DigestMode int

// List of valid DigestMode values.
const (
	DigestUndefined DigestMode = iota
	DigestVideoOnly
	DigestWaveformOnly
	DigestBoth
)

func (mod DigestMode) String() string {
	switch mod {
	case DigestVideoOnly:
		return "video"
	case DigestWaveformOnly:
		return "waveform"
	case DigestBoth:
		return "both"
	}
	return "undefined"
}

// ParseDigestMode converts a string to a DigestMode.
func ParseDigestMode(mode string) (DigestMode, error) {
	switch strings.ToLower(mode) {
	case "video":
		return DigestVideoOnly, nil
	case "waveform":
		return DigestWaveformOnly, nil
	case "both":
		return DigestBoth, nil
	}
	return DigestUndefined, curated.Errorf("regression: invalid digest mode (%s)", mode)
}
