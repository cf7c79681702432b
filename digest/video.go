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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/television"
)

// Video is an implementation of the television.PixelRenderer interface with
// an embedded television for convenience. It generates a SHA-1 value of the
// field every field. It does not display the image anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	*television.Television
	digest   [sha1.Size]byte
	pixels   []byte
	fieldNum int
}

// NewVideo initialises a new instance of Video. For convenience, the
// television argument can be nil, in which case a new television will be
// created.
func NewVideo(tv *television.Television) (*Video, error) {
	if tv == nil {
		var err error
		tv, err = television.NewTelevision("NTSC40x24")
		if err != nil {
			return nil, curated.Errorf("digest: %v", err)
		}
	}

	dig := &Video{Television: tv}

	// the pixel array contains enough room for every sample of a field plus
	// the previous field's digest value at the head
	spec := dig.GetSpec()
	l := len(dig.digest)
	l += spec.SamplesPerRow * (spec.ScanlinesPerField + 1)
	dig.pixels = make([]byte, l)

	// register ourselves as a television.PixelRenderer
	dig.AddPixelRenderer(dig)

	return dig, nil
}

// Hash implements the digest.Digest interface.
func (dig Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// NewField implements the television.PixelRenderer interface.
func (dig *Video) NewField(info television.FieldInfo) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the pixel data
	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf("digest: video: error while chaining fingerprints")
	}
	dig.digest = sha1.Sum(dig.pixels)
	dig.fieldNum = info.FieldNum
	return nil
}

// NewScanline implements the television.PixelRenderer interface.
func (dig *Video) NewScanline(scanline int) error {
	return nil
}

// SetPixel implements the television.PixelRenderer interface.
func (dig *Video) SetPixel(x int, y int, luma uint8, blanked bool) error {
	spec := dig.GetSpec()

	// samples arriving while horizontal sync is absent can fall outside the
	// line. they are not part of the image
	if x < 0 || x >= spec.SamplesPerRow || y < 0 || y > spec.ScanlinesPerField {
		return nil
	}

	// preserve the first few bytes for the chained fingerprint. the luma
	// value is recorded whatever the blanked argument says
	i := len(dig.digest)
	i += y * spec.SamplesPerRow
	i += x
	dig.pixels[i] = luma

	return nil
}

// EndRendering implements the television.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
