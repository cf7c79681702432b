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
	"github.com/beamloop/compositevideo/television/signal"
)

// the length of the buffer isn't really important. that said, it needs to be
// at least sha1.Size bytes in length
const waveformBufferLength = 1024 + sha1.Size

// to allow us to create digests of waveforms longer than
// waveformBufferLength, we stuff the previous digest value into the first
// part of the buffer and make sure we include it when we create the next
// digest value
const waveformBufferStart = sha1.Size

// Waveform is an implementation of the television.WaveformRecorder interface.
// It generates a SHA-1 value of the raw sample stream, without any decoding
// having taken place.
type Waveform struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewWaveform is the preferred method of initialisation for the Waveform
// type.
func NewWaveform() *Waveform {
	dig := &Waveform{}
	dig.buffer = make([]uint8, waveformBufferLength)
	dig.bufferCt = waveformBufferStart
	return dig
}

// Hash implements the digest.Digest interface.
func (dig Waveform) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Waveform) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// Record implements the television.WaveformRecorder interface. Samples are
// stored least significant byte first.
func (dig *Waveform) Record(s signal.Sample) error {
	dig.buffer[dig.bufferCt] = uint8(s & 0xff)
	dig.buffer[dig.bufferCt+1] = uint8(s >> 8)
	dig.bufferCt += 2

	if dig.bufferCt >= waveformBufferLength {
		return dig.flush()
	}

	return nil
}

// EndRecording implements the television.WaveformRecorder interface. Any
// samples still in the buffer are folded into the hash.
func (dig *Waveform) EndRecording() error {
	if dig.bufferCt > waveformBufferStart {
		return dig.flush()
	}
	return nil
}

func (dig *Waveform) flush() error {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])

	// chain fingerprints
	n := copy(dig.buffer, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf("digest: waveform: error while chaining fingerprints")
	}
	dig.bufferCt = waveformBufferStart

	return nil
}
