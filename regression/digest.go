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
	"strconv"
	"strings"
	"time"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/database"
	"github.com/beamloop/compositevideo/digest"
	"github.com/beamloop/compositevideo/hardware"
	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/testcard"
)

const digestEntryID = "digest"

const (
	digestFieldMode int = iota
	digestFieldCard
	digestFieldSpec
	digestFieldNumFields
	digestFieldVideo
	digestFieldWaveform
	digestFieldNotes
	numDigestFields
)

// DigestRegression is the simplest regression type. It runs the board
// headlessly for NumFields fields, drawing the named test card, and compares
// a hash of the output against the hash stored in the database.
type DigestRegression struct {
	Mode           DigestMode
	Card           string
	Spec           string
	NumFields      int
	VideoDigest    string
	WaveformDigest string
	Notes          string
}

func deserialiseDigestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &DigestRegression{}

	// basic sanity check
	if len(fields) > numDigestFields {
		return nil, curated.Errorf("digest: too many fields")
	}
	if len(fields) < numDigestFields {
		return nil, curated.Errorf("digest: too few fields")
	}

	var err error

	reg.Mode, err = ParseDigestMode(fields[digestFieldMode])
	if err != nil {
		return nil, curated.Errorf("digest: %v", err)
	}

	reg.Card = fields[digestFieldCard]
	reg.Spec = fields[digestFieldSpec]

	reg.NumFields, err = strconv.Atoi(fields[digestFieldNumFields])
	if err != nil {
		return nil, curated.Errorf("digest: invalid number of fields [%s]", fields[digestFieldNumFields])
	}

	reg.VideoDigest = fields[digestFieldVideo]
	reg.WaveformDigest = fields[digestFieldWaveform]
	reg.Notes = fields[digestFieldNotes]

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg DigestRegression) ID() string {
	return digestEntryID
}

// String implements the database.Entry interface.
func (reg DigestRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s/%s] %s [%s] fields=%d", reg.ID(), reg.Mode, reg.Card, reg.Spec, reg.NumFields))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *DigestRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
			reg.Mode.String(),
			reg.Card,
			reg.Spec,
			strconv.Itoa(reg.NumFields),
			reg.VideoDigest,
			reg.WaveformDigest,
			reg.Notes,
		},
		nil
}

// CleanUp implements the database.Entry interface. A digest entry keeps
// nothing on disk beside its database record so there is nothing to do.
func (reg DigestRegression) CleanUp() error {
	return nil
}

// regress implements the Regressor interface.
func (reg *DigestRegression) regress(newRegression bool, output io.Writer, msg string) (bool, error) {
	output.Write([]byte(msg))

	tv, err := television.NewTelevision(reg.Spec)
	if err != nil {
		return false, curated.Errorf("digest: %v", err)
	}
	defer tv.End()
	tv.SetLogging(false)
	tv.SetFieldCap(false)

	var vdig *digest.Video
	if reg.Mode == DigestVideoOnly || reg.Mode == DigestBoth {
		vdig, err = digest.NewVideo(tv)
		if err != nil {
			return false, curated.Errorf("digest: %v", err)
		}
	}

	var wdig *digest.Waveform
	if reg.Mode == DigestWaveformOnly || reg.Mode == DigestBoth {
		wdig = digest.NewWaveform()
		tv.AddWaveformRecorder(wdig)
	}

	brd, err := hardware.NewBoard(tv)
	if err != nil {
		return false, curated.Errorf("digest: %v", err)
	}
	brd.Video.Begin()

	if err := testcard.Draw(reg.Card, brd.Video, 0); err != nil {
		return false, curated.Errorf("digest: %v", err)
	}

	// redraw the card whenever the field count advances, so an animated card
	// animates here the same way it does on screen
	lastField := tv.GetCoords().Field

	// display ticker for the progress meter
	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	err = brd.RunForFieldCount(reg.NumFields, func(field int) (bool, error) {
		if field != lastField {
			lastField = field
			if err := testcard.Draw(reg.Card, brd.Video, field); err != nil {
				return false, err
			}
		}

		select {
		case <-tck.C:
			output.Write([]byte(fmt.Sprintf("\r%s [%d/%d]", msg, field, reg.NumFields)))
		default:
		}

		return true, nil
	})
	if err != nil {
		return false, curated.Errorf("digest: %v", err)
	}

	if newRegression {
		if vdig != nil {
			reg.VideoDigest = vdig.Hash()
		}
		if wdig != nil {
			reg.WaveformDigest = wdig.Hash()
		}
		return true, nil
	}

	// compare hashes from this run against the stored digests
	ok := true
	if vdig != nil && vdig.Hash() != reg.VideoDigest {
		ok = false
	}
	if wdig != nil && wdig.Hash() != reg.WaveformDigest {
		ok = false
	}

	return ok, nil
}
