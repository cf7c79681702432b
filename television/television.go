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

package television

import (
	"strings"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/logger"
	"github.com/beamloop/compositevideo/performance/limiter"
	"github.com/beamloop/compositevideo/television/coords"
	"github.com/beamloop/compositevideo/television/signal"
	"github.com/beamloop/compositevideo/television/specification"
)

// the number of consecutive well-shaped fields required before the television
// considers the signal stable.
const stableFields = 4

// pulse width decision points, in samples. a nominal horizontal sync pulse is
// 4 samples, an equalisation pulse 2 and a serration pulse 22.
const (
	maxEqualisationWidth = 2
	maxHSyncWidth        = 6
	minSerrationWidth    = 13
)

// Television decodes a composite sample stream into fields, scanlines and
// pixels. The zero value is not usable; use NewTelevision().
type Television struct {
	spec specification.Spec

	// the longest stretch of samples we expect to see without a horizontal
	// sync pulse. the vertical interval legitimately runs to ten lines
	// between pulses; anything much longer means the signal has gone adrift
	maxLineSamples int

	// sync separation. a sample at or below syncThreshold is part of a sync
	// pulse. syncStart is the line position at which the current pulse
	// began; syncCount the number of samples it has run for
	syncThreshold signal.Sample
	syncStart     int
	syncCount     int

	// position of the beam. lineSample is measured from the most recent
	// horizontal sync pulse and can exceed the line length during the
	// vertical interval
	fieldNum   int
	scanline   int
	lineSample int

	// parity of the field currently being accumulated, recorded when its
	// serration train arrived
	currentOdd bool

	// true while inside a serration train. used to distinguish the first
	// serration pulse, which marks the field boundary, from the rest
	inVSync     bool
	serrationCt int

	// most recently concluded field
	info FieldInfo

	// picture extent of the field being accumulated
	thisVisibleTop    int
	thisVisibleBottom int

	// stability measurement. stableCt is the number of consecutive
	// conclusions with consistent geometry
	stableCt int
	stable   bool

	// consumers
	renderers []PixelRenderer
	triggers  []FieldTrigger
	recorders []WaveformRecorder

	// real-time pacing. when fieldCap is true the television stalls at
	// every field boundary so that fields pass at the specification rate
	lmtr     *limiter.FieldLimiter
	fieldCap bool

	// whether log entries from this television are allowed. switched off
	// for throwaway instances, during performance measurement for example
	allowLogging bool
}

// NewTelevision is the preferred method of initialisation for the Television
// type.
func NewTelevision(spec string) (*Television, error) {
	tv := &Television{
		allowLogging: true,
	}

	switch strings.ToUpper(spec) {
	case "NTSC40X24", "NTSC":
		tv.spec = specification.SpecNTSC40x24
	default:
		return nil, curated.Errorf("television: unsupported specification (%s)", spec)
	}

	tv.syncThreshold = (specification.LevelSync + specification.LevelBlank) / 2
	tv.maxLineSamples = 11 * tv.spec.SamplesPerRow

	var err error
	tv.lmtr, err = limiter.NewFieldLimiter(tv.spec.FieldsPerSecond)
	if err != nil {
		return nil, curated.Errorf("television: %v", err)
	}

	tv.Reset()

	return tv, nil
}

func (tv *Television) String() string {
	return tv.GetCoords().String()
}

// AllowLogging implements the logger.Permission interface.
func (tv *Television) AllowLogging() bool {
	return tv.allowLogging
}

// SetLogging switches log entries from this television on or off. Useful for
// throwaway instances that would otherwise flood the central log.
func (tv *Television) SetLogging(allow bool) {
	tv.allowLogging = allow
}

// AddPixelRenderer registers an (additional) implementation of PixelRenderer.
func (tv *Television) AddPixelRenderer(r PixelRenderer) {
	tv.renderers = append(tv.renderers, r)
}

// AddFieldTrigger registers an (additional) implementation of FieldTrigger.
func (tv *Television) AddFieldTrigger(f FieldTrigger) {
	tv.triggers = append(tv.triggers, f)
}

// AddWaveformRecorder registers an (additional) implementation of
// WaveformRecorder.
func (tv *Television) AddWaveformRecorder(w WaveformRecorder) {
	tv.recorders = append(tv.recorders, w)
}

// Reset the television to an initial state. Registered renderers, triggers
// and recorders are kept.
func (tv *Television) Reset() {
	tv.syncStart = 0
	tv.syncCount = 0
	tv.fieldNum = 0
	tv.scanline = 0
	tv.lineSample = 0
	tv.currentOdd = false
	tv.inVSync = false
	tv.serrationCt = 0
	tv.info = NewFieldInfo(tv.spec)
	tv.thisVisibleTop = tv.spec.ScanlinesPerField
	tv.thisVisibleBottom = 0
	tv.stableCt = 0
	tv.stable = false
}

// End cleans up the television's consumers. The television should be
// considered unusable after End() has been called.
func (tv *Television) End() error {
	var err error

	// call EndRendering and EndRecording on all attached consumers
	for _, r := range tv.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = e
		}
	}
	for _, w := range tv.recorders {
		if e := w.EndRecording(); e != nil && err == nil {
			err = e
		}
	}

	return err
}

// SetFieldCap stalls the television at every field boundary so that fields
// pass at the specification rate. The capped television paces the entire
// signal generator; without the cap everything runs as fast as it can.
func (tv *Television) SetFieldCap(set bool) {
	tv.fieldCap = set
}

// GetCoords returns an instance of coords.Coords for the current moment.
func (tv *Television) GetCoords() coords.Coords {
	return coords.Coords{
		Field:    tv.fieldNum,
		Scanline: tv.scanline,
		Sample:   tv.lineSample,
	}
}

// GetSpec returns the specification the television is decoding against.
func (tv *Television) GetSpec() specification.Spec {
	return tv.spec
}

// GetFieldInfo returns a copy of the FieldInfo for the most recently
// concluded field.
func (tv *Television) GetFieldInfo() FieldInfo {
	return tv.info
}

// IsStable returns true if the field geometry has been consistent for long
// enough. See the Stable field of FieldInfo.
func (tv *Television) IsStable() bool {
	return tv.stable
}

// Signal updates the television with a single sample of the composite
// waveform. This is the principal method of communication between the DAC
// and the television.
func (tv *Television) Signal(s signal.Sample) error {
	// waveform recorders see every sample before any decoding
	for _, w := range tv.recorders {
		if err := w.Record(s); err != nil {
			return err
		}
	}

	if s <= tv.syncThreshold {
		if tv.syncCount == 0 {
			tv.syncStart = tv.lineSample
		}
		tv.syncCount++
	} else if tv.syncCount > 0 {
		// sync pulse has just ended; classify it by its width
		if err := tv.pulse(tv.syncStart, tv.syncCount); err != nil {
			return err
		}
		tv.syncCount = 0
	}

	// deliver the sample to the renderers as a pixel, whether or not it is
	// in the picture area
	luma := specification.SampleToBrightness(s)
	blanked := s < specification.LevelBlack
	for _, r := range tv.renderers {
		if err := r.SetPixel(tv.lineSample, tv.scanline, luma, blanked); err != nil {
			return err
		}
	}

	// push the picture extent outwards
	if !blanked {
		if tv.scanline < tv.thisVisibleTop {
			tv.thisVisibleTop = tv.scanline
		}
		if tv.scanline > tv.thisVisibleBottom {
			tv.thisVisibleBottom = tv.scanline
		}
	}

	tv.lineSample++
	if tv.lineSample >= tv.maxLineSamples {
		// flywheel. keep the position counters moving in the hope that the
		// signal recovers
		logger.Log(tv, "television", "no horizontal sync; waveform adrift")
		tv.lineSample = 0
	}

	return nil
}

// pulse handles a classified sync pulse. start is the line position at which
// the pulse began and width the number of samples it ran for.
func (tv *Television) pulse(start int, width int) error {
	switch {
	case width <= maxEqualisationWidth:
		// equalisation pulses keep a real television's flywheel happy
		// during the vertical interval. they carry no line or field
		// information of their own but they do mark the end of a
		// serration train
		tv.endVSync()
		return nil

	case width <= maxHSyncWidth:
		tv.endVSync()
		return tv.newScanline(start)

	case width >= minSerrationWidth:
		if tv.inVSync {
			tv.serrationCt++
			return nil
		}

		// the first serration pulse of the train marks the field
		// boundary. parity falls out of the half-line phase: an in-phase
		// train follows an odd field's whole number of lines
		tv.inVSync = true
		tv.serrationCt = 1
		return tv.newField(start%tv.spec.SamplesPerRow == 0)
	}

	// widths between the horizontal sync and serration classes shouldn't
	// happen. treat as horizontal sync, which is the least disruptive
	// reading
	logger.Logf(tv, "television", "unclassifiable sync pulse (width %d)", width)
	tv.endVSync()
	return tv.newScanline(start)
}

// endVSync marks the end of a serration train.
func (tv *Television) endVSync() {
	if !tv.inVSync {
		return
	}
	tv.inVSync = false

	if tv.serrationCt != 6 {
		logger.Logf(tv, "television", "vertical sync with %d serration pulses", tv.serrationCt)
	}
	tv.serrationCt = 0
}

// newScanline processes the start of a new scanline. The horizontal sync
// pulse that triggered it belongs to the new line.
func (tv *Television) newScanline(pulseStart int) error {
	tv.lineSample -= pulseStart
	tv.scanline++

	for _, r := range tv.renderers {
		if err := r.NewScanline(tv.scanline); err != nil {
			return err
		}
	}

	return nil
}

// newField concludes the field currently being accumulated and begins the
// next one. isOdd is the parity of the field that is starting.
func (tv *Television) newField(isOdd bool) error {
	// conclude the accumulating field
	prevOdd := tv.info.IsOdd
	prevScanlines := tv.info.TotalScanlines

	tv.info.FieldNum = tv.fieldNum
	tv.info.IsOdd = tv.currentOdd
	tv.info.TotalScanlines = tv.scanline
	if tv.thisVisibleTop <= tv.thisVisibleBottom {
		tv.info.VisibleTop = tv.thisVisibleTop
		tv.info.VisibleBottom = tv.thisVisibleBottom
	} else {
		// a field with no picture reports an empty crop
		tv.info.VisibleTop = 0
		tv.info.VisibleBottom = 0
	}

	// geometry is consistent when parity alternates and the scanline count
	// holds steady
	if tv.fieldNum > 0 {
		if tv.currentOdd == prevOdd {
			logger.Logf(tv, "television", "field parity fault (consecutive %s fields)", fieldParity(tv.currentOdd))
			tv.stableCt = 0
		} else if tv.info.TotalScanlines != prevScanlines {
			tv.stableCt = 0
		} else {
			tv.stableCt++
		}
	}
	if !tv.stable && tv.stableCt >= stableFields {
		tv.stable = true
		logger.Log(tv, "television", "image is stable")
	}
	tv.info.Stable = tv.stable

	// pace the generator. the television stalling here stalls the whole
	// signal path
	if tv.fieldCap {
		tv.lmtr.Wait()
	}

	for _, r := range tv.renderers {
		if err := r.NewField(tv.info); err != nil {
			return err
		}
	}
	for _, f := range tv.triggers {
		if err := f.NewField(tv.info); err != nil {
			return err
		}
	}

	// begin the next field
	tv.fieldNum++
	tv.currentOdd = isOdd
	tv.scanline = 0
	tv.thisVisibleTop = tv.spec.ScanlinesPerField
	tv.thisVisibleBottom = 0

	return nil
}

func fieldParity(isOdd bool) string {
	if isOdd {
		return "odd"
	}
	return "even"
}
