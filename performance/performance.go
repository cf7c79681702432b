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

import (
	"fmt"
	"io"
	"time"

	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/hardware"
	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/testcard"
)

// sentinal error returned by the Run() loop when the measurement period
// concludes.
const timedOut = "performance timed out"

// Check the performance of the emulation.
//
// The board runs for the specified duration with the named test card on
// display, and will create a cpu profile, memory profile, a trace (or a
// combination of those) as defined by the profile argument.
func Check(output io.Writer, profile Profile, spec string, card string, uncapped bool, duration string) error {
	var err error

	tv, err := television.NewTelevision(spec)
	if err != nil {
		return err
	}
	defer tv.End()

	// set field rate cap on television
	tv.SetFieldCap(!uncapped)

	// create board
	brd, err := hardware.NewBoard(tv)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	if err = brd.Video.Begin(); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// something to look at. the DMA engine replays the frame buffer
	// regardless but an empty screen makes for a dull profile
	if card != "" {
		if err = testcard.Draw(card, brd.Video, 0); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// get starting field number (should be 0)
	startField := tv.GetCoords().Field

	// run for specified period of time
	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals
		// true when the duration has expired. signals false to indicate
		// that performance measurement should start
		timerChan := make(chan bool)

		// force a two second leadtime to allow the field rate to settle
		// down and then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false

				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		// the continue check runs once per field-sized batch so no
		// further rationing of the channel read is needed
		return brd.Run(func() (bool, error) {
			select {
			case v := <-timerChan:
				if v {
					// measurement period has finished
					return false, curated.Errorf(timedOut)
				}

				// leadtime has concluded. measurement starts from the
				// current field
				startField = tv.GetCoords().Field
			default:
			}

			return true, nil
		})
	}

	// launch runner directly or through the profiler, depending on
	// supplied arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !curated.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	// get ending field number
	endField := tv.GetCoords().Field

	// calculate performance
	numFields := endField - startField
	fps, accuracy := CalcFPS(tv, numFields, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fields/s (%d fields in %.2f seconds) %.1f%%\n", fps, numFields, dur.Seconds(), accuracy)))

	return nil
}
