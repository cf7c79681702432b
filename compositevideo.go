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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/beamloop/compositevideo/gui"
	"github.com/beamloop/compositevideo/gui/sdltv"
	"github.com/beamloop/compositevideo/gui/termtv"
	"github.com/beamloop/compositevideo/hardware"
	"github.com/beamloop/compositevideo/hardware/dmac"
	"github.com/beamloop/compositevideo/logger"
	"github.com/beamloop/compositevideo/modalflag"
	"github.com/beamloop/compositevideo/paths"
	"github.com/beamloop/compositevideo/performance"
	"github.com/beamloop/compositevideo/regression"
	"github.com/beamloop/compositevideo/statsview"
	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/testcard"
	"github.com/beamloop/compositevideo/version"
	"github.com/beamloop/compositevideo/wavwriter"
)

// the default television specification for every mode
const defaultSpec = "NTSC"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "TERM", "WAV", "CHAIN", "PERF", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "TERM":
		err = term(md)

	case "WAV":
		err = wavCapture(md)

	case "CHAIN":
		err = chainGraph(md)

	case "PERF":
		err = perform(md)

	case "REGRESS":
		err = regress(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// setEcho connects or disconnects the debugging log from stderr according
// to the -log flag of the mode being dispatched.
func setEcho(echo bool) {
	if echo {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	card := md.AddString("card", testcard.Default, "test card to display on startup")
	scale := md.AddFloat64("scale", 0.0, "window scale (0 means that the saved preference is kept)")
	fieldCap := md.AddBool("fieldcap", true, "cap field rate to specification")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	stats := md.AddBool("stats", false, "serve runtime statistics (requires the statsview build tag)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Fprintln(md.Output, "! runtime statistics not available in this build (no statsview tag)")
		}
	}

	tv, err := television.NewTelevision(*spec)
	if err != nil {
		return err
	}
	defer tv.End()

	tv.SetFieldCap(*fieldCap)

	scr, err := sdltv.NewSdlTV(tv)
	if err != nil {
		return err
	}

	if *scale > 0.0 {
		err = scr.SetScale(float32(*scale))
		if err != nil {
			return err
		}
	}

	return freerun(tv, scr, *card)
}

func term(md *modalflag.Modes) error {
	md.NewMode()

	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	card := md.AddString("card", testcard.Default, "test card to display on startup")
	fieldCap := md.AddBool("fieldcap", true, "cap field rate to specification")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	tv, err := television.NewTelevision(*spec)
	if err != nil {
		return err
	}
	defer tv.End()

	tv.SetFieldCap(*fieldCap)

	scr, err := termtv.NewTermTV(tv)
	if err != nil {
		return err
	}

	return freerun(tv, scr, *card)
}

// freerun drives the board for as long as the user wants to watch it. the
// board, the monitor's Service() function and the television all run on
// this one goroutine so the loop needs no synchronisation.
//
// keys recognised in the freerun modes: "q" and ctrl-c to quit; "c" to
// blank the screen; "r" to rotate the picture; the number keys to switch
// test card.
func freerun(tv *television.Television, mon gui.Monitor, card string) error {
	brd, err := hardware.NewBoard(tv)
	if err != nil {
		return err
	}

	err = brd.Video.Begin()
	if err != nil {
		return err
	}

	err = testcard.Draw(card, brd.Video, 0)
	if err != nil {
		return err
	}

	// ctrl-c ends the loop at the next check. important for the terminal
	// monitor, which must be given the chance to restore the terminal
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	cards := testcard.List()

	// the frame counter advances once per field so that cards that animate
	// move at a constant rate. drawing is done when the field flag changes,
	// which is as close to the vertical blanking period as polling can get
	frame := 0
	lastFlag := brd.Video.Field()

	return brd.Run(func() (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
		}

		for _, ev := range mon.Service() {
			switch ev := ev.(type) {
			case gui.EventQuit:
				return false, nil

			case gui.EventKeyboard:
				switch ev.Key {
				case "c":
					card = ""
					brd.Video.Clear()
				case "r":
					brd.Video.SetRotation((brd.Video.Rotation() + 1) % 4)
					brd.Video.Clear()
				default:
					if n, cerr := strconv.Atoi(ev.Key); cerr == nil && n >= 1 && n <= len(cards) {
						card = cards[n-1]
						frame = 0
					}
				}
			}
		}

		if f := brd.Video.Field(); f != lastFlag {
			lastFlag = f
			if card != "" {
				frame++
				if err := testcard.Draw(card, brd.Video, frame); err != nil {
					return false, err
				}
			}
		}

		return true, nil
	})
}

func wavCapture(md *modalflag.Modes) error {
	md.NewMode()

	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	fields := md.AddInt("fields", 60, "number of fields to capture")
	output := md.AddString("o", "", "WAV file to write (default: a unique filename)")
	card := md.AddString("card", testcard.Default, "test card to display")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	if *fields < 1 {
		return fmt.Errorf("number of fields must be a positive number")
	}

	tv, err := television.NewTelevision(*spec)
	if err != nil {
		return err
	}

	// the WAV file encodes real time already so there is no reason to
	// generate it at any less than full speed
	tv.SetFieldCap(false)

	fn := *output
	if fn == "" {
		fn = fmt.Sprintf("%s.wav", paths.UniqueFilename("capture", *card))
	}

	aw, err := wavwriter.New(fn, tv.GetSpec().SampleRate)
	if err != nil {
		return err
	}
	tv.AddWaveformRecorder(aw)

	brd, err := hardware.NewBoard(tv)
	if err != nil {
		return err
	}

	err = brd.Video.Begin()
	if err != nil {
		return err
	}

	err = testcard.Draw(*card, brd.Video, 0)
	if err != nil {
		return err
	}

	// ctrl-c concludes the capture early. whatever has been generated so
	// far is still written out
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	frame := 0
	lastFlag := brd.Video.Field()

	err = brd.RunForFieldCount(*fields, func(_ int) (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
		}

		if f := brd.Video.Field(); f != lastFlag {
			lastFlag = f
			frame++
			if err := testcard.Draw(*card, brd.Video, frame); err != nil {
				return false, err
			}
		}

		return true, nil
	})
	if err != nil {
		return err
	}

	// ending the television flushes the recording to disk
	err = tv.End()
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "waveform captured to %s\n", fn)

	return nil
}

func chainGraph(md *modalflag.Modes) error {
	md.NewMode()

	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	output := md.AddString("o", "", "write to file rather than stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tv, err := television.NewTelevision(*spec)
	if err != nil {
		return err
	}
	defer tv.End()

	// the graph is built from a board that never runs. the descriptor
	// chain exists once the video output has begun
	brd, err := hardware.NewBoard(tv)
	if err != nil {
		return err
	}

	err = brd.Video.Begin()
	if err != nil {
		return err
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}

		err = dmac.Graph(f, brd.Video.Chain())
		if err != nil {
			f.Close()
			return err
		}

		return f.Close()
	}

	return dmac.Graph(md.Output, brd.Video.Chain())
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	card := md.AddString("card", testcard.Default, "test card to display")
	uncapped := md.AddBool("uncapped", true, "run without field rate cap")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run through profiler: CPU, MEM, TRACE, ALL")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, *spec, *card, *uncapped, *duration)
}

// yesReader always returns 'y' when it is read from. used to automate the
// confirmation required by regress delete.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "display error messages following a failed test")
		log := md.AddBool("log", false, "echo debugging log to stderr")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		setEcho(*log)

		// any remaining arguments are the keys of the tests to run. no
		// keys means that every test will run
		return regression.RegressRun(md.Output, *verbose, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return regression.RegressList(md.Output)
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation request")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			// use the yesReader to satisfy the confirmation request
			// when the -yes flag has been specified
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}

			return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddString("mode", "both", "digest mode: video, waveform, both")
	spec := md.AddString("spec", defaultSpec, "television specification: NTSC, NTSC40x24")
	card := md.AddString("card", testcard.Default, "test card to run")
	numFields := md.AddInt("fields", 10, "number of fields to run")
	notes := md.AddString("notes", "", "annotation for the database entry")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log)

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	if *numFields < 1 {
		return fmt.Errorf("number of fields must be a positive number")
	}

	dm, err := regression.ParseDigestMode(*mode)
	if err != nil {
		return err
	}

	reg := &regression.DigestRegression{
		Mode:      dm,
		Card:      *card,
		Spec:      *spec,
		NumFields: *numFields,
		Notes:     *notes,
	}

	return regression.RegressAdd(md.Output, reg)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
