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

package sdltv

import (
	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/paths"
	"github.com/beamloop/compositevideo/prefs"
)

type preferences struct {
	scr *SdlTV
	dsk *prefs.Disk

	// size of the window as a multiple of the unscaled field
	scale prefs.Float64

	// whether to dim the regions outside the picture area
	overlay prefs.Bool
}

func newPreferences(scr *SdlTV) (*preferences, error) {
	p := &preferences{scr: scr}

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}
	err = p.dsk.Add("sdltv.scale", &p.scale)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}
	err = p.dsk.Add("sdltv.overlay", &p.overlay)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	// defaults applied before loading so that a missing or incomplete file
	// leaves the monitor usable
	p.scale.Set(2.0)
	p.overlay.Set(true)

	err = p.dsk.Load(false)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	// the scale hook resizes the window. attached after loading so that the
	// window is sized exactly once during startup
	p.scale.SetHookPost(func(v prefs.Value) error {
		return scr.setScaling(float32(v.(float64)))
	})

	if err := scr.setScaling(float32(p.scale.Get().(float64))); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *preferences) save() error {
	return p.dsk.Save()
}
