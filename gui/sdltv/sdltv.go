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

// Package sdltv is the SDL2 front-end. The whole field is displayed,
// vertical interval and porches included, with the regions outside the
// picture area dimmed by an overlay.
//
// The window stays hidden until the television reports a stable image, which
// spares the user the loose fields that occur while the generator and
// television are settling.
package sdltv

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/beamloop/compositevideo/assert"
	"github.com/beamloop/compositevideo/curated"
	"github.com/beamloop/compositevideo/television"
	"github.com/beamloop/compositevideo/television/specification"
)

const pixelDepth = 4

// a composite sample covers far more of the display's width than a scanline
// does of its height. seven horizontal units per sample brings the picture
// area close to 4:3
const pixelWidth = 7.0

// SdlTV is the SDL2 implementation of the gui.Monitor interface.
type SdlTV struct {
	*television.Television

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// texture dimensions. the window itself is a scaled multiple of these
	width  int32
	height int32
	pitch  int

	// pixels is the byte array we copy to the texture on every NewField()
	pixels []byte

	prefs *preferences

	// the window is not shown until the image is stable
	showOnNextStable bool

	// the goroutine NewSdlTV() was called from. SDL requires that events are
	// pumped from the thread that initialised it, which LockOSThread() has
	// welded to this goroutine
	creator uint64
}

// NewSdlTV is the preferred method of initialisation for the SdlTV type.
//
// MUST only be called from the main goroutine.
func NewSdlTV(tv *television.Television) (*SdlTV, error) {
	runtime.LockOSThread()

	scr := &SdlTV{
		Television:       tv,
		showOnNextStable: true,
		creator:          assert.GetGoRoutineID(),
	}

	spec := tv.GetSpec()
	scr.width = int32(spec.SamplesPerRow)
	scr.height = int32(spec.ScanlinesPerField)
	scr.pitch = int(scr.width) * pixelDepth

	var err error

	if err = sdl.Init(uint32(sdl.INIT_VIDEO)); err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	// window size is set in setScaling() once the preferences have loaded
	scr.window, err = sdl.CreateWindow(windowTitle(spec),
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	// texture is the same size as the field. scaling is applied by the
	// renderer in order to fit it in the window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		scr.width, scr.height)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	scr.pixels = make([]byte, int(scr.width*scr.height)*pixelDepth)

	// preset alpha channel - we never change the value of this channel
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	scr.prefs, err = newPreferences(scr)
	if err != nil {
		return nil, curated.Errorf("sdltv: %v", err)
	}

	setupService()

	// register ourselves as a television.PixelRenderer
	tv.AddPixelRenderer(scr)

	return scr, nil
}

func windowTitle(spec specification.Spec) string {
	return fmt.Sprintf("CompositeVideo (%s, %.2f fields/s)", spec.ID, spec.FieldsPerSecond)
}

// SetScale sets the size of the window as a multiple of the unscaled field
// and records the value in the preferences file.
func (scr *SdlTV) SetScale(scale float32) error {
	if scale <= 0 {
		return curated.Errorf("sdltv: bad scale value (%.1f)", scale)
	}
	if err := scr.prefs.scale.Set(float64(scale)); err != nil {
		return curated.Errorf("sdltv: %v", err)
	}
	return nil
}

func (scr *SdlTV) setScaling(scale float32) error {
	w := int32(float32(scr.width) * scale * pixelWidth)
	h := int32(float32(scr.height) * scale)
	scr.window.SetSize(w, h)

	// make sure everything drawn through the renderer is correctly scaled
	if err := scr.renderer.SetScale(scale*pixelWidth, scale); err != nil {
		return curated.Errorf("sdltv: %v", err)
	}

	return nil
}

// NewField implements the television.PixelRenderer interface. The texture is
// updated and presented once per field.
func (scr *SdlTV) NewField(info television.FieldInfo) error {
	if scr.showOnNextStable && info.Stable {
		scr.window.Show()
		scr.showOnNextStable = false
	}

	if err := scr.update(info); err != nil {
		return curated.Errorf("sdltv: %v", err)
	}

	return nil
}

func (scr *SdlTV) update(info television.FieldInfo) error {
	scr.renderer.SetDrawColor(0, 0, 0, 255)
	scr.renderer.SetDrawBlendMode(sdl.BLENDMODE_NONE)
	if err := scr.renderer.Clear(); err != nil {
		return err
	}

	if err := scr.texture.Update(nil, scr.pixels, scr.pitch); err != nil {
		return err
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return err
	}

	// dim everything outside the picture area
	if scr.prefs.overlay.Get().(bool) {
		crop := info.Crop()
		scr.renderer.SetDrawColor(0, 0, 0, 160)
		scr.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

		// bands above, below, left and right of the crop
		scr.renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: scr.width, H: int32(crop.Min.Y)})
		scr.renderer.FillRect(&sdl.Rect{X: 0, Y: int32(crop.Max.Y), W: scr.width, H: scr.height - int32(crop.Max.Y)})
		scr.renderer.FillRect(&sdl.Rect{X: 0, Y: int32(crop.Min.Y), W: int32(crop.Min.X), H: int32(crop.Dy())})
		scr.renderer.FillRect(&sdl.Rect{X: int32(crop.Max.X), Y: int32(crop.Min.Y), W: scr.width - int32(crop.Max.X), H: int32(crop.Dy())})
	}

	scr.renderer.Present()

	return nil
}

// NewScanline implements the television.PixelRenderer interface.
func (scr *SdlTV) NewScanline(scanline int) error {
	return nil
}

// SetPixel implements the television.PixelRenderer interface.
func (scr *SdlTV) SetPixel(x int, y int, luma uint8, blanked bool) error {
	// blanked pixels are shown as black. important when a previous field
	// reached further than this one because the pixel array is not cleared
	// between fields
	if blanked {
		luma = 0
	}

	if x < 0 || x >= int(scr.width) || y < 0 || y >= int(scr.height) {
		return nil
	}

	i := (y*int(scr.width) + x) * pixelDepth
	scr.pixels[i] = luma
	scr.pixels[i+1] = luma
	scr.pixels[i+2] = luma

	return nil
}

// EndRendering implements the television.PixelRenderer interface. Window
// preferences are saved and SDL shut down.
func (scr *SdlTV) EndRendering() error {
	err := scr.prefs.save()

	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()

	if err != nil {
		return curated.Errorf("sdltv: %v", err)
	}
	return nil
}
