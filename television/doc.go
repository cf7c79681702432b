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

// Package television decodes the composite waveform produced by the signal
// generator back into fields, scanlines and pixels.
//
// The television receives nothing but a stream of DAC samples; sync is
// carried in-band, as on a real composite cable. A simple sync separator
// finds the pulses and classifies them by width: equalisation pulses,
// horizontal sync pulses and the broad serration pulses of the vertical
// interval. Horizontal sync starts a new scanline; the first serration
// pulse of a train starts a new field. Field parity (odd or even) falls
// out of the half-line phase of the serration train relative to the last
// horizontal sync.
//
// Note that the television package does not actually present any visual
// information. Instead, implementations of PixelRenderer are added to the
// television and it is the renderer's job to present the decoded image.
// WaveformRecorder implementations receive the undecoded sample stream and
// FieldTrigger implementations are told about new fields only.
//
// The television expects all samples to arrive from a single goroutine. It
// is not safe for concurrent use.
package television
