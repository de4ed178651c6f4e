package graphics

import (
	"github.com/lucasb-eyer/go-colorful"
)

// VideoProcessor applies brightness/contrast/saturation adjustments to a
// rendered frame buffer, for VideoConfig's Brightness/Contrast/Saturation settings.
type VideoProcessor struct {
	brightness float32
	contrast   float32
	saturation float32
}

// NewVideoProcessor creates a new video processor.
func NewVideoProcessor(brightness, contrast, saturation float32) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
	}
}

// ProcessFrame applies the configured adjustments to a frame buffer,
// returning the input unchanged if all three are at their neutral values.
func (vp *VideoProcessor) ProcessFrame(frameBuffer []uint32) []uint32 {
	if vp.brightness == 1.0 && vp.contrast == 1.0 && vp.saturation == 1.0 {
		return frameBuffer
	}

	processed := make([]uint32, len(frameBuffer))

	for i, pixel := range frameBuffer {
		r := float32((pixel >> 16) & 0xFF)
		g := float32((pixel >> 8) & 0xFF)
		b := float32(pixel & 0xFF)

		r *= vp.brightness
		g *= vp.brightness
		b *= vp.brightness

		r = ((r/255.0 - 0.5) * vp.contrast + 0.5) * 255.0
		g = ((g/255.0 - 0.5) * vp.contrast + 0.5) * 255.0
		b = ((b/255.0 - 0.5) * vp.contrast + 0.5) * 255.0

		if vp.saturation != 1.0 {
			c := colorful.Color{R: float64(clamp(r, 0, 255) / 255.0), G: float64(clamp(g, 0, 255) / 255.0), B: float64(clamp(b, 0, 255) / 255.0)}
			h, s, l := c.Hsl()
			s *= float64(vp.saturation)
			if s > 1.0 {
				s = 1.0
			}
			adjusted := colorful.Hsl(h, s, l)
			r = float32(adjusted.R) * 255.0
			g = float32(adjusted.G) * 255.0
			b = float32(adjusted.B) * 255.0
		}

		r = clamp(r, 0, 255)
		g = clamp(g, 0, 255)
		b = clamp(b, 0, 255)

		processed[i] = (uint32(r) << 16) | (uint32(g) << 8) | uint32(b)
	}

	return processed
}

// clamp limits a value to a range.
func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SetBrightness updates the brightness multiplier.
func (vp *VideoProcessor) SetBrightness(brightness float32) { vp.brightness = brightness }

// SetContrast updates the contrast multiplier.
func (vp *VideoProcessor) SetContrast(contrast float32) { vp.contrast = contrast }

// SetSaturation updates the saturation multiplier.
func (vp *VideoProcessor) SetSaturation(saturation float32) { vp.saturation = saturation }
