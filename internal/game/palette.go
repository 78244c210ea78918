package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// F32 returns the colour as normalized floats for shader uniforms.
func (c RGB) F32() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

var Palette = struct {
	Sky         RGB
	Ground      RGB
	Chassis     RGB
	Cabin       RGB
	Wheel       RGB
	Overlay     RGB
	Panel       RGB
	Title       RGB
	Text        RGB
	Dim         RGB
	ButtonLeft  RGB
	ButtonRight RGB
	ButtonText  RGB
	Premium     RGB
}{
	Sky:         RGB{R: 135, G: 160, B: 190},
	Ground:      RGB{R: 0x33, G: 0x33, B: 0x33},
	Chassis:     RGB{R: 200, G: 30, B: 40},
	Cabin:       RGB{R: 40, G: 44, B: 52},
	Wheel:       RGB{R: 20, G: 20, B: 20},
	Overlay:     RGB{R: 0, G: 0, B: 0},
	Panel:       RGB{R: 17, G: 24, B: 39},
	Title:       RGB{R: 234, G: 179, B: 8},
	Text:        RGB{R: 255, G: 255, B: 255},
	Dim:         RGB{R: 150, G: 150, B: 160},
	ButtonLeft:  RGB{R: 234, G: 179, B: 8},
	ButtonRight: RGB{R: 220, G: 38, B: 38},
	ButtonText:  RGB{R: 0, G: 0, B: 0},
	Premium:     RGB{R: 100, G: 255, B: 100},
}
