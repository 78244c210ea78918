// Package hud lays out the heads-up display and the ad overlay in
// framebuffer pixels. It holds no GL state so layout and hit-testing can
// be checked without a window.
package hud

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

const (
	OverlayTitle    = "PRE-RACE AD"
	OverlayPitch    = "Upgrade to Premium for ad-free racing"
	OverlayButton   = "UNLOCK PREMIUM ($4.99/month)"
	OverlayShortcut = "press U to upgrade"

	FreeLabel    = "FREE"
	PremiumLabel = "PREMIUM"
	PausedLabel  = "PAUSED"
)

type Rect struct {
	X, Y, W, H int
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

func (r Rect) Center() (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

// Metrics describes the monospace HUD font at scale 1.
type Metrics struct {
	CellW, CellH int
}

// TextWidth returns the pixel width of the longest line of s.
func (m Metrics) TextWidth(s string, scale float32) int {
	longest, n := 0, 0
	for _, ch := range s {
		if ch == '\n' {
			longest = max(longest, n)
			n = 0
			continue
		}
		n++
	}
	longest = max(longest, n)
	return int(float32(longest*m.CellW) * scale)
}

func (m Metrics) lineHeight(scale float32) int {
	return int(float32(m.CellH) * scale)
}

// Text is one string placed at a pixel position.
type Text struct {
	S     string
	X, Y  int
	Scale float32
}

// Overlay is the paywall layout for one framebuffer size.
type Overlay struct {
	Panel    Rect
	Button   Rect
	Title    Text
	Pitch    Text
	Label    Text
	Shortcut Text
}

const (
	titleScale  = 2.5
	bodyScale   = 1.5
	buttonScale = 1.5
	hintScale   = 1.0
	panelPad    = 32
	buttonPad   = 16
	gap         = 20
)

// LayoutOverlay centres the panel, its texts and the upgrade button.
func LayoutOverlay(fbW, fbH int, m Metrics) Overlay {
	titleW := m.TextWidth(OverlayTitle, titleScale)
	pitchW := m.TextWidth(OverlayPitch, bodyScale)
	labelW := m.TextWidth(OverlayButton, buttonScale)
	hintW := m.TextWidth(OverlayShortcut, hintScale)

	button := Rect{W: labelW + 2*buttonPad, H: m.lineHeight(buttonScale) + buttonPad}
	contentW := max(titleW, pitchW, button.W, hintW)
	contentH := m.lineHeight(titleScale) + gap +
		m.lineHeight(bodyScale) + gap +
		button.H + gap +
		m.lineHeight(hintScale)

	panel := Rect{W: contentW + 2*panelPad, H: contentH + 2*panelPad}
	panel.X = (fbW - panel.W) / 2
	panel.Y = (fbH - panel.H) / 2

	cx := fbW / 2
	y := panel.Y + panelPad
	o := Overlay{Panel: panel}

	o.Title = Text{S: OverlayTitle, X: cx - titleW/2, Y: y, Scale: titleScale}
	y += m.lineHeight(titleScale) + gap

	o.Pitch = Text{S: OverlayPitch, X: cx - pitchW/2, Y: y, Scale: bodyScale}
	y += m.lineHeight(bodyScale) + gap

	button.X = cx - button.W/2
	button.Y = y
	o.Button = button
	bx, _ := button.Center()
	o.Label = Text{S: OverlayButton, X: bx - labelW/2, Y: y + buttonPad/2, Scale: buttonScale}
	y += button.H + gap

	o.Shortcut = Text{S: OverlayShortcut, X: cx - hintW/2, Y: y, Scale: hintScale}
	return o
}

// Countdown is the auto-dismiss hint, empty when no timer is armed.
func Countdown(remaining float64) string {
	if remaining <= 0 {
		return ""
	}
	return fmt.Sprintf("closes in %ds", int(math.Ceil(remaining)))
}

// Readout returns the top-left status lines for a frame.
func Readout(f sim.Frame) []string {
	tier := FreeLabel
	if f.Premium {
		tier = PremiumLabel
	}
	lines := []string{
		fmt.Sprintf("SPEED %3.0f km/h", f.Vehicle.SpeedKmh),
		fmt.Sprintf("RPM   %4.0f", f.Vehicle.EnginePitch*sim.MaxRPM),
		fmt.Sprintf("YAW   %+4.0f deg/s", mgl64.RadToDeg(f.Vehicle.AngularVelocity.Y())),
		tier,
	}
	if f.Paused {
		lines = append(lines, PausedLabel)
	}
	return lines
}

// NormalizePointer maps a cursor position in window coordinates to
// [-1,1] on both axes with y pointing up.
func NormalizePointer(cx, cy float64, winW, winH int) sim.Pointer {
	if winW <= 0 || winH <= 0 {
		return sim.Pointer{}
	}
	x := cx/float64(winW)*2 - 1
	y := -(cy/float64(winH)*2 - 1)
	return sim.Pointer{
		X: math.Max(-1, math.Min(1, x)),
		Y: math.Max(-1, math.Min(1, y)),
	}
}

// ToFramebuffer scales a window-space cursor position to framebuffer
// pixels, which differ on high-DPI displays.
func ToFramebuffer(cx, cy float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}
