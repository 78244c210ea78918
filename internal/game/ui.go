package game

import (
	"github.com/Jabulani101/GHO57-RACING/internal/hud"
	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

// RenderHUD draws the status readout, and the ad overlay while the gate
// shows. hover highlights the upgrade button.
func RenderHUD(r *Renderer, f sim.Frame, o hud.Overlay, hover bool, fbW, fbH int) {
	m := r.font.Metrics()
	lineH := int(float32(m.CellH) * HUDTextScale)

	if f.Gate == sim.GateShowing {
		r.DrawRect(hud.Rect{W: fbW, H: fbH}, Palette.Overlay, Palette.Overlay, OverlayAlpha)
		r.DrawRect(o.Panel, Palette.Panel, Palette.Panel, 1)

		left, right := Palette.ButtonLeft, Palette.ButtonRight
		if hover {
			left = lerpRGB(left, Palette.Text, 0.25)
			right = lerpRGB(right, Palette.Text, 0.25)
		}
		r.DrawRect(o.Button, left, right, 1)
		r.FlushRects(fbW, fbH)

		r.DrawString(o.Title.S, o.Title.X, o.Title.Y, o.Title.Scale, Palette.Title)
		r.DrawString(o.Pitch.S, o.Pitch.X, o.Pitch.Y, o.Pitch.Scale, Palette.Text)
		r.DrawString(o.Label.S, o.Label.X, o.Label.Y, o.Label.Scale, Palette.ButtonText)
		r.DrawString(o.Shortcut.S, o.Shortcut.X, o.Shortcut.Y, o.Shortcut.Scale, Palette.Dim)

		if s := hud.Countdown(f.AdRemaining); s != "" {
			w := m.TextWidth(s, HUDTextScale)
			r.DrawString(s, fbW-w-HUDMargin, fbH-lineH-HUDMargin, HUDTextScale, Palette.Dim)
		}
		r.FlushText(fbW, fbH)
		return
	}

	y := HUDMargin
	for _, line := range hud.Readout(f) {
		col := Palette.Text
		if line == hud.PremiumLabel {
			col = Palette.Premium
		}
		r.DrawString(line, HUDMargin, y, HUDTextScale, col)
		y += lineH
	}
	r.FlushText(fbW, fbH)
}
