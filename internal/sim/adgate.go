package sim

import "time"

type GateState int

const (
	GateShowing GateState = iota // overlay covers the scene
	GateHidden
)

func (s GateState) String() string {
	if s == GateShowing {
		return "showing"
	}
	return "hidden"
}

// GateChange describes one transition of the ad gate.
type GateChange struct {
	From, To GateState
	Premium  bool
	Reason   string
}

// timerEpsilon absorbs float drift from summing frame deltas.
const timerEpsilon = 1e-9

// Transition reasons.
const (
	ReasonUpgrade = "upgrade"
	ReasonTrigger = "trigger"
	ReasonTimeout = "timeout"
)

// AdGate is the paywall overlay state machine. Premium is one-way: once
// set, the gate never shows again.
type AdGate struct {
	state   GateState
	premium bool

	dismissAfter float64 // seconds; 0 disables auto-dismiss
	remaining    float64
	armed        bool

	listeners []func(GateChange)
}

// NewAdGate starts Showing with an armed dismiss timer, or Hidden when
// premium is already held.
func NewAdGate(dismissAfter time.Duration, premium bool) *AdGate {
	g := &AdGate{
		state:        GateHidden,
		premium:      premium,
		dismissAfter: dismissAfter.Seconds(),
	}
	if !premium {
		g.state = GateShowing
		g.arm()
	}
	return g
}

func (g *AdGate) State() GateState { return g.state }
func (g *AdGate) Premium() bool    { return g.premium }
func (g *AdGate) Showing() bool    { return g.state == GateShowing }

// Remaining returns seconds until auto-dismiss, or 0 when no timer is armed.
func (g *AdGate) Remaining() float64 {
	if !g.armed {
		return 0
	}
	return g.remaining
}

// OnChange registers fn for every transition.
func (g *AdGate) OnChange(fn func(GateChange)) {
	g.listeners = append(g.listeners, fn)
}

// Upgrade hides the gate and grants premium permanently.
func (g *AdGate) Upgrade() {
	if g.premium && g.state == GateHidden {
		return
	}
	from := g.state
	g.premium = true
	g.state = GateHidden
	g.armed = false
	g.emit(GateChange{From: from, To: GateHidden, Premium: true, Reason: ReasonUpgrade})
}

// Trigger shows an ad break. It reports whether the gate opened; premium
// players and an already open gate make it a no-op.
func (g *AdGate) Trigger() bool {
	if g.premium || g.state == GateShowing {
		return false
	}
	g.state = GateShowing
	g.arm()
	g.emit(GateChange{From: GateHidden, To: GateShowing, Premium: false, Reason: ReasonTrigger})
	return true
}

// Advance runs the dismiss timer by dt seconds.
func (g *AdGate) Advance(dt float64) {
	if !g.armed || dt <= 0 {
		return
	}
	g.remaining -= dt
	if g.remaining > timerEpsilon {
		return
	}
	g.armed = false
	g.remaining = 0
	if g.state != GateShowing {
		return
	}
	g.state = GateHidden
	g.emit(GateChange{From: GateShowing, To: GateHidden, Premium: g.premium, Reason: ReasonTimeout})
}

func (g *AdGate) arm() {
	if g.dismissAfter <= 0 {
		g.armed = false
		return
	}
	g.armed = true
	g.remaining = g.dismissAfter
}

func (g *AdGate) emit(c GateChange) {
	for _, fn := range g.listeners {
		fn(c)
	}
}
