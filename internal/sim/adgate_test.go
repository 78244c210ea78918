package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdGate_InitialState(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	assert.Equal(t, GateShowing, g.State())
	assert.False(t, g.Premium())
	assert.InDelta(t, 5.0, g.Remaining(), 1e-12)

	p := NewAdGate(5*time.Second, true)
	assert.Equal(t, GateHidden, p.State())
	assert.True(t, p.Premium())
	assert.Equal(t, 0.0, p.Remaining())
}

func TestAdGate_UpgradeThenTriggerIsNoop(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	g.Upgrade()
	assert.Equal(t, GateHidden, g.State())
	assert.True(t, g.Premium())

	assert.False(t, g.Trigger())
	assert.Equal(t, GateHidden, g.State())
	assert.True(t, g.Premium())
}

func TestAdGate_AutoDismiss(t *testing.T) {
	g := NewAdGate(5*time.Second, false)

	g.Advance(4.999)
	assert.Equal(t, GateShowing, g.State())

	g.Advance(0.001)
	assert.Equal(t, GateHidden, g.State())
	assert.False(t, g.Premium())
	assert.Equal(t, 0.0, g.Remaining())
}

func TestAdGate_AutoDismissInTicks(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	for i := 0; i < 299; i++ {
		g.Advance(1.0 / 60)
	}
	assert.Equal(t, GateShowing, g.State())
	for i := 0; i < 2; i++ {
		g.Advance(1.0 / 60)
	}
	assert.Equal(t, GateHidden, g.State())
}

func TestAdGate_PendingTimerAfterUpgrade(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	var changes []GateChange
	g.OnChange(func(c GateChange) { changes = append(changes, c) })

	g.Advance(2)
	g.Upgrade()
	g.Advance(10)

	assert.Equal(t, GateHidden, g.State())
	assert.True(t, g.Premium())
	require.Len(t, changes, 1)
	assert.Equal(t, ReasonUpgrade, changes[0].Reason)
}

func TestAdGate_TriggerCycle(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	var changes []GateChange
	g.OnChange(func(c GateChange) { changes = append(changes, c) })

	g.Advance(5)
	require.Equal(t, GateHidden, g.State())

	assert.True(t, g.Trigger())
	assert.Equal(t, GateShowing, g.State())
	assert.False(t, g.Trigger(), "already showing")

	g.Advance(5)
	assert.Equal(t, GateHidden, g.State())

	require.Len(t, changes, 3)
	assert.Equal(t, GateChange{From: GateShowing, To: GateHidden, Reason: ReasonTimeout}, changes[0])
	assert.Equal(t, GateChange{From: GateHidden, To: GateShowing, Reason: ReasonTrigger}, changes[1])
	assert.Equal(t, GateChange{From: GateShowing, To: GateHidden, Reason: ReasonTimeout}, changes[2])
}

func TestAdGate_RepeatUpgradeEmitsOnce(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	calls := 0
	g.OnChange(func(GateChange) { calls++ })

	g.Upgrade()
	g.Upgrade()
	assert.Equal(t, 1, calls)
}

func TestAdGate_UpgradeWhileHidden(t *testing.T) {
	g := NewAdGate(5*time.Second, false)
	g.Advance(5)
	require.False(t, g.Premium())

	var got GateChange
	g.OnChange(func(c GateChange) { got = c })
	g.Upgrade()

	assert.True(t, g.Premium())
	assert.Equal(t, GateChange{From: GateHidden, To: GateHidden, Premium: true, Reason: ReasonUpgrade}, got)
}

func TestAdGate_NoAutoDismiss(t *testing.T) {
	g := NewAdGate(0, false)
	g.Advance(3600)
	assert.Equal(t, GateShowing, g.State())
	assert.Equal(t, 0.0, g.Remaining())
}

func TestGateState_String(t *testing.T) {
	assert.Equal(t, "showing", GateShowing.String())
	assert.Equal(t, "hidden", GateHidden.String())
}
