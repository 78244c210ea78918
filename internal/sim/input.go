package sim

import (
	"fmt"
	"time"
)

// Action is a directional driving impulse.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ActionForKey maps the four arrow keys to driving actions.
func ActionForKey(k Key) (Action, bool) {
	switch k {
	case KeyArrowUp:
		return ActionForward, true
	case KeyArrowDown:
		return ActionBackward, true
	case KeyArrowLeft:
		return ActionLeft, true
	case KeyArrowRight:
		return ActionRight, true
	}
	return 0, false
}

// ImpulseTarget receives driving actions.
type ImpulseTarget interface {
	Apply(Action)
}

// InputListener turns key-down events into impulses. Key-up events are
// ignored. Repeat events follow RepeatInterval:
//
//	0   every platform repeat fires
//	>0  at most one repeat per key per interval
//	<0  repeats are dropped
type InputListener struct {
	target         ImpulseTarget
	repeatInterval float64
	lastFire       map[Key]float64
	unsubscribe    func()
}

func NewInputListener(src KeySource, target ImpulseTarget, repeatInterval time.Duration) (*InputListener, error) {
	l := &InputListener{
		target:         target,
		repeatInterval: repeatInterval.Seconds(),
		lastFire:       make(map[Key]float64),
	}
	unsub, err := src.SubscribeKeys(l.handle)
	if err != nil {
		return nil, fmt.Errorf("subscribe keys: %w", err)
	}
	l.unsubscribe = unsub
	return l, nil
}

func (l *InputListener) handle(e KeyEvent) {
	action, ok := ActionForKey(e.Key)
	if !ok {
		return
	}
	switch e.Action {
	case KeyPress:
	case KeyRepeat:
		if l.repeatInterval < 0 {
			return
		}
		if last, seen := l.lastFire[e.Key]; seen && l.repeatInterval > 0 && e.Time-last < l.repeatInterval {
			return
		}
	default:
		return
	}
	l.lastFire[e.Key] = e.Time
	l.target.Apply(action)
}

// Close removes the key subscription. Safe to call more than once.
func (l *InputListener) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}
