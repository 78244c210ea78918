package sim

import "errors"

// Key is a platform-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyUpgrade
)

func (k Key) String() string {
	switch k {
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyUpgrade:
		return "Upgrade"
	default:
		return "Unknown"
	}
}

type KeyAction int

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)

type KeyEvent struct {
	Key    Key
	Action KeyAction
	Time   float64 // seconds, monotonic
}

type KeyHandler func(KeyEvent)

// KeySource delivers key events to subscribers.
type KeySource interface {
	SubscribeKeys(fn KeyHandler) (unsubscribe func(), err error)
}

var (
	ErrBusClosed  = errors.New("key bus closed")
	ErrNilHandler = errors.New("nil key handler")
)

type keySub struct {
	id int
	fn KeyHandler
}

// KeyBus fans key events out to subscribers in subscription order.
type KeyBus struct {
	handlers []keySub
	next     int
	closed   bool
}

func NewKeyBus() *KeyBus {
	return &KeyBus{}
}

func (kb *KeyBus) SubscribeKeys(fn KeyHandler) (func(), error) {
	if kb.closed {
		return nil, ErrBusClosed
	}
	if fn == nil {
		return nil, ErrNilHandler
	}
	id := kb.next
	kb.next++
	kb.handlers = append(kb.handlers, keySub{id: id, fn: fn})
	return func() { kb.remove(id) }, nil
}

func (kb *KeyBus) remove(id int) {
	for i, h := range kb.handlers {
		if h.id == id {
			kb.handlers = append(kb.handlers[:i], kb.handlers[i+1:]...)
			return
		}
	}
}

func (kb *KeyBus) Emit(e KeyEvent) {
	// Handlers may unsubscribe while being called.
	hs := append([]keySub(nil), kb.handlers...)
	for _, h := range hs {
		h.fn(e)
	}
}

// Len reports the number of live subscriptions.
func (kb *KeyBus) Len() int { return len(kb.handlers) }

// Close drops all subscribers and rejects new ones.
func (kb *KeyBus) Close() {
	kb.closed = true
	kb.handlers = nil
}
