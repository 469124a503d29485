package dispatch

import "reflect"

// Deferred marks a message that is queued on Post and delivered on the next
// Flush instead of immediately.
type Deferred interface {
	Deferred()
}

// Buffered marks a message that is retained after delivery. Listeners added
// later receive every retained message of their type when they subscribe.
type Buffered interface {
	Buffered()
}

// Listener identifies a subscription returned by AddListener.
type Listener struct {
	kind reflect.Type
	id   uint64
}

func (l Listener) Valid() bool {
	return l.id != 0
}

// Receipt identifies a posted message so it can be cleaned up later.
type Receipt struct {
	kind reflect.Type
	id   uint64
}

func (r Receipt) Valid() bool {
	return r.id != 0
}

type listener struct {
	id uint64
	fn func(any)
}

type envelope struct {
	kind      reflect.Type
	id        uint64
	msg       any
	cancelled bool
}

// Pump routes messages to listeners keyed by the message's Go type.
type Pump struct {
	nextID    uint64
	listeners map[reflect.Type][]listener
	pending   []*envelope
	buffered  map[reflect.Type][]*envelope
}

func New() *Pump {
	return &Pump{
		listeners: make(map[reflect.Type][]listener),
		buffered:  make(map[reflect.Type][]*envelope),
	}
}

var global = New()

// Global returns the process-wide pump.
func Global() *Pump {
	return global
}

// SetGlobal replaces the process-wide pump and returns the previous one.
func SetGlobal(p *Pump) *Pump {
	prev := global
	if p == nil {
		p = New()
	}
	global = p
	return prev
}

// AddListener subscribes fn to messages of type T. Retained buffered messages
// of that type are replayed to fn before AddListener returns.
func AddListener[T any](p *Pump, fn func(T)) Listener {
	if p == nil || fn == nil {
		return Listener{}
	}
	p.ensure()

	kind := reflect.TypeFor[T]()
	p.nextID++
	l := listener{
		id: p.nextID,
		fn: func(msg any) {
			fn(msg.(T))
		},
	}
	p.listeners[kind] = append(p.listeners[kind], l)

	retained := append([]*envelope(nil), p.buffered[kind]...)
	for _, env := range retained {
		if env.cancelled || !p.subscribed(kind, l.id) {
			continue
		}
		l.fn(env.msg)
	}

	return Listener{kind: kind, id: l.id}
}

// RemoveListener unsubscribes l. It is safe to call from inside a listener.
func (p *Pump) RemoveListener(l Listener) {
	if p == nil || !l.Valid() {
		return
	}
	current := p.listeners[l.kind]
	kept := make([]listener, 0, len(current))
	for _, existing := range current {
		if existing.id != l.id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		delete(p.listeners, l.kind)
		return
	}
	p.listeners[l.kind] = kept
}

// Post delivers msg to the listeners of its dynamic type, or queues it until
// Flush when msg is Deferred.
func (p *Pump) Post(msg any) Receipt {
	if p == nil || msg == nil {
		return Receipt{}
	}
	p.ensure()

	p.nextID++
	env := &envelope{kind: reflect.TypeOf(msg), id: p.nextID, msg: msg}
	receipt := Receipt{kind: env.kind, id: env.id}

	if _, ok := msg.(Deferred); ok {
		p.pending = append(p.pending, env)
		return receipt
	}

	p.deliver(env)
	return receipt
}

// Flush delivers the deferred messages queued so far, in post order.
// Messages deferred by listeners during Flush wait for the next call.
func (p *Pump) Flush() {
	if p == nil || len(p.pending) == 0 {
		return
	}
	batch := p.pending
	p.pending = nil
	for _, env := range batch {
		if env.cancelled {
			continue
		}
		p.deliver(env)
	}
}

// Cleanup drops a retained or still pending message. Unknown receipts are
// ignored.
func (p *Pump) Cleanup(r Receipt) {
	if p == nil || !r.Valid() {
		return
	}
	for _, env := range p.pending {
		if env.id == r.id {
			env.cancelled = true
		}
	}

	retained := p.buffered[r.kind]
	kept := make([]*envelope, 0, len(retained))
	for _, env := range retained {
		if env.id == r.id {
			env.cancelled = true
			continue
		}
		kept = append(kept, env)
	}
	if len(kept) == 0 {
		delete(p.buffered, r.kind)
		return
	}
	p.buffered[r.kind] = kept
}

// Reset drops all listeners, pending and retained messages.
func (p *Pump) Reset() {
	if p == nil {
		return
	}
	for _, env := range p.pending {
		env.cancelled = true
	}
	p.listeners = make(map[reflect.Type][]listener)
	p.pending = nil
	p.buffered = make(map[reflect.Type][]*envelope)
}

// ListenerCount returns the number of listeners for message type T.
func ListenerCount[T any](p *Pump) int {
	if p == nil {
		return 0
	}
	return len(p.listeners[reflect.TypeFor[T]()])
}

// BufferedCount returns the number of retained messages of type T.
func BufferedCount[T any](p *Pump) int {
	if p == nil {
		return 0
	}
	return len(p.buffered[reflect.TypeFor[T]()])
}

// PendingCount returns the number of deferred messages waiting for Flush.
func (p *Pump) PendingCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, env := range p.pending {
		if !env.cancelled {
			n++
		}
	}
	return n
}

func (p *Pump) deliver(env *envelope) {
	if _, ok := env.msg.(Buffered); ok {
		p.buffered[env.kind] = append(p.buffered[env.kind], env)
	}

	handlers := append([]listener(nil), p.listeners[env.kind]...)
	for _, l := range handlers {
		if !p.subscribed(env.kind, l.id) {
			continue
		}
		l.fn(env.msg)
	}
}

func (p *Pump) subscribed(kind reflect.Type, id uint64) bool {
	for _, l := range p.listeners[kind] {
		if l.id == id {
			return true
		}
	}
	return false
}

func (p *Pump) ensure() {
	if p.listeners == nil {
		p.listeners = make(map[reflect.Type][]listener)
	}
	if p.buffered == nil {
		p.buffered = make(map[reflect.Type][]*envelope)
	}
}
