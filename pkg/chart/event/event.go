// Package event provides a small typed publish/subscribe emitter used by the
// scene graph and the view tree.
//
// Handlers subscribe to an exact topic string ("legend-item:click",
// "plot:mouseenter") or to the wildcard topic "*", which receives every
// emission. Handlers run synchronously in subscription order.
package event

// Wildcard is the topic that matches every emitted topic.
const Wildcard = "*"

// Handler receives an emitted event.
type Handler[E any] func(E)

type subscription[E any] struct {
	id int
	fn Handler[E]
}

// Emitter dispatches events of type E by topic. The zero value is ready to
// use. An Emitter is not safe for concurrent use.
type Emitter[E any] struct {
	next int
	subs map[string][]subscription[E]
}

// On subscribes fn to topic and returns a function that removes the
// subscription.
func (e *Emitter[E]) On(topic string, fn Handler[E]) func() {
	if e.subs == nil {
		e.subs = make(map[string][]subscription[E])
	}
	e.next++
	id := e.next
	e.subs[topic] = append(e.subs[topic], subscription[E]{id: id, fn: fn})
	return func() { e.remove(topic, id) }
}

// Once subscribes fn for a single emission.
func (e *Emitter[E]) Once(topic string, fn Handler[E]) {
	var off func()
	off = e.On(topic, func(ev E) {
		off()
		fn(ev)
	})
}

// Off removes every handler of topic, or every handler when topic is empty.
func (e *Emitter[E]) Off(topic string) {
	if topic == "" {
		e.subs = nil
		return
	}
	delete(e.subs, topic)
}

// Emit calls the handlers of topic followed by the wildcard handlers.
// Subscriptions added during an emission take effect on the next one.
func (e *Emitter[E]) Emit(topic string, ev E) {
	for _, s := range e.snapshot(topic) {
		s.fn(ev)
	}
	if topic == Wildcard {
		return
	}
	for _, s := range e.snapshot(Wildcard) {
		s.fn(ev)
	}
}

// Has reports whether topic has at least one handler.
func (e *Emitter[E]) Has(topic string) bool {
	return len(e.subs[topic]) > 0
}

func (e *Emitter[E]) snapshot(topic string) []subscription[E] {
	subs := e.subs[topic]
	if len(subs) == 0 {
		return nil
	}
	return append([]subscription[E](nil), subs...)
}

func (e *Emitter[E]) remove(topic string, id int) {
	subs := e.subs[topic]
	for i, s := range subs {
		if s.id == id {
			e.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
