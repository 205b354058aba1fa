package tween

// Connection is returned by Signal.Connect and detaches its handler.
type Connection struct {
	connected bool
	detach    func()
}

// Disconnect stops the handler from receiving further fires. Safe to call
// more than once and from inside the handler itself.
func (c *Connection) Disconnect() {
	if !c.connected {
		return
	}
	c.connected = false
	c.detach()
}

// Connected reports whether the handler is still attached.
func (c *Connection) Connected() bool {
	return c.connected
}

type handler[T any] struct {
	conn *Connection
	fn   func(T)
}

// Signal is a synchronous multi-subscriber notification. The zero value is
// ready to use.
type Signal[T any] struct {
	handlers []*handler[T]
}

// Connect subscribes fn. Handlers run in subscription order.
func (s *Signal[T]) Connect(fn func(T)) *Connection {
	h := &handler[T]{fn: fn}
	h.conn = &Connection{connected: true}
	h.conn.detach = func() { s.remove(h) }
	s.handlers = append(s.handlers, h)
	return h.conn
}

// remove rebuilds the slice so a Fire in progress keeps its snapshot.
func (s *Signal[T]) remove(h *handler[T]) {
	kept := make([]*handler[T], 0, len(s.handlers))
	for _, other := range s.handlers {
		if other != h {
			kept = append(kept, other)
		}
	}
	s.handlers = kept
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Fire calls every handler connected when Fire began, skipping any that get
// disconnected along the way. A panicking handler aborts the dispatch.
func (s *Signal[T]) Fire(v T) {
	for _, h := range s.handlers {
		if h.conn.connected {
			h.fn(v)
		}
	}
}
