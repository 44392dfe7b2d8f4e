package interact

import "sync"

// KeySpace is the key that holds the canvas in pan mode.
const KeySpace = " "

// Scope is a registration that lasts until Release. Releasing twice is harmless.
type Scope struct {
	once    sync.Once
	release func()
}

func (s *Scope) Release() {
	if s == nil {
		return
	}
	s.once.Do(s.release)
}

func (c *Controller) acquire() *Scope {
	s := &Scope{}
	s.release = func() { delete(c.scopes, s) }
	c.scopes[s] = struct{}{}
	return s
}

// Panning reports whether pan mode is held.
func (c *Controller) Panning() bool { return len(c.scopes) > 0 }

// KeyDown handles a key press and reports whether it was consumed. Space enters pan
// mode unless the focus is in a text input.
func (c *Controller) KeyDown(key string, inTextInput bool) bool {
	if key != KeySpace || inTextInput {
		return false
	}
	if c.pan == nil {
		c.pan = c.acquire()
		c.drag = nil
	}
	return true
}

// KeyUp leaves pan mode when space is released.
func (c *Controller) KeyUp(key string) {
	if key != KeySpace || c.pan == nil {
		return
	}
	c.pan.Release()
	c.pan = nil
	c.press = false
}

// Close drops every live scope (pan mode included).
func (c *Controller) Close() {
	for s := range c.scopes {
		s.Release()
	}
	c.pan = nil
}
