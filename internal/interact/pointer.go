package interact

import (
	"math"

	"chatweaver/internal/mutate"
	"chatweaver/internal/view"
)

// DragThreshold is how far (per axis, canvas units) a node must travel before a press
// counts as a drag instead of a click.
const DragThreshold = 1.0

type nodeDrag struct {
	nodeID         string
	startX, startY float64
	x, y           float64
}

func (d *nodeDrag) moved() bool {
	return math.Abs(d.x-d.startX) > DragThreshold || math.Abs(d.y-d.startY) > DragThreshold
}

// PointerDown starts a press on a node ("" for empty canvas).
func (c *Controller) PointerDown(nodeID string) {
	c.drag = nil
	c.press = true
	if nodeID == "" || c.Panning() {
		return
	}
	_, chat := c.st.Current(c.snap)
	n, ok := chat.Node(nodeID)
	if !ok {
		return
	}
	c.drag = &nodeDrag{nodeID: nodeID, startX: n.X, startY: n.Y, x: n.X, y: n.Y}
}

// PointerMove reports motion in canvas units. While panning it scrolls the viewport;
// during a node drag it only moves the preview.
func (c *Controller) PointerMove(dx, dy float64) {
	if !c.press {
		return
	}
	if c.Panning() {
		c.st.Pan(dx, dy)
		return
	}
	if c.drag != nil {
		c.drag.x += dx
		c.drag.y += dy
	}
}

// PointerUp ends a press. A drag beyond the threshold commits MoveNode; anything else is
// a click on the node or on the canvas.
func (c *Controller) PointerUp() error {
	d := c.drag
	pressed := c.press
	c.drag = nil
	c.press = false
	if !pressed || c.Panning() {
		return nil
	}
	if d == nil {
		c.ClickCanvas()
		return nil
	}
	if !d.moved() {
		return c.ClickNode(d.nodeID)
	}
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("move-node", err)
		return err
	}
	next, err := mutate.MoveNode(c.snap, wsID, chatID, d.nodeID, d.x, d.y)
	return c.apply("move-node", next, err)
}

// DragPreview is the transient position of the node being dragged, or nil.
func (c *Controller) DragPreview() *view.DragOverlay {
	if c.drag == nil || !c.drag.moved() {
		return nil
	}
	return &view.DragOverlay{NodeID: c.drag.nodeID, X: c.drag.x, Y: c.drag.y}
}

// WheelResult tells the front end what to do with a wheel event.
type WheelResult struct {
	// PreventDefault is set when the host must not apply its own zoom.
	PreventDefault bool
}

// Wheel handles a wheel tick. With the zoom modifier held the event is swallowed;
// otherwise it scrolls the canvas vertically.
func (c *Controller) Wheel(ctrl bool, dy float64) WheelResult {
	if ctrl {
		return WheelResult{PreventDefault: true}
	}
	c.st.Pan(0, -dy)
	return WheelResult{}
}
