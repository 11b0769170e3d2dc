package browse

import (
	"sync"
	"time"
)

const (
	// TooltipCloseDelay is how long a tooltip stays after the pointer leaves.
	TooltipCloseDelay = 3 * time.Second
	// ClusterCollapseDelay is how long an expanded cluster stays open.
	ClusterCollapseDelay = 3 * time.Second
)

// DelayedAction runs a callback after a delay unless it is rescheduled or
// cancelled first. At most one callback is pending at a time.
type DelayedAction struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDelayedAction creates an action that fires delay after Schedule.
func NewDelayedAction(delay time.Duration) *DelayedAction {
	return &DelayedAction{delay: delay}
}

// Schedule replaces any pending callback with fn. fn runs with the action's
// lock held, so once Cancel or Schedule returns a superseded fn has either
// finished or will never run. fn must not call back into d.
func (d *DelayedAction) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.gen != gen {
			// Superseded after the timer had already fired.
			return
		}
		d.timer = nil
		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (d *DelayedAction) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending reports whether a callback is waiting to fire.
func (d *DelayedAction) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *DelayedAction) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// scheduler is the part of DelayedAction the hover trackers use.
type scheduler interface {
	Schedule(fn func())
	Cancel() bool
}

// Tooltip tracks the hover tooltip of one marker: it opens on hover and
// closes a while after the pointer leaves, unless the pointer comes back.
type Tooltip struct {
	mu     sync.Mutex
	open   bool
	epoch  uint64
	closer scheduler
}

// NewTooltip creates a tooltip that closes delay after the pointer leaves.
func NewTooltip(delay time.Duration) *Tooltip {
	return &Tooltip{closer: NewDelayedAction(delay)}
}

// Enter opens the tooltip. A close scheduled by an earlier Leave no longer
// applies, even if its timer has already fired.
func (t *Tooltip) Enter() {
	t.closer.Cancel()
	t.mu.Lock()
	t.open = true
	t.epoch++
	t.mu.Unlock()
}

// Leave schedules the tooltip to close.
func (t *Tooltip) Leave() {
	t.mu.Lock()
	epoch := t.epoch
	t.mu.Unlock()
	t.closer.Schedule(func() {
		t.mu.Lock()
		if t.epoch == epoch {
			t.open = false
		}
		t.mu.Unlock()
	})
}

// Open reports whether the tooltip is showing.
func (t *Tooltip) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Clusters tracks which marker cluster is expanded. Hovering a cluster
// expands it and collapses any other; leaving it collapses it after a delay;
// zooming or dragging the map collapses it at once.
type Clusters struct {
	mu       sync.Mutex
	expanded string
	epoch    uint64
	collapse scheduler
}

// NewClusters creates a tracker that collapses delay after the pointer leaves.
func NewClusters(delay time.Duration) *Clusters {
	return &Clusters{collapse: NewDelayedAction(delay)}
}

// Hover expands the cluster id.
func (c *Clusters) Hover(id string) {
	c.collapse.Cancel()
	c.mu.Lock()
	c.expanded = id
	c.epoch++
	c.mu.Unlock()
}

// Leave collapses cluster id after the delay unless another interaction
// happens first.
func (c *Clusters) Leave(id string) {
	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()
	c.collapse.Schedule(func() {
		c.mu.Lock()
		if c.epoch == epoch && c.expanded == id {
			c.expanded = ""
		}
		c.mu.Unlock()
	})
}

// Collapse closes the expanded cluster immediately.
func (c *Clusters) Collapse() {
	c.collapse.Cancel()
	c.mu.Lock()
	c.expanded = ""
	c.epoch++
	c.mu.Unlock()
}

// Expanded returns the expanded cluster id, or "".
func (c *Clusters) Expanded() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}
