package header

// DefaultScrollThreshold is the offset past which the header counts as scrolled.
const DefaultScrollThreshold = 12

// ScrollTracker reports whether the vertical scroll offset is past a threshold.
type ScrollTracker struct {
	threshold int
	past      bool
}

// NewScrollTracker creates a tracker and evaluates the initial offset
// immediately, so a page that starts scrolled is reported as such.
func NewScrollTracker(threshold, initialOffset int) *ScrollTracker {
	if threshold < 0 {
		threshold = DefaultScrollThreshold
	}
	t := &ScrollTracker{threshold: threshold}
	t.Observe(initialOffset)
	return t
}

// Observe records a scroll offset and returns the new state.
func (t *ScrollTracker) Observe(offset int) bool {
	t.past = offset > t.threshold
	return t.past
}

// PastThreshold reports the last evaluated state.
func (t *ScrollTracker) PastThreshold() bool {
	return t.past
}

// Threshold returns the configured threshold.
func (t *ScrollTracker) Threshold() int {
	return t.threshold
}

// Attach subscribes the tracker to a feed of scroll offsets.
func (t *ScrollTracker) Attach(scroll *Feed[int]) (detach func()) {
	return scroll.Subscribe(func(offset int) { t.Observe(offset) })
}
