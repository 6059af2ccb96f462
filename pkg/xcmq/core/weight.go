package core

// weightTracker implements the Dispatcher's two-accumulator budget
// decay: weight_used tracks total consumption,
// weight_available tracks how much of the budget has unlocked so far.
// Early channels in a shuffle see a conservative share; later channels
// (and a channel's second look) see progressively more, up to the full
// budget.
type weightTracker struct {
	budget    uint64
	decay     uint64
	threshold uint64

	used      uint64
	available uint64
}

func newWeightTracker(budget, decay, threshold uint64) *weightTracker {
	return &weightTracker{budget: budget, decay: decay, threshold: threshold}
}

// unlock grows the available accumulator one decay step toward
// budget, snapping to budget once within threshold of it.
func (w *weightTracker) unlock() {
	if w.available >= w.budget {
		return
	}
	w.available += (w.budget - w.available) / w.decay
	if w.budget-w.available <= w.threshold {
		w.available = w.budget
	}
}

// residual is weight_budget - weight_used, the Dispatcher's loop
// termination signal.
func (w *weightTracker) residual() uint64 {
	if w.used >= w.budget {
		return 0
	}
	return w.budget - w.used
}

// cap is weight_available - weight_used, the cap offered to the next
// page processed.
func (w *weightTracker) cap() uint64 {
	if w.available <= w.used {
		return 0
	}
	return w.available - w.used
}

func (w *weightTracker) consume(amount uint64) {
	w.used += amount
}
