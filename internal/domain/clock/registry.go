package clock

// TimedItem is anything whose state evolves with simulated time.
type TimedItem interface {
	// AdvanceOneUnit moves the item forward by exactly one time unit.
	AdvanceOneUnit()
}

// Registry holds every registered timed item.
// Items are never removed once registered.
// Registry is not safe for concurrent use; callers that share it between
// goroutines must guard it together with the state of its items.
type Registry struct {
	// items are kept in registration order.
	items []TimedItem
	// elapsed counts the units advanced since the registry was created.
	elapsed int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return new(Registry)
}

// Register appends the item so that subsequent AdvanceOneUnit calls reach it.
// Nil items are ignored.
func (r *Registry) Register(item TimedItem) {
	if item == nil {
		return
	}

	r.items = append(r.items, item)
}

// AdvanceOneUnit advances every registered item once, in registration order.
func (r *Registry) AdvanceOneUnit() {
	for _, item := range r.items {
		item.AdvanceOneUnit()
	}

	r.elapsed++
}

// Advance calls AdvanceOneUnit n times. Non-positive n is a no-op.
func (r *Registry) Advance(n int) {
	for range n {
		r.AdvanceOneUnit()
	}
}

// Len reports how many items are registered.
func (r *Registry) Len() int {
	return len(r.items)
}

// Elapsed reports how many units the registry has advanced.
func (r *Registry) Elapsed() int {
	return r.elapsed
}
