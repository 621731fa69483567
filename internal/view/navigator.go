package view

// Navigator owns the current fragment. Navigate requests a change; the
// navigator reports changes to the listener registered with OnHashChange.
type Navigator interface {
	Fragment() string
	Navigate(fragment string)
	OnHashChange(fn func(fragment string))
}

// MemoryNavigator keeps the fragment in memory. Like a browser it only
// reports a change when the fragment differs from the current one.
type MemoryNavigator struct {
	fragment string
	history  []string
	listener func(string)
}

// NewMemoryNavigator starts at fragment (without '#').
func NewMemoryNavigator(fragment string) *MemoryNavigator {
	return &MemoryNavigator{fragment: fragment}
}

func (n *MemoryNavigator) Fragment() string {
	return n.fragment
}

func (n *MemoryNavigator) Navigate(fragment string) {
	if fragment == n.fragment {
		return
	}
	n.history = append(n.history, n.fragment)
	n.fragment = fragment
	if n.listener != nil {
		n.listener(fragment)
	}
}

func (n *MemoryNavigator) OnHashChange(fn func(fragment string)) {
	n.listener = fn
}

// History returns the fragments navigated away from, oldest first.
func (n *MemoryNavigator) History() []string {
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

var _ Navigator = (*MemoryNavigator)(nil)
