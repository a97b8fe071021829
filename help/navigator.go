package help

import (
	"fmt"
	"sync"
)

// Action is a navigation request coming from a reaction or a component
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionJump
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionJump:
		return "jump"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// CloseReason tells why a navigator was closed
type CloseReason int

const (
	// CloseRequested is an explicit close by the viewer
	CloseRequested CloseReason = iota + 1
	// CloseTimeout is the inactivity window running out
	CloseTimeout
	// CloseDisposed is shutdown or context cancellation
	CloseDisposed
)

func (r CloseReason) String() string {
	switch r {
	case CloseRequested:
		return "requested"
	case CloseTimeout:
		return "timeout"
	case CloseDisposed:
		return "disposed"
	default:
		return "open"
	}
}

// Navigator tracks the current page of a display. It is either active on a
// page in [0, PageCount-1] or closed; once closed every transition is a no-op.
type Navigator struct {
	mu     sync.Mutex
	index  int
	count  int
	wrap   bool
	closed CloseReason
}

// NewNavigator starts on the first page. With wrap set, moving past either
// end continues from the other end; otherwise the index is clamped.
func NewNavigator(pageCount int, wrap bool) (*Navigator, error) {
	if pageCount < 1 {
		return nil, fmt.Errorf("%w: page count %d", ErrInvalidOptions, pageCount)
	}
	return &Navigator{count: pageCount, wrap: wrap}, nil
}

// Index returns the current page
func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// PageCount returns the number of pages
func (n *Navigator) PageCount() int {
	return n.count
}

// Closed reports whether the navigator has been closed
func (n *Navigator) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed != 0
}

// Reason returns why the navigator was closed, zero while it is active
func (n *Navigator) Reason() CloseReason {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

// Next moves one page forward. It reports whether the transition was
// accepted, which is false only when closed.
func (n *Navigator) Next() bool {
	return n.move(1)
}

// Prev moves one page back
func (n *Navigator) Prev() bool {
	return n.move(-1)
}

func (n *Navigator) move(step int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed != 0 {
		return false
	}
	next := n.index + step
	switch {
	case next >= n.count && n.wrap:
		next = 0
	case next >= n.count:
		next = n.count - 1
	case next < 0 && n.wrap:
		next = n.count - 1
	case next < 0:
		next = 0
	}
	n.index = next
	return true
}

// Jump moves to page i. Out of range pages are refused.
func (n *Navigator) Jump(i int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed != 0 || i < 0 || i >= n.count {
		return false
	}
	n.index = i
	return true
}

// Close moves to the closed state. Only the first call is accepted.
func (n *Navigator) Close(reason CloseReason) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed != 0 {
		return false
	}
	n.closed = reason
	return true
}

// Apply runs an action. page is only used by ActionJump.
func (n *Navigator) Apply(action Action, page int) bool {
	switch action {
	case ActionNext:
		return n.Next()
	case ActionPrev:
		return n.Prev()
	case ActionJump:
		return n.Jump(page)
	case ActionClose:
		return n.Close(CloseRequested)
	default:
		return false
	}
}
