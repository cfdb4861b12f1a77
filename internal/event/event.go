package event

import "github.com/google/uuid"

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is the handle returned by Bind.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription still receives events.
	IsActive() bool

	// Cancel detaches the handler. Cancelling twice is a no-op.
	Cancel()
}

// Event is a typed synchronous notification channel.
// The zero value is ready to use.
type Event[T any] struct {
	subs []*subscription[T]
}

type subscription[T any] struct {
	id      string
	handler func(T)
	state   SubscriptionState
	owner   *Event[T]
}

func (s *subscription[T]) ID() string               { return s.id }
func (s *subscription[T]) State() SubscriptionState { return s.state }
func (s *subscription[T]) IsActive() bool           { return s.state == SubscriptionStateActive }

func (s *subscription[T]) Cancel() {
	if s.state == SubscriptionStateCancelled {
		return
	}
	s.state = SubscriptionStateCancelled
	s.owner.remove(s)
}

// Bind registers handler and returns its subscription.
// A nil handler yields an already-cancelled subscription.
func (e *Event[T]) Bind(handler func(T)) Subscription {
	s := &subscription[T]{
		id:      uuid.NewString(),
		handler: handler,
		owner:   e,
	}
	if handler == nil {
		s.state = SubscriptionStateCancelled
		return s
	}
	e.subs = append(e.subs, s)
	return s
}

// Unbind cancels the subscription with the given ID.
// It reports whether a subscription was found.
func (e *Event[T]) Unbind(id string) bool {
	for _, s := range e.subs {
		if s.id == id {
			s.Cancel()
			return true
		}
	}
	return false
}

// Trigger delivers v to every active subscription in bind order.
// Handlers bound or cancelled during delivery take effect on the next Trigger.
func (e *Event[T]) Trigger(v T) {
	snapshot := make([]*subscription[T], len(e.subs))
	copy(snapshot, e.subs)
	for _, s := range snapshot {
		if s.IsActive() {
			s.handler(v)
		}
	}
}

// Len returns the number of active subscriptions.
func (e *Event[T]) Len() int {
	return len(e.subs)
}

func (e *Event[T]) remove(target *subscription[T]) {
	for i, s := range e.subs {
		if s == target {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

// Group collects subscriptions for collective cancellation.
type Group struct {
	subs []Subscription
}

// Add records subs in the group.
func (g *Group) Add(subs ...Subscription) {
	g.subs = append(g.subs, subs...)
}

// Len returns the number of recorded subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}

// CancelAll cancels every recorded subscription and empties the group.
func (g *Group) CancelAll() {
	for _, s := range g.subs {
		s.Cancel()
	}
	g.subs = nil
}
