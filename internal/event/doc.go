// Package event provides the typed notification channels the resize
// manager publishes through.
//
// Each Event[T] is a synchronous publish/subscribe channel. Binding a
// handler returns a Subscription whose Cancel method detaches it; handles
// are typically collected in a Group and cancelled together on teardown:
//
//	var subs event.Group
//	subs.Add(manager.Events().AdjustWidth.Bind(func(e resize.AdjustWidth) {
//	    applyWidth(e.Table, e.Column, e.Delta)
//	}))
//	defer subs.CancelAll()
//
// Delivery happens on the goroutine that calls Trigger, in bind order.
// Neither Event nor Group is safe for concurrent use.
package event
