// Package resize implements the table resize bar manager.
//
// The Manager watches pointer hover inside an editable view and keeps a set
// of resize bars (see package bars) positioned on the row and column edges of
// the table under the pointer. Pressing a bar starts a drag session; the bar
// follows the pointer, and on release the Manager publishes the distance
// travelled as an AdjustHeight or AdjustWidth notification and redraws the
// bars from the table's committed geometry.
//
// # Hover states
//
// The manager is either Idle or HoveringTable. An Over event whose target
// lies in an editable table moves it to HoveringTable for that table; an
// Over event on anything else in the document body, or an explicit Leave,
// moves it back to Idle and removes the bars. Hover input is ignored while a
// bar is being dragged.
//
// # Notifications
//
//	m := resize.New(wire, hub, layout.New(layout.DefaultOptions()))
//	defer m.Destroy()
//
//	sub := m.Events().AdjustWidth.Bind(func(e resize.AdjustWidth) {
//	    widenColumn(e.Table, e.Column, e.Delta)
//	})
//	defer sub.Cancel()
//
// StartAdjust fires when a bar is pressed, before any geometry changes.
//
// A Manager is driven from a single goroutine and is not safe for
// concurrent use.
package resize
