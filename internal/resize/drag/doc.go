// Package drag turns a pointer press-move-release gesture into a stream of
// relative motion events applied to a single drag subject.
//
// A Mutation holds the subject (zero or one element) and republishes each
// motion delta together with that subject. A Dragger owns the gesture: Go
// captures move and release events from a pointer.Source, converts the
// absolute positions into deltas for its Mutator, and publishes Stop when
// the button is released.
//
//	mutation := drag.NewMutation()
//	dragger := drag.NewDragger(source, mutation)
//	mutation.Drag.Bind(func(e drag.MoveEvent) { reposition(e.Target, e.Delta) })
//	dragger.Stop.Bind(func(struct{}) { commit() })
//
//	mutation.Assign(bar)
//	dragger.Go(container, pressPos)
//
// Move and release listeners exist only while a gesture is active; every
// bind made by Go is released by the matching release or by Destroy.
package drag
