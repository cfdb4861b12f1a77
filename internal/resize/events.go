package resize

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/event"
)

// AdjustHeight asks the table layer to grow row Row by Delta pixels.
type AdjustHeight struct {
	Table *html.Node
	Delta float64
	Row   int
}

// AdjustWidth asks the table layer to grow column Column by Delta pixels.
type AdjustWidth struct {
	Table  *html.Node
	Delta  float64
	Column int
}

// StartAdjust announces that a bar has been pressed.
type StartAdjust struct{}

// Events are the notifications a Manager publishes.
type Events struct {
	AdjustHeight event.Event[AdjustHeight]
	AdjustWidth  event.Event[AdjustWidth]
	StartAdjust  event.Event[StartAdjust]
}
