package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tablestorm/internal/config"
)

// background is the colour bars are blended against while dragged.
var background = colorful.Color{R: 0.11, G: 0.11, B: 0.11}

// Theme holds the resolved drawing styles.
type Theme struct {
	Cell     tcell.Style
	Header   tcell.Style
	Selected tcell.Style
	Bar      tcell.Style
	Dragging tcell.Style
	Status   tcell.Style
}

// NewTheme resolves the colours of cfg. Invalid colours fall back to the
// defaults.
func NewTheme(cfg *config.Config) Theme {
	d := config.Default()
	bar := hexOr(cfg.BarColor, d.BarColor)
	drag := hexOr(cfg.BarDraggingColor, d.BarDraggingColor)
	blended := background.BlendRgb(drag, cfg.DraggingOpacity).Clamped()

	return Theme{
		Cell:     tcell.StyleDefault,
		Header:   tcell.StyleDefault.Bold(true),
		Selected: tcell.StyleDefault.Reverse(true),
		Bar:      tcell.StyleDefault.Foreground(rgb(bar)),
		Dragging: tcell.StyleDefault.Foreground(rgb(blended)).Background(rgb(background)),
		Status:   tcell.StyleDefault.Reverse(true),
	}
}

func hexOr(s, fallback string) colorful.Color {
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
