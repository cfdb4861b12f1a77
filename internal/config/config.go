package config

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/resize/bars"
	"github.com/dshills/tablestorm/internal/selection"
	"github.com/dshills/tablestorm/internal/table/layout"
)

// Config holds every tablestorm setting.
type Config struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`

	// Bars.
	ClassPrefix      string  `toml:"class_prefix" yaml:"class_prefix"`
	BarThickness     float64 `toml:"bar_thickness" yaml:"bar_thickness"`
	DraggingOpacity  float64 `toml:"dragging_opacity" yaml:"dragging_opacity"`
	BarColor         string  `toml:"bar_color" yaml:"bar_color"`
	BarDraggingColor string  `toml:"bar_dragging_color" yaml:"bar_dragging_color"`

	// Geometry, in document pixels.
	MinRowHeight       float64 `toml:"min_row_height" yaml:"min_row_height"`
	MinColumnWidth     float64 `toml:"min_column_width" yaml:"min_column_width"`
	DefaultRowHeight   float64 `toml:"default_row_height" yaml:"default_row_height"`
	DefaultColumnWidth float64 `toml:"default_column_width" yaml:"default_column_width"`

	// Size of one terminal cell in document pixels.
	CellWidthPx  int `toml:"cell_width_px" yaml:"cell_width_px"`
	CellHeightPx int `toml:"cell_height_px" yaml:"cell_height_px"`

	// Selection marker attributes.
	FirstSelected string `toml:"first_selected" yaml:"first_selected"`
	LastSelected  string `toml:"last_selected" yaml:"last_selected"`
	SelectedAttr  string `toml:"selected_attr" yaml:"selected_attr"`

	// RowClassList is the JSON class list offered by the row dialog.
	RowClassList string `toml:"row_class_list" yaml:"row_class_list"`

	// PluginScript is an optional Lua script loaded at startup.
	PluginScript string `toml:"plugin_script" yaml:"plugin_script"`
}

// Default returns the built-in settings.
func Default() *Config {
	s := bars.DefaultStyles()
	l := layout.DefaultOptions()
	e := selection.DefaultEphemera()
	return &Config{
		LogLevel:           "info",
		LogFormat:          string(logging.FormatText),
		ClassPrefix:        s.Prefix,
		BarThickness:       s.Thickness,
		DraggingOpacity:    0.2,
		BarColor:           "#4a90d9",
		BarDraggingColor:   "#e8a33d",
		MinRowHeight:       10,
		MinColumnWidth:     10,
		DefaultRowHeight:   l.DefaultRowHeight,
		DefaultColumnWidth: l.DefaultColumnWidth,
		CellWidthPx:        8,
		CellHeightPx:       16,
		FirstSelected:      e.FirstSelected,
		LastSelected:       e.LastSelected,
		SelectedAttr:       e.Selected,
	}
}

// Validate reports every invalid setting. The returned error matches
// ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	fail := func(key string, value any, msg string) {
		errs = append(errs, &ValidationError{Key: key, Value: value, Message: msg})
	}

	if c.ClassPrefix == "" {
		fail("class_prefix", c.ClassPrefix, "must not be empty")
	}
	if c.BarThickness <= 0 {
		fail("bar_thickness", c.BarThickness, "must be positive")
	}
	if c.DraggingOpacity < 0 || c.DraggingOpacity > 1 {
		fail("dragging_opacity", c.DraggingOpacity, "must be between 0 and 1")
	}
	for key, v := range map[string]string{
		"bar_color":          c.BarColor,
		"bar_dragging_color": c.BarDraggingColor,
	} {
		if _, err := colorful.Hex(v); err != nil {
			fail(key, v, "must be a hex colour")
		}
	}
	for key, v := range map[string]float64{
		"min_row_height":   c.MinRowHeight,
		"min_column_width": c.MinColumnWidth,
	} {
		if v < 0 {
			fail(key, v, "must not be negative")
		}
	}
	for key, v := range map[string]float64{
		"default_row_height":   c.DefaultRowHeight,
		"default_column_width": c.DefaultColumnWidth,
	} {
		if v <= 0 {
			fail(key, v, "must be positive")
		}
	}
	if c.CellWidthPx <= 0 {
		fail("cell_width_px", c.CellWidthPx, "must be positive")
	}
	if c.CellHeightPx <= 0 {
		fail("cell_height_px", c.CellHeightPx, "must be positive")
	}
	for key, v := range map[string]string{
		"first_selected": c.FirstSelected,
		"last_selected":  c.LastSelected,
		"selected_attr":  c.SelectedAttr,
	} {
		if v == "" {
			fail(key, v, "must not be empty")
			continue
		}
		if err := dom.ValidateQuery(".//*[@" + v + "]"); err != nil {
			fail(key, v, "is not a valid attribute name")
		}
	}
	if c.RowClassList != "" && !gjson.Valid(c.RowClassList) {
		fail("row_class_list", c.RowClassList, "must be valid JSON")
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Logging returns the logger configuration; output stays at its default.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level()
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}

// Styles returns the bar styles.
func (c *Config) Styles() bars.Styles {
	return bars.Styles{Prefix: c.ClassPrefix, Thickness: c.BarThickness}
}

// Opacity returns the dragging opacity as a CSS value.
func (c *Config) Opacity() string {
	return strconv.FormatFloat(c.DraggingOpacity, 'f', -1, 64)
}

// Layout returns the layout defaults.
func (c *Config) Layout() layout.Options {
	return layout.Options{
		DefaultRowHeight:   c.DefaultRowHeight,
		DefaultColumnWidth: c.DefaultColumnWidth,
	}
}

// Ephemera returns the selection marker attributes.
func (c *Config) Ephemera() selection.Ephemera {
	return selection.Ephemera{
		Selected:      c.SelectedAttr,
		FirstSelected: c.FirstSelected,
		LastSelected:  c.LastSelected,
	}
}
