package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/export"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/plugin"
	"github.com/dshills/tablestorm/internal/pointer"
	"github.com/dshills/tablestorm/internal/resize"
	"github.com/dshills/tablestorm/internal/resize/bars"
	"github.com/dshills/tablestorm/internal/selection"
	"github.com/dshills/tablestorm/internal/table/adjust"
	"github.com/dshills/tablestorm/internal/table/layout"
)

// DefaultExportPath is where x writes the workbook.
const DefaultExportPath = "table.xlsx"

// tableGap separates stacked tables, in document pixels.
const tableGap = 16

// Options configures an App.
type Options struct {
	Config     *config.Config
	Logger     *slog.Logger
	ExportPath string
}

// App is one editing session over a parsed document.
type App struct {
	screen tcell.Screen
	cfg    *config.Config
	logger *slog.Logger

	doc    *html.Node
	view   *html.Node
	tables []*html.Node
	wire   bars.Wire
	styles bars.Styles

	hub      *pointer.Hub
	layout   *layout.Layout
	manager  *resize.Manager
	adjusted *event.Group
	exporter *export.Exporter
	plugin   *plugin.Host

	theme      Theme
	exportPath string
	buttons    tcell.ButtonMask
	status     string
	quit       bool
}

// New prepares doc for editing on screen. The first contenteditable="true"
// element is the editable view; without one the body is made editable.
// Bars are drawn into a container appended to the body.
func New(screen tcell.Screen, doc *html.Node, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	body, ok := dom.QueryOne(doc, "//body")
	if !ok {
		return nil, fmt.Errorf("%w: no body", ErrNoTable)
	}
	view, ok := dom.QueryOne(body, ".//*[@contenteditable='true' or @contenteditable='']")
	if !ok {
		view = body
		dom.SetAttr(view, "contenteditable", "true")
	}
	tables := dom.QueryAll(view, ".//table")
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	stack(tables, layout.New(cfg.Layout()))

	ui := dom.NewElement("div")
	dom.AddClass(ui, cfg.ClassPrefix+"-ui")
	body.AppendChild(ui)

	a := &App{
		screen:     screen,
		cfg:        cfg,
		logger:     logger,
		doc:        doc,
		view:       view,
		tables:     tables,
		wire:       bars.Wire{Parent: ui, View: view},
		styles:     cfg.Styles(),
		hub:        pointer.NewHub(),
		layout:     layout.New(cfg.Layout()),
		theme:      NewTheme(cfg),
		exportPath: opts.ExportPath,
	}
	if a.exportPath == "" {
		a.exportPath = DefaultExportPath
	}

	a.manager = resize.New(a.wire, a.hub, a.layout,
		resize.WithLogger(logger.With("component", "resize")),
		resize.WithStyles(a.styles),
		resize.WithDraggingOpacity(cfg.Opacity()))
	a.adjusted = adjust.New(a.layout, adjust.Limits{
		MinRowHeight:   cfg.MinRowHeight,
		MinColumnWidth: cfg.MinColumnWidth,
	}, adjust.WithLogger(logger.With("component", "adjust"))).Bind(a.manager.Events())
	a.exporter = export.New(a.layout, export.WithLogger(logger.With("component", "export")))

	if cfg.PluginScript != "" {
		a.plugin = plugin.New(plugin.Context{
			Events:    a.manager.Events(),
			Selection: a.currentSelection,
			Ephemera:  cfg.Ephemera(),
		}, plugin.WithLogger(logger.With("component", "plugin")))
		if err := a.plugin.DoFile(cfg.PluginScript); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// stack places tables without an explicit position one under another.
func stack(tables []*html.Node, l *layout.Layout) {
	bottom := 0.0
	for i, t := range tables {
		_, hasTop := dom.PxStyleOK(t, "top")
		if i > 0 && !hasTop {
			dom.SetPxStyle(t, "top", bottom+tableGap)
		}
		box := l.TableBox(t)
		bottom = max(bottom, box.Y+box.Height)
	}
}

// Manager returns the resize manager.
func (a *App) Manager() *resize.Manager {
	return a.manager
}

// Status returns the status line message.
func (a *App) Status() string {
	return a.status
}

// Table returns the table commands act on: the hovered one, else the
// first.
func (a *App) Table() *html.Node {
	if t, ok := a.manager.Hovered(); ok {
		return t
	}
	return a.tables[0]
}

func (a *App) currentSelection() (*html.Node, selection.Snapshot) {
	t := a.Table()
	return t, selection.FromTable(t, a.cfg.Ephemera())
}

// Reload queues cfg for the event loop. It is safe to call from any
// goroutine.
func (a *App) Reload(cfg *config.Config) {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(cfg)) // queue full drops the reload
}

// applyConfig takes the settings that can change mid-session.
func (a *App) applyConfig(cfg *config.Config) {
	a.cfg.BarColor = cfg.BarColor
	a.cfg.BarDraggingColor = cfg.BarDraggingColor
	a.cfg.DraggingOpacity = cfg.DraggingOpacity
	a.cfg.CellWidthPx = cfg.CellWidthPx
	a.cfg.CellHeightPx = cfg.CellHeightPx
	a.theme = NewTheme(a.cfg)
	a.status = "configuration reloaded"
	a.logger.Info("configuration reloaded")
}

// Run draws and handles events until the user quits or ctx is done.
// The screen must already be initialised.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	defer a.screen.DisableMouse()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-done:
		}
	}()

	a.Draw()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
		a.Draw()
	}
	return nil
}

// Close releases the manager, the adjuster subscriptions and the plugin,
// and removes the bar container from the document.
func (a *App) Close() {
	if a.plugin != nil {
		a.plugin.Close()
	}
	a.adjusted.CancelAll()
	a.manager.Destroy()
	dom.Detach(a.wire.Parent)
}
