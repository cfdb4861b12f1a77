package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/resize"
	"github.com/dshills/tablestorm/internal/selection"
)

// DefaultTimeout bounds every script run and callback.
const DefaultTimeout = 5 * time.Second

// Event kinds accepted by ts.on.
const (
	KindAdjustHeight = "adjust_height"
	KindAdjustWidth  = "adjust_width"
	KindStartAdjust  = "start_adjust"
)

// SelectionFunc returns the table being edited and its current selection.
type SelectionFunc func() (*html.Node, selection.Snapshot)

// Context is what scripts can reach.
type Context struct {
	Events    *resize.Events
	Selection SelectionFunc
	Ephemera  selection.Ephemera
}

// Host owns one Lua state.
type Host struct {
	mu      sync.Mutex
	L       *lua.LState
	ctx     Context
	logger  *slog.Logger
	timeout time.Duration

	subs   map[string]event.Subscription
	closed bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used by ts.log and for callback failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTimeout sets the run time limit of scripts and callbacks.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// New creates a host with the ts module installed.
func New(ctx Context, opts ...Option) *Host {
	h := &Host{
		ctx:     ctx,
		logger:  logging.Discard(),
		timeout: DefaultTimeout,
		subs:    make(map[string]event.Subscription),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ctx.Ephemera == (selection.Ephemera{}) {
		h.ctx.Ephemera = selection.DefaultEphemera()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	h.L = L
	h.register()
	return h
}

func (h *Host) register() {
	mod := h.L.NewTable()
	h.L.SetFuncs(mod, map[string]lua.LGFunction{
		"on":          h.on,
		"off":         h.off,
		"log":         h.log,
		"selection":   h.selection,
		"mergeable":   h.mergeable,
		"unmergeable": h.unmergeable,
	})
	h.L.SetGlobal("ts", mod)
}

// DoString runs code as a chunk called name.
func (h *Host) DoString(name, code string) error {
	return h.run(name, func() error { return h.L.DoString(code) })
}

// DoFile runs the script at path.
func (h *Host) DoFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &ScriptError{Script: path, Err: err}
	}
	return h.run(path, func() error { return h.L.DoFile(path) })
}

func (h *Host) run(name string, fn func() error) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = &ScriptError{Script: name, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &ScriptError{Script: name, Err: err}
	}
	return nil
}

// call invokes a Lua callback; failures are logged, not returned.
func (h *Host) call(id string, fn *lua.LFunction, args ...lua.LValue) {
	err := h.run("callback "+id, func() error {
		return h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
	if err != nil {
		h.logger.Warn("plugin callback failed", "subscription", id, "error", err)
	}
}

// Len returns the number of live subscriptions.
func (h *Host) Len() int {
	return len(h.subs)
}

// Close cancels every subscription and closes the Lua state. It is safe
// to call more than once.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		sub.Cancel()
		delete(h.subs, id)
	}
	h.L.Close()
}

// ts.on(kind, fn) -> id
func (h *Host) on(L *lua.LState) int {
	kind := L.CheckString(1)
	fn := L.CheckFunction(2)
	if h.ctx.Events == nil {
		L.RaiseError("on: no events available")
		return 0
	}

	id := uuid.NewString()
	var sub event.Subscription
	switch kind {
	case KindAdjustHeight:
		sub = h.ctx.Events.AdjustHeight.Bind(func(e resize.AdjustHeight) {
			h.call(id, fn, lua.LNumber(e.Row), lua.LNumber(e.Delta))
		})
	case KindAdjustWidth:
		sub = h.ctx.Events.AdjustWidth.Bind(func(e resize.AdjustWidth) {
			h.call(id, fn, lua.LNumber(e.Column), lua.LNumber(e.Delta))
		})
	case KindStartAdjust:
		sub = h.ctx.Events.StartAdjust.Bind(func(resize.StartAdjust) {
			h.call(id, fn)
		})
	default:
		L.ArgError(1, fmt.Sprintf("%v %q", ErrUnknownEvent, kind))
		return 0
	}
	h.subs[id] = sub
	L.Push(lua.LString(id))
	return 1
}

// ts.off(id) -> bool
func (h *Host) off(L *lua.LState) int {
	id := L.CheckString(1)
	sub, ok := h.subs[id]
	if ok {
		sub.Cancel()
		delete(h.subs, id)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// ts.log(msg)
func (h *Host) log(L *lua.LState) int {
	h.logger.Info(L.CheckString(1), "source", "plugin")
	return 0
}

func (h *Host) current() (*html.Node, selection.Snapshot) {
	if h.ctx.Selection == nil {
		return nil, selection.None()
	}
	return h.ctx.Selection()
}

// ts.selection() -> mode, n
func (h *Host) selection(L *lua.LState) int {
	_, snap := h.current()
	L.Push(lua.LString(snap.Mode().String()))
	L.Push(lua.LNumber(len(selection.Selection(snap))))
	return 2
}

// ts.mergeable() -> box | nil
func (h *Host) mergeable(L *lua.LState) int {
	table, snap := h.current()
	if table == nil {
		L.Push(lua.LNil)
		return 1
	}
	m, ok := selection.Mergeable(table, snap, h.ctx.Ephemera)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	box := L.NewTable()
	box.RawSetString("start_row", lua.LNumber(m.Bounds.StartRow))
	box.RawSetString("start_column", lua.LNumber(m.Bounds.StartColumn))
	box.RawSetString("finish_row", lua.LNumber(m.Bounds.FinishRow))
	box.RawSetString("finish_column", lua.LNumber(m.Bounds.FinishColumn))
	box.RawSetString("cells", lua.LNumber(len(m.Cells)))
	L.Push(box)
	return 1
}

// ts.unmergeable() -> n | nil
func (h *Host) unmergeable(L *lua.LState) int {
	_, snap := h.current()
	cells, ok := selection.Unmergeable(snap)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(len(cells)))
	return 1
}
