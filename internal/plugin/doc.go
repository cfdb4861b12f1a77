// Package plugin runs Lua scripts against the resize and selection
// machinery.
//
// Scripts see a global ts module:
//
//	local id = ts.on("adjust_width", function(column, delta)
//	  ts.log("column " .. column .. " moved " .. delta)
//	end)
//
//	local mode, n = ts.selection()
//	local box = ts.mergeable()      -- nil, or {start_row=, start_column=, finish_row=, finish_column=, cells=}
//	local spanned = ts.unmergeable() -- nil, or the number of cells
//	ts.off(id)
//
// Event kinds are adjust_height (row, delta), adjust_width (column, delta)
// and start_adjust (). Only the base, table, string and math libraries are
// opened; file loading functions are removed.
//
// A Host is not safe for concurrent use. Trigger the events it subscribes
// to from the goroutine that calls DoString and DoFile.
package plugin
