// Package script lets users decide which jump list entries supersede each
// other with a Lua function.
//
// The script must define a global can_replace function. It receives the
// incoming and the existing location as tables with path, line and column
// fields (1-indexed) and returns true when the existing entry should be
// dropped:
//
//	function can_replace(incoming, existing)
//	    return incoming.path == existing.path
//	        and math.abs(incoming.line - existing.line) <= 5
//	end
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. print is routed to the logger. Every call is
// bounded by an execution timeout; a failing call is logged and treated
// as "keep the existing entry".
package script
