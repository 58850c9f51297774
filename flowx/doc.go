// Package flowx provides control-flow and collection-building constructs as
// generic Go functions.
//
// # Deferred cleanup
//
// [Scope] runs a body with a [Guard]; actions registered with [Guard.Defer]
// run in reverse order when the body exits, including on panic:
//
//	flowx.Scope(func(g *flowx.Guard) {
//	    f := open()
//	    g.Defer(func() { f.Close() })
//	    // ...
//	})
//
// # Comprehensions
//
// [Collect], [CollectMap], [Collect2], [Collect3] and [CollectN] build slices
// from one or more ranges, first range outermost:
//
//	flowx.Collect(flowx.SpanInclusive(0, 10), func(x int) bool { return x%2 == 0 && x%3 == 0 }) // [0 6]
//
// # Application
//
// [Apply] and [Each] call a function for every argument; [ApplyCollect],
// [ApplyCollect2] and [ApplyCollect3] return the results.
//
// # Selection
//
// [Select] and [Switch] dispatch on a scrutinee; the fallback given to
// Default is mandatory. [NewTable] builds and validates a branch table from
// data. [IfElse] evaluates exactly one of two branches and [OrDefault]
// unwraps an optional value.
//
// The source-level forms of these constructs are provided by the expand
// package and the flowx command.
package flowx
