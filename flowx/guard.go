package flowx

// Guard is a deferred-action registry owned by a single scope.
//
// Actions run in reverse registration order, each exactly once, when the
// guard is drained. A Guard must not be shared between goroutines.
type Guard struct {
	actions []func()
}

// Defer registers an action to run when the guard is drained.
// Nil actions are ignored.
func (g *Guard) Defer(action func()) {
	if action == nil {
		return
	}

	g.actions = append(g.actions, action)
}

// Len returns the number of actions still pending.
func (g *Guard) Len() int {
	return len(g.actions)
}

// Drain runs every pending action, most recently registered first.
//
// An action is removed from the registry before it runs, so re-entrant
// drains never run it twice. If an action panics, the remaining actions are
// still attempted and the panic continues once they are done.
func (g *Guard) Drain() {
	for len(g.actions) > 0 {
		last := len(g.actions) - 1
		action := g.actions[last]
		g.actions[last] = nil
		g.actions = g.actions[:last]

		g.run(action)
	}
}

func (g *Guard) run(action func()) {
	completed := false

	defer func() {
		if !completed {
			// Keep unwinding the remaining actions while the panic propagates.
			g.Drain()
		}
	}()

	action()
	completed = true
}

// Scope runs body with a fresh [Guard] and drains it when body exits,
// whether it returns normally, panics or calls [runtime.Goexit].
func Scope(body func(g *Guard)) {
	var g Guard
	defer g.Drain()

	body(&g)
}

// ScopeErr is like [Scope], but returns the error produced by body.
func ScopeErr(body func(g *Guard) error) error {
	var g Guard
	defer g.Drain()

	return body(&g)
}
