package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/wcpredict/internal/client/store"
)

// Push switches the REPL view. Entering Home schedules a match load, which
// runs before the next prompt.
func (a *App) Push(route store.Route) {
	a.mu.Lock()
	changed := a.view != route
	a.view = route
	if route == store.RouteHome {
		a.loadPending = true
	}
	a.mu.Unlock()

	if changed {
		a.printf("-> %s\n", route)
	}
}

// settle performs the work a view does when it is entered.
func (a *App) settle(ctx context.Context) {
	a.mu.Lock()
	pending := a.loadPending && a.view == store.RouteHome
	a.loadPending = false
	a.mu.Unlock()

	if pending {
		if err := a.Matches(ctx); err != nil && !errors.Is(err, store.ErrSuperseded) {
			a.logger.Debug(ctx, "home view load failed", "error", err)
		}
	}
}
