package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/store"
)

// StartSessionWatcher checks the token every interval and sends the user
// back to Login when it expires while Home is shown. It returns when ctx is
// done.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context) {
	if a.currentView() != store.RouteHome || a.store.IsAuthenticated(ctx) {
		return
	}
	a.logger.Info(ctx, "session expired")
	a.store.ShowNotification(models.LevelInfo, "Session expired", "Please log in again")
	a.Push(store.RouteLogin)
}
