package cli

import (
	"strings"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/store"
)

// renderNotification prints a visible notification once and dismisses it,
// which is what closing the modal does in a graphical UI.
func (a *App) renderNotification(st store.State) {
	n := st.Notification
	if !n.Display {
		return
	}

	mark := "i"
	switch n.Level {
	case models.LevelSuccess:
		mark = "+"
	case models.LevelError:
		mark = "!"
	}

	var b strings.Builder
	b.WriteString("[" + mark + "] " + n.Header + "\n")
	for _, line := range strings.Split(n.Body, "\n") {
		b.WriteString("    " + line + "\n")
	}
	a.printf("%s", b.String())

	a.store.HideNotification()
}
