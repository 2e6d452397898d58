package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/wcpredict/internal/client/auth"
	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/store"
	"github.com/dmitrijs2005/wcpredict/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin(ctx context.Context) (string, error) {
	if !a.isLoggedIn(ctx) {
		a.println("Please log in first")
		return "", errNotLoggedIn
	}
	return a.store.Token(ctx), nil
}

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	return common.WipedString(pw), nil
}

// Login prompts for credentials and logs in. On success the store
// navigates to Home, which loads the matches.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password")
	if err != nil {
		return err
	}
	return a.store.Login(ctx, username, password)
}

// Logout ends the session and returns to the Login view, even when the
// server could not be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.store.Logout(ctx)
	a.Push(store.RouteLogin)
	return err
}

// Matches loads the match list and prints it.
func (a *App) Matches(ctx context.Context) error {
	token, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	if err := a.store.LoadMatchesWithPredictions(ctx, token); err != nil {
		return err
	}
	a.printMatches(a.store.Matches())
	return nil
}

func (a *App) printMatches(matches []models.Match) {
	if len(matches) == 0 {
		a.println("No matches")
		return
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KICK-OFF\tGROUP\tDETAILS")
	for _, m := range matches {
		details := make([]string, 0, len(m.Extra))
		for _, k := range m.ExtraKeys() {
			details = append(details, k+"="+m.Field(k))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.LocalMatchTime, m.Group, strings.Join(details, " "))
	}
	_ = tw.Flush()
}

// Whoami prints the profile of the logged-in user.
func (a *App) Whoami(ctx context.Context) error {
	if _, err := a.requireLogin(ctx); err != nil {
		return err
	}
	user := a.store.UserData()
	if len(user) == 0 {
		a.println("No profile data")
		return nil
	}

	keys := make([]string, 0, len(user))
	for k := range user {
		if k == models.UserFieldPassword {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("%s: %s\n", k, user.String(k))
	}
	return nil
}

func (a *App) promptUsername(ctx context.Context) (token, username string, err error) {
	if token, err = a.requireLogin(ctx); err != nil {
		return "", "", err
	}
	if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return "", "", err
	}
	return token, username, nil
}

// Register creates an account; the generated password is shown in the
// notification.
func (a *App) Register(ctx context.Context) error {
	token, username, err := a.promptUsername(ctx)
	if err != nil {
		return err
	}
	return a.store.Register(ctx, token, username)
}

func (a *App) ResetPassword(ctx context.Context) error {
	token, username, err := a.promptUsername(ctx)
	if err != nil {
		return err
	}
	return a.store.ResetPassword(ctx, token, username)
}

func (a *App) DeleteUser(ctx context.Context) error {
	token, username, err := a.promptUsername(ctx)
	if err != nil {
		return err
	}
	return a.store.DeleteUser(ctx, token, username)
}

// ChangePassword asks for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	token, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	oldPassword, err := a.readPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.readPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Repeat new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		a.store.ShowNotification(models.LevelError, "Password change failed", "Passwords do not match")
		return errors.New("passwords do not match")
	}
	return a.store.ChangePassword(ctx, token, oldPassword, newPassword)
}

// Status prints the session state.
func (a *App) Status(ctx context.Context) error {
	st := a.store.Snapshot()
	a.printf("view:          %s\n", a.currentView())
	a.printf("authenticated: %t\n", a.isLoggedIn(ctx))
	if u := st.UserData.Username(); u != "" {
		a.printf("user:          %s\n", u)
	}
	if last := st.UserData.String(models.UserFieldLastLoginAt); last != "" {
		a.printf("last login:    %s\n", last)
	}
	if exp, ok := auth.ExpiresAt(a.store.Token(ctx)); ok {
		a.printf("session until: %s\n", a.formatter.Format(exp))
	}
	a.printf("matches:       %d\n", len(st.Matches))
	a.printf("locale:        %s (%s)\n", a.formatter.Locale(), a.formatter.Location())
	a.printf("api:           %s\n", a.config.APIBaseURL)
	return nil
}
