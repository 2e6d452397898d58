// Package cli provides the interactive wcpredict command-line client.
//
// It wires configuration, the session database, the API client and the
// session store, and runs a REPL on top of them. The REPL plays the part of
// the UI: it navigates between the Login and Home views when the store asks
// it to, renders store notifications as they appear, and loads the match
// list whenever the Home view is entered.
//
// Key features:
//   - Login / Logout against the prediction game API
//   - Match list with predictions in the viewer's locale and time zone
//   - Account administration: register, reset password, delete user
//   - Password change for the current user
//   - Session expiry watcher that returns to the Login view
//
// NewRootCmd builds the cobra command; App.Run blocks until the user exits.
package cli
