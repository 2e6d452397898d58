// Package store holds the client session: the bearer token, the user
// profile, the match list with predictions and the notification the UI is
// currently showing.
//
// # Overview
//
// A Store is created once per process with New and handed to the UI. It
// exposes three groups of operations:
//
//  1. Actions (LoadMatchesWithPredictions, Login, Logout, Register,
//     ResetPassword, DeleteUser, ChangePassword) call the remote API and, on
//     resolution, commit mutations.
//  2. Mutations (SetMatches, SetJwtToken, SetUserData, ShowNotification,
//     HideNotification) are synchronous. SetJwtToken and SetUserData mirror
//     their value to the session Storage under the same lock, so memory and
//     storage never disagree after a mutation returns.
//  3. Queries (IsAuthenticated, Token, Snapshot and the field getters).
//
// UI code observes changes with Subscribe.
//
// # Error Handling
//
// A rejected remote call is classified once by Classify into a *Failure of
// kind KindAuth, KindAPI or KindTransport. Every action turns the failure
// into an error notification; KindAuth additionally clears the session and
// navigates to RouteLogin. Failures are returned so callers can match them
// with errors.As.
//
// # Concurrency
//
// All methods are safe for concurrent use. Remote calls run outside the
// store lock. Each action kind carries a sequence number: a result that
// resolves after a newer call of the same kind was started is dropped and
// the action returns ErrSuperseded. Logout invalidates in-flight match
// loads and logins.
package store
