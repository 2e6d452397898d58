package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
)

// commit runs fn under the store lock if call n of kind k is still the
// latest one. It reports false when the call was superseded.
func (s *Store) commit(k actionKind, n uint64, fn func() error) (bool, error) {
	s.mu.Lock()
	if !s.seq.current(k, n) {
		s.mu.Unlock()
		return false, nil
	}
	err := fn()
	snap := s.state.Clone()
	s.mu.Unlock()

	s.publish(snap)
	return true, err
}

func (s *Store) begin(ctx context.Context, k actionKind) uint64 {
	s.mu.Lock()
	n := s.seq.begin(k)
	s.mu.Unlock()

	s.logger.Debug(ctx, "action started", "action", k.String(), "seq", n)
	return n
}

func (s *Store) superseded(ctx context.Context, k actionKind, n uint64) error {
	s.logger.Debug(ctx, "result discarded", "action", k.String(), "seq", n)
	return ErrSuperseded
}

// fail shows the failure of call n and, for KindAuth, logs the session out
// and sends the user to the login view.
func (s *Store) fail(ctx context.Context, k actionKind, n uint64, err error, authenticated bool) error {
	f := Classify(k.String(), err, authenticated)
	s.logger.Warn(ctx, "action failed", "action", k.String(), "kind", f.Kind.String(), "status", f.Status, "error", err)

	var clearErr error
	ok, _ := s.commit(k, n, func() error {
		s.state.Notification = failureNotification(k, f)
		if f.Kind == KindAuth {
			clearErr = s.clearSessionLocked(ctx)
		}
		return nil
	})
	if !ok {
		return s.superseded(ctx, k, n)
	}

	if f.Kind == KindAuth {
		if clearErr != nil {
			s.logger.Error(ctx, "clear session", "error", clearErr)
		}
		if _, err := s.api.SubmitLogout(ctx); err != nil {
			s.logger.Warn(ctx, "remote logout after 401", "error", err)
		}
		s.nav.Push(RouteLogin)
	}
	return f
}

// holdsSession reports whether a call carrying token speaks for a session:
// either the caller passed a token or the store still has one.
func (s *Store) holdsSession(ctx context.Context, token string) bool {
	return token != "" || s.Token(ctx) != ""
}

// storageFailure shows a local persistence error.
func (s *Store) storageFailure(k actionKind, err error) error {
	s.ShowNotification(models.LevelError, failureHeaders[k], GenericErrorText+": "+err.Error())
	return fmt.Errorf("%s: %w", k, err)
}

// LoadMatchesWithPredictions fetches the match list with the user's
// predictions and commits it on HTTP 200.
func (s *Store) LoadMatchesWithPredictions(ctx context.Context, token string) error {
	const k = actionLoadMatches
	n := s.begin(ctx, k)

	resp, err := s.api.FetchMatchesWithPredictions(ctx, token)
	if err != nil {
		return s.fail(ctx, k, n, err, s.holdsSession(ctx, token))
	}

	ok, _ := s.commit(k, n, func() error {
		if resp.Status == http.StatusOK {
			s.setMatchesLocked(resp.Data)
		}
		return nil
	})
	if !ok {
		return s.superseded(ctx, k, n)
	}
	s.logger.Info(ctx, "matches loaded", "status", resp.Status, "count", len(resp.Data))
	return nil
}

// Login authenticates the user. On HTTP 200 it commits the token and the
// profile and navigates to RouteHome. A failed login never logs out.
func (s *Store) Login(ctx context.Context, username, password string) error {
	const k = actionLogin
	n := s.begin(ctx, k)

	resp, err := s.api.SubmitLogin(ctx, username, password)
	if err != nil {
		return s.fail(ctx, k, n, err, false)
	}
	if resp.Status != http.StatusOK {
		s.logger.Debug(ctx, "login resolved without session", "status", resp.Status)
		return nil
	}

	ok, err := s.commit(k, n, func() error {
		prev := s.state.JWT
		if err := s.setJwtTokenLocked(ctx, resp.Data.Token); err != nil {
			return err
		}
		if err := s.setUserDataLocked(ctx, resp.Data.UserData); err != nil {
			// no half sessions: a token without its profile is rolled back
			if rbErr := s.setJwtTokenLocked(ctx, prev); rbErr != nil {
				s.logger.Error(ctx, "roll back token", "error", rbErr)
				s.state.JWT = prev
			}
			return err
		}
		return nil
	})
	if !ok {
		return s.superseded(ctx, k, n)
	}
	if err != nil {
		return s.storageFailure(k, err)
	}

	s.logger.Info(ctx, "logged in", "username", username)
	s.nav.Push(RouteHome)
	return nil
}

// Logout ends the session. Matches, token and profile are cleared whatever
// the outcome of the remote call; a remote failure is still shown and
// returned.
func (s *Store) Logout(ctx context.Context) error {
	const k = actionLogout
	s.mu.Lock()
	s.seq.invalidate(actionLoadMatches, actionLogin)
	s.mu.Unlock()
	n := s.begin(ctx, k)

	_, remoteErr := s.api.SubmitLogout(ctx)

	var f *Failure
	if remoteErr != nil {
		f = Classify(k.String(), remoteErr, false)
		s.logger.Warn(ctx, "action failed", "action", k.String(), "kind", f.Kind.String(), "error", remoteErr)
	}

	// a newer logout does not make this one stale: clearing is idempotent
	s.mu.Lock()
	clearErr := s.clearSessionLocked(ctx)
	if f != nil {
		s.state.Notification = failureNotification(k, f)
	}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.publish(snap)

	s.logger.Info(ctx, "logged out", "seq", n)

	if clearErr != nil {
		return s.storageFailure(k, clearErr)
	}
	if f != nil {
		return f
	}
	return nil
}

// accountResult is the resolved outcome of an account administration call.
type accountResult struct {
	status   int
	message  string
	password string
}

// runAccountAction drives the admin actions. On HTTP 201 it shows a success
// notification; strictNon201 also turns any other resolved status into an
// error notification.
func (s *Store) runAccountAction(ctx context.Context, k actionKind, token string, strictNon201 bool, call func() (accountResult, error)) error {
	n := s.begin(ctx, k)

	res, err := call()
	if err != nil {
		return s.fail(ctx, k, n, err, s.holdsSession(ctx, token))
	}

	var result error
	ok, _ := s.commit(k, n, func() error {
		switch {
		case res.status == http.StatusCreated:
			s.state.Notification = models.NewNotification(models.LevelSuccess, successHeaders[k], successBody(res))
		case strictNon201:
			f := &Failure{
				Kind:    KindAPI,
				Action:  k.String(),
				Status:  res.status,
				Message: res.message,
				Err:     fmt.Errorf("unexpected status %d", res.status),
			}
			if f.Message == "" {
				f.Kind = KindTransport
			}
			s.state.Notification = failureNotification(k, f)
			result = f
		}
		return nil
	})
	if !ok {
		return s.superseded(ctx, k, n)
	}

	s.logger.Info(ctx, "action done", "action", k.String(), "status", res.status)
	return result
}

var successHeaders = [numActions]string{
	actionRegister:       "User registered",
	actionResetPassword:  "Password reset",
	actionDeleteUser:     "User deleted",
	actionChangePassword: "Password changed",
}

func successBody(res accountResult) string {
	if res.password == "" {
		return res.message
	}
	if res.message == "" {
		return "Password: " + res.password
	}
	return res.message + "\nPassword: " + res.password
}

// Register creates an account for username. The server generates the
// password and it is shown in the success notification.
func (s *Store) Register(ctx context.Context, token, username string) error {
	return s.runAccountAction(ctx, actionRegister, token, false, func() (accountResult, error) {
		resp, err := s.api.SubmitRegister(ctx, token, username)
		if err != nil {
			return accountResult{}, err
		}
		return accountResult{status: resp.Status, message: resp.Data.Message, password: resp.Data.UserData.Password()}, nil
	})
}

// ResetPassword issues a new generated password for username.
func (s *Store) ResetPassword(ctx context.Context, token, username string) error {
	return s.runAccountAction(ctx, actionResetPassword, token, false, func() (accountResult, error) {
		resp, err := s.api.SubmitResetPassword(ctx, token, username)
		if err != nil {
			return accountResult{}, err
		}
		return accountResult{status: resp.Status, message: resp.Data.Message, password: resp.Data.UserData.Password()}, nil
	})
}

func (s *Store) DeleteUser(ctx context.Context, token, username string) error {
	return s.runAccountAction(ctx, actionDeleteUser, token, false, func() (accountResult, error) {
		resp, err := s.api.SubmitDeleteUser(ctx, token, username)
		if err != nil {
			return accountResult{}, err
		}
		return accountResult{status: resp.Status, message: resp.Data.Message}, nil
	})
}

// ChangePassword changes the current user's password. Unlike the other
// account actions, a resolved response other than 201 is reported as a
// failure carrying the server message. The token is never touched.
func (s *Store) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	return s.runAccountAction(ctx, actionChangePassword, token, true, func() (accountResult, error) {
		resp, err := s.api.SubmitChangePassword(ctx, token, oldPassword, newPassword)
		if err != nil {
			return accountResult{}, err
		}
		return accountResult{status: resp.Status, message: resp.Data.Message}, nil
	})
}

