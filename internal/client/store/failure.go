package store

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wcpredict/internal/client/api"
	"github.com/dmitrijs2005/wcpredict/internal/client/models"
)

// ErrSuperseded is returned by an action whose result arrived after a newer
// call of the same kind had started, or after Logout.
var ErrSuperseded = errors.New("superseded by a newer request")

// Kind is the class of a failed remote call.
type Kind int

const (
	// KindTransport: no structured message (network, decoding, bare status).
	KindTransport Kind = iota
	// KindAPI: the server rejected the call with a message.
	KindAPI
	// KindAuth: 401 on a call that carried a token.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindAPI:
		return "api"
	default:
		return "transport"
	}
}

// GenericErrorText is shown when a failure carries no text at all.
const GenericErrorText = "Error"

const sessionExpiredText = "Your session has expired, please log in again"

// Failure is a classified action error.
type Failure struct {
	Kind    Kind
	Action  string
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Message != "":
		return fmt.Sprintf("%s: %s", f.Action, f.Message)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Action, f.Err)
	default:
		return fmt.Sprintf("%s: %s", f.Action, GenericErrorText)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Text is the notification body for f.
func (f *Failure) Text() string {
	switch f.Kind {
	case KindAuth:
		if f.Message != "" {
			return f.Message
		}
		return sessionExpiredText
	case KindAPI:
		return f.Message
	default:
		if f.Err != nil && f.Err.Error() != "" {
			return GenericErrorText + ": " + f.Err.Error()
		}
		return GenericErrorText
	}
}

// Classify maps the error of a rejected call to a Failure. authenticated
// reports whether the call carried a bearer token.
func Classify(action string, err error, authenticated bool) *Failure {
	f := &Failure{Kind: KindTransport, Action: action, Err: err}

	re, ok := api.AsResponseError(err)
	if !ok {
		return f
	}
	f.Status = re.Status
	f.Message = re.Message

	switch {
	case authenticated && errors.Is(err, api.ErrUnauthorized):
		f.Kind = KindAuth
	case re.HasMessage():
		f.Kind = KindAPI
	}
	return f
}

var failureHeaders = [numActions]string{
	actionLoadMatches:    "Could not load matches",
	actionLogin:          "Login failed",
	actionLogout:         "Logout failed",
	actionRegister:       "Registration failed",
	actionResetPassword:  "Password reset failed",
	actionDeleteUser:     "Delete user failed",
	actionChangePassword: "Password change failed",
}

func failureNotification(k actionKind, f *Failure) models.Notification {
	header := failureHeaders[k]
	if f.Kind == KindAuth {
		header = "Session expired"
	}
	return models.NewNotification(models.LevelError, header, f.Text())
}
