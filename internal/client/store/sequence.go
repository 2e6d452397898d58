package store

type actionKind int

const (
	actionLoadMatches actionKind = iota
	actionLogin
	actionLogout
	actionRegister
	actionResetPassword
	actionDeleteUser
	actionChangePassword

	numActions
)

var actionNames = [numActions]string{
	actionLoadMatches:    "load matches",
	actionLogin:          "login",
	actionLogout:         "logout",
	actionRegister:       "register",
	actionResetPassword:  "reset password",
	actionDeleteUser:     "delete user",
	actionChangePassword: "change password",
}

func (k actionKind) String() string {
	if k < 0 || k >= numActions {
		return "unknown"
	}
	return actionNames[k]
}

// sequencer hands out per-kind request numbers. It is guarded by Store.mu.
type sequencer struct {
	last [numActions]uint64
}

func (s *sequencer) begin(k actionKind) uint64 {
	s.last[k]++
	return s.last[k]
}

func (s *sequencer) current(k actionKind, n uint64) bool {
	return s.last[k] == n
}

// invalidate makes every in-flight call of the given kinds stale.
func (s *sequencer) invalidate(kinds ...actionKind) {
	for _, k := range kinds {
		s.last[k]++
	}
}
