package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/wcpredict/internal/client/api"
	"github.com/dmitrijs2005/wcpredict/internal/client/auth"
	"github.com/dmitrijs2005/wcpredict/internal/client/localtime"
	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/storage"
	"github.com/dmitrijs2005/wcpredict/internal/logging"
)

// State is a point-in-time copy of the session.
type State struct {
	JWT          string
	UserData     models.UserData
	Matches      []models.Match
	Notification models.Notification
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	c := st
	c.UserData = st.UserData.Clone()
	if st.Matches != nil {
		c.Matches = make([]models.Match, len(st.Matches))
		for i, m := range st.Matches {
			c.Matches[i] = m.Clone()
		}
	}
	return c
}

// TokenValidator reports whether token is usable at now.
type TokenValidator func(token string, now time.Time) bool

// TimeFormatter renders times for the viewer.
type TimeFormatter interface {
	Format(t time.Time) string
	FormatMatchTime(date, clock, zone string) string
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithTokenValidator(v TokenValidator) Option {
	return func(s *Store) { s.validate = v }
}

func WithFormatter(f TimeFormatter) Option {
	return func(s *Store) { s.formatter = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	api     api.Client
	storage storage.Storage
	nav     Navigator

	logger    logging.Logger
	validate  TokenValidator
	formatter TimeFormatter
	now       func() time.Time

	mu    sync.Mutex
	state State
	seq   sequencer

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// New returns a Store with an empty session. A nil nav discards
// navigation.
func New(client api.Client, st storage.Storage, nav Navigator, opts ...Option) *Store {
	if nav == nil {
		nav = nopNavigator{}
	}
	s := &Store{
		api:       client,
		storage:   st,
		nav:       nav,
		logger:    logging.Discard(),
		validate:  auth.IsValidJwtAt,
		formatter: localtime.NewFormatter("", nil),
		now:       time.Now,
		state: State{
			UserData:     models.UserData{},
			Matches:      []models.Match{},
			Notification: models.HiddenNotification(),
		},
		subs: make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Restore loads the token and profile persisted by an earlier process.
// Stored values are taken as they are: the profile was normalized before it
// was written.
func (s *Store) Restore(ctx context.Context) error {
	token, _, err := s.storage.Get(ctx, storage.KeyJWT)
	if err != nil {
		return err
	}
	raw, ok, err := s.storage.Get(ctx, storage.KeyUserData)
	if err != nil {
		return err
	}
	user := models.UserData{}
	if ok && raw != "" {
		if user, err = models.ParseUserData([]byte(raw)); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.state.JWT = token
	s.state.UserData = user
	snap := s.state.Clone()
	s.mu.Unlock()

	s.publish(snap)
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) JWT() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.JWT
}

func (s *Store) UserData() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserData.Clone()
}

func (s *Store) Matches() []models.Match {
	return s.Snapshot().Matches
}

func (s *Store) Notification() models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Notification
}

// Token returns the in-memory token, falling back to the stored one.
func (s *Store) Token(ctx context.Context) string {
	if t := s.JWT(); t != "" {
		return t
	}
	t, _, err := s.storage.Get(ctx, storage.KeyJWT)
	if err != nil {
		s.logger.Error(ctx, "read stored token", "error", err)
		return ""
	}
	return t
}

// IsAuthenticated reports whether the in-memory token, or the stored one
// when memory is empty, is a well-formed unexpired JWT.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.validate(s.Token(ctx), s.now())
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func unregisters it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(State), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st.Clone())
	}
}
