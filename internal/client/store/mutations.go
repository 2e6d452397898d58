package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/storage"
)

// SetMatches replaces the match list. Knockout matches get the group
// "Knockout" and every match gets a viewer-local kick-off time.
func (s *Store) SetMatches(matches []models.Match) {
	s.mu.Lock()
	s.setMatchesLocked(matches)
	snap := s.state.Clone()
	s.mu.Unlock()

	s.publish(snap)
}

// SetJwtToken stores token in memory and storage. An empty token removes
// the stored copy.
func (s *Store) SetJwtToken(ctx context.Context, token string) error {
	s.mu.Lock()
	err := s.setJwtTokenLocked(ctx, token)
	snap := s.state.Clone()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// SetUserData stores the profile in memory and storage. A numeric
// last_login_at (seconds since the epoch) is replaced by its local
// rendering. An empty profile removes the stored copy.
func (s *Store) SetUserData(ctx context.Context, user models.UserData) error {
	s.mu.Lock()
	err := s.setUserDataLocked(ctx, user)
	snap := s.state.Clone()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

func (s *Store) ShowNotification(level models.Level, header, body string) {
	s.mu.Lock()
	s.state.Notification = models.NewNotification(level, header, body)
	snap := s.state.Clone()
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Store) HideNotification() {
	s.mu.Lock()
	s.state.Notification = models.HiddenNotification()
	snap := s.state.Clone()
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Store) setMatchesLocked(matches []models.Match) {
	out := make([]models.Match, len(matches))
	for i, m := range matches {
		m = m.Clone()
		if m.Knockout {
			m.Group = models.KnockoutGroup
		}
		m.LocalMatchTime = s.formatter.FormatMatchTime(m.Date, m.Time, m.Timezone)
		out[i] = m
	}
	s.state.Matches = out
}

func (s *Store) setJwtTokenLocked(ctx context.Context, token string) error {
	var err error
	if token == "" {
		err = s.storage.Remove(ctx, storage.KeyJWT)
	} else {
		err = s.storage.Set(ctx, storage.KeyJWT, token)
	}
	if err != nil {
		s.logger.Error(ctx, "persist token", "error", err)
		return fmt.Errorf("persist token: %w", err)
	}
	s.state.JWT = token
	return nil
}

func (s *Store) setUserDataLocked(ctx context.Context, user models.UserData) error {
	user = s.normalizeUserData(user)

	var err error
	if len(user) == 0 {
		err = s.storage.Remove(ctx, storage.KeyUserData)
	} else {
		var raw []byte
		raw, err = json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user data: %w", err)
		}
		err = s.storage.Set(ctx, storage.KeyUserData, string(raw))
	}
	if err != nil {
		s.logger.Error(ctx, "persist user data", "error", err)
		return fmt.Errorf("persist user data: %w", err)
	}
	s.state.UserData = user
	return nil
}

// clearSessionLocked empties matches, token and profile and makes in-flight
// match loads stale. In-flight logins are left alone; only Logout cancels
// them.
func (s *Store) clearSessionLocked(ctx context.Context) error {
	s.seq.invalidate(actionLoadMatches)
	s.setMatchesLocked(nil)

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Error(ctx, "clear session storage", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	s.state.JWT = ""
	s.state.UserData = models.UserData{}
	return nil
}

func (s *Store) normalizeUserData(user models.UserData) models.UserData {
	out := user.Clone()
	if out == nil {
		out = models.UserData{}
	}
	if t, ok := epoch(out[models.UserFieldLastLoginAt]); ok {
		out[models.UserFieldLastLoginAt] = s.formatter.Format(t)
	}
	return out
}

// maxEpoch is 9999-12-31T23:59:59Z, the last second time.Format can render
// with a four-digit year.
const maxEpoch = 253402300799

// epoch interprets v as seconds since the epoch. Zero, out of range and
// non-numeric values are left alone, so an already rendered timestamp is
// not touched again.
func epoch(v any) (time.Time, bool) {
	var sec float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		sec = f
	case float64:
		sec = t
	case int:
		sec = float64(t)
	case int64:
		sec = float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return time.Time{}, false
		}
		sec = f
	default:
		return time.Time{}, false
	}
	if sec == 0 || math.IsNaN(sec) || math.Abs(sec) > maxEpoch {
		return time.Time{}, false
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)), true
}
