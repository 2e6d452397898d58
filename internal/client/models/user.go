package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	UserFieldLastLoginAt = "last_login_at"
	UserFieldPassword    = "password"
	UserFieldUsername    = "username"
)

// UserData is the profile object returned by the backend. Its shape is owned
// by the server, so it is kept as a generic map.
type UserData map[string]any

// ParseUserData decodes a JSON object keeping numbers as json.Number.
func ParseUserData(data []byte) (UserData, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var u UserData
	if err := dec.Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user data: %w", err)
	}
	return u, nil
}

func (u *UserData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*u = m
	return nil
}

// String returns field key rendered as text, or "" when absent.
func (u UserData) String(key string) string {
	return stringValue(u[key])
}

func (u UserData) Username() string {
	return u.String(UserFieldUsername)
}

func (u UserData) Password() string {
	return u.String(UserFieldPassword)
}

// Clone returns a deep copy of u. A nil map stays nil.
func (u UserData) Clone() UserData {
	if u == nil {
		return nil
	}
	return UserData(cloneMap(u))
}

func cloneMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case UserData:
		return UserData(cloneMap(t))
	case []any:
		c := make([]any, len(t))
		for i := range t {
			c[i] = cloneValue(t[i])
		}
		return c
	default:
		return v
	}
}
