package storage

import "context"

const (
	// KeyJWT holds the raw bearer token.
	KeyJWT = "jwt"
	// KeyUserData holds the JSON-serialized profile object.
	KeyUserData = "user_data"
)

// Storage is a string key/value store. Get reports a missing key with
// ok == false and a nil error. Clear drops every key of the session.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
