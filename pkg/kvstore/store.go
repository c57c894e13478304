// Package kvstore holds small per-user and per-session state: chat
// histories and the last trip a user opened on the map.
package kvstore

import "context"

type Store interface {
	// Get returns ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
