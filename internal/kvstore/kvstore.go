// Package kvstore abstracts the durable key-value storage that every
// repository mirrors itself into. Values are opaque serialized records;
// interpretation (and fail-soft fallback on corrupt payloads) happens in
// the repository layer.
package kvstore

import "context"

// Store is the durable key-value contract. Load returns an error wrapping
// apperrors.ErrNotFound when the key is absent.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
