package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore is a Store backed by Valkey (Redis-compatible). TTLs are
// enforced server-side, which makes entries visible to every process
// sharing the instance.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore connects to the Valkey instance at addr.
func NewValkeyStore(addr string) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &ValkeyStore{client: client}, nil
}

// Get retrieves the value for key; any error (including a missing key)
// reads as a miss.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if cmd.Error() != nil {
		return nil, false
	}
	b, err := cmd.AsBytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores value under key with the given TTL.
func (s *ValkeyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(key).Value(string(value)).Ex(ttl).Build(),
	)
	return cmd.Error()
}

// Delete removes key.
func (s *ValkeyStore) Delete(ctx context.Context, key string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(key).Build())
	return cmd.Error()
}

// Close releases the client.
func (s *ValkeyStore) Close() {
	s.client.Close()
}
