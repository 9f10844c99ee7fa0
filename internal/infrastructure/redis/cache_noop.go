package redisstore

import (
	"context"
	"time"
)

// NoopCache never stores anything; useful for tests/dev when Redis is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
