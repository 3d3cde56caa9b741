package credstore

import (
	"fmt"
	"strings"
)

// Config selects the session-scoped area backend.
type Config struct {
	// Backend is "memory" (default) or "redis".
	Backend string
	Redis   RedisConfig
}

// NewSessionArea constructs the session-scoped area for the configured
// backend. Memory is the default: it matches the tab-scoped lifetime and
// needs no infrastructure. Redis is for multi-instance deployments where
// the non-persistent session must be visible to every instance.
func NewSessionArea(cfg Config) (Area, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryArea(), nil
	case "redis":
		return NewRedisArea(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown session area backend %q", cfg.Backend)
	}
}
