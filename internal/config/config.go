package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// DefaultPersistentMarking is applied when room creation omits the setting.
	DefaultPersistentMarking bool `json:"default_persistent_marking"`
	// InviteTTLMinutes configures how long a signed room invite stays valid.
	InviteTTLMinutes int `json:"invite_ttl_minutes"`
	// InviteIssuer is the issuer claim stamped into invite tokens.
	InviteIssuer string `json:"invite_issuer"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetDefaultPersistentMarking returns the room default for the
// persistent-marking setting.
func GetDefaultPersistentMarking() bool {
	if cfg == nil {
		return false
	}
	return cfg.DefaultPersistentMarking
}

// GetInviteTTLMinutes returns the invite validity window in minutes.
func GetInviteTTLMinutes() int {
	if cfg == nil {
		return 60 // Safe default
	}
	if cfg.InviteTTLMinutes <= 0 {
		return 60
	}
	return cfg.InviteTTLMinutes
}

// GetInviteIssuer returns the issuer stamped into invite tokens.
func GetInviteIssuer() string {
	if cfg == nil || cfg.InviteIssuer == "" {
		return "bingo"
	}
	return cfg.InviteIssuer
}
