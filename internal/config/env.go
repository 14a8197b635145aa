package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// FromEnv applies PETGAME_* environment overrides on top of cfg.
// Unparseable values are logged and ignored.
func FromEnv(cfg Config) Config {
	if val, ok := getEnvInt("PETGAME_INITIAL_STAT"); ok {
		cfg.Stats.Initial = val
	}
	if val, ok := getEnvInt("PETGAME_INCREMENT"); ok {
		cfg.Stats.Increment = val
	}
	if val, ok := getEnvInt("PETGAME_CLEAN_INCREMENT"); ok {
		cfg.Stats.CleanIncrement = val
	}
	if val, ok := getEnvInt("PETGAME_REBIRTH_BASELINE"); ok {
		cfg.Rebirth.Baseline = val
	}
	if val, ok := getEnvInt("PETGAME_NIRVANA_THRESHOLD"); ok {
		cfg.Rebirth.NirvanaThreshold = val
	}
	if val, ok := getEnvDuration("PETGAME_IDLE_DELAY"); ok {
		cfg.Timers.IdleDelay = val
	}
	if val, ok := getEnvDuration("PETGAME_POWERUP_INTERVAL"); ok {
		cfg.Timers.PowerUpInterval = val
	}
	if val, ok := getEnvDuration("PETGAME_POWERUP_LIFETIME"); ok {
		cfg.Timers.PowerUpLifetime = val
	}
	if val, ok := getEnvDuration("PETGAME_DECAY_INTERVAL"); ok {
		cfg.Stats.Decay.Interval = val
	}

	// Presets for older build variants
	if mode := os.Getenv("PETGAME_PRESET"); mode != "" {
		switch mode {
		case "classic":
			cfg.Rebirth.Baseline = 50
			cfg.Stats.Decay.Interval = 0
		case "hardcore":
			cfg.Rebirth.Baseline = 1
		default:
			log.Printf("Unknown PETGAME_PRESET %q, ignoring", mode)
		}
	}

	return cfg
}

func getEnvInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, raw, err)
		return 0, false
	}
	return val, true
}

func getEnvDuration(key string) (time.Duration, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, raw, err)
		return 0, false
	}
	return val, true
}
