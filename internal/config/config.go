package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

type Config struct {
	Rows        int
	Columns     int
	WinLength   int
	PlayerName  string
	AIName      string
	AIMoveDelay time.Duration
	InstantAI   bool
	AISeed      int64 // 0 means seed from the clock
	NoColor     bool
	ConfigFile  string
}

// Defaults match the classic small board: 4x4 with three in a row to win.
func Default() *Config {
	return &Config{
		Rows:        4,
		Columns:     4,
		WinLength:   3,
		PlayerName:  "Player",
		AIName:      "AI",
		AIMoveDelay: 700 * time.Millisecond,
	}
}

// LoadConfig builds the configuration from the defaults, then the HCL file named
// by CONNECT_CONFIG_FILE (if any), then the environment.
func LoadConfig() (*Config, error) {
	cfg := Default()

	cfg.ConfigFile = GetEnv("CONNECT_CONFIG_FILE", "")
	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
		log.Printf("[CONFIG] Loaded %s", cfg.ConfigFile)
	}

	// Board
	cfg.Rows = GetEnvAsInt("BOARD_ROWS", cfg.Rows)
	cfg.Columns = GetEnvAsInt("BOARD_COLUMNS", cfg.Columns)
	cfg.WinLength = GetEnvAsInt("WIN_LENGTH", cfg.WinLength)

	// Players
	cfg.PlayerName = GetEnv("PLAYER_NAME", cfg.PlayerName)
	cfg.AIName = GetEnv("AI_NAME", cfg.AIName)

	// AI
	delayMs := GetEnvAsInt("AI_MOVE_DELAY_MS", int(cfg.AIMoveDelay/time.Millisecond))
	cfg.AIMoveDelay = time.Duration(delayMs) * time.Millisecond
	cfg.InstantAI = GetEnvAsBool("AI_INSTANT", cfg.InstantAI)
	cfg.AISeed = GetEnvAsInt64("AI_SEED", cfg.AISeed)

	// a non-empty NO_COLOR disables colour, see no-color.org
	if GetEnv("NO_COLOR", "") != "" {
		cfg.NoColor = true
	}

	return cfg, nil
}

type fileConfig struct {
	Board   *boardBlock   `hcl:"board,block"`
	Players *playersBlock `hcl:"players,block"`
	AI      *aiBlock      `hcl:"ai,block"`
}

type boardBlock struct {
	Rows      *int `hcl:"rows,optional"`
	Columns   *int `hcl:"columns,optional"`
	WinLength *int `hcl:"win_length,optional"`
}

type playersBlock struct {
	Player *string `hcl:"player,optional"`
	AI     *string `hcl:"ai,optional"`
}

type aiBlock struct {
	DelayMs *int   `hcl:"delay_ms,optional"`
	Instant *bool  `hcl:"instant,optional"`
	Seed    *int64 `hcl:"seed,optional"`
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if b := fc.Board; b != nil {
		setIfPresent(&c.Rows, b.Rows)
		setIfPresent(&c.Columns, b.Columns)
		setIfPresent(&c.WinLength, b.WinLength)
	}
	if p := fc.Players; p != nil {
		setIfPresent(&c.PlayerName, p.Player)
		setIfPresent(&c.AIName, p.AI)
	}
	if a := fc.AI; a != nil {
		if a.DelayMs != nil {
			c.AIMoveDelay = time.Duration(*a.DelayMs) * time.Millisecond
		}
		setIfPresent(&c.InstantAI, a.Instant)
		setIfPresent(&c.AISeed, a.Seed)
	}
	return nil
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
