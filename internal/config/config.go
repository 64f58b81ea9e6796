package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Arguments struct {
	ListenAddr string `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret  string `env:"JWT_SECRET" envDefault:"secret"`
	RulesFile  string `env:"RULES_FILE" envDefault:""`

	DatabaseDSN      string        `env:"DATABASE_DSN" envDefault:""`
	SQLitePath       string        `env:"SQLITE_PATH" envDefault:"economy.db"`
	BusyTimeout      time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"0s"`
	RetryAttempts    int           `env:"STORE_RETRY_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"STORE_RETRY_DELAY" envDefault:"100ms"`
	BreakerFailures  int           `env:"STORE_BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenDelay time.Duration `env:"STORE_BREAKER_TIMEOUT" envDefault:"30s"`

	ReplayTimeout time.Duration `env:"REPLAY_TIMEOUT" envDefault:"30s"`
	TurnTimeout   time.Duration `env:"TURN_TIMEOUT" envDefault:"0s"`

	DefaultBet      int64         `env:"DEFAULT_BET" envDefault:"100"`
	BonusMultiplier int64         `env:"BONUS_MULTIPLIER" envDefault:"5"`
	BonusCooldown   time.Duration `env:"BONUS_COOLDOWN" envDefault:"12h"`
	ReserveBounty   int64         `env:"RESERVE_BOUNTY" envDefault:"10000"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr string
	LogLevel   string
	JWTSecret  string
}

// StorageConfig модель настроек хранилища счетов
type StorageConfig struct {
	DatabaseDSN      string
	SQLitePath       string
	BusyTimeout      time.Duration
	RetryAttempts    int
	RetryBaseDelay   time.Duration
	BreakerFailures  int
	BreakerOpenDelay time.Duration
}

// GamesConfig модель правил игр
type GamesConfig struct {
	MinStake           int64
	NaturalMultiplier  decimal.Decimal
	ExactMultiplier    int64
	CategoryMultiplier int64
	ReelItems          int
	SlotsMinBet        int64
	SlotsMaxBet        int64
	ForcedWinChance    float64
	ForcedWinWeights   []decimal.Decimal
	SlotMultipliers    []int64
	ReplayTimeout      time.Duration
	TurnTimeout        time.Duration
}

// EconomyConfig модель настроек экономики
type EconomyConfig struct {
	DefaultBet      int64
	BonusMultiplier int64
	BonusCooldown   time.Duration
	ReserveBounty   int64
}

// Config модель настроек сервиса
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Games   GamesConfig
	Economy EconomyConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "PostgreSQL DSN, sqlite is used when empty")
		sqlite   = pflag.StringP("sqlite", "f", args.SQLitePath, "Path to sqlite database file")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		rules    = pflag.StringP("rules", "r", args.RulesFile, "Path to YAML game rules")
		replay   = pflag.Duration("replay_timeout", args.ReplayTimeout, "Lifetime of spin again/reroll controls")
		turn     = pflag.Duration("turn_timeout", args.TurnTimeout, "Card game turn timeout, 0 waits forever")
		attempts = pflag.Int("retry_attempts", args.RetryAttempts, "Store attempts on write conflict")
	)
	pflag.Parse()

	cfg := DefaultConfig()
	cfg.Server = ServerConfig{
		ListenAddr: *server,
		LogLevel:   *logLevel,
		JWTSecret:  *secret,
	}
	cfg.Storage = StorageConfig{
		DatabaseDSN:      *DSN,
		SQLitePath:       *sqlite,
		BusyTimeout:      args.BusyTimeout,
		RetryAttempts:    *attempts,
		RetryBaseDelay:   args.RetryBaseDelay,
		BreakerFailures:  args.BreakerFailures,
		BreakerOpenDelay: args.BreakerOpenDelay,
	}
	cfg.Games.ReplayTimeout = *replay
	cfg.Games.TurnTimeout = *turn
	cfg.Economy = EconomyConfig{
		DefaultBet:      args.DefaultBet,
		BonusMultiplier: args.BonusMultiplier,
		BonusCooldown:   args.BonusCooldown,
		ReserveBounty:   args.ReserveBounty,
	}

	if *rules != "" {
		if err := cfg.Games.LoadRules(*rules); err != nil {
			panic(fmt.Sprintf("Failed to load game rules: %s", err.Error()))
		}
	}
	return cfg
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: "localhost:8080",
			LogLevel:   "info",
			JWTSecret:  "secret",
		},
		Storage: StorageConfig{
			SQLitePath:       "economy.db",
			RetryAttempts:    5,
			RetryBaseDelay:   100 * time.Millisecond,
			BreakerFailures:  5,
			BreakerOpenDelay: 30 * time.Second,
		},
		Games: DefaultGamesConfig(),
		Economy: EconomyConfig{
			DefaultBet:      100,
			BonusMultiplier: 5,
			BonusCooldown:   12 * time.Hour,
			ReserveBounty:   10000,
		},
	}
}

// DefaultGamesConfig - правила игр по умолчанию
func DefaultGamesConfig() GamesConfig {
	return GamesConfig{
		MinStake:           1,
		NaturalMultiplier:  decimal.RequireFromString("1.5"),
		ExactMultiplier:    35,
		CategoryMultiplier: 1,
		ReelItems:          60,
		SlotsMinBet:        1,
		SlotsMaxBet:        3,
		ForcedWinChance:    0.12,
		ForcedWinWeights: []decimal.Decimal{
			decimal.RequireFromString("3.5"),
			decimal.NewFromInt(7),
			decimal.NewFromInt(15),
			decimal.NewFromInt(25),
			decimal.NewFromInt(55),
		},
		SlotMultipliers: []int64{4, 80, 40, 25, 10, 5},
		ReplayTimeout:   30 * time.Second,
	}
}

// rulesFile - формат файла правил, незаданные поля не меняют текущих значений
type rulesFile struct {
	MinStake           *int64   `yaml:"min_stake"`
	NaturalMultiplier  *string  `yaml:"natural_multiplier"`
	ExactMultiplier    *int64   `yaml:"exact_multiplier"`
	CategoryMultiplier *int64   `yaml:"category_multiplier"`
	ReelItems          *int     `yaml:"reel_items"`
	SlotsMinBet        *int64   `yaml:"slots_min_bet"`
	SlotsMaxBet        *int64   `yaml:"slots_max_bet"`
	ForcedWinChance    *float64 `yaml:"forced_win_chance"`
	ForcedWinWeights   []string `yaml:"forced_win_weights"`
	SlotMultipliers    []int64  `yaml:"slot_multipliers"`
}

// LoadRules - чтение правил игр из YAML файла
func (g *GamesConfig) LoadRules(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	return g.ApplyRules(data)
}

// ApplyRules - применение правил игр из YAML документа
func (g *GamesConfig) ApplyRules(data []byte) error {
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("parse rules: %w", err)
	}
	next := *g
	if rf.MinStake != nil {
		next.MinStake = *rf.MinStake
	}
	if rf.NaturalMultiplier != nil {
		m, err := decimal.NewFromString(*rf.NaturalMultiplier)
		if err != nil {
			return fmt.Errorf("natural_multiplier: %w", err)
		}
		next.NaturalMultiplier = m
	}
	if rf.ExactMultiplier != nil {
		next.ExactMultiplier = *rf.ExactMultiplier
	}
	if rf.CategoryMultiplier != nil {
		next.CategoryMultiplier = *rf.CategoryMultiplier
	}
	if rf.ReelItems != nil {
		next.ReelItems = *rf.ReelItems
	}
	if rf.SlotsMinBet != nil {
		next.SlotsMinBet = *rf.SlotsMinBet
	}
	if rf.SlotsMaxBet != nil {
		next.SlotsMaxBet = *rf.SlotsMaxBet
	}
	if rf.ForcedWinChance != nil {
		next.ForcedWinChance = *rf.ForcedWinChance
	}
	if rf.ForcedWinWeights != nil {
		weights := make([]decimal.Decimal, 0, len(rf.ForcedWinWeights))
		for _, w := range rf.ForcedWinWeights {
			d, err := decimal.NewFromString(w)
			if err != nil {
				return fmt.Errorf("forced_win_weights: %w", err)
			}
			weights = append(weights, d)
		}
		next.ForcedWinWeights = weights
	}
	if rf.SlotMultipliers != nil {
		next.SlotMultipliers = rf.SlotMultipliers
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*g = next
	return nil
}

// Validate - проверка согласованности правил
func (g GamesConfig) Validate() error {
	switch {
	case g.MinStake < 1:
		return fmt.Errorf("min_stake must be positive")
	case g.ReelItems < 12 || g.ReelItems%6 != 0:
		return fmt.Errorf("reel_items must be a multiple of 6 and at least 12")
	case g.SlotsMinBet < 1 || g.SlotsMaxBet < g.SlotsMinBet:
		return fmt.Errorf("invalid slots bet range %d..%d", g.SlotsMinBet, g.SlotsMaxBet)
	case g.ForcedWinChance < 0 || g.ForcedWinChance > 1:
		return fmt.Errorf("forced_win_chance must be within [0, 1]")
	case len(g.SlotMultipliers) != 6:
		return fmt.Errorf("slot_multipliers must hold 6 values")
	case len(g.ForcedWinWeights) > 5:
		return fmt.Errorf("forced_win_weights must hold at most 5 values")
	}
	for i := 1; i < len(g.ForcedWinWeights); i++ {
		if g.ForcedWinWeights[i].LessThan(g.ForcedWinWeights[i-1]) {
			return fmt.Errorf("forced_win_weights must be ascending")
		}
	}
	return nil
}
