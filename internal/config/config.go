// Package config loads server settings from flags, POKECHAIN_* environment
// variables, an optional .env file and an optional config file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

// EnvPrefix prefixes every environment variable, e.g. POKECHAIN_REDIS_ADDR
const EnvPrefix = "POKECHAIN"

// Config holds configuration values for the server
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Chain    ChainConfig
	Game     GameConfig
	Log      LogConfig
}

// ServerConfig configures the gRPC listener
type ServerConfig struct {
	Port            int
	RateLimit       float64 // requests per second per peer, 0 disables
	RateBurst       int
	ShutdownTimeout time.Duration
}

// RedisConfig configures the document store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
}

// PostgresConfig configures sale history; an empty DSN keeps history in memory
type PostgresConfig struct {
	DSN string
}

// ChainConfig configures the balance reader; an empty URL disables it
type ChainConfig struct {
	RPCURL  string
	Timeout time.Duration
}

// GameConfig holds rule constants that operators may tune
type GameConfig struct {
	FeePercent    decimal.Decimal
	HatchSteps    int64
	GrowthRate    float64
	TypeChartFile string
	EncounterTTL  time.Duration
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string
	Format string
}

// RegisterFlags adds every setting to flags
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("port", 50051, "gRPC server port")
	flags.Float64("rate-limit", 50, "requests per second allowed per peer (0 disables)")
	flags.Int("rate-burst", 100, "rate limiter burst size")
	flags.Duration("shutdown-timeout", 30*time.Second, "graceful shutdown timeout")
	flags.String("redis-addr", "localhost:6379", "redis address")
	flags.String("redis-password", "", "redis password")
	flags.Int("redis-db", 0, "redis database")
	flags.Bool("redis-tls", false, "connect to redis over TLS")
	flags.String("postgres-dsn", "", "postgres DSN for sale history (empty keeps history in memory)")
	flags.String("chain-rpc", "", "EVM RPC endpoint for buyer balances (empty disables)")
	flags.Duration("chain-timeout", 5*time.Second, "timeout for chain calls")
	flags.String("fee-percent", "2.5", "marketplace fee percent")
	flags.Int64("hatch-steps", 1000, "incubation steps required to hatch")
	flags.Float64("growth-rate", 1.1, "stat multiplier per level")
	flags.String("type-chart", "", "YAML type chart replacing the built-in one")
	flags.Duration("encounter-ttl", 15*time.Minute, "how long an idle wild encounter lasts")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, text)")
}

// LoadDotEnv reads KEY=value pairs from files into the environment. Missing
// files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "failed to load %s", f)
		}
	}
	return nil
}

// Load merges config file, environment variables, and flags into Config.
// Flags set on the command line win over the environment, which wins over
// the file.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", cfgFile)
		}
	}

	fee, err := decimal.NewFromString(v.GetString("fee-percent"))
	if err != nil {
		return nil, errors.InvalidArgumentf("fee-percent %q is not a number", v.GetString("fee-percent"))
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("port"),
			RateLimit:       v.GetFloat64("rate-limit"),
			RateBurst:       v.GetInt("rate-burst"),
			ShutdownTimeout: v.GetDuration("shutdown-timeout"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis-addr"),
			Password: v.GetString("redis-password"),
			DB:       v.GetInt("redis-db"),
			UseTLS:   v.GetBool("redis-tls"),
		},
		Postgres: PostgresConfig{
			DSN: v.GetString("postgres-dsn"),
		},
		Chain: ChainConfig{
			RPCURL:  v.GetString("chain-rpc"),
			Timeout: v.GetDuration("chain-timeout"),
		},
		Game: GameConfig{
			FeePercent:    fee,
			HatchSteps:    v.GetInt64("hatch-steps"),
			GrowthRate:    v.GetFloat64("growth-rate"),
			TypeChartFile: v.GetString("type-chart"),
			EncounterTTL:  v.GetDuration("encounter-ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 50051)
	v.SetDefault("rate-limit", 50.0)
	v.SetDefault("rate-burst", 100)
	v.SetDefault("shutdown-timeout", 30*time.Second)
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("chain-timeout", 5*time.Second)
	v.SetDefault("fee-percent", "2.5")
	v.SetDefault("hatch-steps", 1000)
	v.SetDefault("growth-rate", 1.1)
	v.SetDefault("encounter-ttl", 15*time.Minute)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "json")
}

// Validate checks ranges that would otherwise fail deep inside a constructor
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("port", int64(c.Server.Port), 1, 65535, vb)
	if c.Server.RateLimit < 0 {
		vb.Fieldf("rate-limit", "must not be negative, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		vb.Fieldf("rate-burst", "must be positive when rate limiting, got %d", c.Server.RateBurst)
	}
	errors.ValidateRequired("redis-addr", c.Redis.Addr, vb)
	if c.Game.FeePercent.IsNegative() || c.Game.FeePercent.GreaterThan(decimal.NewFromInt(100)) {
		vb.Fieldf("fee-percent", "must be within 0..100, got %s", c.Game.FeePercent)
	}
	errors.ValidatePositive("hatch-steps", c.Game.HatchSteps, vb)
	if c.Game.GrowthRate < 1 {
		vb.Fieldf("growth-rate", "must be at least 1, got %v", c.Game.GrowthRate)
	}
	if c.Game.EncounterTTL <= 0 {
		vb.Fieldf("encounter-ttl", "must be positive, got %s", c.Game.EncounterTTL)
	}
	errors.ValidateEnum("log-format", c.Log.Format, []string{"json", "text"}, vb)
	return vb.Build()
}
