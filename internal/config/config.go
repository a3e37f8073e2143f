package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "LOTTERY"

type AppConfig struct {
	API      *APIConfig
	Gin      *GinConfig
	Postgres *PostgresConfig
	Redis    *RedisConfig
	Storage  *StorageConfig
	Lottery  *LotteryConfig
	Notify   *NotifyConfig

	v *viper.Viper
}

type APIConfig struct {
	Environment          string
	Port                 string
	BaseURL              string
	AllowedCORSDomains   []string
	JWTSigningKey        string
	JWTTTL               time.Duration
	OperatorUsername     string
	OperatorPasswordHash string
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver string
}

// LotteryConfig holds the tunables of the reconciliation engine.
type LotteryConfig struct {
	ScanInterval      time.Duration
	SweepInterval     time.Duration
	ScanWorkers       int
	ScanTimeout       time.Duration
	LockKey           string
	LockTTL           time.Duration
	SyncPollInterval  time.Duration
	SyncTimeout       time.Duration
	FinalizeRetries   uint64
	FinalizeBackoff   time.Duration
	ReferenceAttempts int
	DrawSeed          int64
}

type NotifyConfig struct {
	WebhookURL    string
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
	}

	conf := &AppConfig{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Watch invokes fn with the reloaded configuration whenever the file changes.
// Only tunables are meant to be applied live; structural settings need a restart.
func (c *AppConfig) Watch(fn func(event fsnotify.Event, reloaded *AppConfig)) {
	if _, err := os.Stat(c.v.ConfigFileUsed()); err != nil {
		return
	}

	c.v.OnConfigChange(func(event fsnotify.Event) {
		reloaded := &AppConfig{v: c.v}
		if err := c.v.Unmarshal(reloaded); err != nil {
			return
		}
		fn(event, reloaded)
	})
	c.v.WatchConfig()
}

func (c *AppConfig) validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.API.JWTSigningKey == "" {
		return errors.New("api.jwtsigningkey must be set")
	}

	if c.Lottery.ScanWorkers < 1 {
		return errors.New("lottery.scanworkers must be at least 1")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.baseurl", "localhost:8080")
	v.SetDefault("api.allowedcorsdomains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwtsigningkey", "")
	v.SetDefault("api.jwtttl", 12*time.Hour)
	v.SetDefault("api.operatorusername", "operator")
	v.SetDefault("api.operatorpasswordhash", "")

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "lottery")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", StorageDriverPostgres)

	v.SetDefault("lottery.scaninterval", time.Minute)
	v.SetDefault("lottery.sweepinterval", time.Minute)
	v.SetDefault("lottery.scanworkers", 4)
	v.SetDefault("lottery.scantimeout", 2*time.Minute)
	v.SetDefault("lottery.lockkey", "lottery:sweep")
	v.SetDefault("lottery.lockttl", 5*time.Minute)
	v.SetDefault("lottery.syncpollinterval", 5*time.Second)
	v.SetDefault("lottery.synctimeout", 2*time.Minute)
	v.SetDefault("lottery.finalizeretries", 3)
	v.SetDefault("lottery.finalizebackoff", time.Second)
	v.SetDefault("lottery.referenceattempts", 10)
	v.SetDefault("lottery.drawseed", 0)

	v.SetDefault("notify.webhookurl", "")
	v.SetDefault("notify.ratepersecond", 1.0)
	v.SetDefault("notify.burst", 5)
	v.SetDefault("notify.timeout", 10*time.Second)
}
