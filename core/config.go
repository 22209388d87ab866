package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type (
	Config struct {
		Debug        bool
		TestMode     bool
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Timezone     string
		Location     *time.Location
		RollbarToken string

		Server  ServerConfig
		Storage StorageConfig
	}

	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
		ImportBodyLimit string // eg: 10M
	}

	StorageConfig struct {
		Driver        string
		Dir           string // file driver
		SQLitePath    string
		PostgresURL   string
		RedisAddr     string
		RedisPassword string
		RedisDB       int
		KeyPrefix     string // redis driver
	}
)

func newViper(env string) *viper.Viper {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == "DEV")
	conf.SetDefault("testMode", env == "TEST")
	conf.SetDefault("appName", "Tuition")
	conf.SetDefault("build", "develop")
	conf.SetDefault("timezone", "Local")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.shutdownTimeout", 10*time.Second)
	conf.SetDefault("server.importBodyLimit", "10M")

	conf.SetDefault("storage.driver", DriverFile)
	conf.SetDefault("storage.dir", "data")
	conf.SetDefault("storage.sqlitePath", "tuition.db")
	conf.SetDefault("storage.postgresURL", "postgres://localhost:5432/tuition?sslmode=disable")
	conf.SetDefault("storage.redisAddr", "localhost:6379")
	conf.SetDefault("storage.redisPassword", "")
	conf.SetDefault("storage.redisDB", 0)
	conf.SetDefault("storage.keyPrefix", "tuition:")

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()
	return conf
}

// NewConfig reads the configuration from the environment.
// `ENV` selects the environment and the variables prefix, eg: DEV_STORAGE_DRIVER=sqlite.
// A `config/.env.<env>` file is loaded first if it exists.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v := newViper(env)
	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Timezone:     v.GetString("timezone"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			ImportBodyLimit: v.GetString("server.importBodyLimit"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("storage.driver")),
			Dir:           v.GetString("storage.dir"),
			SQLitePath:    v.GetString("storage.sqlitePath"),
			PostgresURL:   v.GetString("storage.postgresURL"),
			RedisAddr:     v.GetString("storage.redisAddr"),
			RedisPassword: v.GetString("storage.redisPassword"),
			RedisDB:       v.GetInt("storage.redisDB"),
			KeyPrefix:     v.GetString("storage.keyPrefix"),
		},
	}

	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading timezone %q", conf.Timezone)
	}
	conf.Location = loc
	return conf, nil
}

// NewTestConfig returns an in-memory configuration for tests.
func NewTestConfig() *Config {
	return &Config{
		TestMode: true,
		AppName:  "Tuition",
		Env:      "TEST",
		Build:    "test",
		Timezone: "UTC",
		Location: time.UTC,
		Server:   ServerConfig{ShutdownTimeout: time.Second, ImportBodyLimit: "1M"},
		Storage:  StorageConfig{Driver: DriverMemory},
	}
}
