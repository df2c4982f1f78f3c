// Package config reads process configuration from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/storefront/internal/storefront"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type Config struct {
	AppEnv   string
	LogLevel string

	ExecutionContext storefront.ExecutionContext
	Storefront       storefront.Config

	CartStorage    string
	CartStorageDir string
	PostgresURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	SubscribeAddr           string
	SubscribeAllowedOrigins []string
}

// Load loads .env, if any, and reads the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds the configuration from lookup, which matches os.LookupEnv.
func FromLookup(lookup storefront.LookupFunc) (Config, error) {
	env := reader{lookup: lookup}

	execCtx, err := storefront.ParseExecutionContext(env.str("STOREFRONT_CONTEXT", ""))
	if err != nil {
		return Config{}, fmt.Errorf("STOREFRONT_CONTEXT: %w", err)
	}

	cfg := Config{
		AppEnv:           env.str("APP_ENV", "dev"),
		LogLevel:         env.str("LOG_LEVEL", "info"),
		ExecutionContext: execCtx,
		Storefront: storefront.Config{
			Timeout:    env.duration("STOREFRONT_TIMEOUT", 0),
			MaxRetries: env.int("STOREFRONT_MAX_RETRIES", 0),
		},
		CartStorage:    strings.ToLower(env.str("CART_STORAGE", StorageFile)),
		CartStorageDir: env.str("CART_STORAGE_DIR", ".storefront"),
		PostgresURL:    env.str("POSTGRES_URL", ""),
		RedisAddr:      env.str("REDIS_URL", "localhost:6379"),
		RedisPassword:  env.str("REDIS_PASSWORD", ""),
		RedisDB:        env.int("REDIS_DB", 0),
		SubscribeAddr:  env.str("SUBSCRIBE_ADDR", ":8080"),

		SubscribeAllowedOrigins: env.list("SUBSCRIBE_ALLOWED_ORIGINS"),
	}
	if env.err != nil {
		return Config{}, env.err
	}

	cfg.Storefront = storefront.ResolveConfig(cfg.Storefront, execCtx, lookup)

	switch cfg.CartStorage {
	case StorageFile, StorageMemory, StorageRedis:
	case StoragePostgres:
		if cfg.PostgresURL == "" {
			return Config{}, errors.New("POSTGRES_URL is required for postgres cart storage")
		}
	default:
		return Config{}, fmt.Errorf("CART_STORAGE[%s] is not valid", cfg.CartStorage)
	}

	return cfg, nil
}

// reader keeps the first parse error so Load reports one failure at a time.
type reader struct {
	lookup storefront.LookupFunc
	err    error
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}

// list splits a comma separated value, dropping blanks.
func (r *reader) list(key string) []string {
	var out []string
	for _, v := range strings.Split(r.str(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *reader) int(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("%s[%s] is not a valid integer", key, v))
		return def
	}
	return n
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("%s[%s] is not a valid duration", key, v))
		return def
	}
	return d
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
