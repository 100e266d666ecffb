// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from four layers (highest
precedence last):

  1. Built-in defaults (`defaults.go`) through the confmap provider.
  2. Optional `<root>/conf/.env`, exported into the process environment.
  3. `conf/global.yaml`.
  4. Environment variables prefixed `SCANTEIA_`, where `__` maps to “.”
     (e.g., `SCANTEIA_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, every string value that starts with `vault:` is swapped for
the secret it names, then the tree is unmarshalled into typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, vault references.
  • ERROR spans — YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface before the file logger is installed.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`, so
    `go run ./cmd/web` works from any sub-directory.
  • A missing global.yaml is not fatal; defaults plus env must then carry
    the required keys.
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/vault"
)

const envPrefix = "SCANTEIA_"

var current atomic.Pointer[Config]

// SecretSource resolves one KV-v2 key.  *vault.Client satisfies it.
type SecretSource interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SCANTEIA_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to the executable layout.
func rootDir() string {
	if r := os.Getenv("SCANTEIA_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads every layer, resolves vault references through a lazily
// created Vault client, validates, and caches Config.
func Load(ctx context.Context) (*Config, error) {
	var lazy *vault.Client
	secrets := secretFunc(func(ctx context.Context, path, key string, ttl time.Duration) (string, error) {
		if lazy == nil {
			c, err := vault.New(ctx, zap.S().Infof)
			if err != nil {
				return "", err
			}
			lazy = c
		}
		return lazy.GetKV(ctx, path, key, ttl)
	})
	return LoadFrom(ctx, rootDir(), secrets)
}

// LoadFrom is Load with an explicit root and secret source.
func LoadFrom(ctx context.Context, root string, secrets SecretSource) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Warnw("config yaml missing, using defaults and env", "file", yamlPath)
	} else {
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	// Env overrides: SCANTEIA_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, k, secrets); err != nil {
		zap.S().Errorw("config vault resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if !filepath.IsAbs(cfg.Log.Dir) {
		cfg.Log.Dir = filepath.Join(root, cfg.Log.Dir)
	}
	if cfg.Geo.DBPath != "" && !filepath.IsAbs(cfg.Geo.DBPath) {
		cfg.Geo.DBPath = filepath.Join(root, cfg.Geo.DBPath)
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"mail_backend", cfg.Mail.Backend,
		"media_backend", cfg.Media.Backend,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, envPrefix), "__", "."))
}

type secretFunc func(ctx context.Context, path, key string, ttl time.Duration) (string, error)

func (f secretFunc) GetKV(ctx context.Context, path, key string, ttl time.Duration) (string, error) {
	return f(ctx, path, key, ttl)
}

// resolveSecrets replaces every "vault:<path>#<key>" string in k.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, secrets SecretSource) error {
	for _, key := range k.Keys() {
		raw, ok := k.Get(key).(string)
		if !ok || !strings.HasPrefix(raw, vault.RefPrefix) {
			continue
		}
		path, field, err := vault.ParseRef(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if secrets == nil {
			return fmt.Errorf("%s: vault reference but no secret source", key)
		}
		val, err := secrets.GetKV(ctx, path, field, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		zap.S().Debugw("config vault reference resolved", "key", key, "path", path)
	}
	return nil
}
