// Package config resolves where meals are stored and how the planner
// behaves. It is populated once at startup from flags, the environment, an
// optional .env file and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/keyring"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
	"github.com/aleksanderbl29/meal-planner/internal/storage/jsonfile"
	"github.com/aleksanderbl29/meal-planner/internal/storage/kvrest"
	"github.com/aleksanderbl29/meal-planner/internal/storage/postgres"
	"github.com/aleksanderbl29/meal-planner/internal/storage/sqlite"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// MemoryPath selects a throwaway in-process local store.
const MemoryPath = "memory"

// Remote store kinds.
const (
	RemoteNone     = ""
	RemoteKVRest   = "kvrest"
	RemotePostgres = "postgres"
)

// Config is embedded in the command line definition; every field can also
// be set through its environment variable.
type Config struct {
	DB          string `help:"Local store: a .db file (SQLite), a .json file, or 'memory'." default:"${default_db}" env:"MEALPLANNER_DB" name:"db"`
	KVRestURL   string `help:"Remote KV REST endpoint." env:"KV_REST_API_URL" name:"kv-url"`
	KVRestToken string `help:"Remote KV REST token (falls back to the OS keyring)." env:"KV_REST_API_TOKEN" name:"kv-token"`
	Postgres    string `help:"PostgreSQL connection string for the remote store. Must not contain a password." env:"MEALPLANNER_POSTGRES" name:"postgres"`
	JWTSecret   string `help:"Secret for signing session tokens (falls back to the OS keyring)." env:"MEALPLANNER_JWT_SECRET" name:"jwt-secret"`
	RequireAuth bool   `help:"Reject actions without an authenticated session." env:"MEALPLANNER_REQUIRE_AUTH" name:"require-auth"`
	Historic    string `help:"History list: 'all' meals or only 'past' weeks." enum:"all,past" default:"all" env:"MEALPLANNER_HISTORIC"`
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		logger.Debug("Loaded environment file", "path", p)
	}
	return nil
}

// ResolveSecrets fills missing credentials from the OS keyring.
func (c *Config) ResolveSecrets() {
	c.KVRestToken = fromKeyring(c.KVRestToken, keyring.KVToken, c.KVRestURL != "")
	c.JWTSecret = fromKeyring(c.JWTSecret, keyring.JWTSecret, true)
}

func fromKeyring(current string, secret keyring.Secret, wanted bool) string {
	if current != "" || !wanted {
		return current
	}
	value, err := keyring.Get(secret)
	switch {
	case err == nil:
		logger.Debug("Using credentials from OS keyring", "secret", string(secret))
		return value
	case errors.Is(err, keyring.ErrNotFound):
		return ""
	default:
		logger.Debug("OS keyring lookup failed", "secret", string(secret), "error", err)
		return ""
	}
}

// Policy returns the configured history policy.
func (c Config) Policy() (weeks.HistoricPolicy, error) {
	return weeks.ParseHistoricPolicy(c.Historic)
}

// Validate checks the configuration without touching any store.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if strings.TrimSpace(c.DB) == "" {
		return errors.New("local store path cannot be empty")
	}
	if c.Postgres != "" {
		if _, err := postgres.ValidateConnString(c.Postgres); err != nil {
			return err
		}
	}
	if c.KVRestToken != "" && c.KVRestURL == "" {
		logger.Warn("KV REST token set without a URL, remote store disabled")
	}
	return nil
}

// Remote reports which remote store the configuration selects.
// The KV REST store needs both its URL and token; it wins over PostgreSQL.
func (c Config) Remote() string {
	switch {
	case c.KVRestURL != "" && c.KVRestToken != "":
		return RemoteKVRest
	case c.Postgres != "":
		return RemotePostgres
	default:
		return RemoteNone
	}
}

// Backends builds the primary (remote, possibly nil) and secondary (local)
// stores. The choice is made here once and never revisited per call.
func (c Config) Backends() (primary, secondary storage.Backend, err error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	secondary, err = c.localBackend()
	if err != nil {
		return nil, nil, err
	}

	switch c.Remote() {
	case RemoteKVRest:
		client, err := kvrest.New(c.KVRestURL, c.KVRestToken)
		if err != nil {
			return nil, nil, err
		}
		primary = client
	case RemotePostgres:
		primary = postgres.New(c.Postgres)
	}
	return primary, secondary, nil
}

// Store composes the backends into the tiered store used by the planner.
func (c Config) Store() (*storage.Tiered, error) {
	primary, secondary, err := c.Backends()
	if err != nil {
		return nil, err
	}
	return storage.NewTiered(primary, secondary), nil
}

func (c Config) localBackend() (storage.Backend, error) {
	if c.DB == MemoryPath {
		return storage.NewMemoryBackend(), nil
	}
	path, err := ExpandHome(c.DB)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonfile.NewStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DefaultDB is the default local store path, used for the ${default_db}
// kong variable.
func DefaultDB() string {
	path, err := ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return constants.DefaultConfigPath
	}
	return path
}

// ConfigDir returns the directory holding the local store; logs are
// written below it.
func (c Config) ConfigDir() string {
	fallback := filepath.Dir(DefaultDB())
	if c.DB == MemoryPath || c.DB == "" {
		return fallback
	}
	path, err := ExpandHome(c.DB)
	if err != nil {
		return fallback
	}
	return filepath.Dir(path)
}
