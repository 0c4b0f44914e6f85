package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"dvotenative/internal/crypto"
)

// EnvPrefix prefixes every environment variable Config reads.
const EnvPrefix = "DVOTE"

var errBadLogFormat = errors.New(`log format must be "console" or "json"`)

// Config holds runtime wiring options for building the app. Environment
// variables are DVOTE_ followed by the upper-cased, underscore-split field
// name, e.g. DVOTE_WALLET_DIR.
type Config struct {
	Home      string `toml:"home" split_words:"true"`       // config directory, e.g. $HOME/.dvote
	WalletDir string `toml:"wallet_dir" split_words:"true"` // defaults to <home>/wallets

	LogLevel  string `toml:"log_level" split_words:"true"`
	LogFormat string `toml:"log_format" split_words:"true"`
	LogPath   string `toml:"log_path,omitempty" split_words:"true"`

	ArgonTime      uint32 `toml:"argon_time" split_words:"true"`
	ArgonMemoryKiB uint32 `toml:"argon_memory_kib" envconfig:"ARGON_MEMORY_KIB"`
	ArgonThreads   uint8  `toml:"argon_threads" split_words:"true"`

	ProvingKeyCache bool `toml:"proving_key_cache" split_words:"true"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	kdf := crypto.DefaultKDFParams()
	home := ".dvote"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".dvote")
	}
	return Config{
		Home:            home,
		LogLevel:        "warn",
		LogFormat:       "console",
		ArgonTime:       kdf.Time,
		ArgonMemoryKiB:  kdf.MemoryKiB,
		ArgonThreads:    kdf.Threads,
		ProvingKeyCache: true,
	}
}

// LoadConfig layers the TOML file at path (if path is not empty) and then
// the environment over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w, got %q", errBadLogFormat, c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return c.KDFParams().Validate()
}

// KDFParams returns the Argon2id parameters for new ciphertexts.
func (c Config) KDFParams() crypto.KDFParams {
	return crypto.KDFParams{Time: c.ArgonTime, MemoryKiB: c.ArgonMemoryKiB, Threads: c.ArgonThreads}
}

// Wallets returns the wallet directory.
func (c Config) Wallets() string {
	if c.WalletDir != "" {
		return c.WalletDir
	}
	return filepath.Join(c.Home, "wallets")
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var confBuf bytes.Buffer
	if err := toml.NewEncoder(&confBuf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return confBuf.Bytes(), nil
}
