package zorkvm

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the server binary's TOML-loaded configuration (spec §1 ambient
// stack: "a Config struct... from an optional TOML file, with field defaults
// applied when the file is absent"), grounded on the pack's toml-as-settings
// idiom rather than flags-only configuration.
type Config struct {
	ListenAddress  string        `toml:"listen_address"`
	SaveDirectory  string        `toml:"save_directory"`
	SaveFrequency  time.Duration `toml:"save_frequency"`
	RandSeed       int64         `toml:"rand_seed"`
	EnableScripting bool         `toml:"enable_scripting"`
}

// DefaultConfig returns the configuration used when no TOML file is present.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   ":7890",
		SaveDirectory:   ".",
		SaveFrequency:   time.Hour,
		RandSeed:        1,
		EnableScripting: true,
	}
}

// LoadConfig reads a TOML file at path, overlaying it on DefaultConfig.
// A missing file is not an error: the caller gets the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}
