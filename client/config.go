package client

import (
	"flag"
	"os"
	"path/filepath"
)

// Config holds runtime settings for the cityctl CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the complaint API, including the /city-api prefix.
//   - SessionFile: path of the JSON file the session is persisted to.
type Config struct {
	ServerBaseURL string
	SessionFile   string
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "cityctl", "session.json")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5004/city-api"
	c.SessionFile = defaultSessionFile()
}

// LoadConfig constructs a Config, applies defaults, then overlays environment
// variables and command-line flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v := os.Getenv("CITY_API_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("CITY_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}

	fs := flag.NewFlagSet("cityctl", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerBaseURL, "server", cfg.ServerBaseURL, "base URL of the complaint API")
	fs.StringVar(&cfg.SessionFile, "session", cfg.SessionFile, "path of the session file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
