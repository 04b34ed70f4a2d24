package config

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabaseFile: path to the local sqlite file used for the session
//     token and other durable client state.
type Config struct {
	ServerBaseURL string
	DatabaseFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.DatabaseFile = "inkwell.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
