package source

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one configured upstream feed.
type Entry struct {
	Type           string `yaml:"type"`            // culture_gov | visitgreece | pigolampides | more_events
	BaseURL        string `yaml:"base_url"`        // feed origin, e.g. http://culture-feed:9001
	Path           string `yaml:"path"`            // optional, default /events
	TimeoutSeconds int    `yaml:"timeout_seconds"` // optional, default 30
}

// Timeout returns the configured request timeout, zero when unset.
func (e Entry) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type Config struct {
	Sources []Entry `yaml:"sources"`
}

// Load reads the source list from a YAML file. Order in the file is
// the order the pipeline runs and counts them in.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read sources config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse sources config: %w", err)
	}
	if len(c.Sources) == 0 {
		return Config{}, fmt.Errorf("no sources configured in %s", path)
	}
	return c, nil
}

// BuildAll constructs every configured adapter, in config order.
func BuildAll(cfg Config) ([]Source, error) {
	out := make([]Source, 0, len(cfg.Sources))
	for _, e := range cfg.Sources {
		s, err := NewFromConfig(e)
		if err != nil {
			return nil, fmt.Errorf("build source %q: %w", e.Type, err)
		}
		out = append(out, s)
	}
	return out, nil
}
