package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"focusnav/internal/eventbus"
	"focusnav/internal/search"
	"focusnav/internal/speech"
)

const (
	defaultConfigPath   = "~/.config/focusnav/config.toml"
	defaultTickMillis   = 100
	defaultJournalLines = 200
	defaultGraceTicks   = 1
)

// Config represents the application configuration
type Config struct {
	Version int               `toml:"version"`
	Search  SearchSettings    `toml:"search"`
	Stack   StackSettings     `toml:"stack"`
	Speech  SpeechSettings    `toml:"speech"`
	Cues    map[string]string `toml:"cues"` // cue name -> sound name
	UI      UISettings        `toml:"ui"`
}

// SearchSettings configures type-ahead search
type SearchSettings struct {
	TimeoutTicks uint64 `toml:"timeout_ticks"` // 0 never resets the buffer
}

// StackSettings configures the focus-context stack
type StackSettings struct {
	GraceTicks uint64 `toml:"grace_ticks"`
}

// SpeechSettings configures announcement text
type SpeechSettings struct {
	Separator string          `toml:"separator"`
	Messages  speech.Messages `toml:"messages"`
}

// UISettings represents settings of the terminal host
type UISettings struct {
	TickMillis   int `toml:"tick_millis"`
	JournalLines int `toml:"journal_lines"`
}

// TickInterval returns the host tick period
func (u UISettings) TickInterval() time.Duration {
	return time.Duration(u.TickMillis) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for the default
// location when path is empty
func NewConfigService(path string) (ConfigService, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return &configService{filePath: resolved}, nil
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) (ConfigService, error) {
	cs, err := NewConfigService(path)
	if err != nil {
		return nil, err
	}
	cs.(*configService).bus = bus
	return cs, nil
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the configuration. A missing file yields the defaults; keys
// absent from the file keep their default values.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(cs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: true})
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", cs.filePath, err)
	}
	cfg.normalize()

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save writes the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(cs.filePath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cs.filePath, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

func (cs *configService) publish(event eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search:  SearchSettings{TimeoutTicks: search.DefaultTimeout},
		Stack:   StackSettings{GraceTicks: defaultGraceTicks},
		Speech: SpeechSettings{
			Separator: speech.DefaultSeparator,
			Messages:  speech.DefaultMessages(),
		},
		Cues: map[string]string{},
		UI: UISettings{
			TickMillis:   defaultTickMillis,
			JournalLines: defaultJournalLines,
		},
	}
}

// normalize replaces values that cannot be used with their defaults
func (c *Config) normalize() {
	if c.Speech.Separator == "" {
		c.Speech.Separator = speech.DefaultSeparator
	}
	if c.UI.TickMillis <= 0 {
		c.UI.TickMillis = defaultTickMillis
	}
	if c.UI.JournalLines <= 0 {
		c.UI.JournalLines = defaultJournalLines
	}
	if c.Cues == nil {
		c.Cues = map[string]string{}
	}
	for name, sound := range c.Cues {
		if strings.TrimSpace(sound) == "" {
			delete(c.Cues, name)
		}
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
