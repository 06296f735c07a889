package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file looked up by LoadOptional.
const FileName = "ytplayer.yaml"

// Config is the host-facing configuration of an embedded player.
type Config struct {
	// HandleNetworkEvents subscribes the player to connectivity changes.
	// Initialization is deferred until a network is available, and playback
	// is resumed when connectivity returns.
	HandleNetworkEvents bool
	// BackgroundPlaybackEnabled suppresses the pause issued while the host
	// is in the background.
	BackgroundPlaybackEnabled bool
	// Player holds the variables handed to the runtime.
	Player Player
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		HandleNetworkEvents: true,
		Player:              Default(),
	}
}

// fileConfig mirrors ytplayer.yaml. Pointers distinguish "unset" from zero.
type fileConfig struct {
	HandleNetworkEvents       *bool      `yaml:"handle_network_events"`
	BackgroundPlaybackEnabled *bool      `yaml:"background_playback_enabled"`
	Player                    filePlayer `yaml:"player"`
}

type filePlayer struct {
	Autoplay     *bool    `yaml:"autoplay"`
	Controls     *int     `yaml:"controls"`
	Rel          *int     `yaml:"rel"`
	IVLoadPolicy *int     `yaml:"iv_load_policy"`
	CCLoadPolicy *int     `yaml:"cc_load_policy"`
	CCLangPref   string   `yaml:"cc_lang_pref,omitempty"`
	Lang         string   `yaml:"lang,omitempty"`
	Origin       string   `yaml:"origin,omitempty"`
	Fullscreen   *bool    `yaml:"fullscreen"`
	List         string   `yaml:"list,omitempty"`
	ListType     string   `yaml:"list_type,omitempty"`
	Start        *float64 `yaml:"start,omitempty"`
	End          *float64 `yaml:"end,omitempty"`
}

// LoadOptional reads ytplayer.yaml from dir if present. A missing file yields
// DefaultConfig.
func LoadOptional(fs afero.Fs, dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and validates the configuration file at path.
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults to unset fields, and
// validates the result.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	cfg := fc.resolve()
	if err := cfg.Player.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

func (fc fileConfig) resolve() Config {
	cfg := DefaultConfig()
	setIf(&cfg.HandleNetworkEvents, fc.HandleNetworkEvents)
	setIf(&cfg.BackgroundPlaybackEnabled, fc.BackgroundPlaybackEnabled)

	p := &cfg.Player
	fp := fc.Player
	setIf(&p.Autoplay, fp.Autoplay)
	setIf(&p.Controls, fp.Controls)
	setIf(&p.Rel, fp.Rel)
	setIf(&p.IVLoadPolicy, fp.IVLoadPolicy)
	setIf(&p.CCLoadPolicy, fp.CCLoadPolicy)
	setIf(&p.Fullscreen, fp.Fullscreen)
	p.CCLangPref = strings.TrimSpace(fp.CCLangPref)
	p.Lang = strings.TrimSpace(fp.Lang)
	if origin := strings.TrimSpace(fp.Origin); origin != "" {
		p.Origin = origin
	}
	p.List = strings.TrimSpace(fp.List)
	p.ListType = strings.TrimSpace(fp.ListType)
	if p.List != "" && p.ListType == "" {
		p.ListType = ListTypePlaylist
	}
	p.Start = mo.PointerToOption(fp.Start)
	p.End = mo.PointerToOption(fp.End)
	return cfg
}

// Marshal renders cfg as ytplayer.yaml.
func Marshal(cfg Config) ([]byte, error) {
	fp := filePlayer{
		Autoplay:     &cfg.Player.Autoplay,
		Controls:     &cfg.Player.Controls,
		Rel:          &cfg.Player.Rel,
		IVLoadPolicy: &cfg.Player.IVLoadPolicy,
		CCLoadPolicy: &cfg.Player.CCLoadPolicy,
		CCLangPref:   cfg.Player.CCLangPref,
		Lang:         cfg.Player.Lang,
		Origin:       cfg.Player.Origin,
		Fullscreen:   &cfg.Player.Fullscreen,
		List:         cfg.Player.List,
		ListType:     cfg.Player.ListType,
		Start:        cfg.Player.Start.ToPointer(),
		End:          cfg.Player.End.ToPointer(),
	}
	return yaml.Marshal(fileConfig{
		HandleNetworkEvents:       &cfg.HandleNetworkEvents,
		BackgroundPlaybackEnabled: &cfg.BackgroundPlaybackEnabled,
		Player:                    fp,
	})
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
