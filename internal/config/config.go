package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the optional settings file looked up in the install root.
const FileName = "launcher.toml"

// Settings captures the user editable launcher settings stored in launcher.toml.
type Settings struct {
	Runtime RuntimeBlock `toml:"runtime"`
	Server  ServerBlock  `toml:"server"`
	Install InstallBlock `toml:"install"`
}

// RuntimeBlock selects the interpreter used to install and run the server.
type RuntimeBlock struct {
	Command string `toml:"command"`
}

// ServerBlock describes the launched server and how clients reach it.
type ServerBlock struct {
	Script       string `toml:"script"`
	Requirements string `toml:"requirements"`
	URL          string `toml:"url"`
	Package      string `toml:"package"`
}

// InstallBlock governs the dependency install step.
type InstallBlock struct {
	Skip bool `toml:"skip"`
}

var (
	// ErrMissingScript indicates the server script was configured as empty.
	ErrMissingScript = errors.New("server.script must name the server entry point")
	// ErrMissingRequirements indicates the requirements manifest was configured as empty.
	ErrMissingRequirements = errors.New("server.requirements must name a requirements file")
	// ErrInvalidURL indicates the server URL is not an http(s) URL.
	ErrInvalidURL = errors.New("server.url must start with http:// or https://")
)

// DefaultCommand picks the interpreter name for the host platform.
func DefaultCommand(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// Default returns the baseline settings used when launcher.toml is absent.
func Default() Settings {
	var s Settings
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if strings.TrimSpace(s.Runtime.Command) == "" {
		s.Runtime.Command = DefaultCommand(runtime.GOOS)
	}
	if s.Server.Script == "" {
		s.Server.Script = "mcp_microsoft_graph.py"
	}
	if s.Server.Requirements == "" {
		s.Server.Requirements = "requirements.txt"
	}
	if s.Server.URL == "" {
		s.Server.URL = "http://localhost:8000/sse"
	}
	if s.Server.Package == "" {
		s.Server.Package = "@mcp/entra"
	}
}

// Validate ensures the settings can drive a launch.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Server.Script) == "" {
		return ErrMissingScript
	}
	if strings.TrimSpace(s.Server.Requirements) == "" {
		return ErrMissingRequirements
	}
	if !strings.HasPrefix(s.Server.URL, "http://") && !strings.HasPrefix(s.Server.URL, "https://") {
		return ErrInvalidURL
	}
	return nil
}

// Load reads settings from disk. Missing files return the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, err
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode renders settings in launcher.toml form.
func Encode(s Settings) ([]byte, error) {
	return toml.Marshal(s)
}
