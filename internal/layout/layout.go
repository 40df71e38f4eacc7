package layout

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/uniQuk/mcpEntra/internal/config"
)

// EnvFileName is the credentials file written by setup.
const EnvFileName = ".env"

var (
	// ErrNotFound indicates no install root could be discovered.
	ErrNotFound = errors.New("cannot locate the server install; pass --root or set MCP_ENTRA_HOME")
	// ErrNotDirectory indicates an explicit root is not a directory.
	ErrNotDirectory = errors.New("install root is not a directory")
)

// Layout describes the files of one install on disk.
type Layout struct {
	Root             string
	SettingsPath     string
	Settings         config.Settings
	EnvPath          string
	ScriptPath       string
	RequirementsPath string
}

// Discover walks upward from start until it finds a directory that holds the
// server script or a launcher.toml.
func Discover(start string) (*Layout, error) {
	root, err := locateRoot(start)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load constructs a Layout from a known root directory.
func Load(root string) (*Layout, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if !isDir(root) {
		return nil, ErrNotDirectory
	}

	settingsPath := filepath.Join(root, config.FileName)
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}

	return &Layout{
		Root:             root,
		SettingsPath:     settingsPath,
		Settings:         settings,
		EnvPath:          filepath.Join(root, EnvFileName),
		ScriptPath:       resolve(root, settings.Server.Script),
		RequirementsPath: resolve(root, settings.Server.Requirements),
	}, nil
}

// Resolve picks the install root: an explicit directory wins, then home, then
// discovery from the running executable.
func Resolve(explicit, home string) (*Layout, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if home != "" {
		return Load(home)
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return Discover(filepath.Dir(exe))
}

// ConfigExists reports whether setup already ran for this install. Any entry
// at the path counts, including a dangling symlink, since setup would refuse to
// create the file over it.
func (l *Layout) ConfigExists() (bool, error) {
	_, err := os.Lstat(l.EnvPath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func locateRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	defaultScript := config.Default().Server.Script
	for {
		if exists(filepath.Join(cur, config.FileName)) || exists(filepath.Join(cur, defaultScript)) {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
