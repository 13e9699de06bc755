// Package encoder locates the external ffmpeg binary used to encode piped
// frames and to mux the final recording.
package encoder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

// ErrNotFound is returned when no encoder binary can be located.
var ErrNotFound = errors.New("encoder: ffmpeg not found")

const binaryName = "ffmpeg"

// Locator resolves the encoder path once and caches the outcome for the
// lifetime of the Locator.
type Locator struct {
	override string
	lookPath func(string) (string, error)
	dirs     []string

	once sync.Once
	path string
	err  error
}

// NewLocator returns a locator that prefers override (when non-empty), then
// PATH, then well-known install directories.
func NewLocator(override string) *Locator {
	return &Locator{override: override, lookPath: exec.LookPath, dirs: knownDirs()}
}

// Path returns the resolved encoder path.
func (l *Locator) Path() (string, error) {
	l.once.Do(func() { l.path, l.err = l.resolve() })
	return l.path, l.err
}

func (l *Locator) resolve() (string, error) {
	if l.override != "" {
		if isExecutable(l.override) {
			return l.override, nil
		}
		return "", fmt.Errorf("%w: override %q is not executable", ErrNotFound, l.override)
	}
	if p, err := l.lookPath(binaryName); err == nil {
		return p, nil
	}
	name := binaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	for _, dir := range l.dirs {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

var (
	defaultOnce    sync.Once
	defaultLocator *Locator
)

// Default returns the process wide locator. It is created on first use with no
// override; SetDefault must run before the first call to take effect.
func Default() *Locator {
	defaultOnce.Do(func() {
		if defaultLocator == nil {
			defaultLocator = NewLocator("")
		}
	})
	return defaultLocator
}

// SetDefault installs the process wide locator with the given override. It
// returns false when Default was already resolved.
func SetDefault(override string) bool {
	installed := false
	defaultOnce.Do(func() {
		defaultLocator = NewLocator(override)
		installed = true
	})
	return installed
}

// Path resolves the encoder through the process wide locator.
func Path() (string, error) { return Default().Path() }

func isExecutable(p string) bool {
	st, err := os.Stat(p)
	if err != nil || st.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return st.Mode()&0o111 != 0
}

func knownDirs() []string {
	switch runtime.GOOS {
	case "windows":
		dirs := []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "WinGet", "Links"))
		}
		return dirs
	case "darwin":
		return []string{"/opt/homebrew/bin", "/usr/local/bin", "/opt/local/bin"}
	default:
		return []string{"/usr/bin", "/usr/local/bin", "/snap/bin"}
	}
}
