package pkgmanager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/stackinit/internal/filesystem"
)

// Manager represents a supported Node package manager
type Manager string

const (
	// Npm is the default npm client
	Npm Manager = "npm"

	// Pnpm is the pnpm client
	Pnpm Manager = "pnpm"

	// Yarn is the yarn classic client
	Yarn Manager = "yarn"
)

// IsValid checks if the manager is a supported variant
func (m Manager) IsValid() bool {
	switch m {
	case Npm, Pnpm, Yarn:
		return true
	default:
		return false
	}
}

// String returns the string representation of Manager
func (m Manager) String() string {
	return string(m)
}

// Parse parses a string into a Manager
func Parse(s string) (Manager, error) {
	m := Manager(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid package manager: %s (must be npm, pnpm, or yarn)", s)
	}
	return m, nil
}

// Exec returns the executable name
func (m Manager) Exec() string {
	return string(m)
}

// Lockfile returns the lockfile name the manager writes
func (m Manager) Lockfile() string {
	switch m {
	case Pnpm:
		return "pnpm-lock.yaml"
	case Yarn:
		return "yarn.lock"
	default:
		return "package-lock.json"
	}
}

// RunCommand builds the argv for running a package.json script
func (m Manager) RunCommand(script string, args ...string) []string {
	argv := []string{m.Exec(), "run", script}
	if len(args) > 0 && m == Npm {
		// npm needs the -- separator to forward script arguments
		argv = append(argv, "--")
	}
	return append(argv, args...)
}

// InstallCommand builds the argv for installing a package
func (m Manager) InstallCommand(pkg string, global bool) []string {
	switch m {
	case Pnpm:
		if global {
			return []string{"pnpm", "add", "-g", pkg}
		}
		return []string{"pnpm", "add", pkg}
	case Yarn:
		if global {
			return []string{"yarn", "global", "add", pkg}
		}
		return []string{"yarn", "add", pkg}
	default:
		if global {
			return []string{"npm", "install", "-g", pkg}
		}
		return []string{"npm", "install", pkg}
	}
}

// InstallAllCommand builds the argv for installing all dependencies
func (m Manager) InstallAllCommand() []string {
	return []string{m.Exec(), "install"}
}

// FromUserAgent derives the manager from an npm_config_user_agent value,
// e.g. "pnpm/8.6.0 npm/? node/v18.16.0 darwin arm64".
func FromUserAgent(ua string) (Manager, bool) {
	name, _, found := strings.Cut(ua, "/")
	if !found {
		return "", false
	}

	m := Manager(name)
	if !m.IsValid() {
		return "", false
	}
	return m, true
}

// Detect resolves the manager for a project directory: an existing
// lockfile wins, then the invoking client's user agent, then npm.
func Detect(fs filesystem.FileSystem, dir string) Manager {
	for _, m := range []Manager{Pnpm, Yarn, Npm} {
		if fs.Exists(filepath.Join(dir, m.Lockfile())) {
			return m
		}
	}

	if m, ok := FromUserAgent(os.Getenv("npm_config_user_agent")); ok {
		return m
	}

	return Npm
}
