package scaffold

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/jakoblorz/stackinit/internal/filesystem"
	"github.com/jakoblorz/stackinit/internal/pkgmanager"
)

// TemplateName is the placeholder project name the template ships with.
// Every literal occurrence in the README is replaced during init.
const TemplateName = "stackinit-template"

var appNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9-_]`)

// Context holds everything the initializer derives once at startup.
type Context struct {
	// AppName is the sanitized identity of the new project.
	AppName string

	// Typed reports whether the TypeScript flavor of the template is kept.
	Typed bool

	// PackageManager is the client used for install/run commands.
	PackageManager pkgmanager.Manager

	// RootDir is the absolute path of the cloned template.
	RootDir string
}

// DeriveAppName turns a directory name into a valid package name:
// the base name with every character outside [A-Za-z0-9-_] replaced by "-".
func DeriveAppName(dir string) string {
	return appNameSanitizer.ReplaceAllString(filepath.Base(dir), "-")
}

// NewContext builds the scaffold context for a target directory.
func NewContext(fs filesystem.FileSystem, dir string, typed bool, manager pkgmanager.Manager) (*Context, error) {
	if dir == "" {
		wd, err := fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	if !fs.Exists(dir) {
		return nil, fmt.Errorf("target directory does not exist: %s", dir)
	}

	if manager == "" {
		manager = pkgmanager.Detect(fs, dir)
	}

	return &Context{
		AppName:        DeriveAppName(dir),
		Typed:          typed,
		PackageManager: manager,
		RootDir:        dir,
	}, nil
}
