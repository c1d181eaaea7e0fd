package scaffold

import "strings"

// entryPointReplacer maps typed entry-point filenames to their plain
// JavaScript counterparts. Longer suffixes are listed first so .tsx never
// partially matches as .ts.
var entryPointReplacer = strings.NewReplacer(
	".tsx", ".jsx",
	".ts", ".js",
)

// ReplaceProjectName substitutes every literal occurrence of the template
// placeholder name with the derived app name.
func ReplaceProjectName(content []byte, appName string) []byte {
	return []byte(strings.ReplaceAll(string(content), TemplateName, appName))
}

// RewriteEntryPoints points a config file at the plain-JavaScript entry
// filenames instead of the TypeScript ones.
func RewriteEntryPoints(content []byte) []byte {
	return []byte(entryPointReplacer.Replace(string(content)))
}
