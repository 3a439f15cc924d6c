package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SceneContent is what CreateProject writes into every scene file.
const SceneContent = "%YAML 1.1"

// CreateProject lays out files (slash paths) under a fresh project root and
// returns the root.
func CreateProject(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	contents := make(map[string]string, len(files))
	for _, f := range files {
		contents[f] = SceneContent
	}
	CreateFilesWithContent(t, root, contents)
	return root
}

// CreateFilesWithContent writes each file under root, creating directories.
func CreateFilesWithContent(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
