package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/stackinit/internal/filesystem"
	"github.com/jakoblorz/stackinit/internal/runner"
)

func newTemplateFS(t *testing.T) *filesystem.MockFileSystem {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/projects/my-blog")
	fs.AddFile("/projects/my-blog/.env.example", []byte("SESSION_SECRET=\"super-duper-s3cret\"\n"))
	fs.AddFile("/projects/my-blog/README.md", []byte("# stackinit-template\n"))
	fs.AddFile("/projects/my-blog/package.json", []byte(`{
  "name": "stackinit-template",
  "scripts": {
    "dev": "app dev",
    "typecheck": "tsc",
    "validate": "run-p lint typecheck"
  },
  "devDependencies": {
    "typescript": "^5.0.4"
  }
}
`))
	fs.AddFile("/projects/my-blog/gitignore", []byte("node_modules\n"))
	fs.AddFile("/projects/my-blog/.github/workflows/deploy.yml", []byte(`jobs:
  typecheck:
    runs-on: ubuntu-latest
  deploy:
    needs:
      - typecheck
    runs-on: ubuntu-latest
`))
	fs.AddFile("/projects/my-blog/app.config.js", []byte("server: \"./app/entry.server.tsx\"\n"))
	fs.AddFile("/projects/my-blog/vitest.config.js", []byte("setup: \"./test/setup-test-env.ts\"\n"))
	return fs
}

func TestInitCommandPlainVariant(t *testing.T) {
	fs := newTemplateFS(t)
	mock := runner.NewMockRunner()

	cmd := NewInitCommand(fs, mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"/projects/my-blog", "--yes", "--typescript=false", "--pkg-manager", "npm"})

	require.NoError(t, cmd.Execute())

	env, err := fs.ReadFile("/projects/my-blog/.env")
	require.NoError(t, err)
	require.Regexp(t, `SESSION_SECRET=[0-9a-f]{32}`, string(env))

	readme, err := fs.ReadFile("/projects/my-blog/README.md")
	require.NoError(t, err)
	require.Equal(t, "# my-blog\n", string(readme))

	manifest, err := fs.ReadFile("/projects/my-blog/package.json")
	require.NoError(t, err)
	require.NotContains(t, string(manifest), "typescript")

	require.True(t, fs.Exists("/projects/my-blog/.gitignore"))

	// defaults decline the cloud backend and the validation run
	require.Empty(t, mock.Invocations())

	require.Contains(t, out.String(), "npm run dev")
}

func TestInitCommandRejectsUnknownPackageManager(t *testing.T) {
	cmd := NewInitCommand(newTemplateFS(t), runner.NewMockRunner())
	cmd.SetArgs([]string{"/projects/my-blog", "--yes", "--pkg-manager", "bun"})

	require.Error(t, cmd.Execute())
}

func TestInitCommandMissingDirectory(t *testing.T) {
	cmd := NewInitCommand(filesystem.NewMockFileSystem(), runner.NewMockRunner())
	cmd.SetArgs([]string{"/nowhere", "--yes"})

	require.Error(t, cmd.Execute())
}
