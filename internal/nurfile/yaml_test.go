package nurfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "nurfile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_BasicFile(t *testing.T) {
	path := writeTaskFile(t, `
env:
  GLOBAL: "1"

options:
  output:
    prefix: aligned
    style: grouped

tasks:
  default:
    dependencies: [build]

  build:
    description: compile the project
    env:
      TASK: "yes"
    commands:
      - sh: echo building
      - sh: echo maybe-ok
        ignore_result: true
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", f.Env["GLOBAL"])
	assert.Equal(t, Aligned, f.Options.Output.Prefix)
	assert.Equal(t, Grouped, f.Options.Output.Style)

	build, ok := f.Tasks["build"]
	require.True(t, ok)
	assert.Equal(t, "compile the project", build.Description)
	assert.True(t, build.Cancellable)
	require.Len(t, build.Commands, 2)
	assert.Equal(t, "echo building", build.Commands[0].Sh)
	assert.True(t, build.Commands[1].IgnoreResult)

	def, ok := f.Tasks["default"]
	require.True(t, ok)
	assert.Equal(t, []string{"build"}, def.Dependencies)
}

func TestLoad_CancellableDefaultsTrue(t *testing.T) {
	path := writeTaskFile(t, `
tasks:
  default:
    commands:
      - sh: echo hi
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.True(t, f.Tasks["default"].Cancellable)
}

func TestLoad_CancellableFalseIsHonored(t *testing.T) {
	path := writeTaskFile(t, `
tasks:
  default:
    cancellable: false
    commands:
      - sh: echo hi
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.False(t, f.Tasks["default"].Cancellable)
}

func TestLoad_UnknownPrefixStyleErrors(t *testing.T) {
	path := writeTaskFile(t, `
options:
  output:
    prefix: bogus
tasks:
  default: {}
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFile_SortedTaskNames(t *testing.T) {
	f := File{Tasks: map[string]Task{"c": {}, "a": {}, "b": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, f.SortedTaskNames())
}
