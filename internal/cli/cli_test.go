package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impractical.co/talkpage"
	"impractical.co/talkpage/internal/config"
	"impractical.co/talkpage/internal/logging"
)

const sampleDocument = `
node:
  nid: 1
comments: <ul><li>Hi</li></ul>
comment_link: <a>Add</a>
comment_count: 12
`

func runCommand(t *testing.T, cfg config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(cfg, logging.NewLogger(&stderr, logging.LevelInfo))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func defaultConfig() config.Config {
	return config.Config{LogLevel: "info", Variant: string(talkpage.VariantDefault)}
}

func TestRenderFromStdin(t *testing.T) {
	stdout, _, err := runCommand(t, defaultConfig(), sampleDocument, "render")
	require.NoError(t, err)
	assert.Equal(t, "<p>\n<a>Add</a>\n</p>\n<br />\n<ul><li>Hi</li></ul>\n", stdout)
}

func TestRenderRedisplayPolicy(t *testing.T) {
	cfg := defaultConfig()
	cfg.RedisplayMinComments = 10

	stdout, _, err := runCommand(t, cfg, sampleDocument, "render")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "<p>\n<a>Add</a>\n</p>\n"))

	// the flag wins over the environment
	stdout, _, err = runCommand(t, cfg, sampleDocument, "render", "--redisplay-min-comments", "20")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stdout, "<p>\n<a>Add</a>\n</p>\n"))
}

func TestRenderFileToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "talk.yaml")
	output := filepath.Join(dir, "talk.html")
	require.NoError(t, os.WriteFile(input, []byte(sampleDocument+"redisplay: true\n"), 0o600))

	stdout, stderr, err := runCommand(t, defaultConfig(), "", "render", "-i", input, "-o", output, "--variant", "titled")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "rendered talk page")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<p>\n<a>Add</a>\n</p>\n<br />\n<ul><li>Hi</li></ul>\n<p>\n<a>Add</a>\n</p>\n", string(written))
}

func TestRenderWithTheme(t *testing.T) {
	themeDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, talkpage.TitledTemplate), []byte(`<h2>{{ .Title }}</h2>{{ .Comments }}`), 0o600))

	stdout, _, err := runCommand(t, defaultConfig(), sampleDocument, "render", "--variant", "titled", "--theme", themeDir, "--title-default", "Discussion")
	require.NoError(t, err)
	assert.Equal(t, "<h2>Discussion</h2><ul><li>Hi</li></ul>", stdout)
}

func TestRenderErrors(t *testing.T) {
	_, _, err := runCommand(t, defaultConfig(), sampleDocument, "render", "--variant", "sidebar")
	require.ErrorIs(t, err, talkpage.ErrUnknownVariant)

	_, _, err = runCommand(t, defaultConfig(), "", "render")
	require.ErrorIs(t, err, config.ErrEmptyInput)

	_, _, err = runCommand(t, defaultConfig(), sampleDocument, "render", "--theme", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCommand(t, defaultConfig(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)
}
