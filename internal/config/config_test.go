package config

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impractical.co/talkpage"
)

func TestFromEnvironmentDefaults(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", Variant: "default"}, cfg)
}

func TestFromEnvironment(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{
		"TALKPAGE_LOG_LEVEL":              "debug",
		"TALKPAGE_VARIANT":                "titled",
		"TALKPAGE_THEME_DIR":              "/srv/theme",
		"TALKPAGE_DEFAULT_TITLE":          "Discussion",
		"TALKPAGE_REDISPLAY_MIN_COMMENTS": "25",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:             "debug",
		Variant:              "titled",
		ThemeDir:             "/srv/theme",
		DefaultTitle:         "Discussion",
		RedisplayMinComments: 25,
	}, cfg)
	assert.Equal(t, talkpage.RedisplayPolicy{MinComments: 25}, cfg.Policy())
}

func TestFromEnvironmentInvalid(t *testing.T) {
	_, err := FromEnvironment(map[string]string{
		"TALKPAGE_REDISPLAY_MIN_COMMENTS": "lots",
	})
	require.Error(t, err)
}

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput(strings.NewReader(`
node:
  nid: 42
  type: article
comments: <ul><li>Hi</li></ul>
comment_link: <a href="/comment/reply/42">Add new comment</a>
add_comments: true
redisplay: true
title: Talk about 42
comment_count: 1
`))
	require.NoError(t, err)
	require.NotNil(t, in.Redisplay)
	assert.True(t, *in.Redisplay)
	assert.Equal(t, "<ul><li>Hi</li></ul>", in.Comments)
	assert.Equal(t, `<a href="/comment/reply/42">Add new comment</a>`, in.CommentLink)
	assert.True(t, in.AddComments)
	assert.Equal(t, "Talk about 42", in.Title)
	assert.Equal(t, 1, in.CommentCount)
	assert.Equal(t, map[string]any{"nid": 42, "type": "article"}, in.Node)
}

func TestDecodeInputJSON(t *testing.T) {
	in, err := DecodeInput(strings.NewReader(`{"comments": "<p>c</p>", "comment_link": "<a>Add</a>"}`))
	require.NoError(t, err)
	assert.Equal(t, "<p>c</p>", in.Comments)
	assert.Equal(t, "<a>Add</a>", in.CommentLink)
	assert.Nil(t, in.Redisplay)
}

func TestDecodeInputErrors(t *testing.T) {
	_, err := DecodeInput(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = DecodeInput(strings.NewReader("comment_links: <a>typo</a>\n"))
	require.Error(t, err)
}

func TestLoadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("comments: <p>from file</p>\n"), 0o600))

	in, err := LoadInput(path, strings.NewReader("comments: <p>from stdin</p>\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>from file</p>", in.Comments)

	in, err = LoadInput("-", strings.NewReader("comments: <p>from stdin</p>\n"))
	require.NoError(t, err)
	assert.Equal(t, "<p>from stdin</p>", in.Comments)

	_, err = LoadInput(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestInputRenderContext(t *testing.T) {
	policy := talkpage.RedisplayPolicy{MinComments: 3}
	no := false

	rc := Input{Comments: "<p>c</p>", CommentLink: "<a>Add</a>", CommentCount: 3}.RenderContext(policy)
	assert.Equal(t, talkpage.RenderContext{
		Comments:    template.HTML("<p>c</p>"),
		CommentLink: template.HTML("<a>Add</a>"),
		Redisplay:   true,
	}, rc)

	rc = Input{CommentCount: 2}.RenderContext(policy)
	assert.False(t, rc.Redisplay)

	rc = Input{CommentCount: 10, Redisplay: &no}.RenderContext(policy)
	assert.False(t, rc.Redisplay, "an explicit redisplay should win over the policy")
}
