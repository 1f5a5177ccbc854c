// Package config loads the talkpage CLI's settings and the render context
// documents it renders.
package config

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"impractical.co/talkpage"
)

// ErrEmptyInput is returned when a render context document has no content.
var ErrEmptyInput = errors.New("render context document is empty")

// Config holds the CLI defaults sourced from TALKPAGE_* env vars. Command
// line flags override them.
type Config struct {
	// LogLevel is the logging level from TALKPAGE_LOG_LEVEL.
	LogLevel string `env:"TALKPAGE_LOG_LEVEL" envDefault:"info"`
	// Variant is the talk page variant from TALKPAGE_VARIANT.
	Variant string `env:"TALKPAGE_VARIANT" envDefault:"default"`
	// ThemeDir is a directory of template overrides from TALKPAGE_THEME_DIR.
	ThemeDir string `env:"TALKPAGE_THEME_DIR"`
	// DefaultTitle is the fallback page title from TALKPAGE_DEFAULT_TITLE.
	DefaultTitle string `env:"TALKPAGE_DEFAULT_TITLE"`
	// RedisplayMinComments is the thread length from
	// TALKPAGE_REDISPLAY_MIN_COMMENTS at which the comment link is
	// repeated, when a document doesn't say.
	RedisplayMinComments int `env:"TALKPAGE_REDISPLAY_MIN_COMMENTS"`
}

// FromEnv reads a Config from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse TALKPAGE_* environment: %w", err)
	}
	return cfg, nil
}

// FromEnvironment reads a Config from vars instead of the process
// environment.
func FromEnvironment(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse TALKPAGE_* environment: %w", err)
	}
	return cfg, nil
}

// Policy returns the RedisplayPolicy described by the Config.
func (c Config) Policy() talkpage.RedisplayPolicy {
	return talkpage.RedisplayPolicy{MinComments: c.RedisplayMinComments}
}

// Input is a render context document, as written by hand or exported by a
// host application for previews. JSON documents are accepted too.
type Input struct {
	Node        any    `yaml:"node,omitempty"`
	Comments    string `yaml:"comments,omitempty"`
	CommentLink string `yaml:"comment_link,omitempty"`
	AddComments bool   `yaml:"add_comments,omitempty"`
	// Redisplay is left to the RedisplayPolicy when it's not set.
	Redisplay *bool  `yaml:"redisplay,omitempty"`
	Title     string `yaml:"title,omitempty"`
	// CommentCount is the number of comments in Comments, for the
	// RedisplayPolicy.
	CommentCount int `yaml:"comment_count,omitempty"`
}

// DecodeInput reads a single render context document from r. Unknown keys
// are rejected.
func DecodeInput(r io.Reader) (Input, error) {
	var in Input
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, ErrEmptyInput
		}
		return Input{}, fmt.Errorf("decode render context: %w", err)
	}
	return in, nil
}

// LoadInput reads the render context document at path. An empty path or "-"
// reads from stdin.
func LoadInput(path string, stdin io.Reader) (Input, error) {
	if path == "" || path == "-" {
		return DecodeInput(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("open render context %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	in, err := DecodeInput(f)
	if err != nil {
		return Input{}, fmt.Errorf("load %q: %w", path, err)
	}
	return in, nil
}

// RenderContext converts the document into a talkpage.RenderContext. The
// document's markup is trusted as-is, the same way a host application's
// rendered comments would be.
func (in Input) RenderContext(policy talkpage.RedisplayPolicy) talkpage.RenderContext {
	rc := talkpage.RenderContext{
		Node:        in.Node,
		Comments:    template.HTML(in.Comments),    // #nosec G203 -- pre-rendered by the document author
		CommentLink: template.HTML(in.CommentLink), // #nosec G203 -- pre-rendered by the document author
		AddComments: in.AddComments,
		Title:       in.Title,
	}
	if in.Redisplay != nil {
		rc.Redisplay = *in.Redisplay
		return rc
	}
	return policy.Apply(rc, in.CommentCount)
}
