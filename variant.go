package talkpage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned by ParseVariant when it doesn't recognize the
// variant name it's given.
var ErrUnknownVariant = errors.New("unknown talk page variant")

// Variant selects which of the talk page templates gets rendered. Both
// variants produce the same HTML for the same RenderContext; they differ in
// what the templates are given to work with.
type Variant string

const (
	// VariantDefault renders the talk page without a title. Templates
	// see .Node, .Comments, .CommentLink, .AddComments and .Redisplay.
	VariantDefault Variant = "default"

	// VariantTitled renders the talk page with its title available to
	// templates as .Title, in addition to everything VariantDefault
	// provides.
	VariantTitled Variant = "titled"
)

// ParseVariant returns the Variant with the given name. Names are matched
// case-insensitively.
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantDefault:
		return VariantDefault, nil
	case VariantTitled:
		return VariantTitled, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

func (v Variant) String() string {
	return string(v.normalize())
}

// normalize maps anything that isn't a known variant to VariantDefault.
func (v Variant) normalize() Variant {
	if v == VariantTitled {
		return VariantTitled
	}
	return VariantDefault
}

// templates returns the template files the variant needs, in the order they
// should be parsed, and the one that needs to be executed.
func (v Variant) templates() (paths []string, executed string) {
	switch v.normalize() {
	case VariantTitled:
		return []string{LinkTemplate, TitledTemplate}, TitledTemplate
	default:
		return []string{LinkTemplate, DefaultTemplate}, DefaultTemplate
	}
}

// cacheKey is the key a variant's parsed templates are cached under.
func (v Variant) cacheKey() string {
	return "talkpage/" + v.String()
}
