package talkpage

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
)

// Theme is an interface for an optional set of template overrides that a View
// renders with.
//
// Any of the talk page template files (DefaultTemplate, TitledTemplate and
// LinkTemplate) found at the root of the theme's fs.FS are used in place of
// the built-in ones. Files the theme doesn't have fall back to the built-in
// versions, so a theme that only wants to restyle the link block only needs
// to ship LinkTemplate.
type Theme interface {
	// TemplateDir returns an fs.FS containing the theme's templates.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher is an optional interface for Themes. Those fulfilling it can
// cache the parsed templates for each Variant, to save on the overhead of
// parsing the templates on every render. The templates being parsed for a
// given key are the same every time, but the RenderContext is not, so the
// output HTML cannot be cached.
type TemplateCacher interface {
	// GetCachedTemplate returns the *template.Template specified by the
	// passed key. It should return nil if the template hasn't been cached
	// yet.
	GetCachedTemplate(ctx context.Context, key string) *template.Template

	// SetCachedTemplate stores the passed *template.Template under the
	// passed key, for later retrieval with GetCachedTemplate.
	//
	// Any errors encountered should be logged, but as this is a
	// best-effort operation, will not be surfaced outside the function.
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

var _ Theme = &CachedTheme{}
var _ TemplateCacher = &CachedTheme{}

// CachedTheme is an implementation of the Theme interface that can be used
// directly or embedded in other Theme implementations. It fulfills the Theme
// interface and the TemplateCacher interface, caching templates in memory
// and exposing the fs.FS passed to NewCachedTheme. A CachedTheme must be
// instantiated through NewCachedTheme, its empty value is not usable.
type CachedTheme struct {
	templateCache   map[string]*template.Template
	templateCacheMu sync.RWMutex

	templateDir fs.FS
}

// NewCachedTheme returns a CachedTheme that overrides templates with the ones
// in templates.
func NewCachedTheme(templates fs.FS) *CachedTheme {
	return &CachedTheme{
		templateCache: map[string]*template.Template{},
		templateDir:   templates,
	}
}

// GetCachedTemplate returns the cached template associated with the passed
// key, if one exists. If no template is cached for that key, it returns nil.
//
// It can safely be used by multiple goroutines.
func (t *CachedTheme) GetCachedTemplate(_ context.Context, key string) *template.Template {
	t.templateCacheMu.RLock()
	defer t.templateCacheMu.RUnlock()
	return t.templateCache[key]
}

// SetCachedTemplate caches a template for the given key.
//
// It can safely be used by multiple goroutines.
func (t *CachedTheme) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	t.templateCacheMu.Lock()
	defer t.templateCacheMu.Unlock()
	t.templateCache[key] = tmpl
}

// TemplateDir returns the fs.FS passed to NewCachedTheme.
func (t *CachedTheme) TemplateDir(_ context.Context) fs.FS {
	return t.templateDir
}
