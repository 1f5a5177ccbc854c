package talkpage

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTemplate is the file rendered for VariantDefault.
	DefaultTemplate = "talkpage.html.tmpl"

	// TitledTemplate is the file rendered for VariantTitled.
	TitledTemplate = "talkpage_titled.html.tmpl"

	// LinkTemplate is the file defining the "talkpage.link" template, the
	// block the comment link is rendered in. Both variants use it.
	LinkTemplate = "talkpage_link.html.tmpl"
)

//go:embed templates/*.tmpl
var builtinFiles embed.FS

var builtinFS = func() fs.FS {
	sub, err := fs.Sub(builtinFiles, "templates")
	if err != nil {
		panic(fmt.Sprintf("talkpage: can't open built-in templates: %v", err))
	}
	return sub
}()

// builtinSets holds the parsed built-in templates, which never change and so
// are parsed only once per process.
var builtinSets = sync.OnceValues(func() (map[Variant]*template.Template, error) {
	sets := map[Variant]*template.Template{}
	for _, variant := range []Variant{VariantDefault, VariantTitled} {
		paths, _ := variant.templates()
		tmpl, err := parseTemplates(nil, nil, paths...)
		if err != nil {
			return nil, fmt.Errorf("error parsing built-in templates for variant %s: %w", variant, err)
		}
		sets[variant] = tmpl
	}
	return sets, nil
})

// FuncMapExtender is an interface that Themes can fulfill to add to the map of
// functions available to their templates. The functions are not available to
// the built-in templates.
type FuncMapExtender interface {
	// FuncMap returns an html/template.FuncMap containing all the
	// functions that the Theme is adding to the FuncMap.
	FuncMap(context.Context) template.FuncMap
}

// View renders talk pages. A View holds no state about the pages it renders
// and can safely be used by multiple goroutines.
type View struct {
	theme        Theme
	defaultTitle string
	tracer       trace.Tracer
}

// Option configures a View.
type Option func(*View)

// WithTheme makes the View prefer the templates in theme over the built-in
// ones.
func WithTheme(theme Theme) Option {
	return func(v *View) {
		v.theme = theme
	}
}

// WithDefaultTitle sets the title VariantTitled templates get when the
// RenderContext doesn't have one. Without it, DefaultTitle is used.
func WithDefaultTitle(title string) Option {
	return func(v *View) {
		v.defaultTitle = title
	}
}

// WithTracerProvider sets the TracerProvider render spans are recorded with.
// Without it, the global TracerProvider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(v *View) {
		v.tracer = newTracer(tp)
	}
}

// NewView returns a View configured with opts.
func NewView(opts ...Option) *View {
	v := &View{}
	for _, opt := range opts {
		opt(v)
	}
	if v.tracer == nil {
		v.tracer = newTracer(nil)
	}
	return v
}

// Render writes the talk page for rc to out. The comment link is rendered in
// its own block, followed by a separator and the comments; if rc.Redisplay is
// set, an identical copy of the link block follows the comments.
//
// Unknown variants are rendered as VariantDefault.
//
// If the View has a Theme and its templates can't be parsed or executed, the
// error is logged and the page is rendered with the built-in templates
// instead. Nothing is written to out unless the page rendered completely.
func (v *View) Render(ctx context.Context, out io.Writer, variant Variant, rc RenderContext) error {
	variant = variant.normalize()
	ctx, span := startRenderSpan(ctx, v.tracer, variant, rc, v.theme != nil)
	defer span.End()

	var buf bytes.Buffer
	err := v.execute(ctx, &buf, variant, rc)
	if err != nil {
		recordError(span, err)
		return err
	}
	_, err = buf.WriteTo(out)
	if err != nil {
		err = fmt.Errorf("error writing talk page: %w", err)
		recordError(span, err)
		return err
	}
	logger(ctx).DebugContext(ctx, "rendered talk page",
		"variant", variant,
		"redisplay", rc.Redisplay,
	)
	return nil
}

// HTML renders the talk page for rc and returns it, ready to be included in
// another html/template.
func (v *View) HTML(ctx context.Context, variant Variant, rc RenderContext) (template.HTML, error) {
	var out strings.Builder
	err := v.Render(ctx, &out, variant, rc)
	if err != nil {
		return "", err
	}
	return template.HTML(out.String()), nil // #nosec G203 -- produced by html/template
}

func (v *View) execute(ctx context.Context, buf *bytes.Buffer, variant Variant, rc RenderContext) error {
	data := rc.templateData(variant, v.defaultTitle)

	if v.theme != nil {
		err := v.executeThemed(ctx, buf, variant, data)
		if err == nil {
			return nil
		}

		// the themed templates are broken, log it and use ours
		logger(ctx).ErrorContext(ctx, "error rendering themed talk page, falling back to built-in templates",
			"variant", variant,
			"error", err,
		)
		recordFallback(trace.SpanFromContext(ctx), err)
		buf.Reset()
	}

	sets, err := builtinSets()
	if err != nil {
		return err
	}
	return executeTemplate(buf, sets[variant], variant, data)
}

func (v *View) executeThemed(ctx context.Context, buf *bytes.Buffer, variant Variant, data any) error {
	tmpl, err := getTemplate(ctx, v.theme, variant)
	if err != nil {
		return err
	}
	return executeTemplate(buf, tmpl, variant, data)
}

func executeTemplate(out io.Writer, tmpl *template.Template, variant Variant, data any) error {
	_, executed := variant.templates()
	err := tmpl.ExecuteTemplate(out, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for variant %s: %w", executed, variant, err)
	}
	return nil
}

func getTemplate(ctx context.Context, theme Theme, variant Variant) (*template.Template, error) {
	key := variant.cacheKey()
	cache, caches := theme.(TemplateCacher)
	if caches {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
	}
	var funcMap template.FuncMap
	if fm, ok := theme.(FuncMapExtender); ok {
		funcMap = fm.FuncMap(ctx)
	}
	paths, _ := variant.templates()
	parsed, err := parseTemplates(theme.TemplateDir(ctx), funcMap, paths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing themed templates %v for variant %s: %w", paths, variant, err)
	}
	if caches {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

// parseTemplates parses files into a single template set, each file becoming
// a template named after its path. Files are read from themed when it has
// them and from the built-in templates otherwise.
func parseTemplates(themed fs.FS, funcs template.FuncMap, files ...string) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		contents, err := readTemplate(themed, file)
		if err != nil {
			return nil, err
		}
		_, err = tmpl.New(file).Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

func readTemplate(themed fs.FS, file string) ([]byte, error) {
	if themed != nil {
		contents, err := fs.ReadFile(themed, file)
		if err == nil {
			return contents, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
	}
	contents, err := fs.ReadFile(builtinFS, file)
	if err != nil {
		return nil, fmt.Errorf("error reading built-in %q: %w", file, err)
	}
	return contents, nil
}
