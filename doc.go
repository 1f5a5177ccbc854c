// Package talkpage renders the "talk page" of a content node: the discussion
// view that sits next to the node itself, built on top of the html/template
// package.
//
// A talk page is a small, fixed layout. An "add comment" control is shown at
// the top, followed by a separator and the list of comments. When the caller
// asks for it, the same control is repeated after the comments, which is
// useful for long threads.
//
// talkpage does not load nodes, render comments, build links or check
// permissions. The host application does all of that and hands the results
// over as a RenderContext. The comments and the link are already-rendered
// HTML and are inserted verbatim; the caller is responsible for their safety.
//
// To render a talk page, build a View with NewView and call Render or HTML.
// A View can be given a Theme, an fs.FS of template overrides, so sites can
// restyle the page without touching the code that fills it. Themes that also
// implement TemplateCacher get to keep parsed templates around between
// renders; CachedTheme is a ready-made implementation of both.
//
// Loggers are passed through the context with LoggingContext, and every
// render is traced with OpenTelemetry.
package talkpage
