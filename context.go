package talkpage

import (
	"html/template"
)

// DefaultTitle is the label used for a talk page when neither the
// RenderContext nor the View supply one.
const DefaultTitle = "Talk"

// RenderContext holds everything the host application has prepared for a
// single talk page render. It is built per page view and is never modified by
// the View rendering it.
type RenderContext struct {
	// Node is the content item whose discussion is being displayed. It is
	// passed through to templates as .Node, but talkpage never looks at
	// it.
	Node any

	// Comments is the rendered list of comments. It is inserted into the
	// output as-is.
	Comments template.HTML

	// CommentLink is the rendered "add new comment" control. It is
	// inserted into the output as-is, once above the comments and, if
	// Redisplay is set, once below them.
	//
	// Whoever builds the link decides what it looks like for visitors
	// who can't comment; an empty CommentLink still gets its block.
	CommentLink template.HTML

	// AddComments is true if the current visitor may add comments. It is
	// made available to templates, but the built-in templates don't use
	// it to hide CommentLink.
	AddComments bool

	// Redisplay is true if CommentLink should be shown again after the
	// comments.
	Redisplay bool

	// Title is the title of the talk page. Leave it empty to use the
	// View's default.
	Title string
}

// PageTitle returns the title that should be displayed for the talk page.
// That's the RenderContext's Title if it has one, def if it's not empty, and
// DefaultTitle otherwise.
func (rc RenderContext) PageTitle(def string) string {
	if rc.Title != "" {
		return rc.Title
	}
	if def != "" {
		return def
	}
	return DefaultTitle
}

// defaultData is what templates for VariantDefault get to see.
type defaultData struct {
	Node        any
	Comments    template.HTML
	CommentLink template.HTML
	AddComments bool
	Redisplay   bool
}

// titledData is what templates for VariantTitled get to see: everything
// VariantDefault does, plus the resolved title.
type titledData struct {
	defaultData
	Title string
}

func (rc RenderContext) templateData(variant Variant, defaultTitle string) any {
	data := defaultData{
		Node:        rc.Node,
		Comments:    rc.Comments,
		CommentLink: rc.CommentLink,
		AddComments: rc.AddComments,
		Redisplay:   rc.Redisplay,
	}
	if variant == VariantTitled {
		return titledData{
			defaultData: data,
			Title:       rc.PageTitle(defaultTitle),
		}
	}
	return data
}
