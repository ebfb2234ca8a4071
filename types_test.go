package dochooks_test

import (
	"strings"

	"github.com/iVampireSP/dochooks"
)

// Reporter has a single annotated method taking two parameters.
type Reporter struct {
	saved []int
}

// OnSave records a saved post.
//
// @action save_post 20
func (r *Reporter) OnSave(postID int, title string) {
	r.saved = append(r.saved, postID)
}

func (*Reporter) DocHooks() map[string]string {
	return map[string]string{
		"OnSave": "@action save_post 20",
	}
}

// Blog exercises every hook type and a method with two annotations.
type Blog struct {
	prefix string
}

func (b *Blog) Title(title string) string {
	return b.prefix + strings.ToUpper(title)
}

func (b *Blog) Gallery(attrs map[string]string, content string) string {
	return "<div>" + content + "</div>"
}

func (b *Blog) Publish() {}

func (b *Blog) Helper() {}

func (*Blog) DocHooks() map[string]string {
	return map[string]string{
		"Title":   "Title upper-cases post titles.\n\n@filter the_title\n@filter widget_title 5",
		"Gallery": "@shortcode gallery",
		"Publish": "@action publish_post 0",
		"Helper":  "Helper is not a hook.",
	}
}

// Base carries its own annotations and is embedded by Child.
type Base struct{}

func (Base) Init() {}

func (*Base) DocHooks() map[string]string {
	return map[string]string{
		"Init": "@action init",
	}
}

// Child inherits Init from Base and has no generated docs of its own.
type Child struct {
	Base
}

func (c *Child) Shutdown(code int) {}

// Plain has annotated-looking methods but no doc source.
type Plain struct{}

func (Plain) Run(args ...string) {}

var _ dochooks.Registrable = (*Reporter)(nil)
