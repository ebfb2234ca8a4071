package report

// Base is embedded by Reporter.
type Base struct{}

// Init prepares the base.
//
// @action init
func (b *Base) Init() {}

// Reporter reacts to posts.
type Reporter struct {
	Base
	saved []int
}

// OnSave records a saved post.
//
// @action save_post 20
func (r *Reporter) OnSave(id int, title string) {
	r.saved = append(r.saved, id)
}

// Title filters titles.
//
// @filter the_title
// @filter widget_title 5
func (r Reporter) Title(s string) string { return s }

// Debug is left out of generation.
//
// @action debug
//
//dochooks:ignore
func (r *Reporter) Debug() {}

// onLoad is not exported.
//
// @action load
func (r *Reporter) onLoad() {}

// Plain has no annotated methods.
type Plain struct{}

// Run runs.
func (Plain) Run() {}

// Skipped is left out of generation.
//
//dochooks:ignore
type Skipped struct{}

// Act would otherwise be generated.
//
// @action skipped
func (Skipped) Act() {}

// Box is generic.
type Box[T any] struct{ v T }

// Open opens the box.
//
// @action box
func (b *Box[T]) Open() {}

// Hooker is an interface.
type Hooker interface {
	// Hook hooks.
	//
	// @action iface
	Hook()
}
