package ignored

// Hidden is under a gitignored directory.
type Hidden struct{}

// Act acts.
//
// @action hidden
func (Hidden) Act() {}
