// Package dochooks registers methods as event hooks from their doc comment annotations.
//
// Use one of the following in a method's doc comment to register an
// action, filter or shortcode:
//
//	@action hook_name priority
//	@filter filter_name priority
//	@shortcode shortcode_name
//
// The priority is optional and defaults to 10. The hook's argument count
// is the method's declared parameter count.
//
// Go binaries do not keep comments, so the annotations are captured at
// build time by the generator:
//
//	//go:generate go run github.com/iVampireSP/dochooks/cmd/dochooks generate
//
// which writes a DocHooks method for every annotated type. At startup:
//
//	reg := dochooks.NewRegistry()
//	r := dochooks.NewRegistrar(dispatcher, dochooks.WithRegistry(reg))
//	if err := r.Register(&Reporter{}); err != nil {
//		return err
//	}
//
// The registry can later be written out with Dump (or the dump-hooks
// command from NewDumpCommand) and replayed with Registry.LoadHooks.
//
// A Registry is an ordinary value. The program that owns it decides its
// lifetime, normally the whole process.
package dochooks
