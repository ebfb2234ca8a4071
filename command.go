package dochooks

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrNoOutputFile is returned by the dump-hooks command when no path is given.
var ErrNoOutputFile = errors.New("output file not specified")

// NewDumpCommand returns a dump-hooks command for reg, to be mounted in the
// host program's CLI once its objects have been registered.
func NewDumpCommand(reg *Registry, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &cobra.Command{
		Use:   "dump-hooks <output-file>",
		Short: "Dump all doc hooks to a static file",
		Long: `Dump every hook registered from doc comment annotations to a static file.

The file can be replayed at startup with Registry.LoadHooks, which binds the
same methods without reading annotations again.

Examples:
  # Write the hooks file
  app dump-hooks hooks.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrNoOutputFile
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			counts, err := Dump(reg, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, c := range counts {
				fmt.Fprintf(out, "%s added %d hooks\n", c.Class, c.Hooks)
				total += c.Hooks
			}
			logger.Info("hooks dumped",
				zap.String("path", path),
				zap.Int("classes", len(counts)),
				zap.Int("hooks", total))

			fmt.Fprintln(out, "Success: All the hooks dumped!")
			return nil
		},
	}
}
