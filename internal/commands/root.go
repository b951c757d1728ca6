package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	cfg *Config
	log *zap.Logger
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "struct-update",
		Short: "Generate in-place field update methods for annotated structs",
		Long: `struct-update generates an UpdateStruct method for every struct whose doc
comment carries //structupdate:with directives:

  //structupdate:with ty=int32 func=double
  type Counter struct {
      Count int32
  }

The generated method replaces every field whose type name matches ty with
the result of calling func on a copy of it. Run it from go:generate:

  //go:generate go run struct-update/cmd/struct-update gen .`,
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			if cfg.NoColor {
				color.NoColor = true
			}

			a.cfg = cfg
			a.log = NewLogger(cfg.Verbose, cmd.ErrOrStderr())
			zap.ReplaceGlobals(a.log)

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().String("config", DefaultConfigFile, "Path to configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	cmd.AddCommand(newGenCmd(a), newInspectCmd(a), newVersionCmd())

	return cmd
}

// Execute runs the root command with a signal-aware context and reports a
// failure on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, ErrDiagnostics) {
			msg = "generation failed: " + msg
		}

		errorColor.Fprintln(os.Stderr, "error: "+msg)
	}

	return err
}

func (a *app) runner(cmd *cobra.Command) *Runner {
	return NewRunner(a.cfg, a.log, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
