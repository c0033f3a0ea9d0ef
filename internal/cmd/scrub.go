package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MeKo-Tech/iris/internal/scrub"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Step through a cue interactively in the terminal",
	Long: `Show the LED ring of the launched cue in the terminal and step through
animation time by hand.

Keys: left/right move in time, up/down change the step size, home jumps to 0,
r toggles reverse, n launches the next cue, q or esc quits.`,
	Args: cobra.NoArgs,
	RunE: runScrub,
}

func init() {
	rootCmd.AddCommand(scrubCmd)

	scrubCmd.Flags().Uint32P("time", "t", 0, "Initial animation time in milliseconds")

	bindFlags(scrubCmd, []flagBinding{
		{"scrub.time_ms", "time"},
	})
}

func runScrub(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := scrub.New(screen, session, logger)
	viewer.SetTimeMS(viper.GetUint32("scrub.time_ms"))

	if err := viewer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
