package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Print LED colors at a point in time",
	Long: `Print the color and progress of every LED (or one LED) of the launched cue
at the given animation time.`,
	Example: `  iris color --time 1500
  iris color --cue rainbow --time 250 --channel 3`,
	Args: cobra.NoArgs,
	RunE: runColor,
}

func init() {
	rootCmd.AddCommand(colorCmd)

	colorCmd.Flags().Uint32P("time", "t", 0, "Animation time in milliseconds")
	colorCmd.Flags().IntP("channel", "c", -1, "LED channel 0..11 (default: all channels)")

	bindFlags(colorCmd, []flagBinding{
		{"color.time_ms", "time"},
		{"color.channel", "channel"},
	})
}

func runColor(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}
	return writeColors(cmd.OutOrStdout(), session, viper.GetUint32("color.time_ms"), viper.GetInt("color.channel"))
}

// writeColors prints one row per channel. channel -1 selects all channels.
func writeColors(w io.Writer, session *iris.Session, timeMS uint32, channel int) error {
	channels := make([]int, 0, cue.Channels)
	switch {
	case channel == -1:
		for ch := 0; ch < cue.Channels; ch++ {
			channels = append(channels, ch)
		}
	case channel >= 0 && channel < cue.Channels:
		channels = append(channels, channel)
	default:
		return fmt.Errorf("invalid channel %d: must be between 0 and %d", channel, cue.Channels-1)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tENABLED\tPROGRESS\tCOLOR")
	for _, ch := range channels {
		progress := session.Progress(timeMS, uint8(ch))
		col := session.CurrentColor(timeMS, uint8(ch))
		fmt.Fprintf(tw, "%d\t%t\t%.3f\t%s\n", ch, session.Channel(ch), progress.Float64(), col.Hex())
	}
	return tw.Flush()
}
