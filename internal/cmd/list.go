package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/MeKo-Tech/iris/internal/render"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured cues and accepted names",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}
	return writeList(cmd.OutOrStdout(), session)
}

func writeList(w io.Writer, session *iris.Session) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCUE")

	active, hasActive := session.CurrentCueID()
	for id, name := range session.Names() {
		marker := ""
		if hasActive && id == active {
			marker = " *"
		}
		fmt.Fprintf(tw, "%d%s\t%s\t%s\n", id, marker, name, session.Cue(id))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "presets:        ", strings.Join(cue.PresetNames, ", "))
	fmt.Fprintln(w, "ramps:          ", strings.Join(cue.RampTypeNames, ", "))
	fmt.Fprintln(w, "png compression:", strings.Join(render.CompressionNames(), ", "))
	return nil
}
