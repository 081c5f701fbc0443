package cmd

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/ui/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats <career path>",
	Short: "Show progress statistics for a career path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openSessionEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		engine, err := e.engine(cmd)
		if err != nil {
			return err
		}

		stats, err := engine.Stats(cmd.Context(), e.session.UserID, strings.Join(args, " "))
		if err != nil {
			return err
		}

		_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.Stats(e.theme, stats))
		return err
	},
}
