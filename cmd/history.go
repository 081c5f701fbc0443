package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/ui/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the career paths you have started",
	Args:  cobra.NoArgs,
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

		enrollments, err := engine.History(cmd.Context(), e.session.UserID)
		if err != nil {
			return err
		}

		_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.History(e.theme, enrollments))
		return err
	},
}
