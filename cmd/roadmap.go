package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/ui/render"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show and advance career roadmaps",
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <career path>",
	Short: "Show your progress through a career roadmap",
	Long: "Shows every level of the career path with its completion and lock state.\n" +
		"The roadmap is generated on first use and you are enrolled automatically.",
	Args: cobra.MinimumNArgs(1),
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

		careerPath := strings.Join(args, " ")
		view, err := engine.Progress(cmd.Context(), e.session.UserID, careerPath)
		if err != nil {
			return err
		}

		details, _ := cmd.Flags().GetBool("details")
		_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.Roadmap(e.theme, strings.TrimSpace(careerPath), view, details))
		return err
	},
}

var roadmapCompleteCmd = &cobra.Command{
	Use:   "complete <level id>",
	Short: "Mark a level as completed",
	Args:  cobra.ExactArgs(1),
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

		view, err := engine.CompleteLevel(cmd.Context(), e.session.UserID, args[0])
		if err != nil {
			return err
		}
		if len(view) == 0 {
			return nil
		}

		_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.Roadmap(e.theme, view[0].CareerPath, view, false))
		return err
	},
}

var roadmapLevelsCmd = &cobra.Command{
	Use:   "levels <career path>",
	Short: "Print the level catalog of a career path without enrolling",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		engine, err := e.engine(cmd)
		if err != nil {
			return err
		}

		levels, err := engine.ResolveLevels(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, l := range levels {
			fmt.Fprintf(out, "%2d  %s  %s\n", l.Level, l.ID, l.Title)
		}
		return nil
	},
}

func init() {
	roadmapShowCmd.Flags().BoolP("details", "d", false, "Include topics and resources of unlocked levels")

	roadmapCmd.AddCommand(roadmapShowCmd)
	roadmapCmd.AddCommand(roadmapCompleteCmd)
	roadmapCmd.AddCommand(roadmapLevelsCmd)
}
