package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/careers"
	"github.com/abhisek/pathwise/internal/llm"
	"github.com/abhisek/pathwise/internal/ui/render"
)

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "Discover career paths",
}

var careersSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest tech careers from five onboarding answers",
	Example: `  pathwise careers suggest \
    --position "Student" \
    --activities "Solving puzzles" \
    --skills "Programming" \
    --environment "Remote" \
    --motivation "Learning new technologies"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var answers careers.Answers
		answers.CurrentPosition, _ = f.GetString("position")
		answers.PreferredActivities, _ = f.GetString("activities")
		answers.StrongestSkills, _ = f.GetString("skills")
		answers.WorkEnvironment, _ = f.GetString("environment")
		answers.Motivation, _ = f.GetString("motivation")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return err
		}

		svc := careers.NewService(provider, e.theme.Palette, careers.DefaultConfig(), e.logger)
		suggestions, err := svc.Suggest(cmd.Context(), answers)
		var unavailable *llm.ErrProviderUnavailable
		if errors.As(err, &unavailable) && errors.Is(err, llm.ErrNotConfigured) {
			return llm.ErrNotConfigured
		}
		if err != nil {
			return err
		}

		if asJSON, _ := f.GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}

		_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.Suggestions(e.theme, suggestions))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Start one with: pathwise roadmap show <career path>")
		return err
	},
}

func init() {
	f := careersSuggestCmd.Flags()
	f.String("position", "", "What is your current position?")
	f.String("activities", "", "What type of activities do you enjoy most?")
	f.String("skills", "", "Which skills are you most confident in?")
	f.String("environment", "", "What's your preferred work environment?")
	f.String("motivation", "", "What motivates you most in a career?")
	f.Bool("json", false, "Print suggestions as JSON")

	careersCmd.AddCommand(careersSuggestCmd)
}
