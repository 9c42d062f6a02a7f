package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent finished and abandoned sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		course, err := requireCourse()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.EventRepo().RecentSessions(cmd.Context(), cfg.User, course, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("%-20s  %-36s  %-8s  %8s  %9s  %s\n",
			"Time", "Session", "Action", "Duration", "Answered", "Accuracy")
		fmt.Println(strings.Repeat("─", 100))

		for _, s := range sessions {
			fmt.Printf("%-20s  %-36s  %-8s  %8s  %9s  %.0f%%\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.SessionID,
				s.Action,
				history.FormatDuration(s.DurationSecs),
				fmt.Sprintf("%d/%d", s.QuestionsServed, s.Requested),
				history.Accuracy(s.SessionEventData))
		}

		fmt.Printf("\n%d sessions\n", len(sessions))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
}
