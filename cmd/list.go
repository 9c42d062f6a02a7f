package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a learner's items in a course with status and review due",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFilter, _ := cmd.Flags().GetString("status")
		dueOnly, _ := cmd.Flags().GetBool("due")

		var want vocab.Status
		if statusFilter != "" {
			s, err := vocab.ParseStatus(statusFilter)
			if err != nil {
				return err
			}
			want = s
		}

		course, err := requireCourse()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		completed, err := st.ProgressRepo().SessionCounter(ctx, cfg.User, course)
		if err != nil {
			return err
		}
		rows, err := st.ProgressRepo().ItemsWithProgress(ctx, cfg.User, course)
		if err != nil {
			return err
		}

		// Header.
		fmt.Printf("%-10s  %-24s  %-6s  %-24s  %-18s  %s\n",
			"ID", "Item", "POS", "Translation", "Status", "Review")
		fmt.Println(strings.Repeat("─", 100))

		shown := 0
		for _, r := range rows {
			p := r.Progress
			if want != "" && p.Status != want {
				continue
			}
			if dueOnly && !spacedrep.IsDue(p, completed) {
				continue
			}
			fmt.Printf("%-10s  %-24s  %-6s  %-24s  %-18s  %s\n",
				r.Item.ID, clip(r.Item.SurfaceForm, 24), r.Item.PartOfSpeech,
				clip(r.Item.Translation, 24), p.Status.Label(), spacedrep.DueLabel(p, completed))
			shown++
		}

		fmt.Printf("\n%d items, %d sessions completed\n", shown, completed)
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "Filter by status (not_started, under_acquisition, acquired)")
	listCmd.Flags().Bool("due", false, "Only show items due for review")
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
