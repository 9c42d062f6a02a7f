package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/screens/home"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		stats, err := home.LoadStats(ctx, st.VocabularyRepo(), st.ProgressRepo(), cfg.User, cfg.Course)
		if err != nil {
			return err
		}
		if stats.Course == "" {
			fmt.Printf("%d courses: pass --course to pick one\n", len(stats.Courses))
			for _, c := range stats.Courses {
				fmt.Println("  " + c)
			}
			return nil
		}

		acc, err := st.EventRepo().AnswerAccuracy(ctx, cfg.User, stats.Course)
		if err != nil {
			return err
		}

		fmt.Printf("%s in %s\n", cfg.User, stats.Course)
		fmt.Printf("  %-20s %d\n", "Items", stats.Items)
		for _, s := range []vocab.Status{vocab.StatusNotStarted, vocab.StatusUnderAcquisition, vocab.StatusAcquired} {
			fmt.Printf("  %-20s %d\n", s.Label(), stats.ByStatus[s])
		}
		fmt.Printf("  %-20s %d\n", "Due for review", stats.Due)
		fmt.Printf("  %-20s %d\n", "Sessions completed", stats.SessionsCompleted)
		if acc.Total > 0 {
			fmt.Printf("  %-20s %.0f%% (%d/%d)\n", "Answer accuracy", acc.Percent(), acc.Correct, acc.Total)
		}
		return nil
	},
}
