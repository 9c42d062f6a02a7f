package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/vocab"
)

var demoteCmd = &cobra.Command{
	Use:   "demote <item_id>",
	Short: "Move an acquired item back under acquisition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, err := requireCourse()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tr, err := mastery.NewService(st.ProgressRepo(), nil).Demote(cmd.Context(), cfg.User, args[0], course)
		if errors.Is(err, vocab.ErrNotFound) {
			return fmt.Errorf("%s has no progress on item %s in %s; run enroll first", cfg.User, args[0], course)
		}
		if err != nil {
			return err
		}

		if tr.From == tr.To {
			fmt.Printf("Item %s is %s; nothing to do.\n", args[0], tr.From.Label())
			return nil
		}
		fmt.Printf("Item %s: %s → %s (interval %d)\n", args[0], tr.From.Label(), tr.To.Label(), tr.IntervalAfter)
		return nil
	},
}
