package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Create a learner's progress records for a course",
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

		n, err := st.ProgressRepo().InitializeProgress(cmd.Context(), cfg.User, course)
		if err != nil {
			return err
		}
		fmt.Printf("Enrolled %s in %s: %d new items\n", cfg.User, course, n)
		return nil
	},
}
