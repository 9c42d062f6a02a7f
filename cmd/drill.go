package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/exercise"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/session"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Run a practice session on plain stdin/stdout",
	Long: `Run one practice session without the TUI.

Answers are read line by line. Multiple-choice options can be answered
with their letter or number. Enter :q to end the session early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count == 0 {
			count = cfg.Count
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

		orch := session.NewOrchestrator(session.Deps{
			Vocabulary: st.VocabularyRepo(),
			Progress:   st.ProgressRepo(),
			Events:     st.EventRepo(),
		})
		registry := session.NewRegistry(orch, cfg.SessionIdleTimeout, nil)

		_, err = runDrill(cmd.Context(), registry, os.Stdin, os.Stdout, cfg.User, course, count)
		return err
	},
}

func init() {
	drillCmd.Flags().Int("count", 0, "Number of exercises (defaults to the configured count)")
}

// runDrill plays one session against in and out and returns its summary.
func runDrill(ctx context.Context, reg *session.Registry, in io.Reader, out io.Writer, user, course string, count int) (*session.Summary, error) {
	handle, err := reg.Start(ctx, user, course, count)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(in)

	read := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	n := 0
	for {
		done, sum, err := reg.IsComplete(handle)
		if err != nil {
			return nil, err
		}
		if done {
			printDrillSummary(out, sum)
			return sum, nil
		}

		ex, err := reg.CurrentPrompt(ctx, handle)
		if session.Skippable(err) {
			fmt.Fprintf(out, "(skipping item: %v)\n\n", err)
			if err := reg.Skip(ctx, handle); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		n++

		fmt.Fprintf(out, "── Exercise %d/%d ──\n", n, count)
		fmt.Fprintln(out, ex.Prompt)
		if ex.Kind == exercise.KindGapFill && ex.Translation != "" {
			fmt.Fprintf(out, "(%s)\n", ex.Translation)
		}
		for i, o := range ex.Options {
			fmt.Fprintf(out, "  %s) %s\n", exercise.OptionLabel(i), o)
		}

		answer, ok := read("\nYour answer: ")
		if !ok || answer == ":q" {
			sum, err := reg.Abandon(ctx, handle)
			if err != nil {
				return nil, err
			}
			printDrillSummary(out, sum)
			return sum, nil
		}
		answer = exercise.ResolveAnswer(answer, ex)

		fb, err := reg.SubmitAnswer(ctx, handle, answer)
		if err != nil {
			return nil, err
		}

		if fb.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
			label, _ := read("Difficulty [e]asy, [a]verage, [d]ifficult: ")
			_, err = reg.SubmitDifficulty(ctx, handle, string(ratingFor(label)))
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", fb.CorrectAnswer)
			fmt.Fprintln(out, ex.Context)
			_, err = reg.Advance(ctx, handle)
		}
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out)
	}
}

// ratingFor accepts a rating or its first letter.
func ratingFor(label string) mastery.Difficulty {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, d := range mastery.Difficulties {
		if label != "" && strings.HasPrefix(string(d), label) {
			return d
		}
	}
	return mastery.ParseDifficulty(label)
}

func printDrillSummary(out io.Writer, sum *session.Summary) {
	if sum == nil {
		return
	}
	title := "Summary"
	if sum.Abandoned {
		title = "Session ended"
	}
	fmt.Fprintf(out, "── %s: %d/%d correct, %d skipped ──\n", title, sum.Correct, sum.Answered, sum.Skipped)
	if sum.NewlyAcquired > 0 {
		fmt.Fprintf(out, "Newly acquired: %d\n", sum.NewlyAcquired)
	}
	if sum.Regressed > 0 {
		fmt.Fprintf(out, "Regressed: %d\n", sum.Regressed)
	}
}
