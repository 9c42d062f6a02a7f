package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import vocabulary from a CSV or XLSX file",
	Long: `Import vocabulary items and their context sentences.

The file has eleven columns after a header row:
item_id, item, pos, translation, lesson_title, reading_or_listening,
course_code, cefr_level, domain, context, target_word

Rows sharing an item_id add context sentences to the same item. Importing
the same file twice adds nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := importer.New(st.VocabularyRepo(), nil).ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Read %d rows: %d items, %d new contexts\n", rep.Rows, rep.Items, rep.Contexts)
		if len(rep.Courses) > 0 {
			fmt.Printf("Courses: %s\n", strings.Join(rep.Courses, ", "))
		}
		if n := len(rep.Errors); n > 0 {
			fmt.Printf("%d rows rejected\n", n)
			if verbose {
				for _, e := range rep.Errors {
					fmt.Println("  " + e.Error())
				}
			} else {
				fmt.Println("Run with --verbose to list them.")
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolP("verbose", "v", false, "List rejected rows")
}
