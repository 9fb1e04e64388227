package cli

import (
	"fmt"
	"io"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/quotes"
	"github.com/spf13/cobra"
)

func newQuoteCommand(_ *app) *cobra.Command {
	var search, author, category string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a random quote, or search the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := quotes.New()
			if err != nil {
				return err
			}

			var result []core.Quote
			switch {
			case search != "":
				result = provider.Search(search)
			case author != "":
				result = provider.ByAuthor(author)
			case category != "":
				result = provider.ByCategory(category)
			default:
				printQuote(cmd.OutOrStdout(), provider.Random())
				return nil
			}

			if len(result) == 0 {
				return fmt.Errorf("no quotes found")
			}
			for _, q := range result {
				printQuote(cmd.OutOrStdout(), q)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match text or author")
	cmd.Flags().StringVar(&author, "author", "", "match author")
	cmd.Flags().StringVar(&category, "category", "", "category id, e.g. mindfulness")
	return cmd
}

func printQuote(w io.Writer, q core.Quote) {
	if q.Author == "" {
		fmt.Fprintf(w, "%q\n", q.Text)
		return
	}
	fmt.Fprintf(w, "%q (%s)\n", q.Text, q.Author)
}
