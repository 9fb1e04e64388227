package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Ranger10sam/Serenify-App/layout"
	"github.com/spf13/cobra"
)

func newLayoutCommand(a *app) *cobra.Command {
	var (
		columnWidth, gap float64
		asJSON           bool
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the two-column gallery arrangement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("column-width") {
				columnWidth = a.cfg.ColumnWidth
			}

			store, release, err := a.wallpaperStore()
			if err != nil {
				return err
			}
			defer release()

			list, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			cols := layout.New(layout.WithColumnWidth(columnWidth), layout.WithGap(gap)).Layout(list)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cols)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tID\tRATIO\tHEIGHT")
			for _, c := range cols.Left {
				fmt.Fprintf(tw, "left\t%s\t%s\t%.1f\n", c.Wallpaper.ID, c.Wallpaper.AspectRatio, c.Height)
			}
			for _, c := range cols.Right {
				fmt.Fprintf(tw, "right\t%s\t%s\t%.1f\n", c.Wallpaper.ID, c.Wallpaper.AspectRatio, c.Height)
			}
			fmt.Fprintf(tw, "\ttotal\tleft %.1f\tright %.1f\n", cols.LeftHeight, cols.RightHeight)
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&columnWidth, "column-width", layout.DefaultColumnWidth, "card width")
	cmd.Flags().Float64Var(&gap, "gap", layout.DefaultGap, "vertical gap between cards")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}
