package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/spf13/cobra"
)

func newWallpapersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wallpapers",
		Aliases: []string{"wp"},
		Short:   "Manage saved wallpapers",
	}
	cmd.AddCommand(
		newWallpapersListCommand(a),
		newWallpapersGetCommand(a),
		newWallpapersCreateCommand(a),
		newWallpapersDeleteCommand(a),
	)
	return cmd
}

func newWallpapersListCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved wallpapers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.wallpaperStore()
			if err != nil {
				return err
			}
			defer release()

			list, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRATIO\tAUTHOR\tQUOTE")
			for _, w := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.ID, w.AspectRatio, w.Author, truncate(w.Quote, 48))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newWallpapersGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Print one wallpaper as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.wallpaperStore()
			if err != nil {
				return err
			}
			defer release()

			w, ok, err := store.ReadByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, args[0])
			}
			return writeJSON(cmd.OutOrStdout(), w)
		},
	}
}

func newWallpapersCreateCommand(a *app) *cobra.Command {
	draft := core.Draft{
		BackgroundColor: "#E8F5E8",
		TextColor:       "#2C3E50",
		FontSize:        20,
		FontFamily:      "Montserrat_400Regular",
		TextPosition:    core.TextPosition{X: 0.5, Y: 0.5},
		TextWidth:       0.8,
		AspectRatio:     core.DefaultAspectRatio,
	}
	var align, fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a new wallpaper",
		Long: `Create saves a new wallpaper and prints its id. Fields come from flags,
or from a JSON document with --from (use - for stdin).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				d, err := readDraft(cmd, fromFile)
				if err != nil {
					return err
				}
				draft = d
			} else {
				draft.TextAlign = core.Alignment(align)
			}

			store, release, err := a.wallpaperStore()
			if err != nil {
				return err
			}
			defer release()

			id, err := store.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Quote, "quote", "", "quote text")
	f.StringVar(&draft.Author, "author", "", "quote author")
	f.StringVar(&draft.BackgroundColor, "background", draft.BackgroundColor, "background color")
	f.StringVar(&draft.TextColor, "text-color", draft.TextColor, "text color")
	f.Float64Var(&draft.FontSize, "font-size", draft.FontSize, "font size")
	f.StringVar(&draft.FontFamily, "font-family", draft.FontFamily, "font family")
	f.StringVar(&draft.FontWeight, "font-weight", "", "font weight")
	f.StringVar(&draft.AspectRatio, "aspect-ratio", draft.AspectRatio, "canvas aspect ratio, e.g. 9:16")
	f.StringVar(&align, "align", string(core.AlignCenter), "text alignment (left, center, right)")
	f.StringVar(&fromFile, "from", "", "read the wallpaper from a JSON file")
	return cmd
}

func newWallpapersDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.wallpaperStore()
			if err != nil {
				return err
			}
			defer release()

			return store.Delete(cmd.Context(), args[0])
		},
	}
}

func readDraft(cmd *cobra.Command, name string) (core.Draft, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return core.Draft{}, err
		}
		defer f.Close()
		r = f
	}

	var d core.Draft
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return core.Draft{}, errors.Join(core.ErrInvalidWallpaper, fmt.Errorf("decode %s: %w", name, err))
	}
	return d, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
