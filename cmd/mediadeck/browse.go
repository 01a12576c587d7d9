package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/errors"
	"mediadeck/internal/render"
	"mediadeck/internal/search"
	"mediadeck/pkg/types"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// newListCmd lists stored files with the same filters the UIs offer
func newListCmd(o *rootOptions) *cobra.Command {
	var (
		fileType string
		score    string
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored files",
		Long:  `List stored files as cards. Filters combine; "all" disables a filter.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(types.TypeOptions(), fileType) {
				return errors.Newf("unknown type %q, expected one of %s", fileType, strings.Join(types.TypeOptions(), ", "))
			}
			if !slices.Contains(types.ScoreBands, types.ScoreBand(score)) {
				return errors.Newf("unknown score band %q", score)
			}
			if category == "" {
				category = types.All
			}

			req := search.List(types.FilterState{Type: fileType, Score: types.ScoreBand(score), Category: category})
			return runBrowse(cmd, o, req, asJSON)
		},
	}

	cmd.Flags().StringVarP(&fileType, "type", "t", types.All, "file type filter")
	cmd.Flags().StringVarP(&score, "score", "s", types.All, "consistency score band: all, high, medium or low")
	cmd.Flags().StringVarP(&category, "category", "c", types.All, "category filter")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")
	return cmd
}

// newSearchCmd runs a free-text search. Short queries list everything.
func newSearchCmd(o *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := search.Plan(strings.Join(args, " "), o.cfg.Search.MinQuery)
			if req.Kind == search.KindList {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.Info(fmt.Sprintf("Query shorter than %d characters, listing all files.", o.cfg.Search.MinQuery)))
			}
			return runBrowse(cmd, o, req, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")
	return cmd
}

// newCategoriesCmd prints every category with its file count
func newCategoriesCmd(o *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories and their file counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := o.client().GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, cats)
			}
			printCategories(out, cats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the categories as JSON")
	return cmd
}

func runBrowse(cmd *cobra.Command, o *rootOptions, req search.Request, asJSON bool) error {
	res, err := search.Execute(cmd.Context(), o.client(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, res.Data)
	}

	board := render.NewBoard(o.viewMode())
	board.SetWidth(cli.Width())
	board.Render(res.Data)
	fmt.Fprintln(out, board.View(render.NewPalette(types.ParseTheme(o.cfg.UI.Theme))))
	if !board.Empty() {
		fmt.Fprintln(out, cli.Info(fmt.Sprintf("%d files", len(res.Data))))
	}
	return nil
}

func printCategories(w io.Writer, cats []types.CategoryCount) {
	if len(cats) == 0 {
		fmt.Fprintln(w, cli.Info("No categories yet."))
		return
	}
	width := runewidth.StringWidth("Category")
	for _, c := range cats {
		width = max(width, runewidth.StringWidth(c.Name))
	}
	fmt.Fprintln(w, cli.Header(runewidth.FillRight("Category", width)+"  Files"))
	for _, c := range cats {
		fmt.Fprintf(w, "%s  %5d\n", runewidth.FillRight(c.Name, width), c.Count)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
