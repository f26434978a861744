package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashgen-backend/internal/apiclient"
)

func newListCmd(cfg *clientConfig) *cobra.Command {
	var p apiclient.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := cfg.client().List(cmd.Context(), p)
			if err != nil {
				return describe(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSOURCE\tGENERATION\tQUESTION")
			for _, f := range page.Data {
				gen := "-"
				if f.GenerationID != nil {
					gen = strconv.FormatInt(*f.GenerationID, 10)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.ID, f.Source, gen, shorten(f.Question, 60))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d total\n",
				page.Pagination.Page, len(page.Data), page.Pagination.Total)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&p.Page, "page", 0, "page number (server default 1)")
	f.IntVar(&p.Limit, "limit", 0, "page size (server default 50)")
	f.StringVar(&p.Source, "source", "", "filter by source: manual, ai-full, ai-edited")
	f.Int64Var(&p.GenerationID, "generation", 0, "filter by generation id")
	f.StringVar(&p.Sort, "sort", "", "created_at, updated_at or question")
	f.StringVar(&p.Order, "order", "", "asc or desc")
	return cmd
}

func newDeleteCmd(cfg *clientConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete saved flashcards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid flashcard id %q", a)
				}
				ids = append(ids, id)
			}

			c := cfg.client()
			for _, id := range ids {
				if err := c.Delete(cmd.Context(), id); err != nil {
					return describe(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			}
			return nil
		},
	}
}

func describe(err error) error {
	if apiclient.IsUnauthorized(err) {
		return errSessionExpired
	}
	return err
}

func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
