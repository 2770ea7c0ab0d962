// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/premium"
)

// # Read Commands

func (app *cli) browseCommand() *cobra.Command {
	var input catalog.BrowseInput

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Print one page of the catalogue",
		Long: `Derives a catalogue page the way the API does: search, then category
filter, then sort, then paginate. Out-of-range pages are clamped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := catalog.ParseBrowse(input)
			if err != nil {
				return err
			}

			service, closeCatalog, err := app.service(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog()

			result := service.Browse(params)
			return writePage(cmd.OutOrStdout(), result, time.Now())
		},
	}

	cmd.Flags().StringVarP(&input.Query, "q", "q", "", "Search query matched against title, author, category, type and tags (case-insensitive)")
	cmd.Flags().StringVarP(&input.Category, "category", "c", "", "Category, type or tag; empty means all")
	cmd.Flags().StringVarP(&input.Sort, "sort", "s", "", "alphabetical, rating-desc, recency-desc or views-desc")
	cmd.Flags().StringVar(&input.ViewMode, "view", "", "grid or list")
	cmd.Flags().IntVarP(&input.Page, "page", "p", 1, "Page number, clamped into range")
	cmd.Flags().IntVar(&input.PageSize, "limit", 0, "Page size (default CATALOG_PAGE_SIZE)")

	return cmd
}

func writePage(out io.Writer, result catalog.PagedResult, now time.Time) error {
	if len(result.Items) == 0 {
		if result.State.SearchQuery != "" {
			_, err := fmt.Fprintf(out, "Nenhum resultado para %q\n", result.State.SearchQuery)
			return err
		}
		_, err := fmt.Fprintln(out, "Nenhum título encontrado")
		return err
	}

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "SLUG\tTITLE\tAUTHOR\tRATING\tVIEWS\tUPDATED\tLATEST")
	for _, record := range result.Items {
		updated := "-"
		if record.LastUpdated != nil {
			updated = catalog.RelativeTime(*record.LastUpdated, now)
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			record.Slug,
			record.Title,
			record.Author,
			catalog.FormatRating(record.Rating),
			catalog.FormatViews(record.ViewCount),
			updated,
			record.LatestChapterLabel,
		)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nPage %d/%d, %d titles (sort %s, view %s)\n",
		result.CurrentPage, result.TotalPages, result.TotalItems, result.State.SortKey, result.State.ViewMode)
	return err
}

func (app *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a title page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeCatalog, err := app.service(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog()

			detail, err := service.Detail(args[0])
			if err != nil {
				return fmt.Errorf("title %q: %w", args[0], err)
			}
			return writeDetail(cmd.OutOrStdout(), detail, time.Now())
		},
	}
}

func writeDetail(out io.Writer, detail catalog.Detail, now time.Time) error {
	record := detail.Title

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(table, "Title\t%s\n", record.Title)
	fmt.Fprintf(table, "Slug\t%s\n", record.Slug)
	fmt.Fprintf(table, "Author\t%s\n", record.Author)
	fmt.Fprintf(table, "Type\t%s\n", record.Type)
	fmt.Fprintf(table, "Category\t%s\n", record.Category)
	fmt.Fprintf(table, "Tags\t%s\n", strings.Join(record.Tags, ", "))
	fmt.Fprintf(table, "Status\t%s\n", record.Status)
	fmt.Fprintf(table, "Rating\t%s\n", catalog.FormatRating(record.Rating))
	fmt.Fprintf(table, "Views\t%s\n", catalog.FormatViews(record.ViewCount))
	if record.IsPremium {
		fmt.Fprintf(table, "Premium\tsim\n")
	}
	if err := table.Flush(); err != nil {
		return err
	}

	if record.Synopsis != "" {
		fmt.Fprintf(out, "\n%s\n", record.Synopsis)
	}

	if len(record.Chapters) > 0 {
		fmt.Fprintf(out, "\nChapters\n")
		chapters := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, chapter := range record.Chapters {
			fmt.Fprintf(chapters, "  %d\t%s\t%s\n", chapter.ID, chapter.Title, catalog.RelativeTime(chapter.ReleasedAt, now))
		}
		if err := chapters.Flush(); err != nil {
			return err
		}
	}

	if len(detail.Related) > 0 {
		slugs := make([]string, 0, len(detail.Related))
		for _, related := range detail.Related {
			slugs = append(slugs, related.Slug)
		}
		fmt.Fprintf(out, "\nRelated: %s\n", strings.Join(slugs, ", "))
	}

	if len(detail.Comments) > 0 {
		fmt.Fprintf(out, "\nComments (%d)\n", len(detail.Comments))
		for _, comment := range detail.Comments {
			fmt.Fprintf(out, "  %s, %s (+%d/-%d)\n    %s\n",
				comment.User, catalog.RelativeTime(comment.PostedAt, now), comment.Likes, comment.Dislikes, comment.Content)
		}
	}
	return nil
}

func (app *cli) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category filter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeCatalog, err := app.service(cmd)
			if err != nil {
				return err
			}
			defer closeCatalog()

			for _, category := range service.Categories() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), category); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (app *cli) plansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(table, "SLUG\tNAME\tPRICE\tPERIOD")
			for _, plan := range premium.Plans() {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\n", plan.Slug, plan.Name, premium.FormatPrice(plan.PriceCents), plan.Period)
			}
			return table.Flush()
		},
	}
}
