// Package cli defines the finro command tree.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finro/internal/app"
	"finro/internal/config"
	"finro/internal/domain"
	"finro/internal/logging"
	"finro/internal/pipeline"
)

// NewRootCmd assembles the command tree. Config and wiring happen inside
// RunE so flags and environment are both settled first.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finro",
		Short:         "Batch content pipeline for the FinRo.ro category sites",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newReindexCmd(), newSitemapCmd(), newHomepageCmd(), newHistoryCmd())
	return root
}

func newApplication() *app.Application {
	cfg := config.Load()
	return app.New(cfg, logging.New(cfg.Logging.Level))
}

func resolveCategory(key string) (domain.Category, error) {
	cat, err := domain.Lookup(key)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w (known: %s)", err, strings.Join(categoryKeys(), ", "))
	}
	return cat, nil
}

func categoryKeys() []string {
	var keys []string
	for _, cat := range domain.Registry() {
		keys = append(keys, cat.Key)
	}
	return keys
}

func newRunCmd() *cobra.Command {
	var (
		category    string
		maxArticles int
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, classify and publish new articles",
		Long:  "Runs the pipeline for one category, or for every category when --category is omitted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := newApplication()
			defer application.Close()

			opts := pipeline.Options{MaxArticles: maxArticles, DryRun: dryRun}
			ctx := cmd.Context()

			if category == "" {
				runs, err := application.RunAll(ctx, opts)
				printRuns(cmd, runs)
				return err
			}

			cat, err := resolveCategory(category)
			if err != nil {
				return err
			}
			run, err := application.RunCategory(ctx, cat, opts)
			if err != nil {
				return err
			}
			printRuns(cmd, []domain.RunRecord{run})
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category to process (default: all)")
	cmd.Flags().IntVarP(&maxArticles, "max-articles", "n", 0, "cap on new articles this run (default: per category)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be published without writing anything")
	return cmd
}

func newReindexCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild index documents from the stored metadata records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := newApplication()
			defer application.Close()

			cats := domain.Registry()
			if category != "" {
				cat, err := resolveCategory(category)
				if err != nil {
					return err
				}
				cats = []domain.Category{cat}
			}
			for _, cat := range cats {
				if err := application.Reindex(cmd.Context(), cat); err != nil {
					return fmt.Errorf("reindex %s: %w", cat.Key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reindexed %s\n", cat.Key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category to reindex (default: all)")
	return cmd
}

func newSitemapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Regenerate sitemap.xml from the current indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := newApplication()
			defer application.Close()
			return application.Sitemap(cmd.Context())
		},
	}
}

func newHomepageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "homepage",
		Short: "Regenerate index.html from the current indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := newApplication()
			defer application.Close()
			return application.Homepage(cmd.Context())
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := newApplication()
			defer application.Close()

			if category != "" {
				if _, err := resolveCategory(category); err != nil {
					return err
				}
			}

			runs, err := application.History().RecentRuns(cmd.Context(), category, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tCATEGORY\tFETCHED\tDUP\tNEW\tPUBLISHED\tFAILED\tDRY")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
					run.StartedAt.Format("2006-01-02 15:04"),
					run.Category, run.Fetched, run.Duplicates, run.New, run.Published, run.Failed, run.DryRun)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of runs to show")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []domain.RunRecord) {
	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: fetched=%d duplicates=%d malformed=%d new=%d published=%d failed=%d\n",
			run.Category, run.Fetched, run.Duplicates, run.Malformed, run.New, run.Published, run.Failed)
	}
}
