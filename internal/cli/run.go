package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deusflow/campusnews/internal/app"
	"github.com/deusflow/campusnews/internal/news"
)

// scrapTopN matches the server's scrap view.
const scrapTopN = 6

var (
	runQuery     string
	runCategory  string
	runRange     string
	runTop       int
	runSummarize bool
	runRefresh   bool
	runScrap     bool
	runJSON      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, rank and print articles",
	Long: `Fetches every enabled source, builds the article set and prints the articles
matching the filters. Failed sources are reported but never fail the run.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runQuery, "query", "q", "", "case-insensitive text filter on title and summary")
	runCmd.Flags().StringVarP(&runCategory, "category", "c", "", "only articles in this category")
	runCmd.Flags().StringVarP(&runRange, "range", "r", "all", "time window: all or 24h")
	runCmd.Flags().IntVarP(&runTop, "top", "n", 0, "rank by importance and keep the top N")
	runCmd.Flags().BoolVar(&runSummarize, "summarize", false, "generate summaries")
	runCmd.Flags().BoolVar(&runRefresh, "refresh", false, "ignore the cached article set")
	runCmd.Flags().BoolVar(&runScrap, "scrap", false, "top 6 of the last 24 hours")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	window, err := news.ParseWindow(runRange)
	if err != nil {
		return err
	}
	q := news.QuerySpec{Query: runQuery, Category: runCategory, Window: window, TopN: runTop}
	if runScrap {
		q.Window = news.WindowLast24h
		q.TopN = scrapTopN
	}
	if err := q.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeFn, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := svc.Query(ctx, q, app.Options{Summarize: runSummarize, Refresh: runRefresh})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if runJSON {
		return outputJSON(cmd, res)
	}
	renderTable(cmd.OutOrStdout(), res)
	return nil
}

func outputJSON(cmd *cobra.Command, res *app.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
