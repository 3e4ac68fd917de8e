package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/carefinder/internal/app"
	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/carefinder/internal/logger"
)

type queryFlags struct {
	limit          int
	preferLocation bool
	outputJSON     bool
	timeout        time.Duration
}

func newQueryCmd(root *rootFlags) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one search and print the ranked services",
		Long: `Run one search against the directory and print the ranked services.

Examples:
  carefinder query "free counselling in Carlton"
  carefinder query "psychologist near me" --prefer-location --limit 5
  carefinder query "suicide crisis help" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runQuery(ctx, cmd.OutOrStdout(), root, flags, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", request.DefaultLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&flags.preferLocation, "prefer-location", false, "Favour in-person services near the mentioned location")
	cmd.Flags().BoolVarP(&flags.outputJSON, "json", "j", false, "Output results in JSON format")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 60*time.Second, "Overall timeout for the search")
	return cmd
}

func runQuery(ctx context.Context, out io.Writer, root *rootFlags, flags *queryFlags, text string) error {
	cfg, logger, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req, err := request.New(text, flags.limit, flags.preferLocation)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	a, err := app.Build(ctx, &cfg, app.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer a.Close()

	ctx = logpkg.ContextWithLogger(ctx, logger)
	ctx, usage := domain.NewContextWithUsage(ctx)
	results, err := a.Search.Search(ctx, &req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flags.outputJSON {
		return writeResultsJSON(out, results)
	}
	return writeResultsTable(out, results, usage)
}

type queryResult struct {
	ID        string  `json:"id"`
	Name      string  `json:"service_name"`
	Suburb    string  `json:"suburb,omitempty"`
	Score     float64 `json:"score"`
	BaseScore float64 `json:"base_score"`
	Boost     float64 `json:"boost"`
	Source    string  `json:"source"`
}

func toQueryResults(results []result.Result) []queryResult {
	out := make([]queryResult, 0, len(results))
	for i := range results {
		rec := results[i].Record()
		out = append(out, queryResult{
			ID:        rec.ID,
			Name:      rec.ServiceName.String(),
			Suburb:    rec.Suburb.String(),
			Score:     results[i].Score(),
			BaseScore: results[i].BaseScore(),
			Boost:     results[i].Boost(),
			Source:    string(results[i].Source()),
		})
	}
	return out
}

func writeResultsJSON(out io.Writer, results []result.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toQueryResults(results)); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeResultsTable(out io.Writer, results []result.Result, usage *domain.EmbeddingUsage) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "No matching services found.")
		return err //nolint:wrapcheck // terminal write
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tBOOST\tSOURCE\tSERVICE\tSUBURB")
	for i, r := range toQueryResults(results) {
		fmt.Fprintf(tw, "%d\t%.3f\t%.2f\t%s\t%s\t%s\n", i+1, r.Score, r.Boost, r.Source, r.Name, r.Suburb)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if usage.Used() {
		fmt.Fprintf(out, "\nembedding tokens: %d\n", usage.Tokens())
	}
	return nil
}
