// internal/cli/run.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ezinulo/pricefinder/internal/assemble"
	"github.com/ezinulo/pricefinder/internal/batch"
	"github.com/ezinulo/pricefinder/internal/export"
	"github.com/ezinulo/pricefinder/internal/input"
	"github.com/ezinulo/pricefinder/internal/source"
	"github.com/ezinulo/pricefinder/internal/ui"
	"github.com/ezinulo/pricefinder/pkg/models"
)

var (
	sourceNames string
	concurrency int
	minMargin   float64
	rowLimit    int
	withCost    bool
	retries     int
	outPath     string
	noProgress  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Look up prices for every EAN in a CSV or XLSX file",
	Long: `Reads an EAN list, queries the configured shopping sources for each
product concurrently, and prints a table of found prices with the derived
UVP, B2B price and margins. Sources that miss the EAN retry with the
product name when one is present.`,
	Example: `  # Look up a list against the default scrape sources
  pricefinder run eans.xlsx

  # Include purchase prices and the margin against them
  pricefinder run eans.xlsx --with-cost

  # Use the search API as well, keep only promising products
  pricefinder run eans.csv --sources=google,idealo,api --min-margin=15

  # Export the results
  pricefinder run eans.xlsx --out=xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&sourceNames, "sources", "google,idealo", "Comma-separated sources to query: google, idealo, api")
	runCmd.Flags().IntVarP(&concurrency, "concurrency", "c", batch.DefaultConcurrency, "Number of products looked up in parallel")
	runCmd.Flags().Float64Var(&minMargin, "min-margin", 0, "Keep only rows with at least this margin percentage (0-100)")
	runCmd.Flags().IntVar(&rowLimit, "limit", 0, "Process at most this many rows (0 = all)")
	runCmd.Flags().BoolVar(&withCost, "with-cost", false, "Require Name and EK columns and compute the margin against EK")
	runCmd.Flags().IntVar(&retries, "retries", 1, "Attempts per source for transport errors (1 = no retry)")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "Export path (.csv, .xlsx, .json); bare \"xlsx\" picks the dated default name")
	runCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
}

func runRun(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	if minMargin < 0 || minMargin > 100 {
		return fmt.Errorf("min-margin must be between 0 and 100")
	}
	if !cmd.Flags().Changed("concurrency") {
		concurrency = a.Config.Concurrency
	}
	if concurrency <= 0 || concurrency > batch.MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", batch.MaxConcurrency)
	}
	if !cmd.Flags().Changed("retries") {
		retries = a.Config.Retries
	}

	rows, err := input.Load(args[0], withCost)
	if err != nil {
		return err
	}
	rows = input.Limit(rows, rowLimit)
	if len(rows) == 0 {
		return fmt.Errorf("no rows with an EAN found in %s", args[0])
	}
	log.Debug().Int("rows", len(rows)).Str("file", args[0]).Msg("Input loaded")

	names := strings.Split(sourceNames, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	clients, err := a.Sources(names, retries)
	if err != nil {
		return err
	}
	resolver := source.NewResolver(clients...)

	var onProgress batch.ProgressFunc
	if !noProgress {
		bar := progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Looking up prices"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		onProgress = func(done, total int) { _ = bar.Set(done) }
	}

	results := batch.New(concurrency).Run(cmd.Context(),
		rows,
		func(ctx context.Context, row models.ProductRow) []models.Quote {
			return resolver.Resolve(ctx, row)
		},
		onProgress,
	)

	table := assemble.Assemble(results)
	table = assemble.FilterMinMargin(table, minMargin)

	printSummary(cmd.OutOrStdout(), table, withCost)

	if outPath != "" {
		return exportResults(table, outPath)
	}
	return nil
}

func printSummary(w io.Writer, rows []models.ResultRow, withCost bool) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	header := "EAN\tName\tAvg\tUVP\tB2B\tMargin %"
	if withCost {
		header += "\tMargin vs EK %"
	}
	header += "\tRating"
	fmt.Fprintln(tw, ui.Bold(header))

	var found int
	for _, r := range rows {
		line := fmt.Sprintf("%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f",
			r.Row.EAN, r.Row.Name,
			r.Metrics.Average, r.Metrics.UVP, r.Metrics.B2B, r.Metrics.MarginVsAverage)
		if withCost {
			line += fmt.Sprintf("\t%.2f", r.Metrics.MarginVsCost)
		}
		line += "\t" + ui.RatingColor(r.Rating)
		fmt.Fprintln(tw, line)

		for _, q := range r.Quotes {
			if q.Found {
				found++
				break
			}
		}
	}

	fmt.Fprintf(tw, "\n%d products, %d with at least one price\n", len(rows), found)
}

func exportResults(rows []models.ResultRow, path string) error {
	if path == "xlsx" {
		path = export.DefaultXLSXName()
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		err = export.SaveCSV(rows, path)
	case ".xlsx":
		err = export.SaveXLSX(rows, path)
	case ".json":
		err = export.SaveJSON(rows, path)
	default:
		return fmt.Errorf("unsupported export format %q (use .csv, .xlsx or .json)", ext)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, ui.Success("Saved "+path))
	return nil
}
