package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/sabarim/pricecorr/internal/config"
	"github.com/sabarim/pricecorr/internal/dashboard"
	"github.com/sabarim/pricecorr/internal/prices"
	"github.com/sabarim/pricecorr/internal/report"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	oilPath     string
	petrolPath  string
	plasticPath string
	tarPath     string
	format      string
	dateColumn  string
	dateLayout  string
	tabName     string
	category    string
	verbose     bool
	version     bool
)

var version_string = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricecorr",
		Short: "Correlate oil product prices with the price of oil",
		Long: `Loads oil, petrol, plastic and tar price series, computes the Pearson
correlation of each oil product against oil and prints the result.`,
		Run: runReportCommand,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "config.yaml", "Path to config file")
	flags.StringVar(&oilPath, "oil", "", "Oil price file")
	flags.StringVar(&petrolPath, "petrol", "", "Petrol price file")
	flags.StringVar(&plasticPath, "plastic", "", "Plastic price file")
	flags.StringVar(&tarPath, "tar", "", "Tar price file")
	flags.StringVar(&format, "format", "", "Source format (csv, parquet)")
	flags.StringVar(&dateColumn, "date-column", "", "Name of the date column in CSV sources")
	flags.StringVar(&dateLayout, "date-layout", "", "Go time layout of the dates")
	flags.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&version, "version", false, "Print version information")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the correlation of each oil product with oil",
		Run:   runReportCommand,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Print the render instructions for one dashboard tab as JSON",
		Run:   runViewCommand,
	}
	viewCmd.Flags().StringVar(&tabName, "tab", string(dashboard.TabAnalysis), "Tab to render (analysis, raw)")
	viewCmd.Flags().StringVar(&category, "category", string(dashboard.DefaultCategory), "Line chart category (petrol, plastic, tar)")

	rootCmd.AddCommand(reportCmd, viewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildReport loads configuration and sources and assembles the report.
// Every failure here is fatal.
func buildReport(logger zerolog.Logger) *report.Report {
	// 1. Load configuration from file and environment
	cfg, err := config.LoadConfig(configFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading configuration")
	}
	if !verbose {
		if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
			logger = logger.Level(lvl)
		}
	}

	// 2. Override configuration with command-line flags
	if oilPath != "" {
		cfg.Sources.Oil = oilPath
	}
	if petrolPath != "" {
		cfg.Sources.Petrol = petrolPath
	}
	if plasticPath != "" {
		cfg.Sources.Plastic = plasticPath
	}
	if tarPath != "" {
		cfg.Sources.Tar = tarPath
	}
	if format != "" {
		cfg.Sources.Format = format
	}
	if dateColumn != "" {
		cfg.Sources.DateColumn = dateColumn
	}
	if dateLayout != "" {
		cfg.Sources.DateLayout = dateLayout
	}

	// 3. Create context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Load the four series
	sources, err := prices.SourcesFromPaths(cfg.Sources.Format, cfg.Sources.DateColumn, map[prices.Commodity]string{
		prices.Oil:     cfg.Sources.Oil,
		prices.Petrol:  cfg.Sources.Petrol,
		prices.Plastic: cfg.Sources.Plastic,
		prices.Tar:     cfg.Sources.Tar,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid sources")
	}

	loader := prices.NewLoader(cfg.Sources.DateLayout, logger)
	ds, err := loader.Load(ctx, sources)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load price data")
	}

	// 5. Correlate
	rep, err := report.FromDataset(ds)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build report")
	}
	return rep
}

func runReportCommand(cmd *cobra.Command, args []string) {
	if version {
		fmt.Printf("pricecorr version %s\n", version_string)
		return
	}

	logger := newLogger()
	rep := buildReport(logger)

	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(out, "rows\t%d\n", rep.Data.Table.Len())
	for _, res := range rep.Correlations {
		fmt.Fprintf(out, "%s\t%s\n", res.Label, res.DisplayString())
	}
	if err := out.Flush(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write report")
	}
}

func runViewCommand(cmd *cobra.Command, args []string) {
	logger := newLogger()

	tab, err := dashboard.ParseTab(tabName)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid tab")
	}
	cat, err := dashboard.ParseCategory(category)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid category")
	}

	rep := buildReport(logger)
	view, err := dashboard.New(rep).Render(tab, cat)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to render view")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode view")
	}
}
