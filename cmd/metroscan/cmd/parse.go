package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/metroscan/metroscan/internal/batch"
	"github.com/metroscan/metroscan/internal/config"
)

// parseCmd decodes a corpus of board photos into JSONL records.
var parseCmd = &cobra.Command{
	Use:   "parse [files or directories...]",
	Short: "Decode timetable board photos into departure records",
	Long: `Decode timetable board photos into structured departure records.

Image filenames must follow the "route-station-*.ext" pattern; the station
reference used for destination correction is built from the whole corpus
before decoding starts. Images are decoded in parallel and the records are
written as JSON Lines in input order.

Examples:
  metroscan parse timetables/
  metroscan parse timetables/ --line 18 --output line18.jsonl
  metroscan parse a.png b.png --workers 4 --stats`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runParseCommand,
}

// configToBatchConfig maps the centralized configuration to batch.Config.
// CLI flags override config file values.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	bc := &batch.Config{
		RecognizerCommand:    cfg.Recognizer.Command,
		RecognizerArgs:       cfg.Recognizer.Args,
		Pipeline:             cfg.PipelineOptions(),
		Preprocess:           cfg.PreprocessOptions(),
		StationOverridesFile: cfg.Stations.OverridesFile,
		Recursive:            cfg.Batch.Recursive,
		OutputFile:           cfg.Batch.OutputFile,
		Workers:              cfg.Batch.Workers,
	}

	if cmd.Flags().Changed("recognizer") {
		bc.RecognizerCommand, _ = cmd.Flags().GetString("recognizer")
	}
	if cmd.Flags().Changed("recursive") {
		bc.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("output") {
		bc.OutputFile, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("workers") {
		bc.Workers, _ = cmd.Flags().GetInt("workers")
	}
	bc.RouteFilter, _ = cmd.Flags().GetString("line")
	bc.Quiet, _ = cmd.Flags().GetBool("quiet")
	bc.ShowStats, _ = cmd.Flags().GetBool("stats")
	return bc
}

func runParseCommand(cmd *cobra.Command, args []string) error {
	bc := configToBatchConfig(globalConfig, cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := batch.ProcessBatch(ctx, args, bc)
	if err != nil {
		return err
	}

	if err := result.SaveResults(bc.OutputFile, bc.Quiet); err != nil {
		return err
	}
	if bc.ShowStats {
		result.PrintStats(bc.Quiet)
	}
	return nil
}

func init() {
	parseCmd.Flags().StringP("line", "l", "", "only process images of this route (e.g. 18)")
	parseCmd.Flags().StringP("output", "o", "", "output JSONL file (default from config, \"\" for stdout)")
	parseCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (0 = config default)")
	parseCmd.Flags().BoolP("recursive", "r", false, "search directories recursively")
	parseCmd.Flags().String("recognizer", "", "path to the external recognizer command")
	parseCmd.Flags().BoolP("quiet", "q", false, "suppress non-record output")
	parseCmd.Flags().Bool("stats", false, "print processing statistics")

	rootCmd.AddCommand(parseCmd)
}
