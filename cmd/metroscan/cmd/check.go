package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metroscan/metroscan/internal/timetable"
)

// checkCmd audits a decoded corpus for schedule consistency.
var checkCmd = &cobra.Command{
	Use:   "check [timetable.jsonl]",
	Short: "Audit decoded records for schedule consistency",
	Long: `Audit a decoded JSONL corpus against the schedule invariants:
departure times must increase monotonically (midnight-wrap aware) and
adjacent gaps must stay within the plausible headway bounds.

Every record's violations are listed, followed by an aggregate accuracy
report.

Examples:
  metroscan check data/timetable.jsonl
  metroscan check data/timetable.jsonl --quiet`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheckCommand,
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	path := "data/timetable.jsonl"
	if len(args) > 0 {
		path = args[0]
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	f, err := os.Open(path) //nolint:gosec
	// G304: path is the CLI argument, expected user input
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	report, err := timetable.Audit(f, globalConfig.CheckOptions())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet {
		for _, failure := range report.Failures {
			rec := failure.Record
			_, _ = fmt.Fprintf(out, "\n%s:\n", rec.Filename)
			_, _ = fmt.Fprintf(out, "  route=%s station=%s destination=%s operating_time=%s times=%d\n",
				deref(rec.Route), deref(rec.Station), deref(rec.Destination),
				derefOp(rec.OperatingTime), len(rec.ScheduleTimes))
			for _, v := range failure.Violations {
				_, _ = fmt.Fprintf(out, "  - %s\n", v)
			}
		}
	}

	_, _ = fmt.Fprintf(out, "\nTotal: %d records\n", report.Total)
	_, _ = fmt.Fprintf(out, "Failed: %d\n", report.Failed())
	_, _ = fmt.Fprintf(out, "Passed: %d\n", report.Total-report.Failed())
	_, _ = fmt.Fprintf(out, "Accuracy: %.2f%%\n", report.Accuracy())
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefOp(o *timetable.OperatingTime) string {
	if o == nil {
		return ""
	}
	return string(*o)
}

func init() {
	checkCmd.Flags().BoolP("quiet", "q", false, "only print the aggregate report")

	rootCmd.AddCommand(checkCmd)
}
