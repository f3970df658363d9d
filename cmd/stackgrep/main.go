// Command stackgrep searches the CloudWatch log groups of a CloudFormation
// stack for configured terms over a bounded time window and reports which
// log groups matched.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/stackgrep/internal/config"
	"github.com/crimson-sun/stackgrep/internal/directory"
	"github.com/crimson-sun/stackgrep/internal/logging"
	"github.com/crimson-sun/stackgrep/internal/logsearch"
	"github.com/crimson-sun/stackgrep/internal/progress"
	"github.com/crimson-sun/stackgrep/internal/report"
	"github.com/crimson-sun/stackgrep/internal/search"
	"github.com/crimson-sun/stackgrep/internal/terms"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "stackgrep: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stackgrep: %v\n", err)
		os.Exit(1)
	}

	var (
		stackName        string
		partialStackName string
		queryWait        int
		queryLimit       int
		startMins        int
		startHours       int
		startDays        int
		endTime          int64
		termsFile        string
		outputDir        string
		concurrency      int
		logLevel         string
		logFormat        string
	)

	cmd := &cobra.Command{
		Use:   "stackgrep",
		Short: "Search a CloudFormation stack's log groups for configured terms",
		Long: `stackgrep resolves the log groups behind a CloudFormation stack,
runs one CloudWatch Logs Insights query per group over the requested
time window, and writes a JSON results file when any term matches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			logging.Init(os.Stderr, logFormat, logging.ParseLevel(logLevel))

			queryTerms, err := terms.Load(termsFile)
			if err != nil {
				return err
			}

			opts := search.Options{
				StackName:        stackName,
				PartialStackName: partialStackName,
				QueryWait:        queryWait,
				QueryLimit:       queryLimit,
				EndTimeMillis:    endTime,
				Concurrency:      concurrency,
				PollInterval:     cfg.PollInterval,
			}
			// An unset unit stays nil so exactly-one validation can tell
			// "not given" from an explicit zero.
			if cmd.Flags().Changed("start-mins") {
				opts.StartMins = &startMins
			}
			if cmd.Flags().Changed("start-hours") {
				opts.StartHours = &startHours
			}
			if cmd.Flags().Changed("start-days") {
				opts.StartDays = &startDays
			}
			if !cmd.Flags().Changed("end-time") {
				opts.EndTimeMillis = time.Now().UnixMilli()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return fmt.Errorf("load aws config: %w", err)
			}

			searcher := search.New(
				directory.NewCloudFormation(cloudformation.NewFromConfig(awsCfg)),
				logsearch.NewCloudWatch(cloudwatchlogs.NewFromConfig(awsCfg)),
				report.NewWriter(outputDir),
				progress.New(os.Stderr),
				slog.Default(),
				queryTerms,
				opts,
			)
			return searcher.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&stackName, "stack-name", "", "exact CloudFormation stack name to search")
	flags.StringVar(&partialStackName, "partial-stack-name", "", "substring matched against stable stack names; every match is searched")
	flags.IntVar(&queryWait, "query-wait", cfg.QueryWait, "maximum seconds to wait for queries to complete")
	flags.IntVar(&queryLimit, "query-limit", cfg.QueryLimit, "maximum records returned per log group")
	flags.IntVar(&startMins, "start-mins", 0, "window start, minutes before the end time")
	flags.IntVar(&startHours, "start-hours", 0, "window start, hours before the end time")
	flags.IntVar(&startDays, "start-days", 0, "window start, days before the end time")
	flags.Int64Var(&endTime, "end-time", 0, "window end as epoch milliseconds (default: now)")
	flags.StringVar(&termsFile, "terms-file", cfg.TermsFile, "YAML file listing the query terms")
	flags.StringVar(&outputDir, "output-dir", cfg.OutputDir, "directory for the results file")
	flags.IntVar(&concurrency, "concurrency", cfg.Concurrency, "maximum queries in flight at once")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", cfg.LogFormat, "log format (text or json)")

	cmd.MarkFlagsMutuallyExclusive("stack-name", "partial-stack-name")
	cmd.MarkFlagsOneRequired("stack-name", "partial-stack-name")
	cmd.MarkFlagsMutuallyExclusive("start-mins", "start-hours", "start-days")
	cmd.MarkFlagsOneRequired("start-mins", "start-hours", "start-days")

	return cmd
}
