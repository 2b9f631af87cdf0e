package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/myjobs"
	"github.com/jonathan/fastlabor/internal/observability"
	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/rendering"
	"github.com/jonathan/fastlabor/internal/schemas"
)

// Output formats of the myjobs command.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var myJobsCmd = &cobra.Command{
	Use:   "myjobs",
	Short: "Print the My Jobs view of one user",
	Long:  "Reads the post_job and find_job sheets and prints the postings and searches owned by --email as tables, markdown or JSON.",
	RunE:  runMyJobs,
}

var (
	myJobsEmail  string
	myJobsFormat string
	myJobsOutput string
	myJobsConfig string
	myJobsCSVDir string
)

func init() {
	myJobsCmd.Flags().StringVarP(&myJobsEmail, "email", "e", "", "Email of the user (required)")
	myJobsCmd.Flags().StringVarP(&myJobsFormat, "format", "f", formatTable, "Output format: table, markdown or json")
	myJobsCmd.Flags().StringVarP(&myJobsOutput, "out", "o", "", "Write output to this file instead of stdout")
	myJobsCmd.Flags().StringVarP(&myJobsConfig, "config", "c", "", "Path to JSON or YAML config file")
	myJobsCmd.Flags().StringVar(&myJobsCSVDir, "csv-dir", "", "Read <sheet>.csv files from this directory instead of the spreadsheet")

	if err := myJobsCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	rootCmd.AddCommand(myJobsCmd)
}

// myJobsOptions carries the resolved flags of one myjobs run.
type myJobsOptions struct {
	Email  string
	Format string
	Output string
}

func runMyJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(myJobsConfig, func(c *config.Config) {
		if myJobsCSVDir != "" {
			c.CSVDir = myJobsCSVDir
			c.SpreadsheetID = ""
		}
	})
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, true)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	svc := myjobs.NewService(src, myjobs.Options{
		PostSheet: cfg.PostSheet,
		FindSheet: cfg.FindSheet,
		Logger:    logger,
	})

	return printMyJobs(ctx, svc, myJobsOptions{
		Email:  myJobsEmail,
		Format: myJobsFormat,
		Output: myJobsOutput,
	}, cmd.OutOrStdout(), logger)
}

// viewLoader is the part of myjobs.Service the command needs.
type viewLoader interface {
	Load(ctx context.Context, email string) (*records.View, error)
}

// printMyJobs loads the view and writes it in the requested format to
// opts.Output, or to stdout when no output file is given.
func printMyJobs(ctx context.Context, svc viewLoader, opts myJobsOptions, stdout io.Writer, logger zerolog.Logger) error {
	if opts.Email == "" {
		return fmt.Errorf("--email is required")
	}

	switch opts.Format {
	case formatTable, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (want table, markdown or json)", opts.Format)
	}

	view, err := svc.Load(ctx, opts.Email)
	if err != nil {
		return fmt.Errorf("failed to load my jobs: %w", err)
	}

	out := stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch opts.Format {
	case formatTable:
		err = observability.NewPrinter(out).PrintView(view)
	case formatMarkdown:
		_, err = io.WriteString(out, rendering.ViewMarkdown(view))
	case formatJSON:
		err = writeJSON(out, view)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if opts.Output != "" && opts.Format == formatJSON {
		schemaPath := schemas.ResolveSchemaPath(schemas.MyJobsSchema)
		if schemaPath == "" {
			return fmt.Errorf("schema not found: %s", schemas.MyJobsSchema)
		}
		if err := schemas.ValidateJSON(schemaPath, opts.Output); err != nil {
			return fmt.Errorf("output failed schema validation: %w", err)
		}
	}

	logger.Info().
		Str("email", opts.Email).
		Int("postings", len(view.Postings)).
		Int("searches", len(view.Searches)).
		Str("format", opts.Format).
		Msg("my jobs printed")

	return nil
}

func writeJSON(w io.Writer, view *records.View) error {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
