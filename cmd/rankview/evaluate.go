package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/evaluation"
	"github.com/alexisbeaulieu97/rankview/internal/results"
	"github.com/alexisbeaulieu97/rankview/internal/selection"
	"github.com/alexisbeaulieu97/rankview/internal/validation"
)

const defaultOutputWidth = 100

type evaluateOptions struct {
	form formFlags
	json bool
}

func newEvaluateCmd(root *rootFlags) *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate --jd <file> --candidates <files>",
		Short: "Rank candidates once and print the results",
		Long: `Evaluate uploads the job description and candidate files, waits for the
service to answer, and prints every ranked row with its details expanded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, root, opts)
		},
	}

	opts.form.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the raw result set as JSON")

	return cmd
}

func runEvaluate(cmd *cobra.Command, root *rootFlags, opts *evaluateOptions) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}

	log, err := commandLogger(cmd, cfg)
	if err != nil {
		return newCommandError("create logger", cfg.LogLevel, err, "Use one of trace, debug, info, warn or error.")
	}
	defer log.Close()

	tracker := selection.NewTracker()
	jd := tracker.ChangeRaw(selection.JobDescription, opts.form.jobDescription)
	candidates := tracker.ChangeRaw(selection.CandidateSet, opts.form.candidates)
	if !jd.Selected {
		return newCommandError("select job description", quoteOrNone(opts.form.jobDescription),
			fmt.Errorf("no readable file matched"), "Pass an existing PDF, DOCX or TXT file to --jd.")
	}
	if !candidates.Selected {
		return newCommandError("select candidates", quoteOrNone(opts.form.candidates),
			fmt.Errorf("no readable files matched"), "Pass one or more files or globs to --candidates.")
	}

	c, err := client.New(client.Options{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.RequestTimeout,
		Logger:   log,
	})
	if err != nil {
		return newCommandError("configure client", cfg.Endpoint, err, "Pass a full http(s) URL to --endpoint.")
	}

	form := client.Form{
		JobDescription: jd.Files[0],
		Candidates:     candidates.Files,
		Fields:         opts.form.mergedFields(cfg),
	}

	report, err := validation.Preflight(form, int64(cfg.Server.BodyLimit))
	for _, res := range report.Failed(validation.RoleCandidate) {
		log.With("file", res.Path).Warn("candidate will be skipped: " + res.Message)
	}
	if err != nil {
		return newCommandError("check documents", jd.Label, err, "Fix or remove the listed files; only non-empty PDF, DOCX and TXT documents are evaluated.")
	}
	if report.OverLimit {
		log.With("bytes", report.TotalBytes).Warn("upload exceeds the reference service body limit")
	}

	log.WithFields(map[string]any{
		"job_description": jd.Label,
		"candidates":      candidates.Label,
	}).Info("submitting evaluation")

	set, err := c.Evaluate(cmd.Context(), form)
	if err != nil {
		return newCommandError("evaluate candidates", c.URL(), err, evaluationSuggestion(err, cfg.Endpoint))
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}
	return printResults(out, set, outputWidth(out))
}

// printResults renders every row revealed and expanded.
func printResults(w io.Writer, set evaluation.ResultSet, width int) error {
	var table results.Table
	table.Replace(set)
	table.RevealAll()
	for i := 0; i < table.Len(); i++ {
		table.Toggle(i)
	}

	layout := table.View(results.ViewOptions{Width: width})
	_, err := fmt.Fprintln(w, layout.Content)
	return err
}

func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultOutputWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}

func quoteOrNone(s string) string {
	if s == "" {
		return "(none given)"
	}
	return fmt.Sprintf("%q", s)
}
