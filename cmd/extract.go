package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nikogura/resume-optimizer/pkg/config"
	"github.com/nikogura/resume-optimizer/pkg/keywords"
	"github.com/nikogura/resume-optimizer/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

//nolint:gochecknoglobals // Cobra boilerplate
var extractResume string

//nolint:gochecknoglobals // Cobra boilerplate
var extractJobTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var extractCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var extractIndustry string

//nolint:gochecknoglobals // Cobra boilerplate
var extractOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var extractNoCache bool

//nolint:gochecknoglobals // Cobra boilerplate
var extractCmd = &cobra.Command{
	Use:   "extract <jd-file-or-url>",
	Short: "Extract prioritized keywords from a job description",
	Long: `Extract ATS keywords from a job description, ranked into high, medium,
and low priority tiers.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

With --resume, keywords are also cross-referenced against the resume:
citations are collected for keywords the resume evidences and the rest are
reported as missing.

Example:
  resume-optimizer extract jd.txt
  resume-optimizer extract jd.txt --resume resume.txt --job-title "Staff Engineer"
  resume-optimizer extract https://example.com/jobs/123 --company "Acme" --industry "Fintech"`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractResume, "resume", "", "Resume file or URL to cross-reference keywords against")
	extractCmd.Flags().StringVar(&extractJobTitle, "job-title", "", "Job title for context")
	extractCmd.Flags().StringVar(&extractCompany, "company", "", "Company name for context")
	extractCmd.Flags().StringVar(&extractIndustry, "industry", "", "Industry for context")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default stdout)")
	extractCmd.Flags().BoolVar(&extractNoCache, "no-cache", false, "Bypass the completion cache")
}

func runExtract(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return err
	}

	var jobDescription string
	jobDescription, err = source.FetchWithContext(ctx, args[0])
	if err != nil {
		return err
	}

	var resumeText string
	if extractResume != "" {
		resumeText, err = source.FetchWithContext(ctx, extractResume)
		if err != nil {
			return err
		}
	}

	client, err := newLLMClient(cfg, extractNoCache)
	if err != nil {
		return err
	}

	extractor := keywords.NewExtractor(client)

	var result keywords.ExtractResult
	err = withSpinner("Extracting keywords from job description...", func() (runErr error) {
		result, runErr = extractor.Extract(ctx, keywords.ExtractRequest{
			JobDescription: jobDescription,
			ResumeText:     resumeText,
			JobTitle:       extractJobTitle,
			CompanyName:    extractCompany,
			Industry:       extractIndustry,
		})
		return runErr
	})
	if err != nil {
		return err
	}

	// Highlight before marshaling so found_keywords lands in the output.
	highlighted := keywords.HighlightByPriority(jobDescription, result.Set)

	var output []byte
	output, err = json.MarshalIndent(result.Set, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal keywords")
		return err
	}

	output, err = sjson.SetBytes(output, "highlighted_job_description", highlighted)
	if err != nil {
		err = errors.Wrap(err, "failed to attach highlighted job description")
		return err
	}

	if result.Citations != nil {
		output, err = sjson.SetBytes(output, "citations", result.Citations)
		if err != nil {
			err = errors.Wrap(err, "failed to attach citations")
			return err
		}
	}

	err = writeOutput(extractOutput, output)
	return err
}
