package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nikogura/resume-optimizer/pkg/config"
	"github.com/nikogura/resume-optimizer/pkg/generate"
	"github.com/nikogura/resume-optimizer/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesResume string

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesJobTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesIndustry string

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesNoCache bool

//nolint:gochecknoglobals // Cobra boilerplate
var competenciesCmd = &cobra.Command{
	Use:   "competencies <jd-file-or-url>",
	Short: "Generate core competencies",
	Long: `Generate a list of up to 15 core competencies drawn from a job description
and evidenced by the resume, with citations into the resume.

Example:
  resume-optimizer competencies jd.txt --resume resume.txt --company "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: runCompetencies,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(competenciesCmd)
	competenciesCmd.Flags().StringVar(&competenciesResume, "resume", "", "Resume file or URL (required)")
	competenciesCmd.Flags().StringVar(&competenciesJobTitle, "job-title", "", "Job title for context")
	competenciesCmd.Flags().StringVar(&competenciesCompany, "company", "", "Company name for context")
	competenciesCmd.Flags().StringVar(&competenciesIndustry, "industry", "", "Industry for context")
	competenciesCmd.Flags().StringVarP(&competenciesOutput, "output", "o", "", "Output file (default stdout)")
	competenciesCmd.Flags().BoolVar(&competenciesNoCache, "no-cache", false, "Bypass the completion cache")
	_ = competenciesCmd.MarkFlagRequired("resume")
}

func runCompetencies(cmd *cobra.Command, args []string) (err error) {
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
	resumeText, err = source.FetchWithContext(ctx, competenciesResume)
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg, competenciesNoCache)
	if err != nil {
		return err
	}

	generator := generate.New(client)

	var result generate.CompetenciesResult
	err = withSpinner("Generating core competencies...", func() (runErr error) {
		result, runErr = generator.CoreCompetencies(ctx, generate.Request{
			JobDescription: jobDescription,
			ResumeText:     resumeText,
			JobTitle:       competenciesJobTitle,
			CompanyName:    competenciesCompany,
			Industry:       competenciesIndustry,
		})
		return runErr
	})
	if err != nil {
		return err
	}

	var output []byte
	output, err = json.MarshalIndent(struct {
		Competencies string            `json:"competencies"`
		List         []string          `json:"list"`
		Keywords     []string          `json:"keywords"`
		Citations    map[string]string `json:"citations"`
	}{
		Competencies: result.Competencies,
		List:         result.List,
		Keywords:     result.Keywords,
		Citations:    result.Citations,
	}, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal competencies result")
		return err
	}

	err = writeOutput(competenciesOutput, output)
	return err
}
