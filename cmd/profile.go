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
var profileResume string

//nolint:gochecknoglobals // Cobra boilerplate
var profileJobTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var profileCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var profileIndustry string

//nolint:gochecknoglobals // Cobra boilerplate
var profileOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var profileNoCache bool

//nolint:gochecknoglobals // Cobra boilerplate
var profileCmd = &cobra.Command{
	Use:   "profile <jd-file-or-url>",
	Short: "Generate a tailored career profile",
	Long: `Generate a one sentence career profile tailored to a job description,
with the keywords it covers highlighted and citations into the resume.

Example:
  resume-optimizer profile jd.txt --resume resume.txt --job-title "Staff Engineer"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileResume, "resume", "", "Resume file or URL (required)")
	profileCmd.Flags().StringVar(&profileJobTitle, "job-title", "", "Job title for context")
	profileCmd.Flags().StringVar(&profileCompany, "company", "", "Company name for context")
	profileCmd.Flags().StringVar(&profileIndustry, "industry", "", "Industry for context")
	profileCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "Output file (default stdout)")
	profileCmd.Flags().BoolVar(&profileNoCache, "no-cache", false, "Bypass the completion cache")
	_ = profileCmd.MarkFlagRequired("resume")
}

func runProfile(cmd *cobra.Command, args []string) (err error) {
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
	resumeText, err = source.FetchWithContext(ctx, profileResume)
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg, profileNoCache)
	if err != nil {
		return err
	}

	generator := generate.New(client)

	var result generate.ProfileResult
	err = withSpinner("Generating career profile...", func() (runErr error) {
		result, runErr = generator.CareerProfile(ctx, generate.Request{
			JobDescription: jobDescription,
			ResumeText:     resumeText,
			JobTitle:       profileJobTitle,
			CompanyName:    profileCompany,
			Industry:       profileIndustry,
		})
		return runErr
	})
	if err != nil {
		return err
	}

	var output []byte
	output, err = json.MarshalIndent(struct {
		Profile     string            `json:"profile"`
		Highlighted string            `json:"highlighted_profile"`
		Keywords    []string          `json:"keywords"`
		Citations   map[string]string `json:"citations"`
	}{
		Profile:     result.Profile,
		Highlighted: result.Highlighted,
		Keywords:    result.Keywords,
		Citations:   result.Citations,
	}, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile result")
		return err
	}

	err = writeOutput(profileOutput, output)
	return err
}
