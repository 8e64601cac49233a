package cmd

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/nikogura/resume-optimizer/pkg/config"
	"github.com/nikogura/resume-optimizer/pkg/keywords"
	"github.com/nikogura/resume-optimizer/pkg/source"
	"github.com/nikogura/resume-optimizer/pkg/textutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var matchKeywords string

//nolint:gochecknoglobals // Cobra boilerplate
var matchKeywordsFile string

//nolint:gochecknoglobals // Cobra boilerplate
var matchOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var matchNoCache bool

//nolint:gochecknoglobals // Cobra boilerplate
var matchCmd = &cobra.Command{
	Use:   "match <resume-file-or-url>",
	Short: "Match keywords against a resume",
	Long: `Check which keywords a resume evidences and produce a highlighted copy.

Keywords come from either:
- --keywords, a comma-separated list
- --keywords-file, a JSON file as produced by 'resume-optimizer extract'

Example:
  resume-optimizer match resume.txt --keywords "Kubernetes, Team Leadership"
  resume-optimizer match resume.txt --keywords-file keywords.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchKeywords, "keywords", "", "Comma-separated keyword list")
	matchCmd.Flags().StringVar(&matchKeywordsFile, "keywords-file", "", "JSON keyword file from the extract command")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Output file (default stdout)")
	matchCmd.Flags().BoolVar(&matchNoCache, "no-cache", false, "Bypass the completion cache")
}

// matchContextSize is how many characters of surrounding resume text each
// match excerpt carries on either side.
const matchContextSize = 100

// matchReport is the JSON shape emitted by the match command.
type matchReport struct {
	FoundKeywords     keywords.FoundMap `json:"found_keywords"`
	MatchContext      map[string]string `json:"match_context,omitempty"`
	HighlightedResume string            `json:"highlighted_resume"`
	TotalKeywords     int               `json:"total_keywords"`
	MatchedKeywords   int               `json:"matched_keywords"`
}

// matchContexts extracts a resume excerpt around each matched keyword,
// trying the keyword's variations when the keyword itself does not locate.
func matchContexts(resumeText string, found keywords.FoundMap) (contexts map[string]string) {
	contexts = map[string]string{}

	for keyword, ok := range found {
		if !ok {
			continue
		}
		for _, variation := range textutil.ExpandKeyword(keyword) {
			if excerpt := textutil.ExtractContext(resumeText, variation, matchContextSize); excerpt != "" {
				contexts[keyword] = excerpt
				break
			}
		}
	}

	return contexts
}

func runMatch(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var set *keywords.PrioritySet
	set, err = loadKeywordSet()
	if err != nil {
		return err
	}

	flat := set.Flatten()
	if len(flat) == 0 {
		err = errors.New("no keywords provided (use --keywords or --keywords-file)")
		return err
	}

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return err
	}

	var resumeText string
	resumeText, err = source.FetchWithContext(ctx, args[0])
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg, matchNoCache)
	if err != nil {
		return err
	}

	matcher := keywords.NewMatcher(client)

	var found keywords.FoundMap
	err = withSpinner("Matching keywords against resume...", func() (runErr error) {
		found = matcher.FindInResume(ctx, flat, resumeText)
		return runErr
	})
	if err != nil {
		return err
	}

	matched := 0
	for _, ok := range found {
		if ok {
			matched++
		}
	}

	report := matchReport{
		FoundKeywords:     found,
		MatchContext:      matchContexts(resumeText, found),
		HighlightedResume: keywords.HighlightFound(resumeText, found, set),
		TotalKeywords:     len(flat),
		MatchedKeywords:   matched,
	}

	var output []byte
	output, err = json.MarshalIndent(report, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal match report")
		return err
	}

	err = writeOutput(matchOutput, output)
	return err
}

// loadKeywordSet builds a PrioritySet from whichever keyword flag was
// given. Bare --keywords entries land in the medium tier.
func loadKeywordSet() (set *keywords.PrioritySet, err error) {
	if matchKeywordsFile != "" {
		var data []byte
		data, err = os.ReadFile(matchKeywordsFile)
		if err != nil {
			err = errors.Wrapf(err, "failed to read keywords file: %s", matchKeywordsFile)
			return set, err
		}

		set = &keywords.PrioritySet{}
		err = json.Unmarshal(data, set)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse keywords file: %s", matchKeywordsFile)
			return set, err
		}

		return set, err
	}

	set = &keywords.PrioritySet{}
	for _, keyword := range strings.Split(matchKeywords, ",") {
		keyword = strings.TrimSpace(keyword)
		if keyword != "" {
			set.MediumPriority = append(set.MediumPriority, keywords.Record{Keyword: keyword, Score: 0.7})
		}
	}

	return set, err
}
