package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

var (
	jobExperience []string
	jobWorkTypes  []string
	jobCompany    string
	jobCountry    string

	courseSites      []string
	courseCategories []string
	courseSubtitle   string
	courseBlend      bool

	recommendPage int
	recommendJSON bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs <profile>",
	Short: "Recommend job postings for a profile",
	Long: `Ranks job postings by TF-IDF cosine similarity to the profile and
prints the matches five per page. Filters narrow the ranked list; multi-value
filters keep rows matching any of the given values.`,
	Example: `  tristep jobs "python sql data analysis" --experience "Entry level" --country US
  tristep jobs "frontend react" --work-type Full-time --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJobs,
}

var coursesCmd = &cobra.Command{
	Use:   "courses <profile>",
	Short: "Recommend online courses for a profile",
	Long: `Ranks online courses by TF-IDF cosine similarity to the profile and
keeps the top 5% of matches. With --blend the shortlist is re-ranked by an
even mix of similarity and a popularity-weighted rating.`,
	Example: `  tristep courses "machine learning" --site Coursera --blend
  tristep courses "excel" --category Business --subtitle Spanish`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCourses,
}

func init() {
	jobsCmd.Flags().StringSliceVar(&jobExperience, "experience", nil, "experience levels to keep")
	jobsCmd.Flags().StringSliceVar(&jobWorkTypes, "work-type", nil, "work types to keep")
	jobsCmd.Flags().StringVar(&jobCompany, "company", "", "company name to keep")
	jobsCmd.Flags().StringVar(&jobCountry, "country", "", "country to keep")
	addPagingFlags(jobsCmd)

	coursesCmd.Flags().StringSliceVar(&courseSites, "site", nil, "course sites to keep")
	coursesCmd.Flags().StringSliceVar(&courseCategories, "category", nil, "categories to keep")
	coursesCmd.Flags().StringVar(&courseSubtitle, "subtitle", "", "subtitle language to require")
	coursesCmd.Flags().BoolVar(&courseBlend, "blend", false,
		"blend similarity with popularity (default from ranking.course_blend)")
	addPagingFlags(coursesCmd)

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(coursesCmd)
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&recommendPage, "page", "p", 1, "page of results to show")
	cmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
}

func runJobs(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	req := domain.RecommendRequest{
		Profile: strings.Join(args, " "),
		Jobs: domain.JobFilters{
			ExperienceLevels: jobExperience,
			WorkTypes:        jobWorkTypes,
			Company:          jobCompany,
			Country:          jobCountry,
		},
	}

	rec, err := recommendService.RecommendJobs(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("recommend jobs: %w", err)
	}
	return outputRecommendation(cmd, domain.CorpusJobs, req.Profile, rec)
}

func runCourses(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	blend := courseBlend
	if !cmd.Flags().Changed("blend") && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			blend = settings.Ranking.CourseBlend
		}
	}

	req := domain.RecommendRequest{
		Profile: strings.Join(args, " "),
		Courses: domain.CourseFilters{
			Sites:      courseSites,
			Categories: courseCategories,
			Subtitle:   courseSubtitle,
		},
		Blend: blend,
	}

	rec, err := recommendService.RecommendCourses(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("recommend courses: %w", err)
	}
	return outputRecommendation(cmd, domain.CorpusCourses, req.Profile, rec)
}

func outputRecommendation(cmd *cobra.Command, kind domain.CorpusKind, profile string, rec *domain.Recommendation) error {
	var results []domain.RankedResult
	if rec != nil {
		results = rec.Results
	}
	page := domain.Paginate(results, recommendPage-1)

	if recommendJSON {
		return outputRecommendationJSON(cmd, kind, page)
	}

	if rec.IsEmpty() {
		cmd.Printf("No matching %s found for %q.\n", kind, profile)
		return nil
	}

	cmd.Printf("Top %s matches for %q (%d results, page %d of %d)\n\n",
		kind.EntityType(), profile, page.Total, page.Number(), page.Count)

	for i := range page.Items {
		r := &page.Items[i]
		cmd.Printf("  [%d] %s (%.3f)\n", page.Offset+i+1, r.Record.Title, r.RankScore())
		for _, line := range describe(kind, r) {
			cmd.Printf("      %s\n", line)
		}
		cmd.Println()
	}

	if page.HasNext {
		cmd.Printf("More results: --page %d\n", page.Number()+1)
	}
	return nil
}

type resultJSON struct {
	Rank       int               `json:"rank"`
	Title      string            `json:"title"`
	Similarity float64           `json:"similarity"`
	Score      float64           `json:"score,omitempty"`
	Final      float64           `json:"final,omitempty"`
	Fields     map[string]string `json:"fields"`
}

type recommendationJSON struct {
	Kind    domain.CorpusKind `json:"kind"`
	Page    int               `json:"page"`
	Pages   int               `json:"pages"`
	Total   int               `json:"total"`
	Results []resultJSON      `json:"results"`
}

func outputRecommendationJSON(cmd *cobra.Command, kind domain.CorpusKind, page domain.Page) error {
	out := recommendationJSON{
		Kind:    kind,
		Page:    page.Number(),
		Pages:   page.Count,
		Total:   page.Total,
		Results: make([]resultJSON, 0, len(page.Items)),
	}
	for i, r := range page.Items {
		out.Results = append(out.Results, resultJSON{
			Rank:       page.Offset + i + 1,
			Title:      r.Record.Title,
			Similarity: r.Similarity,
			Score:      r.Score,
			Final:      r.Final,
			Fields:     r.Record.Fields,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// describe returns the detail lines printed under a result title.
func describe(kind domain.CorpusKind, r *domain.RankedResult) []string {
	rec := r.Record
	if kind == domain.CorpusCourses {
		lines := []string{
			fmt.Sprintf("%s · %s / %s", rec.Field(domain.ColCourseSite),
				rec.Field(domain.ColCourseCategory), rec.Field(domain.ColCourseSubCategory)),
			fmt.Sprintf("Rating %.1f from %d viewers", rec.Rating, rec.Viewers),
		}
		if r.Blended {
			lines = append(lines, fmt.Sprintf("Similarity %.3f · weighted rating %.3f", r.Similarity, r.Score))
		}
		if url := rec.RawField(domain.ColCourseURL); url != "" {
			lines = append(lines, url)
		}
		return lines
	}

	lines := []string{
		fmt.Sprintf("%s · %s, %s", rec.Field(domain.ColJobCompany),
			rec.Field(domain.ColJobCity), rec.Field(domain.ColJobCountry)),
		fmt.Sprintf("%s · %s", rec.Field(domain.ColJobExperience), rec.Field(domain.ColJobWorkType)),
	}
	if rec.RawField(domain.ColJobMinSalary) != "" || rec.RawField(domain.ColJobMaxSalary) != "" {
		lines = append(lines, fmt.Sprintf("Salary %s - %s",
			rec.Field(domain.ColJobMinSalary), rec.Field(domain.ColJobMaxSalary)))
	}
	if url := rec.RawField(domain.ColJobPostingURL); url != "" {
		lines = append(lines, url)
	}
	return lines
}
