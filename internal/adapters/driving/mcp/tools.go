package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// JobsInput is the input schema for the recommend_jobs tool.
type JobsInput struct {
	Profile          string   `json:"profile" jsonschema:"free-text description of the candidate: skills, experience, interests"`
	ExperienceLevels []string `json:"experience_levels,omitempty" jsonschema:"keep postings at any of these experience levels"`
	WorkTypes        []string `json:"work_types,omitempty" jsonschema:"keep postings of any of these work types, e.g. Full-time"`
	Company          string   `json:"company,omitempty" jsonschema:"keep postings from this company only"`
	Country          string   `json:"country,omitempty" jsonschema:"keep postings in this country only"`
	Page             int      `json:"page,omitempty" jsonschema:"1-based page of 5 results (default 1)"`
}

// CoursesInput is the input schema for the recommend_courses tool.
type CoursesInput struct {
	Profile    string   `json:"profile" jsonschema:"free-text description of what the learner wants to study"`
	Sites      []string `json:"sites,omitempty" jsonschema:"keep courses from any of these sites"`
	Categories []string `json:"categories,omitempty" jsonschema:"keep courses in any of these categories"`
	Subtitle   string   `json:"subtitle,omitempty" jsonschema:"keep courses offering subtitles in this language"`
	Blend      *bool    `json:"blend,omitempty" jsonschema:"blend similarity with rating popularity (default from settings)"`
	Page       int      `json:"page,omitempty" jsonschema:"1-based page of 5 results (default 1)"`
}

// FacetsInput is the input schema for the list_facets tool.
type FacetsInput struct {
	Kind string `json:"kind" jsonschema:"jobs or courses"`
}

// RecommendOutput is the output schema for both recommend tools.
type RecommendOutput struct {
	Results    []ResultOutput `json:"results"`
	Page       int            `json:"page"`
	PageCount  int            `json:"page_count"`
	Total      int            `json:"total"`
	CorpusHash string         `json:"corpus_hash,omitempty"`
}

// ResultOutput represents a single ranked record.
type ResultOutput struct {
	Rank       int               `json:"rank"`
	Title      string            `json:"title"`
	Similarity float64           `json:"similarity"`
	Score      float64           `json:"score,omitempty"`
	Final      float64           `json:"final,omitempty"`
	Details    map[string]string `json:"details"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_jobs",
		Description: "Rank job postings by TF-IDF similarity to a candidate profile",
	}, s.handleRecommendJobs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_courses",
		Description: "Rank online courses by similarity to a learner profile, optionally blended with ratings",
	}, s.handleRecommendCourses)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_facets",
		Description: "List the filter values available for jobs or courses",
	}, s.handleListFacets)
}

func (s *Server) handleRecommendJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobsInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	req := domain.RecommendRequest{
		Profile: input.Profile,
		Jobs: domain.JobFilters{
			ExperienceLevels: input.ExperienceLevels,
			WorkTypes:        input.WorkTypes,
			Company:          input.Company,
			Country:          input.Country,
		},
	}

	rec, err := s.ports.Recommend.RecommendJobs(ctx, req)
	if err != nil {
		return nil, RecommendOutput{}, err
	}
	return nil, toOutput(rec, input.Page, jobDetails), nil
}

func (s *Server) handleRecommendCourses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CoursesInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	req := domain.RecommendRequest{
		Profile: input.Profile,
		Courses: domain.CourseFilters{
			Sites:      input.Sites,
			Categories: input.Categories,
			Subtitle:   input.Subtitle,
		},
		Blend: s.blend(input.Blend),
	}

	rec, err := s.ports.Recommend.RecommendCourses(ctx, req)
	if err != nil {
		return nil, RecommendOutput{}, err
	}
	return nil, toOutput(rec, input.Page, courseDetails), nil
}

func (s *Server) handleListFacets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FacetsInput,
) (*mcp.CallToolResult, domain.FacetOptions, error) {
	kind, err := domain.ParseCorpusKind(input.Kind)
	if err != nil {
		return nil, domain.FacetOptions{}, fmt.Errorf("kind %q: %w", input.Kind, err)
	}

	opts, err := s.ports.Corpus.Facets(ctx, kind)
	if err != nil {
		return nil, domain.FacetOptions{}, err
	}
	return nil, *opts, nil
}

// blend resolves the course ordering: explicit input, then settings, then off.
func (s *Server) blend(explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if s.ports.Settings == nil {
		return false
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return false
	}
	return settings.Ranking.CourseBlend
}

func toOutput(rec *domain.Recommendation, page int, details func(domain.Record) map[string]string) RecommendOutput {
	if rec.IsEmpty() {
		return RecommendOutput{Results: []ResultOutput{}, Page: 1, PageCount: 1}
	}

	p := domain.Paginate(rec.Results, page-1)
	out := RecommendOutput{
		Results:    make([]ResultOutput, len(p.Items)),
		Page:       p.Index + 1,
		PageCount:  p.Count,
		Total:      p.Total,
		CorpusHash: rec.CorpusHash,
	}
	for i, r := range p.Items {
		out.Results[i] = ResultOutput{
			Rank:       p.Offset + i + 1,
			Title:      r.Record.Title,
			Similarity: r.Similarity,
			Details:    details(r.Record),
		}
		if r.Blended {
			out.Results[i].Score = r.Score
			out.Results[i].Final = r.Final
		}
	}
	return out
}

func jobDetails(r domain.Record) map[string]string {
	return map[string]string{
		"company":    r.Field(domain.ColJobCompany),
		"country":    r.Field(domain.ColJobCountry),
		"city":       r.Field(domain.ColJobCity),
		"experience": r.Field(domain.ColJobExperience),
		"work_type":  r.Field(domain.ColJobWorkType),
		"url":        r.Field(domain.ColJobPostingURL),
	}
}

func courseDetails(r domain.Record) map[string]string {
	return map[string]string{
		"site":      r.Field(domain.ColCourseSite),
		"category":  r.Field(domain.ColCourseCategory),
		"rating":    r.Field(domain.ColCourseRating),
		"viewers":   r.Field(domain.ColCourseViewers),
		"subtitles": r.Field(domain.ColCourseSubtitles),
		"url":       r.Field(domain.ColCourseURL),
	}
}
