// Package courses normalises the online courses dataset.
package courses

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/normalisers/table"
	"github.com/custodia-labs/tristep/internal/normalisers/text"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// categoryTranslations maps non-English category names to their English form.
var categoryTranslations = map[string]string{
	"计算机科学":                      "Computer Science",
	"Ciencia de Datos":           "Data Science",
	"Negocios":                   "Business",
	"Ciencias de la Computación": "Computer Science",
	"Negócios":                   "Business",
	"データサイエンス":                   "Data Science",
	"Tecnologia da informação":   "Information Technology",
}

// subtitleNoise marks scraped cells that are course blurbs, not language lists.
var subtitleNoise = []string{
	"Participant", "Designed", "Learners", "prior",
	"experience", "natural", "space", "aeronautics",
}

const subtitlePrefix = "Subtitles: "

var nonDigits = regexp.MustCompile(`\D+`)

// Normaliser cleans course rows.
type Normaliser struct{}

// New creates a new course normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the corpus kind this normaliser handles.
func (n *Normaliser) Kind() domain.CorpusKind {
	return domain.CorpusCourses
}

// Normalise parses the CSV and applies the course cleaning rules.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDataset) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	t, err := table.Parse(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("parse courses: %w", err)
	}
	if err := t.Require(domain.RequiredColumns(domain.CorpusCourses)...); err != nil {
		return nil, err
	}

	result := &driven.NormaliseResult{Skipped: t.Skipped}
	seen := make(map[[2]string]bool, t.Len())

	for _, row := range t.Rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}

		key := [2]string{t.Get(row, domain.ColCourseTitle), t.Get(row, domain.ColCourseIntro)}
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		result.Records = append(result.Records, buildRecord(t, row, len(result.Records)))
	}

	return result, nil
}

func buildRecord(t *table.Table, row []string, index int) domain.Record {
	fields := t.Fields(row)

	category := TranslateCategory(fields[domain.ColCourseCategory])
	fields[domain.ColCourseCategory] = category

	rating := strings.TrimSpace(strings.ReplaceAll(fields[domain.ColCourseRating], "stars", ""))
	fields[domain.ColCourseRating] = rating

	viewers := nonDigits.ReplaceAllString(fields[domain.ColCourseViewers], "")
	fields[domain.ColCourseViewers] = viewers

	fields[domain.ColCourseSubtitles] = CleanSubtitles(fields[domain.ColCourseSubtitles])

	title := fields[domain.ColCourseTitle]
	rec := domain.Record{
		Index:  index,
		Title:  title,
		Fields: fields,
		Combined: text.Clean(text.Join(
			title,
			fields[domain.ColCourseIntro],
			fields[domain.ColCourseSkills],
			category,
			fields[domain.ColCourseSubCategory],
		)),
		Rating:  parseFloat(rating),
		Viewers: parseInt(viewers),
	}
	if rec.Title == "" {
		rec.Title = domain.UnknownValue
	}
	return rec
}

// TranslateCategory returns the English name of a category.
func TranslateCategory(category string) string {
	if en, ok := categoryTranslations[category]; ok {
		return en
	}
	return category
}

// CleanSubtitles strips the "Subtitles: " label and blanks cells that
// contain scraped course text instead of a language list.
func CleanSubtitles(s string) string {
	s = strings.ReplaceAll(s, subtitlePrefix, "")
	for _, kw := range subtitleNoise {
		if strings.Contains(s, kw) {
			return ""
		}
	}
	return s
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
