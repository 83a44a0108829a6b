package domain

import (
	"sort"
	"strings"
)

// FilterAll is the UI sentinel for "no constraint" on single-choice facets.
const FilterAll = "All"

// JobFilters narrows job results after similarity ranking.
// Empty fields impose no constraint.
type JobFilters struct {
	// ExperienceLevels keeps rows whose experience level is any of these.
	ExperienceLevels []string

	// WorkTypes keeps rows whose work type is any of these.
	WorkTypes []string

	// Company keeps rows whose company name equals this value.
	Company string

	// Country keeps rows whose country equals this value.
	Country string
}

// IsEmpty returns true if no filter is set.
func (f JobFilters) IsEmpty() bool {
	return len(f.ExperienceLevels) == 0 && len(f.WorkTypes) == 0 &&
		isUnset(f.Company) && isUnset(f.Country)
}

// Matches reports whether the record satisfies every set filter.
func (f JobFilters) Matches(r Record) bool {
	if len(f.ExperienceLevels) > 0 && !contains(f.ExperienceLevels, r.Field(ColJobExperience)) {
		return false
	}
	if len(f.WorkTypes) > 0 && !contains(f.WorkTypes, r.Field(ColJobWorkType)) {
		return false
	}
	if !isUnset(f.Company) && r.Field(ColJobCompany) != f.Company {
		return false
	}
	if !isUnset(f.Country) && r.Field(ColJobCountry) != f.Country {
		return false
	}
	return true
}

// CourseFilters narrows course results after similarity ranking.
// Empty fields impose no constraint.
type CourseFilters struct {
	// Sites keeps rows whose site is any of these.
	Sites []string

	// Categories keeps rows whose category is any of these.
	Categories []string

	// Subtitle keeps rows whose subtitle language list contains this substring.
	Subtitle string
}

// IsEmpty returns true if no filter is set.
func (f CourseFilters) IsEmpty() bool {
	return len(f.Sites) == 0 && len(f.Categories) == 0 && isUnset(f.Subtitle)
}

// Matches reports whether the record satisfies every set filter.
// Rows with no subtitle languages never match a subtitle filter.
func (f CourseFilters) Matches(r Record) bool {
	if len(f.Sites) > 0 && !contains(f.Sites, r.Field(ColCourseSite)) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, r.Field(ColCourseCategory)) {
		return false
	}
	if !isUnset(f.Subtitle) {
		subs := r.RawField(ColCourseSubtitles)
		if subs == "" || !strings.Contains(subs, f.Subtitle) {
			return false
		}
	}
	return true
}

// FacetOptions lists the selectable filter values of a corpus.
// Values equal to UnknownValue are never offered.
type FacetOptions struct {
	Kind CorpusKind `json:"kind"`

	// Jobs.
	ExperienceLevels []string `json:"experience_levels,omitempty"`
	WorkTypes        []string `json:"work_types,omitempty"`
	Companies        []string `json:"companies,omitempty"`
	Countries        []string `json:"countries,omitempty"`

	// Courses.
	Sites      []string `json:"sites,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Subtitles  []string `json:"subtitles,omitempty"`
}

// BuildFacetOptions derives filter choices from a corpus.
// Checkbox facets keep first-seen order; dropdown facets are sorted.
func BuildFacetOptions(c *Corpus) FacetOptions {
	opts := FacetOptions{Kind: c.Kind}

	switch c.Kind {
	case CorpusJobs:
		opts.ExperienceLevels = uniqueField(c.Records, ColJobExperience)
		opts.WorkTypes = uniqueField(c.Records, ColJobWorkType, "Other")
		opts.Companies = sorted(uniqueField(c.Records, ColJobCompany))
		opts.Countries = sorted(uniqueField(c.Records, ColJobCountry))
	case CorpusCourses:
		opts.Sites = uniqueField(c.Records, ColCourseSite)
		opts.Categories = uniqueField(c.Records, ColCourseCategory)
		opts.Subtitles = subtitleLanguages(c.Records)
	}

	return opts
}

func uniqueField(records []Record, column string, exclude ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		v := records[i].Field(column)
		if v == UnknownValue || seen[v] || contains(exclude, v) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func subtitleLanguages(records []Record) []string {
	seen := make(map[string]bool)
	for i := range records {
		raw := records[i].RawField(ColCourseSubtitles)
		if raw == "" {
			continue
		}
		for _, lang := range strings.Split(raw, ",") {
			lang = strings.TrimSpace(lang)
			if lang == "" || lang == UnknownValue {
				continue
			}
			seen[lang] = true
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func sorted(values []string) []string {
	sort.Strings(values)
	return values
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func isUnset(v string) bool {
	return v == "" || v == FilterAll
}
