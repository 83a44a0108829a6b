package domain

import (
	"strings"
	"time"
)

// UnknownValue is displayed for empty cells and excluded from facet options.
const UnknownValue = "Unknown"

// CorpusKind identifies which dataset a request targets.
type CorpusKind string

// Available corpus kinds.
const (
	// CorpusJobs is the job postings dataset.
	CorpusJobs CorpusKind = "jobs"

	// CorpusCourses is the online courses dataset.
	CorpusCourses CorpusKind = "courses"
)

// AllCorpusKinds returns every corpus kind in display order.
func AllCorpusKinds() []CorpusKind {
	return []CorpusKind{CorpusJobs, CorpusCourses}
}

// IsValid returns true if the corpus kind is recognised.
func (k CorpusKind) IsValid() bool {
	switch k {
	case CorpusJobs, CorpusCourses:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k CorpusKind) String() string {
	return string(k)
}

// EntityType returns the singular noun used in notifications ("job" or "course").
func (k CorpusKind) EntityType() string {
	switch k {
	case CorpusJobs:
		return "job"
	case CorpusCourses:
		return "course"
	default:
		return "entry"
	}
}

// Description returns a human-readable description of the corpus.
func (k CorpusKind) Description() string {
	switch k {
	case CorpusJobs:
		return "Job postings"
	case CorpusCourses:
		return "Online courses"
	default:
		return UnknownValue
	}
}

// ParseCorpusKind accepts singular or plural forms ("job", "jobs").
func ParseCorpusKind(s string) (CorpusKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "job", "jobs":
		return CorpusJobs, nil
	case "course", "courses":
		return CorpusCourses, nil
	default:
		return "", ErrUnsupportedType
	}
}

// Job dataset columns.
const (
	ColJobTitle       = "title"
	ColJobDescription = "description_x"
	ColJobSkills      = "skills_desc"
	ColJobExperience  = "formatted_experience_level"
	ColJobWorkType    = "formatted_work_type"
	ColJobCompany     = "name"
	ColJobCountry     = "country"
	ColJobCity        = "city"
	ColJobPostingURL  = "job_posting_url"
	ColJobMinSalary   = "min_salary"
	ColJobMaxSalary   = "max_salary"
)

// Course dataset columns.
const (
	ColCourseTitle       = "Title"
	ColCourseIntro       = "Short Intro"
	ColCourseSkills      = "Skills"
	ColCourseCategory    = "Category"
	ColCourseSubCategory = "Sub-Category"
	ColCourseSite        = "Site"
	ColCourseRating      = "Rating"
	ColCourseViewers     = "Number of viewers"
	ColCourseSubtitles   = "Subtitle Languages"
	ColCourseLanguage    = "Language"
	ColCourseURL         = "URL"
)

// RequiredColumns returns the header names a dataset of the given kind must carry.
// Display-only columns (city, salary, URL) are optional.
func RequiredColumns(kind CorpusKind) []string {
	switch kind {
	case CorpusJobs:
		return []string{
			ColJobTitle, ColJobDescription, ColJobSkills,
			ColJobExperience, ColJobWorkType, ColJobCompany, ColJobCountry,
		}
	case CorpusCourses:
		return []string{
			ColCourseTitle, ColCourseIntro, ColCourseSkills, ColCourseCategory,
			ColCourseSubCategory, ColCourseSite, ColCourseRating, ColCourseViewers,
			ColCourseSubtitles,
		}
	default:
		return nil
	}
}

// SourceType identifies how corpus bytes are fetched.
type SourceType string

// Available source types.
const (
	// SourceURL is an HTTP(S) CSV export link.
	SourceURL SourceType = "url"

	// SourceDrive is a Google Drive file ID, exported as CSV when it is a sheet.
	SourceDrive SourceType = "drive"

	// SourceFile is a CSV file on the local filesystem.
	SourceFile SourceType = "file"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceURL, SourceDrive, SourceFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// SourceRef locates a corpus dataset.
type SourceRef struct {
	// Type selects the fetcher.
	Type SourceType

	// Location is a URL, Drive file ID, or filesystem path depending on Type.
	Location string
}

// IsConfigured returns true if the reference can be fetched.
func (r SourceRef) IsConfigured() bool {
	return r.Type.IsValid() && r.Location != ""
}

// Identity returns a stable key for the source, used for cache lookups.
func (r SourceRef) Identity() string {
	return string(r.Type) + ":" + r.Location
}

// Record is one cleaned corpus row.
type Record struct {
	// Index is the row position within the corpus, aligned with the similarity matrix.
	Index int

	// Title is the display title.
	Title string

	// Fields holds every cleaned column keyed by header name.
	Fields map[string]string

	// Combined is the normalised searchable text. Never nil; missing parts contribute "".
	Combined string

	// Rating is the numeric course rating (0 when absent or for jobs).
	Rating float64

	// Viewers is the numeric course viewer count (0 when absent or for jobs).
	Viewers int
}

// Field returns the named column, or UnknownValue when empty or absent.
func (r Record) Field(name string) string {
	if v := r.Fields[name]; v != "" {
		return v
	}
	return UnknownValue
}

// RawField returns the named column without the UnknownValue fallback.
func (r Record) RawField(name string) string {
	return r.Fields[name]
}

// Corpus is a loaded, cleaned dataset.
type Corpus struct {
	// Kind is the dataset type.
	Kind CorpusKind

	// Source is where the bytes came from.
	Source SourceRef

	// Hash is the hex SHA-256 of the raw source bytes.
	Hash string

	// Records are the cleaned rows in source order after deduplication.
	Records []Record

	// Skipped counts malformed rows dropped while parsing.
	Skipped int

	// Duplicates counts rows dropped by deduplication.
	Duplicates int

	// LoadedAt is when the corpus was built.
	LoadedAt time.Time
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.Records)
}

// Texts returns the combined text of every record in index order.
func (c *Corpus) Texts() []string {
	texts := make([]string, len(c.Records))
	for i := range c.Records {
		texts[i] = c.Records[i].Combined
	}
	return texts
}

// CorpusSnapshot summarises a successful load for persistence and status display.
type CorpusSnapshot struct {
	Kind       CorpusKind
	Source     string
	Hash       string
	Rows       int
	Skipped    int
	Duplicates int
	Vocabulary int
	LoadedAt   time.Time
}

// CorpusStatus reports the cache state of one corpus.
type CorpusStatus struct {
	// Kind is the dataset type.
	Kind CorpusKind

	// Source is the configured reference.
	Source SourceRef

	// Cached is true when a fitted index is held in memory.
	Cached bool

	// Watched is true when the source is watched for changes.
	Watched bool

	// Snapshot is the last persisted successful load, if any.
	Snapshot *CorpusSnapshot
}

// Snapshot returns the persisted summary of the corpus.
func (c *Corpus) Snapshot(vocabulary int) CorpusSnapshot {
	return CorpusSnapshot{
		Kind:       c.Kind,
		Source:     c.Source.Identity(),
		Hash:       c.Hash,
		Rows:       len(c.Records),
		Skipped:    c.Skipped,
		Duplicates: c.Duplicates,
		Vocabulary: vocabulary,
		LoadedAt:   c.LoadedAt,
	}
}
