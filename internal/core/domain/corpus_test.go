package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorpusKind(t *testing.T) {
	tests := []struct {
		input    string
		expected CorpusKind
		wantErr  bool
	}{
		{"jobs", CorpusJobs, false},
		{"Job", CorpusJobs, false},
		{"courses", CorpusCourses, false},
		{" course ", CorpusCourses, false},
		{"books", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCorpusKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestCorpusKind_EntityType(t *testing.T) {
	assert.Equal(t, "job", CorpusJobs.EntityType())
	assert.Equal(t, "course", CorpusCourses.EntityType())
	assert.Equal(t, "Job postings", CorpusJobs.Description())
	assert.Len(t, AllCorpusKinds(), 2)
}

func TestRequiredColumns(t *testing.T) {
	assert.Contains(t, RequiredColumns(CorpusJobs), ColJobDescription)
	assert.NotContains(t, RequiredColumns(CorpusJobs), ColJobCity)
	assert.Contains(t, RequiredColumns(CorpusCourses), ColCourseViewers)
	assert.Nil(t, RequiredColumns(CorpusKind("x")))
}

func TestSourceRef(t *testing.T) {
	ref := SourceRef{Type: SourceFile, Location: "/tmp/jobs.csv"}

	assert.True(t, ref.IsConfigured())
	assert.Equal(t, "file:/tmp/jobs.csv", ref.Identity())
	assert.False(t, SourceRef{Type: SourceURL}.IsConfigured())
	assert.False(t, SourceRef{Type: "ftp", Location: "x"}.IsConfigured())
}

func TestRecord_Field(t *testing.T) {
	r := Record{Fields: map[string]string{ColJobCity: "Jakarta", ColJobMinSalary: ""}}

	assert.Equal(t, "Jakarta", r.Field(ColJobCity))
	assert.Equal(t, UnknownValue, r.Field(ColJobMinSalary))
	assert.Equal(t, UnknownValue, r.Field("missing"))
	assert.Equal(t, "", r.RawField(ColJobMinSalary))
}

func TestCorpus_TextsAndSnapshot(t *testing.T) {
	loaded := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := &Corpus{
		Kind:       CorpusCourses,
		Source:     SourceRef{Type: SourceURL, Location: "https://example.com/c.csv"},
		Hash:       "abc",
		Records:    []Record{{Combined: "go basics"}, {Combined: ""}},
		Skipped:    1,
		Duplicates: 2,
		LoadedAt:   loaded,
	}

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"go basics", ""}, c.Texts())

	snap := c.Snapshot(42)
	assert.Equal(t, CorpusCourses, snap.Kind)
	assert.Equal(t, "url:https://example.com/c.csv", snap.Source)
	assert.Equal(t, 2, snap.Rows)
	assert.Equal(t, 42, snap.Vocabulary)
	assert.Equal(t, 2, snap.Duplicates)
	assert.Equal(t, loaded, snap.LoadedAt)
}

func TestRankedResult_RankScore(t *testing.T) {
	plain := RankedResult{Similarity: 0.4, Final: 0.9}
	blended := RankedResult{Similarity: 0.4, Final: 0.9, Blended: true}

	assert.Equal(t, 0.4, plain.RankScore())
	assert.Equal(t, 0.9, blended.RankScore())

	var rec *Recommendation
	assert.True(t, rec.IsEmpty())
	assert.False(t, (&Recommendation{Results: []RankedResult{plain}}).IsEmpty())
}
