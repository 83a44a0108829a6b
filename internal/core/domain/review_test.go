package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     ReviewStatus
		to       ReviewStatus
		expected bool
	}{
		{"pending to accept", StatusPending, StatusAccepted, true},
		{"pending to reject", StatusPending, StatusRejected, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"accepted is terminal", StatusAccepted, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusAccepted, false},
		{"accepted to pending", StatusAccepted, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseReviewStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected ReviewStatus
		wantErr  bool
	}{
		{"Accept", StatusAccepted, false},
		{"accepted", StatusAccepted, false},
		{" REJECT ", StatusRejected, false},
		{"rejected", StatusRejected, false},
		{"", StatusPending, false},
		{"pending", StatusPending, false},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReviewStatus(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReviewStatus_Description(t *testing.T) {
	assert.Equal(t, "Pending", StatusPending.Description())
	assert.Equal(t, "Accepted", StatusAccepted.Description())
	assert.Equal(t, "Rejected", StatusRejected.Description())
	assert.Equal(t, UnknownValue, ReviewStatus("x").Description())
	assert.False(t, ReviewStatus("x").IsValid())
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index    int
		expected string
		wantErr  bool
	}{
		{0, "A", false},
		{3, "D", false},
		{25, "Z", false},
		{26, "", true},
		{-1, "", true},
	}

	for _, tt := range tests {
		got, err := ColumnLetter(tt.index)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrColumnOutOfRange), "index %d", tt.index)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestLayoutFor(t *testing.T) {
	courses := LayoutFor(CorpusCourses)
	assert.Equal(t, "D:Q", courses.SourceColumns)
	assert.Equal(t, 14, courses.Width)
	assert.True(t, courses.LeadingBlank)
	assert.Equal(t, "Online_Courses", courses.DestinationSheet)
	assert.Equal(t, "A:O", courses.DestinationColumns)

	jobs := LayoutFor(CorpusJobs)
	assert.Equal(t, "D:T", jobs.SourceColumns)
	assert.Equal(t, 17, jobs.Width)
	assert.False(t, jobs.LeadingBlank)
	assert.Equal(t, "Sheet1", jobs.DestinationSheet)
	assert.Equal(t, "A:Q", jobs.DestinationColumns)
}

func TestAppendLayout_Shape(t *testing.T) {
	t.Run("course rows gain a leading blank and are padded", func(t *testing.T) {
		row := LayoutFor(CorpusCourses).Shape([]string{"Go 101", "Intro"})

		require.Len(t, row, 15)
		assert.Equal(t, "", row[0])
		assert.Equal(t, "Go 101", row[1])
		assert.Equal(t, "Intro", row[2])
		assert.Equal(t, "", row[14])
	})

	t.Run("job rows are truncated to width", func(t *testing.T) {
		values := make([]string, 20)
		for i := range values {
			values[i] = string(rune('a' + i))
		}

		row := LayoutFor(CorpusJobs).Shape(values)

		require.Len(t, row, 17)
		assert.Equal(t, "a", row[0])
		assert.Equal(t, "q", row[16])
	})
}

func TestReviewRow_Contact(t *testing.T) {
	row := ReviewRow{Cells: map[string]string{
		HeaderGmail:    " ana@gmail.com ",
		HeaderFullName: "Ana",
		HeaderTitle:    "Data Analyst",
	}}

	c := row.Contact()

	assert.Equal(t, "ana@gmail.com", c.Email)
	assert.True(t, c.IsComplete())

	row.Cells[HeaderTitle] = "  "
	assert.False(t, row.Contact().IsComplete())
}

func TestReviewPeriod(t *testing.T) {
	p := ReviewPeriod{Year: 2024, Month: time.March}

	assert.True(t, p.Contains(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "March 2024", p.String())
}

func TestReviewSheet_AcceptedAndFind(t *testing.T) {
	sheet := &ReviewSheet{Rows: []ReviewRow{
		{Number: 2, Status: StatusAccepted},
		{Number: 3, Status: StatusPending},
		{Number: 5, Status: StatusRejected},
		{Number: 6, Status: StatusAccepted},
	}}

	accepted := sheet.Accepted()
	require.Len(t, accepted, 2)
	assert.Equal(t, 2, accepted[0].Number)
	assert.Equal(t, 6, accepted[1].Number)

	row, ok := sheet.Find(5)
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, row.Status)

	_, ok = sheet.Find(4)
	assert.False(t, ok)
}

func TestSortDecisions(t *testing.T) {
	decisions := []Decision{{Row: 9}, {Row: 2, Status: StatusAccepted}, {Row: 2, Status: StatusRejected}, {Row: 4}}

	SortDecisions(decisions)

	assert.Equal(t, []int{2, 2, 4, 9}, []int{decisions[0].Row, decisions[1].Row, decisions[2].Row, decisions[3].Row})
	assert.Equal(t, StatusAccepted, decisions[0].Status, "sort is stable")
}

func TestReviewOutcome_Errors(t *testing.T) {
	var o ReviewOutcome
	assert.False(t, o.Failed())

	o.AddWarning("missing %s", HeaderGmail)
	assert.False(t, o.Failed())
	assert.Equal(t, []string{"missing Gmail"}, o.Warnings)

	o.AddError("append row %d: %v", 4, errors.New("quota"))
	assert.True(t, o.Failed())
	assert.Equal(t, "append row 4: quota", o.Errors[0])
}

func TestParseSubmissionTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"3/14/2024 9:05:30", time.Date(2024, 3, 14, 9, 5, 30, 0, time.UTC), true},
		{"12/01/2023 17:00:00", time.Date(2023, 12, 1, 17, 0, 0, 0, time.UTC), true},
		{"2024-02-29 08:00:00", time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), true},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"  ", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSubmissionTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
