// Package jobs normalises the job postings dataset.
package jobs

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/normalisers/table"
	"github.com/custodia-labs/tristep/internal/normalisers/text"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser cleans job posting rows.
type Normaliser struct{}

// New creates a new job normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Kind returns the corpus kind this normaliser handles.
func (n *Normaliser) Kind() domain.CorpusKind {
	return domain.CorpusJobs
}

// Normalise parses the CSV, drops rows repeating an earlier description,
// builds the searchable text and strips emphasis asterisks from titles.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDataset) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	t, err := table.Parse(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}
	if err := t.Require(domain.RequiredColumns(domain.CorpusJobs)...); err != nil {
		return nil, err
	}

	result := &driven.NormaliseResult{Skipped: t.Skipped}
	seen := make(map[string]bool, t.Len())

	for _, row := range t.Rows {
		desc := t.Get(row, domain.ColJobDescription)
		if seen[desc] {
			result.Duplicates++
			continue
		}
		seen[desc] = true

		rawTitle := t.Get(row, domain.ColJobTitle)
		title := text.RemoveAsterisks(rawTitle)

		fields := t.Fields(row)
		fields[domain.ColJobTitle] = title

		rec := domain.Record{
			Index:    len(result.Records),
			Title:    title,
			Fields:   fields,
			Combined: text.Clean(text.Join(rawTitle, desc, t.Get(row, domain.ColJobSkills))),
		}
		if rec.Title == "" {
			rec.Title = domain.UnknownValue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}
