// Package vectorspace implements the TF-IDF embedding and cosine scoring
// used to rank corpus records against a free-text profile.
//
// A Space is built once per corpus load with Fit and is immutable
// afterwards, so it can be shared across goroutines without locking.
package vectorspace

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned by Fit when no document yields a term.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")

// Vector is a sparse weight vector with indices in ascending order.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no weight.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Values {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Space is a fitted vocabulary with smoothed IDF weights.
type Space struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Matrix holds one L2-normalised vector per fitted document, in input order.
type Matrix struct {
	rows []Vector
}

// Fit builds the vocabulary from texts and returns the document matrix.
// Vocabulary indices follow lexical term order so identical input always
// yields identical output.
func Fit(texts []string) (*Space, *Matrix, error) {
	docs := make([]map[string]int, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		counts := termCounts(Tokenize(text))
		docs[i] = counts
		for term := range counts {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	space := &Space{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
	}
	for i, term := range terms {
		space.vocabulary[term] = i
		space.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	matrix := &Matrix{rows: make([]Vector, len(docs))}
	for i, counts := range docs {
		matrix.rows[i] = space.weigh(counts)
	}

	return space, matrix, nil
}

// Transform embeds text in the space. Terms outside the vocabulary are ignored.
func (s *Space) Transform(text string) Vector {
	return s.weigh(termCounts(Tokenize(text)))
}

// Len returns the vocabulary size.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// Terms returns the vocabulary in index order.
func (s *Space) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// IDF returns the weight of term and whether it is in the vocabulary.
func (s *Space) IDF(term string) (float64, bool) {
	i, ok := s.vocabulary[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}

func (s *Space) weigh(counts map[string]int) Vector {
	var v Vector
	for term := range counts {
		i, ok := s.vocabulary[term]
		if !ok {
			continue
		}
		v.Indices = append(v.Indices, i)
	}
	sort.Ints(v.Indices)

	v.Values = make([]float64, len(v.Indices))
	for k, i := range v.Indices {
		v.Values[k] = float64(counts[s.terms[i]]) * s.idf[i]
	}

	if norm := v.Norm(); norm > 0 {
		for k := range v.Values {
			v.Values[k] /= norm
		}
	}
	return v
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// Row returns the vector of document i.
func (m *Matrix) Row(i int) Vector {
	return m.rows[i]
}

// Similarities returns the cosine similarity of q against every row.
func (m *Matrix) Similarities(q Vector) []float64 {
	sims := make([]float64, m.Len())
	if q.IsZero() {
		return sims
	}
	for i, row := range m.rows {
		sims[i] = Cosine(q, row)
	}
	return sims
}

// Cosine returns the cosine similarity of two sparse vectors.
// A zero vector has similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}

	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}

	sim := dot / (na * nb)
	if sim > 1 {
		sim = 1
	}
	return sim
}
