package textfeat

import (
	"errors"
	"math"
	"sort"

	"github.com/dominguezus/imdbsentiment/pkg/exec"
)

// Vectorizer fits a vocabulary on the training texts and transforms any
// text slice into dense n-gram count rows. Fit on train, transform both
// splits, so train and test land in the same feature space.
type Vectorizer struct {
	Spec    Spec
	Backend exec.Backend

	vocab  map[string]int
	names  []string
	fitted bool
}

// NewVectorizer returns an unfitted vectorizer for the given spec.
func NewVectorizer(spec Spec) *Vectorizer {
	return &Vectorizer{Spec: spec, Backend: exec.NewPool(0)}
}

// Fit builds the vocabulary from the corpus. When MaxFeatures is set, the
// most frequent terms win; ties break on the term itself so the vocabulary
// is deterministic for a fixed corpus.
func (v *Vectorizer) Fit(texts []string) error {
	if err := v.Spec.validate(); err != nil {
		return err
	}
	if len(texts) == 0 {
		return errors.New("textfeat: fit on empty corpus")
	}

	counts := map[string]int{}
	for _, text := range texts {
		for _, g := range NGrams(Tokenize(text, v.Spec), v.Spec.NGramLength) {
			counts[g]++
		}
	}
	if len(counts) == 0 {
		return errors.New("textfeat: corpus produced no terms")
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.Spec.MaxFeatures > 0 && len(terms) > v.Spec.MaxFeatures {
		terms = terms[:v.Spec.MaxFeatures]
	}

	v.names = terms
	v.vocab = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
	}
	v.fitted = true
	return nil
}

// Transform maps each text to a row of term counts over the fitted
// vocabulary. Out-of-vocabulary terms are dropped. Rows are computed in
// parallel through the configured backend.
func (v *Vectorizer) Transform(texts []string) ([][]float64, error) {
	if !v.fitted {
		return nil, errors.New("textfeat: transform before fit")
	}
	backend := v.Backend
	if backend == nil {
		backend = exec.Local{}
	}

	out := make([][]float64, len(texts))
	backend.ForEach(len(texts), func(i int) {
		row := make([]float64, len(v.names))
		for _, g := range NGrams(Tokenize(texts[i], v.Spec), v.Spec.NGramLength) {
			if j, ok := v.vocab[g]; ok {
				row[j]++
			}
		}
		if v.Spec.SublinearTF {
			for j, c := range row {
				if c > 0 {
					row[j] = math.Log1p(c)
				}
			}
		}
		out[i] = row
	})
	return out, nil
}

// FitTransform fits on texts and transforms them in one call.
func (v *Vectorizer) FitTransform(texts []string) ([][]float64, error) {
	if err := v.Fit(texts); err != nil {
		return nil, err
	}
	return v.Transform(texts)
}

// FeatureNames returns the vocabulary terms in column order.
func (v *Vectorizer) FeatureNames() []string { return v.names }

// NumFeatures returns the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int { return len(v.names) }
