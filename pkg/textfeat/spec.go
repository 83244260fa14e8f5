// Package textfeat turns raw review text into numeric n-gram count
// features. A single immutable Spec describes the transform and is shared
// across every trainer so all models see the same feature space.
package textfeat

import "fmt"

// Spec is the declarative description of the text transform. Construct it
// once and pass it by value; nothing mutates it after construction.
// Validation happens downstream when a Vectorizer is fitted.
type Spec struct {
	// Language selects the stopword list. Only "english" ships one.
	Language string
	// NGramLength is the maximum n-gram order; 1 keeps unigrams only,
	// 2 adds bigrams, and so on.
	NGramLength int
	// RemoveStopwords drops stopwords before n-grams are formed.
	RemoveStopwords bool
	// KeepPunctuation retains punctuation runs as their own tokens.
	KeepPunctuation bool
	// KeepNumbers retains numeric tokens.
	KeepNumbers bool
	// Lowercase folds tokens to lower case.
	Lowercase bool
	// MaxFeatures caps the vocabulary to the most frequent terms.
	// 0 means no cap.
	MaxFeatures int
	// SublinearTF stores log(1+count) instead of the raw count.
	SublinearTF bool
}

// DefaultSpec mirrors the transform used throughout the comparison:
// lowercased unigrams and bigrams, stopwords and punctuation removed,
// numbers kept.
func DefaultSpec() Spec {
	return Spec{
		Language:        "english",
		NGramLength:     2,
		RemoveStopwords: true,
		KeepPunctuation: false,
		KeepNumbers:     true,
		Lowercase:       true,
		MaxFeatures:     20000,
		SublinearTF:     false,
	}
}

func (s Spec) validate() error {
	if s.NGramLength < 1 {
		return fmt.Errorf("textfeat: ngram length must be >= 1, got %d", s.NGramLength)
	}
	if s.MaxFeatures < 0 {
		return fmt.Errorf("textfeat: max features must be >= 0, got %d", s.MaxFeatures)
	}
	if s.RemoveStopwords {
		if _, ok := stopwordLists[s.Language]; !ok {
			return fmt.Errorf("textfeat: no stopword list for language %q", s.Language)
		}
	}
	return nil
}
