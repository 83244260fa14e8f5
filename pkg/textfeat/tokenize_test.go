package textfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLowercasesAndDropsPunctuation(t *testing.T) {
	spec := Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: true}
	got := Tokenize("Great, GREAT film!", spec)
	assert.Equal(t, []string{"great", "great", "film"}, got)
}

func TestTokenizeStripsHTMLBreaks(t *testing.T) {
	spec := Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: true}
	got := Tokenize("slow<br /><br />boring", spec)
	assert.Equal(t, []string{"slow", "boring"}, got)
}

func TestTokenizeStopwordRemoval(t *testing.T) {
	spec := Spec{Language: "english", NGramLength: 1, Lowercase: true,
		RemoveStopwords: true, KeepNumbers: true}
	got := Tokenize("this is the best movie", spec)
	assert.Equal(t, []string{"best", "movie"}, got)
}

func TestTokenizeNumberHandling(t *testing.T) {
	keep := Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: true}
	drop := Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: false}

	assert.Equal(t, []string{"rated", "10", "of", "10"}, Tokenize("rated 10 of 10", keep))
	assert.Equal(t, []string{"rated", "of"}, Tokenize("rated 10 of 10", drop))
}

func TestTokenizeKeepPunctuation(t *testing.T) {
	spec := Spec{Language: "english", NGramLength: 1, Lowercase: true,
		KeepPunctuation: true, KeepNumbers: true}
	got := Tokenize("what?!", spec)
	assert.Equal(t, []string{"what", "?!"}, got)
}

func TestTokenizeKeepsApostrophes(t *testing.T) {
	spec := Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: true}
	got := Tokenize("don't bother", spec)
	assert.Equal(t, []string{"don't", "bother"}, got)
}

func TestNGrams(t *testing.T) {
	toks := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b", "c"}, NGrams(toks, 1))
	assert.Equal(t, []string{"a", "b", "c", "a b", "b c"}, NGrams(toks, 2))
	assert.Equal(t, []string{"a", "b", "c", "a b", "b c", "a b c"}, NGrams(toks, 3))
}
