package textfeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominguezus/imdbsentiment/pkg/exec"
)

func unigramSpec() Spec {
	return Spec{Language: "english", NGramLength: 1, Lowercase: true, KeepNumbers: true}
}

func TestVectorizerFitTransform(t *testing.T) {
	v := NewVectorizer(unigramSpec())
	X, err := v.FitTransform([]string{"good good film", "bad film"})
	require.NoError(t, err)

	names := v.FeatureNames()
	require.Len(t, names, 3)

	// "film" and "good" both occur twice; the tie breaks on the term.
	assert.Equal(t, []string{"film", "good", "bad"}, names)
	assert.Equal(t, [][]float64{{1, 2, 0}, {1, 0, 1}}, X)
}

func TestVectorizerVocabularyCap(t *testing.T) {
	spec := unigramSpec()
	spec.MaxFeatures = 2
	v := NewVectorizer(spec)
	require.NoError(t, v.Fit([]string{"good good film film film", "bad"}))

	assert.Equal(t, []string{"film", "good"}, v.FeatureNames())
}

func TestVectorizerOutOfVocabularyDropped(t *testing.T) {
	v := NewVectorizer(unigramSpec())
	require.NoError(t, v.Fit([]string{"good film"}))

	X, err := v.Transform([]string{"stunning masterpiece"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}}, X)
}

func TestVectorizerDeterministicAcrossBackends(t *testing.T) {
	corpus := []string{"an excellent excellent film", "a terrible waste", "excellent"}

	serial := NewVectorizer(unigramSpec())
	serial.Backend = exec.Local{}
	wantX, err := serial.FitTransform(corpus)
	require.NoError(t, err)

	parallel := NewVectorizer(unigramSpec())
	parallel.Backend = exec.NewPool(4)
	gotX, err := parallel.FitTransform(corpus)
	require.NoError(t, err)

	assert.Equal(t, serial.FeatureNames(), parallel.FeatureNames())
	assert.Equal(t, wantX, gotX)
}

func TestVectorizerBigrams(t *testing.T) {
	spec := unigramSpec()
	spec.NGramLength = 2
	v := NewVectorizer(spec)
	require.NoError(t, v.Fit([]string{"not good"}))

	assert.ElementsMatch(t, []string{"not", "good", "not good"}, v.FeatureNames())
}

func TestVectorizerSublinearTF(t *testing.T) {
	spec := unigramSpec()
	spec.SublinearTF = true
	v := NewVectorizer(spec)
	X, err := v.FitTransform([]string{"good good good"})
	require.NoError(t, err)
	assert.InDelta(t, 1.3862, X[0][0], 1e-3) // log(1+3)
}

func TestVectorizerValidation(t *testing.T) {
	v := NewVectorizer(Spec{Language: "klingon", NGramLength: 1, RemoveStopwords: true})
	assert.Error(t, v.Fit([]string{"nuqneH"}))

	v = NewVectorizer(Spec{Language: "english", NGramLength: 0})
	assert.Error(t, v.Fit([]string{"hi"}))

	v = NewVectorizer(unigramSpec())
	_, err := v.Transform([]string{"hi"})
	assert.Error(t, err, "transform before fit must fail")
}
