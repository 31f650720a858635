package features

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

var ErrNotFitted = errors.New("vectorizer is not fitted")

// TfidfVectorizer turns free text into L2-normalised TF-IDF vectors over a
// vocabulary of word n-grams. Exported fields are what gets persisted.
type TfidfVectorizer struct {
	NgramMin    int
	NgramMax    int
	MaxFeatures int
	Vocabulary  map[string]int
	IDF         []float64
}

func NewTfidfVectorizer() *TfidfVectorizer {
	return &TfidfVectorizer{NgramMin: 1, NgramMax: 2, MaxFeatures: 1000}
}

func (v *TfidfVectorizer) NumFeatures() int { return len(v.IDF) }

// Fit builds the vocabulary from docs: the MaxFeatures most frequent n-grams
// (corpus-wide counts, ties broken alphabetically), indexed in alphabetical
// order, with smoothed IDF weights ln((1+n)/(1+df)) + 1.
func (v *TfidfVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("cannot fit vectorizer on an empty corpus")
	}
	termCount := map[string]int{}
	docFreq := map[string]int{}
	for _, d := range docs {
		seen := map[string]bool{}
		for _, g := range v.Analyze(d) {
			termCount[g]++
			if !seen[g] {
				seen[g] = true
				docFreq[g]++
			}
		}
	}
	if len(termCount) == 0 {
		return errors.New("empty vocabulary; documents contain no tokens")
	}

	terms := make([]string, 0, len(termCount))
	for t := range termCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return nil
}

// Transform vectorises docs against the fitted vocabulary. Out-of-vocabulary
// n-grams are ignored, so a document with none yields a zero vector.
func (v *TfidfVectorizer) Transform(docs []string) ([][]float64, error) {
	if len(v.Vocabulary) == 0 || len(v.IDF) != len(v.Vocabulary) {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(docs))
	for i, d := range docs {
		vec := make([]float64, len(v.IDF))
		for _, g := range v.Analyze(d) {
			if j, ok := v.Vocabulary[g]; ok {
				vec[j]++
			}
		}
		var norm float64
		for j := range vec {
			vec[j] *= v.IDF[j]
			norm += vec[j] * vec[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (v *TfidfVectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Analyze lowercases doc, splits it into tokens of two or more word
// characters and returns its n-grams from NgramMin to NgramMax.
func (v *TfidfVectorizer) Analyze(doc string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	lo, hi := v.NgramMin, v.NgramMax
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	grams := make([]string, 0, len(tokens)*(hi-lo+1))
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
