package util

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// CosineSimilarity calculates the cosine similarity between two float32 vectors.
func CosineSimilarity(vec1 []float32, vec2 []float32) (float64, error) {
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0, fmt.Errorf("input vectors cannot be empty")
	}
	if len(vec1) != len(vec2) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(vec1), len(vec2))
	}

	var dotProduct float64
	var mag1Squared float64
	var mag2Squared float64

	for i := 0; i < len(vec1); i++ {
		dotProduct += float64(vec1[i] * vec2[i])
		mag1Squared += float64(vec1[i] * vec1[i])
		mag2Squared += float64(vec2[i] * vec2[i])
	}

	mag1 := math.Sqrt(mag1Squared)
	mag2 := math.Sqrt(mag2Squared)

	if mag1 == 0 || mag2 == 0 {
		return 0, nil
	}

	return dotProduct / (mag1 * mag2), nil
}

// Terms splits text into lower-cased terms. Latin words stay whole; CJK
// characters count one term each since they are written without spaces.
func Terms(text string) []string {
	var terms []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			terms = append(terms, word.String())
			word.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			terms = append(terms, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return terms
}

// TextSimilarity is the cosine similarity of the term-frequency vectors of a
// and b. Texts without terms are never similar.
func TextSimilarity(a, b string) float64 {
	ta, tb := Terms(a), Terms(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	index := map[string]int{}
	for _, t := range append(append([]string{}, ta...), tb...) {
		if _, ok := index[t]; !ok {
			index[t] = len(index)
		}
	}
	va := make([]float32, len(index))
	vb := make([]float32, len(index))
	for _, t := range ta {
		va[index[t]]++
	}
	for _, t := range tb {
		vb[index[t]]++
	}

	sim, err := CosineSimilarity(va, vb)
	if err != nil {
		return 0
	}
	return sim
}
