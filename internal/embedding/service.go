// internal/embedding/service.go
// Deterministic text embedding

package embedding

import (
	"errors"
	"math"
)

// Dimensions is the fixed embedding vector length.
const Dimensions = 256

var ErrTextTooShort = errors.New("text must be at least 3 characters")

// EmbedText folds the text's code points into a fixed 256-dimension vector,
// normalized by the maximum component and rounded to six decimals. The same
// text always yields the same vector.
func EmbedText(text string) ([]float64, error) {
	runes := []rune(text)
	if len(runes) < 3 {
		return nil, ErrTextTooShort
	}

	vector := make([]float64, Dimensions)
	for idx := range vector {
		var value float64
		for i := idx; i < len(runes); i += Dimensions {
			value += float64(runes[i]) / 255
		}
		vector[idx] = value
	}

	max := 1.0
	for _, v := range vector {
		if v > max {
			max = v
		}
	}

	for i, v := range vector {
		vector[i] = math.Round(v/max*1e6) / 1e6
	}

	return vector, nil
}

// Cosine computes cosine similarity over the overlapping prefix of two
// vectors, tolerating unequal lengths. It returns 0 when either vector is
// empty or has a zero norm; absent embeddings simply contribute nothing.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
