package vector

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Float32SliceToBytes converts a slice of float32 to a length-prefixed
// byte slice, the blob form used by the SQLite embedding index.
func Float32SliceToBytes(floats []float32) ([]byte, error) {
	buf := new(bytes.Buffer)

	// First write the length of the slice
	err := binary.Write(buf, binary.LittleEndian, int32(len(floats)))
	if err != nil {
		return nil, fmt.Errorf("failed to write vector length: %w", err)
	}

	// Then write the float32 values
	err = binary.Write(buf, binary.LittleEndian, floats)
	if err != nil {
		return nil, fmt.Errorf("failed to write vector values: %w", err)
	}

	return buf.Bytes(), nil
}

// BytesToFloat32Slice converts a length-prefixed byte slice back to a
// slice of float32.
func BytesToFloat32Slice(data []byte) ([]float32, error) {
	buf := bytes.NewReader(data)

	// First read the length of the slice
	var length int32
	err := binary.Read(buf, binary.LittleEndian, &length)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector length: %w", err)
	}

	// Then read the float32 values
	floats := make([]float32, length)
	err = binary.Read(buf, binary.LittleEndian, floats)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector values: %w", err)
	}

	return floats, nil
}

// Norm returns the Euclidean norm of a vector. A zero norm identifies
// the zero-match sentinel embedding.
func Norm(v []float32) float64 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	return math.Sqrt(sumSquares)
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// The result is a value between -1 and 1, where 1 means the vectors are
// identical, 0 means they are orthogonal, and -1 means they are opposite.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same dimension: %d != %d", len(a), len(b))
	}

	var dotProduct float64
	var normA float64
	var normB float64

	for i := 0; i < len(a); i++ {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	// Zero vectors carry no signal to compare against
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("one or both vectors have zero magnitude")
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
