package vector

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/localrivet/cmdembed/internal/logger"
)

// testVec builds a Dimension-width vector whose components are derived
// from the seed, so different words get distinguishable vectors.
func testVec(seed float32) []float32 {
	vec := make([]float32, Dimension)
	for i := range vec {
		vec[i] = seed + float32(i)*0.01
	}
	return vec
}

func TestStoreRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{
			name:  "empty store",
			words: nil,
		},
		{
			name:  "single word",
			words: []string{"tar"},
		},
		{
			name:  "multiple words keep order",
			words: []string{"the", "of", "git", "compress", "zz"},
		},
		{
			name:  "multibyte utf-8 words",
			words: []string{"naïve", "日本語", "grep"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := NewStore()
			for i, w := range test.words {
				store.Put(w, testVec(float32(i)))
			}

			var buf bytes.Buffer
			if err := WriteStore(&buf, store); err != nil {
				t.Fatalf("WriteStore() error: %v", err)
			}

			got, err := ReadStore(&buf)
			if err != nil {
				t.Fatalf("ReadStore() error: %v", err)
			}

			if !reflect.DeepEqual(got.Words(), store.Words()) {
				t.Errorf("Expected words %v, got %v", store.Words(), got.Words())
			}
			for _, w := range test.words {
				want, _ := store.Lookup(w)
				gotVec, ok := got.Lookup(w)
				if !ok {
					t.Errorf("Word %q missing after round trip", w)
					continue
				}
				if !reflect.DeepEqual(want, gotVec) {
					t.Errorf("Vector for %q changed after round trip", w)
				}
			}
		})
	}
}

func TestStoreRoundTripBytes(t *testing.T) {
	store := NewStore()
	store.Put("alpha", testVec(1))
	store.Put("beta", testVec(2))

	var first bytes.Buffer
	if err := WriteStore(&first, store); err != nil {
		t.Fatalf("WriteStore() error: %v", err)
	}

	reloaded, err := ReadStore(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ReadStore() error: %v", err)
	}

	var second bytes.Buffer
	if err := WriteStore(&second, reloaded); err != nil {
		t.Fatalf("WriteStore() of reloaded store error: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Serialized store is not byte-identical after a round trip")
	}
}

func TestReadStoreTruncated(t *testing.T) {
	store := NewStore()
	store.Put("alpha", testVec(1))
	store.Put("beta", testVec(2))

	var buf bytes.Buffer
	if err := WriteStore(&buf, store); err != nil {
		t.Fatalf("WriteStore() error: %v", err)
	}
	full := buf.Bytes()

	// Cut the stream at several points: mid-header, mid-word, mid-vector
	// and just before the final byte.
	cuts := []int{2, 5, 9, len(full) / 2, len(full) - 1}
	for _, cut := range cuts {
		_, err := ReadStore(bytes.NewReader(full[:cut]))
		if err == nil {
			t.Errorf("ReadStore() with %d of %d bytes should fail", cut, len(full))
			continue
		}
		if !logger.IsErrorType(err, logger.ErrorTypeFormat) {
			t.Errorf("Expected format error for cut at %d, got: %v", cut, err)
		}
	}
}

func TestReadStoreWordLengthBeyondStream(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, uint16(64))
	buf.WriteString("abc") // Declared 64 bytes, only 3 present

	_, err := ReadStore(&buf)
	if err == nil {
		t.Fatal("ReadStore() should fail when declared word length exceeds the stream")
	}
	if !logger.IsErrorType(err, logger.ErrorTypeFormat) {
		t.Errorf("Expected format error, got: %v", err)
	}
}

func TestReadStoreInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	buf.Write([]byte{0xff, 0xfe})
	binary.Write(&buf, binary.LittleEndian, testVec(0))

	_, err := ReadStore(&buf)
	if err == nil {
		t.Fatal("ReadStore() should fail on invalid UTF-8 word bytes")
	}
	if !logger.IsErrorType(err, logger.ErrorTypeEncoding) {
		t.Errorf("Expected encoding error, got: %v", err)
	}
}

func TestWriteStoreRejectsBadDimension(t *testing.T) {
	store := NewStore()
	store.Put("short", []float32{1, 2, 3})

	var buf bytes.Buffer
	err := WriteStore(&buf, store)
	if err == nil {
		t.Fatal("WriteStore() should reject a vector with the wrong dimension")
	}
	if !logger.IsErrorType(err, logger.ErrorTypeValidation) {
		t.Errorf("Expected validation error, got: %v", err)
	}
}

func TestReadStoreFileMissing(t *testing.T) {
	_, err := ReadStoreFile(t.TempDir() + "/does-not-exist.bin")
	if err == nil {
		t.Fatal("ReadStoreFile() should fail for a missing file")
	}
	if !logger.IsErrorType(err, logger.ErrorTypeInput) {
		t.Errorf("Expected input error, got: %v", err)
	}
}

func TestStoreFileRoundTrip(t *testing.T) {
	store := NewStore()
	store.Put("find", testVec(3))
	store.Put("grep", testVec(4))

	path := t.TempDir() + "/glove.bin"
	if err := WriteStoreFile(path, store); err != nil {
		t.Fatalf("WriteStoreFile() error: %v", err)
	}

	got, err := ReadStoreFile(path)
	if err != nil {
		t.Fatalf("ReadStoreFile() error: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("Expected 2 words, got %d", got.Len())
	}
	if !reflect.DeepEqual(got.Words(), store.Words()) {
		t.Errorf("Expected words %v, got %v", store.Words(), got.Words())
	}
}
