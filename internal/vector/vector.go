// Package vector provides the word-vector store, its binary codec, the
// corpus reducer, and the tokenizer used to build embedding assets for
// the cmdembed pipeline.
package vector

// Dimension is the fixed width of every word vector and every command
// embedding produced by this module. The store file format does not
// record it, so readers and writers must agree on this constant.
const Dimension = 100

// Store maps words to fixed-width vectors while preserving the order in
// which words were first inserted. Serialization walks words in that
// order, so a store round-trips byte-for-byte.
type Store struct {
	words []string
	index map[string][]float32
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		index: make(map[string][]float32),
	}
}

// Put inserts or replaces the vector for a word. A repeated word keeps
// its original position and takes the new vector (last-duplicate-wins).
func (s *Store) Put(word string, vec []float32) {
	if _, exists := s.index[word]; !exists {
		s.words = append(s.words, word)
	}
	s.index[word] = vec
}

// Lookup returns the vector for a word, if present. Lookup is by exact
// match; callers are expected to pass already-normalized tokens.
func (s *Store) Lookup(word string) ([]float32, bool) {
	vec, ok := s.index[word]
	return vec, ok
}

// Words returns the store's words in first-insertion order. The
// returned slice is shared with the store and must not be modified.
func (s *Store) Words() []string {
	return s.words
}

// Len returns the vocabulary size.
func (s *Store) Len() int {
	return len(s.words)
}
