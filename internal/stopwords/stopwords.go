package stopwords

import (
	"bufio"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed lists/*.txt
var listFS embed.FS

// Set is an immutable collection of stopwords.
type Set struct {
	words map[string]struct{}
	hash  string
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the embedded combined stopword set.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = loadEmbedded()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("stopwords: embedded lists unreadable: %v", defaultErr))
	}
	return defaultSet
}

// Languages lists the embedded list names in sorted order.
func Languages() []string {
	entries, err := listFS.ReadDir("lists")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}

// New builds a set from the given words.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	s.seal()
	return s
}

// WithFile returns a copy of s extended with the words in path. Words are
// separated by whitespace; lines starting with '#' are ignored.
func (s *Set) WithFile(filePath string) (*Set, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open stopwords file: %w", err)
	}
	defer f.Close()
	return s.WithReader(f)
}

// WithReader returns a copy of s extended with the words read from r.
func (s *Set) WithReader(r io.Reader) (*Set, error) {
	out := &Set{words: make(map[string]struct{}, s.Len())}
	if s != nil {
		for w := range s.words {
			out.words[w] = struct{}{}
		}
	}
	if err := out.readWords(r); err != nil {
		return nil, err
	}
	out.seal()
	return out, nil
}

// Contains reports whether word is a stopword. Matching is case-insensitive.
func (s *Set) Contains(word string) bool {
	if s == nil || word == "" {
		return false
	}
	if _, ok := s.words[word]; ok {
		return true
	}
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Hash is a stable digest of the set contents.
func (s *Set) Hash() string {
	if s == nil {
		return ""
	}
	return s.hash
}

func loadEmbedded() (*Set, error) {
	entries, err := listFS.ReadDir("lists")
	if err != nil {
		return nil, err
	}
	s := &Set{words: make(map[string]struct{}, 8192)}
	for _, entry := range entries {
		f, err := listFS.Open(path.Join("lists", entry.Name()))
		if err != nil {
			return nil, err
		}
		err = s.readWords(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	s.seal()
	return s, nil
}

func (s *Set) readWords(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			s.add(w)
		}
	}
	return scanner.Err()
}

func (s *Set) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	s.words[word] = struct{}{}
}

func (s *Set) seal() {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	hasher := sha256.New()
	for _, w := range words {
		_, _ = io.WriteString(hasher, w)
		_, _ = io.WriteString(hasher, "\n")
	}
	s.hash = hex.EncodeToString(hasher.Sum(nil))
}
