package textnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kljensen/snowball"

	"catalogprep/internal/config"
	"catalogprep/internal/stopwords"
)

var (
	// ErrUnknownStep marks a step name that no pipeline knows.
	ErrUnknownStep = errors.New("unknown normalizer step")
	// ErrStepUnavailable marks a known step that cannot run in this build.
	ErrStepUnavailable = errors.New("normalizer step unavailable")
)

// Options configures a Pipeline.
type Options struct {
	Steps          []string
	MinTokenLength int
	StemLanguage   string
	Stopwords      *stopwords.Set
}

// Pipeline applies the enabled steps in their fixed order.
type Pipeline struct {
	steps   []Step
	opts    Options
	version string
}

// New validates opts and builds the pipeline.
func New(opts Options) (*Pipeline, error) {
	enabled := make(map[string]bool, len(opts.Steps))
	for _, name := range opts.Steps {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !isKnown(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStep, name)
		}
		enabled[name] = true
	}
	if len(enabled) == 0 {
		return nil, errors.New("normalizer: no steps enabled")
	}
	if enabled[StepTranslate] {
		return nil, fmt.Errorf("%w: %q has no translation backend", ErrStepUnavailable, StepTranslate)
	}
	if opts.MinTokenLength < 1 {
		opts.MinTokenLength = 1
	}
	if opts.Stopwords == nil {
		opts.Stopwords = stopwords.Default()
	}
	opts.StemLanguage = strings.ToLower(strings.TrimSpace(opts.StemLanguage))
	if enabled[StepStem] {
		if _, err := snowball.Stem("test", opts.StemLanguage, true); err != nil {
			return nil, fmt.Errorf("%w: stem language %q: %v", ErrStepUnavailable, opts.StemLanguage, err)
		}
	}

	p := &Pipeline{}
	names := make([]string, 0, len(enabled))
	for _, name := range order {
		if !enabled[name] {
			continue
		}
		names = append(names, name)
		p.steps = append(p.steps, Step{Name: name, Apply: p.stepFunc(name, opts)})
	}
	opts.Steps = names
	p.opts = opts
	p.version = fingerprint(opts)
	return p, nil
}

// FromConfig builds the pipeline described by the [normalizer] section,
// merging the optional extra stopwords file into the embedded set.
func FromConfig(cfg config.Normalizer) (*Pipeline, error) {
	set := stopwords.Default()
	if path := strings.TrimSpace(cfg.StopwordsFile); path != "" {
		extended, err := set.WithFile(path)
		if err != nil {
			return nil, err
		}
		set = extended
	}
	return New(Options{
		Steps:          cfg.Steps,
		MinTokenLength: cfg.MinTokenLength,
		StemLanguage:   cfg.StemLanguage,
		Stopwords:      set,
	})
}

// Normalize runs text through every enabled step.
func (p *Pipeline) Normalize(text string) string {
	if text == "" {
		return ""
	}
	for _, step := range p.steps {
		text = step.Apply(text)
		if text == "" {
			return ""
		}
	}
	return text
}

// Steps returns the enabled step names in execution order.
func (p *Pipeline) Steps() []string {
	return append([]string(nil), p.opts.Steps...)
}

// RuleSetVersion fingerprints everything that changes Normalize output.
func (p *Pipeline) RuleSetVersion() string {
	return p.version
}

func (p *Pipeline) stepFunc(name string, opts Options) func(string) string {
	switch name {
	case StepCollapseWhitespace:
		return collapseWhitespace
	case StepLowercase:
		return lowercase
	case StepStripMarkup:
		return stripMarkup
	case StepStripDigits:
		return stripDigits
	case StepTransliterate:
		return transliterate
	case StepStripNonLetters:
		return stripNonLetters
	case StepDropStopwords:
		return dropStopwords(opts.Stopwords)
	case StepDropShortTokens:
		return dropShortTokens(opts.MinTokenLength)
	case StepStem:
		return stem(opts.StemLanguage)
	default:
		return func(s string) string { return s }
	}
}

func isKnown(name string) bool {
	for _, known := range order {
		if known == name {
			return true
		}
	}
	return false
}

func fingerprint(opts Options) string {
	hasher := sha256.New()
	_, _ = io.WriteString(hasher, "steps="+strings.Join(opts.Steps, ",")+"\n")
	_, _ = io.WriteString(hasher, "min_token_length="+strconv.Itoa(opts.MinTokenLength)+"\n")
	_, _ = io.WriteString(hasher, "stopwords="+opts.Stopwords.Hash()+"\n")
	for _, name := range opts.Steps {
		if name == StepStem {
			_, _ = io.WriteString(hasher, "stem_language="+opts.StemLanguage+"\n")
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
