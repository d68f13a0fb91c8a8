package language

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// ErrUndetectable marks text with no detectable language features.
var ErrUndetectable = errors.New("no language features in text")

// Detector returns a language code for text.
type Detector interface {
	Detect(text string) (string, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(string) (string, error)

// Detect calls f.
func (f DetectorFunc) Detect(text string) (string, error) { return f(text) }

type whatlangDetector struct{}

// NewWhatlangDetector returns a Detector backed by whatlanggo. Detection is
// deterministic: the same text always yields the same code.
func NewWhatlangDetector() Detector {
	return whatlangDetector{}
}

func (whatlangDetector) Detect(text string) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			code = ""
			err = fmt.Errorf("language detection panicked: %v", r)
		}
	}()
	if strings.TrimSpace(text) == "" {
		return "", ErrUndetectable
	}
	info := whatlanggo.Detect(text)
	if info.Script == nil || info.Lang < 0 {
		return "", ErrUndetectable
	}
	iso3 := info.Lang.Iso6393()
	if iso3 == "" {
		return "", ErrUndetectable
	}
	if iso2 := ToISO2(iso3); iso2 != "" {
		return iso2, nil
	}
	return iso3, nil
}
