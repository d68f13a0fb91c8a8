package textnorm

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"catalogprep/internal/stopwords"
)

// Step names accepted in configuration.
const (
	StepCollapseWhitespace = "collapse_whitespace"
	StepLowercase          = "lowercase"
	StepStripMarkup        = "strip_markup"
	StepStripDigits        = "strip_digits"
	StepTransliterate      = "transliterate"
	StepStripNonLetters    = "strip_non_letters"
	StepDropStopwords      = "drop_stopwords"
	StepDropShortTokens    = "drop_short_tokens"
	StepStem               = "stem"
	StepTranslate          = "translate"
)

// order is the fixed execution order of every known step.
var order = []string{
	StepCollapseWhitespace,
	StepLowercase,
	StepStripMarkup,
	StepStripDigits,
	StepTransliterate,
	StepStripNonLetters,
	StepDropStopwords,
	StepDropShortTokens,
	StepStem,
	StepTranslate,
}

// KnownSteps returns every step name in execution order.
func KnownSteps() []string {
	return append([]string(nil), order...)
}

// Step is one named text transformation.
type Step struct {
	Name  string
	Apply func(string) string
}

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]{2,}`)

func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// casers are stateful, so each call borrows one.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

func lowercase(s string) string {
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	c.Reset()
	lowerPool.Put(c)
	return out
}

func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

var digitRemover = runes.Remove(runes.In(unicode.Nd))

func stripDigits(s string) string {
	out, _, err := transform.String(digitRemover, s)
	if err != nil {
		return s
	}
	return out
}

func transliterate(s string) string {
	return unidecode.Unidecode(norm.NFC.String(s))
}

func stripNonLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func dropStopwords(set *stopwords.Set) func(string) string {
	return func(s string) string {
		return filterTokens(s, func(tok string) bool { return !set.Contains(tok) })
	}
}

func dropShortTokens(minLength int) func(string) string {
	return func(s string) string {
		return filterTokens(s, func(tok string) bool { return len(tok) >= minLength })
	}
}

func stem(lang string) func(string) string {
	return func(s string) string {
		fields := strings.Fields(s)
		for i, tok := range fields {
			if stemmed, err := snowball.Stem(tok, lang, true); err == nil && stemmed != "" {
				fields[i] = stemmed
			}
		}
		return strings.Join(fields, " ")
	}
}

func filterTokens(s string, keep func(string) bool) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, tok := range fields {
		if keep(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
