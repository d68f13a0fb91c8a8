package textnorm

import (
	"errors"
	"strings"
	"testing"

	"catalogprep/internal/config"
	"catalogprep/internal/stopwords"
)

func defaultPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(Options{Steps: config.DefaultSteps, MinTokenLength: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNormalizeExamples(t *testing.T) {
	p := defaultPipeline(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"markup digits accents", "<p>Café 2024!!</p>", "cafe"},
		{"all numeric", "2024 12 31", ""},
		{"all punctuation", "!!! ... ???", ""},
		{"stopwords removed", "Le chat avec les enfants", "chat enfants"},
		{"short tokens removed", "lot de 3 jeux vidéo neufs", "jeux video neufs"},
		{"entities decoded", "Piscine&nbsp;gonflable &amp; bou&eacute;e", "piscine gonflable bouee"},
		{"markup attributes dropped", `<div class="x">Ballon <b>soccer</b></div>`, "ballon soccer"},
		{"whitespace runs", "Poupée \t\n  mannequin", "poupee mannequin"},
		{"non latin dropped or transliterated", "Ünïcödé Straße", "unicode strasse"},
		{"nordic and central european stopwords", "mint eller ikke inte olla sunt", ""},
		{"accented stopwords match literally", "Même étaient meme etaient", "meme etaient meme etaient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Normalize(tt.input); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeOutputProperties(t *testing.T) {
	p := defaultPipeline(t)
	set := stopwords.Default()
	inputs := []string{
		"<p>Lot de 2 Coussins décoratifs   45x45cm</p><br/>Très DOUX &amp; lavable",
		"Jeu PS4 - FIFA 19 (édition Champions) ***",
		"Harry Potter à l'école des sorciers, tome 1",
		"Piscine tubulaire 3,00 x 0,76 m avec pompe",
		"ＦＵＬＬＷＩＤＴＨ ｔｅｘｔ and ÆØÅ æøå",
		"The quick brown FOX jumps over the lazy dog",
		"Kinderwagen für Zwillinge, sehr stabil",
	}
	for _, input := range inputs {
		got := p.Normalize(input)
		if strings.Contains(got, "  ") || strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
			t.Errorf("Normalize(%q) = %q has irregular spacing", input, got)
		}
		for _, r := range got {
			if r != ' ' && (r < 'a' || r > 'z') {
				t.Errorf("Normalize(%q) = %q contains %q", input, got, r)
				break
			}
		}
		for _, tok := range strings.Fields(got) {
			if len(tok) < 4 {
				t.Errorf("Normalize(%q) kept short token %q", input, tok)
			}
			if set.Contains(tok) {
				t.Errorf("Normalize(%q) kept stopword %q", input, tok)
			}
		}
		if again := p.Normalize(got); again != got {
			t.Errorf("not idempotent: Normalize(%q) = %q, Normalize again = %q", input, got, again)
		}
	}
}

func TestStepOrderIsFixed(t *testing.T) {
	p, err := New(Options{Steps: []string{"drop_short_tokens", "Lowercase", " collapse_whitespace "}, MinTokenLength: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := strings.Join(p.Steps(), ",")
	if got != "collapse_whitespace,lowercase,drop_short_tokens" {
		t.Fatalf("unexpected step order: %s", got)
	}
	if out := p.Normalize("Le  GRAND chat"); out != "grand chat" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStepsToggle(t *testing.T) {
	p, err := New(Options{Steps: []string{"lowercase", "strip_digits"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.Normalize("Café 2024"); got != "café " {
		t.Fatalf("expected accents kept and digits dropped, got %q", got)
	}
}

func TestNewRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  error
	}{
		{"unknown", []string{"lowercase", "spellcheck"}, ErrUnknownStep},
		{"translate", []string{"lowercase", "translate"}, ErrStepUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{Steps: tt.steps})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error when no steps are enabled")
	}
	if _, err := New(Options{Steps: []string{"stem"}, StemLanguage: "klingon"}); !errors.Is(err, ErrStepUnavailable) {
		t.Fatalf("expected unsupported stem language error, got %v", err)
	}
}

func TestStemStep(t *testing.T) {
	steps := append(append([]string(nil), config.DefaultSteps...), StepStem)
	p, err := New(Options{Steps: steps, MinTokenLength: 4, StemLanguage: "french"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := p.Normalize("Chaussures continuelles")
	if got == "chaussures continuelles" || got == "" {
		t.Fatalf("expected stemmed output, got %q", got)
	}
}

func TestRuleSetVersion(t *testing.T) {
	base := defaultPipeline(t)
	same := defaultPipeline(t)
	if base.RuleSetVersion() != same.RuleSetVersion() {
		t.Fatal("identical pipelines must share a version")
	}

	longer, err := New(Options{Steps: config.DefaultSteps, MinTokenLength: 5})
	if err != nil {
		t.Fatal(err)
	}
	if longer.RuleSetVersion() == base.RuleSetVersion() {
		t.Fatal("min token length must change the version")
	}

	custom, err := New(Options{Steps: config.DefaultSteps, MinTokenLength: 4, Stopwords: stopwords.New("chat")})
	if err != nil {
		t.Fatal(err)
	}
	if custom.RuleSetVersion() == base.RuleSetVersion() {
		t.Fatal("stopword contents must change the version")
	}

	fewer, err := New(Options{Steps: config.DefaultSteps[:3], MinTokenLength: 4})
	if err != nil {
		t.Fatal(err)
	}
	if fewer.RuleSetVersion() == base.RuleSetVersion() {
		t.Fatal("enabled steps must change the version")
	}
}

func TestFromConfigMergesStopwordsFile(t *testing.T) {
	path := t.TempDir() + "/extra.txt"
	if err := writeFile(path, "gonflable\n"); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Normalizer.StopwordsFile = path
	p, err := FromConfig(cfg.Normalizer)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if got := p.Normalize("Piscine gonflable"); got != "piscine" {
		t.Fatalf("expected extra stopword dropped, got %q", got)
	}

	cfg.Normalizer.StopwordsFile = path + ".missing"
	if _, err := FromConfig(cfg.Normalizer); err == nil {
		t.Fatal("expected error for missing stopwords file")
	}
}
