package language

import "strings"

// Sentinel labels produced by the classifier.
const (
	LabelUnsupported = "Langue non supportée"
	LabelError       = "Erreur_langue"
)

type entry struct {
	code2 string   // ISO 639-1 (2-letter)
	code3 string   // ISO 639-2/T primary (3-letter)
	alt3  []string // alternates: ISO 639-2/B and ISO 639-3 macrolanguage members
	label string   // French display label
	words []string // full word forms
}

var languages = []entry{
	{"af", "afr", nil, "Afrikaans", []string{"afrikaans"}},
	{"ar", "ara", []string{"arb"}, "Arabe", []string{"arabic", "arabe"}},
	{"bg", "bul", nil, "Bulgare", []string{"bulgarian", "bulgare"}},
	{"bn", "ben", nil, "Bengali", []string{"bengali"}},
	{"ca", "cat", nil, "Catalan", []string{"catalan"}},
	{"cs", "ces", []string{"cze"}, "Tchèque", []string{"czech", "tcheque"}},
	{"cy", "cym", []string{"wel"}, "Gallois", []string{"welsh", "gallois"}},
	{"da", "dan", nil, "Danois", []string{"danish", "danois"}},
	{"de", "deu", []string{"ger"}, "Allemand", []string{"german", "allemand"}},
	{"el", "ell", []string{"gre"}, "Grec", []string{"greek", "grec"}},
	{"en", "eng", nil, "Anglais", []string{"english", "anglais"}},
	{"eo", "epo", nil, "Espéranto", []string{"esperanto"}},
	{"es", "spa", nil, "Espagnol", []string{"spanish", "espagnol"}},
	{"et", "est", nil, "Estonien", []string{"estonian", "estonien"}},
	{"fa", "fas", []string{"per", "pes"}, "Persan", []string{"persian", "persan"}},
	{"fi", "fin", nil, "Finnois", []string{"finnish", "finnois"}},
	{"fr", "fra", []string{"fre"}, "Français", []string{"french", "francais"}},
	{"gu", "guj", nil, "Gujarati", []string{"gujarati"}},
	{"he", "heb", nil, "Hébreu", []string{"hebrew", "hebreu"}},
	{"hi", "hin", nil, "Hindi", []string{"hindi"}},
	{"hr", "hrv", nil, "Croate", []string{"croatian", "croate"}},
	{"hu", "hun", nil, "Hongrois", []string{"hungarian", "hongrois"}},
	{"id", "ind", nil, "Indonésien", []string{"indonesian", "indonesien"}},
	{"it", "ita", nil, "Italien", []string{"italian", "italien"}},
	{"ja", "jpn", nil, "Japonais", []string{"japanese", "japonais"}},
	{"kn", "kan", nil, "Kannada", []string{"kannada"}},
	{"ko", "kor", nil, "Coréen", []string{"korean", "coreen"}},
	{"la", "lat", nil, "Latin", []string{"latin"}},
	{"lt", "lit", nil, "Lituanien", []string{"lithuanian", "lituanien"}},
	{"lv", "lav", nil, "Letton", []string{"latvian", "letton"}},
	{"mk", "mkd", []string{"mac"}, "Macédonien", []string{"macedonian", "macedonien"}},
	{"ml", "mal", nil, "Malayalam", []string{"malayalam"}},
	{"mr", "mar", nil, "Marathi", []string{"marathi"}},
	{"ne", "nep", nil, "Népalais", []string{"nepali", "nepalais"}},
	{"nl", "nld", []string{"dut"}, "Néerlandais", []string{"dutch", "neerlandais"}},
	{"no", "nor", []string{"nob", "nno"}, "Norvégien", []string{"norwegian", "norvegien"}},
	{"pa", "pan", nil, "Pendjabi", []string{"punjabi", "pendjabi"}},
	{"pl", "pol", nil, "Polonais", []string{"polish", "polonais"}},
	{"pt", "por", nil, "Portugais", []string{"portuguese", "portugais"}},
	{"ro", "ron", []string{"rum"}, "Roumain", []string{"romanian", "roumain"}},
	{"ru", "rus", nil, "Russe", []string{"russian", "russe"}},
	{"sk", "slk", []string{"slo"}, "Slovaque", []string{"slovak", "slovaque"}},
	{"sl", "slv", nil, "Slovène", []string{"slovenian", "slovene"}},
	{"so", "som", nil, "Somali", []string{"somali"}},
	{"sq", "sqi", []string{"alb"}, "Albanais", []string{"albanian", "albanais"}},
	{"sv", "swe", nil, "Suédois", []string{"swedish", "suedois"}},
	{"sw", "swa", []string{"swh"}, "Swahili", []string{"swahili"}},
	{"ta", "tam", nil, "Tamoul", []string{"tamil", "tamoul"}},
	{"te", "tel", nil, "Télougou", []string{"telugu", "telougou"}},
	{"th", "tha", nil, "Thaï", []string{"thai"}},
	{"tl", "tgl", nil, "Tagalog", []string{"tagalog"}},
	{"tr", "tur", nil, "Turc", []string{"turkish", "turc"}},
	{"uk", "ukr", nil, "Ukrainien", []string{"ukrainian", "ukrainien"}},
	{"ur", "urd", nil, "Ourdou", []string{"urdu", "ourdou"}},
	{"vi", "vie", nil, "Vietnamien", []string{"vietnamese", "vietnamien"}},
	{"zh", "zho", []string{"chi", "cmn"}, "Chinois", []string{"chinese", "chinois"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		for _, alt := range e.alt3 {
			byCode3[alt] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	// Region subtags such as zh-cn or pt_BR resolve through the primary tag.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2 (3-letter).
// Returns "und" for unrecognized 2-letter codes, passes through 3-letter codes.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// Label returns the French display label for a detected code, or
// LabelUnsupported when the code is not in the table.
func Label(code string) string {
	if e := lookup(code); e != nil {
		return e.label
	}
	return LabelUnsupported
}

// Supported reports whether code maps to a display label.
func Supported(code string) bool {
	return lookup(code) != nil
}
