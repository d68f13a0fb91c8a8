// Package textnorm turns raw catalog text into a normalized token stream.
//
// A Pipeline is an ordered list of named steps. The order is fixed; each step
// is enabled or disabled by name from configuration:
//
//	collapse_whitespace  runs of two or more whitespace characters become one space
//	lowercase            Unicode lowercase
//	strip_markup         HTML parsed, text content kept, entities decoded
//	strip_digits         decimal digits removed
//	transliterate        NFC then closest ASCII
//	strip_non_letters    everything outside a-z becomes a space, ASCII letters lowercased
//	drop_stopwords       stopword-set members removed
//	drop_short_tokens    tokens shorter than the minimum length removed
//	stem                 snowball stemming (off by default)
//	translate            no backend; enabling it is a configuration error
//
// With the default steps Normalize is idempotent and its output contains only
// a-z and single spaces. Stemming breaks idempotence, which is one reason it
// is off by default.
package textnorm
