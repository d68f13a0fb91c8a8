// Package stopwords provides the combined multi-language stopword set used by
// the text normalizer.
//
// The embedded lists are the Latin-script NLTK lists. Entries are matched
// literally after lowercasing, so accented entries such as "même" never
// match the transliterated token "meme".
package stopwords
