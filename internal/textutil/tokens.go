package textutil

import "regexp"

// wordPattern matches maximal runs of word characters. Letters and digits
// from any script count, as do combining marks and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// WordTokens returns the word-character runs of text in order of appearance.
func WordTokens(text string) []string {
	if text == "" {
		return nil
	}
	return wordPattern.FindAllString(text, -1)
}
