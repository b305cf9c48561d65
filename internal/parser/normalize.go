package parser

import "strings"

// Normalize lowercases text and folds the accented vowels used in Italian so
// keyword matching works with or without accents ("lunedì" and "lunedi" are
// the same token). The mapping is rune-for-rune, so a normalized string has
// the same rune offsets as its source.
func Normalize(text string) string {
	return strings.Map(foldRune, strings.ToLower(text))
}

func foldRune(r rune) rune {
	switch r {
	case 'à', 'á', 'â':
		return 'a'
	case 'è', 'é', 'ê':
		return 'e'
	case 'ì', 'í', 'î':
		return 'i'
	case 'ò', 'ó', 'ô':
		return 'o'
	case 'ù', 'ú', 'û':
		return 'u'
	}
	return r
}
