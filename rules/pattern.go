package rules

import "strings"

// regexSpecialChars are the regex metacharacters escaped by
// patternToRegexText.  Note that '*', '^', and '|' are deliberately not in
// this set: they are adblock syntax and are translated afterwards.
const regexSpecialChars = `.+?{}()[]\`

// separatorClass is the regex translation of the adblock separator '^'.
const separatorClass = `[/?&=:]`

// patternToRegexText translates an adblock wildcard pattern to regular
// expression text.  The transformation steps are applied in a fixed
// order, and the order is load-bearing: escaping must happen before the
// wildcard and anchor substitutions, or the inserted regex text would be
// escaped too.
func patternToRegexText(pattern string) (re string) {
	re = escapeSpecialChars(pattern)
	re = replaceWildcards(re)
	re = replaceSeparators(re)
	re = replaceAnchors(re)

	return re
}

// escapeSpecialChars escapes regex metacharacters in the pattern.
func escapeSpecialChars(pattern string) (re string) {
	if !strings.ContainsAny(pattern, regexSpecialChars) {
		return pattern
	}

	sb := &strings.Builder{}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if strings.IndexByte(regexSpecialChars, c) != -1 {
			sb.WriteByte('\\')
		}

		sb.WriteByte(c)
	}

	return sb.String()
}

// replaceWildcards translates the adblock '*' wildcard.
func replaceWildcards(pattern string) (re string) {
	return strings.ReplaceAll(pattern, "*", ".*")
}

// replaceSeparators translates the adblock '^' separator into a character
// class.
func replaceSeparators(pattern string) (re string) {
	return strings.ReplaceAll(pattern, "^", separatorClass)
}

// replaceAnchors translates a leading '|' into a start anchor and a
// trailing '|' into an end anchor.
func replaceAnchors(pattern string) (re string) {
	if strings.HasPrefix(pattern, "|") {
		pattern = "^" + pattern[1:]
	}

	if strings.HasSuffix(pattern, "|") {
		pattern = pattern[:len(pattern)-1] + "$"
	}

	return pattern
}
