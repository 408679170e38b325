package offerdoc

import "regexp"

// SearchOptions controls how a literal search term is matched.
type SearchOptions struct {
	// MatchCase makes the match case-sensitive.
	MatchCase bool `json:"matchCase"`

	// WholeWord restricts matches to word boundaries.
	WholeWord bool `json:"wholeWord"`
}

// searchPattern compiles term as a literal pattern honoring opts.
// An empty term yields nil.
func searchPattern(term string, opts SearchOptions) *regexp.Regexp {
	if term == "" {
		return nil
	}
	pattern := regexp.QuoteMeta(term)
	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !opts.MatchCase {
		pattern = "(?i)" + pattern
	}
	return regexp.MustCompile(pattern)
}

// CountMatches returns the number of non-overlapping occurrences of term in content.
func CountMatches(content, term string, opts SearchOptions) int {
	re := searchPattern(term, opts)
	if re == nil {
		return 0
	}
	return len(re.FindAllStringIndex(content, -1))
}

// ReplaceAll replaces every occurrence of term in content with replacement.
// The replacement is inserted literally.
func ReplaceAll(content, term, replacement string, opts SearchOptions) string {
	re := searchPattern(term, opts)
	if re == nil {
		return content
	}
	return re.ReplaceAllLiteralString(content, replacement)
}

// Highlight wraps every occurrence of term in content with a <mark> element.
func Highlight(content, term string, opts SearchOptions) string {
	re := searchPattern(term, opts)
	if re == nil {
		return content
	}
	return re.ReplaceAllStringFunc(content, func(m string) string {
		return "<mark>" + m + "</mark>"
	})
}
