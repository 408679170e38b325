package offerdoc

import (
	"regexp"
	"strconv"
)

// Suggestion is a predefined rewrite rule applied across templates.
type Suggestion struct {
	ID          string `json:"id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`

	// IsRegex marks From as a regular expression. Otherwise From is matched
	// literally and case-insensitively.
	IsRegex bool `json:"isRegex,omitempty"`
}

// DefaultSuggestions returns the built-in rules that turn hard-coded offer
// references into the [REFERENCE] variable.
func DefaultSuggestions() []Suggestion {
	refs := []string{
		"24-6000-34-G3",
		"24-6000-34-G2AVP",
		"24-6666-34-G2AVP-G2PRO",
		"24-6000-34-G1PGC",
	}
	suggestions := make([]Suggestion, 0, len(refs))
	for i, ref := range refs {
		suggestions = append(suggestions, Suggestion{
			ID:          "reference-" + strconv.Itoa(i+1),
			From:        ref,
			To:          "[REFERENCE]",
			Description: "Remplacer la référence par une variable",
			Category:    "Références",
		})
	}
	return suggestions
}

// pattern compiles the suggestion's matcher.
func (s Suggestion) pattern() (*regexp.Regexp, error) {
	if s.From == "" {
		return nil, Errorf(EINVALID, "Suggestion %q has an empty pattern.", s.ID)
	}
	if !s.IsRegex {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(s.From)), nil
	}
	re, err := regexp.Compile(s.From)
	if err != nil {
		return nil, Errorf(EINVALID, "Suggestion %q has an invalid pattern: %s", s.ID, err)
	}
	return re, nil
}

// CountSuggestion returns how many times s matches content.
func CountSuggestion(content string, s Suggestion) (int, error) {
	re, err := s.pattern()
	if err != nil {
		return 0, err
	}
	return len(re.FindAllStringIndex(content, -1)), nil
}

// ApplySuggestions applies every suggestion to content in order and returns
// the rewritten content with the number of replacements per suggestion ID.
// Regex rules expand $1-style references in To; literal rules insert To as is.
func ApplySuggestions(content string, suggestions []Suggestion) (string, map[string]int, error) {
	counts := make(map[string]int, len(suggestions))
	for _, s := range suggestions {
		re, err := s.pattern()
		if err != nil {
			return "", nil, err
		}
		n := len(re.FindAllStringIndex(content, -1))
		if n == 0 {
			continue
		}
		counts[s.ID] += n
		if s.IsRegex {
			content = re.ReplaceAllString(content, s.To)
		} else {
			content = re.ReplaceAllLiteralString(content, s.To)
		}
	}
	return content, counts, nil
}
