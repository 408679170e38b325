package offerdoc

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	cssOpenBrace  = regexp.MustCompile(`\s*\{\s*`)
	cssSemicolon  = regexp.MustCompile(`\s*;\s*`)
	cssCloseBrace = regexp.MustCompile(`\s*\}\s*`)
	cssBlankInset = regexp.MustCompile(`\n {2}\n`)
	cssComment    = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	cssSpace      = regexp.MustCompile(`\s+`)
	cssColon      = regexp.MustCompile(`\s*:\s*`)
	cssBlock      = regexp.MustCompile(`\{([^{}]*)\}`)
	cssProperty   = regexp.MustCompile(`([a-zA-Z-]+)\s*:\s*([^;]+);`)
)

// FormatCSS puts each declaration of css on its own indented line.
func FormatCSS(css string) string {
	if css == "" {
		return ""
	}
	css = cssOpenBrace.ReplaceAllString(css, " {\n  ")
	css = cssSemicolon.ReplaceAllString(css, ";\n  ")
	css = cssCloseBrace.ReplaceAllString(css, "\n}\n\n")
	css = cssBlankInset.ReplaceAllString(css, "\n")
	return strings.TrimSpace(css)
}

// MinifyCSS strips comments and insignificant whitespace from css.
func MinifyCSS(css string) string {
	if css == "" {
		return ""
	}
	css = cssComment.ReplaceAllString(css, "")
	css = cssSpace.ReplaceAllString(css, " ")
	css = cssOpenBrace.ReplaceAllString(css, "{")
	css = cssCloseBrace.ReplaceAllString(css, "}")
	css = cssSemicolon.ReplaceAllString(css, ";")
	css = cssColon.ReplaceAllString(css, ":")
	return strings.TrimSpace(css)
}

// ValidateCSS performs a shallow syntax check of css and returns the
// problems found. An empty result means css looks well formed.
func ValidateCSS(css string) []string {
	var problems []string

	opening := strings.Count(css, "{")
	closing := strings.Count(css, "}")
	if opening != closing {
		problems = append(problems, fmt.Sprintf("Mismatched braces: %d opening vs %d closing", opening, closing))
	}

	for _, block := range cssBlock.FindAllStringSubmatch(css, -1) {
		for decl := range strings.SplitSeq(block[1], ";") {
			if strings.TrimSpace(decl) == "" {
				continue
			}
			if !strings.Contains(decl, ":") {
				problems = append(problems, fmt.Sprintf("Missing colon in declaration: %q", strings.TrimSpace(decl)))
			}
		}
	}
	return problems
}

// ExtractCSSProperties returns the property declarations found in css.
// Later declarations of a property override earlier ones.
func ExtractCSSProperties(css string) map[string]string {
	props := make(map[string]string)
	for _, m := range cssProperty.FindAllStringSubmatch(css, -1) {
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if name != "" && value != "" {
			props[name] = value
		}
	}
	return props
}
