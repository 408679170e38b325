package offerdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms template HTML into Markdown for terminal previews.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}
