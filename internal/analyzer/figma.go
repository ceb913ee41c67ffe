// Package analyzer turns tickets into analysis reports: clarifying
// questions, risks, technical considerations, and test cases. Generation is
// LLM-backed when a model is configured, with keyword heuristics as the
// fallback path.
package analyzer

import "regexp"

var figmaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://www\.figma\.com/file/[a-zA-Z0-9]+`),
	regexp.MustCompile(`https://figma\.com/file/[a-zA-Z0-9]+`),
	regexp.MustCompile(`https://www\.figma\.com/proto/[a-zA-Z0-9]+`),
	regexp.MustCompile(`https://figma\.com/proto/[a-zA-Z0-9]+`),
}

// ExtractFigmaLinks returns the unique Figma file/prototype links found in
// text, in first-seen order.
func ExtractFigmaLinks(text string) []string {
	var links []string
	seen := map[string]bool{}
	for _, pattern := range figmaPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if !seen[match] {
				seen[match] = true
				links = append(links, match)
			}
		}
	}
	return links
}
