package prompt

import (
	"net/url"
	"strings"
)

// Tokens substituted in a Template's prompt text.
const (
	tokenSkill             = "{skill}"
	tokenDuration          = "{duration}"
	tokenAssignmentDetails = "{assignment_details}"
)

// Render substitutes the known tokens of promptText in a single pass: substituted values are never
// scanned again, and unknown tokens are left as they are.
// {assignment_details} is only substituted for assignment templates given a non-empty custom prompt.
func Render(promptText, templateType, skillName string, duration Duration, customPrompt *string) string {
	pairs := []string{
		tokenSkill, skillName,
		tokenDuration, string(duration),
	}
	if templateType == TypeAssignment && customPrompt != nil && *customPrompt != "" {
		pairs = append(pairs, tokenAssignmentDetails, *customPrompt)
	}
	return strings.NewReplacer(pairs...).Replace(promptText)
}

// DeepLink returns the search URL that opens text on the external search engine.
// Spaces are encoded as %20.
func DeepLink(endpoint, param, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + url.QueryEscape(param) + "=" + escaped
}
