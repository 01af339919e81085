// Package render formats a parsed API response for terminal display.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/trozzelle/perplexity-shell/internal/perplexity"
)

// DefaultCitationLimit caps the references list so a chatty response cannot
// flood the terminal.
const DefaultCitationLimit = 3

const ruleWidth = 50

var orderedItem = regexp.MustCompile(`^\s*\d+\.\s`)

// Options controls rendering.
type Options struct {
	// Structured treats the answer content as an explanation/examples JSON
	// object rather than free text.
	Structured bool
	// CitationLimit caps the number of rendered citations. Zero means
	// DefaultCitationLimit.
	CitationLimit int
}

// Answer renders the response as colored terminal text.
func Answer(resp *perplexity.ChatResponse, opts Options) string {
	limit := opts.CitationLimit
	if limit <= 0 {
		limit = DefaultCitationLimit
	}

	rule := color.New(color.FgBlue).Sprint(strings.Repeat("━", ruleWidth))

	var b strings.Builder
	b.WriteString("\n" + rule + "\n\n")

	content := resp.Answer()
	if opts.Structured {
		b.WriteString(structuredBody(content))
	} else {
		b.WriteString(plainBody(content))
	}

	if refs := references(resp.Citations, limit); refs != "" {
		b.WriteString("\n" + refs)
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// plainBody styles the answer line by line: fenced-code delimiters green,
// ordered list items yellow, everything else untouched.
func plainBody(content string) string {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "```"):
			b.WriteString(green.Sprint(line))
		case orderedItem.MatchString(line):
			b.WriteString(yellow.Sprint(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// structuredAnswer is the shape the JSON-schema response format yields.
type structuredAnswer struct {
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

// structuredBody renders an explanation/examples object: bold paragraphs,
// then a yellow Examples header with green bullets. Content that fails to
// parse falls back to the plain rules.
func structuredBody(content string) string {
	var ans structuredAnswer
	if err := json.Unmarshal([]byte(content), &ans); err != nil || ans.Explanation == "" {
		return plainBody(content)
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	var b strings.Builder
	for _, para := range strings.Split(ans.Explanation, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString(bold.Sprint(para) + "\n\n")
	}

	if len(ans.Examples) > 0 {
		b.WriteString(yellow.Sprint("Examples:") + "\n")
		for _, ex := range ans.Examples {
			b.WriteString(fmt.Sprintf("  • %s\n", green.Sprint(ex)))
		}
	}

	return b.String()
}

// references renders the citation list, capped at limit. An empty citation
// list yields an empty string so no header is printed.
func references(citations []perplexity.Citation, limit int) string {
	if len(citations) == 0 {
		return ""
	}
	if len(citations) > limit {
		citations = citations[:limit]
	}

	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	var b strings.Builder
	b.WriteString(bold.Sprint("References") + "\n")
	for _, c := range citations {
		label := c.URL
		if c.Text != "" && c.URL != "" {
			label = fmt.Sprintf("%s (%s)", c.Text, c.URL)
		} else if c.Text != "" {
			label = c.Text
		}
		b.WriteString(dim.Sprintf("  • %s", label) + "\n")
	}
	return b.String()
}
