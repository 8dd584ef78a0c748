// Package document checks the Markdown documents of a PRD workflow: PRD.md,
// research.md, and the deliverable files generated from a deliverables map.
package document

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	needsDetailPattern = regexp.MustCompile(`\[NEEDS_DETAIL:\s*([^\]]+)\]`)
	placeholderPattern = regexp.MustCompile(`(?i)\[(?:PLACEHOLDER|TODO|TBD|XXX)[^\]]*\]`)
)

// Heading is a Markdown heading found in a document.
type Heading struct {
	Level int
	Text  string

	// Empty is true when no block follows the heading before the next
	// heading of level 3 or shallower, or the end of the document.
	Empty bool
}

// Headings parses source as Markdown and returns its headings in order.
// Headings inside code blocks are not included.
func Headings(source []byte) []Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []Heading
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  strings.TrimSpace(nodeText(heading, source)),
			Empty: sectionEmpty(heading),
		})
	}
	return headings
}

func sectionEmpty(heading *ast.Heading) bool {
	next := heading.NextSibling()
	if next == nil {
		return true
	}
	following, ok := next.(*ast.Heading)
	return ok && following.Level <= 3
}

func nodeText(node ast.Node, source []byte) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch value := child.(type) {
		case *ast.Text:
			builder.Write(value.Segment.Value(source))
			if value.SoftLineBreak() || value.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(value.Value)
		default:
			builder.WriteString(nodeText(child, source))
		}
	}
	return builder.String()
}

// hasSectionPrefix reports whether any heading at level matches section as a
// case-insensitive prefix.
func hasSectionPrefix(headings []Heading, level int, section string) bool {
	want := strings.ToLower(section)
	for _, heading := range headings {
		if heading.Level != level {
			continue
		}
		if strings.HasPrefix(strings.ToLower(heading.Text), want) {
			return true
		}
	}
	return false
}

// hasSection reports whether a level 2 or 3 heading equals section or
// contains it, ignoring case.
func hasSection(headings []Heading, section string) bool {
	want := strings.ToLower(section)
	for _, heading := range headings {
		if heading.Level < 2 || heading.Level > 3 {
			continue
		}
		if heading.Text == section || strings.Contains(strings.ToLower(heading.Text), want) {
			return true
		}
	}
	return false
}

// NeedsDetailTags returns the trimmed contents of every [NEEDS_DETAIL: ...] tag.
func NeedsDetailTags(source []byte) []string {
	matches := needsDetailPattern.FindAllSubmatch(source, -1)
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tags = append(tags, strings.TrimSpace(string(match[1])))
	}
	return tags
}

func countPlaceholders(source []byte) int {
	return len(placeholderPattern.FindAll(source, -1))
}
