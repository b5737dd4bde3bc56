package meta

import (
	"strings"
)

// indent matches the head-section indentation of the document skeleton.
const indent = "    "

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeText neutralizes angle brackets and ampersands for text-content
// positions.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr neutralizes angle brackets, ampersands, and double quotes for
// attribute positions.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Render serializes one tag to indented markup. Every kind renders to a
// single line except scripts, which wrap their verbatim body between an open
// and a close line. Attribute order is fixed per kind so identical input
// yields byte-identical output.
func Render(tag Tag) string {
	switch tag.Kind {
	case TagTitle:
		return indent + "<title>" + EscapeText(tag.Text) + "</title>"
	case TagMeta:
		return indent + `<meta ` + string(tag.Key) + `="` + EscapeAttr(tag.Name) + `" content="` + EscapeAttr(tag.Content) + `">`
	case TagLink:
		return indent + `<link rel="` + EscapeAttr(tag.Rel) + `" href="` + EscapeAttr(tag.Href) + `">`
	case TagScript:
		return indent + `<script type="` + EscapeAttr(tag.Type) + `">` + "\n" +
			tag.Body + "\n" +
			indent + "</script>"
	default:
		return ""
	}
}

// RenderAll serializes tags in order, one per line.
func RenderAll(tags []Tag) string {
	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		if rendered := Render(tag); rendered != "" {
			lines = append(lines, rendered)
		}
	}
	return strings.Join(lines, "\n")
}
