package meta

import (
	"strings"
	"testing"

	"github.com/goliatone/go-metagen/pkg/model"
)

func TestGenerateTitleAndDescription(t *testing.T) {
	t.Parallel()

	markup := Generate(model.Values{"title": "T", "description": "D"})

	if count := strings.Count(markup, "<title>T</title>"); count != 1 {
		t.Fatalf("expected exactly one title line, got %d in:\n%s", count, markup)
	}
	if !strings.Contains(markup, `<meta name="description" content="D">`) {
		t.Fatalf("expected description meta tag in:\n%s", markup)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	values := model.Values{
		"title":        "Launch Page",
		"description":  "A page about launches.",
		"og_title":     "Launch",
		"og_type":      "article",
		"article_tag":  "space",
		"twitter_card": "summary",
		"schema_type":  "Article",
		"canonical":    "https://example.com/launch",
	}

	first := Generate(values)
	second := Generate(values)
	if first != second {
		t.Fatalf("generation must be byte-identical for identical input")
	}
}

func TestCategoryOrderIsEmissionOrder(t *testing.T) {
	t.Parallel()

	markup := Generate(model.Values{
		"title":        "T",
		"canonical":    "https://example.com",
		"og_title":     "OT",
		"twitter_card": "summary",
		"theme_color":  "#ffffff",
	})

	positions := []int{
		strings.Index(markup, "<title>"),
		strings.Index(markup, `rel="canonical"`),
		strings.Index(markup, `property="og:title"`),
		strings.Index(markup, `name="twitter:card"`),
		strings.Index(markup, `name="theme-color"`),
	}
	for i, pos := range positions {
		if pos < 0 {
			t.Fatalf("expected tag %d present in:\n%s", i, markup)
		}
		if i > 0 && positions[i-1] > pos {
			t.Fatalf("category order violated at index %d:\n%s", i, markup)
		}
	}
}

func TestArticleTagsRequireArticleType(t *testing.T) {
	t.Parallel()

	values := model.Values{"og_type": "website", "article_author": "Jane"}
	markup := Generate(values)
	if strings.Contains(markup, "article:author") {
		t.Fatalf("article tags must be suppressed when og_type != article")
	}

	values["og_type"] = "article"
	markup = Generate(values)
	if !strings.Contains(markup, `<meta property="article:author" content="Jane">`) {
		t.Fatalf("expected article:author tag in:\n%s", markup)
	}
}

func TestSchemaTagsGatedByType(t *testing.T) {
	t.Parallel()

	markup := Generate(model.Values{"schema_name": "Acme"})
	if strings.Contains(markup, "application/ld+json") {
		t.Fatalf("schema script must be absent without schema_type")
	}

	markup = Generate(model.Values{
		"schema_type": "Organization",
		"schema_name": "Acme",
		"schema_url":  "https://acme.example",
	})
	if !strings.Contains(markup, `<script type="application/ld+json">`) {
		t.Fatalf("expected JSON-LD script in:\n%s", markup)
	}
	if !strings.Contains(markup, `"@type": "Organization"`) {
		t.Fatalf("expected Organization type in:\n%s", markup)
	}
	if !strings.Contains(markup, `"name": "Acme"`) {
		t.Fatalf("expected pretty-printed name property in:\n%s", markup)
	}
}

func TestEscaping(t *testing.T) {
	t.Parallel()

	markup := Generate(model.Values{
		"title":       `Tom & Jerry <Live>`,
		"description": `say "hi" & <run>`,
	})

	if !strings.Contains(markup, "<title>Tom &amp; Jerry &lt;Live&gt;</title>") {
		t.Fatalf("title text must be escaped:\n%s", markup)
	}
	if !strings.Contains(markup, `content="say &quot;hi&quot; &amp; &lt;run&gt;"`) {
		t.Fatalf("attribute content must be escaped:\n%s", markup)
	}
}

func TestScriptRendersOpenBodyClose(t *testing.T) {
	t.Parallel()

	rendered := Render(Script("application/ld+json", "{}"))
	lines := strings.Split(rendered, "\n")
	if len(lines) != 3 {
		t.Fatalf("script tag must render as open/body/close, got %d lines:\n%s", len(lines), rendered)
	}
}

func TestScoreEmptyIsZero(t *testing.T) {
	t.Parallel()

	if got := Score(model.Values{}); got != 0 {
		t.Fatalf("empty values must score 0, got %d", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	t.Parallel()

	full := model.Values{
		"title":        strings.Repeat("x", 55),
		"description":  strings.Repeat("y", 140),
		"og_title":     "a",
		"og_image":     "b",
		"og_url":       "c",
		"twitter_card": "summary",
		"canonical":    "d",
	}
	sparse := model.Values{"title": "x"}

	if Score(full) <= Score(sparse) {
		t.Fatalf("score must grow as recommended fields fill in: full=%d sparse=%d",
			Score(full), Score(sparse))
	}
}

func TestScoreCappedAt100(t *testing.T) {
	t.Parallel()

	values := model.Values{
		"title": strings.Repeat("x", 40), "description": strings.Repeat("y", 140),
		"keywords": "k", "og_title": "a", "og_description": "b", "og_image": "c",
		"og_url": "d", "twitter_card": "summary", "twitter_title": "t",
		"twitter_image": "i", "canonical": "u", "robots": "index",
		"language": "en", "schema_type": "Person",
	}
	if got := Score(values); got != 100 {
		t.Fatalf("fully filled form must score exactly 100, got %d", got)
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	stats := ComputeStats(model.Values{"title": "T", "description": "D"})
	if stats.TagCount != 2 {
		t.Fatalf("expected 2 tags, got %d", stats.TagCount)
	}
	if stats.CharacterCount == 0 {
		t.Fatalf("expected non-zero character count")
	}
	if stats.SEOScore != scoreTitlePresent+scoreDescription {
		t.Fatalf("unexpected score %d", stats.SEOScore)
	}
}

func TestGenerateDocument(t *testing.T) {
	t.Parallel()

	doc, err := GenerateDocument(model.Values{"title": "Home", "description": "D"})
	if err != nil {
		t.Fatalf("GenerateDocument returned error: %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8">`,
		`name="viewport"`,
		"<title>Home</title>",
		"<body>",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Count(doc, "<title>") != 1 {
		t.Fatalf("document must carry exactly one title element:\n%s", doc)
	}
}

func TestGenerateDocumentFallbackTitle(t *testing.T) {
	t.Parallel()

	doc, err := GenerateDocument(model.Values{"description": "D"})
	if err != nil {
		t.Fatalf("GenerateDocument returned error: %v", err)
	}
	if !strings.Contains(doc, "<title>Untitled</title>") {
		t.Fatalf("expected fallback title:\n%s", doc)
	}
}
