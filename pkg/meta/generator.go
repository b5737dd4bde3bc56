// Package meta turns a field-value map into an ordered list of tag
// descriptors, serialized markup, and a derived SEO score. Generation is
// deterministic: the same input map always produces byte-identical output.
package meta

import (
	"encoding/json"

	"github.com/goliatone/go-metagen/pkg/model"
)

// categoryGenerator emits zero or more tags for one category of fields.
type categoryGenerator struct {
	name string
	emit func(values model.Values) []Tag
}

// generators is the fixed ordered list of category generators; list order is
// emission order.
var generators = []categoryGenerator{
	{model.CategoryBasic, basicTags},
	{model.CategorySEO, seoTags},
	{model.CategoryOpenGraph, openGraphTags},
	{model.CategoryTwitter, twitterTags},
	{model.CategorySchema, schemaTags},
	{model.CategoryAdvanced, advancedTags},
	{model.CategoryMobile, mobileTags},
	{model.CategorySocial, socialTags},
}

// GenerateTags runs every category generator in order and returns the
// concatenated tag list. Fields absent or empty in the map emit nothing.
func GenerateTags(values model.Values) []Tag {
	var tags []Tag
	for _, gen := range generators {
		tags = append(tags, gen.emit(values)...)
	}
	return tags
}

// Generate returns the serialized markup for the full tag list.
func Generate(values model.Values) string {
	return RenderAll(GenerateTags(values))
}

func basicTags(values model.Values) []Tag {
	var tags []Tag
	if values.Has("title") {
		tags = append(tags, Title(values.String("title")))
	}
	if values.Has("description") {
		tags = append(tags, Meta("description", values.String("description")))
	}
	if values.Has("keywords") {
		tags = append(tags, Meta("keywords", values.String("keywords")))
	}
	if values.Has("author") {
		tags = append(tags, Meta("author", values.String("author")))
	}
	return tags
}

func seoTags(values model.Values) []Tag {
	var tags []Tag
	if values.Has("robots") {
		tags = append(tags, Meta("robots", values.String("robots")))
	}
	if values.Has("canonical") {
		tags = append(tags, Link("canonical", values.String("canonical")))
	}
	if values.Has("language") {
		tags = append(tags, HTTPEquiv("content-language", values.String("language")))
	}
	return tags
}

func openGraphTags(values model.Values) []Tag {
	var tags []Tag
	ogFields := []string{"og_title", "og_description", "og_type", "og_url", "og_image", "og_site_name", "og_locale"}
	for _, name := range ogFields {
		if values.Has(name) {
			property := "og:" + name[len("og_"):]
			tags = append(tags, Property(property, values.String(name)))
		}
	}

	// Article sub-properties emit only for og_type == "article"; unmatched
	// conditions suppress silently.
	if values.String("og_type") == "article" {
		articleFields := map[string]string{
			"article_author":         "article:author",
			"article_published_time": "article:published_time",
			"article_section":        "article:section",
			"article_tag":            "article:tag",
		}
		for _, name := range []string{"article_author", "article_published_time", "article_section", "article_tag"} {
			if values.Has(name) {
				tags = append(tags, Property(articleFields[name], values.String(name)))
			}
		}
	}
	return tags
}

func twitterTags(values model.Values) []Tag {
	var tags []Tag
	twitterFields := []string{"twitter_card", "twitter_title", "twitter_description", "twitter_image", "twitter_site", "twitter_creator"}
	for _, name := range twitterFields {
		if values.Has(name) {
			property := "twitter:" + name[len("twitter_"):]
			tags = append(tags, Meta(property, values.String(name)))
		}
	}
	return tags
}

// schemaTags emits one JSON-LD script per recognized schema type. Content is
// pretty-printed with two-space indentation and embedded verbatim.
func schemaTags(values model.Values) []Tag {
	schemaType := values.String("schema_type")
	payload := map[string]any{
		"@context": "https://schema.org",
	}

	switch schemaType {
	case "Organization":
		payload["@type"] = "Organization"
		addSchemaProp(payload, values, "schema_name", "name")
		addSchemaProp(payload, values, "schema_url", "url")
		addSchemaProp(payload, values, "schema_logo", "logo")
	case "Person":
		payload["@type"] = "Person"
		addSchemaProp(payload, values, "schema_name", "name")
		addSchemaProp(payload, values, "schema_url", "url")
		addSchemaProp(payload, values, "schema_job_title", "jobTitle")
	case "Article":
		payload["@type"] = "Article"
		addSchemaProp(payload, values, "schema_headline", "headline")
		addSchemaProp(payload, values, "schema_author", "author")
		addSchemaProp(payload, values, "schema_date_published", "datePublished")
	default:
		return nil
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil
	}
	return []Tag{Script("application/ld+json", string(body))}
}

func addSchemaProp(payload map[string]any, values model.Values, field, prop string) {
	if values.Has(field) {
		payload[prop] = values.String(field)
	}
}

func advancedTags(values model.Values) []Tag {
	var tags []Tag
	if values.Has("referrer") {
		tags = append(tags, Meta("referrer", values.String("referrer")))
	}
	if values.Has("rating") {
		tags = append(tags, Meta("rating", values.String("rating")))
	}
	if values.Has("copyright") {
		tags = append(tags, Meta("copyright", values.String("copyright")))
	}
	if values.Has("refresh") {
		tags = append(tags, HTTPEquiv("refresh", values.String("refresh")))
	}
	return tags
}

func mobileTags(values model.Values) []Tag {
	var tags []Tag
	if values.Has("theme_color") {
		tags = append(tags, Meta("theme-color", values.String("theme_color")))
	}
	if values.Has("apple_web_app_capable") {
		tags = append(tags, Meta("apple-mobile-web-app-capable", values.String("apple_web_app_capable")))
	}
	if values.Has("apple_web_app_title") {
		tags = append(tags, Meta("apple-mobile-web-app-title", values.String("apple_web_app_title")))
	}
	if values.Has("format_detection") {
		tags = append(tags, Meta("format-detection", values.String("format_detection")))
	}
	return tags
}

func socialTags(values model.Values) []Tag {
	var tags []Tag
	if values.Has("fb_app_id") {
		tags = append(tags, Property("fb:app_id", values.String("fb_app_id")))
	}
	if values.Has("pinterest_verify") {
		tags = append(tags, Meta("p:domain_verify", values.String("pinterest_verify")))
	}
	return tags
}
