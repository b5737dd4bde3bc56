package meta

import (
	"github.com/goliatone/go-metagen/pkg/model"
)

// Stats summarizes one generation pass.
type Stats struct {
	TagCount       int
	SEOScore       int
	CharacterCount int
}

// Per-field score weights. Category maxima: basic 30, opengraph 25,
// twitter 15, seo 20, schema 10; the total is capped at 100.
const (
	scoreTitlePresent     = 10
	scoreTitleWellSized   = 5
	scoreDescription      = 5
	scoreDescriptionSized = 5
	scoreKeywords         = 5

	scoreOGTitle       = 7
	scoreOGDescription = 6
	scoreOGImage       = 8
	scoreOGURL         = 4

	scoreTwitterCard  = 6
	scoreTwitterTitle = 5
	scoreTwitterImage = 4

	scoreCanonical = 10
	scoreRobots    = 5
	scoreLanguage  = 5

	scoreSchemaType = 10
)

// Ideal length windows for title and description, in characters.
const (
	titleMinIdeal       = 30
	titleMaxIdeal       = 60
	descriptionMinIdeal = 120
	descriptionMaxIdeal = 160
)

// ComputeStats generates the tag list and derives the SEO score and markup
// size for the given values. The score is a weighted sum over present and
// well-sized recommended fields; filling more fields never lowers it.
func ComputeStats(values model.Values) Stats {
	tags := GenerateTags(values)
	markup := RenderAll(tags)
	return Stats{
		TagCount:       len(tags),
		SEOScore:       Score(values),
		CharacterCount: len(markup),
	}
}

// Score computes the 0-100 SEO heuristic for the given values.
func Score(values model.Values) int {
	score := 0

	if values.Has("title") {
		score += scoreTitlePresent
		if n := len(values.String("title")); n >= titleMinIdeal && n <= titleMaxIdeal {
			score += scoreTitleWellSized
		}
	}
	if values.Has("description") {
		score += scoreDescription
		if n := len(values.String("description")); n >= descriptionMinIdeal && n <= descriptionMaxIdeal {
			score += scoreDescriptionSized
		}
	}
	if values.Has("keywords") {
		score += scoreKeywords
	}

	if values.Has("og_title") {
		score += scoreOGTitle
	}
	if values.Has("og_description") {
		score += scoreOGDescription
	}
	if values.Has("og_image") {
		score += scoreOGImage
	}
	if values.Has("og_url") {
		score += scoreOGURL
	}

	if values.Has("twitter_card") {
		score += scoreTwitterCard
	}
	if values.Has("twitter_title") {
		score += scoreTwitterTitle
	}
	if values.Has("twitter_image") {
		score += scoreTwitterImage
	}

	if values.Has("canonical") {
		score += scoreCanonical
	}
	if values.Has("robots") {
		score += scoreRobots
	}
	if values.Has("language") {
		score += scoreLanguage
	}

	if values.Has("schema_type") {
		score += scoreSchemaType
	}

	if score > 100 {
		score = 100
	}
	return score
}
