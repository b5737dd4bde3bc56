package preview

import (
	"github.com/goliatone/go-metagen/pkg/model"
)

// Platform names for the built-in renderers.
const (
	PlatformGoogle   = "google"
	PlatformFacebook = "facebook"
	PlatformTwitter  = "twitter"
	PlatformLinkedIn = "linkedin"
)

// UntitledFallback terminates every title fallback chain.
const UntitledFallback = "Untitled"

// Per-platform character budgets.
const (
	googleTitleBudget       = 70
	googleDescriptionBudget = 160

	facebookTitleBudget       = 100
	facebookDescriptionBudget = 300

	twitterTitleBudget       = 70
	twitterDescriptionBudget = 200

	linkedinTitleBudget       = 200
	linkedinDescriptionBudget = 256
)

func builtinRenderers() []Renderer {
	return []Renderer{
		RendererFunc{PlatformGoogle, googlePreview},
		RendererFunc{PlatformFacebook, facebookPreview},
		RendererFunc{PlatformTwitter, twitterPreview},
		RendererFunc{PlatformLinkedIn, linkedinPreview},
	}
}

func googlePreview(values model.Values) Preview {
	return Preview{
		Platform:    PlatformGoogle,
		Title:       Truncate(firstOf(values, UntitledFallback, "title", "og_title"), googleTitleBudget),
		Description: Truncate(firstOf(values, "", "description", "og_description"), googleDescriptionBudget),
		URL:         firstOf(values, "", "canonical", "og_url"),
	}
}

func facebookPreview(values model.Values) Preview {
	return withImage(Preview{
		Platform:    PlatformFacebook,
		Title:       Truncate(firstOf(values, UntitledFallback, "og_title", "title"), facebookTitleBudget),
		Description: Truncate(firstOf(values, "", "og_description", "description"), facebookDescriptionBudget),
		URL:         firstOf(values, "", "og_url", "canonical"),
	}, values, "og_image")
}

func twitterPreview(values model.Values) Preview {
	return withImage(Preview{
		Platform:    PlatformTwitter,
		Title:       Truncate(firstOf(values, UntitledFallback, "twitter_title", "og_title", "title"), twitterTitleBudget),
		Description: Truncate(firstOf(values, "", "twitter_description", "og_description", "description"), twitterDescriptionBudget),
		URL:         firstOf(values, "", "og_url", "canonical"),
	}, values, "twitter_image", "og_image")
}

func linkedinPreview(values model.Values) Preview {
	return withImage(Preview{
		Platform:    PlatformLinkedIn,
		Title:       Truncate(firstOf(values, UntitledFallback, "og_title", "title"), linkedinTitleBudget),
		Description: Truncate(firstOf(values, "", "og_description", "description"), linkedinDescriptionBudget),
		URL:         firstOf(values, "", "og_url", "canonical"),
	}, values, "og_image")
}

// withImage resolves the image source chain; an imageless preview keeps its
// image region with a placeholder description rather than omitting it.
func withImage(p Preview, values model.Values, sources ...string) Preview {
	image := firstOf(values, "", sources...)
	if image == "" {
		p.Image = ImagePlaceholder
		p.ImageMissing = true
		return p
	}
	p.Image = image
	return p
}
