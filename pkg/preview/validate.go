package preview

import (
	"fmt"

	"github.com/goliatone/go-metagen/pkg/model"
)

// ValidationReport flags missing recommended fields for a platform. Warnings
// never block preview generation.
type ValidationReport struct {
	Valid    bool
	Warnings []string
}

// recommendedFields lists, per platform, the field fallback groups a
// complete preview wants filled. A group is satisfied when any member is
// present.
var recommendedFields = map[string][][]string{
	PlatformGoogle: {
		{"title"},
		{"description"},
		{"canonical", "og_url"},
	},
	PlatformFacebook: {
		{"og_title", "title"},
		{"og_description", "description"},
		{"og_image"},
		{"og_url"},
	},
	PlatformTwitter: {
		{"twitter_card"},
		{"twitter_title", "og_title", "title"},
		{"twitter_image", "og_image"},
	},
	PlatformLinkedIn: {
		{"og_title", "title"},
		{"og_description", "description"},
		{"og_image"},
	},
}

// ValidatePreviewData reports which recommended fields are missing for the
// platform. Unknown platforms return a single warning and remain valid for
// generation purposes, mirroring the placeholder behavior of Generate.
func ValidatePreviewData(values model.Values, platform string) ValidationReport {
	groups, known := recommendedFields[platform]
	if !known {
		return ValidationReport{
			Valid:    false,
			Warnings: []string{fmt.Sprintf("unknown platform %q", platform)},
		}
	}

	var warnings []string
	for _, group := range groups {
		if !anyPresent(values, group) {
			warnings = append(warnings, fmt.Sprintf("missing recommended field %q", group[0]))
		}
	}
	return ValidationReport{Valid: len(warnings) == 0, Warnings: warnings}
}

func anyPresent(values model.Values, names []string) bool {
	for _, name := range names {
		if values.Has(name) {
			return true
		}
	}
	return false
}
