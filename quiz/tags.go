package quiz

import (
	"strings"

	"quizdeck/models"
	"quizdeck/utils"
)

// TagFilter decides which deck tags are shown next to a question.
type TagFilter struct {
	Excluded       []string // exact category codes that are never shown
	ExcludedPrefix string   // preliminary/meta tags, e.g. "Prelims-2020"
	Emphasis       string   // tag rendered with the emphasis class
}

// DefaultTagFilter hides the subject codes and the Prelims-* tags and highlights "Hard".
func DefaultTagFilter() TagFilter {
	return TagFilter{
		Excluded:       []string{"MATH", "ENG", "GK", "GI"},
		ExcludedPrefix: "Prelims",
		Emphasis:       "Hard",
	}
}

// Apply returns the visible tags in their original order.
func (f TagFilter) Apply(tags []string) []models.Tag {
	visible := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		if f.ExcludedPrefix != "" && strings.HasPrefix(tag, f.ExcludedPrefix) {
			continue
		}
		if utils.ContainsString(f.Excluded, tag) {
			continue
		}
		visible = append(visible, models.Tag{
			Name:     tag,
			Emphasis: f.Emphasis != "" && tag == f.Emphasis,
		})
	}
	return visible
}
