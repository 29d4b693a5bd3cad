package casefile

import (
	"strings"

	"github.com/gaslamp-games/interrogation/internal/models"
)

const (
	defaultTone         = "neutral"
	defaultRelationship = "Unknown relationship"
)

// ComposePrompt fills the interrogation template with the suspect's profile
// and the player's question. Placeholders are replaced literally in a single
// pass so that profile text containing braces is never re-expanded.
func ComposePrompt(template, suspectName, question string, profile models.SuspectProfile) string {
	tone := profile.Tone
	if tone == "" {
		tone = defaultTone
	}

	relationship := profile.RelationshipToVictim
	if relationship == "" {
		relationship = defaultRelationship
	}

	location := profile.Timeline.ClaimedLocation
	if location == "" {
		location = profile.Timeline.Location
	}

	replacer := strings.NewReplacer(
		"{name}", Capitalize(suspectName),
		"{question}", question,
		"{tone}", tone,
		"{backstory}", profile.Backstory,
		"{time_range}", profile.Timeline.TimeRange,
		"{location}", location,
		"{relationship_to_victim}", relationship,
	)
	return replacer.Replace(template)
}
