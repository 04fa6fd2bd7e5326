package service

import (
	"regexp"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
)

// intentRule maps a message pattern to a tool the first model call must use.
// Rules are checked in order; the first match wins.
type intentRule struct {
	pattern *regexp.Regexp
	tool    string
	minTier entity.AccessTier
}

var defaultIntentRules = []intentRule{
	{
		pattern: regexp.MustCompile(`(?i)remind me|set a reminder|add a reminder`),
		tool:    "create_reminder",
		minTier: entity.TierReadWrite,
	},
	{
		pattern: regexp.MustCompile(`(?i)(send|leave) (a )?message|let .* know|tell (the )?(team|staff)`),
		tool:    "send_message",
		minTier: entity.TierReadWrite,
	},
	{
		pattern: regexp.MustCompile(`(?i)save (this|that|the last)`),
		tool:    "save_lookup",
		minTier: entity.TierReadWrite,
	},
	{
		pattern: regexp.MustCompile(`(?i)upcoming appointments|clinic schedule`),
		tool:    "get_upcoming_appointments",
		minTier: entity.TierReadOnly,
	},
}

// IntentDetector turns obvious user phrasings into a forced first tool call
// so cheap models do not wander. A rule only fires for callers whose tier may
// actually use the tool; below-tier messages fall through to the model.
type IntentDetector struct {
	rules []intentRule
}

func NewIntentDetector() *IntentDetector {
	return &IntentDetector{rules: defaultIntentRules}
}

// Detect returns the tool to force for message, or ForcedToolAuto.
func (d *IntentDetector) Detect(message string, tier entity.AccessTier) entity.ForcedTool {
	for _, rule := range d.rules {
		if !tier.AtLeast(rule.minTier) {
			continue
		}
		if rule.pattern.MatchString(message) {
			return entity.ForcedTool(rule.tool)
		}
	}
	return entity.ForcedToolAuto
}
