package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
)

func TestDetectReminderIntent(t *testing.T) {
	d := NewIntentDetector()

	got := d.Detect("Remind me to call Myrna Chavez back tomorrow", entity.TierReadWrite)
	assert.Equal(t, entity.ForcedTool("create_reminder"), got)
}

func TestDetectBelowTierFallsThrough(t *testing.T) {
	d := NewIntentDetector()

	// A read_only caller phrasing a reminder request gets no forced write
	// tool; the model handles the message unforced.
	got := d.Detect("remind me to check the trap line", entity.TierReadOnly)
	assert.Equal(t, entity.ForcedToolAuto, got)
}

func TestDetectMessageIntent(t *testing.T) {
	d := NewIntentDetector()

	assert.Equal(t, entity.ForcedTool("send_message"),
		d.Detect("send a message to the transport team", entity.TierReadWrite))
	assert.Equal(t, entity.ForcedTool("send_message"),
		d.Detect("let Dana know the site is clear", entity.TierFull))
}

func TestDetectSaveIntent(t *testing.T) {
	d := NewIntentDetector()

	assert.Equal(t, entity.ForcedTool("save_lookup"),
		d.Detect("great, save that for me", entity.TierReadWrite))
}

func TestDetectAppointmentsIntent(t *testing.T) {
	d := NewIntentDetector()

	assert.Equal(t, entity.ForcedTool("get_upcoming_appointments"),
		d.Detect("what's on the clinic schedule this week?", entity.TierReadOnly))
}

func TestDetectOrdinaryMessageIsAuto(t *testing.T) {
	d := NewIntentDetector()

	assert.Equal(t, entity.ForcedToolAuto,
		d.Detect("who lives at the Riverside colony?", entity.TierFull))
}

func TestDetectCaseInsensitive(t *testing.T) {
	d := NewIntentDetector()

	assert.Equal(t, entity.ForcedTool("create_reminder"),
		d.Detect("SET A REMINDER for the clinic run", entity.TierFull))
}
