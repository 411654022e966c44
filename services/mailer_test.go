package services

import (
	"testing"

	"careloom-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderReminderEmail(t *testing.T) {
	rel := models.Relationship{Name: "Alice"}

	subject, body := RenderReminderEmail("Sam", rel, models.EventTypeBirthday, "2025-03-10", 7)

	assert.Equal(t, "Alice's birthday is in 7 days", subject)
	assert.Contains(t, body, "Hi Sam,")
	assert.Contains(t, body, "Alice's birthday")
	assert.Contains(t, body, "2025-03-10")
	assert.NotContains(t, body, "[")
}

func TestRenderReminderEmailDayPhrasing(t *testing.T) {
	rel := models.Relationship{Name: "Alice"}

	subject, _ := RenderReminderEmail("Sam", rel, models.EventTypeBirthday, "2025-03-10", 0)
	assert.Equal(t, "Alice's birthday is today", subject)

	subject, _ = RenderReminderEmail("Sam", rel, models.EventTypeAnniversary, "2025-03-10", 1)
	assert.Equal(t, "Alice's anniversary is tomorrow", subject)
}
