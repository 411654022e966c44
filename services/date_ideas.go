// services/date_ideas.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"careloom-backend/models"
)

// IdeaSource produces the content for a date-ideas digest email. The real
// generator is an external AI content service; it sits behind this interface
// so the digest path doesn't care where ideas come from. The run date is
// passed in so content is deterministic for a given digest.
type IdeaSource interface {
	IdeasFor(rel models.Relationship, today time.Time) (string, error)
}

// StaticIdeaSource is the built-in fallback rotation used when no external
// generator is configured.
type StaticIdeaSource struct {
	ideas []string
}

func NewStaticIdeaSource() *StaticIdeaSource {
	return &StaticIdeaSource{
		ideas: []string{
			"Cook a new recipe together and rate it like food critics.",
			"Take a sunset walk somewhere neither of you has been.",
			"Plan a games night with the kind of snacks you had as kids.",
			"Visit a local market and pick out surprises for each other.",
			"Recreate your first date, down to the small details.",
		},
	}
}

func (s *StaticIdeaSource) IdeasFor(rel models.Relationship, today time.Time) (string, error) {
	// Rotate by ISO week so the same relationship sees a different idea each
	// digest without any stored state.
	_, week := today.UTC().ISOWeek()
	idea := s.ideas[week%len(s.ideas)]
	return fmt.Sprintf("<p>This week's idea for you and %s:</p><p>%s</p>", rel.Name, idea), nil
}

// interSendDelay paces digest sends so a cheap SMTP relay doesn't rate-limit
// the run.
const interSendDelay = 200 * time.Millisecond

// SendWeeklyDateIdeas emails a date-ideas digest to owners of partner/spouse
// relationships that opted in and are due this cycle. Sends are sequential
// with a fixed delay; failures are logged per item and never stop the loop.
// The digest writes no reminder logs; it is outside the idempotency contract.
func (s *ReminderService) SendWeeklyDateIdeas(today time.Time) {
	log.Println("[DATE IDEAS] starting weekly digest")

	candidates, err := s.loadCandidates()
	if err != nil {
		log.Printf("[DATE IDEAS] failed to load relationships: %v", err)
		return
	}

	sent := 0
	for _, cand := range candidates {
		rel := cand.relationship
		if !rel.WantsDateIdeas() || !digestDue(rel.DateIdeasFrequency, today) {
			continue
		}

		content, err := s.ideas.IdeasFor(rel, today)
		if err != nil {
			log.Printf("[DATE IDEAS] no content for relationship %s: %v", rel.ID, err)
			continue
		}

		subject := fmt.Sprintf("A date idea for you and %s", rel.Name)
		body := renderDigestEmail(cand.ownerName, content)

		if err := s.mailer.Send(cand.ownerEmail, subject, body); err != nil {
			log.Printf("[DATE IDEAS] failed to send digest for %s: %v", rel.Name, err)
		} else {
			sent++
		}

		time.Sleep(interSendDelay)
	}

	log.Printf("[DATE IDEAS] weekly digest completed: %d sent", sent)
}

// digestDue decides whether a relationship's opt-in cadence lands on this
// week's digest: weekly always, biweekly on even ISO weeks, monthly on the
// first digest of the month.
func digestDue(frequency string, today time.Time) bool {
	switch frequency {
	case models.DateIdeasWeekly:
		return true
	case models.DateIdeasBiweekly:
		_, week := today.UTC().ISOWeek()
		return week%2 == 0
	case models.DateIdeasMonthly:
		return today.UTC().Day() <= 7
	default:
		return false
	}
}

const digestBodyTemplate = `<p>Hi [OwnerName],</p>
[Content]
<p>— Careloom</p>`

func renderDigestEmail(ownerName, content string) string {
	replacer := strings.NewReplacer(
		"[OwnerName]", ownerName,
		"[Content]", content,
	)
	return replacer.Replace(digestBodyTemplate)
}
