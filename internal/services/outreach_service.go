package services

import (
	"fmt"
	"strings"

	"grantboard/internal/config"
	"grantboard/internal/models"
)

// OutreachTemplate is a drafted outreach email with bracketed prompts
// left for the sender to fill in.
type OutreachTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// OutreachService generates outreach email drafts. It is a pure
// templating layer with no store access.
type OutreachService struct {
	cfg config.OutreachConfig
}

func NewOutreachService(cfg config.OutreachConfig) *OutreachService {
	return &OutreachService{cfg: cfg}
}

const fallbackMission = "youth development"

// Generate drafts a subject and body for one foundation. A blank
// project name falls back to the configured default.
func (s *OutreachService) Generate(foundation *models.Foundation, projectName string) OutreachTemplate {
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		projectName = s.cfg.DefaultProjectName
	}

	return OutreachTemplate{
		Subject: fmt.Sprintf("Partnership Opportunity: %s", projectName),
		Body:    s.generateBody(foundation, projectName),
	}
}

func (s *OutreachService) generateBody(foundation *models.Foundation, projectName string) string {
	focus := fallbackMission
	if foundation.FocusAreas != nil && *foundation.FocusAreas != "" {
		focus = *foundation.FocusAreas
	}

	portalLine := ""
	if foundation.URL != nil && *foundation.URL != "" {
		portalLine = fmt.Sprintf("\nFoundation application portal: %s", *foundation.URL)
	}

	return fmt.Sprintf(`Dear %[1]s Team,

I'm writing to introduce %[2]s, a project that aligns closely with %[1]s's mission around %[3]s.

[PROJECT SUMMARY - 2-3 sentences about what you're doing and why it matters]

Example:
"The Panna World Championship brings together 150+ young athletes (ages 16-25) from 30+ countries for a week-long celebration of street football culture. Beyond competition, it's a platform for youth leadership, cultural exchange, and community building—creating pathways for young people often excluded from traditional sports structures."

[ALIGNMENT WITH FOUNDATION - Why this fits their mission]

Example focus areas:
%[4]s

[ASK]
We are seeking [AMOUNT] DKK to [SPECIFIC USE - e.g., "cover venue costs and participant scholarships"]. This investment would enable us to [IMPACT - e.g., "provide 30 free entry slots for youth from underserved communities"].

[CLOSING]
I'd welcome the opportunity to discuss how %[2]s could partner with %[1]s to achieve our shared goals around %[3]s.

Thank you for considering this request. I'm happy to provide additional materials or answer any questions.

Best regards,
%[5]s
%[6]s
[contact info]

---

[ATTACHMENTS TO INCLUDE]
- Project description (1-2 pages)
- Budget breakdown
- Impact metrics from past years
- Team bios
- Photos/videos from previous events%[7]s`,
		foundation.Name,
		projectName,
		focus,
		strings.Join(focusBullets(foundation.FocusAreas), "\n"),
		s.cfg.SenderName,
		s.cfg.SenderTitle,
		portalLine,
	)
}

// focusBullets produces one bullet per comma-separated focus segment,
// trimmed, skipping blanks. Nil or empty focus areas yield no bullets.
func focusBullets(focusAreas *string) []string {
	if focusAreas == nil || *focusAreas == "" {
		return nil
	}

	var bullets []string
	for _, segment := range strings.Split(*focusAreas, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		bullets = append(bullets, fmt.Sprintf("- %s: [explain how your project addresses this]", segment))
	}
	return bullets
}
