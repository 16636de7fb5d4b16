package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

const foundationSeedMarker = "foundations"

type seedFoundation struct {
	name                string
	url                 string
	focusAreas          string
	applicationDeadline string // empty means no fixed deadline
	rollingApplications bool
	fitScore            int
	notes               string
}

// SeedFoundationCount is the size of the built-in example dataset.
const SeedFoundationCount = 10

var seedFoundations = []seedFoundation{
	{
		name:                "Nordea-fonden",
		url:                 "https://nordeafonden.dk",
		focusAreas:          "Youth development, Outdoor activities, Participation",
		rollingApplications: true,
		fitScore:            9,
		notes:               `72-hour pre-qualification response time. Focus on "Børn og unge godt på vej", "Ud i det fri", "Lyst til at deltage". Simple pre-qualification form → full application if approved. Strong fit for youth participation + outdoor/active culture.`,
	},
	{
		name:                "Lauritzen Fonden",
		url:                 "https://lauritzenfonden.com",
		focusAreas:          "Vulnerable youth, Culture and community participation, Education pathways",
		applicationDeadline: "2026-06-21",
		fitScore:            9,
		notes:               `Quarterly deadlines: Jan 11, Apr 26, Jun 21, Oct 4. Focuses on "beskyttende og forebyggende faktor" (protective and preventive factors) through culture, community, play, movement. ~800 applications/year. PERFECT FIT for vulnerable youth + culture mission.`,
	},
	{
		name:                "TrygFonden",
		url:                 "https://tryghed.dk",
		focusAreas:          "Safety and security for vulnerable youth, Community building",
		rollingApplications: true,
		fitScore:            7,
		notes:               `Requires alignment with "tryghed" (safety/security) mission. Position Panna as creating safe belonging spaces for youth excluded from traditional sports. Major projects (research and implementation).`,
	},
	{
		name:       "Bikubenfonden",
		url:        "https://www.bikubenfonden.dk",
		focusAreas: "Youth empowerment, Art in public spaces, Vulnerable youth, Decision-making power",
		fitScore:   8,
		notes:      `Programs: "En Vej til Alle" (43,000 youth not in education/work), "Unges beslutningskraft" (youth decision-making). Focus on complex problems, youth voice, letting youth define needs. Possibly invitation-only or strategic partnerships rather than open applications. Worth exploring partnership angle.`,
	},
	{
		name:       "Augustinus Fonden",
		url:        "https://augustinusfonden.dk",
		focusAreas: "Culture preservation, Performing arts, Cultural heritage, Social causes for vulnerable people",
		fitScore:   6,
		notes:      `One of Denmark's major culture foundations. Primary focus on traditional culture/arts and cultural heritage. Possible fit through "culture as development tool" angle for vulnerable youth. Worth exploring but not top priority.`,
	},
	{
		name:       "Lokale og Anlægsfonden",
		url:        "https://lokaleanlaegsfonden.dk",
		focusAreas: "Grassroots sports, Facilities, Youth programs",
		fitScore:   8,
		notes:      "Part of DKK 94.8 million annual budget for sports. Major funder of organized grassroots sports in Denmark. Good fit for youth sports + facility/event support.",
	},
	{
		name:       "Nordic Culture Fund",
		url:        "https://nordiskkulturfond.org",
		focusAreas: "Cross-Nordic cultural collaborations",
		fitScore:   7,
		notes:      "Requires Nordic collaboration element. Good fit for international cultural event with Nordic reach. Project-based grants, 2026 deadlines to be announced.",
	},
	{
		name:       "Egmont Fonden",
		url:        "https://www.egmontfonden.dk",
		focusAreas: "Children and youth welfare, Social initiatives",
		fitScore:   8,
		notes:      "One of Denmark's largest foundations. Focus on children and youth welfare, social initiatives. Annual grants of 400+ million DKK. Research application process and deadlines.",
	},
	{
		name:       "Frimodt-Heineke Fonden",
		url:        "https://www.frimh.dk",
		focusAreas: "Youth development, Education, Social welfare",
		fitScore:   7,
		notes:      "Focus on youth development, education, social welfare. Research specific application requirements and deadlines.",
	},
	{
		name:       "DGI (Danske Gymnastik- og Idrætsforeninger)",
		url:        "https://www.dgi.dk",
		focusAreas: "Sport, Movement, Community, Facilities",
		fitScore:   8,
		notes:      "National sports organization. Multiple funding programs for sport and movement initiatives. Research specific programs for street sports / alternative sports.",
	},
}

// Seed populates an empty store with the built-in foundation list. It
// runs at startup, guarded by a persisted marker row so it executes
// once per database. Duplicate names are ignored so that a concurrent
// or repeated run never fails on rows that already exist; any other
// constraint violation aborts the seed.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var seeded bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM seed_state WHERE name = $1)",
		foundationSeedMarker,
	).Scan(&seeded)
	if err != nil {
		return fmt.Errorf("failed to check seed marker: %w", err)
	}
	if seeded {
		logger.Debug("store already seeded, skipping")
		return nil
	}

	insert := `
		INSERT INTO foundations (name, url, focus_areas, application_deadline, rolling_applications, fit_score, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO NOTHING
	`

	for _, f := range seedFoundations {
		var deadline *string
		if f.applicationDeadline != "" {
			deadline = &f.applicationDeadline
		}
		if _, err := tx.Exec(ctx, insert,
			f.name,
			f.url,
			f.focusAreas,
			deadline,
			f.rollingApplications,
			f.fitScore,
			f.notes,
		); err != nil {
			return fmt.Errorf("failed to seed foundation %q: %w", f.name, err)
		}
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO seed_state (name) VALUES ($1) ON CONFLICT (name) DO NOTHING",
		foundationSeedMarker,
	); err != nil {
		return fmt.Errorf("failed to record seed marker: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("seeded example foundations", "count", len(seedFoundations))
	return nil
}
