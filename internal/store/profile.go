package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// Profile returns the singleton personality profile. An unset profile is
// returned as an empty value, not an error.
func (s *SQLiteStore) Profile(ctx context.Context) (*model.PersonalityProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT openness, conscientiousness, extraversion, agreeableness, neuroticism,
		        custom_traits, summary, summary_updated_at
		 FROM profile WHERE id = 1`)

	var p model.PersonalityProfile
	var customTraits, summary, summaryAt sql.NullString
	err := row.Scan(&p.Openness, &p.Conscientiousness, &p.Extraversion,
		&p.Agreeableness, &p.Neuroticism, &customTraits, &summary, &summaryAt)
	if err == sql.ErrNoRows {
		return &model.PersonalityProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if customTraits.Valid {
		json.Unmarshal([]byte(customTraits.String), &p.CustomTraits)
	}
	if summary.Valid {
		p.Summary = summary.String
	}
	if summaryAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, summaryAt.String)
		p.SummaryUpdatedAt = &t
	}
	return &p, nil
}

// SaveProfile upserts the singleton personality profile. Trait scores
// outside [0,1] are rejected.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *model.PersonalityProfile) error {
	for name, score := range map[string]*float64{
		"openness":          p.Openness,
		"conscientiousness": p.Conscientiousness,
		"extraversion":      p.Extraversion,
		"agreeableness":     p.Agreeableness,
		"neuroticism":       p.Neuroticism,
	} {
		if score != nil && (*score < 0 || *score > 1) {
			return fmt.Errorf("trait %s out of range: %v", name, *score)
		}
	}
	for name, score := range p.CustomTraits {
		if score < 0 || score > 1 {
			return fmt.Errorf("custom trait %s out of range: %v", name, score)
		}
	}

	var customTraits interface{}
	if len(p.CustomTraits) > 0 {
		b, _ := json.Marshal(p.CustomTraits)
		customTraits = string(b)
	}
	var summaryAt interface{}
	if p.SummaryUpdatedAt != nil {
		summaryAt = p.SummaryUpdatedAt.UTC().Format(timeFormat)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (id, openness, conscientiousness, extraversion,
		                      agreeableness, neuroticism, custom_traits, summary, summary_updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   openness = excluded.openness,
		   conscientiousness = excluded.conscientiousness,
		   extraversion = excluded.extraversion,
		   agreeableness = excluded.agreeableness,
		   neuroticism = excluded.neuroticism,
		   custom_traits = excluded.custom_traits,
		   summary = excluded.summary,
		   summary_updated_at = excluded.summary_updated_at`,
		p.Openness, p.Conscientiousness, p.Extraversion, p.Agreeableness,
		p.Neuroticism, customTraits, nullable(p.Summary), summaryAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
