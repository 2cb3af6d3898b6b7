package model

import "time"

// PersonalityProfile is the singleton per-user aggregate of trait scores.
// Scores are optional and bounded to [0,1]; nil means never assessed.
// No derivation logic lives here — this is a passive store.
type PersonalityProfile struct {
	Openness          *float64           `json:"openness,omitempty"`
	Conscientiousness *float64           `json:"conscientiousness,omitempty"`
	Extraversion      *float64           `json:"extraversion,omitempty"`
	Agreeableness     *float64           `json:"agreeableness,omitempty"`
	Neuroticism       *float64           `json:"neuroticism,omitempty"`
	CustomTraits      map[string]float64 `json:"custom_traits,omitempty"`
	Summary           string             `json:"summary,omitempty"`
	SummaryUpdatedAt  *time.Time         `json:"summary_updated_at,omitempty"`
}
