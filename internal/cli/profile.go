package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the personality profile",
		Run:   runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update personality profile fields",
		Run:   runProfileSet,
	}
	setCmd.Flags().Float64("openness", -1, "Openness score [0,1]")
	setCmd.Flags().Float64("conscientiousness", -1, "Conscientiousness score [0,1]")
	setCmd.Flags().Float64("extraversion", -1, "Extraversion score [0,1]")
	setCmd.Flags().Float64("agreeableness", -1, "Agreeableness score [0,1]")
	setCmd.Flags().Float64("neuroticism", -1, "Neuroticism score [0,1]")
	setCmd.Flags().String("trait", "", "Custom trait as name=score")
	setCmd.Flags().String("summary", "", "Natural-language summary")

	cmd.AddCommand(setCmd)
	RootCmd.AddCommand(cmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.Profile(cmd.Context())
	if err != nil {
		exitErr("profile", err)
	}

	b, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(b))
}

func runProfileSet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.Profile(cmd.Context())
	if err != nil {
		exitErr("profile", err)
	}

	for flag, dest := range map[string]**float64{
		"openness":          &p.Openness,
		"conscientiousness": &p.Conscientiousness,
		"extraversion":      &p.Extraversion,
		"agreeableness":     &p.Agreeableness,
		"neuroticism":       &p.Neuroticism,
	} {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetFloat64(flag)
			*dest = &v
		}
	}

	if cmd.Flags().Changed("trait") {
		traitStr, _ := cmd.Flags().GetString("trait")
		name, scoreStr, found := splitTrait(traitStr)
		if !found {
			exitErr("profile set", fmt.Errorf("trait must be name=score"))
		}
		var score float64
		if _, err := fmt.Sscanf(scoreStr, "%f", &score); err != nil {
			exitErr("profile set", fmt.Errorf("invalid trait score %q", scoreStr))
		}
		if p.CustomTraits == nil {
			p.CustomTraits = map[string]float64{}
		}
		p.CustomTraits[name] = score
	}

	if cmd.Flags().Changed("summary") {
		summary, _ := cmd.Flags().GetString("summary")
		p.Summary = summary
		now := time.Now().UTC()
		p.SummaryUpdatedAt = &now
	}

	if err := s.SaveProfile(cmd.Context(), p); err != nil {
		exitErr("profile set", err)
	}

	b, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(b))
}

func splitTrait(s string) (name, score string, found bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
