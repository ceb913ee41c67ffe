package routing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jharward/ticketwise/internal/models"
)

// weakSkillThreshold marks a proficiency below which a matched skill still
// counts as a gap.
const weakSkillThreshold = 5.0

// highWorkloadThreshold flags a winner's utilization as a risk factor.
const highWorkloadThreshold = 0.8

// Select scores every developer in the roster and returns a recommendation
// for the best match. Iteration follows roster order; a strictly greater
// score is required to displace the current best, so equal scores keep the
// earlier entry. Callers needing deterministic output for equal scores must
// pre-sort the roster.
func Select(req models.Requirement, roster []models.Developer) models.Recommendation {
	if len(roster) == 0 {
		return models.Recommendation{
			TicketID:             req.TicketID,
			RecommendedDeveloper: models.NoDeveloper,
			ConfidenceScore:      0.0,
			Reasoning:            []string{"No developers available"},
			RiskFactors:          []string{"No developers in system"},
			SkillGaps:            req.RequiredSkills,
			WorkloadImpact:       models.ImpactUnknown,
		}
	}

	type candidate struct {
		dev   models.Developer
		score models.ScoreBreakdown
	}

	var best *candidate
	all := make([]candidate, 0, len(roster))
	for _, dev := range roster {
		c := candidate{dev: dev, score: Score(dev, req)}
		all = append(all, c)
		if best == nil || c.score.Final > best.score.Final {
			last := all[len(all)-1]
			best = &last
		}
	}

	if best == nil || best.score.Final <= 0 {
		// Cannot happen given the scoring floor, but guard anyway.
		return models.Recommendation{
			TicketID:             req.TicketID,
			RecommendedDeveloper: models.NoDeveloper,
			ConfidenceScore:      0.0,
			Reasoning:            []string{"No suitable developers found"},
			RiskFactors:          []string{"No developers available"},
			SkillGaps:            req.RequiredSkills,
			WorkloadImpact:       models.ImpactUnknown,
		}
	}

	winner := best.dev

	var reasoning []string
	if top := winner.TopSkills(3); len(top) > 0 {
		parts := make([]string, len(top))
		for i, s := range top {
			parts[i] = fmt.Sprintf("%s(%.1f)", s.Name, s.Proficiency)
		}
		reasoning = append(reasoning, "Strong skills: "+strings.Join(parts, ", "))
	}
	if winner.PerformanceScore > 8 {
		reasoning = append(reasoning, fmt.Sprintf("High performance score: %.1f/10", winner.PerformanceScore))
	}
	if winner.SuccessRate > 90 {
		reasoning = append(reasoning, fmt.Sprintf("Excellent success rate: %.1f%%", winner.SuccessRate))
	}
	if winner.Availability == models.Available {
		reasoning = append(reasoning, "Currently available")
	}

	var skillGaps []string
	for _, required := range req.RequiredSkills {
		if prof, ok := winner.Skills[required]; !ok || prof < weakSkillThreshold {
			skillGaps = append(skillGaps, required)
		}
	}

	var riskFactors []string
	if winner.Utilization() > highWorkloadThreshold {
		riskFactors = append(riskFactors, "High current workload")
	}
	if len(skillGaps) > 0 {
		riskFactors = append(riskFactors, "Missing skills: "+strings.Join(skillGaps, ", "))
	}
	if winner.Availability == models.Busy {
		riskFactors = append(riskFactors, "Developer is currently busy")
	}

	// Alternates: everyone but the winner, by score descending, top 3.
	rest := make([]candidate, 0, len(all)-1)
	for _, c := range all {
		if c.dev.DeveloperID != winner.DeveloperID {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].score.Final > rest[j].score.Final
	})
	if len(rest) > 3 {
		rest = rest[:3]
	}
	alternatives := make([]models.Alternate, len(rest))
	for i, c := range rest {
		alternatives[i] = models.Alternate{
			DeveloperID: c.dev.DeveloperID,
			Name:        c.dev.Name,
			Score:       c.score.Final,
		}
	}

	// Better performance shrinks the estimate: multiplier runs from 1.0 at
	// a perfect score to 2.0 at zero.
	baseTime := float64(req.EstimatedEffort) * 0.5
	multiplier := 2.0 - winner.PerformanceScore/10.0
	eta := int(math.Round(baseTime * multiplier))

	return models.Recommendation{
		TicketID:                req.TicketID,
		RecommendedDeveloper:    winner.DeveloperID,
		DeveloperName:           winner.Name,
		ConfidenceScore:         best.score.Final,
		Reasoning:               reasoning,
		Alternatives:            alternatives,
		EstimatedCompletionTime: eta,
		RiskFactors:             riskFactors,
		SkillGaps:               skillGaps,
		WorkloadImpact:          best.score.Impact,
		SkillMatchScore:         best.score.Skill,
	}
}
