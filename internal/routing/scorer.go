package routing

import "github.com/jharward/ticketwise/internal/models"

// Blend weights for the final score. Fixed constants summing to 1.0.
const (
	weightSkill        = 0.4
	weightAvailability = 0.3
	weightPerformance  = 0.2
	weightWorkload     = 0.1
)

// neutralSkillScore is returned when a requirement names no skills.
const neutralSkillScore = 0.5

// missingSkillPenalty is the contribution of a required skill the developer
// does not have.
const missingSkillPenalty = 0.1

// specializationBonus is added per specialization tag matching a true
// capability flag on the requirement.
const specializationBonus = 0.1

// Score computes the blended match score for one developer against one
// requirement. Deterministic and pure: identical inputs yield identical
// output.
func Score(dev models.Developer, req models.Requirement) models.ScoreBreakdown {
	skill := SkillMatchScore(dev, req)
	availability := AvailabilityScore(dev)
	performance := PerformanceScore(dev)
	impact := WorkloadImpact(dev, req)

	final := skill*weightSkill +
		availability*weightAvailability +
		performance*weightPerformance +
		workloadMultiplier(impact)*weightWorkload

	return models.ScoreBreakdown{
		Skill:        skill,
		Availability: availability,
		Performance:  performance,
		Final:        final,
		Impact:       impact,
	}
}

// SkillMatchScore measures overlap between required skills and the
// developer's proficiencies, in [0,1]. With no required skills it is exactly
// neutral (0.5). Each matched skill contributes proficiency/10, each missing
// skill a flat penalty, averaged over all required skills. Specialization
// tags matching capability flags add a bonus, capped at 1.0.
func SkillMatchScore(dev models.Developer, req models.Requirement) float64 {
	if len(req.RequiredSkills) == 0 {
		return neutralSkillScore
	}

	var total float64
	for _, required := range req.RequiredSkills {
		if prof, ok := dev.Skills[required]; ok {
			total += prof / 10.0
		} else {
			total += missingSkillPenalty
		}
	}
	avg := total / float64(len(req.RequiredSkills))

	var bonus float64
	for _, spec := range dev.Specializations {
		switch {
		case req.NeedsBackend && spec == "backend":
			bonus += specializationBonus
		case req.NeedsFrontend && spec == "frontend":
			bonus += specializationBonus
		case req.NeedsMobile && spec == "mobile":
			bonus += specializationBonus
		case req.NeedsDesign && spec == "design":
			bonus += specializationBonus
		}
	}

	return models.Clamp(avg+bonus, 0, 1)
}

// AvailabilityScore maps availability state to a score. No partial credit
// for timezone or working hours.
func AvailabilityScore(dev models.Developer) float64 {
	switch dev.Availability {
	case models.Unavailable:
		return 0.0
	case models.Busy:
		return 0.3
	default: // available
		return 1.0
	}
}

// PerformanceScore blends the developer's rolling performance, success rate,
// and completion speed into [0,1]. Completion times beyond the 10-day
// reference earn no bonus rather than a penalty.
func PerformanceScore(dev models.Developer) float64 {
	base := dev.PerformanceScore / 10.0
	successBonus := dev.SuccessRate / 100.0 * 0.3
	timeBonus := (10.0 - dev.AvgCompletionTime) / 10.0 * 0.2
	if timeBonus < 0 {
		timeBonus = 0
	}
	return models.Clamp(base+successBonus+timeBonus, 0, 1)
}

// WorkloadImpact projects how the assignment would affect the developer's
// utilization. Effort is normalized by a fixed divisor of 10, not by the
// developer's own capacity.
func WorkloadImpact(dev models.Developer, req models.Requirement) string {
	projected := dev.Utilization() + float64(req.EstimatedEffort)/10.0
	switch {
	case projected > 1.0:
		return models.ImpactHigh
	case projected > 0.8:
		return models.ImpactMedium
	default:
		return models.ImpactLow
	}
}

func workloadMultiplier(impact string) float64 {
	switch impact {
	case models.ImpactHigh:
		return 0.3
	case models.ImpactMedium:
		return 0.7
	default:
		return 1.0
	}
}
