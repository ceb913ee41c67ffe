package routing

import "github.com/jharward/ticketwise/internal/models"

// Exponential smoothing factors for completion feedback.
const (
	successHistoryWeight     = 0.8
	completionHistoryWeight  = 0.8
	performanceHistoryWeight = 0.9
)

// ApplyCompletion folds one completion outcome into the developer's rolling
// statistics. rating is on a 1-5 scale; actualDays is the observed completion
// time. Success rate and performance are clamped to their ranges after every
// blend.
func ApplyCompletion(dev *models.Developer, rating, actualDays float64) {
	// rating scaled by 20 maps 1-5 onto 0-100.
	dev.SuccessRate = models.Clamp(
		dev.SuccessRate*successHistoryWeight+rating*20, 0, 100)

	dev.AvgCompletionTime = dev.AvgCompletionTime*completionHistoryWeight +
		actualDays*(1-completionHistoryWeight)

	// rating/5*10 maps 1-5 onto 0-10.
	recent := rating / 5.0 * 10.0
	dev.PerformanceScore = models.Clamp(
		dev.PerformanceScore*performanceHistoryWeight+recent*(1-performanceHistoryWeight), 0, 10)

	if dev.CurrentWorkload > 0 {
		dev.CurrentWorkload--
	}
}
