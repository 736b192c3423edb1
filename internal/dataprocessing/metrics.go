package dataprocessing

import (
	"math"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// EngagementScore is the combined applications and views per vacancy.
// Fewer than one vacancy counts as one.
func EngagementScore(applications, views, vacancies float64) float64 {
	return (applications + views) / math.Max(vacancies, 1)
}

// ClassifyExperience buckets a minimum-years-of-experience value.
// Bucket bounds are right-inclusive: (-1,0], (0,2], (2,5], (5,10], (10,inf).
// Missing values and values at or below -1 have no bucket.
func ClassifyExperience(years *float64) domain.ExperienceLevel {
	if years == nil || math.IsNaN(*years) {
		return domain.ExperienceUnknown
	}

	y := *years
	switch {
	case y <= -1:
		return domain.ExperienceUnknown
	case y <= 0:
		return domain.ExperienceEntry
	case y <= 2:
		return domain.ExperienceJunior
	case y <= 5:
		return domain.ExperienceMid
	case y <= 10:
		return domain.ExperienceSenior
	default:
		return domain.ExperienceExpert
	}
}

// derive fills the computed fields of a cleaned posting
func derive(p *domain.Posting) {
	p.MainCategory = ExtractMainCategory(p.CategoriesRaw)
	p.EngagementScore = EngagementScore(p.Applications, p.Views, p.Vacancies)
	p.ExpCategory = ClassifyExperience(p.MinYearsExperience)
}
