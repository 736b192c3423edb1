package dataprocessing

import (
	"math"
	"sort"
	"strings"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Group filters and output precision
const (
	minRoleCount         = 3
	minPositionCount     = 10
	minExperienceCount   = 5
	statsDecimals        = 2
	salaryDecimals       = 0
	noTopCompany         = "N/A"
	topSkillsForSalary   = 10
	industrySalaryGroups = 15
	filterSalaryQuantile = 0.9
)

// sortedKeys returns the map keys in ascending order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// greaterNilLast orders two optional values descending, missing values last
func greaterNilLast(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}

type roleAccumulator struct {
	salaryMin  accumulator
	salaryMax  accumulator
	engagement accumulator
	minExp     accumulator
	apps       float64
	views      float64
}

// TopRoles returns statistics for the n most frequent titles.
// Count is the number of postings with a minimum salary; titles counted
// fewer than three times are dropped. Values are rounded to 2 decimals.
func (d *Dataset) TopRoles(n int) []domain.RoleStats {
	result := []domain.RoleStats{}
	if n <= 0 || d.Len() == 0 {
		return result
	}

	groups := make(map[string]*roleAccumulator)
	for i := range d.postings {
		p := &d.postings[i]
		if p.Title == "" {
			continue
		}
		acc, ok := groups[p.Title]
		if !ok {
			acc = &roleAccumulator{}
			groups[p.Title] = acc
		}
		acc.salaryMin.add(p.SalaryMinimum)
		acc.salaryMax.add(p.SalaryMaximum)
		acc.engagement.addValue(p.EngagementScore)
		acc.minExp.add(p.MinYearsExperience)
		acc.apps += p.Applications
		acc.views += p.Views
	}

	for _, title := range sortedKeys(groups) {
		acc := groups[title]
		if acc.salaryMin.count() < minRoleCount {
			continue
		}
		result = append(result, domain.RoleStats{
			Role:        title,
			SalaryMin:   roundPtr(acc.salaryMin.mean(), statsDecimals),
			Count:       acc.salaryMin.count(),
			SalaryMax:   roundPtr(acc.salaryMax.mean(), statsDecimals),
			Apps:        roundTo(acc.apps, statsDecimals),
			Views:       roundTo(acc.views, statsDecimals),
			Competition: roundPtr(acc.engagement.mean(), statsDecimals),
			MinExp:      roundPtr(acc.minExp.mean(), statsDecimals),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

type industryAccumulator struct {
	jobs       int
	salaryMin  accumulator
	salaryMax  accumulator
	engagement accumulator
	minExp     accumulator
	vacancies  float64
}

// IndustryStats returns statistics for every main category, most jobs first.
// Values are rounded to 2 decimals.
func (d *Dataset) IndustryStats() []domain.IndustryStats {
	result := []domain.IndustryStats{}
	if d.Len() == 0 {
		return result
	}

	groups := make(map[string]*industryAccumulator)
	for i := range d.postings {
		p := &d.postings[i]
		acc, ok := groups[p.MainCategory]
		if !ok {
			acc = &industryAccumulator{}
			groups[p.MainCategory] = acc
		}
		if p.Title != "" {
			acc.jobs++
		}
		acc.salaryMin.add(p.SalaryMinimum)
		acc.salaryMax.add(p.SalaryMaximum)
		acc.engagement.addValue(p.EngagementScore)
		acc.minExp.add(p.MinYearsExperience)
		acc.vacancies += p.Vacancies
	}

	for _, industry := range sortedKeys(groups) {
		acc := groups[industry]
		result = append(result, domain.IndustryStats{
			Industry:    industry,
			JobsCount:   acc.jobs,
			SalaryMin:   roundPtr(acc.salaryMin.mean(), statsDecimals),
			SalaryMax:   roundPtr(acc.salaryMax.mean(), statsDecimals),
			Vacancies:   roundTo(acc.vacancies, statsDecimals),
			Competition: roundPtr(acc.engagement.mean(), statsDecimals),
			MinExp:      roundPtr(acc.minExp.mean(), statsDecimals),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].JobsCount > result[j].JobsCount
	})
	return result
}

type positionAccumulator struct {
	salaryMin accumulator
	salaryMax accumulator
	average   accumulator
}

// SalaryByPosition returns salary benchmarks per position level with at
// least ten salaried postings, highest average salary first.
// Values are rounded to whole numbers.
func (d *Dataset) SalaryByPosition() []domain.PositionSalaryStats {
	result := []domain.PositionSalaryStats{}
	if d.Len() == 0 {
		return result
	}

	groups := make(map[string]*positionAccumulator)
	for i := range d.postings {
		p := &d.postings[i]
		acc, ok := groups[p.PositionLevel]
		if !ok {
			acc = &positionAccumulator{}
			groups[p.PositionLevel] = acc
		}
		acc.salaryMin.add(p.SalaryMinimum)
		acc.salaryMax.add(p.SalaryMaximum)
		acc.average.add(p.AverageSalary)
	}

	for _, position := range sortedKeys(groups) {
		acc := groups[position]
		if acc.salaryMin.count() < minPositionCount {
			continue
		}
		result = append(result, domain.PositionSalaryStats{
			Position:        position,
			SalaryMinAvg:    roundPtr(acc.salaryMin.mean(), salaryDecimals),
			SalaryMinMedian: roundPtr(acc.salaryMin.median(), salaryDecimals),
			Count:           acc.salaryMin.count(),
			SalaryMaxAvg:    roundPtr(acc.salaryMax.mean(), salaryDecimals),
			SalaryMaxMedian: roundPtr(acc.salaryMax.median(), salaryDecimals),
			AvgSalary:       roundPtr(acc.average.mean(), salaryDecimals),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return greaterNilLast(result[i].AvgSalary, result[j].AvgSalary)
	})
	return result
}

// SkillKeywords counts how many titles mention each vocabulary keyword,
// case-insensitively, and returns the n most frequent. A title counts at
// most once per keyword. Equal counts keep vocabulary order.
func (d *Dataset) SkillKeywords(n int) []domain.KeywordCount {
	result := []domain.KeywordCount{}
	if n <= 0 || d.Len() == 0 {
		return result
	}

	counts := d.keywordCounts()
	for i, keyword := range skillVocabulary {
		if counts[i] > 0 {
			result = append(result, domain.KeywordCount{Keyword: keyword, Count: counts[i]})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

func (d *Dataset) keywordCounts() []int {
	lowered := make([]string, len(skillVocabulary))
	for i, keyword := range skillVocabulary {
		lowered[i] = strings.ToLower(keyword)
	}

	counts := make([]int, len(skillVocabulary))
	for i := range d.postings {
		title := d.postings[i].Title
		if title == "" {
			continue
		}
		title = strings.ToLower(title)
		for k, keyword := range lowered {
			if strings.Contains(title, keyword) {
				counts[k]++
			}
		}
	}
	return counts
}

// SkillSalaries returns the average salary of postings mentioning each of
// the most frequent keywords, highest first.
func (d *Dataset) SkillSalaries(keywords []domain.KeywordCount) []domain.SkillSalary {
	result := []domain.SkillSalary{}
	if len(keywords) > topSkillsForSalary {
		keywords = keywords[:topSkillsForSalary]
	}

	for _, kw := range keywords {
		needle := strings.ToLower(kw.Keyword)
		var salary accumulator
		count := 0
		for i := range d.postings {
			p := &d.postings[i]
			if p.Title == "" || !strings.Contains(strings.ToLower(p.Title), needle) {
				continue
			}
			count++
			salary.add(p.AverageSalary)
		}
		if count == 0 {
			continue
		}
		result = append(result, domain.SkillSalary{
			Skill:     kw.Keyword,
			AvgSalary: salary.mean(),
			Count:     count,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return greaterNilLast(result[i].AvgSalary, result[j].AvgSalary)
	})
	return result
}

// MarketOverview returns headline statistics of the dataset
func (d *Dataset) MarketOverview() domain.MarketOverview {
	overview := domain.MarketOverview{
		TotalJobs:  d.Len(),
		TopCompany: noTopCompany,
	}
	if d.Len() == 0 {
		return overview
	}

	var salary, apps, views accumulator
	for i := range d.postings {
		p := &d.postings[i]
		salary.add(p.AverageSalary)
		apps.addValue(p.Applications)
		views.addValue(p.Views)
		overview.TotalVacancies += p.Vacancies
	}

	overview.MedianSalary = salary.median()
	overview.AvgSalary = salary.mean()
	overview.AvgApplications = apps.mean()
	overview.AvgViews = views.mean()

	companies := d.valueCounts(func(p *domain.Posting) string { return p.Company })
	if len(companies) > 0 {
		overview.TopCompany = companies[0].Value
	}
	return overview
}

// valueCounts tallies non-empty values, most frequent first.
// Equal counts keep first-seen order.
func (d *Dataset) valueCounts(value func(p *domain.Posting) string) []domain.ValueCount {
	result := []domain.ValueCount{}
	index := make(map[string]int)
	for i := range d.postings {
		v := value(&d.postings[i])
		if v == "" {
			continue
		}
		if pos, ok := index[v]; ok {
			result[pos].Count++
			continue
		}
		index[v] = len(result)
		result = append(result, domain.ValueCount{Value: v, Count: 1})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// EmploymentDistribution counts postings per employment type
func (d *Dataset) EmploymentDistribution() []domain.ValueCount {
	if d.Len() == 0 {
		return []domain.ValueCount{}
	}
	return d.valueCounts(func(p *domain.Posting) string { return p.EmploymentType })
}

// TopCompanies returns the n companies with the most postings
func (d *Dataset) TopCompanies(n int) []domain.ValueCount {
	if n <= 0 || d.Len() == 0 {
		return []domain.ValueCount{}
	}
	result := d.valueCounts(func(p *domain.Posting) string { return p.Company })
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// ExperienceDistribution counts postings per experience bucket in bucket order.
// Postings without a bucket are not counted; empty buckets are omitted.
func (d *Dataset) ExperienceDistribution() []domain.ValueCount {
	counts := make(map[domain.ExperienceLevel]int)
	for i := range d.postings {
		if level := d.postings[i].ExpCategory; level != domain.ExperienceUnknown {
			counts[level]++
		}
	}

	result := []domain.ValueCount{}
	for _, level := range domain.ExperienceLevels() {
		if counts[level] > 0 {
			result = append(result, domain.ValueCount{Value: string(level), Count: counts[level]})
		}
	}
	return result
}

// SalaryByExperience summarizes average salary per experience bucket for
// buckets with at least five salaried postings. Values are rounded to whole numbers.
func (d *Dataset) SalaryByExperience() []domain.ExperienceSalaryStats {
	groups := make(map[domain.ExperienceLevel]*accumulator)
	for i := range d.postings {
		p := &d.postings[i]
		if p.ExpCategory == domain.ExperienceUnknown {
			continue
		}
		acc, ok := groups[p.ExpCategory]
		if !ok {
			acc = &accumulator{}
			groups[p.ExpCategory] = acc
		}
		acc.add(p.AverageSalary)
	}

	result := []domain.ExperienceSalaryStats{}
	for _, level := range domain.ExperienceLevels() {
		acc, ok := groups[level]
		if !ok || acc.count() < minExperienceCount {
			continue
		}
		result = append(result, domain.ExperienceSalaryStats{
			Level:  level,
			Mean:   roundPtr(acc.mean(), salaryDecimals),
			Median: roundPtr(acc.median(), salaryDecimals),
			Min:    roundPtr(quantile(acc.values, 0), salaryDecimals),
			Max:    roundPtr(quantile(acc.values, 1), salaryDecimals),
			Count:  acc.count(),
		})
	}
	return result
}

// IndustrySalaries returns the fifteen main categories with the highest mean
// average salary. Values are rounded to whole numbers.
func (d *Dataset) IndustrySalaries() []domain.IndustrySalary {
	result := []domain.IndustrySalary{}
	if d.Len() == 0 {
		return result
	}

	groups := make(map[string]*positionAccumulator)
	for i := range d.postings {
		p := &d.postings[i]
		acc, ok := groups[p.MainCategory]
		if !ok {
			acc = &positionAccumulator{}
			groups[p.MainCategory] = acc
		}
		acc.salaryMin.add(p.SalaryMinimum)
		acc.salaryMax.add(p.SalaryMaximum)
		acc.average.add(p.AverageSalary)
	}

	for _, industry := range sortedKeys(groups) {
		acc := groups[industry]
		result = append(result, domain.IndustrySalary{
			Industry:      industry,
			AverageSalary: roundPtr(acc.average.mean(), salaryDecimals),
			SalaryMin:     roundPtr(acc.salaryMin.mean(), salaryDecimals),
			SalaryMax:     roundPtr(acc.salaryMax.mean(), salaryDecimals),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return greaterNilLast(result[i].AverageSalary, result[j].AverageSalary)
	})
	if len(result) > industrySalaryGroups {
		result = result[:industrySalaryGroups]
	}
	return result
}

// SalaryHistogram splits the range of non-missing average salaries into
// equal-width bins. The last bin includes its upper edge.
func (d *Dataset) SalaryHistogram(bins int) []domain.HistogramBin {
	result := []domain.HistogramBin{}
	if bins <= 0 {
		return result
	}

	var salary accumulator
	for i := range d.postings {
		salary.add(d.postings[i].AverageSalary)
	}
	if salary.count() == 0 {
		return result
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range salary.values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	result = make([]domain.HistogramBin, bins)
	for i := range result {
		result[i].Lower = lo + float64(i)*width
		result[i].Upper = lo + float64(i+1)*width
	}
	result[bins-1].Upper = hi

	for _, v := range salary.values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}

// FilterOptions lists the distinct values available for filtering together
// with the default salary slider bounds.
func (d *Dataset) FilterOptions() domain.FilterOptions {
	industries := make(map[string]struct{})
	positions := make(map[string]struct{})
	employment := make(map[string]struct{})
	var salaryMax accumulator

	for i := range d.postings {
		p := &d.postings[i]
		industries[p.MainCategory] = struct{}{}
		positions[p.PositionLevel] = struct{}{}
		employment[p.EmploymentType] = struct{}{}
		salaryMax.add(p.SalaryMaximum)
	}

	return domain.FilterOptions{
		Industries:       sortedKeys(industries),
		PositionLevels:   sortedKeys(positions),
		EmploymentTypes:  sortedKeys(employment),
		ExperienceLevels: domain.ExperienceLevels(),
		SalaryMaximum:    quantile(salaryMax.values, 1),
		SalaryMaximumP90: quantile(salaryMax.values, filterSalaryQuantile),
	}
}
