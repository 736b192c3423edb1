package dataprocessing

import (
	"strings"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// Filter returns a new dataset with the postings that satisfy every set
// criterion. Industries match as case-insensitive substrings of the main
// category, any one of them being enough. The salary range is inclusive
// and excludes postings without an average salary.
func (d *Dataset) Filter(c domain.FilterCriteria) *Dataset {
	match := newMatcher(c)
	out := make([]domain.Posting, 0, d.Len())
	for i := range d.postings {
		if match.matches(&d.postings[i]) {
			out = append(out, d.postings[i])
		}
	}
	return newDataset(out)
}

type matcher struct {
	titles      map[string]struct{}
	industries  []string
	salaryRange *domain.SalaryRange
	experience  map[domain.ExperienceLevel]struct{}
	positions   map[string]struct{}
	employment  map[string]struct{}
}

func newMatcher(c domain.FilterCriteria) matcher {
	m := matcher{
		titles:      toSet(c.Titles),
		salaryRange: c.SalaryRange,
		positions:   toSet(c.PositionLevels),
		employment:  toSet(c.EmploymentTypes),
	}
	for _, industry := range c.Industries {
		m.industries = append(m.industries, strings.ToLower(industry))
	}
	if len(c.ExperienceLevels) > 0 {
		m.experience = make(map[domain.ExperienceLevel]struct{}, len(c.ExperienceLevels))
		for _, level := range c.ExperienceLevels {
			m.experience[level] = struct{}{}
		}
	}
	return m
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (m matcher) matches(p *domain.Posting) bool {
	if m.titles != nil {
		if _, ok := m.titles[p.Title]; !ok {
			return false
		}
	}
	if len(m.industries) > 0 && !m.matchesIndustry(p.MainCategory) {
		return false
	}
	if m.salaryRange != nil {
		if p.AverageSalary == nil {
			return false
		}
		if *p.AverageSalary < m.salaryRange.Min || *p.AverageSalary > m.salaryRange.Max {
			return false
		}
	}
	if m.experience != nil {
		if _, ok := m.experience[p.ExpCategory]; !ok {
			return false
		}
	}
	if m.positions != nil {
		if _, ok := m.positions[p.PositionLevel]; !ok {
			return false
		}
	}
	if m.employment != nil {
		if _, ok := m.employment[p.EmploymentType]; !ok {
			return false
		}
	}
	return true
}

func (m matcher) matchesIndustry(category string) bool {
	category = strings.ToLower(category)
	for _, industry := range m.industries {
		if strings.Contains(category, industry) {
			return true
		}
	}
	return false
}
