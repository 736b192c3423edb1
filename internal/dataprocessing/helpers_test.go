package dataprocessing

import (
	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

func ptr(v float64) *float64 {
	return &v
}

// job builds a posting with sensible defaults for aggregation tests
func job(title string, opts ...func(*domain.Posting)) domain.Posting {
	p := domain.Posting{
		Title:          title,
		Company:        "Acme Pte Ltd",
		PositionLevel:  "Executive",
		EmploymentType: "Full Time",
		CategoriesRaw:  `[{"id":21,"category":"Information Technology"}]`,
		Vacancies:      1,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withSalary(min, max float64) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.SalaryMinimum = ptr(min)
		p.SalaryMaximum = ptr(max)
	}
}

func withMinSalary(min float64) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.SalaryMinimum = ptr(min)
	}
}

func withCategories(raw string) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.CategoriesRaw = raw
	}
}

func withPosition(level string) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.PositionLevel = level
	}
}

func withEmployment(kind string) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.EmploymentType = kind
	}
}

func withCompany(name string) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.Company = name
	}
}

func withExperience(years float64) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.MinYearsExperience = ptr(years)
	}
}

func withEngagement(applications, views, vacancies float64) func(*domain.Posting) {
	return func(p *domain.Posting) {
		p.Applications = applications
		p.Views = views
		p.Vacancies = vacancies
	}
}

// sampleCSV covers well-formed rows and every kind of malformed cell
const sampleCSV = "\ufefftitle,postedCompany_name,salary_minimum,salary_maximum,average_salary,positionLevels,employmentTypes,categories,metadata_newPostingDate,metadata_totalNumberJobApplication,metadata_totalNumberOfView,numberOfVacancies,minimumYearsExperience\n" +
	`Data Analyst,Acme Pte Ltd,3000,5000,,Executive,Full Time,"[{""id"":21,""category"":""Information Technology""},{""id"":9,""category"":""Banking and Finance""}]",2023-05-01,10,90,2,3` + "\n" +
	`Data Analyst,Globex,abc,4000,,,Permanent,not json,garbage,,,,` + "\n" +
	`Software Engineer,Acme Pte Ltd,6000,9000,7600,Professional,,"[]",2023-05-02T08:30:00Z,5,15,0,12` + "\n"
