package dataprocessing

// skillVocabulary is the fixed list of skill and role keywords scanned in
// posting titles. Order breaks ties between equally frequent keywords.
var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "SQL", "C#", "C++", "PHP", "React", "Node.js",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "Linux", "Windows",
	"Data Science", "Machine Learning", "AI", "Analytics", "BI", "SAP", "Salesforce",
	"Oracle", "MySQL", "MongoDB", ".NET", "Angular", "Vue", "Django", "Flask",
	"Tableau", "Power BI", "Excel", "VBA", "R", "Scala", "Golang", "Rust",
	"DevOps", "Cloud", "Cybersecurity", "Security", "Network", "System Admin",
	"Manager", "Lead", "Engineer", "Developer", "Analyst", "Consultant",
	"Accountant", "Auditor", "Finance", "Marketing", "Sales", "HR", "Recruiter",
	"Project Manager", "Product Manager", "Business Analyst", "QA", "Testing",
}

// SkillVocabulary returns a copy of the keyword list used by SkillKeywords
func SkillVocabulary() []string {
	out := make([]string, len(skillVocabulary))
	copy(out, skillVocabulary)
	return out
}
