package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PostingsCSV is a small job postings extract in the published column layout.
// It carries a UTF-8 BOM, a missing salary and an unparseable category blob.
const PostingsCSV = "\ufeff" + `title,postedCompany_name,categories,salary_minimum,salary_maximum,average_salary,minimumYearsExperience,positionLevels,employmentTypes,metadata_totalNumberJobApplication,metadata_totalNumberOfView,numberOfVacancies,metadata_newPostingDate
Data Analyst,Acme Pte Ltd,"[{""id"":21,""category"":""Information Technology""}]",4000,6000,5000,2,Executive,Permanent,10,200,1,2024-03-01
Data Analyst,Beta Bank,"[{""id"":4,""category"":""Banking and Finance""}]",5000,7000,6000,4,Senior Executive,Full Time,20,100,2,2024-03-02
Data Analyst,Gamma Labs,"[{""id"":21,""category"":""Information Technology""}]",3000,5000,,1,Executive,Contract,,,,2024-03-03
Python Developer,Acme Pte Ltd,"[{""id"":21,""category"":""Information Technology""}]",6000,9000,7500,6,Professional,Permanent,5,50,1,2024-03-04
Cook,Delta Foods,not json,,,,0,Non-executive,Part Time,1,10,3,
`

// WritePostingsCSV writes PostingsCSV into a temporary directory and returns its path
func WritePostingsCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "postings.csv")
	if err := os.WriteFile(path, []byte(PostingsCSV), 0o600); err != nil {
		t.Fatalf("write postings fixture: %v", err)
	}
	return path
}
