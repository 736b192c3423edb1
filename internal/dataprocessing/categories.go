package dataprocessing

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kurniaw/sg-job-market-insight/pkg/contracts/domain"
)

// categorySeparator joins the category names of a multi-category posting
const categorySeparator = ", "

// ExtractMainCategory turns the raw categories cell into a display label.
// The cell holds a JSON list of objects such as [{"id":1,"category":"Engineering"}].
// Objects without a "category" key contribute "Others". Anything that is not a
// non-empty list of objects with string names yields "Others".
func ExtractMainCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !gjson.Valid(raw) {
		return domain.OthersCategory
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return domain.OthersCategory
	}

	entries := parsed.Array()
	if len(entries) == 0 {
		return domain.OthersCategory
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsObject() {
			return domain.OthersCategory
		}
		name := entry.Get("category")
		switch {
		case !name.Exists():
			names = append(names, domain.OthersCategory)
		case name.Type == gjson.String:
			names = append(names, name.Str)
		default:
			return domain.OthersCategory
		}
	}

	return strings.Join(names, categorySeparator)
}
