package tariff

import "strings"

// mealPlanRules maps vendor meal-plan spellings to canonical codes, in
// priority order. The all-inclusive "AI" variants must be tested before the
// base codes: "MAPAI" contains both "AP" and "MAP", and "CPAI" contains
// "CP", so a naive base-first scan would misclassify them.
var mealPlanRules = []struct {
	token string
	code  string
}{
	{"CPAI", "CP"},
	{"MAPAI", "MAP"},
	{"APAI", "AP"},
	{"EPAI", "EP"},
	{"CP", "CP"},
	{"MAP", "MAP"},
	{"AP", "AP"},
	{"EP", "EP"},
}

// NormalizeMealPlan maps a free-text meal-plan token to one of the
// canonical codes CP, MAP, AP, EP. Matching is a case-insensitive substring
// test, first rule wins. Unrecognized tokens (including the empty string)
// pass through unchanged, so the function is idempotent.
func NormalizeMealPlan(token string) string {
	upper := strings.ToUpper(token)
	for _, r := range mealPlanRules {
		if strings.Contains(upper, r.token) {
			return r.code
		}
	}
	return token
}
