package plaid

// Маппинг таксономии Plaid на внутренний набор категорий.
var categoryMap = map[string]string{
	"Food and Drink": "Restaurants",
	"Coffee Shops":   "Coffee",
	"Fast Food":      "Restaurants",
	"Gas Stations":   "Gas",
	"Groceries":      "Groceries",
	"Transportation": "Transportation",
	"Entertainment":  "Entertainment",
	"Shopping":       "Shopping",
	"Healthcare":     "Healthcare",
	"Education":      "Education",
	"Travel":         "Travel",
	"Utilities":      "Utilities",
	"Insurance":      "Insurance",
	"Fees":           "Fees",
}

// NormalizeCategory сводит иерархию категорий Plaid к внутренней категории
// по первому (основному) элементу, с запасным значением Other.
func NormalizeCategory(plaidCategory []string) string {
	if len(plaidCategory) == 0 {
		return "Other"
	}
	if category, ok := categoryMap[plaidCategory[0]]; ok {
		return category
	}
	return "Other"
}
