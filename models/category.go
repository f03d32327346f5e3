package models

import "strings"

// Category is the icon and color metadata a budget or goal is created from.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// BudgetCategories is the catalog offered when adding a budget.
var BudgetCategories = []Category{
	{Name: "Transport", Icon: "train-car", Color: "#9B51E0"},
	{Name: "Restaurant", Icon: "silverware", Color: "#4A90E2"},
	{Name: "Cloth", Icon: "hanger", Color: "#27AE60"},
	{Name: "Grocery", Icon: "cart", Color: "#219653"},
	{Name: "Medication", Icon: "medical-bag", Color: "#2F80ED"},
	{Name: "Bill", Icon: "file-document", Color: "#F2994A"},
	{Name: "Beauty", Icon: "lipstick", Color: "#EB5757"},
	{Name: "Entertainment", Icon: "gamepad-variant", Color: "#6FCF97"},
}

// GoalCategories is the catalog offered when adding a savings goal.
var GoalCategories = []Category{
	{Name: "Buy furniture", Icon: "sofa", Color: "#EB5757"},
	{Name: "Vacation", Icon: "airplane", Color: "#F2C94C"},
	{Name: "Graduation", Icon: "school", Color: "#2F80ED"},
	{Name: "Buy boat", Icon: "sail-boat", Color: "#56CCF2"},
	{Name: "Buy house", Icon: "home", Color: "#F2994A"},
}

// FindCategory looks a category up by name, case-insensitively.
func FindCategory(catalog []Category, name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range catalog {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}
