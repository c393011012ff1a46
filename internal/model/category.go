package model

// Category is a static spending/income category. The list is compiled in,
// shared by all users and never persisted.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// DefaultCategories is the fixed category set offered to every user.
var DefaultCategories = []Category{
	{ID: "cat-1", Name: "Dining", Icon: "utensils", Color: "#ef4444"},
	{ID: "cat-2", Name: "Transport", Icon: "bus", Color: "#3b82f6"},
	{ID: "cat-3", Name: "Salary", Icon: "wallet", Color: "#10b981"},
	{ID: "cat-4", Name: "Shopping", Icon: "shopping-bag", Color: "#f59e0b"},
	{ID: "cat-5", Name: "Housing", Icon: "home", Color: "#8b5cf6"},
	{ID: "cat-6", Name: "Other", Icon: "more-horizontal", Color: "#64748b"},
}

// CategoryByID returns the category with the given id, or nil.
func CategoryByID(id string) *Category {
	for i := range DefaultCategories {
		if DefaultCategories[i].ID == id {
			return &DefaultCategories[i]
		}
	}
	return nil
}
