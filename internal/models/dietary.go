package models

import "slices"

var dietaryRestrictions = []string{
	"Gluten-Free", "Dairy-Free", "Vegan", "Pescatarian",
	"Nut-Free", "Kosher", "Halal", "Low-Carb", "Organic", "Locally Sourced",
}

// DietaryRestrictions returns a copy of the configured dietary restriction list
func DietaryRestrictions() []string {
	return slices.Clone(dietaryRestrictions)
}
