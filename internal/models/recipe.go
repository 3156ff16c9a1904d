package models

// IngredientCount is the number of ingredients every recipe request must carry
const IngredientCount = 3

// RecipeRequest is a single form submission
type RecipeRequest struct {
	Ingredients  []string `json:"ingredients" validate:"len=3"`
	Cuisine      string   `json:"cuisine"`
	Restrictions []string `json:"restrictions"`
	Language     string   `json:"language"`
}

// RecipeResult holds either the generated recipe markup or an error message, never both
type RecipeResult struct {
	Recipe string
	Err    string
}

// Failed reports whether the result carries an error message
func (r RecipeResult) Failed() bool {
	return r.Err != ""
}

// Text returns whichever of the recipe or the error message is populated
func (r RecipeResult) Text() string {
	if r.Failed() {
		return r.Err
	}
	return r.Recipe
}
