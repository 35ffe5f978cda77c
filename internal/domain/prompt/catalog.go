// Package prompt builds the instructions sent to the oracle for each screen
// and owns the option catalogs those screens offer.
package prompt

import "slices"

// Meal types offered by the chef's choice screen
var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Cuisines offered by the chef's choice screen
var Cuisines = []string{"Italian", "Japanese", "Mexican", "Mediterranean", "Indian", "American", "Chinese", "French"}

// Vibes offered by the chef's choice screen
var Vibes = []string{"Greasy & Indulgent", "Balanced", "Healthy & Light"}

// PlanMeals are the meals a plan can cover
var PlanMeals = []string{"Breakfast", "Lunch", "Dinner"}

// Timeframes a plan can span
var Timeframes = []string{"Weekly (7 Days)", "Monthly (4 Weeks)"}

// DietGoals a plan can focus on
var DietGoals = []string{"Quick & Easy", "High Protein", "Budget Friendly", "Vegetarian", "Keto"}

// Suggestions are the quick picks on the recipe search screen
var Suggestions = []string{"Pasta Carbonara", "Chicken Stir Fry", "Avocado Toast", "Beef Tacos"}

// Defaults preselected on each screen
const (
	DefaultMealType  = "Dinner"
	DefaultCuisine   = "Italian"
	DefaultVibe      = "Balanced"
	DefaultTimeframe = "Weekly (7 Days)"
	DefaultDietGoal  = "Quick & Easy"
)

// DefaultPlanMeals returns a fresh copy of the preselected plan meals
func DefaultPlanMeals() []string {
	return []string{"Lunch", "Dinner"}
}

// Catalog groups every option list for clients that render the pickers
type Catalog struct {
	MealTypes        []string `json:"meal_types"`
	Cuisines         []string `json:"cuisines"`
	Vibes            []string `json:"vibes"`
	PlanMeals        []string `json:"plan_meals"`
	Timeframes       []string `json:"timeframes"`
	DietGoals        []string `json:"diet_goals"`
	Suggestions      []string `json:"suggestions"`
	DefaultMealType  string   `json:"default_meal_type"`
	DefaultCuisine   string   `json:"default_cuisine"`
	DefaultVibe      string   `json:"default_vibe"`
	DefaultPlanMeals []string `json:"default_plan_meals"`
	DefaultTimeframe string   `json:"default_timeframe"`
	DefaultDietGoal  string   `json:"default_diet_goal"`
}

// Options returns the full catalog
func Options() Catalog {
	return Catalog{
		MealTypes:        slices.Clone(MealTypes),
		Cuisines:         slices.Clone(Cuisines),
		Vibes:            slices.Clone(Vibes),
		PlanMeals:        slices.Clone(PlanMeals),
		Timeframes:       slices.Clone(Timeframes),
		DietGoals:        slices.Clone(DietGoals),
		Suggestions:      slices.Clone(Suggestions),
		DefaultMealType:  DefaultMealType,
		DefaultCuisine:   DefaultCuisine,
		DefaultVibe:      DefaultVibe,
		DefaultPlanMeals: DefaultPlanMeals(),
		DefaultTimeframe: DefaultTimeframe,
		DefaultDietGoal:  DefaultDietGoal,
	}
}

// SelectPlanMeals keeps the selected meals in the order they were picked,
// dropping repeats and labels outside the catalog
func SelectPlanMeals(selected []string) []string {
	meals := make([]string, 0, len(selected))
	for _, m := range selected {
		if slices.Contains(PlanMeals, m) && !slices.Contains(meals, m) {
			meals = append(meals, m)
		}
	}
	return meals
}
