package prompt

import (
	"fmt"
	"strings"
)

// FridgeScan asks the oracle to identify ingredients in a photo
func FridgeScan(numPeople int) string {
	return fmt.Sprintf("Identify all the ingredients you can see and suggest 3 recipes for %d people. "+
		"For each recipe: list the name, required ingredients with quantities, and step-by-step instructions. "+
		"Be specific and practical.", numPeople)
}

// RecipeSearch asks for a full recipe for a named dish or ingredient
func RecipeSearch(query string, numPeople int) string {
	return fmt.Sprintf(`Full recipe for "%s" scaled for %d people. Include:
1. Recipe name and description
2. Prep time and cook time
3. Exact ingredients with quantities
4. Step-by-step cooking instructions
5. A complete SHOPPING LIST of items to buy`, query, numPeople)
}

// ChefsChoice asks for a suggestion matching a vibe, cuisine and meal type
func ChefsChoice(mealType, cuisine, vibe string, numPeople int) string {
	return fmt.Sprintf(`Suggest a %s %s %s for %d people. Include:
1. Creative dish name and description
2. Why this is perfect for the vibe
3. Complete ingredient list with exact quantities
4. Step-by-step cooking instructions
5. A SHOPPING LIST of items needed`, vibe, cuisine, mealType, numPeople)
}

// MealPlan asks for a day-by-day plan with "**Day N**" headers, which the
// calendar exporter relies on.
func MealPlan(meals []string, timeframe, dietGoal string, numPeople int) string {
	return fmt.Sprintf(`Create a %s meal plan for %d people focused on %s.
ONLY plan: %s.
FOR EACH DAY:
1. List the meals with names.
2. Under each meal, list exact INGREDIENTS and QUANTITIES.
3. Provide cooking time.
Use headers like **Day 1**, **Day 2**, etc.
End with a MASTER SHOPPING LIST organized by category (Produce, Dairy, Meat, Pantry).`,
		timeframe, numPeople, dietGoal, strings.Join(meals, ", "))
}
