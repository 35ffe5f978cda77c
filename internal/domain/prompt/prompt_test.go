package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFridgeScan(t *testing.T) {
	p := FridgeScan(4)

	assert.True(t, strings.HasPrefix(p, "Identify all the ingredients you can see and suggest 3 recipes for 4 people."))
	assert.True(t, strings.HasSuffix(p, "Be specific and practical."))
}

func TestRecipeSearch(t *testing.T) {
	p := RecipeSearch("Beef Tacos", 2)

	assert.True(t, strings.HasPrefix(p, "Full recipe for \"Beef Tacos\" scaled for 2 people. Include:\n1. "))
	assert.Contains(t, strings.ToUpper(p), "SHOPPING LIST")
}

func TestChefsChoice(t *testing.T) {
	p := ChefsChoice("Dinner", "Italian", "Balanced", 3)

	assert.True(t, strings.HasPrefix(p, "Suggest a Balanced Italian Dinner for 3 people. Include:\n"))
	assert.True(t, strings.HasSuffix(p, "5. A SHOPPING LIST of items needed"))
}

func TestMealPlan(t *testing.T) {
	p := MealPlan([]string{"Lunch", "Dinner"}, "Weekly (7 Days)", "Keto", 2)

	lines := strings.Split(p, "\n")
	assert.Equal(t, "Create a Weekly (7 Days) meal plan for 2 people focused on Keto.", lines[0])
	assert.Equal(t, "ONLY plan: Lunch, Dinner.", lines[1])
	assert.Contains(t, p, "**Day 1**")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "End with a MASTER SHOPPING LIST"))
}

func TestOptions(t *testing.T) {
	catalog := Options()

	assert.Contains(t, catalog.MealTypes, catalog.DefaultMealType)
	assert.Contains(t, catalog.Cuisines, catalog.DefaultCuisine)
	assert.Contains(t, catalog.Vibes, catalog.DefaultVibe)
	assert.Contains(t, catalog.Timeframes, catalog.DefaultTimeframe)
	assert.Contains(t, catalog.DietGoals, catalog.DefaultDietGoal)
	assert.Equal(t, []string{"Lunch", "Dinner"}, catalog.DefaultPlanMeals)

	catalog.Cuisines[0] = "Changed"
	assert.Equal(t, "Italian", Cuisines[0])
}

func TestSelectPlanMeals(t *testing.T) {
	assert.Equal(t, []string{"Dinner", "Breakfast"}, SelectPlanMeals([]string{"Dinner", "Breakfast", "Dinner"}))
	assert.Equal(t, []string{"Lunch", "Dinner"}, SelectPlanMeals([]string{"Lunch", "Brunch", "Dinner"}))
	assert.Empty(t, SelectPlanMeals([]string{"Brunch"}))
}
