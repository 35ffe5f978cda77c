// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// MarkdownFactory produces oracle-style markdown documents
type MarkdownFactory struct {
	faker *gofakeit.Faker
}

// NewMarkdownFactory creates a new markdown factory with seeded faker
func NewMarkdownFactory(seed int64) *MarkdownFactory {
	return &MarkdownFactory{
		faker: gofakeit.New(seed),
	}
}

// Ingredients returns n fake ingredient names
func (f *MarkdownFactory) Ingredients(n int) []string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, f.faker.Vegetable())
	}
	return items
}

// Recipe returns a single recipe document with a heading, lists and a
// trailing shopping list section
func (f *MarkdownFactory) Recipe() string {
	return NewDocumentBuilder(f.faker).
		Heading(f.faker.Dessert()).
		Paragraph(f.faker.Sentence(8)).
		Bullets(f.Ingredients(3)...).
		Steps(f.faker.Sentence(5), f.faker.Sentence(6)).
		ShoppingList(f.Ingredients(2)...).
		Build()
}

// MealPlan returns a plan document with the given number of day sections
func (f *MarkdownFactory) MealPlan(days int) string {
	b := NewDocumentBuilder(f.faker).Paragraph("Here is your plan.")
	for day := 1; day <= days; day++ {
		b.Day(day, f.faker.Lunch(), f.faker.Dinner())
	}
	return b.ShoppingList(f.Ingredients(4)...).Build()
}

// DocumentBuilder provides a fluent interface for building markdown documents
type DocumentBuilder struct {
	faker *gofakeit.Faker
	lines []string
}

// NewDocumentBuilder creates an empty document builder
func NewDocumentBuilder(faker *gofakeit.Faker) *DocumentBuilder {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	return &DocumentBuilder{faker: faker}
}

// Heading adds a level two heading
func (b *DocumentBuilder) Heading(text string) *DocumentBuilder {
	b.lines = append(b.lines, "## "+text)
	return b
}

// Subheading adds a level three heading
func (b *DocumentBuilder) Subheading(text string) *DocumentBuilder {
	b.lines = append(b.lines, "### "+text)
	return b
}

// Paragraph adds a free text line
func (b *DocumentBuilder) Paragraph(text string) *DocumentBuilder {
	b.lines = append(b.lines, text)
	return b
}

// Bullets adds one bullet line per item
func (b *DocumentBuilder) Bullets(items ...string) *DocumentBuilder {
	for _, item := range items {
		b.lines = append(b.lines, "- "+item)
	}
	return b
}

// Steps adds a numbered list
func (b *DocumentBuilder) Steps(items ...string) *DocumentBuilder {
	for i, item := range items {
		b.lines = append(b.lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return b
}

// Blank adds an empty line
func (b *DocumentBuilder) Blank() *DocumentBuilder {
	b.lines = append(b.lines, "")
	return b
}

// Day adds a bold day marker followed by one bullet per dish
func (b *DocumentBuilder) Day(n int, dishes ...string) *DocumentBuilder {
	b.lines = append(b.lines, fmt.Sprintf("**Day %d**", n))
	return b.Bullets(dishes...)
}

// ShoppingList adds the shopping list section
func (b *DocumentBuilder) ShoppingList(items ...string) *DocumentBuilder {
	b.lines = append(b.lines, "", "### SHOPPING LIST")
	return b.Bullets(items...)
}

// Build joins the lines into a document
func (b *DocumentBuilder) Build() string {
	return strings.Join(b.lines, "\n")
}

// Quick factory functions for common test scenarios

// FakeAPIKey returns a plausible looking API key
func FakeAPIKey() string {
	return "AIza" + gofakeit.Password(true, true, true, false, false, 35)
}

// SimpleRecipe returns a short recipe without a shopping list
func SimpleRecipe() string {
	return NewDocumentBuilder(nil).
		Heading("Tomato Soup").
		Bullets("2 tomatoes", "1 onion").
		Steps("Chop everything", "Simmer for 20 minutes").
		Build()
}

// SimpleMealPlan returns a two day plan with a shopping list
func SimpleMealPlan() string {
	return NewDocumentBuilder(nil).
		Day(1, "Oatmeal", "Lentil soup").
		Day(2, "Eggs", "Grilled fish").
		ShoppingList("oats", "lentils", "fish").
		Build()
}
