// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/chefaid/chefaid/internal/domain/markdown"
	"github.com/chefaid/chefaid/internal/domain/prompt"
	"github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/google/uuid"
)

// Operation names the screen action that produced a result
type Operation string

const (
	OperationFridgeScan  Operation = "fridge_scan"
	OperationRecipe      Operation = "recipe"
	OperationChefsChoice Operation = "chefs_choice"
	OperationMealPlan    Operation = "meal_plan"
)

// KitchenService is the contract every screen drives
type KitchenService interface {
	ScanFridge(ctx context.Context, cmd ScanFridgeCommand) (*Result, error)
	FindRecipe(ctx context.Context, cmd FindRecipeCommand) (*Result, error)
	SurpriseMe(ctx context.Context, cmd SurpriseMeCommand) (*Result, error)
	PlanMeals(ctx context.Context, cmd PlanMealsCommand) (*Result, error)
	ExportCalendar(ctx context.Context, cmd ExportCalendarCommand) (*CalendarDocument, error)
	Present(text string) *Presentation
	ShareText(text string) ShareMessage
	Options() prompt.Catalog
}

// SettingsService manages the stored preferences
type SettingsService interface {
	Load(ctx context.Context) (settings.Settings, error)
	Save(ctx context.Context, cmd SaveSettingsCommand) (settings.Settings, error)
	SetNumPeople(ctx context.Context, n int) (settings.Settings, error)
	AdjustPeople(ctx context.Context, delta int) (settings.Settings, error)
	ClearAPIKey(ctx context.Context) error
}

// ScanFridgeCommand carries the fridge photo
type ScanFridgeCommand struct {
	Image    []byte `validate:"required"`
	MIMEType string `validate:"omitempty,startswith=image/"`
}

// FindRecipeCommand carries the dish or ingredient to cook
type FindRecipeCommand struct {
	Query string `json:"query" validate:"max=500"`
}

// SurpriseMeCommand selects the chef's choice options; empty fields use defaults
type SurpriseMeCommand struct {
	MealType string `json:"meal_type" validate:"omitempty,meal_type"`
	Cuisine  string `json:"cuisine" validate:"omitempty,cuisine"`
	Vibe     string `json:"vibe" validate:"omitempty,vibe"`
}

// PlanMealsCommand selects what the plan covers; empty timeframe and goal use defaults
type PlanMealsCommand struct {
	Meals     []string `json:"meals" validate:"dive,plan_meal"`
	Timeframe string   `json:"timeframe" validate:"omitempty,timeframe"`
	DietGoal  string   `json:"diet_goal" validate:"omitempty,diet_goal"`
}

// ExportCalendarCommand converts a generated plan into a calendar.
// A zero Reference means now.
type ExportCalendarCommand struct {
	Text      string    `json:"text"`
	Meals     []string  `json:"meals" validate:"dive,plan_meal"`
	Reference time.Time `json:"reference"`
}

// SaveSettingsCommand is an explicit save from the settings screen
type SaveSettingsCommand struct {
	APIKey    string `json:"api_key"`
	NumPeople int    `json:"num_people" validate:"min=1,max=10"`
}

// Presentation is generated text prepared for display and sharing
type Presentation struct {
	Blocks       []markdown.Block `json:"blocks"`
	ShoppingList *string          `json:"shopping_list,omitempty"`
	SMSLink      *string          `json:"sms_link,omitempty"`
}

// Result is the outcome of one oracle request
type Result struct {
	ID          uuid.UUID `json:"id"`
	Operation   Operation `json:"operation"`
	Text        string    `json:"text"`
	NumPeople   int       `json:"num_people"`
	Meals       []string  `json:"meals,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Presentation
}

// CalendarDocument is an exported ICS file. Location is set when the
// document was also written to the export directory.
type CalendarDocument struct {
	FileName string  `json:"file_name"`
	MIMEType string  `json:"mime_type"`
	Content  string  `json:"content"`
	Events   int     `json:"events"`
	Location string  `json:"location,omitempty"`
	Notice   *Notice `json:"notice,omitempty"`
}

// Notice is an informational alert shown after an action succeeds
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ShareMessage is what the share sheet receives
type ShareMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
