// Package kitchen provides the application layer behind every screen that
// talks to the text generation oracle
package kitchen

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chefaid/chefaid/internal/domain/calendar"
	"github.com/chefaid/chefaid/internal/domain/markdown"
	"github.com/chefaid/chefaid/internal/domain/prompt"
	"github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/domain/shopping"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// ShareTitle is the title handed to the share sheet
	ShareTitle = "My Chef Aid Meal Plan"
	// ShareMaxChars bounds the shared text
	ShareMaxChars = 2000

	oracleName = "gemini"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Precondition alerts, raised before any oracle request
func errAPIKeyRequired() error {
	return apperrors.NewPreconditionError("API Key Required", "Please add your Gemini API key in Settings.")
}

func errNoImage() error {
	return apperrors.NewPreconditionError("No Image", "Please take or upload a photo first.")
}

func errNoQuery() error {
	return apperrors.NewPreconditionError("What are you craving?", "Please enter a dish or ingredient.")
}

func errNoMeals() error {
	return apperrors.NewPreconditionError("Select Meals", "Please select at least one meal type.")
}

func errNothingToExport() error {
	return apperrors.NewPreconditionError("Nothing to Export", "Please generate a meal plan first.")
}

// SavedNotice is shown when the calendar was written to the export directory
var SavedNotice = inbound.Notice{Title: "Saved", Message: "Calendar file saved to your documents."}

// SettingsLoader reads the stored preferences
type SettingsLoader interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// Validator validates commands
type Validator interface {
	ValidateStruct(s interface{}) error
}

// Metrics receives domain measurements
type Metrics interface {
	GenerationCompleted(operation, outcome string, duration time.Duration)
	ShoppingListInspected(found bool)
	CalendarExported(events int)
}

// Service implements inbound.KitchenService
type Service struct {
	settings  SettingsLoader
	generator outbound.TextGenerator
	sink      outbound.CalendarSink
	validator Validator
	metrics   Metrics
	tracer    trace.Tracer
	logger    *zap.Logger
	now       func() time.Time
}

var _ inbound.KitchenService = (*Service)(nil)

// Option customizes a Service
type Option func(*Service)

// WithCalendarSink writes every exported calendar through sink
func WithCalendarSink(sink outbound.CalendarSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new kitchen service
func NewService(
	settingsLoader SettingsLoader,
	generator outbound.TextGenerator,
	validator Validator,
	metrics Metrics,
	tracer trace.Tracer,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		settings:  settingsLoader,
		generator: generator,
		validator: validator,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger.Named("kitchen-service"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanFridge identifies ingredients in a photo and suggests recipes
func (s *Service) ScanFridge(ctx context.Context, cmd inbound.ScanFridgeCommand) (*inbound.Result, error) {
	current, err := s.requireAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	if len(cmd.Image) == 0 {
		return nil, errNoImage()
	}
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	return s.generate(ctx, inbound.OperationFridgeScan, current, outbound.GenerateRequest{
		Prompt: prompt.FridgeScan(current.NumPeople),
		Image:  &outbound.Image{Data: cmd.Image, MIMEType: cmd.MIMEType},
	}, nil)
}

// FindRecipe asks for a full recipe for a dish or ingredient
func (s *Service) FindRecipe(ctx context.Context, cmd inbound.FindRecipeCommand) (*inbound.Result, error) {
	current, err := s.requireAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.TrimSpace(cmd.Query)
	if query == "" {
		return nil, errNoQuery()
	}
	cmd.Query = query
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	return s.generate(ctx, inbound.OperationRecipe, current, outbound.GenerateRequest{
		Prompt: prompt.RecipeSearch(query, current.NumPeople),
	}, nil)
}

// SurpriseMe asks for a chef's choice recipe; empty selections use defaults
func (s *Service) SurpriseMe(ctx context.Context, cmd inbound.SurpriseMeCommand) (*inbound.Result, error) {
	current, err := s.requireAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	cmd.MealType = orDefault(cmd.MealType, prompt.DefaultMealType)
	cmd.Cuisine = orDefault(cmd.Cuisine, prompt.DefaultCuisine)
	cmd.Vibe = orDefault(cmd.Vibe, prompt.DefaultVibe)
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	return s.generate(ctx, inbound.OperationChefsChoice, current, outbound.GenerateRequest{
		Prompt: prompt.ChefsChoice(cmd.MealType, cmd.Cuisine, cmd.Vibe, current.NumPeople),
	}, nil)
}

// PlanMeals asks for a meal plan covering the selected meals
func (s *Service) PlanMeals(ctx context.Context, cmd inbound.PlanMealsCommand) (*inbound.Result, error) {
	current, err := s.requireAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	if len(cmd.Meals) == 0 {
		return nil, errNoMeals()
	}
	cmd.Timeframe = orDefault(cmd.Timeframe, prompt.DefaultTimeframe)
	cmd.DietGoal = orDefault(cmd.DietGoal, prompt.DefaultDietGoal)
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	meals := prompt.SelectPlanMeals(cmd.Meals)

	return s.generate(ctx, inbound.OperationMealPlan, current, outbound.GenerateRequest{
		Prompt: prompt.MealPlan(meals, cmd.Timeframe, cmd.DietGoal, current.NumPeople),
	}, meals)
}

// ExportCalendar converts a generated plan into an ICS document, one all-day
// event per planned day. No meals selected means the default selection.
func (s *Service) ExportCalendar(ctx context.Context, cmd inbound.ExportCalendarCommand) (*inbound.CalendarDocument, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, errNothingToExport()
	}
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	meals := prompt.SelectPlanMeals(cmd.Meals)
	if len(meals) == 0 {
		meals = prompt.DefaultPlanMeals()
	}
	now := s.now()
	reference := cmd.Reference
	if reference.IsZero() {
		reference = now
	}

	events := calendar.Segment(cmd.Text, meals, reference)
	doc := &inbound.CalendarDocument{
		FileName: calendar.FileName,
		MIMEType: calendar.MIMEType,
		Content:  calendar.Encode(events, now),
		Events:   len(events),
	}

	if s.sink != nil {
		location, err := s.sink.SaveCalendar(ctx, doc.FileName, []byte(doc.Content))
		if err != nil {
			s.logger.Error("Calendar export failed", zap.Error(err))
			return nil, apperrors.NewExportError(doc.FileName, err)
		}
		doc.Location = location
		notice := SavedNotice
		doc.Notice = &notice
	}

	if s.metrics != nil {
		s.metrics.CalendarExported(doc.Events)
	}
	s.logger.Info("Calendar exported",
		zap.Int("events", doc.Events),
		zap.Strings("meals", meals),
		zap.String("location", doc.Location),
	)

	return doc, nil
}

// Present prepares generated text for display and sharing
func (s *Service) Present(text string) *inbound.Presentation {
	p := &inbound.Presentation{Blocks: markdown.Render(text)}

	list, found := shopping.Extract(text)
	if found {
		message := list.Message()
		link := list.SMSLink()
		p.ShoppingList = &message
		p.SMSLink = &link
	}
	if s.metrics != nil {
		s.metrics.ShoppingListInspected(found)
	}

	return p
}

// ShareText returns what the share sheet receives for a meal plan
func (s *Service) ShareText(text string) inbound.ShareMessage {
	if utf8.RuneCountInString(text) > ShareMaxChars {
		text = string([]rune(text)[:ShareMaxChars])
	}
	return inbound.ShareMessage{Title: ShareTitle, Message: text}
}

// Options returns the picker catalogs and their defaults
func (s *Service) Options() prompt.Catalog {
	return prompt.Options()
}

// requireAPIKey loads the settings fresh and blocks when no key is stored
func (s *Service) requireAPIKey(ctx context.Context) (settings.Settings, error) {
	current, err := s.settings.Load(ctx)
	if err != nil {
		return current, err
	}
	if !current.HasAPIKey() {
		return current, errAPIKeyRequired()
	}
	return current, nil
}

// generate sends one request to the oracle and prepares the answer
func (s *Service) generate(
	ctx context.Context,
	op inbound.Operation,
	current settings.Settings,
	req outbound.GenerateRequest,
	meals []string,
) (*inbound.Result, error) {
	ctx, span := s.tracer.Start(ctx, "kitchen."+string(op),
		trace.WithAttributes(
			attribute.String("chefaid.operation", string(op)),
			attribute.Int("chefaid.num_people", current.NumPeople),
			attribute.Bool("chefaid.has_image", req.Image != nil),
		),
	)
	defer span.End()

	req.APIKey = strings.TrimSpace(current.APIKey)

	s.logger.Info("Generating",
		zap.String("operation", string(op)),
		zap.Int("num_people", current.NumPeople),
	)

	start := time.Now()
	text, err := s.generator.Generate(ctx, req)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.record(op, outcomeError, duration)
		s.logger.Warn("Generation failed",
			zap.String("operation", string(op)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalServiceError(oracleName, err)
	}
	s.record(op, outcomeSuccess, duration)

	result := &inbound.Result{
		ID:           uuid.New(),
		Operation:    op,
		Text:         text,
		NumPeople:    current.NumPeople,
		Meals:        meals,
		GeneratedAt:  s.now(),
		Presentation: *s.Present(text),
	}
	span.SetAttributes(attribute.Int("chefaid.text_length", len(text)))

	s.logger.Info("Generation completed",
		zap.String("operation", string(op)),
		zap.String("result_id", result.ID.String()),
		zap.Duration("duration", duration),
		zap.Bool("shopping_list", result.ShoppingList != nil),
	)

	return result, nil
}

func (s *Service) record(op inbound.Operation, outcome string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.GenerationCompleted(string(op), outcome, duration)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
