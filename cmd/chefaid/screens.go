package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chefaid/chefaid/internal/domain/prompt"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/spf13/cobra"
)

var scanMIMEType string

var scanCmd = &cobra.Command{
	Use:   "scan IMAGE",
	Short: "Identify fridge ingredients in a photo and suggest recipes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, svc services) error {
			result, err := svc.Kitchen.ScanFridge(ctx, inbound.ScanFridgeCommand{Image: image, MIMEType: scanMIMEType})
			if err != nil {
				return err
			}
			printer(cmd).Result(result)
			return nil
		})
	},
}

var recipeCmd = &cobra.Command{
	Use:   "recipe DISH...",
	Short: "Find a full recipe for a dish or ingredient",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withServices(cmd, func(ctx context.Context, svc services) error {
			result, err := svc.Kitchen.FindRecipe(ctx, inbound.FindRecipeCommand{Query: query})
			if err != nil {
				return err
			}
			printer(cmd).Result(result)
			return nil
		})
	},
}

var surpriseFlags inbound.SurpriseMeCommand

var surpriseCmd = &cobra.Command{
	Use:   "surprise",
	Short: "Let the chef choose a dish",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc services) error {
			result, err := svc.Kitchen.SurpriseMe(ctx, surpriseFlags)
			if err != nil {
				return err
			}
			printer(cmd).Result(result)
			return nil
		})
	},
}

var (
	planFlags inbound.PlanMealsCommand
	planICS   string
	planStart string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a meal plan, optionally exported as a calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		var reference time.Time
		if planStart != "" {
			var err error
			reference, err = time.ParseInLocation(time.DateOnly, planStart, time.Local)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
		}

		return withServices(cmd, func(ctx context.Context, svc services) error {
			result, err := svc.Kitchen.PlanMeals(ctx, planFlags)
			if err != nil {
				return err
			}
			p := printer(cmd)
			p.Result(result)

			if planICS == "" {
				return nil
			}
			doc, err := svc.Kitchen.ExportCalendar(ctx, inbound.ExportCalendarCommand{
				Text:      result.Text,
				Meals:     result.Meals,
				Reference: reference,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(planICS, []byte(doc.Content), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			p.Notice(inbound.Notice{Title: "Exported", Message: fmt.Sprintf("%d days written to %s", doc.Events, planICS)})
			if doc.Notice != nil {
				p.Notice(*doc.Notice)
			}
			return nil
		})
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [FILE]",
	Short: "Render generated text from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, svc services) error {
			printer(cmd).Presentation(svc.Kitchen.Present(string(text)))
			return nil
		})
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the choices the chef's choice and meal plan screens accept",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := prompt.Options()
		out := cmd.OutOrStdout()
		for _, row := range []struct {
			label  string
			values []string
		}{
			{"Meal types", c.MealTypes},
			{"Cuisines", c.Cuisines},
			{"Vibes", c.Vibes},
			{"Plan meals", c.PlanMeals},
			{"Timeframes", c.Timeframes},
			{"Diet goals", c.DietGoals},
		} {
			fmt.Fprintf(out, "%-11s %s\n", row.label+":", strings.Join(row.values, ", "))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanMIMEType, "mime", "", "Image MIME type (detected when empty)")

	surpriseCmd.Flags().StringVar(&surpriseFlags.MealType, "meal-type", "", "Meal type, default "+prompt.DefaultMealType)
	surpriseCmd.Flags().StringVar(&surpriseFlags.Cuisine, "cuisine", "", "Cuisine, default "+prompt.DefaultCuisine)
	surpriseCmd.Flags().StringVar(&surpriseFlags.Vibe, "vibe", "", "Vibe, default "+prompt.DefaultVibe)

	planCmd.Flags().StringSliceVar(&planFlags.Meals, "meals", prompt.DefaultPlanMeals(), "Meals to plan")
	planCmd.Flags().StringVar(&planFlags.Timeframe, "timeframe", "", "Timeframe, default "+prompt.DefaultTimeframe)
	planCmd.Flags().StringVar(&planFlags.DietGoal, "goal", "", "Diet goal, default "+prompt.DefaultDietGoal)
	planCmd.Flags().StringVar(&planICS, "ics", "", "Write the plan as an ICS calendar to FILE")
	planCmd.Flags().StringVar(&planStart, "start", "", "Day before the first planned day (YYYY-MM-DD), default today")
}
