package main

import (
	"context"
	"strconv"

	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored API key and party size",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings with the key masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc services) error {
			s, err := svc.Settings.Load(ctx)
			if err != nil {
				return err
			}
			printer(cmd).Settings(s)
			return nil
		})
	},
}

var (
	setAPIKey    string
	setNumPeople int
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the API key and party size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyChanged := cmd.Flags().Changed("key")
		peopleChanged := cmd.Flags().Changed("people")

		return withServices(cmd, func(ctx context.Context, svc services) error {
			current, err := svc.Settings.Load(ctx)
			if err != nil {
				return err
			}

			numPeople := current.NumPeople
			if peopleChanged {
				numPeople = setNumPeople
			}

			if keyChanged {
				current, err = svc.Settings.Save(ctx, inbound.SaveSettingsCommand{APIKey: setAPIKey, NumPeople: numPeople})
			} else {
				current, err = svc.Settings.SetNumPeople(ctx, numPeople)
			}
			if err != nil {
				return err
			}

			p := printer(cmd)
			p.Notice(inbound.Notice{Title: "Saved", Message: "Settings saved."})
			p.Settings(current)
			return nil
		})
	},
}

var settingsAdjustCmd = &cobra.Command{
	Use:   "adjust DELTA",
	Short: "Step the party size up or down, e.g. adjust +1 or adjust -- -1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, svc services) error {
			s, err := svc.Settings.AdjustPeople(ctx, delta)
			if err != nil {
				return err
			}
			printer(cmd).Settings(s)
			return nil
		})
	},
}

var settingsClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc services) error {
			if err := svc.Settings.ClearAPIKey(ctx); err != nil {
				return err
			}
			printer(cmd).Notice(inbound.Notice{Title: "Removed", Message: "API key cleared."})
			return nil
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsAdjustCmd, settingsClearKeyCmd)

	settingsSetCmd.Flags().StringVar(&setAPIKey, "key", "", "Gemini API key")
	settingsSetCmd.Flags().IntVar(&setNumPeople, "people", 0, "Number of people (1-10)")
	settingsSetCmd.MarkFlagsOneRequired("key", "people")
}
