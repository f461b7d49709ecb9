package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agenda/internal/domain"
	"agenda/internal/modules/catalog"
	"agenda/internal/modules/profile"
	"agenda/internal/repository"
)

var demoServices = []catalog.CreateServiceRequest{
	{Name: "Consulta inicial", Description: "Primera visita y diagnóstico", DurationMinutes: 30},
	{Name: "Control", Description: "Seguimiento", DurationMinutes: 20},
	{Name: "Sesión completa", Description: "Tratamiento completo", DurationMinutes: 60},
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var providerID, displayName, timezone string
	c := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo provider with services and a weekday schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := opts.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			profiles := profile.NewService(db, profile.Defaults{
				Timezone:            cfg.DefaultTimezone,
				SlotDurationMinutes: cfg.DefaultSlotDurationMinutes,
			})
			if _, err := profiles.Ensure(ctx, domain.Identity{UserID: providerID, DisplayName: displayName}); err != nil {
				return err
			}

			windows := make([]profile.WindowInput, 0, 10)
			for day := 1; day <= 5; day++ {
				windows = append(windows,
					profile.WindowInput{WeekDay: day, StartTime: "09:00", EndTime: "13:00"},
					profile.WindowInput{WeekDay: day, StartTime: "14:00", EndTime: "18:00"},
				)
			}
			if _, err := profiles.ReplaceAvailability(ctx, providerID, profile.SettingsInput{
				Timezone:            timezone,
				SlotDurationMinutes: 30,
				Availabilities:      windows,
			}); err != nil {
				return err
			}

			services := catalog.NewService(repository.NewServiceRepository(db))
			existing, err := services.List(ctx, providerID, 1, catalog.MaxPageSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(existing) == 0 {
				for _, req := range demoServices {
					svc, err := services.Create(ctx, providerID, req)
					if err != nil {
						return err
					}
					existing = append(existing, *svc)
				}
			}
			for _, svc := range existing {
				fmt.Fprintf(out, "service %s %q %dmin\n", svc.ID, svc.Name, svc.DurationMinutes)
			}
			fmt.Fprintf(out, "seeded provider %s (%s), weekdays 09:00-13:00 and 14:00-18:00\n", providerID, timezone)
			return nil
		},
	}
	c.Flags().StringVar(&providerID, "provider", "demo-provider", "provider user id")
	c.Flags().StringVar(&displayName, "name", "Consultorio Demo", "provider display name")
	c.Flags().StringVar(&timezone, "timezone", domain.DefaultTimezone, "provider IANA timezone")
	return c
}
