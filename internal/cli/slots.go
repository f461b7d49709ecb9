package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agenda/internal/modules/booking"
)

func newSlotsCmd(opts *rootOptions) *cobra.Command {
	var providerID, serviceID, date string
	c := &cobra.Command{
		Use:   "slots",
		Short: "Print the free slots of a service on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			slots, err := booking.NewService(booking.NewGormStore(db)).GetSlots(ctx, providerID, serviceID, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "no slots available")
				return nil
			}
			for _, s := range slots {
				fmt.Fprintln(out, s.String())
			}
			return nil
		},
	}
	c.Flags().StringVar(&providerID, "provider", "", "provider user id")
	c.Flags().StringVar(&serviceID, "service", "", "service id")
	c.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	_ = c.MarkFlagRequired("provider")
	_ = c.MarkFlagRequired("service")
	_ = c.MarkFlagRequired("date")
	return c
}
