// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/spf13/cobra"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Parking places actions",
}

var placesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all parking places",
	RunE:  listPlaces,
	Args:  cobra.NoArgs,
}

var placesBookCmd = &cobra.Command{
	Use:   "book <id>",
	Short: "Tap on a parking place, booking or unbooking it",
	Long: `Tap on a parking place as its map marker was tapped. The
currently booked place is restored from the database beforehand, so it
is released in favor of the given place, or the place itself is
unbooked if it was booked already (depending on the retap policy).
No AR scene is involved, so no anchor is placed.`,
	RunE: bookPlace,
	Args: cobra.ExactArgs(1),
}

func withPool(f func(ctx context.Context, c *config.Config, p repo.Pool) error) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	return f(ctx, c, p)
}

func listPlaces(_ *cobra.Command, _ []string) error {
	return withPool(func(ctx context.Context, c *config.Config, p repo.Pool) error {
		places, err := c.NewPlacesUseCase(
			p, c.NewPlacesRepo(), c.NewLotsRepo(), c.NewSchemaRepo(),
		)
		if err != nil {
			return err
		}
		pps, err := places.List(ctx)
		if err != nil {
			return fmt.Errorf("listing places: %w", err)
		}
		sort.Slice(pps, func(i, j int) bool {
			return pps[i].ID < pps[j].ID
		})
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLAT\tLON\tEMPLOYED\tBOOKED\tLOT")
		for _, pp := range pps {
			fmt.Fprintf(
				w, "%d\t%.6f\t%.6f\t%t\t%t\t%d\n",
				pp.ID, pp.Lat, pp.Lon, pp.Employed, pp.Booked,
				pp.ParkingLotID,
			)
		}
		return w.Flush()
	})
}

func bookPlace(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("place id %q is not an integer: %w", args[0], err)
	}
	return withPool(func(ctx context.Context, c *config.Config, p repo.Pool) error {
		booking, err := c.NewBookingUseCase(p, c.NewPlacesRepo())
		if err != nil {
			return err
		}
		_, err = booking.Restore(ctx)
		if err != nil && !errors.Is(err, bookinguc.ErrNothingToRestore) {
			return fmt.Errorf("restoring booking: %w", err)
		}
		res, err := booking.BookPlace(ctx, id)
		if err != nil {
			return fmt.Errorf("booking place %d: %w", id, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	})
}

func init() {
	placesCmd.AddCommand(placesListCmd)
	placesCmd.AddCommand(placesBookCmd)
	rootCmd.AddCommand(placesCmd)
}
