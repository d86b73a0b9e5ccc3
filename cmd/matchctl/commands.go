package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"courier/internal/modules/order"
	"courier/internal/modules/pricing"
	"courier/internal/types"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show all orders with their traveler or partner candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		svc, err := newMatching(log)
		if err != nil {
			return err
		}
		b := svc.Board(cmd.Context())
		if err := printJSON(cmd, b); err != nil {
			return err
		}
		if b.Error != "" {
			return errors.New(b.Error)
		}
		return nil
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches ORDER_ID",
	Short: "List travelers heading to an order's destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMatching(newLogger())
		if err != nil {
			return err
		}
		quick, _ := cmd.Flags().GetBool("quick")
		id := types.ID(args[0])
		if quick {
			out, err := svc.QuickMatch(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		}
		out, err := svc.Matches(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	},
}

var selectCmd = &cobra.Command{
	Use:   "select ORDER_ID",
	Short: "Show the match-selection view for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMatching(newLogger())
		if err != nil {
			return err
		}
		sel, err := svc.Selection(cmd.Context(), types.ID(args[0]))
		if err != nil {
			return err
		}
		return printJSON(cmd, sel)
	},
}

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Quote a delivery fee for a mechanism and distance",
	RunE: func(cmd *cobra.Command, args []string) error {
		fees, err := newPricing()
		if err != nil {
			return err
		}
		mechanism, _ := cmd.Flags().GetString("mechanism")
		km, _ := cmd.Flags().GetFloat64("distance")
		selection, _ := cmd.Flags().GetBool("selection")

		var q pricing.Quote
		if selection {
			q, err = fees.SelectionQuote(km)
		} else {
			q, err = fees.Quote(pricing.Mechanism(mechanism), km)
		}
		if errors.Is(err, pricing.ErrNoFeeStructure) {
			fmt.Fprintf(cmd.OutOrStdout(), "no fee structure for %q\n", mechanism)
			return nil
		}
		if err != nil {
			return err
		}
		return printJSON(cmd, q)
	},
}

var trackCmd = &cobra.Command{
	Use:   "track ORDER_ID",
	Short: "Poll an order until it is completed or cancelled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		out := cmd.OutOrStdout()
		return newClient().Orders().WatchOrder(cmd.Context(), types.ID(args[0]), interval,
			func(o *order.Order, err error) {
				if err != nil {
					fmt.Fprintf(out, "%s  error: %v\n", time.Now().Format(time.TimeOnly), err)
					return
				}
				fmt.Fprintf(out, "%s  %s\n", time.Now().Format(time.TimeOnly), o.Status)
			})
	},
}

func init() {
	matchesCmd.Flags().Bool("quick", false, "return at most three travelers")
	feeCmd.Flags().String("mechanism", string(pricing.MechanismCycle), "delivery mechanism")
	feeCmd.Flags().Float64("distance", 0, "distance in km")
	feeCmd.Flags().Bool("selection", false, "use the flat match-selection fee")
	trackCmd.Flags().Duration("interval", 10*time.Second, "poll interval")
}
