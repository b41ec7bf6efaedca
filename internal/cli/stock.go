package cli

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/spf13/cobra"
)

func (a *app) stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Inspect and adjust blood stock",
	}
	cmd.AddCommand(
		a.stockLevelsCmd(),
		a.stockAdjustCmd(),
		a.stockMoveCmd("receive", "Record donated units", domain.ReasonDonation, 1),
		a.stockMoveCmd("issue", "Record units issued to a patient", domain.ReasonIssue, -1),
		a.stockMoveCmd("discard", "Record expired or damaged units", domain.ReasonDiscard, -1),
		a.stockMovementsCmd(),
	)
	return cmd
}

func (a *app) lowThreshold() int {
	return a.v.GetInt("low-threshold")
}

// showStock re-fetches and renders every level.
func (a *app) showStock(cmd *cobra.Command) error {
	sess, err := a.session()
	if err != nil {
		return err
	}
	levels, err := a.api.GetStock(cmd.Context(), sess)
	if err != nil {
		return explain(err)
	}
	return renderStock(a.out, levels, a.lowThreshold())
}

func (a *app) stockLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "levels",
		Aliases: []string{"ls"},
		Short:   "Show units on hand per blood group",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showStock(cmd)
		},
	}
}

// adjust submits one movement and re-renders the levels from the server.
func (a *app) adjust(cmd *cobra.Command, groupArg string, delta int, reason domain.MovementReason) error {
	group, err := domain.ParseBloodGroup(groupArg)
	if err != nil {
		return err
	}
	sess, err := a.session()
	if err != nil {
		return err
	}
	resp, err := a.api.AdjustStock(cmd.Context(), sess, group, delta, reason)
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(a.out, "%s %+d (%s): now %d units\n\n", resp.Stock.BloodGroup, resp.Movement.Delta, resp.Movement.Reason, resp.Stock.Units)
	return a.showStock(cmd)
}

func (a *app) stockAdjustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust <group> <delta>",
		Short: "Apply a signed correction to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta must be an integer: %q", args[1])
			}
			reason, _ := cmd.Flags().GetString("reason")
			return a.adjust(cmd, args[0], delta, domain.MovementReason(reason))
		},
	}
	cmd.Flags().String("reason", string(domain.ReasonAdjust), "movement reason (donation, issue, discard, adjust)")
	return cmd
}

// stockMoveCmd builds receive/issue/discard, which take a positive unit count.
func (a *app) stockMoveCmd(use, short string, reason domain.MovementReason, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <group> <units>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := strconv.Atoi(args[1])
			if err != nil || units <= 0 {
				return fmt.Errorf("units must be a positive integer: %q", args[1])
			}
			return a.adjust(cmd, args[0], sign*units, reason)
		},
	}
}

func (a *app) stockMovementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Show the most recent stock movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			movements, err := a.api.ListMovements(cmd.Context(), sess, limit)
			if err != nil {
				return explain(err)
			}
			return renderMovements(a.out, movements)
		},
	}
	cmd.Flags().Int("limit", 20, "number of movements")
	return cmd
}
