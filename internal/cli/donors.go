package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/blood_desk_app/internal/client"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// refreshLimit is how many donors are re-listed after a mutation.
const refreshLimit = 50

func (a *app) donorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "donors",
		Aliases: []string{"donor"},
		Short:   "Manage the donor directory",
	}
	cmd.AddCommand(
		a.donorsListCmd(),
		a.donorsGetCmd(),
		a.donorsAddCmd(),
		a.donorsUpdateCmd(),
		a.donorsDeleteCmd(),
		a.donorsSearchCmd(),
	)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid donor id %q", arg)
	}
	return id, nil
}

// addDonorFlags registers the editable donor attributes shared by add and update.
func addDonorFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "full name")
	fs.String("nic", "", "national identity number")
	fs.String("phone", "", "phone number")
	fs.String("email", "", "email address")
	fs.String("address", "", "postal address")
	fs.String("area", "", "area or district")
	fs.String("blood-group", "", "blood group (O+, O-, A+, A-, B+, B-, AB+, AB-)")
	fs.Int("age", 0, "age in years")
	fs.String("last-donation", "", "last donation date (YYYY-MM-DD)")
	fs.String("notes", "", "free-form notes")
	fs.Bool("active", true, "whether the donor is currently active")
}

func changedString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

// refreshDonors re-fetches the directory so the operator sees server state.
func (a *app) refreshDonors(cmd *cobra.Command, sess client.Session) error {
	donors, err := a.api.ListDonors(cmd.Context(), sess, refreshLimit)
	if err != nil {
		return explain(err)
	}
	return renderDonors(a.out, donors)
}

func (a *app) donorsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List donors, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			donors, err := a.api.ListDonors(cmd.Context(), sess, limit)
			if err != nil {
				return explain(err)
			}
			return renderDonors(a.out, donors)
		},
	}
	cmd.Flags().Int("limit", 0, "maximum number of donors (server default 500)")
	return cmd
}

func (a *app) donorsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one donor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := a.session()
			if err != nil {
				return err
			}
			donor, err := a.api.GetDonor(cmd.Context(), sess, id)
			if err != nil {
				return explain(err)
			}
			return renderDonor(a.out, donor)
		},
	}
}

func (a *app) donorsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a donor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			name, _ := fs.GetString("name")
			group, _ := fs.GetString("blood-group")
			if strings.TrimSpace(name) == "" || group == "" {
				return fmt.Errorf("--name and --blood-group are required")
			}
			active, _ := fs.GetBool("active")
			req := dto.CreateDonorRequest{
				Name:             name,
				NIC:              changedString(fs, "nic"),
				Phone:            changedString(fs, "phone"),
				Email:            changedString(fs, "email"),
				Address:          changedString(fs, "address"),
				Area:             changedString(fs, "area"),
				BloodGroup:       group,
				LastDonationDate: changedString(fs, "last-donation"),
				Notes:            changedString(fs, "notes"),
				Active:           &active,
			}
			if fs.Changed("age") {
				age, _ := fs.GetInt("age")
				req.Age = &age
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			created, err := a.api.CreateDonor(cmd.Context(), sess, req)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Added donor #%d %s\n\n", created.ID, created.Name)
			return a.refreshDonors(cmd, sess)
		},
	}
	addDonorFlags(cmd.Flags())
	return cmd
}

func (a *app) donorsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change donor fields; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := buildUpdate(cmd.Flags())
			if err != nil {
				return err
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			updated, err := a.api.UpdateDonor(cmd.Context(), sess, id, req)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Updated donor #%d %s\n\n", updated.ID, updated.Name)
			return a.refreshDonors(cmd, sess)
		},
	}
	addDonorFlags(cmd.Flags())
	cmd.Flags().StringSlice("clear", nil, "nullable fields to clear (nic, phone, email, address, area, age, last-donation, notes)")
	return cmd
}

// buildUpdate turns changed flags into a partial update.
func buildUpdate(fs *pflag.FlagSet) (dto.UpdateDonorRequest, error) {
	var req dto.UpdateDonorRequest
	str := func(flag string, slot *domain.Optional[string]) {
		if v := changedString(fs, flag); v != nil {
			*slot = domain.Some(*v)
		}
	}
	str("name", &req.Name)
	str("nic", &req.NIC)
	str("phone", &req.Phone)
	str("email", &req.Email)
	str("address", &req.Address)
	str("area", &req.Area)
	str("blood-group", &req.BloodGroup)
	str("last-donation", &req.LastDonationDate)
	str("notes", &req.Notes)
	if fs.Changed("age") {
		age, _ := fs.GetInt("age")
		req.Age = domain.Some(age)
	}
	if fs.Changed("active") {
		active, _ := fs.GetBool("active")
		req.Active = domain.Some(active)
	}

	toClear, _ := fs.GetStringSlice("clear")
	for _, field := range toClear {
		switch strings.TrimSpace(field) {
		case "nic":
			req.NIC = domain.Null[string]()
		case "phone":
			req.Phone = domain.Null[string]()
		case "email":
			req.Email = domain.Null[string]()
		case "address":
			req.Address = domain.Null[string]()
		case "area":
			req.Area = domain.Null[string]()
		case "age":
			req.Age = domain.Null[int]()
		case "last-donation":
			req.LastDonationDate = domain.Null[string]()
		case "notes":
			req.Notes = domain.Null[string]()
		default:
			return dto.UpdateDonorRequest{}, fmt.Errorf("field %q cannot be cleared", field)
		}
	}
	return req, nil
}

func (a *app) donorsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a donor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := a.session()
			if err != nil {
				return err
			}
			if err := a.api.DeleteDonor(cmd.Context(), sess, id); err != nil {
				return explain(err)
			}
			fmt.Fprintf(a.out, "Deleted donor #%d\n\n", id)
			return a.refreshDonors(cmd, sess)
		},
	}
}

func (a *app) donorsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search donors; every given filter must match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			var query dto.DonorSearchQuery
			if len(args) == 1 {
				query.Q = args[0]
			}
			query.BloodGroup, _ = fs.GetString("blood-group")
			query.Area, _ = fs.GetString("area")
			query.LastAfter, _ = fs.GetString("last-after")
			query.LastBefore, _ = fs.GetString("last-before")
			query.Limit, _ = fs.GetInt("limit")
			if fs.Changed("age-min") {
				v, _ := fs.GetInt("age-min")
				query.AgeMin = &v
			}
			if fs.Changed("age-max") {
				v, _ := fs.GetInt("age-max")
				query.AgeMax = &v
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			donors, err := a.api.SearchDonors(cmd.Context(), sess, query)
			if err != nil {
				return explain(err)
			}
			return renderDonors(a.out, donors)
		},
	}
	fs := cmd.Flags()
	fs.String("blood-group", "", "exact blood group")
	fs.String("area", "", "area substring")
	fs.Int("age-min", 0, "minimum age")
	fs.Int("age-max", 0, "maximum age")
	fs.String("last-after", "", "last donation on or after (YYYY-MM-DD)")
	fs.String("last-before", "", "last donation on or before (YYYY-MM-DD)")
	fs.Int("limit", 0, "maximum number of donors")
	return cmd
}
