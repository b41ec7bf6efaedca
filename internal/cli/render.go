package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/blood_desk_app/internal/dto"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func intOrDash(i *int) string {
	if i == nil {
		return "-"
	}
	return strconv.Itoa(*i)
}

func renderDonors(w io.Writer, donors []dto.DonorResponse) error {
	if len(donors) == 0 {
		_, err := fmt.Fprintln(w, "No donors.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tGROUP\tAGE\tPHONE\tAREA\tLAST DONATION\tACTIVE")
	for _, d := range donors {
		active := "yes"
		if !d.Active {
			active = "no"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, d.BloodGroup, intOrDash(d.Age), orDash(d.Phone), orDash(d.Area), orDash(d.LastDonationDate), active)
	}
	return tw.Flush()
}

func renderDonor(w io.Writer, d dto.DonorResponse) error {
	tw := newTable(w)
	rows := [][2]string{
		{"ID", strconv.FormatInt(d.ID, 10)},
		{"Name", d.Name},
		{"Blood group", d.BloodGroup},
		{"NIC", orDash(d.NIC)},
		{"Phone", orDash(d.Phone)},
		{"Email", orDash(d.Email)},
		{"Address", orDash(d.Address)},
		{"Area", orDash(d.Area)},
		{"Age", intOrDash(d.Age)},
		{"Last donation", orDash(d.LastDonationDate)},
		{"Notes", orDash(d.Notes)},
		{"Active", strconv.FormatBool(d.Active)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

// renderStock prints one row per group and flags groups under threshold.
func renderStock(w io.Writer, levels []dto.StockLevelResponse, threshold int) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "GROUP\tUNITS\tUPDATED\t")
	for _, l := range levels {
		mark := ""
		if l.Units < threshold {
			mark = "LOW"
		}
		updated := "-"
		if !l.UpdatedAt.IsZero() {
			updated = l.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", l.BloodGroup, l.Units, updated, mark)
	}
	return tw.Flush()
}

func renderMovements(w io.Writer, movements []dto.MovementResponse) error {
	if len(movements) == 0 {
		_, err := fmt.Fprintln(w, "No movements.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tWHEN\tGROUP\tDELTA\tREASON\tBY")
	for _, m := range movements {
		by := "-"
		if m.UserID != nil {
			by = strconv.FormatInt(*m.UserID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%+d\t%s\t%s\n",
			m.ID, m.Timestamp.Local().Format("2006-01-02 15:04"), m.BloodGroup, m.Delta, m.Reason, by)
	}
	return tw.Flush()
}

func renderSummary(w io.Writer, s dto.AnalyticsSummaryResponse, threshold int) error {
	days := make(map[string]struct{}, len(s.Donations)+len(s.Issues))
	for d := range s.Donations {
		days[d] = struct{}{}
	}
	for d := range s.Issues {
		days[d] = struct{}{}
	}
	ordered := make([]string, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	tw := newTable(w)
	fmt.Fprintln(tw, "DAY\tDONATED\tISSUED")
	for _, d := range ordered {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", d, s.Donations[d], s.Issues[d])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := renderStock(w, s.Stock, threshold); err != nil {
		return err
	}
	if len(s.LowStock) > 0 {
		fmt.Fprintf(w, "\nLow stock: %s\n", strings.Join(s.LowStock, ", "))
	}
	return nil
}
