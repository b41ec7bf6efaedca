package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
)

// DonorCSVHeader is the fixed column order of the donor export.
var DonorCSVHeader = []string{
	"id", "name", "nic", "phone", "email", "address", "area",
	"blood_group", "age", "last_donation_date", "active", "created_at",
}

// exportService implements the ExportSvc interface
type exportService struct {
	BaseService
	donors portssvc.DonorReaderSvc
}

// NewExportService creates a new export service.
func NewExportService(donors portssvc.DonorReaderSvc) portssvc.ExportSvc {
	return &exportService{donors: donors}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) WriteDonorsCSV(ctx context.Context, w io.Writer) error {
	donors, err := s.donors.ListAllDonors(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(DonorCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, d := range donors {
		if err := cw.Write(donorCSVRecord(d)); err != nil {
			return fmt.Errorf("failed to write donor %d: %w", d.DonorID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func donorCSVRecord(d domain.Donor) []string {
	age := ""
	if d.Age != nil {
		age = strconv.Itoa(*d.Age)
	}
	last := ""
	if d.LastDonationDate != nil {
		last = d.LastDonationDate.Format(domain.DateLayout)
	}
	active := "0"
	if d.Active {
		active = "1"
	}
	return []string{
		strconv.FormatInt(d.DonorID, 10),
		d.Name,
		deref(d.NIC),
		deref(d.Phone),
		deref(d.Email),
		deref(d.Address),
		deref(d.Area),
		string(d.BloodGroup),
		age,
		last,
		active,
		d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
