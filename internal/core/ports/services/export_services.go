package services

import (
	"context"
	"io"
)

// ExportSvc renders bulk exports
type ExportSvc interface {
	// WriteDonorsCSV writes every donor as CSV to w.
	WriteDonorsCSV(ctx context.Context, w io.Writer) error
}
