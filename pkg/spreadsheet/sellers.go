package spreadsheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const sellerSheet = "Sellers"

var sellerHeaders = []string{
	"ID", "Business Name", "Business Type", "Owner Name", "Email", "Phone",
	"Location", "Experience", "Inventory", "Status", "Submitted At",
	"Reviewed By", "Reviewed At", "Review Notes", "Assigned Staff",
}

// WriteSellers renders one row per seller application into an xlsx workbook.
// Timestamps are formatted in loc.
func WriteSellers(w io.Writer, sellers []model.Seller, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sellerSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sellerSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(sellerHeaders))
	for i, h := range sellerHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range sellers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, sellerRow(&s, loc)); err != nil {
			return fmt.Errorf("failed to write seller %d: %w", s.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func sellerRow(s *model.Seller, loc *time.Location) []interface{} {
	reviewedBy := ""
	if s.ReviewedBy != nil {
		reviewedBy = s.ReviewedBy.Email
	}
	reviewedAt := ""
	if s.ReviewedAt != nil {
		reviewedAt = s.ReviewedAt.In(loc).Format(time.DateTime)
	}

	assignees := make([]string, 0, len(s.Assignees))
	for _, u := range s.Assignees {
		assignees = append(assignees, u.Email)
	}

	return []interface{}{
		s.ID,
		s.BusinessName,
		string(s.BusinessType),
		s.OwnerName,
		s.EmailAddress,
		s.PhoneNumber,
		s.Location,
		string(s.ExperienceLevel),
		string(s.InventorySize),
		s.Status.Display(),
		s.CreatedAt.In(loc).Format(time.DateTime),
		reviewedBy,
		reviewedAt,
		s.ReviewNotes,
		strings.Join(assignees, ", "),
	}
}
