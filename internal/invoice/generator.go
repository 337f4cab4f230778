// Package invoice generates and lists invoice artifacts. Artifacts are plain
// files in a configured directory, named so the owning booking id can be
// recovered from the filename alone.
package invoice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// Data carries the facts an invoice is rendered from.
type Data struct {
	BookingID       string
	CarID           string
	MaintenanceCost float64
	ClientID        string
	ShowroomID      string
	RentalStartDate string
	RentalEndDate   string
	RentalStartTime string
	RentalEndTime   string
	TotalPrice      float64
	InvoiceType     string
	UpdateCount     int
}

// Generator produces a named invoice artifact and returns its name.
type Generator interface {
	Generate(data Data) (string, error)
}

// PDFGenerator renders invoices as PDF files into a directory.
type PDFGenerator struct {
	Dir string
}

// NewPDFGenerator creates a generator writing into dir, creating it if needed.
func NewPDFGenerator(dir string) (*PDFGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invoice dir: %w", err)
	}
	return &PDFGenerator{Dir: dir}, nil
}

// Generate renders the invoice and returns the artifact name. The name embeds
// the booking id; retrieval matches files on it.
func (g *PDFGenerator) Generate(data Data) (string, error) {
	name := fmt.Sprintf("invoice_%s_%s.pdf", data.BookingID, uuid.NewString()[:8])

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, data.InvoiceType)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Booking ID", data.BookingID},
		{"Car ID", data.CarID},
		{"Client ID", data.ClientID},
		{"Showroom ID", data.ShowroomID},
		{"Rental Start", fmt.Sprintf("%s %s", data.RentalStartDate, data.RentalStartTime)},
		{"Rental End", fmt.Sprintf("%s %s", data.RentalEndDate, data.RentalEndTime)},
		{"Maintenance Cost", fmt.Sprintf("%.2f", data.MaintenanceCost)},
		{"Total Price", fmt.Sprintf("%.2f", data.TotalPrice)},
		{"Update Count", fmt.Sprintf("%d", data.UpdateCount)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filepath.Join(g.Dir, name)); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return name, nil
}

// Store lists invoice artifacts from the invoice directory.
type Store struct {
	Dir string
}

// List returns the names of all invoice artifacts.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// URL builds the retrievable URL of an invoice artifact.
func URL(baseURL, name string) string {
	return baseURL + "/invoices/" + name
}
