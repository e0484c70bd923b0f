// Package pdf renders a quotation form snapshot into the shareable PDF
// an agent sends to the client.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/quotation"
	"github.com/voyagedesk/tripquote/internal/storage"
)

// Renderer turns form snapshots into PDF documents on disk.
type Renderer struct {
	docs   *storage.DocumentStore
	logger *zap.Logger
}

// NewRenderer creates a Renderer writing through the given document store.
func NewRenderer(docs *storage.DocumentStore, logger *zap.Logger) *Renderer {
	return &Renderer{
		docs:   docs,
		logger: logger,
	}
}

// Render writes the quotation PDF for a form snapshot and returns the file
// path.
func (r *Renderer) Render(form quotation.Form) (string, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()

	r.header(doc, form)
	r.tripSummary(doc, form)
	r.costTable(doc, form)
	r.itinerary(doc, form)
	r.hotels(doc, form)
	r.lists(doc, "Inclusions", form.Inclusions)
	r.lists(doc, "Exclusions", form.Exclusions)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		r.logger.Error("PDF generation failed",
			zap.String("trip_id", form.TripID),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate pdf: %w", err)
	}

	path := r.docs.QuotationPDFPath(form.TripID)
	if err := r.docs.Save(path, buf.Bytes()); err != nil {
		return "", err
	}

	r.logger.Info("Quotation PDF rendered",
		zap.String("trip_id", form.TripID),
		zap.String("path", path),
		zap.Int("bytes", buf.Len()))
	return path, nil
}

func (r *Renderer) header(doc *gofpdf.Fpdf, form quotation.Form) {
	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 12, "Travel Quotation", "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Reference: %s", form.TripID), "", 1, "C", false, 0, "")
	doc.Ln(4)
}

func (r *Renderer) tripSummary(doc *gofpdf.Fpdf, form quotation.Form) {
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Trip Details", "B", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)

	rows := [][2]string{
		{"Client", form.FullName},
		{"Contact", form.Contact},
		{"Email", form.Email},
		{"Destination", form.Destination},
		{"Departure City", form.DepartureCity},
		{"Travel Date", form.TravelDate},
		{"Duration", durationLabel(form.Days)},
		{"Travellers", paxLabel(form)},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		doc.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func (r *Renderer) costTable(doc *gofpdf.Fpdf, form quotation.Form) {
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Package Cost", "B", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)

	rows := [][2]string{
		{"Flights", form.FlightCost},
		{"Visa", form.VisaCost},
		{"Land Package", form.LandPackageCost},
		{"Taxes", form.TotalTax},
	}
	if form.PackageWithGST {
		rows = append(rows, [2]string{"GST", form.GST}, [2]string{"GST Waived", form.GSTWaived})
	}
	if form.PackageWithTCS {
		rows = append(rows, [2]string{"TCS", form.TCS}, [2]string{"TCS Waived", form.TCSWaived})
	}
	for _, row := range rows {
		if strings.TrimSpace(row[1]) == "" {
			continue
		}
		doc.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, row[1], "", 1, "R", false, 0, "")
	}

	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(45, 8, "Total", "T", 0, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("%.2f", form.TotalCost), "T", 1, "R", false, 0, "")
	doc.Ln(4)
}

func (r *Renderer) itinerary(doc *gofpdf.Fpdf, form quotation.Form) {
	if len(form.ItineraryDays) == 0 {
		return
	}
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Day-by-Day Itinerary", "B", 1, "L", false, 0, "")

	for _, day := range form.ItineraryDays {
		doc.SetFont("Arial", "B", 10)
		title := fmt.Sprintf("Day %d - %s", day.DayNumber, day.Date)
		if day.Title != "" {
			title += ": " + day.Title
		}
		doc.CellFormat(0, 6, title, "", 1, "L", false, 0, "")

		doc.SetFont("Arial", "", 10)
		if day.Activity != "" {
			doc.MultiCell(0, 5, day.Activity, "", "L", false)
		}
		if day.Description != "" {
			doc.MultiCell(0, 5, day.Description, "", "L", false)
		}
		doc.Ln(2)
	}
	doc.Ln(2)
}

func (r *Renderer) hotels(doc *gofpdf.Fpdf, form quotation.Form) {
	named := make([]quotation.Hotel, 0, len(form.Hotels))
	for _, h := range form.Hotels {
		if h.Name != "" {
			named = append(named, h)
		}
	}
	if len(named) == 0 {
		return
	}

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Accommodation", "B", 1, "L", false, 0, "")

	doc.SetFont("Arial", "B", 9)
	doc.CellFormat(55, 6, "Hotel", "1", 0, "L", false, 0, "")
	doc.CellFormat(35, 6, "City", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 6, "Meal Plan", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 6, "Check-in", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 6, "Check-out", "1", 1, "L", false, 0, "")

	doc.SetFont("Arial", "", 9)
	for _, h := range named {
		doc.CellFormat(55, 6, h.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 6, h.City, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, h.MealPlan, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, h.CheckIn, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, h.CheckOut, "1", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func (r *Renderer) lists(doc *gofpdf.Fpdf, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, heading, "B", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, item := range items {
		doc.CellFormat(0, 5, "- "+item, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func durationLabel(days string) string {
	days = strings.TrimSpace(days)
	if days == "" {
		return ""
	}
	return days + " days"
}

func paxLabel(form quotation.Form) string {
	parts := []string{}
	if strings.TrimSpace(form.AdultCount) != "" {
		parts = append(parts, form.AdultCount+" adults")
	}
	if strings.TrimSpace(form.ChildCount) != "" {
		parts = append(parts, form.ChildCount+" children")
	}
	return strings.Join(parts, ", ")
}
