package quotation

import (
	"math"
	"strconv"
	"strings"
)

// TotalCost recomputes the derived package total from the pricing inputs:
//
//	base    = flight + visa + land package + total tax
//	gstTerm = gst - gstWaived, only when the package is sold with GST
//	tcsTerm = tcs - tcsWaived, only when the package is sold with TCS
//
// It is a pure function of the form's pricing fields.
func TotalCost(f Form) float64 {
	base := parseAmount(f.FlightCost) +
		parseAmount(f.VisaCost) +
		parseAmount(f.LandPackageCost) +
		parseAmount(f.TotalTax)

	if f.PackageWithGST {
		base += parseAmount(f.GST) - parseAmount(f.GSTWaived)
	}
	if f.PackageWithTCS {
		base += parseAmount(f.TCS) - parseAmount(f.TCSWaived)
	}
	return base
}

// parseAmount reads a free-text money field. Anything that does not parse
// as a finite number counts as zero; agents type incrementally and a
// half-entered value must not block the running total.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
