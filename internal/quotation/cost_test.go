package quotation

import "testing"

func TestTotalCost(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		expected float64
	}{
		{
			name: "sums base cost fields",
			form: Form{
				FlightCost:      "12000",
				VisaCost:        "3500",
				LandPackageCost: "40000",
				TotalTax:        "1500",
			},
			expected: 57000,
		},
		{
			name: "gst applied net of waiver when package includes gst",
			form: Form{
				FlightCost:     "1000",
				GST:            "180",
				GSTWaived:      "80",
				PackageWithGST: true,
			},
			expected: 1100,
		},
		{
			name: "gst ignored when package excludes gst",
			form: Form{
				FlightCost:     "1000",
				GST:            "180",
				GSTWaived:      "80",
				PackageWithGST: false,
			},
			expected: 1000,
		},
		{
			name: "tcs applied net of waiver when package includes tcs",
			form: Form{
				LandPackageCost: "50000",
				TCS:             "2500",
				TCSWaived:       "500",
				PackageWithTCS:  true,
			},
			expected: 52000,
		},
		{
			name: "both tax terms together",
			form: Form{
				FlightCost:      "10000",
				VisaCost:        "2000",
				LandPackageCost: "30000",
				TotalTax:        "1000",
				GST:             "900",
				GSTWaived:       "100",
				TCS:             "400",
				TCSWaived:       "0",
				PackageWithGST:  true,
				PackageWithTCS:  true,
			},
			expected: 44200,
		},
		{
			name:     "empty form totals zero",
			form:     Form{},
			expected: 0,
		},
		{
			name: "unparseable fields count as zero",
			form: Form{
				FlightCost: "12k",
				VisaCost:   "3500",
				TotalTax:   "tbd",
			},
			expected: 3500,
		},
		{
			name: "thousands separators and whitespace tolerated",
			form: Form{
				LandPackageCost: " 1,25,000 ",
				FlightCost:      "24,000",
			},
			expected: 149000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalCost(tt.form); got != tt.expected {
				t.Errorf("TotalCost() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTotalCost_Idempotent(t *testing.T) {
	form := Form{
		FlightCost:     "9999.50",
		GST:            "1800",
		GSTWaived:      "300",
		PackageWithGST: true,
	}

	first := TotalCost(form)
	second := TotalCost(form)

	if first != second {
		t.Errorf("recomputation changed the result: %v then %v", first, second)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
	}{
		{"", 0},
		{"  ", 0},
		{"0", 0},
		{"1234.5", 1234.5},
		{"1,234", 1234},
		{"-250", -250},
		{"abc", 0},
		{"12.3.4", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseAmount(tt.in); got != tt.expected {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}
