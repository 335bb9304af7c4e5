package services

import (
	"testing"

	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/i18n"
)

func testTranslator(t *testing.T) i18n.Translator {
	t.Helper()
	c, err := i18n.Load("en_IN")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c.For("en_IN")
}

func rowValue(t *testing.T, sections []models.Section, label string) string {
	t.Helper()
	for _, s := range sections {
		for _, r := range s.Rows {
			if r.Label == label {
				return r.Value
			}
		}
	}
	t.Fatalf("row %q not found", label)
	return ""
}

func TestBuildSectionsExample(t *testing.T) {
	tr := testTranslator(t)
	b := models.Booking{
		BookingNo:        "MT-001",
		ApplicantDetail:  models.ApplicantDetail{Name: "Asha"},
		Address:          models.Address{Pincode: "560001"},
		NoOfMobileToilet: 2,
	}
	sections := BuildSections(b, tr)

	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	cases := map[string]string{
		"Booking No.":              "MT-001",
		"Applicant Name":           "Asha",
		"Mobile Number":            "NA",
		"Pincode":                  "560001",
		"Number of Mobile Toilets": "2",
		"Special Request":          "NA",
		"Delivery From Date":       "NA",
		"Requirement From Time":    "NA",
	}
	for label, want := range cases {
		if got := rowValue(t, sections, label); got != want {
			t.Fatalf("%s = %q, want %q", label, got, want)
		}
	}
}

func TestBuildSectionsFormatsDatesAndTimes(t *testing.T) {
	tr := testTranslator(t)
	b := models.Booking{
		DeliveryFromDate: "2024-03-05",
		DeliveryToDate:   "2024-03-07",
		DeliveryFromTime: "09:30",
		DeliveryToTime:   "18:05",
	}
	sections := BuildSections(b, tr)
	if got := rowValue(t, sections, "Delivery From Date"); got != "05/03/2024" {
		t.Fatalf("from date = %q", got)
	}
	if got := rowValue(t, sections, "Delivery To Date"); got != "07/03/2024" {
		t.Fatalf("to date = %q", got)
	}
	if got := rowValue(t, sections, "Requirement From Time"); got != "9:30 AM" {
		t.Fatalf("from time = %q", got)
	}
	if got := rowValue(t, sections, "Requirement To Time"); got != "6:05 PM" {
		t.Fatalf("to time = %q", got)
	}
}

func TestBuildSectionsKeepsUnparsableDatesAndTimes(t *testing.T) {
	b := models.Booking{
		DeliveryFromDate: "2024-13-45",
		DeliveryToDate:   " after Diwali ",
		DeliveryFromTime: "25:99",
		DeliveryToTime:   "evening",
	}
	sections := BuildSections(b, testTranslator(t))
	want := map[string]string{
		"Delivery From Date":    "2024-13-45",
		"Delivery To Date":      "after Diwali",
		"Requirement From Time": "25:99",
		"Requirement To Time":   "evening",
	}
	for label, v := range want {
		if got := rowValue(t, sections, label); got != v {
			t.Fatalf("%s = %q, want %q", label, got, v)
		}
	}
}

func TestEmptyBookingRendersPlaceholders(t *testing.T) {
	sections := BuildSections(FirstBooking(nil), testTranslator(t))
	for _, s := range sections {
		for _, r := range s.Rows {
			if r.Value != "NA" {
				t.Fatalf("%s = %q, want NA", r.Label, r.Value)
			}
		}
	}
}

func TestBuildDownloadOptions(t *testing.T) {
	tr := testTranslator(t)
	href := func(action string) string { return "/x/" + action }
	payments := []models.Payment{{ID: "p-1"}}

	cases := []struct {
		name     string
		payments []models.Payment
		loading  bool
		want     int
	}{
		{"no payments", nil, false, 1},
		{"still loading", payments, true, 1},
		{"payments ready", payments, false, 2},
	}
	for _, tc := range cases {
		opts := BuildDownloadOptions(tc.payments, tc.loading, tr, href)
		if len(opts) != tc.want {
			t.Fatalf("%s: got %d options, want %d", tc.name, len(opts), tc.want)
		}
		if opts[0].Action != models.ActionAcknowledgement || opts[0].Label != "Acknowledgement" {
			t.Fatalf("%s: first option must be acknowledgement, got %+v", tc.name, opts[0])
		}
		if tc.want == 2 && (opts[1].Label != "Fee Receipt" || opts[1].Href != "/x/receipt") {
			t.Fatalf("%s: unexpected receipt option %+v", tc.name, opts[1])
		}
	}
}
