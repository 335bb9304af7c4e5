package services

import (
	"strconv"
	"strings"

	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/utils"
)

const notAvailableKey = "CS_NA"

// BuildSections lays out the booking in the fixed page order. Blank values
// render the localized "not available" text.
func BuildSections(b models.Booking, t i18n.Translator) []models.Section {
	na := t.T(notAvailableKey)
	row := func(label, value string) models.Row {
		value = strings.TrimSpace(value)
		if value == "" {
			value = na
		}
		return models.Row{Label: t.T(label), Value: value}
	}

	toilets := ""
	if b.NoOfMobileToilet > 0 {
		toilets = strconv.Itoa(b.NoOfMobileToilet)
	}

	return []models.Section{
		{
			Rows: []models.Row{row("MT_BOOKING_NO", b.BookingNo)},
		},
		{
			Title: t.T("MT_APPLICANT_DETAILS"),
			Rows: []models.Row{
				row("MT_APPLICANT_NAME", b.ApplicantDetail.Name),
				row("MT_MOBILE_NUMBER", b.ApplicantDetail.MobileNumber),
				row("MT_ALT_MOBILE_NUMBER", b.ApplicantDetail.AlternateNumber),
				row("MT_EMAIL_ID", b.ApplicantDetail.EmailID),
			},
		},
		{
			Title: t.T("ES_TITLE_ADDRESS_DETAILS"),
			Rows: []models.Row{
				row("PINCODE", b.Address.Pincode),
				row("CITY", b.Address.City),
				row("LOCALITY", b.Address.Locality),
				row("STREET_NAME", b.Address.StreetName),
				row("HOUSE_NO", b.Address.HouseNo),
				row("ADDRESS_LINE1", b.Address.AddressLine1),
				row("ADDRESS_LINE2", b.Address.AddressLine2),
				row("LANDMARK", b.Address.Landmark),
			},
		},
		{
			Title: t.T("ES_REQUEST_DETAILS"),
			Rows: []models.Row{
				row("MT_NUMBER_OF_MOBILE_TOILETS", toilets),
				row("MT_DELIVERY_FROM_DATE", utils.FormatDisplayDate(b.DeliveryFromDate)),
				row("MT_DELIVERY_TO_DATE", utils.FormatDisplayDate(b.DeliveryToDate)),
				row("MT_REQUIREMNENT_FROM_TIME", utils.To12Hour(b.DeliveryFromTime)),
				row("MT_REQUIREMNENT_TO_TIME", utils.To12Hour(b.DeliveryToTime)),
				row("MT_SPECIAL_REQUEST", b.Description),
			},
		},
	}
}

// BuildDownloadOptions always offers the acknowledgement; the fee receipt only
// once the receipt search finished with at least one payment.
func BuildDownloadOptions(payments []models.Payment, receiptLoading bool, t i18n.Translator, href func(action string) string) []models.DownloadOption {
	opts := []models.DownloadOption{{
		Label:  t.T("MT_DOWNLOAD_ACKNOWLEDGEMENT"),
		Action: models.ActionAcknowledgement,
		Href:   href(models.ActionAcknowledgement),
	}}
	if !receiptLoading && len(payments) > 0 {
		opts = append(opts, models.DownloadOption{
			Label:  t.T("MT_FEE_RECEIPT"),
			Action: models.ActionFeeReceipt,
			Href:   href(models.ActionFeeReceipt),
		})
	}
	return opts
}

// FirstBooking applies the "first wins" rule.
func FirstBooking(list []models.Booking) models.Booking {
	if len(list) == 0 {
		return models.Booking{}
	}
	return list[0]
}
