package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strings"
	"time"

	"washbook/internal/config"
	"washbook/internal/entities"
)

// SenderService composes and dispatches booking notifications. Sends
// run on their own goroutine and only log on failure; a lost email or
// SMS never rolls back a booking.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(booking entities.BookingResponse, cfg config.BookingConfig, status string) {
	if booking.Customer.Email == "" {
		return
	}

	manilaLoc, errLoc := time.LoadLocation("Asia/Manila")
	if errLoc != nil {
		manilaLoc = time.FixedZone("PHT", 8*60*60)
	}

	emailData := entities.BookingEmailData{
		FullName:          booking.Customer.FullName,
		ConfirmationCode:  booking.Code,
		ServiceLabel:      serviceLabel(booking, cfg),
		ScheduleFormatted: fmt.Sprintf("%s at %s", booking.Schedule.Date, booking.Schedule.TimeSlot),
		Branch:            scheduleLocation(booking),
		TotalPrice:        booking.TotalPrice,
		Status:            status,
		CurrentYear:       time.Now().In(manilaLoc).Year(),
	}

	emailSubject := fmt.Sprintf("Your AquaShine booking is %s - Code: %s", status, emailData.ConfirmationCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at AquaShine Carwash is %s.\n\n"+
			"Booking Details:\n"+
			"Confirmation Code: %s\n"+
			"Service: %s\n"+
			"Schedule: %s\n"+
			"Location: %s\n"+
			"Total: PHP %d\n\n"+
			"Thank you for choosing AquaShine Carwash.\n\n"+
			"AquaShine Carwash. All rights reserved.",
		emailData.FullName, status, emailData.ConfirmationCode, emailData.ServiceLabel,
		emailData.ScheduleFormatted, emailData.Branch, emailData.TotalPrice,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	htmlBody := ""
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Error parsing HTML email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: Error executing HTML email template for booking %s: %v", emailData.ConfirmationCode, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}
	if htmlBody == "" {
		htmlBody = plainTextBody
	}

	go func(toEmail, fullName, subject, plainBody, htmlBodyContent string) {
		errEmail := SendEmailWithSendGrid(toEmail, fullName, subject, plainBody, htmlBodyContent)
		if errEmail != nil {
			log.Printf("ALERT (async): Email send failed for booking %s: %v", emailData.ConfirmationCode, errEmail)
		}
	}(booking.Customer.Email, emailData.FullName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendBookingSMS(booking entities.BookingResponse, status string) {
	if booking.Customer.Mobile == "" {
		return
	}

	smsMessage := fmt.Sprintf("AquaShine: Booking %s is %s!\nSchedule: %s at %s.\nMore details in your email.",
		booking.Code, status, booking.Schedule.Date, booking.Schedule.TimeSlot)

	go func(toNumber, body, code string) {
		if errSMS := SendSMS(toNumber, body); errSMS != nil {
			log.Printf("ALERT (async): SMS send failed for booking %s to %s: %v", code, toNumber, errSMS)
		}
	}(booking.Customer.Mobile, smsMessage, booking.Code)
}

func serviceLabel(booking entities.BookingResponse, cfg config.BookingConfig) string {
	switch booking.Category {
	case entities.CategoryCarwash:
		if svc, ok := cfg.Carwash[booking.Service]; ok {
			return svc.Name
		}
		return booking.Service
	case entities.CategoryAutoDetailing:
		return fmt.Sprintf("Auto Detailing (%s %s)", booking.UnitType, prettySize(booking.UnitSize))
	case entities.CategoryGrapheneCoating:
		return fmt.Sprintf("Graphene Coating (%s %s)", booking.UnitType, prettySize(booking.UnitSize))
	}
	return string(booking.Category)
}

func prettySize(size entities.UnitSize) string {
	return strings.ReplaceAll(string(size), "_", " ")
}

func scheduleLocation(booking entities.BookingResponse) string {
	if booking.ServiceType == entities.ServiceTypeHome {
		return "Home service: " + booking.Customer.Address
	}
	return booking.Schedule.Branch + " branch"
}
