package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateBookingReceipt renders a PDF receipt for a settled booking and
// stores its URL on the booking. Best effort; a failure leaves the booking
// without a receipt URL and the settlement untouched.
func GenerateBookingReceipt(bookingID uuid.UUID) {
	var booking models.Booking
	if err := database.DB.Preload("Car").Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		log.Printf("🔥 Failed to load booking %s for receipt: %v", bookingID, err)
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		return
	}
	if booking.ReceiptURL != nil {
		return
	}

	htmlData, err := generateReceiptHTML(booking)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, booking.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	if err := database.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for booking %s: %v", booking.ID, err)
		return
	}
	log.Printf("✅ Generated receipt for booking %s.", booking.ID)
}

func generateReceiptHTML(booking models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		CustomerName string
		CarName      string
		StartDate    string
		EndDate      string
		Discount     string
		Total        string
		Currency     string
		IssuedAt     string
	}{
		CustomerName: booking.User.FullName,
		CarName:      fmt.Sprintf("%s %s (%d)", booking.Car.Make, booking.Car.Model, booking.Car.Year),
		StartDate:    booking.StartDate.Format("January 2, 2006"),
		EndDate:      booking.EndDate.Format("January 2, 2006"),
		Discount:     fmt.Sprintf("%.2f", booking.Discount),
		Total:        fmt.Sprintf("%.2f", booking.TotalPrice),
		Currency:     booking.Currency,
		IssuedAt:     time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, bookingID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", bookingID, uuid.New().String()),
		Folder:       "car_rental_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
