package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders and parses user profile QR codes
type QRCodeService interface {
	// GenerateProfileQR renders a PNG QR code pointing at the user's profile.
	GenerateProfileQR(userID uuid.UUID) ([]byte, error)

	// ParseProfileQR extracts the user ID from decoded QR payload text.
	ParseProfileQR(qrData string) (uuid.UUID, error)
}
