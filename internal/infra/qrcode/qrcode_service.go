// Package qrcode renders user profile QR codes as PNG images.
package qrcode

import (
	"encoding/json"
	"strings"

	"userhub/config"
	"userhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	profileType   = "profile"
	defaultSize   = 256
	defaultLevel  = "M"
	minimumSizePx = 21
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// ProfileQRData is the JSON payload encoded in a profile QR code
type ProfileQRData struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
}

// NewQRCodeService builds the service from configuration, falling back to defaults when unset
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg == nil || cfg.QRCode == nil {
		return NewQRCodeServiceWith(defaultSize, defaultLevel, "")
	}

	return NewQRCodeServiceWith(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// NewQRCodeServiceWith creates a QR code service with explicit settings.
// baseURL, when set, is joined with the user id to form the profile link.
func NewQRCodeServiceWith(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	if size < minimumSizePx {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateProfileQR generates a PNG QR code for the user's profile
func (s *qrcodeService) GenerateProfileQR(userID uuid.UUID) ([]byte, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user id is required")
	}

	data := ProfileQRData{
		UserID: userID.String(),
		Type:   profileType,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/" + userID.String()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseProfileQR parses decoded QR payload text and returns the user ID
func (s *qrcodeService) ParseProfileQR(qrData string) (uuid.UUID, error) {
	var data ProfileQRData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != profileType {
		return uuid.Nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}

	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse user ID")
	}

	return userID, nil
}
