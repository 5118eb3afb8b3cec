// Package qrcode renders pickup QR codes shown to customers collecting an
// order at the counter.
package qrcode

import (
	"encoding/json"

	"mise/internal/domain/service"
	"mise/internal/errors"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// PickupCodeData is the payload a scanner reads off the code.
type PickupCodeData struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// PickupQR returns a PNG QR code encoding the order pickup reference.
func (s *qrcodeService) PickupQR(orderID string) ([]byte, error) {
	data := PickupCodeData{
		OrderID: orderID,
		Type:    "pickup",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshal pickup code data")
	}

	code, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "create pickup QR code")
	}

	pngBytes, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "render pickup QR PNG")
	}

	return pngBytes, nil
}
