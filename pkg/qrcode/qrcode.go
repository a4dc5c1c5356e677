package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// QRService, bilet rezervasyon kodları için QR kod üretir
type QRService struct {
	prefix string // ör: "EVENTSPHERE-TICKET:"
}

func NewQRService(prefix string) *QRService {
	return &QRService{
		prefix: prefix,
	}
}

func (s *QRService) Content(bookingReference string) string {
	return s.prefix + bookingReference
}

// GenerateQRCode returns a PNG encoding of the booking reference.
func (s *QRService) GenerateQRCode(bookingReference string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(s.Content(bookingReference), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
