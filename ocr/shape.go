package ocr

import (
	"encoding/json"
	"fmt"
)

// BBox is a text box as x1, y1, x2, y2.
type BBox [4]float64

// ImageSize is the page size as width, height.
type ImageSize [2]float64

// UnmarshalJSON rejects arrays that are not exactly four numbers.
func (b *BBox) UnmarshalJSON(data []byte) error {
	return decodeFixed(data, "bbox", b[:])
}

// UnmarshalJSON rejects arrays that are not exactly two numbers.
func (s *ImageSize) UnmarshalJSON(data []byte) error {
	return decodeFixed(data, "image_size", s[:])
}

// decodeFixed fills dst from a JSON array of exactly len(dst) numbers.
// Plain Go arrays would drop extra elements and zero-fill missing ones.
func decodeFixed(data []byte, field string, dst []float64) error {
	if string(data) == "null" {
		return nil
	}
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if len(vals) != len(dst) {
		return fmt.Errorf("%s: expected %d numbers, got %d", field, len(dst), len(vals))
	}
	copy(dst, vals)
	return nil
}
