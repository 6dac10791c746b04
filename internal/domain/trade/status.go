package trade

import "strings"

// DeliveryStatus is the canonical delivery-status classification of a
// purchase order. Legacy data carries free-text Portuguese status strings;
// NormalizeDeliveryStatus maps them into this closed set at the data
// boundary so filtering and sorting never re-parse strings.
type DeliveryStatus string

const (
	StatusPending    DeliveryStatus = "pending"
	StatusProcessing DeliveryStatus = "processing"
	StatusInTransit  DeliveryStatus = "in_transit"
	StatusDelivered  DeliveryStatus = "delivered"
	StatusCancelled  DeliveryStatus = "cancelled"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// Label returns the display label for the canonical status
func (s DeliveryStatus) Label() string {
	switch s {
	case StatusDelivered:
		return "Entregue"
	case StatusInTransit:
		return "Em Transporte"
	case StatusCancelled:
		return "Cancelado"
	case StatusProcessing:
		return "Processando"
	default:
		return "Pendente"
	}
}

// NormalizeDeliveryStatus maps a free-text status string to its canonical
// value. Matching is case-insensitive; "em transporte" and "em_transporte"
// are equivalent. Unrecognized or empty input normalizes to StatusPending.
func NormalizeDeliveryStatus(raw string) DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "entregue":
		return StatusDelivered
	case "pendente":
		return StatusPending
	case "em_transporte", "em transporte":
		return StatusInTransit
	case "cancelado":
		return StatusCancelled
	case "processando":
		return StatusProcessing
	default:
		return StatusPending
	}
}

// DeliveryStatusLabel returns the display label for a raw status string.
// Recognized values get their canonical label; unrecognized non-empty input
// is shown as-is; empty input falls back to "Pendente".
func DeliveryStatusLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Pendente"
	}
	switch strings.ToLower(trimmed) {
	case "entregue", "pendente", "em_transporte", "em transporte", "cancelado", "processando":
		return NormalizeDeliveryStatus(trimmed).Label()
	default:
		return trimmed
	}
}
