package models

import "fmt"

// Recognized intent field names
const (
	FieldType                  = "type"
	FieldAmount                = "amount"
	FieldDiscount              = "discount"
	FieldLiquidationPreference = "liquidation_preference"
	FieldParticipation         = "participation"
	FieldValuationCap          = "valuation_cap"
	FieldBoardSeats            = "board_seats"
	FieldProRata               = "pro_rata"
)

// DefaultFinancingType is used when intent extraction fails entirely
const DefaultFinancingType = "series_a"

// Intent holds the structured deal terms extracted from a prompt.
// A missing key means "not specified", not false or zero.
type Intent map[string]interface{}

// Type returns the financing type field, or an empty string if unset
func (i Intent) Type() string {
	return i.GetString(FieldType)
}

// GetString returns the named field rendered as a string, or "" if unset
func (i Intent) GetString(key string) string {
	v, ok := i[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// GetBool returns the named field as a boolean; unset means false
func (i Intent) GetBool(key string) bool {
	v, ok := i[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Has reports whether the named field was extracted
func (i Intent) Has(key string) bool {
	_, ok := i[key]
	return ok
}
