package service

import (
	"fmt"
	"log"
	"strings"

	"termsheet-backend/models"
	"termsheet-backend/templates"
)

// TemplateService selects a term-sheet template for an intent and renders
// it, degrading to a deterministic synthetic term sheet when the template
// is missing or fails to render.
type TemplateService struct {
	store *templates.Store
}

// NewTemplateService creates a new template service
func NewTemplateService(store *templates.Store) *TemplateService {
	if store == nil {
		store = templates.NewStore()
	}
	return &TemplateService{store: store}
}

// SelectTemplate picks a template name from the intent's type field.
// The precedence order matters: a type containing both "safe" and
// "series b" resolves to the SAFE template.
func (s *TemplateService) SelectTemplate(intent models.Intent) string {
	termSheetType := strings.ToLower(intent.Type())

	switch {
	case strings.Contains(termSheetType, "safe"):
		return templates.Safe
	case strings.Contains(termSheetType, "convertible note"):
		return templates.ConvertibleNote
	case strings.Contains(termSheetType, "series b"):
		return templates.SeriesB
	case strings.Contains(termSheetType, "series c"):
		return templates.SeriesC
	default:
		// Series A for any other type, including unset
		return templates.SeriesA
	}
}

// PopulateTemplate renders the named template with the intent fields as
// substitution variables. Failure is non-fatal: it is logged and the
// fallback term sheet is returned instead.
func (s *TemplateService) PopulateTemplate(name string, intent models.Intent) string {
	content, err := s.store.Render(name, intent)
	if err != nil {
		log.Printf("Error loading template %s: %v", name, err)
		return s.fallbackTermSheet(intent)
	}
	return content
}

// Process composes selection and population
func (s *TemplateService) Process(intent models.Intent) string {
	return s.PopulateTemplate(s.SelectTemplate(intent), intent)
}

// fallbackTermSheet builds a basic term sheet directly from the intent's
// known fields when no template is available
func (s *TemplateService) fallbackTermSheet(intent models.Intent) string {
	termSheetType := intent.Type()
	if termSheetType == "" {
		termSheetType = "Series A"
	}

	amount := intent.GetString(models.FieldAmount)
	if amount == "" {
		amount = "[AMOUNT]"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("TERM SHEET FOR %s PREFERRED STOCK FINANCING OF\n", strings.ToUpper(termSheetType)))
	builder.WriteString("[COMPANY NAME, INC.]\n\n")
	builder.WriteString(fmt.Sprintf("Amount of Financing: %s\n", amount))

	if intent.Has(models.FieldValuationCap) {
		builder.WriteString(fmt.Sprintf("Valuation Cap: %s\n", intent.GetString(models.FieldValuationCap)))
	}
	if intent.Has(models.FieldDiscount) {
		builder.WriteString(fmt.Sprintf("Discount: %s\n", intent.GetString(models.FieldDiscount)))
	}
	// Reads the "liquidation" key, not "liquidation_preference"; only
	// caller-supplied intents carry it
	if intent.Has("liquidation") {
		builder.WriteString(fmt.Sprintf("Liquidation Preference: %s\n", intent.GetString("liquidation")))
	}
	if intent.Has(models.FieldBoardSeats) {
		builder.WriteString(fmt.Sprintf("Board Seats: %s\n", intent.GetString(models.FieldBoardSeats)))
	}
	if intent.GetBool(models.FieldProRata) {
		builder.WriteString("Pro Rata Rights: Included\n")
	}

	builder.WriteString("\nThis term sheet summarizes the principal terms of the proposed financing.\n\n")
	builder.WriteString("[Additional standard terms would be included here based on the term sheet type.]\n")

	return builder.String()
}
