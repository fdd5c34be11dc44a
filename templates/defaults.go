package templates

// Built-in term-sheet templates. Bodies use the export markup convention:
// #/##/### headings, - bullets, **bold**, --- rules.
var defaultTemplates = map[string]string{
	SeriesA: `# TERM SHEET FOR SERIES A PREFERRED STOCK FINANCING OF
# [COMPANY NAME, INC.]

## FINANCING SUMMARY

**Type of Security:** Series A Preferred Stock
{{with .amount}}**Amount of Financing:** {{.}}
{{end}}{{with .valuation_cap}}**Valuation Cap:** {{.}}
{{end}}{{with .discount}}**Discount:** {{.}}
{{end}}
## TERMS OF SERIES A PREFERRED STOCK

{{with .liquidation_preference}}**Liquidation Preference:** {{.}} {{if $.participation}}participating{{else}}non-participating{{end}}
{{end}}{{with .board_seats}}**Board Seats:** {{.}} seat(s) designated by the Investors
{{end}}{{if .pro_rata}}**Pro Rata Rights:** Investors shall have the right to participate in future financings to maintain their ownership percentage.
{{end}}
---

This term sheet summarizes the principal terms of the proposed Series A financing and is non-binding except as expressly stated.
`,

	SeriesB: `# TERM SHEET FOR SERIES B PREFERRED STOCK FINANCING OF
# [COMPANY NAME, INC.]

## FINANCING SUMMARY

**Type of Security:** Series B Preferred Stock
{{with .amount}}**Amount of Financing:** {{.}}
{{end}}{{with .valuation_cap}}**Valuation Cap:** {{.}}
{{end}}{{with .discount}}**Discount:** {{.}}
{{end}}
## TERMS OF SERIES B PREFERRED STOCK

{{with .liquidation_preference}}**Liquidation Preference:** {{.}} {{if $.participation}}participating{{else}}non-participating{{end}}, pari passu with Series A
{{end}}{{with .board_seats}}**Board Seats:** {{.}} seat(s) designated by the Investors
{{end}}{{if .pro_rata}}**Pro Rata Rights:** Included for major investors.
{{end}}
---

This term sheet summarizes the principal terms of the proposed Series B financing and is non-binding except as expressly stated.
`,

	SeriesC: `# TERM SHEET FOR SERIES C PREFERRED STOCK FINANCING OF
# [COMPANY NAME, INC.]

## FINANCING SUMMARY

**Type of Security:** Series C Preferred Stock
{{with .amount}}**Amount of Financing:** {{.}}
{{end}}{{with .valuation_cap}}**Valuation Cap:** {{.}}
{{end}}{{with .discount}}**Discount:** {{.}}
{{end}}
## TERMS OF SERIES C PREFERRED STOCK

{{with .liquidation_preference}}**Liquidation Preference:** {{.}} {{if $.participation}}participating{{else}}non-participating{{end}}, senior to prior series
{{end}}{{with .board_seats}}**Board Seats:** {{.}} seat(s) designated by the Investors
{{end}}{{if .pro_rata}}**Pro Rata Rights:** Included for major investors.
{{end}}
---

This term sheet summarizes the principal terms of the proposed Series C financing and is non-binding except as expressly stated.
`,

	Safe: `# SIMPLE AGREEMENT FOR FUTURE EQUITY (SAFE)
# [COMPANY NAME, INC.]

## INVESTMENT SUMMARY

{{with .amount}}**Purchase Amount:** {{.}}
{{end}}{{with .valuation_cap}}**Valuation Cap:** {{.}}
{{end}}{{with .discount}}**Discount Rate:** {{.}}
{{end}}
## CONVERSION

The Purchase Amount will convert into preferred stock upon the next equity financing{{with .valuation_cap}}, at a price per share based on the Valuation Cap{{end}}{{with .discount}} or the Discount Rate, whichever yields more shares{{end}}.

{{if .pro_rata}}**Pro Rata Rights:** The Investor shall have the right to purchase its pro rata share of the securities sold in the next equity financing.
{{end}}
---

This SAFE is not a debt instrument and accrues no interest.
`,

	ConvertibleNote: `# CONVERTIBLE PROMISSORY NOTE TERM SHEET
# [COMPANY NAME, INC.]

## NOTE SUMMARY

{{with .amount}}**Principal Amount:** {{.}}
{{end}}{{with .valuation_cap}}**Valuation Cap:** {{.}}
{{end}}{{with .discount}}**Conversion Discount:** {{.}}
{{end}}
## CONVERSION

The outstanding principal converts into equity securities upon a qualified financing{{with .discount}}, at the Conversion Discount to the price paid by new investors{{end}}{{with .valuation_cap}}, subject to the Valuation Cap{{end}}.

{{if .pro_rata}}**Pro Rata Rights:** The Holder shall have the right to participate in subsequent financings to maintain ownership.
{{end}}
---

This term sheet summarizes the principal terms of the proposed convertible note and is non-binding except as expressly stated.
`,
}
