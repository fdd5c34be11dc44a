package models

// Issue represents a flagged clause in a term sheet.
// Clause is the dedup key when rule-based and model-based results merge;
// two issues with the same clause string are treated as duplicates.
type Issue struct {
	Clause     string `json:"clause"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}
