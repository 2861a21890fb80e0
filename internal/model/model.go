// Package model holds the records served by the API and the request
// payloads the handlers bind into.
package model

import "strconv"

// Record is an opaque row keyed by column name.
//
// Agents and customers are read-only and returned exactly as stored.
type Record = map[string]any

// Company is a row of the company table.
type Company struct {
	ID   int64  `json:"company_id" db:"company_id"`
	Name string `json:"company_name" db:"company_name"`
	City string `json:"company_city" db:"company_city"`
}

// CompanyPatch carries the columns a partial update should overwrite.
// A nil field is left unchanged.
type CompanyPatch struct {
	Name *string
	City *string
}

// Empty reports whether the patch would change nothing.
func (p CompanyPatch) Empty() bool {
	return p.Name == nil && p.City == nil
}

// ParseID parses a company id from its path form.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
