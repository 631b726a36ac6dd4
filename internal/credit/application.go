package credit

import "creditflow/internal/util/jsonutil"

// ApplicationRecord is an immutable snapshot of one applicant, loaded once
// per evaluation run and never mutated.
type ApplicationRecord struct {
	ID          int     `json:"id"`
	FullName    string  `json:"full_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Address     string  `json:"address"`
	NationalID  string  `json:"national_id"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	CreditScore int     `json:"credit_score"`
}

// PayloadJSON serializes the record for evaluator consumption.
func (a ApplicationRecord) PayloadJSON() string {
	b, err := jsonutil.MarshalNoEscape(a)
	if err != nil {
		return "{}"
	}
	return string(b)
}
