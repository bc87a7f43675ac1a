package model

// Reference is one row of a reference table (categories, payment_methods,
// people). Rows are deactivated rather than deleted; IDs are never reused.
type Reference struct {
	ID           int
	Name         string
	Active       bool
	AccountID    int    // payment methods only; 0 = no linked account
	Relationship string // people only
	Notes        string
}
