package refs

import "github.com/budgie-dev/budgie/internal/store"

// Seed creates the three reference tables with starter rows. Row 1 of each
// table is the sentinel default that lookups fall back to, so it must exist
// before any ingestion runs.
func Seed(st store.Store, primaryPerson string) error {
	if err := st.Create(TableCategories, CategoryHeader); err != nil {
		return err
	}
	categories := [][]string{
		{"1", "Uncategorized", "true", "fallback for unresolved lookups"},
		{"2", "Groceries", "true", ""},
		{"3", "Dining", "true", ""},
		{"4", "Transport", "true", ""},
		{"5", "Utilities", "true", ""},
		{"6", "Health", "true", ""},
		{"7", "Household", "true", ""},
		{"8", "Entertainment", "true", ""},
	}
	for _, row := range categories {
		if _, err := st.Append(TableCategories, row); err != nil {
			return err
		}
	}

	if err := st.Create(TablePaymentMethods, PaymentMethodHeader); err != nil {
		return err
	}
	methods := [][]string{
		{"1", "Cash", "1", "true", ""},
		{"2", "Debit Card", "2", "true", ""},
		{"3", "Credit Card", "3", "true", ""},
		{"4", "Bank Transfer", "2", "true", ""},
	}
	for _, row := range methods {
		if _, err := st.Append(TablePaymentMethods, row); err != nil {
			return err
		}
	}

	if err := st.Create(TablePeople, PeopleHeader); err != nil {
		return err
	}
	if primaryPerson == "" {
		primaryPerson = "Household"
	}
	if _, err := st.Append(TablePeople, []string{"1", primaryPerson, "self", "true", ""}); err != nil {
		return err
	}
	return nil
}
