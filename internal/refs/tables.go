package refs

import (
	"fmt"
	"strconv"

	"github.com/budgie-dev/budgie/internal/model"
)

// Reference table names.
const (
	TableCategories     = "categories"
	TablePaymentMethods = "payment_methods"
	TablePeople         = "people"
)

// Headers for the reference tables, fixed by the data contract.
var (
	CategoryHeader      = []string{"id", "name", "is_active", "notes"}
	PaymentMethodHeader = []string{"id", "name", "account_id", "is_active", "notes"}
	PeopleHeader        = []string{"id", "name", "relationship", "is_active", "notes"}
)

func unmarshalCategory(rec []string) (model.Reference, error) {
	if len(rec) != len(CategoryHeader) {
		return model.Reference{}, fmt.Errorf("expected %d fields, got %d", len(CategoryHeader), len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return model.Reference{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}
	return model.Reference{ID: id, Name: rec[1], Active: parseBool(rec[2]), Notes: rec[3]}, nil
}

func unmarshalPaymentMethod(rec []string) (model.Reference, error) {
	if len(rec) != len(PaymentMethodHeader) {
		return model.Reference{}, fmt.Errorf("expected %d fields, got %d", len(PaymentMethodHeader), len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return model.Reference{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}
	var accountID int
	if rec[2] != "" {
		accountID, err = strconv.Atoi(rec[2])
		if err != nil {
			return model.Reference{}, fmt.Errorf("parsing account_id %q: %w", rec[2], err)
		}
	}
	return model.Reference{ID: id, Name: rec[1], AccountID: accountID, Active: parseBool(rec[3]), Notes: rec[4]}, nil
}

func unmarshalPerson(rec []string) (model.Reference, error) {
	if len(rec) != len(PeopleHeader) {
		return model.Reference{}, fmt.Errorf("expected %d fields, got %d", len(PeopleHeader), len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return model.Reference{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}
	return model.Reference{ID: id, Name: rec[1], Relationship: rec[2], Active: parseBool(rec[3]), Notes: rec[4]}, nil
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
