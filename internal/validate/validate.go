// Package validate checks a parsed form record against its field rules. All
// failures are collected in field declaration order; validation itself never
// returns a Go error.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgie-dev/budgie/internal/form"
	"github.com/budgie-dev/budgie/internal/refs"
)

// Resolver resolves a name to a reference ID and reports the match tier.
type Resolver func(name string) (int, refs.MatchTier)

// Registry maps the resolver names used by form configs to resolvers.
type Registry map[string]Resolver

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// Record holds validated, typed field values. Lookup fields store the
// resolved ID under "<key>Id" alongside the original name under "<key>".
type Record map[string]any

// String returns the string value for key, or "" when absent.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Decimal returns the decimal value for key, or zero when absent.
func (r Record) Decimal(key string) decimal.Decimal {
	if v, ok := r[key].(decimal.Decimal); ok {
		return v
	}
	return decimal.Zero
}

// Date returns the time value for key, or the zero time when absent.
func (r Record) Date(key string) time.Time {
	if v, ok := r[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// ID returns the resolved reference ID stored under "<key>Id", or 0.
func (r Record) ID(key string) int {
	if v, ok := r[key+"Id"].(int); ok {
		return v
	}
	return 0
}

// Validate applies each field's rule to the parsed record. It returns the
// typed record and the list of error messages, in field order. An empty error
// list means the record is acceptable.
func Validate(parsed form.ParsedRecord, cfg *form.Config, reg Registry) (Record, []string) {
	out := make(Record, len(cfg.Fields))
	var errs []string

	for _, f := range cfg.Fields {
		raw := parsed[f.Key]
		trimmed := strings.TrimSpace(raw)

		// Absent or blank: an error if required, otherwise skipped entirely.
		// Downstream fills absent fields with empty strings and default IDs.
		// Errors name the internal field key, not the form label.
		if trimmed == "" {
			if f.Rule.Required {
				errs = append(errs, fmt.Sprintf("%s is required.", f.Key))
			}
			continue
		}

		switch f.Rule.Type {
		case form.TypeNumber:
			d, err := decimal.NewFromString(trimmed)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s must be a valid number.", f.Key))
				continue
			}
			out[f.Key] = d
		case form.TypeDate:
			ts, ok := ParseDate(trimmed)
			if !ok {
				errs = append(errs, fmt.Sprintf("%s must be a valid date.", f.Key))
				continue
			}
			out[f.Key] = ts
		case form.TypeLookup:
			resolve, ok := reg[f.Rule.Lookup]
			if !ok {
				errs = append(errs, fmt.Sprintf("Lookup failed for %s: '%s'.", f.Key, trimmed))
				continue
			}
			id, tier := resolve(trimmed)
			if tier == refs.MatchNone && f.Rule.OnUnresolved != form.UnresolvedDefault {
				errs = append(errs, fmt.Sprintf("Lookup failed for %s: '%s'.", f.Key, trimmed))
				continue
			}
			// The original value is kept alongside the resolved ID.
			out[f.Key] = raw
			out[f.Key+"Id"] = id
		default:
			out[f.Key] = trimmed
		}
	}

	return out, errs
}

// ParseDate tries each accepted layout in order.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
