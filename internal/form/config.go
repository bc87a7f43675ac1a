// Package form defines form configurations and reshapes submitted answers
// into keyed records. A config maps human-facing field labels to record keys
// and carries the validation rule for each field.
package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldType is the validation type applied to a field value.
type FieldType string

const (
	TypeNumber FieldType = "number"
	TypeString FieldType = "string"
	TypeDate   FieldType = "date"
	TypeLookup FieldType = "lookup"
)

// UnresolvedPolicy decides what a failed lookup does to the submission.
type UnresolvedPolicy string

const (
	// UnresolvedReject records a validation error for the field.
	UnresolvedReject UnresolvedPolicy = "reject"
	// UnresolvedDefault accepts the resolver's default ID silently.
	UnresolvedDefault UnresolvedPolicy = "default"
)

// Rule is the validation rule for one field.
type Rule struct {
	Required     bool             `yaml:"required"`
	Type         FieldType        `yaml:"type"`
	Lookup       string           `yaml:"lookup,omitempty"`
	OnUnresolved UnresolvedPolicy `yaml:"on_unresolved,omitempty"`
}

// Field binds a form label to a record key with its rule. Fields are ordered;
// validation errors are reported in this order.
type Field struct {
	Label string `yaml:"label"`
	Key   string `yaml:"key"`
	Rule  Rule   `yaml:",inline"`
}

// Config describes one form and the ledger its accepted records land in.
type Config struct {
	Name   string  `yaml:"name"`
	Ledger string  `yaml:"ledger"`
	Fields []Field `yaml:"fields"`
}

// LabelMap returns label -> key for every configured field.
func (c *Config) LabelMap() map[string]string {
	m := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		m[f.Label] = f.Key
	}
	return m
}

// Validate checks the config is internally consistent.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("form config missing name")
	}
	if c.Ledger == "" {
		return fmt.Errorf("form %s: missing ledger", c.Name)
	}
	labels := map[string]bool{}
	keys := map[string]bool{}
	for _, f := range c.Fields {
		if f.Label == "" || f.Key == "" {
			return fmt.Errorf("form %s: field with empty label or key", c.Name)
		}
		if labels[f.Label] {
			return fmt.Errorf("form %s: duplicate label %q", c.Name, f.Label)
		}
		if keys[f.Key] {
			return fmt.Errorf("form %s: duplicate key %q", c.Name, f.Key)
		}
		labels[f.Label] = true
		keys[f.Key] = true

		switch f.Rule.Type {
		case TypeNumber, TypeString, TypeDate:
			if f.Rule.Lookup != "" {
				return fmt.Errorf("form %s: field %q has lookup but type %s", c.Name, f.Label, f.Rule.Type)
			}
		case TypeLookup:
			if f.Rule.Lookup == "" {
				return fmt.Errorf("form %s: lookup field %q names no resolver", c.Name, f.Label)
			}
		default:
			return fmt.Errorf("form %s: field %q has unknown type %q", c.Name, f.Label, f.Rule.Type)
		}
	}
	return nil
}

// Load reads a form config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing form config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a form config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling form config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing form config: %w", err)
	}
	return nil
}

// ExpenseForm is the built-in regular expense form.
func ExpenseForm() *Config {
	return &Config{
		Name:   "expense",
		Ledger: "expenses",
		Fields: []Field{
			{Label: "Date", Key: "txnDate", Rule: Rule{Required: true, Type: TypeDate}},
			{Label: "Amount", Key: "amount", Rule: Rule{Required: true, Type: TypeNumber}},
			{Label: "Description", Key: "description", Rule: Rule{Required: true, Type: TypeString}},
			{Label: "Category", Key: "categoryName", Rule: Rule{Required: true, Type: TypeLookup, Lookup: "category", OnUnresolved: UnresolvedReject}},
			{Label: "Subcategory", Key: "subCategoryName", Rule: Rule{Required: true, Type: TypeString}},
			{Label: "Payment Method", Key: "paymentMethodName", Rule: Rule{Required: true, Type: TypeLookup, Lookup: "paymentMethod", OnUnresolved: UnresolvedReject}},
			{Label: "Related To", Key: "relatedToName", Rule: Rule{Type: TypeLookup, Lookup: "person", OnUnresolved: UnresolvedDefault}},
			{Label: "Location", Key: "location", Rule: Rule{Type: TypeString}},
			{Label: "Notes", Key: "notes", Rule: Rule{Type: TypeString}},
			{Label: "Photo of Receipt", Key: "receiptImage", Rule: Rule{Type: TypeString}},
		},
	}
}
