// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog defines the attribute names the portfolio schema knows
// natively. Columns mapped to any other name are imported as custom fields.
package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// DefaultNumeric is the one built-in attribute the importer expects as an
// integer rather than a string.
const DefaultNumeric = "total_users"

// builtIn lists the native application attributes in schema order.
var builtIn = []string{
	"name",
	"description",
	"technical_lead",
	"business_owner",
	"transition_overview",
	"transition_plan_complete",
	"transition_type",
	"database_size_mb",
	"forecast_midpoint_cost",
	"source_code_location",
	"paas_readiness",
	"roadblocks",
	"migration_effort_estimate",
	"total_users",
	"revenue",
	"person_hours_saved",
	"regulated_requirements",
	"annual_hosting_costs",
	"annual_staff_costs",
	"uptime_requirements",
	"data_sensitivity",
	"frequency_of_deployments",
	"pii",
	"legal_holds",
	"cots",
	"source_code_controlled",
	"continuous_delivery",
	"business_continuity_plan",
	"can_run_on_linux",
	"end_of_support_date",
	"environment",
	"move_group",
	"technologies",
	"project",
	"clouds",
	"urls",
	"customers",
	"servers",
	"database_instances",
}

// Catalog is an immutable, ordered set of built-in attribute names.
type Catalog struct {
	names   []string
	index   map[string]struct{}
	numeric string
}

// New builds a catalog from names, dropping duplicates and empty names while
// keeping first-seen order. numeric names the integer attribute; it must be
// one of names.
func New(names []string, numeric string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := c.index[n]; ok {
			continue
		}
		c.index[n] = struct{}{}
		c.names = append(c.names, n)
	}
	if numeric != "" {
		if _, ok := c.index[numeric]; !ok {
			return nil, fmt.Errorf("numeric attribute %q is not in the catalog", numeric)
		}
	}
	c.numeric = numeric
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtIn, DefaultNumeric)
	if err != nil {
		panic(err)
	}
	return c
}

// Contains reports whether name is a built-in attribute.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IsNumeric reports whether name is the designated integer attribute.
func (c *Catalog) IsNumeric(name string) bool {
	return c.numeric != "" && name == c.numeric
}

// Numeric returns the designated integer attribute, or "" if there is none.
func (c *Catalog) Numeric() string {
	return c.numeric
}

// Names returns the attribute names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of attributes.
func (c *Catalog) Len() int {
	return len(c.names)
}

// File is the YAML layout accepted by LoadFile and produced by Export.
type File struct {
	Attributes       []string `json:"attributes" yaml:"attributes"`
	NumericAttribute string   `json:"numeric_attribute" yaml:"numeric_attribute"`
}

// LoadFile reads a catalog from a YAML file. An empty path returns Default.
// A file without attributes keeps the built-in list; a file without
// numeric_attribute keeps total_users.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(f.Attributes) == 0 {
		f.Attributes = builtIn
	}
	if f.NumericAttribute == "" {
		f.NumericAttribute = DefaultNumeric
	}
	c, err := New(f.Attributes, f.NumericAttribute)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Export returns the catalog in its file layout.
func (c *Catalog) Export() File {
	return File{Attributes: c.Names(), NumericAttribute: c.numeric}
}
