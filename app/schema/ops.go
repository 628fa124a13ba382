package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OpKind identifies a structural patch operation
type OpKind string

const (
	OpEnsureTable  OpKind = "ensure_table"
	OpEnsureColumn OpKind = "ensure_column"
)

// Op is one declarative, idempotent structural operation. Every op is
// add-if-absent: applying it to a store already at or beyond the target
// state is a no-op, never an error.
type Op struct {
	Kind       OpKind `yaml:"kind"`
	Table      string `yaml:"table"`
	Column     string `yaml:"column,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Default    string `yaml:"default,omitempty"`
	Definition string `yaml:"definition,omitempty"`
}

// SQL renders the operation as an idempotent DDL statement
func (o Op) SQL() (string, error) {
	switch o.Kind {
	case OpEnsureTable:
		if o.Table == "" || o.Definition == "" {
			return "", fmt.Errorf("ensure_table requires table and definition")
		}
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", o.Table, strings.TrimSpace(o.Definition)), nil

	case OpEnsureColumn:
		if o.Table == "" || o.Column == "" || o.Type == "" {
			return "", fmt.Errorf("ensure_column requires table, column and type")
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", o.Table, o.Column, o.Type)
		if o.Default != "" {
			stmt += " DEFAULT " + o.Default
		}
		return stmt, nil

	default:
		return "", fmt.Errorf("unknown op kind: %q", o.Kind)
	}
}

// Validate checks the operation is well formed
func (o Op) Validate() error {
	_, err := o.SQL()
	return err
}

// FeaturePatch is the patch set for one feature area. ProbeTable is the
// table whose absence means the feature's structures were never
// created; when absent, all ops run.
type FeaturePatch struct {
	ProbeTable string `yaml:"probe_table"`
	Ops        []Op   `yaml:"ops"`
}

// PatchManifest is the parsed form of the embedded patch definitions
type PatchManifest struct {
	Baseline []Op                    `yaml:"baseline"`
	Features map[string]FeaturePatch `yaml:"features"`
}

// ParseManifest parses and validates a YAML patch manifest
func ParseManifest(data []byte) (*PatchManifest, error) {
	var manifest PatchManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse patch manifest: %w", err)
	}

	for i, op := range manifest.Baseline {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("invalid baseline op %d: %w", i, err)
		}
	}

	for name, feature := range manifest.Features {
		if feature.ProbeTable == "" {
			return nil, fmt.Errorf("feature %q has no probe table", name)
		}
		if len(feature.Ops) == 0 {
			return nil, fmt.Errorf("feature %q has no ops", name)
		}
		for i, op := range feature.Ops {
			if err := op.Validate(); err != nil {
				return nil, fmt.Errorf("invalid op %d in feature %q: %w", i, name, err)
			}
		}
	}

	return &manifest, nil
}
