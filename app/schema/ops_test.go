package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-auth/app/schema"
)

func TestOp_SQL(t *testing.T) {
	tests := []struct {
		name     string
		op       schema.Op
		want     string
		wantErr  bool
	}{
		{
			name: "ensure column",
			op: schema.Op{
				Kind:   schema.OpEnsureColumn,
				Table:  "employees",
				Column: "middle_name",
				Type:   "VARCHAR(100)",
			},
			want: "ALTER TABLE employees ADD COLUMN IF NOT EXISTS middle_name VARCHAR(100)",
		},
		{
			name: "ensure column with default",
			op: schema.Op{
				Kind:    schema.OpEnsureColumn,
				Table:   "users",
				Column:  "failed_login_attempts",
				Type:    "INTEGER NOT NULL",
				Default: "0",
			},
			want: "ALTER TABLE users ADD COLUMN IF NOT EXISTS failed_login_attempts INTEGER NOT NULL DEFAULT 0",
		},
		{
			name: "ensure table",
			op: schema.Op{
				Kind:       schema.OpEnsureTable,
				Table:      "leave_types",
				Definition: "id UUID PRIMARY KEY,\nname VARCHAR(100) NOT NULL",
			},
			want: "CREATE TABLE IF NOT EXISTS leave_types (\nid UUID PRIMARY KEY,\nname VARCHAR(100) NOT NULL\n)",
		},
		{
			name:    "ensure column missing type",
			op:      schema.Op{Kind: schema.OpEnsureColumn, Table: "users", Column: "x"},
			wantErr: true,
		},
		{
			name:    "ensure table missing definition",
			op:      schema.Op{Kind: schema.OpEnsureTable, Table: "users"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			op:      schema.Op{Kind: "drop_table", Table: "users"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.SQL()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseManifest(t *testing.T) {
	valid := []byte(`
baseline:
  - kind: ensure_column
    table: users
    column: lockout_until
    type: TIMESTAMP WITH TIME ZONE
features:
  recruitment:
    probe_table: job_requisitions
    ops:
      - kind: ensure_table
        table: job_requisitions
        definition: |
          id UUID PRIMARY KEY
`)

	manifest, err := schema.ParseManifest(valid)
	require.NoError(t, err)
	assert.Len(t, manifest.Baseline, 1)
	require.Contains(t, manifest.Features, "recruitment")
	assert.Equal(t, "job_requisitions", manifest.Features["recruitment"].ProbeTable)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed yaml",
			data: "baseline: [",
		},
		{
			name: "invalid baseline op",
			data: `
baseline:
  - kind: ensure_column
    table: users
`,
		},
		{
			name: "feature without probe table",
			data: `
features:
  recruitment:
    ops:
      - kind: ensure_table
        table: job_requisitions
        definition: id UUID PRIMARY KEY
`,
		},
		{
			name: "feature without ops",
			data: `
features:
  recruitment:
    probe_table: job_requisitions
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.ParseManifest([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
