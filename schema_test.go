package fluentpg

import (
	"errors"
	"testing"
)

func TestRenderColumnDef(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldSpec
		want    string
		wantErr bool
	}{
		{
			"plain type",
			FieldSpec{Name: "age", Type: "INT"},
			"age INT",
			false,
		},
		{
			"varchar with length",
			FieldSpec{Name: "name", Type: "VARCHAR", Length: 255},
			"name VARCHAR(255)",
			false,
		},
		{
			"decimal with precision and scale",
			FieldSpec{Name: "price", Type: "DECIMAL", Length: 10, Scale: 2},
			"price DECIMAL(10,2)",
			false,
		},
		{
			"numeric default is unquoted",
			FieldSpec{Name: "age", Type: "INT", Default: 18},
			"age INT DEFAULT 18",
			false,
		},
		{
			"string default is quoted",
			FieldSpec{Name: "status", Type: "VARCHAR", Length: 32, Default: "active"},
			"status VARCHAR(32) DEFAULT 'active'",
			false,
		},
		{
			"boolean default on boolean type",
			FieldSpec{Name: "enabled", Type: "BOOLEAN", Default: true},
			"enabled BOOLEAN DEFAULT true",
			false,
		},
		{
			"primary key",
			FieldSpec{Name: "id", Type: "INT", Options: []string{"primary"}},
			"id INT PRIMARY KEY",
			false,
		},
		{
			"unique",
			FieldSpec{Name: "email", Type: "VARCHAR", Length: 255, Options: []string{"unique"}},
			"email VARCHAR(255) UNIQUE",
			false,
		},
		{
			"autoincrement maps to serial",
			FieldSpec{Name: "id", Type: "INT", Options: []string{"primary", "autoincrement"}},
			"id SERIAL PRIMARY KEY",
			false,
		},
		{
			"bigint autoincrement maps to bigserial",
			FieldSpec{Name: "id", Type: "BIGINT", Options: []string{"autoincrement"}},
			"id BIGSERIAL",
			false,
		},
		{
			"lowercase type is normalized",
			FieldSpec{Name: "n", Type: "varchar", Length: 10},
			"n VARCHAR(10)",
			false,
		},
		{"missing name", FieldSpec{Type: "INT"}, "", true},
		{"missing type", FieldSpec{Name: "id"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderColumnDef(tt.field)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingFieldSpec) {
					t.Fatalf("renderColumnDef() error = %v, want ErrMissingFieldSpec", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("renderColumnDef() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("renderColumnDef() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCreateTable(t *testing.T) {
	fields := []FieldSpec{
		{Name: "id", Type: "INT", Options: []string{"primary", "autoincrement"}},
		{Name: "name", Type: "VARCHAR", Length: 255},
		{Name: "user_id", Type: "INT", ForeignKey: &ForeignKey{Table: "users", Column: "id", OnDelete: "cascade"}},
	}

	got, err := renderCreateTable("orders", fields)
	if err != nil {
		t.Fatalf("renderCreateTable() unexpected error: %v", err)
	}
	want := `CREATE TABLE IF NOT EXISTS "orders" (` +
		"id SERIAL PRIMARY KEY, " +
		"name VARCHAR(255), " +
		"user_id INT, " +
		`FOREIGN KEY (user_id) REFERENCES "users" (id) ON DELETE CASCADE)`
	if got != want {
		t.Errorf("renderCreateTable() = %q, want %q", got, want)
	}
}

func TestRenderCreateTable_EmptyFields(t *testing.T) {
	if _, err := renderCreateTable("t", nil); !errors.Is(err, ErrMissingFieldSpec) {
		t.Errorf("renderCreateTable(nil) error = %v, want ErrMissingFieldSpec", err)
	}
}

func TestCatalogType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VARCHAR", "character varying"},
		{"varchar", "character varying"},
		{"INT", "integer"},
		{"SERIAL", "integer"},
		{"BOOLEAN", "boolean"},
		{"TEXT", "text"},
		{"UNKNOWNTYPE", "unknowntype"},
	}
	for _, tt := range tests {
		if got := catalogType(tt.in); got != tt.want {
			t.Errorf("catalogType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
