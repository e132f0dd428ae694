package fluentpg

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			"single statement",
			"SELECT 1",
			[]string{"SELECT 1"},
		},
		{
			"trailing semicolon",
			"SELECT 1;",
			[]string{"SELECT 1"},
		},
		{
			"multiple statements",
			"CREATE TABLE t (id INT); INSERT INTO t (id) VALUES (1); SELECT * FROM t",
			[]string{"CREATE TABLE t (id INT)", "INSERT INTO t (id) VALUES (1)", "SELECT * FROM t"},
		},
		{
			"blank fragments are dropped",
			";;  ;SELECT 1;\n;",
			[]string{"SELECT 1"},
		},
		{
			"whitespace is trimmed",
			"  SELECT 1 ;\n SELECT 2 ",
			[]string{"SELECT 1", "SELECT 2"},
		},
		{
			"empty script",
			"",
			[]string{},
		},
		{
			// Bölme naiftir: string içindeki ";" de ayraç sayılır.
			// Sınır sözleşmesinin kendisi budur.
			"semicolon inside a literal mis-splits",
			"SELECT 'a;b'",
			[]string{"SELECT 'a", "b'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitStatements(tt.script); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitStatements(%q) = %v, want %v", tt.script, got, tt.want)
			}
		})
	}
}
