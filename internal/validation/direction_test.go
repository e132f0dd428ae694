package validation

import (
	"errors"
	"testing"
)

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"ASC", "ASC", false},
		{"asc", "ASC", false},
		{"Desc", "DESC", false},
		{" desc ", "DESC", false},
		{"ascending", "", true},
		{"", "", true},
		{"ASC;", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDirection(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrDirection) {
					t.Fatalf("NormalizeDirection(%q) error = %v, want ErrDirection", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDirection(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDirection(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
