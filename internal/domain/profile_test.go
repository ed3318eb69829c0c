package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/dbpilot-go/internal/domain"
)

func TestProfileFields_Validate(t *testing.T) {
	valid := domain.ProfileFields{
		Name:     "Test",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Database: "mydb",
	}

	tests := []struct {
		name      string
		mutate    func(*domain.ProfileFields)
		wantField string
	}{
		{
			name:   "all required fields present",
			mutate: func(f *domain.ProfileFields) {},
		},
		{
			name:   "blank password is allowed",
			mutate: func(f *domain.ProfileFields) { f.Password = "" },
		},
		{
			name:   "zero port is allowed",
			mutate: func(f *domain.ProfileFields) { f.Port = 0 },
		},
		{
			name:      "empty name",
			mutate:    func(f *domain.ProfileFields) { f.Name = "" },
			wantField: "name",
		},
		{
			name:      "empty host",
			mutate:    func(f *domain.ProfileFields) { f.Host = "" },
			wantField: "host",
		},
		{
			name:      "empty user",
			mutate:    func(f *domain.ProfileFields) { f.User = "" },
			wantField: "user",
		},
		{
			name:      "empty database",
			mutate:    func(f *domain.ProfileFields) { f.Database = "" },
			wantField: "database",
		},
		{
			name:      "negative port",
			mutate:    func(f *domain.ProfileFields) { f.Port = -1 },
			wantField: "port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := valid
			tt.mutate(&fields)

			err := fields.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var validation *domain.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if validation.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", validation.Field, tt.wantField)
			}
		})
	}
}
