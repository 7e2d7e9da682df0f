package models

import "testing"

func TestCompanyDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		company Company
		want    string
	}{
		{
			"вторичное имя в приоритете",
			Company{ID: 1, NamePrimary: "ООО Ремстрой", NameSecondary: "Ремстрой"},
			"Ремстрой",
		},
		{
			"основное имя без вторичного",
			Company{ID: 2, NamePrimary: "ООО Ремстрой"},
			"ООО Ремстрой",
		},
		{
			"заглушка без имен",
			Company{ID: 3},
			"company #3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.company.DisplayName()
			if got != tt.want {
				t.Errorf("DisplayName() = %v, want %v", got, tt.want)
			}
		})
	}
}
