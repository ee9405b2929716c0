package meta

import (
	"reflect"
	"testing"
)

func TestBuildTargetingCountries(t *testing.T) {
	tests := []struct {
		name      string
		locations string
		expected  []string
	}{
		{"known names map to iso codes", "Egypt, USA", []string{"EG", "US"}},
		{"two letter tokens pass through uppercased", "de, fr", []string{"DE", "FR"}},
		{"mixed known and raw codes", "Egypt, USA, xx", []string{"EG", "US", "XX"}},
		{"unknown names are dropped", "Atlantis, Egypt", []string{"EG"}},
		{"all unknown falls back to default", "Atlantis, Narnia", []string{"US"}},
		{"empty falls back to default", "", []string{"US"}},
		{"whitespace and case insensitive", "  UNITED KINGDOM ,  saudi arabia ", []string{"GB", "SA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := BuildTargeting(map[string]string{"target_locations": tt.locations}, "US")
			if !reflect.DeepEqual(spec.GeoLocations.Countries, tt.expected) {
				t.Errorf("countries = %v, want %v", spec.GeoLocations.Countries, tt.expected)
			}
		})
	}
}

func TestBuildTargetingAge(t *testing.T) {
	tests := []struct {
		name     string
		ageRange string
		min, max int
	}{
		{"hyphen range", "25-45", 25, 45},
		{"en dash range", "18–65", 18, 65},
		{"range with spaces", "21 - 35", 21, 35},
		{"embedded in text", "around 30-40 years old", 30, 40},
		{"no digits defaults", "not specified", 18, 65},
		{"empty defaults", "", 18, 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := BuildTargeting(map[string]string{"age_range": tt.ageRange}, "US")
			if spec.AgeMin != tt.min || spec.AgeMax != tt.max {
				t.Errorf("age = %d-%d, want %d-%d", spec.AgeMin, spec.AgeMax, tt.min, tt.max)
			}
		})
	}
}

func TestBuildTargetingGender(t *testing.T) {
	tests := []struct {
		gender   string
		expected []int
	}{
		{"male", []int{1}},
		{"men", []int{1}},
		{"Female", []int{2}},
		{"women", []int{2}},
		{"all", nil},
		{"", nil},
	}

	for _, tt := range tests {
		spec := BuildTargeting(map[string]string{"gender": tt.gender}, "US")
		if !reflect.DeepEqual(spec.Genders, tt.expected) {
			t.Errorf("BuildTargeting gender %q = %v, want %v", tt.gender, spec.Genders, tt.expected)
		}
	}
}

func TestBuildTargetingEmptyBrief(t *testing.T) {
	spec := BuildTargeting(map[string]string{}, "EG")
	if !reflect.DeepEqual(spec.GeoLocations.Countries, []string{"EG"}) {
		t.Errorf("countries = %v, want default [EG]", spec.GeoLocations.Countries)
	}
	if spec.AgeMin != 18 || spec.AgeMax != 65 {
		t.Errorf("age = %d-%d, want 18-65", spec.AgeMin, spec.AgeMax)
	}
	if spec.Genders != nil {
		t.Errorf("genders = %v, want nil", spec.Genders)
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		expected int64
		wantErr  bool
	}{
		{"19.99", 1999, false},
		{"10", 1000, false},
		{"0", 0, false},
		{"1.2", 120, false},
		{"  5.00  ", 500, false},
		{".50", 50, false},

		// Half away from zero on the third decimal digit
		{"0.005", 1, false},
		{"0.004", 0, false},
		{"2.675", 268, false},
		{"12.345", 1235, false},
		{"12.344", 1234, false},
		{"-1.005", -101, false},
		{"-19.99", -1999, false},

		{"abc", 0, true},
		{"1.2x", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ToMinorUnits(tt.amount)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToMinorUnits(%q) expected error, got %d", tt.amount, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToMinorUnits(%q) unexpected error: %v", tt.amount, err)
			}
			if got != tt.expected {
				t.Errorf("ToMinorUnits(%q) = %d, want %d", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"rfc3339 stays rfc3339", "2026-03-01T10:30:00Z", "2026-03-01T10:30:00Z"},
		{"date only", "2026-03-01", "2026-03-01T00:00:00Z"},
		{"datetime without zone", "2026-03-01T10:30:00", "2026-03-01T10:30:00Z"},
		{"space separated", "2026-03-01 10:30", "2026-03-01T10:30:00Z"},
		{"us slash format", "03/01/2026", "2026-03-01T00:00:00Z"},
		{"unparseable passes through", "next tuesday", "next tuesday"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.input); got != tt.expected {
				t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
