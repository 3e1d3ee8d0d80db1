package discovery

import (
	"testing"
)

func hasEntity(entities []ExtractedEntity, name, entityType string) bool {
	for _, e := range entities {
		if e.Name == name && e.EntityType == entityType {
			return true
		}
	}
	return false
}

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name  string
		title string
		text  string
		want  []ExtractedEntity
	}{
		{
			name:  "county commission",
			title: "Broward County Commission approves disputed contract",
			want:  []ExtractedEntity{{Name: "Broward", EntityType: "county", State: "FL"}},
		},
		{
			name:  "multi word county",
			title: "Palm Beach County Commission faces audit",
			want:  []ExtractedEntity{{Name: "Palm Beach", EntityType: "county", State: "FL"}},
		},
		{
			name:  "hyphenated county",
			title: "Investigation widens at Miami-Dade County Government offices",
			want:  []ExtractedEntity{{Name: "Miami-Dade", EntityType: "county", State: "FL"}},
		},
		{
			name:  "school board",
			title: "Duval School Board member resigns amid ethics probe",
			want:  []ExtractedEntity{{Name: "Duval", EntityType: "school_board", State: "FL"}},
		},
		{
			name:  "city of pattern",
			title: "City of Tampa reviews vendor payments",
			want:  []ExtractedEntity{{Name: "Tampa", EntityType: "city", State: "FL"}},
		},
		{
			name:  "city name mention",
			title: "Contract dispute roils Sarasota government",
			want:  []ExtractedEntity{{Name: "Sarasota", EntityType: "city", State: "FL"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.title, tt.text)
			for _, want := range tt.want {
				if !hasEntity(got, want.Name, want.EntityType) {
					t.Errorf("missing %+v in %+v", want, got)
				}
			}
		})
	}
}

// Counties outside the known list are pattern matches but not real leads.
func TestExtractEntities_UnknownCountyRejected(t *testing.T) {
	got := ExtractEntities("Fulton County Commission approves budget", "")
	if len(got) != 0 {
		t.Errorf("extracted %+v from an out-of-state county", got)
	}
}

func TestExtractEntities_StopwordRejected(t *testing.T) {
	got := ExtractEntities("The School Board will meet Tuesday", "")
	for _, e := range got {
		if e.EntityType == "school_board" {
			t.Errorf("extracted school board %q from a bare reference", e.Name)
		}
	}
}

// The same body referenced under several patterns appears once.
func TestExtractEntities_Deduplicates(t *testing.T) {
	got := ExtractEntities(
		"Broward County Commission under fire",
		"The Broward County Board voted 5-2. Broward County, officials said, will appeal.",
	)

	count := 0
	for _, e := range got {
		if e.Name == "Broward" && e.EntityType == "county" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Broward county appears %d times, want 1", count)
	}
}

// A JEA mention implicates the utility, its city, and its county.
func TestExtractEntities_JEA(t *testing.T) {
	got := ExtractEntities("JEA board approves rate hike", "")

	for _, want := range []ExtractedEntity{
		{Name: "JEA (Jacksonville)", EntityType: "utility"},
		{Name: "Jacksonville", EntityType: "city"},
		{Name: "Duval", EntityType: "county"},
	} {
		if !hasEntity(got, want.Name, want.EntityType) {
			t.Errorf("missing %+v in %+v", want, got)
		}
	}
}

func TestExtractEntities_FPL(t *testing.T) {
	got := ExtractEntities("FPL seeks rate increase", "")
	if !hasEntity(got, "FPL", "utility") {
		t.Errorf("missing FPL utility in %+v", got)
	}
}

func TestMatchCounty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Broward", "Broward"},
		{"broward", "Broward"},
		{"the Palm Beach", "Palm Beach"},
		{"St. Johns", "St. Johns"},
		{"Fulton", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := matchCounty(tt.in); got != tt.want {
			t.Errorf("matchCounty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
