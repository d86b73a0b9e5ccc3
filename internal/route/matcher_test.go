package route

import (
	"fmt"
	"testing"

	"courier/internal/modules/partner"
	"courier/internal/modules/traveler"
	"courier/internal/types"
)

func TestIsLocal(t *testing.T) {
	tests := []struct {
		origin, destination string
		want                bool
	}{
		{"Addis Ababa", "Addis Ababa, Bole", true},
		{"Addis Ababa", "Mekelle", false},
		{"addis", "ADDIS ABABA", true},
		{"  Adama ", "adama", true},
		{"", "Adama", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%q", tt.origin, tt.destination), func(t *testing.T) {
			if got := IsLocal(tt.origin, tt.destination); got != tt.want {
				t.Errorf("IsLocal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDestinationMatches(t *testing.T) {
	tests := []struct {
		order, traveler string
		want            bool
	}{
		{"Addis Ababa", "addis", true},
		{"Bahir Dar", "BAHIR DAR, Ethiopia", true},
		{"Gondar", "Hawassa", false},
		// no trimming on this path
		{"Adama ", "adama", true},
		{"adama", " adama ", true},
		{"adama", "ad ama", false},
		{"", "Adama", false},
	}
	for _, tt := range tests {
		if got := DestinationMatches(tt.order, tt.traveler); got != tt.want {
			t.Errorf("DestinationMatches(%q, %q) = %v, want %v", tt.order, tt.traveler, got, tt.want)
		}
	}
}

func TestMatchTravelersEmptyInput(t *testing.T) {
	for _, dest := range []string{"", "Addis Ababa", "Mekelle"} {
		got := MatchTravelers(dest, nil, QuickMatchLimit)
		if got == nil || len(got) != 0 {
			t.Errorf("MatchTravelers(%q, nil) = %#v, want empty slice", dest, got)
		}
		if p := MatchPartners("Bole", dest, []partner.Partner{}, 0); p == nil || len(p) != 0 {
			t.Errorf("MatchPartners(%q, empty) = %#v, want empty slice", dest, p)
		}
	}
}

func TestMatchTravelersCapPreservesOrder(t *testing.T) {
	var cands []traveler.Traveler
	for i := 0; i < 10; i++ {
		cands = append(cands, traveler.Traveler{
			ID:              types.ID(fmt.Sprintf("t%d", i)),
			DestinationCity: "Addis Ababa",
		})
	}
	// a non-matching traveler early in the list is skipped, not counted
	cands[1].DestinationCity = "Jimma"

	got := MatchTravelers("addis ababa", cands, QuickMatchLimit)
	want := []types.ID{"t0", "t2", "t3"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("match %d = %s, want %s", i, got[i].ID, id)
		}
	}

	if all := MatchTravelers("addis ababa", cands, 0); len(all) != 9 {
		t.Errorf("unlimited match returned %d, want 9", len(all))
	}
}

func TestMatchPartners(t *testing.T) {
	cands := []partner.Partner{
		{ID: "p1", City: "Addis Ababa"},
		{ID: "p2", City: "Adama"},
		{ID: "p3", City: "Addis Ababa", PrimaryLocation: "Bole"},
		{ID: "p4", PrimaryLocation: "Piassa"},
	}
	got := MatchPartners("Addis Ababa, Bole", "Addis Ababa, Piassa", cands, 0)
	var ids []types.ID
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	want := []types.ID{"p1", "p3", "p4"}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Errorf("MatchPartners() = %v, want %v", ids, want)
	}
}
