package ranking

import (
	"math"
	"testing"

	"github.com/swishlytics/swish-api/internal/models"
)

func rec(id string, score *float64) models.PlayerSeasonRecord {
	return models.PlayerSeasonRecord{PlayerID: id, PlayerName: "Player " + id, Season: "2024-25", SwishScore: score}
}

func ids(records []models.RankedRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PlayerID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAssignRanks(t *testing.T) {
	tests := []struct {
		name      string
		input     []models.PlayerSeasonRecord
		wantOrder []string
		wantRanks map[string]int
	}{
		{
			name:      "Empty",
			input:     nil,
			wantOrder: []string{},
			wantRanks: map[string]int{},
		},
		{
			name: "Ties keep input order",
			input: []models.PlayerSeasonRecord{
				rec("a", models.Float(10)), rec("b", models.Float(10)), rec("c", models.Float(5)),
			},
			wantOrder: []string{"a", "b", "c"},
			wantRanks: map[string]int{"a": 1, "b": 2, "c": 3},
		},
		{
			name: "Descending by score",
			input: []models.PlayerSeasonRecord{
				rec("low", models.Float(-3.2)), rec("high", models.Float(12.9)), rec("mid", models.Float(4)),
			},
			wantOrder: []string{"high", "mid", "low"},
			wantRanks: map[string]int{"high": 1, "mid": 2, "low": 3},
		},
		{
			name: "Missing score compares as zero",
			input: []models.PlayerSeasonRecord{
				rec("neg", models.Float(-1)), rec("none", nil), rec("pos", models.Float(1)), rec("zero", models.Float(0)),
			},
			wantOrder: []string{"pos", "none", "zero", "neg"},
			wantRanks: map[string]int{"pos": 1, "none": 2, "zero": 3, "neg": 4},
		},
		{
			name: "NaN score compares as zero",
			input: []models.PlayerSeasonRecord{
				rec("nan", models.Float(math.NaN())), rec("pos", models.Float(0.5)),
			},
			wantOrder: []string{"pos", "nan"},
			wantRanks: map[string]int{"pos": 1, "nan": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignRanks(tt.input)
			if len(got) != len(tt.input) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.input))
			}
			if !equalStrings(ids(got), tt.wantOrder) {
				t.Errorf("order = %v, want %v", ids(got), tt.wantOrder)
			}
			for _, r := range got {
				if r.Rank != tt.wantRanks[r.PlayerID] {
					t.Errorf("rank(%s) = %d, want %d", r.PlayerID, r.Rank, tt.wantRanks[r.PlayerID])
				}
			}
		})
	}
}

func TestAssignRanks_RanksArePermutation(t *testing.T) {
	scores := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	input := make([]models.PlayerSeasonRecord, len(scores))
	for i, s := range scores {
		input[i] = rec(string(rune('a'+i)), models.Float(s))
	}

	got := AssignRanks(input)
	seen := make(map[int]bool)
	for _, r := range got {
		if r.Rank < 1 || r.Rank > len(input) {
			t.Errorf("rank %d out of range", r.Rank)
		}
		if seen[r.Rank] {
			t.Errorf("duplicate rank %d", r.Rank)
		}
		seen[r.Rank] = true
	}
	if len(seen) != len(input) {
		t.Errorf("got %d distinct ranks, want %d", len(seen), len(input))
	}
}

func TestAssignRanks_DoesNotMutateInput(t *testing.T) {
	input := []models.PlayerSeasonRecord{rec("x", nil), rec("y", models.Float(2))}

	got := AssignRanks(input)

	if input[0].PlayerID != "x" || input[1].PlayerID != "y" {
		t.Errorf("input reordered: %v", input)
	}
	for _, r := range got {
		if r.PlayerID == "x" && r.SwishScore != nil {
			t.Errorf("missing score was coerced to %v", *r.SwishScore)
		}
	}
}
