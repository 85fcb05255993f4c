package match

import (
	"testing"

	"github.com/gametrade/backend/internal/source"
)

func TestSelectBest_ExactMatchWithBonuses(t *testing.T) {
	candidates := []source.Candidate{
		{DisplayText: "Halo Infinite", Ref: "https://www.gamestop.com/games/halo-infinite/224588.html"},
		{DisplayText: "Halo 5: Guardians", Ref: "https://www.gamestop.com/games/halo-5/111111.html"},
	}

	best, ok := SelectBest(candidates, "Halo Infinite")
	if !ok {
		t.Fatal("expected a confident match")
	}
	if best.Candidate.DisplayText != "Halo Infinite" {
		t.Errorf("selected %q, want %q", best.Candidate.DisplayText, "Halo Infinite")
	}
	if best.Similarity != 1.0 {
		t.Errorf("Similarity = %v, want 1.0", best.Similarity)
	}
	// 5 for perfect similarity, +1 substring, +0.5 URL slug.
	if best.Score != 6.5 {
		t.Errorf("Score = %v, want 6.5", best.Score)
	}
}

func TestSelectBest_ThresholdBoundary(t *testing.T) {
	// Query "abc" has bigrams {ab, bc}. Against "abcdefghi" (8 bigrams) the
	// Dice coefficient is 2*2/(2+8) = 0.4 exactly; against "abcdefghij"
	// (9 bigrams) it drops to 4/11 < 0.4.
	tests := []struct {
		name    string
		display string
		wantOK  bool
	}{
		{"similarity exactly at threshold is accepted", "abcdefghi", true},
		{"similarity just below threshold is rejected", "abcdefghij", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := SelectBest([]source.Candidate{{DisplayText: tt.display, Ref: "ref"}}, "abc")
			if ok != tt.wantOK {
				t.Errorf("ok = %v (similarity %v), want %v", ok, best.Similarity, tt.wantOK)
			}
			if best.Similarity <= 0 {
				t.Errorf("best attempt should carry its similarity, got %v", best.Similarity)
			}
		})
	}
}

func TestSelectBest_StableTieBreak(t *testing.T) {
	candidates := []source.Candidate{
		{DisplayText: "Metroid Prime", Ref: "first"},
		{DisplayText: "Metroid Prime", Ref: "second"},
	}

	for i := 0; i < 10; i++ {
		best, ok := SelectBest(candidates, "Metroid Prime")
		if !ok {
			t.Fatal("expected a confident match")
		}
		if best.Candidate.Ref != "first" {
			t.Fatalf("tie resolved to %q, want first-seen candidate", best.Candidate.Ref)
		}
	}
}

func TestSelectBest_QueryPrefixNeverLowersScore(t *testing.T) {
	query := "zelda"
	plain := []source.Candidate{{DisplayText: "random adventure game", Ref: "ref"}}
	prefixed := []source.Candidate{{DisplayText: "zelda random adventure game", Ref: "ref"}}

	plainBest, _ := SelectBest(plain, query)
	prefixedBest, _ := SelectBest(prefixed, query)

	if prefixedBest.Score < plainBest.Score {
		t.Errorf("prefixing the query lowered the score: %v < %v", prefixedBest.Score, plainBest.Score)
	}
}

func TestSelectBest_UnrelatedCandidateRejected(t *testing.T) {
	best, ok := SelectBest([]source.Candidate{
		{DisplayText: "Garden Hose 50ft", Ref: "https://example.com/hose"},
	}, "Elden Ring")

	if ok {
		t.Fatalf("expected rejection, got match with similarity %v", best.Similarity)
	}
}

func TestSelectBest_NoCandidates(t *testing.T) {
	if _, ok := SelectBest(nil, "anything"); ok {
		t.Error("expected no match for empty candidate list")
	}
}
