package search

import (
	"testing"

	"github.com/wynnteo/coursearch/internal/domain/result"
)

func rawHit(id string, score float64) result.RawHit {
	return result.RawHit{ID: id, Score: score, Fields: map[string]string{"name": "course " + id}}
}

func TestFuseAdditive_BothSourcesBoosted(t *testing.T) {
	lexical := []result.RawHit{rawHit("a", 2.0), rawHit("b", 1.0)}
	knn := []result.RawHit{rawHit("a", 0.9), rawHit("c", 0.8)}

	hits := fuseAdditive(lexical, knn, 10)

	if len(hits) != 3 {
		t.Fatalf("expected 3 fused hits, got %d", len(hits))
	}
	// a: 2.0 + 0.9 + 1 = 3.9; b: 1.0; c: 0.8
	if hits[0].ID != "a" || hits[0].Score != 3.9 {
		t.Errorf("hit 0: %s score %v, want a score 3.9", hits[0].ID, hits[0].Score)
	}
	if hits[1].ID != "b" {
		t.Errorf("hit 1: got %s, want b", hits[1].ID)
	}
	if hits[2].ID != "c" {
		t.Errorf("hit 2: got %s, want c", hits[2].ID)
	}
}

func TestFuseAdditive_SingleSourceScores(t *testing.T) {
	hits := fuseAdditive([]result.RawHit{rawHit("a", 2.0)}, nil, 10)

	if len(hits) != 1 || hits[0].Score != 2.0 {
		t.Fatalf("lexical-only hit must keep its BM25 score, got %+v", hits)
	}

	// Vector matches carry the +1 shift whether or not BM25 found them.
	hits = fuseAdditive(nil, []result.RawHit{rawHit("b", 0.7)}, 10)
	if len(hits) != 1 || hits[0].Score != 1.7 {
		t.Fatalf("knn-only hit must score similarity + 1, got %+v", hits)
	}
}

func TestFuseAdditive_VectorOnlyOutranksWeakHybrid(t *testing.T) {
	lexical := []result.RawHit{rawHit("weak", 0.1)}
	knn := []result.RawHit{rawHit("semantic", 0.95), rawHit("weak", 0.0)}

	hits := fuseAdditive(lexical, knn, 10)

	// semantic: 0.95 + 1 = 1.95; weak: 0.1 + 0.0 + 1 = 1.1
	if hits[0].ID != "semantic" || hits[0].Score != 1.95 {
		t.Errorf("hit 0: %s score %v, want semantic score 1.95", hits[0].ID, hits[0].Score)
	}
	if hits[1].ID != "weak" {
		t.Errorf("hit 1: got %s, want weak", hits[1].ID)
	}
}

func TestFuseAdditive_MergesFields(t *testing.T) {
	lexical := []result.RawHit{{ID: "a", Score: 1.0, Fields: map[string]string{"name": "lexical name"}}}
	knn := []result.RawHit{{ID: "a", Score: 0.5, Fields: map[string]string{
		"name":  "knn name",
		"level": "Beginner",
	}}}

	hits := fuseAdditive(lexical, knn, 10)

	if hits[0].Fields["name"] != "lexical name" {
		t.Errorf("lexical field value must win on conflict, got %q", hits[0].Fields["name"])
	}
	if hits[0].Fields["level"] != "Beginner" {
		t.Errorf("knn-only field must be merged in, got %q", hits[0].Fields["level"])
	}
}

func TestFuseAdditive_CapsAtLimit(t *testing.T) {
	lexical := []result.RawHit{rawHit("a", 3), rawHit("b", 2), rawHit("c", 1)}

	hits := fuseAdditive(lexical, nil, 2)
	if len(hits) != 2 {
		t.Fatalf("expected limit to cap hits at 2, got %d", len(hits))
	}
	if hits[0].ID != "a" || hits[1].ID != "b" {
		t.Errorf("cap must keep top scored hits, got %s, %s", hits[0].ID, hits[1].ID)
	}
}

func TestFuseRRF_RankBased(t *testing.T) {
	lexical := []result.RawHit{rawHit("a", 100.0), rawHit("b", 50.0)}
	knn := []result.RawHit{rawHit("b", 0.9), rawHit("c", 0.8)}

	hits := fuseRRF(lexical, knn, 10)

	if len(hits) != 3 {
		t.Fatalf("expected 3 fused hits, got %d", len(hits))
	}
	// b appears in both rankings: 1/(60+2) + 1/(60+1) beats a's 1/(60+1).
	if hits[0].ID != "b" {
		t.Errorf("hit 0: got %s, want b", hits[0].ID)
	}
	// a (rank 1 lexical) beats c (rank 2 knn).
	if hits[1].ID != "a" || hits[2].ID != "c" {
		t.Errorf("tail order: got %s, %s", hits[1].ID, hits[2].ID)
	}
}

func TestFuseRRF_IgnoresRawScoreMagnitude(t *testing.T) {
	// A huge BM25 score must not dominate: only rank matters.
	lexical := []result.RawHit{rawHit("huge", 1e9)}
	knn := []result.RawHit{rawHit("both", 0.1), rawHit("huge", 0.05)}

	hits := fuseRRF(lexical, knn, 10)

	// huge: 1/61 + 1/62; both: 1/61 → huge still wins, but only by rank sum.
	if hits[0].ID != "huge" {
		t.Fatalf("expected huge first, got %s", hits[0].ID)
	}
	if hits[0].Score > 1 {
		t.Errorf("rrf score must be rank-based, got %v", hits[0].Score)
	}
}
