package search

import (
	"fmt"
	"testing"
)

func TestAssembleVerifiesCandidates(t *testing.T) {
	candidates := []DocumentRecord{
		{ID: "doc_1", Title: "Deploying services", Content: "How to deploy.", UpdatedAt: 100},
		{ID: "doc_2", Title: "Unrelated", Content: "Token matched but no substring.", UpdatedAt: 200},
	}

	results := assemble(candidates, "deploy", true)
	if len(results) != 1 {
		t.Fatalf("expected 1 verified result, got %d", len(results))
	}
	if results[0].ID != "doc_1" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestAssembleOrdersNewestFirst(t *testing.T) {
	candidates := []DocumentRecord{
		{ID: "doc_old", Title: "guide", UpdatedAt: 10},
		{ID: "doc_new", Title: "guide", UpdatedAt: 30},
		{ID: "doc_mid", Title: "guide", UpdatedAt: 20},
	}

	results := assemble(candidates, "guide", true)
	want := []string{"doc_new", "doc_mid", "doc_old"}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, results[i].ID, id)
		}
	}
}

func TestAssembleCapsResults(t *testing.T) {
	var candidates []DocumentRecord
	for i := 0; i < MaxResults+5; i++ {
		candidates = append(candidates, DocumentRecord{
			ID:        fmt.Sprintf("doc_%d", i),
			Title:     "matching title",
			UpdatedAt: int64(i),
		})
	}

	results := assemble(candidates, "matching", true)
	if len(results) != MaxResults {
		t.Errorf("expected %d results, got %d", MaxResults, len(results))
	}
}

func TestMergeByIDKeepsMidWordMatches(t *testing.T) {
	// The ILIKE backend returns mid-word matches that tokenized recall
	// never surfaces; the union must keep them alongside shared hits.
	ilike := []DocumentRecord{
		{ID: "doc_quick", Title: "Quick start", Content: "The quick way in.", UpdatedAt: 50},
		{ID: "doc_shared", Title: "Picking a stack", Content: "How to pick.", UpdatedAt: 40},
	}
	tokenized := []DocumentRecord{
		{ID: "doc_shared", Title: "Picking a stack", Content: "How to pick.", UpdatedAt: 40},
	}

	merged := mergeByID(ilike, tokenized)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged records, got %d", len(merged))
	}

	results := assemble(merged, "ick", true)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "doc_quick" || results[1].ID != "doc_shared" {
		t.Errorf("unexpected order: %s, %s", results[0].ID, results[1].ID)
	}
}

func TestMergeByIDAddsRecallOnlyCandidates(t *testing.T) {
	ilike := []DocumentRecord{
		{ID: "doc_1", Title: "guide", UpdatedAt: 10},
	}
	tokenized := []DocumentRecord{
		{ID: "doc_1", Title: "guide", UpdatedAt: 10},
		{ID: "doc_2", Title: "guide two", UpdatedAt: 20},
	}

	merged := mergeByID(ilike, tokenized)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged records, got %d", len(merged))
	}
	seen := map[string]int{}
	for _, rec := range merged {
		seen[rec.ID]++
	}
	if seen["doc_1"] != 1 || seen["doc_2"] != 1 {
		t.Errorf("expected each ID exactly once, got %v", seen)
	}
}

func TestAssembleAttachesCategoryAndSnippet(t *testing.T) {
	candidates := []DocumentRecord{
		{
			ID:           "doc_1",
			Title:        "API Reference",
			Slug:         "api-reference",
			Content:      "All endpoints accept JSON bodies.",
			CategoryID:   "cat_1",
			CategoryName: "Reference",
			CategorySlug: "reference",
		},
		{ID: "doc_2", Title: "JSON tips", Slug: "json-tips", Content: "Plain text only."},
	}

	results := assemble(candidates, "json", true)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byID := map[string]Result{}
	for _, r := range results {
		byID[r.ID] = r
	}

	withCat := byID["doc_1"]
	if withCat.Category == nil || withCat.Category.Slug != "reference" {
		t.Errorf("expected category on doc_1, got %+v", withCat.Category)
	}
	if withCat.ContentSnippet != "All endpoints accept JSON bodies." {
		t.Errorf("unexpected snippet: %q", withCat.ContentSnippet)
	}

	titleOnly := byID["doc_2"]
	if titleOnly.Category != nil {
		t.Error("doc_2 should have no category")
	}
	if titleOnly.ContentSnippet != "" {
		t.Errorf("title-only match should have empty snippet, got %q", titleOnly.ContentSnippet)
	}
}
