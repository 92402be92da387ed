package search

import (
	"context"
	"log"
	"sort"
)

// Service is the facade over the two search backends. The PostgreSQL
// substring backend is authoritative: Meilisearch tokenizes and can
// miss mid-word matches, so its hits only ever supplement the ILIKE
// result set and serve alone when PostgreSQL is unreachable.
type Service struct {
	meili *Meili
	pg    *PgSubstring
}

// NewService creates a search service. meili may be nil if Meilisearch
// is not configured.
func NewService(meili *Meili, pg *PgSubstring) *Service {
	return &Service{meili: meili, pg: pg}
}

// Search returns up to MaxResults published documents containing the
// query, newest first. Every candidate is re-verified against the
// substring contract before it is returned.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	records, err := s.pg.Search(ctx, query, MaxResults)
	if err != nil {
		if s.meili == nil || !s.meili.Healthy() {
			return nil, err
		}
		log.Printf("search: postgres error, serving meilisearch candidates: %v", err)
		candidates, merr := s.meili.Search(query)
		if merr != nil {
			return nil, err
		}
		return assemble(candidates, query, true), nil
	}

	if s.meili != nil && s.meili.Healthy() {
		if candidates, merr := s.meili.Search(query); merr == nil {
			records = mergeByID(records, candidates)
		} else {
			log.Printf("search: meilisearch error: %v", merr)
		}
	}
	return assemble(records, query, true), nil
}

// mergeByID unions two candidate sets, keeping the first record seen
// for each document ID.
func mergeByID(records, extra []DocumentRecord) []DocumentRecord {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.ID] = struct{}{}
	}
	for _, rec := range extra {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	return records
}

// assemble turns candidate records into the final result list. verify
// re-checks the substring contract, needed for token-based candidates.
func assemble(records []DocumentRecord, query string, verify bool) []Result {
	matched := records
	if verify {
		matched = matched[:0:0]
		for _, rec := range records {
			if rec.Matches(query) {
				matched = append(matched, rec)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt > matched[j].UpdatedAt
	})
	if len(matched) > MaxResults {
		matched = matched[:MaxResults]
	}

	results := make([]Result, 0, len(matched))
	for _, rec := range matched {
		results = append(results, rec.toResult(query))
	}
	return results
}

// IndexDocument indexes a published document (fire-and-forget).
func (s *Service) IndexDocument(rec DocumentRecord) {
	if s == nil || s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexDocument(rec); err != nil {
			log.Printf("search: index document %s: %v", rec.ID, err)
		}
	}()
}

// DeleteDocument removes a document from the index (fire-and-forget).
// Called on delete and on unpublish.
func (s *Service) DeleteDocument(id string) {
	if s == nil || s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteDocument(id); err != nil {
			log.Printf("search: delete document %s: %v", id, err)
		}
	}()
}

// ReindexAllFromPG pushes every published document from PostgreSQL
// into Meilisearch. Called at startup when Meilisearch is healthy.
func (s *Service) ReindexAllFromPG(ctx context.Context) {
	if s == nil || s.meili == nil || !s.meili.Healthy() || s.pg == nil {
		return
	}
	records, err := s.pg.LoadPublished(ctx)
	if err != nil {
		log.Printf("search: reindex load failed: %v", err)
		return
	}
	if err := s.meili.IndexDocuments(records); err != nil {
		log.Printf("search: reindex documents: %v", err)
	}
}
