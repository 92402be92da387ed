package search

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
)

const idxDocuments = "scribe_documents"

// candidateLimit is how many hits we pull from Meilisearch before
// verifying the substring contract on our side. Meilisearch matches on
// tokens, so it over- and under-approximates a raw substring match; we
// recall generously and re-filter.
const candidateLimit = 100

// Meili indexes published documents in Meilisearch.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates a Meilisearch client and configures the documents
// index. The service keeps running if the initial connection fails;
// a background loop flips it healthy once Meilisearch comes up.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxDocuments,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("search: create index %s (may already exist): %v", idxDocuments, err)
	}

	index := m.client.Index(idxDocuments)
	searchable := []string{"title", "subtitle", "content"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("search: update searchable attrs for %s: %v", idxDocuments, err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Search returns candidate records for the query. Callers must still
// verify each candidate against the substring contract.
func (m *Meili) Search(query string) ([]DocumentRecord, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}

	resp, err := m.client.Index(idxDocuments).Search(query, &meili.SearchRequest{
		Limit: candidateLimit,
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, fmt.Errorf("meilisearch search: %w", err)
	}

	records := make([]DocumentRecord, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		rec, err := hitToRecord(hit)
		if err != nil {
			log.Printf("search: decode hit: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func hitToRecord(hit meili.Hit) (DocumentRecord, error) {
	raw, err := json.Marshal(hit)
	if err != nil {
		return DocumentRecord{}, err
	}
	var rec DocumentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return DocumentRecord{}, err
	}
	return rec, nil
}

// IndexDocument adds or updates a published document in the index.
func (m *Meili) IndexDocument(rec DocumentRecord) error {
	_, err := m.client.Index(idxDocuments).AddDocuments([]DocumentRecord{rec}, nil)
	return err
}

// IndexDocuments bulk-indexes published documents.
func (m *Meili) IndexDocuments(records []DocumentRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxDocuments).AddDocuments(records, nil)
	return err
}

// DeleteDocument removes a document from the index. Used both when a
// document is deleted and when it is unpublished.
func (m *Meili) DeleteDocument(id string) error {
	_, err := m.client.Index(idxDocuments).DeleteDocument(id, nil)
	return err
}
