package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"scribe/api/internal/authpw"
	"scribe/api/internal/config"
	"scribe/api/internal/export"
	"scribe/api/internal/search"
	"scribe/api/internal/store"
)

type fakeStore struct {
	createUserFn        func(context.Context, store.User) error
	getUserByEmailFn    func(context.Context, string) (store.User, error)
	getUserByIDFn       func(context.Context, string) (store.User, error)
	listCategoriesFn    func(context.Context) ([]store.Category, error)
	getCategoryFn       func(context.Context, string) (store.Category, error)
	getCategoryBySlugFn func(context.Context, string) (store.Category, error)
	insertCategoryFn    func(context.Context, store.Category) error
	updateCategoryFn    func(context.Context, store.Category) error
	deleteCategoryFn    func(context.Context, string) error
	listDocumentsFn     func(context.Context, store.DocumentFilter) ([]store.Document, error)
	getDocumentFn       func(context.Context, string) (store.Document, error)
	getDocumentBySlugFn func(context.Context, string) (store.Document, error)
	adjacentDocumentsFn func(context.Context, string) (*store.DocumentRef, *store.DocumentRef, error)
	createDocumentFn    func(context.Context, store.Document, []string) (store.Document, error)
	updateDocumentFn    func(context.Context, string, store.DocumentUpdate) (store.Document, error)
	deleteDocumentFn    func(context.Context, string) error
	insertCommentFn     func(context.Context, store.Comment) (store.Comment, error)
	getCommentFn        func(context.Context, string) (store.Comment, error)
	deleteCommentFn     func(context.Context, string) error
	pingFn              func(context.Context) error

	savedRefreshHashes   []string
	revokedRefreshHashes []string
	lookupRefreshFn      func(context.Context, string) (store.User, error)
}

func (f *fakeStore) CreateUser(ctx context.Context, user store.User) error {
	if f.createUserFn != nil {
		return f.createUserFn(ctx, user)
	}
	return nil
}
func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	if f.getUserByEmailFn != nil {
		return f.getUserByEmailFn(ctx, email)
	}
	return store.User{}, sql.ErrNoRows
}
func (f *fakeStore) GetUserByID(ctx context.Context, userID string) (store.User, error) {
	if f.getUserByIDFn != nil {
		return f.getUserByIDFn(ctx, userID)
	}
	return store.User{ID: userID, Name: "Avery", Email: "avery@example.com", Role: "MEMBER"}, nil
}
func (f *fakeStore) ListCategories(ctx context.Context) ([]store.Category, error) {
	if f.listCategoriesFn != nil {
		return f.listCategoriesFn(ctx)
	}
	return nil, nil
}
func (f *fakeStore) GetCategory(ctx context.Context, categoryID string) (store.Category, error) {
	if f.getCategoryFn != nil {
		return f.getCategoryFn(ctx, categoryID)
	}
	return store.Category{ID: categoryID, Name: "Guides", Slug: "guides"}, nil
}
func (f *fakeStore) GetCategoryBySlug(ctx context.Context, slug string) (store.Category, error) {
	if f.getCategoryBySlugFn != nil {
		return f.getCategoryBySlugFn(ctx, slug)
	}
	return store.Category{}, sql.ErrNoRows
}
func (f *fakeStore) InsertCategory(ctx context.Context, category store.Category) error {
	if f.insertCategoryFn != nil {
		return f.insertCategoryFn(ctx, category)
	}
	return nil
}
func (f *fakeStore) UpdateCategory(ctx context.Context, category store.Category) error {
	if f.updateCategoryFn != nil {
		return f.updateCategoryFn(ctx, category)
	}
	return nil
}
func (f *fakeStore) DeleteCategory(ctx context.Context, categoryID string) error {
	if f.deleteCategoryFn != nil {
		return f.deleteCategoryFn(ctx, categoryID)
	}
	return nil
}
func (f *fakeStore) ListDocuments(ctx context.Context, filter store.DocumentFilter) ([]store.Document, error) {
	if f.listDocumentsFn != nil {
		return f.listDocumentsFn(ctx, filter)
	}
	return nil, nil
}
func (f *fakeStore) GetDocument(ctx context.Context, documentID string) (store.Document, error) {
	if f.getDocumentFn != nil {
		return f.getDocumentFn(ctx, documentID)
	}
	return store.Document{ID: documentID, Title: "Doc", Slug: "doc", Content: "<p>Body</p>", AuthorID: "user-1"}, nil
}
func (f *fakeStore) GetDocumentBySlug(ctx context.Context, slug string) (store.Document, error) {
	if f.getDocumentBySlugFn != nil {
		return f.getDocumentBySlugFn(ctx, slug)
	}
	return store.Document{}, sql.ErrNoRows
}
func (f *fakeStore) AdjacentDocuments(ctx context.Context, slug string) (*store.DocumentRef, *store.DocumentRef, error) {
	if f.adjacentDocumentsFn != nil {
		return f.adjacentDocumentsFn(ctx, slug)
	}
	return nil, nil, nil
}
func (f *fakeStore) CreateDocument(ctx context.Context, item store.Document, tagIDs []string) (store.Document, error) {
	if f.createDocumentFn != nil {
		return f.createDocumentFn(ctx, item, tagIDs)
	}
	item.Version = 1
	return item, nil
}
func (f *fakeStore) UpdateDocument(ctx context.Context, documentID string, update store.DocumentUpdate) (store.Document, error) {
	if f.updateDocumentFn != nil {
		return f.updateDocumentFn(ctx, documentID, update)
	}
	return store.Document{
		ID:        documentID,
		Title:     update.Title,
		Slug:      update.Slug,
		Subtitle:  update.Subtitle,
		Content:   update.Content,
		Published: update.Published,
		AuthorID:  "user-1",
	}, nil
}
func (f *fakeStore) DeleteDocument(ctx context.Context, documentID string) error {
	if f.deleteDocumentFn != nil {
		return f.deleteDocumentFn(ctx, documentID)
	}
	return nil
}
func (f *fakeStore) InsertComment(ctx context.Context, comment store.Comment) (store.Comment, error) {
	if f.insertCommentFn != nil {
		return f.insertCommentFn(ctx, comment)
	}
	return comment, nil
}
func (f *fakeStore) GetComment(ctx context.Context, commentID string) (store.Comment, error) {
	if f.getCommentFn != nil {
		return f.getCommentFn(ctx, commentID)
	}
	return store.Comment{}, sql.ErrNoRows
}
func (f *fakeStore) DeleteComment(ctx context.Context, commentID string) error {
	if f.deleteCommentFn != nil {
		return f.deleteCommentFn(ctx, commentID)
	}
	return nil
}
func (f *fakeStore) Ping(ctx context.Context) error {
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return nil
}

func (f *fakeStore) SaveRefreshSession(_ context.Context, tokenHash string, _ store.User, _ time.Time) error {
	f.savedRefreshHashes = append(f.savedRefreshHashes, tokenHash)
	return nil
}
func (f *fakeStore) LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error) {
	if f.lookupRefreshFn != nil {
		return f.lookupRefreshFn(ctx, tokenHash)
	}
	return store.User{}, sql.ErrNoRows
}
func (f *fakeStore) RevokeRefreshSession(_ context.Context, tokenHash string) error {
	f.revokedRefreshHashes = append(f.revokedRefreshHashes, tokenHash)
	return nil
}

type fakeSearch struct {
	searchFn func(context.Context, string) ([]search.Result, error)
	indexed  []search.DocumentRecord
	deleted  []string
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query)
	}
	return nil, nil
}
func (f *fakeSearch) IndexDocument(rec search.DocumentRecord) { f.indexed = append(f.indexed, rec) }
func (f *fakeSearch) DeleteDocument(id string)                { f.deleted = append(f.deleted, id) }

type fakeCache struct {
	entries     map[string][]byte
	stored      map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, stored: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, path string) ([]byte, bool) {
	payload, ok := f.entries[path]
	return payload, ok
}
func (f *fakeCache) Store(_ context.Context, path string, payload []byte) {
	f.stored[path] = payload
}
func (f *fakeCache) Invalidate(_ context.Context, paths ...string) {
	f.invalidated = append(f.invalidated, paths...)
}

type fakeExporter struct {
	exportFn func(context.Context, export.Request) (*export.Result, error)
}

func (f *fakeExporter) ExportPDF(ctx context.Context, req export.Request) (*export.Result, error) {
	if f.exportFn != nil {
		return f.exportFn(ctx, req)
	}
	return &export.Result{Data: []byte("%PDF-1.4"), Filename: "doc.pdf", MimeType: "application/pdf"}, nil
}

func newTestService(fs *fakeStore, fsearch *fakeSearch, cache *fakeCache) *Service {
	if fsearch == nil {
		fsearch = &fakeSearch{}
	}
	if cache == nil {
		cache = newFakeCache()
	}
	return &Service{
		cfg: config.Config{
			TokenSecret: "test-secret",
			AccessTTL:   time.Hour,
			RefreshTTL:  24 * time.Hour,
		},
		store:     fs,
		sessions:  fs,
		search:    fsearch,
		cache:     cache,
		exporter:  &fakeExporter{},
		passwords: authpw.NewService(fs),
	}
}

func memberSession(userID string) Session {
	return Session{UserID: userID, UserName: "Avery", Role: "MEMBER"}
}

func adminSession(userID string) Session {
	return Session{UserID: userID, UserName: "Root", Role: "ADMIN"}
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}

func TestCreateDocumentRejectsMissingFields(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil, nil)

	_, err := svc.CreateDocument(context.Background(), memberSession("user-1"), DocumentInput{
		Title: "Only a title",
	})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", domainErr.Code)
	}
	details, ok := domainErr.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", domainErr.Details)
	}
	missing, ok := details["missing"].([]string)
	if !ok || len(missing) != 2 {
		t.Fatalf("expected slug and content to be reported missing, got %v", details["missing"])
	}
}

func TestCreateDocumentIndexesAndInvalidatesPages(t *testing.T) {
	var created store.Document
	fs := &fakeStore{
		createDocumentFn: func(_ context.Context, item store.Document, tagIDs []string) (store.Document, error) {
			created = item
			if len(tagIDs) != 1 || tagIDs[0] != "tag-1" {
				t.Fatalf("expected tag ids to pass through, got %v", tagIDs)
			}
			item.Version = 1
			return item, nil
		},
	}
	fsearch := &fakeSearch{}
	cache := newFakeCache()
	svc := newTestService(fs, fsearch, cache)

	input := DocumentInput{
		Title:     "Release Notes",
		Slug:      "release-notes",
		Content:   "<p>Changes</p>",
		Published: true,
		TagIDs:    []string{"tag-1"},
	}
	input.CategoryID = Field[string]{Defined: true, Value: "cat-1"}

	payload, err := svc.CreateDocument(context.Background(), memberSession("user-7"), input)
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
	if created.AuthorID != "user-7" {
		t.Fatalf("expected author from session, got %q", created.AuthorID)
	}
	if created.CategoryID == nil || *created.CategoryID != "cat-1" {
		t.Fatalf("expected category cat-1, got %v", created.CategoryID)
	}
	if payload["version"] != 1 {
		t.Fatalf("expected version 1, got %v", payload["version"])
	}
	if len(fsearch.indexed) != 1 || fsearch.indexed[0].Slug != "release-notes" {
		t.Fatalf("expected published document to be indexed, got %v", fsearch.indexed)
	}
	if !contains(cache.invalidated, "/docs") || !contains(cache.invalidated, "/dashboard") {
		t.Fatalf("expected /docs and /dashboard invalidation, got %v", cache.invalidated)
	}
}

func TestCreateDocumentDraftSkipsSearchIndex(t *testing.T) {
	fsearch := &fakeSearch{}
	svc := newTestService(&fakeStore{}, fsearch, nil)

	_, err := svc.CreateDocument(context.Background(), memberSession("user-1"), DocumentInput{
		Title:   "Draft",
		Slug:    "draft",
		Content: "<p>WIP</p>",
	})
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
	if len(fsearch.indexed) != 0 {
		t.Fatalf("draft must not be indexed, got %v", fsearch.indexed)
	}
}

func TestUpdateDocumentForbiddenForNonAuthor(t *testing.T) {
	fs := &fakeStore{
		getDocumentFn: func(_ context.Context, documentID string) (store.Document, error) {
			return store.Document{ID: documentID, Slug: "doc", AuthorID: "user-owner"}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	_, err := svc.UpdateDocument(context.Background(), memberSession("user-other"), "doc-1", DocumentInput{
		Title:   "Doc",
		Slug:    "doc",
		Content: "<p>Body</p>",
	})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", domainErr.Code)
	}
}

func TestUpdateDocumentAdminOverridesOwnership(t *testing.T) {
	fs := &fakeStore{
		getDocumentFn: func(_ context.Context, documentID string) (store.Document, error) {
			return store.Document{ID: documentID, Slug: "doc", AuthorID: "user-owner"}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	if _, err := svc.UpdateDocument(context.Background(), adminSession("user-admin"), "doc-1", DocumentInput{
		Title:   "Doc",
		Slug:    "doc",
		Content: "<p>Body</p>",
	}); err != nil {
		t.Fatalf("admin update should succeed, got %v", err)
	}
}

func TestUpdateDocumentCategoryTriState(t *testing.T) {
	var updates []store.DocumentUpdate
	fs := &fakeStore{
		updateDocumentFn: func(_ context.Context, documentID string, update store.DocumentUpdate) (store.Document, error) {
			updates = append(updates, update)
			return store.Document{ID: documentID, Slug: update.Slug, AuthorID: "user-1"}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	base := DocumentInput{Title: "Doc", Slug: "doc", Content: "<p>Body</p>"}

	absent := base
	if _, err := svc.UpdateDocument(context.Background(), memberSession("user-1"), "doc-1", absent); err != nil {
		t.Fatalf("update with absent category: %v", err)
	}

	cleared := base
	cleared.CategoryID = Field[string]{Defined: true, Null: true}
	if _, err := svc.UpdateDocument(context.Background(), memberSession("user-1"), "doc-1", cleared); err != nil {
		t.Fatalf("update with null category: %v", err)
	}

	assigned := base
	assigned.CategoryID = Field[string]{Defined: true, Value: "cat-9"}
	if _, err := svc.UpdateDocument(context.Background(), memberSession("user-1"), "doc-1", assigned); err != nil {
		t.Fatalf("update with category value: %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("expected three updates, got %d", len(updates))
	}
	if updates[0].SetCategory {
		t.Fatalf("absent category must leave the current value")
	}
	if !updates[1].SetCategory || updates[1].CategoryID != nil {
		t.Fatalf("null category must clear: %+v", updates[1])
	}
	if !updates[2].SetCategory || updates[2].CategoryID == nil || *updates[2].CategoryID != "cat-9" {
		t.Fatalf("present category must assign cat-9: %+v", updates[2])
	}
	if updates[0].SetTags {
		t.Fatalf("nil tag ids must leave the tag set")
	}
}

func TestUpdateDocumentSlugChangeInvalidatesOldPage(t *testing.T) {
	fs := &fakeStore{
		getDocumentFn: func(_ context.Context, documentID string) (store.Document, error) {
			return store.Document{ID: documentID, Slug: "old-slug", AuthorID: "user-1"}, nil
		},
	}
	cache := newFakeCache()
	svc := newTestService(fs, nil, cache)

	if _, err := svc.UpdateDocument(context.Background(), memberSession("user-1"), "doc-1", DocumentInput{
		Title:   "Doc",
		Slug:    "new-slug",
		Content: "<p>Body</p>",
	}); err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if !contains(cache.invalidated, "/docs/old-slug") {
		t.Fatalf("expected old page to be invalidated, got %v", cache.invalidated)
	}
	if !contains(cache.invalidated, "/docs/new-slug") {
		t.Fatalf("expected new page to be invalidated, got %v", cache.invalidated)
	}
}

func TestUpdateDocumentUnpublishRemovesFromSearch(t *testing.T) {
	fsearch := &fakeSearch{}
	svc := newTestService(&fakeStore{}, fsearch, nil)

	if _, err := svc.UpdateDocument(context.Background(), memberSession("user-1"), "doc-1", DocumentInput{
		Title:     "Doc",
		Slug:      "doc",
		Content:   "<p>Body</p>",
		Published: false,
	}); err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if len(fsearch.indexed) != 0 {
		t.Fatalf("unpublished document must not be indexed")
	}
	if !contains(fsearch.deleted, "doc-1") {
		t.Fatalf("expected doc-1 removed from the index, got %v", fsearch.deleted)
	}
}

func TestDeleteDocumentCleansSearchAndPages(t *testing.T) {
	deleted := false
	fs := &fakeStore{
		getDocumentFn: func(_ context.Context, documentID string) (store.Document, error) {
			return store.Document{ID: documentID, Slug: "doomed", AuthorID: "user-1"}, nil
		},
		deleteDocumentFn: func(_ context.Context, documentID string) error {
			deleted = true
			return nil
		},
	}
	fsearch := &fakeSearch{}
	cache := newFakeCache()
	svc := newTestService(fs, fsearch, cache)

	payload, err := svc.DeleteDocument(context.Background(), memberSession("user-1"), "doc-1")
	if err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
	if !deleted {
		t.Fatalf("expected store delete")
	}
	if payload["success"] != true {
		t.Fatalf("expected success payload, got %v", payload)
	}
	if !contains(fsearch.deleted, "doc-1") {
		t.Fatalf("expected doc-1 removed from the index")
	}
	if !contains(cache.invalidated, "/docs/doomed") {
		t.Fatalf("expected page invalidation for /docs/doomed, got %v", cache.invalidated)
	}
}

func TestGetDocumentBySlugServesCachedPayload(t *testing.T) {
	fs := &fakeStore{
		getDocumentBySlugFn: func(context.Context, string) (store.Document, error) {
			t.Fatalf("cache hit must not reach the store")
			return store.Document{}, nil
		},
	}
	cache := newFakeCache()
	cache.entries["/docs/cached"] = []byte(`{"title":"Cached"}`)
	svc := newTestService(fs, nil, cache)

	payload, err := svc.GetDocumentBySlug(context.Background(), "cached")
	if err != nil {
		t.Fatalf("GetDocumentBySlug() error = %v", err)
	}
	if string(payload) != `{"title":"Cached"}` {
		t.Fatalf("expected cached payload, got %s", payload)
	}
}

func TestGetDocumentBySlugCachesRenderedPayload(t *testing.T) {
	fs := &fakeStore{
		getDocumentBySlugFn: func(_ context.Context, slug string) (store.Document, error) {
			return store.Document{ID: "doc-1", Title: "Doc", Slug: slug, Content: "<p>Body</p>", AuthorID: "user-1"}, nil
		},
		adjacentDocumentsFn: func(context.Context, string) (*store.DocumentRef, *store.DocumentRef, error) {
			return &store.DocumentRef{Title: "Before", Slug: "before"}, nil, nil
		},
	}
	cache := newFakeCache()
	svc := newTestService(fs, nil, cache)

	raw, err := svc.GetDocumentBySlug(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("GetDocumentBySlug() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	prev, ok := payload["prevDoc"].(map[string]any)
	if !ok || prev["slug"] != "before" {
		t.Fatalf("expected prevDoc before, got %v", payload["prevDoc"])
	}
	if payload["nextDoc"] != nil {
		t.Fatalf("expected nil nextDoc, got %v", payload["nextDoc"])
	}
	if _, ok := cache.stored["/docs/fresh"]; !ok {
		t.Fatalf("expected rendered payload to be cached")
	}
}

func TestCategoryMutationsRequireAdmin(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil, nil)
	sess := memberSession("user-1")

	input := CategoryInput{
		Name: Field[string]{Defined: true, Value: "Guides"},
		Slug: Field[string]{Defined: true, Value: "guides"},
	}

	if _, err := svc.CreateCategory(context.Background(), sess, input); !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN on create, got %v", err)
	}
	if _, err := svc.UpdateCategory(context.Background(), sess, "cat-1", input); !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN on update, got %v", err)
	}
	if _, err := svc.DeleteCategory(context.Background(), sess, "cat-1"); !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN on delete, got %v", err)
	}
}

func isForbidden(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "FORBIDDEN"
}

func TestUpdateCategoryAppliesPartialFields(t *testing.T) {
	var saved store.Category
	fs := &fakeStore{
		getCategoryFn: func(_ context.Context, categoryID string) (store.Category, error) {
			if saved.ID != "" {
				return saved, nil
			}
			return store.Category{ID: categoryID, Name: "Guides", Slug: "guides", Description: "Old text"}, nil
		},
		updateCategoryFn: func(_ context.Context, category store.Category) error {
			saved = category
			return nil
		},
	}
	svc := newTestService(fs, nil, nil)

	input := CategoryInput{
		Name:        Field[string]{Defined: true, Value: "Playbooks"},
		Description: Field[string]{Defined: true, Null: true},
	}
	if _, err := svc.UpdateCategory(context.Background(), adminSession("user-admin"), "cat-1", input); err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}
	if saved.Name != "Playbooks" {
		t.Fatalf("expected renamed category, got %q", saved.Name)
	}
	if saved.Slug != "guides" {
		t.Fatalf("absent slug must be kept, got %q", saved.Slug)
	}
	if saved.Description != "" {
		t.Fatalf("null description must clear, got %q", saved.Description)
	}
}

func TestDeleteCategoryPropagatesHasDocuments(t *testing.T) {
	fs := &fakeStore{
		deleteCategoryFn: func(context.Context, string) error {
			return store.ErrHasDocuments
		},
	}
	svc := newTestService(fs, nil, nil)

	_, err := svc.DeleteCategory(context.Background(), adminSession("user-admin"), "cat-1")
	if !errors.Is(err, store.ErrHasDocuments) {
		t.Fatalf("expected ErrHasDocuments, got %v", err)
	}
}

func TestCreateCommentValidatesAndInvalidatesPage(t *testing.T) {
	fs := &fakeStore{
		getDocumentFn: func(_ context.Context, documentID string) (store.Document, error) {
			return store.Document{ID: documentID, Slug: "target", AuthorID: "user-1"}, nil
		},
	}
	cache := newFakeCache()
	svc := newTestService(fs, nil, cache)

	_, err := svc.CreateComment(context.Background(), memberSession("user-2"), CommentInput{Content: "   "})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR for blank content, got %v", err)
	}

	payload, err := svc.CreateComment(context.Background(), memberSession("user-2"), CommentInput{
		Content:    "Nice write-up",
		DocumentID: "doc-1",
	})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if payload["content"] != "Nice write-up" {
		t.Fatalf("expected comment payload, got %v", payload)
	}
	if !contains(cache.invalidated, "/docs/target") {
		t.Fatalf("expected /docs/target invalidation, got %v", cache.invalidated)
	}
}

func TestDeleteCommentAuthorOrAdminOnly(t *testing.T) {
	fs := &fakeStore{
		getCommentFn: func(_ context.Context, commentID string) (store.Comment, error) {
			return store.Comment{ID: commentID, DocumentID: "doc-1", AuthorID: "user-owner"}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	if _, err := svc.DeleteComment(context.Background(), memberSession("user-other"), "cmt-1"); !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN for non-author member, got %v", err)
	}
	if _, err := svc.DeleteComment(context.Background(), memberSession("user-owner"), "cmt-1"); err != nil {
		t.Fatalf("author delete should succeed, got %v", err)
	}
	if _, err := svc.DeleteComment(context.Background(), adminSession("user-admin"), "cmt-1"); err != nil {
		t.Fatalf("admin delete should succeed, got %v", err)
	}
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil, nil)

	_, err := svc.Search(context.Background(), "   ")
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSearchReturnsEmptyResultsNotNull(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeSearch{}, nil)

	payload, err := svc.Search(context.Background(), "  kubernetes ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	results, ok := payload["results"].([]search.Result)
	if !ok || results == nil {
		t.Fatalf("expected non-nil results slice, got %T", payload["results"])
	}
	if payload["query"] != "kubernetes" {
		t.Fatalf("expected trimmed query, got %v", payload["query"])
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	fs := &fakeStore{
		lookupRefreshFn: func(_ context.Context, tokenHash string) (store.User, error) {
			return store.User{ID: "user-1", Name: "Avery", Role: "MEMBER"}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	sess, err := svc.Refresh(context.Background(), "old-refresh-token")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if sess.Token == "" || sess.RefreshToken == "" {
		t.Fatalf("expected a fresh token pair, got %+v", sess)
	}
	if sess.RefreshToken == "old-refresh-token" {
		t.Fatalf("refresh token must rotate")
	}
	if len(fs.revokedRefreshHashes) != 1 {
		t.Fatalf("expected old refresh token revoked, got %v", fs.revokedRefreshHashes)
	}
	if len(fs.savedRefreshHashes) != 1 {
		t.Fatalf("expected new refresh session saved, got %v", fs.savedRefreshHashes)
	}
}

func TestBootstrapSeedsAdminCategoriesAndDocuments(t *testing.T) {
	var users []store.User
	var categories []store.Category
	var documents []store.Document
	fs := &fakeStore{
		createUserFn: func(_ context.Context, user store.User) error {
			users = append(users, user)
			return nil
		},
		insertCategoryFn: func(_ context.Context, category store.Category) error {
			categories = append(categories, category)
			return nil
		},
		createDocumentFn: func(_ context.Context, item store.Document, _ []string) (store.Document, error) {
			documents = append(documents, item)
			item.Version = 1
			return item, nil
		},
	}
	fsearch := &fakeSearch{}
	svc := newTestService(fs, fsearch, nil)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if len(users) != 1 || users[0].Email != "admin@example.com" || users[0].Role != "ADMIN" {
		t.Fatalf("expected one seeded admin, got %+v", users)
	}
	if len(categories) != 3 {
		t.Fatalf("expected three seeded categories, got %d", len(categories))
	}
	if len(documents) != 2 {
		t.Fatalf("expected two seeded documents, got %d", len(documents))
	}
	for _, doc := range documents {
		if !doc.Published {
			t.Fatalf("seeded documents must be published: %+v", doc)
		}
		if doc.AuthorID != users[0].ID {
			t.Fatalf("seeded documents must belong to the admin")
		}
	}
	if len(fsearch.indexed) != 2 {
		t.Fatalf("expected both seeded documents indexed, got %d", len(fsearch.indexed))
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	fs := &fakeStore{
		getUserByEmailFn: func(context.Context, string) (store.User, error) {
			return store.User{ID: "user-admin", Email: "admin@example.com", Role: "ADMIN"}, nil
		},
		getCategoryBySlugFn: func(_ context.Context, slug string) (store.Category, error) {
			return store.Category{ID: "cat-" + slug, Slug: slug}, nil
		},
		getDocumentBySlugFn: func(_ context.Context, slug string) (store.Document, error) {
			return store.Document{ID: "doc-" + slug, Slug: slug}, nil
		},
		createUserFn: func(context.Context, store.User) error {
			t.Fatalf("existing admin must not be recreated")
			return nil
		},
		insertCategoryFn: func(context.Context, store.Category) error {
			t.Fatalf("existing categories must not be recreated")
			return nil
		},
		createDocumentFn: func(context.Context, store.Document, []string) (store.Document, error) {
			t.Fatalf("existing documents must not be recreated")
			return store.Document{}, nil
		},
	}
	svc := newTestService(fs, nil, nil)

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
}
