package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"scribe/api/internal/auth"
	"scribe/api/internal/authpw"
	"scribe/api/internal/config"
	"scribe/api/internal/export"
	"scribe/api/internal/rbac"
	"scribe/api/internal/revalidate"
	"scribe/api/internal/search"
	"scribe/api/internal/store"
	"scribe/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Role         string
	ExpiresAt    time.Time
}

// DocumentInput is the request body for creating and updating a
// document. CategoryID is tri-state: absent keeps the current
// category, null clears it, an id sets it. TagIDs replaces the tag set
// when present.
type DocumentInput struct {
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Subtitle   string        `json:"subtitle"`
	Content    string        `json:"content"`
	Published  bool          `json:"published"`
	CategoryID Field[string] `json:"categoryId"`
	TagIDs     []string      `json:"tagIds"`
}

// CategoryInput is the request body for creating and updating a
// category. Absent fields are left unchanged on update.
type CategoryInput struct {
	Name        Field[string] `json:"name"`
	Slug        Field[string] `json:"slug"`
	Description Field[string] `json:"description"`
}

type CommentInput struct {
	Content    string `json:"content"`
	DocumentID string `json:"documentId"`
}

type dataStore interface {
	CreateUser(ctx context.Context, user store.User) error
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByID(ctx context.Context, userID string) (store.User, error)

	ListCategories(ctx context.Context) ([]store.Category, error)
	GetCategory(ctx context.Context, categoryID string) (store.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (store.Category, error)
	InsertCategory(ctx context.Context, category store.Category) error
	UpdateCategory(ctx context.Context, category store.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error

	ListDocuments(ctx context.Context, filter store.DocumentFilter) ([]store.Document, error)
	GetDocument(ctx context.Context, documentID string) (store.Document, error)
	GetDocumentBySlug(ctx context.Context, slug string) (store.Document, error)
	AdjacentDocuments(ctx context.Context, slug string) (*store.DocumentRef, *store.DocumentRef, error)
	CreateDocument(ctx context.Context, item store.Document, tagIDs []string) (store.Document, error)
	UpdateDocument(ctx context.Context, documentID string, update store.DocumentUpdate) (store.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error

	InsertComment(ctx context.Context, comment store.Comment) (store.Comment, error)
	GetComment(ctx context.Context, commentID string) (store.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error

	Ping(ctx context.Context) error
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, user store.User, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type searchIndex interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
	IndexDocument(rec search.DocumentRecord)
	DeleteDocument(id string)
}

type pageCache interface {
	Get(ctx context.Context, path string) ([]byte, bool)
	Store(ctx context.Context, path string, payload []byte)
	Invalidate(ctx context.Context, paths ...string)
}

type pdfExporter interface {
	ExportPDF(ctx context.Context, req export.Request) (*export.Result, error)
}

type Service struct {
	cfg       config.Config
	store     dataStore
	sessions  sessionStore
	search    searchIndex
	cache     pageCache
	exporter  pdfExporter
	passwords *authpw.Service
}

// New wires the service with refresh sessions stored in Postgres.
func New(cfg config.Config, dataStore *store.PostgresStore, searchSvc *search.Service, cache *revalidate.Cache, exporter *export.Service, passwords *authpw.Service) *Service {
	return NewWithSessionStore(cfg, dataStore, dataStore, searchSvc, cache, exporter, passwords)
}

// NewWithSessionStore wires the service with an external refresh
// session store, normally Redis.
func NewWithSessionStore(cfg config.Config, dataStore *store.PostgresStore, sessions sessionStore, searchSvc *search.Service, cache *revalidate.Cache, exporter *export.Service, passwords *authpw.Service) *Service {
	return &Service{
		cfg:       cfg,
		store:     dataStore,
		sessions:  sessions,
		search:    searchSvc,
		cache:     cache,
		exporter:  exporter,
		passwords: passwords,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Bootstrap seeds the admin account, the default categories, and two
// published sample documents. Idempotent: existing rows are kept.
func (s *Service) Bootstrap(ctx context.Context) error {
	admin, err := s.store.GetUserByEmail(ctx, "admin@example.com")
	if errors.Is(err, sql.ErrNoRows) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("seed admin: %w", hashErr)
		}
		admin = store.User{
			ID:           util.NewID("usr"),
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         string(rbac.RoleAdmin),
		}
		if err := s.store.CreateUser(ctx, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	} else if err != nil {
		return err
	}

	categorySeeds := []store.Category{
		{Name: "Getting Started", Slug: "getting-started", Description: "Everything you need to know to get started with our platform"},
		{Name: "Guides", Slug: "guides", Description: "Step-by-step guides for common tasks"},
		{Name: "API Reference", Slug: "api-reference", Description: "Detailed API documentation for developers"},
	}
	categoryIDs := map[string]string{}
	for _, seed := range categorySeeds {
		existing, err := s.store.GetCategoryBySlug(ctx, seed.Slug)
		if err == nil {
			categoryIDs[seed.Slug] = existing.ID
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		seed.ID = util.NewID("cat")
		if err := s.store.InsertCategory(ctx, seed); err != nil {
			return fmt.Errorf("seed category %s: %w", seed.Slug, err)
		}
		categoryIDs[seed.Slug] = seed.ID
	}

	documentSeeds := []struct {
		Title        string
		Slug         string
		Subtitle     string
		Content      string
		CategorySlug string
	}{
		{
			Title:        "Getting Started with Scribe",
			Slug:         "getting-started",
			Subtitle:     "Learn how to get started with our documentation platform",
			Content:      "<h1>Getting Started with Scribe</h1><p>Welcome to Scribe! This guide will help you get started with the documentation system.</p><h2>Installation</h2><pre><code>npm install @scribe/docs</code></pre><h2>Usage</h2><p>Create a docs folder, add your pages, and run the development server.</p>",
			CategorySlug: "getting-started",
		},
		{
			Title:        "API Reference",
			Slug:         "api-reference",
			Subtitle:     "Complete API documentation for developers",
			Content:      "<h1>API Reference</h1><p>All API requests require authentication using a bearer token.</p><h2>Endpoints</h2><p>GET /documents returns all documents. GET /documents/:slug returns a single document. POST, PUT and DELETE mutate documents.</p>",
			CategorySlug: "api-reference",
		},
	}
	for _, seed := range documentSeeds {
		if _, err := s.store.GetDocumentBySlug(ctx, seed.Slug); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		categoryID := categoryIDs[seed.CategorySlug]
		item := store.Document{
			ID:        util.NewID("doc"),
			Title:     seed.Title,
			Slug:      seed.Slug,
			Subtitle:  seed.Subtitle,
			Content:   seed.Content,
			Published: true,
			AuthorID:  admin.ID,
		}
		if categoryID != "" {
			item.CategoryID = &categoryID
		}
		created, err := s.store.CreateDocument(ctx, item, nil)
		if err != nil {
			return fmt.Errorf("seed document %s: %w", seed.Slug, err)
		}
		s.search.IndexDocument(searchRecord(created))
	}
	return nil
}

// ---- sessions ----

func (s *Service) SignUp(ctx context.Context, req authpw.SignUpRequest) (Session, error) {
	user, err := s.passwords.SignUp(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := s.passwords.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	user, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)

	token, err := auth.IssueToken([]byte(s.cfg.TokenSecret), auth.Claims{
		Sub:  user.ID,
		Name: user.Name,
		Role: user.Role,
		Exp:  expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.Name,
		Role:         user.Role,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.TokenSecret), token)
	if err != nil {
		return Session{}, err
	}
	user, err := s.store.GetUserByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		UserID:    user.ID,
		UserName:  user.Name,
		Role:      user.Role,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

// ---- documents ----

func (s *Service) ListDocuments(ctx context.Context, filter store.DocumentFilter) ([]map[string]any, error) {
	documents, err := s.store.ListDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(documents))
	for _, doc := range documents {
		items = append(items, documentPayload(doc, false, false))
	}
	return items, nil
}

func (s *Service) GetDocument(ctx context.Context, documentID string) (map[string]any, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return documentPayload(doc, true, false), nil
}

// GetDocumentBySlug serves the rendered page payload from the page
// cache when possible; mutations invalidate the cached entry.
func (s *Service) GetDocumentBySlug(ctx context.Context, slug string) (json.RawMessage, error) {
	path := "/docs/" + slug
	if cached, ok := s.cache.Get(ctx, path); ok {
		return cached, nil
	}

	doc, err := s.store.GetDocumentBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	prev, next, err := s.store.AdjacentDocuments(ctx, slug)
	if err != nil {
		return nil, err
	}

	payload := documentPayload(doc, true, true)
	payload["prevDoc"] = documentRefPayload(prev)
	payload["nextDoc"] = documentRefPayload(next)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, path, data)
	return data, nil
}

func (s *Service) CreateDocument(ctx context.Context, session Session, input DocumentInput) (map[string]any, error) {
	if err := validateDocumentInput(input); err != nil {
		return nil, err
	}

	item := store.Document{
		ID:        util.NewID("doc"),
		Title:     input.Title,
		Slug:      input.Slug,
		Subtitle:  input.Subtitle,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  session.UserID,
	}
	if input.CategoryID.Set() {
		categoryID := input.CategoryID.Value
		item.CategoryID = &categoryID
	}

	created, err := s.store.CreateDocument(ctx, item, input.TagIDs)
	if err != nil {
		return nil, err
	}

	if created.Published {
		s.search.IndexDocument(searchRecord(created))
	}
	s.cache.Invalidate(ctx, "/docs", "/dashboard")
	return documentPayload(created, true, false), nil
}

func (s *Service) UpdateDocument(ctx context.Context, session Session, documentID string, input DocumentInput) (map[string]any, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManage(rbac.Role(session.Role), session.UserID, doc.AuthorID) {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	if err := validateDocumentInput(input); err != nil {
		return nil, err
	}

	update := store.DocumentUpdate{
		Title:       input.Title,
		Slug:        input.Slug,
		Subtitle:    input.Subtitle,
		Content:     input.Content,
		Published:   input.Published,
		SetCategory: input.CategoryID.Defined,
		SetTags:     input.TagIDs != nil,
		TagIDs:      input.TagIDs,
	}
	if input.CategoryID.Set() {
		categoryID := input.CategoryID.Value
		update.CategoryID = &categoryID
	}

	updated, err := s.store.UpdateDocument(ctx, documentID, update)
	if err != nil {
		return nil, err
	}

	if updated.Published {
		s.search.IndexDocument(searchRecord(updated))
	} else {
		s.search.DeleteDocument(updated.ID)
	}
	s.cache.Invalidate(ctx, "/docs", "/docs/"+updated.Slug, "/dashboard")
	if doc.Slug != updated.Slug {
		s.cache.Invalidate(ctx, "/docs/"+doc.Slug)
	}
	return documentPayload(updated, true, false), nil
}

func (s *Service) DeleteDocument(ctx context.Context, session Session, documentID string) (map[string]any, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManage(rbac.Role(session.Role), session.UserID, doc.AuthorID) {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}

	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return nil, err
	}
	s.search.DeleteDocument(documentID)
	s.cache.Invalidate(ctx, "/docs", "/docs/"+doc.Slug, "/dashboard")
	return map[string]any{"success": true}, nil
}

func validateDocumentInput(input DocumentInput) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(input.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields", map[string]any{"missing": missing})
	}
	return nil
}

// ---- categories ----

func (s *Service) ListCategories(ctx context.Context) ([]map[string]any, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		items = append(items, categoryPayload(category, true, false))
	}
	return items, nil
}

func (s *Service) GetCategory(ctx context.Context, categoryID string) (map[string]any, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return categoryPayload(category, true, true), nil
}

func (s *Service) CreateCategory(ctx context.Context, session Session, input CategoryInput) (map[string]any, error) {
	if !rbac.Role(session.Role).IsAdmin() {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	if strings.TrimSpace(input.Name.Value) == "" || strings.TrimSpace(input.Slug.Value) == "" {
		return nil, domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Name and slug are required", nil)
	}

	category := store.Category{
		ID:          util.NewID("cat"),
		Name:        input.Name.Value,
		Slug:        input.Slug.Value,
		Description: input.Description.Value,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	created, err := s.store.GetCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return categoryPayload(created, false, false), nil
}

func (s *Service) UpdateCategory(ctx context.Context, session Session, categoryID string, input CategoryInput) (map[string]any, error) {
	if !rbac.Role(session.Role).IsAdmin() {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name.Set() {
		category.Name = input.Name.Value
	}
	if input.Slug.Set() {
		category.Slug = input.Slug.Value
	}
	if input.Description.Defined {
		category.Description = input.Description.Value
	}
	if strings.TrimSpace(category.Name) == "" || strings.TrimSpace(category.Slug) == "" {
		return nil, domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Name and slug are required", nil)
	}

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	updated, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return categoryPayload(updated, false, false), nil
}

func (s *Service) DeleteCategory(ctx context.Context, session Session, categoryID string) (map[string]any, error) {
	if !rbac.Role(session.Role).IsAdmin() {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}
	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return map[string]any{"success": true}, nil
}

// ---- comments ----

func (s *Service) CreateComment(ctx context.Context, session Session, input CommentInput) (map[string]any, error) {
	if strings.TrimSpace(input.Content) == "" || strings.TrimSpace(input.DocumentID) == "" {
		return nil, domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Content and documentId are required", nil)
	}

	doc, err := s.store.GetDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.InsertComment(ctx, store.Comment{
		ID:         util.NewID("cmt"),
		Content:    input.Content,
		DocumentID: doc.ID,
		AuthorID:   session.UserID,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, "/docs/"+doc.Slug)
	return commentPayload(comment), nil
}

func (s *Service) DeleteComment(ctx context.Context, session Session, commentID string) (map[string]any, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManage(rbac.Role(session.Role), session.UserID, comment.AuthorID) {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}

	doc, err := s.store.GetDocument(ctx, comment.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, "/docs/"+doc.Slug)
	return map[string]any{"success": true}, nil
}

// ---- search ----

func (s *Service) Search(ctx context.Context, query string) (map[string]any, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Search query is required", nil)
	}
	results, err := s.search.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []search.Result{}
	}
	return map[string]any{"results": results, "query": trimmed}, nil
}

// ---- export ----

func (s *Service) ExportPDF(ctx context.Context, documentID string) (*export.Result, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domainError(http.StatusBadRequest, "VALIDATION_ERROR", "Document ID is required", nil)
	}
	return s.exporter.ExportPDF(ctx, export.Request{DocumentID: documentID})
}

// exportSource adapts the store to the export renderer's view of a
// document.
type exportSource struct {
	store interface {
		GetDocument(ctx context.Context, documentID string) (store.Document, error)
	}
}

// NewExportSource wraps the store for the export service.
func NewExportSource(dataStore *store.PostgresStore) export.DataStore {
	return exportSource{store: dataStore}
}

func (e exportSource) GetExportDocument(ctx context.Context, documentID string) (export.DocumentInfo, error) {
	doc, err := e.store.GetDocument(ctx, documentID)
	if err != nil {
		return export.DocumentInfo{}, err
	}
	info := export.DocumentInfo{
		ID:         doc.ID,
		Title:      doc.Title,
		Subtitle:   doc.Subtitle,
		Slug:       doc.Slug,
		Content:    doc.Content,
		AuthorName: doc.Author.Name,
		UpdatedAt:  doc.UpdatedAt,
	}
	if doc.Category != nil {
		info.CategoryName = doc.Category.Name
	}
	return info, nil
}

// ---- payloads ----

func documentPayload(doc store.Document, includeVersions, includeComments bool) map[string]any {
	payload := map[string]any{
		"id":         doc.ID,
		"title":      doc.Title,
		"slug":       doc.Slug,
		"subtitle":   doc.Subtitle,
		"content":    doc.Content,
		"published":  doc.Published,
		"version":    doc.Version,
		"authorId":   doc.AuthorID,
		"categoryId": doc.CategoryID,
		"createdAt":  doc.CreatedAt,
		"updatedAt":  doc.UpdatedAt,
		"author": map[string]any{
			"id":    doc.Author.ID,
			"name":  doc.Author.Name,
			"email": doc.Author.Email,
		},
		"tags": tagPayloads(doc.Tags),
	}
	if doc.Category != nil {
		payload["category"] = categoryPayload(*doc.Category, false, false)
	} else {
		payload["category"] = nil
	}
	if includeVersions {
		versions := make([]map[string]any, 0, len(doc.Versions))
		for _, version := range doc.Versions {
			versions = append(versions, map[string]any{
				"id":            version.ID,
				"documentId":    version.DocumentID,
				"versionNumber": version.VersionNumber,
				"title":         version.Title,
				"subtitle":      version.Subtitle,
				"content":       version.Content,
				"createdAt":     version.CreatedAt,
			})
		}
		payload["versions"] = versions
	}
	if includeComments {
		comments := make([]map[string]any, 0, len(doc.Comments))
		for _, comment := range doc.Comments {
			comments = append(comments, commentPayload(comment))
		}
		payload["comments"] = comments
	}
	return payload
}

func documentRefPayload(ref *store.DocumentRef) any {
	if ref == nil {
		return nil
	}
	return map[string]any{"title": ref.Title, "slug": ref.Slug}
}

func categoryPayload(category store.Category, includeDocuments, documentSubtitles bool) map[string]any {
	payload := map[string]any{
		"id":          category.ID,
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"createdAt":   category.CreatedAt,
		"updatedAt":   category.UpdatedAt,
	}
	if includeDocuments {
		documents := make([]map[string]any, 0, len(category.Documents))
		for _, ref := range category.Documents {
			item := map[string]any{"id": ref.ID, "title": ref.Title, "slug": ref.Slug}
			if documentSubtitles {
				item["subtitle"] = ref.Subtitle
			}
			documents = append(documents, item)
		}
		payload["documents"] = documents
	}
	return payload
}

func commentPayload(comment store.Comment) map[string]any {
	return map[string]any{
		"id":         comment.ID,
		"content":    comment.Content,
		"documentId": comment.DocumentID,
		"authorId":   comment.AuthorID,
		"createdAt":  comment.CreatedAt,
		"author": map[string]any{
			"id":    comment.Author.ID,
			"name":  comment.Author.Name,
			"email": comment.Author.Email,
			"image": comment.Author.Image,
		},
	}
}

func tagPayloads(tags []store.Tag) []map[string]any {
	items := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		items = append(items, map[string]any{"id": tag.ID, "name": tag.Name})
	}
	return items
}

func searchRecord(doc store.Document) search.DocumentRecord {
	rec := search.DocumentRecord{
		ID:        doc.ID,
		Title:     doc.Title,
		Subtitle:  doc.Subtitle,
		Slug:      doc.Slug,
		Content:   doc.Content,
		UpdatedAt: doc.UpdatedAt.Unix(),
	}
	if doc.Category != nil {
		rec.CategoryID = doc.Category.ID
		rec.CategoryName = doc.Category.Name
		rec.CategorySlug = doc.Category.Slug
	}
	return rec
}
