package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scribe/api/internal/util"
)

var (
	// ErrSlugTaken is returned when a document or category slug is already in use.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrHasDocuments is returned when deleting a category that documents still reference.
	ErrHasDocuments = errors.New("category has documents")
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// Ping verifies the database connection is alive
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ---- users ----

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, image, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.Role)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, image, role, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Image, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, image, role, created_at, updated_at
		FROM users
		WHERE id=$1
	`, userID).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Image, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// ---- refresh sessions (fallback backend when Redis is not configured) ----

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash string, user User, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, user.ID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (User, error) {
	const query = `
		SELECT u.id, u.name, u.email, u.role
		FROM refresh_sessions rs
		JOIN users u ON u.id = rs.user_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// ---- categories ----

func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]Category, 0)
	for rows.Next() {
		var item Category
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug, &item.Description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	for i := range items {
		refs, err := s.publishedDocumentRefs(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Documents = refs
	}
	return items, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, categoryID string) (Category, error) {
	var item Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		WHERE id=$1
	`, categoryID).Scan(&item.ID, &item.Name, &item.Slug, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Category{}, err
	}
	refs, err := s.publishedDocumentRefs(ctx, item.ID)
	if err != nil {
		return Category{}, err
	}
	item.Documents = refs
	return item, nil
}

func (s *PostgresStore) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var item Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		WHERE slug=$1
	`, slug).Scan(&item.ID, &item.Name, &item.Slug, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Category{}, err
	}
	return item, nil
}

func (s *PostgresStore) publishedDocumentRefs(ctx context.Context, categoryID string) ([]DocumentRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, subtitle
		FROM documents
		WHERE category_id=$1 AND published=TRUE
		ORDER BY title ASC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category documents: %w", err)
	}
	defer rows.Close()

	refs := make([]DocumentRef, 0)
	for rows.Next() {
		var ref DocumentRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Slug, &ref.Subtitle); err != nil {
			return nil, fmt.Errorf("scan category document: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category documents: %w", err)
	}
	return refs, nil
}

func (s *PostgresStore) InsertCategory(ctx context.Context, category Category) error {
	var slugExists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug=$1)`, category.Slug).Scan(&slugExists); err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if slugExists {
		return ErrSlugTaken
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description)
		VALUES ($1, $2, $3, $4)
	`, category.ID, category.Name, category.Slug, category.Description)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, category Category) error {
	var slugExists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug=$1 AND id<>$2)`, category.Slug, category.ID).Scan(&slugExists); err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if slugExists {
		return ErrSlugTaken
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name=$2, slug=$3, description=$4, updated_at=NOW()
		WHERE id=$1
	`, category.ID, category.Name, category.Slug, category.Description)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCategory removes a category. The document count check and the
// delete run in one transaction so a document attached concurrently
// cannot be orphaned.
func (s *PostgresStore) DeleteCategory(ctx context.Context, categoryID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var docCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE category_id=$1`, categoryID).Scan(&docCount); err != nil {
		return fmt.Errorf("count category documents: %w", err)
	}
	if docCount > 0 {
		return ErrHasDocuments
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// ---- documents ----

// DocumentUpdate carries the post-edit field values for an update.
// SetCategory and SetTags distinguish "leave alone" from "replace":
// when SetCategory is true a nil CategoryID clears the association.
type DocumentUpdate struct {
	Title       string
	Slug        string
	Subtitle    string
	Content     string
	Published   bool
	SetCategory bool
	CategoryID  *string
	SetTags     bool
	TagIDs      []string
}

func (s *PostgresStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	query := `
		SELECT d.id, d.title, d.slug, d.subtitle, d.content, d.published, d.version,
			d.author_id, d.category_id, d.created_at, d.updated_at,
			u.id, u.name, u.email, u.image
		FROM documents d
		JOIN users u ON u.id = d.author_id
		WHERE ($1::boolean IS NULL OR d.published=$1)
		  AND ($2='' OR d.category_id=$2)
		ORDER BY d.updated_at DESC
	`
	args := []any{filter.Published, filter.CategoryID}
	if filter.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	items := make([]Document, 0)
	for rows.Next() {
		var item Document
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Subtitle, &item.Content, &item.Published, &item.Version,
			&item.AuthorID, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt,
			&item.Author.ID, &item.Author.Name, &item.Author.Email, &item.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	for i := range items {
		if err := s.loadDocumentAssociations(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, documentID string) (Document, error) {
	item, err := s.getDocumentRow(ctx, `d.id=$1`, documentID)
	if err != nil {
		return Document{}, err
	}
	if err := s.loadDocumentAssociations(ctx, &item); err != nil {
		return Document{}, err
	}
	versions, err := s.ListVersions(ctx, item.ID)
	if err != nil {
		return Document{}, err
	}
	item.Versions = versions
	return item, nil
}

// GetDocumentBySlug loads the document with its full relation set:
// author, category, tags, version history and comments.
func (s *PostgresStore) GetDocumentBySlug(ctx context.Context, slug string) (Document, error) {
	item, err := s.getDocumentRow(ctx, `d.slug=$1`, slug)
	if err != nil {
		return Document{}, err
	}
	if err := s.loadDocumentAssociations(ctx, &item); err != nil {
		return Document{}, err
	}
	versions, err := s.ListVersions(ctx, item.ID)
	if err != nil {
		return Document{}, err
	}
	item.Versions = versions
	comments, err := s.ListComments(ctx, item.ID)
	if err != nil {
		return Document{}, err
	}
	item.Comments = comments
	return item, nil
}

func (s *PostgresStore) getDocumentRow(ctx context.Context, where string, arg any) (Document, error) {
	query := `
		SELECT d.id, d.title, d.slug, d.subtitle, d.content, d.published, d.version,
			d.author_id, d.category_id, d.created_at, d.updated_at,
			u.id, u.name, u.email, u.image
		FROM documents d
		JOIN users u ON u.id = d.author_id
		WHERE ` + where
	var item Document
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&item.ID, &item.Title, &item.Slug, &item.Subtitle, &item.Content, &item.Published, &item.Version,
		&item.AuthorID, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt,
		&item.Author.ID, &item.Author.Name, &item.Author.Email, &item.Author.Image,
	)
	if err != nil {
		return Document{}, err
	}
	return item, nil
}

func (s *PostgresStore) loadDocumentAssociations(ctx context.Context, item *Document) error {
	if item.CategoryID != nil {
		var category Category
		err := s.db.QueryRowContext(ctx, `
			SELECT id, name, slug, description, created_at, updated_at
			FROM categories
			WHERE id=$1
		`, *item.CategoryID).Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt, &category.UpdatedAt)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load document category: %w", err)
		}
		if err == nil {
			item.Category = &category
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM document_tags dt
		JOIN tags t ON t.id = dt.tag_id
		WHERE dt.document_id=$1
		ORDER BY t.name ASC
	`, item.ID)
	if err != nil {
		return fmt.Errorf("load document tags: %w", err)
	}
	defer rows.Close()

	tags := make([]Tag, 0)
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("scan document tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate document tags: %w", err)
	}
	item.Tags = tags
	return nil
}

// AdjacentDocuments returns the published neighbours of slug in slug
// alphabetical order; either side may be nil.
func (s *PostgresStore) AdjacentDocuments(ctx context.Context, slug string) (prev, next *DocumentRef, err error) {
	var prevRef DocumentRef
	err = s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, subtitle
		FROM documents
		WHERE published=TRUE AND slug < $1
		ORDER BY slug DESC
		LIMIT 1
	`, slug).Scan(&prevRef.ID, &prevRef.Title, &prevRef.Slug, &prevRef.Subtitle)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("previous document: %w", err)
	}
	if err == nil {
		prev = &prevRef
	}

	var nextRef DocumentRef
	err = s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, subtitle
		FROM documents
		WHERE published=TRUE AND slug > $1
		ORDER BY slug ASC
		LIMIT 1
	`, slug).Scan(&nextRef.ID, &nextRef.Title, &nextRef.Slug, &nextRef.Subtitle)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("next document: %w", err)
	}
	if err == nil {
		next = &nextRef
	}
	return prev, next, nil
}

// CreateDocument inserts the document, its initial version-1 snapshot
// and any tag links in one transaction.
func (s *PostgresStore) CreateDocument(ctx context.Context, item Document, tagIDs []string) (Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, fmt.Errorf("begin create document: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var slugExists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE slug=$1)`, item.Slug).Scan(&slugExists); err != nil {
		return Document{}, fmt.Errorf("check document slug: %w", err)
	}
	if slugExists {
		return Document{}, ErrSlugTaken
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, title, slug, subtitle, content, published, version, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $8)
	`, item.ID, item.Title, item.Slug, item.Subtitle, item.Content, item.Published, item.AuthorID, item.CategoryID); err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO document_versions (id, document_id, version_number, title, subtitle, content)
		VALUES ($1, $2, 1, $3, $4, $5)
	`, util.NewID("ver"), item.ID, item.Title, item.Subtitle, item.Content); err != nil {
		return Document{}, fmt.Errorf("insert initial version: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_tags (document_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT (document_id, tag_id) DO NOTHING
		`, item.ID, tagID); err != nil {
			return Document{}, fmt.Errorf("link document tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Document{}, fmt.Errorf("commit create document: %w", err)
	}
	return s.GetDocument(ctx, item.ID)
}

// UpdateDocument snapshots a new version and overwrites the live row
// in one transaction. The snapshot records the post-edit fields, so
// the live row and its highest-numbered snapshot always match.
func (s *PostgresStore) UpdateDocument(ctx context.Context, documentID string, update DocumentUpdate) (Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, fmt.Errorf("begin update document: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var currentSlug string
	err = tx.QueryRowContext(ctx, `SELECT slug FROM documents WHERE id=$1 FOR UPDATE`, documentID).Scan(&currentSlug)
	if err != nil {
		return Document{}, err
	}

	if update.Slug != currentSlug {
		var slugExists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE slug=$1 AND id<>$2)`, update.Slug, documentID).Scan(&slugExists); err != nil {
			return Document{}, fmt.Errorf("check document slug: %w", err)
		}
		if slugExists {
			return Document{}, ErrSlugTaken
		}
	}

	var maxVersion int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version_number), 0) FROM document_versions WHERE document_id=$1
	`, documentID).Scan(&maxVersion); err != nil {
		return Document{}, fmt.Errorf("read max version: %w", err)
	}
	newVersion := maxVersion + 1

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO document_versions (id, document_id, version_number, title, subtitle, content)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, util.NewID("ver"), documentID, newVersion, update.Title, update.Subtitle, update.Content); err != nil {
		return Document{}, fmt.Errorf("insert version snapshot: %w", err)
	}

	if update.SetCategory {
		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET title=$2, slug=$3, subtitle=$4, content=$5, published=$6, version=$7, category_id=$8, updated_at=NOW()
			WHERE id=$1
		`, documentID, update.Title, update.Slug, update.Subtitle, update.Content, update.Published, newVersion, update.CategoryID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET title=$2, slug=$3, subtitle=$4, content=$5, published=$6, version=$7, updated_at=NOW()
			WHERE id=$1
		`, documentID, update.Title, update.Slug, update.Subtitle, update.Content, update.Published, newVersion)
	}
	if err != nil {
		return Document{}, fmt.Errorf("update document: %w", err)
	}

	if update.SetTags {
		if _, err := tx.ExecContext(ctx, `DELETE FROM document_tags WHERE document_id=$1`, documentID); err != nil {
			return Document{}, fmt.Errorf("clear document tags: %w", err)
		}
		for _, tagID := range update.TagIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO document_tags (document_id, tag_id)
				VALUES ($1, $2)
				ON CONFLICT (document_id, tag_id) DO NOTHING
			`, documentID, tagID); err != nil {
				return Document{}, fmt.Errorf("link document tag: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Document{}, fmt.Errorf("commit update document: %w", err)
	}
	return s.GetDocument(ctx, documentID)
}

// DeleteDocument removes the version history and the document in one
// transaction so a partial failure cannot leave orphaned snapshots.
func (s *PostgresStore) DeleteDocument(ctx context.Context, documentID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete document: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_versions WHERE document_id=$1`, documentID); err != nil {
		return fmt.Errorf("delete document versions: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id=$1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (s *PostgresStore) ListVersions(ctx context.Context, documentID string) ([]DocumentVersion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, version_number, title, subtitle, content, created_at
		FROM document_versions
		WHERE document_id=$1
		ORDER BY version_number DESC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	items := make([]DocumentVersion, 0)
	for rows.Next() {
		var item DocumentVersion
		if err := rows.Scan(&item.ID, &item.DocumentID, &item.VersionNumber, &item.Title, &item.Subtitle, &item.Content, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return items, nil
}

// ---- comments ----

func (s *PostgresStore) InsertComment(ctx context.Context, comment Comment) (Comment, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, content, document_id, author_id)
		VALUES ($1, $2, $3, $4)
	`, comment.ID, comment.Content, comment.DocumentID, comment.AuthorID)
	if err != nil {
		return Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return s.GetComment(ctx, comment.ID)
}

func (s *PostgresStore) GetComment(ctx context.Context, commentID string) (Comment, error) {
	var item Comment
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.content, c.document_id, c.author_id, c.created_at,
			u.id, u.name, u.email, u.image
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id=$1
	`, commentID).Scan(
		&item.ID, &item.Content, &item.DocumentID, &item.AuthorID, &item.CreatedAt,
		&item.Author.ID, &item.Author.Name, &item.Author.Email, &item.Author.Image,
	)
	if err != nil {
		return Comment{}, err
	}
	return item, nil
}

func (s *PostgresStore) ListComments(ctx context.Context, documentID string) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.content, c.document_id, c.author_id, c.created_at,
			u.id, u.name, u.email, u.image
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.document_id=$1
		ORDER BY c.created_at DESC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := make([]Comment, 0)
	for rows.Next() {
		var item Comment
		if err := rows.Scan(
			&item.ID, &item.Content, &item.DocumentID, &item.AuthorID, &item.CreatedAt,
			&item.Author.ID, &item.Author.Name, &item.Author.Email, &item.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, commentID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ---- tags ----

func (s *PostgresStore) EnsureTag(ctx context.Context, tag Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`, tag.ID, tag.Name)
	if err != nil {
		return fmt.Errorf("ensure tag: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	items := make([]Tag, 0)
	for rows.Next() {
		var item Tag
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return items, nil
}
