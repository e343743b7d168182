package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/kaelis/notemark/internal/model"
	"github.com/kaelis/notemark/internal/pkg/dbutil"
	appErr "github.com/kaelis/notemark/internal/pkg/errors"
)

var versionColumns = []string{"id", "document_id", "user_id", "version_label", "content", "is_autosave", "is_current", "ctime"}

type VersionRepo struct {
	db *sql.DB
}

func NewVersionRepo(db *sql.DB) *VersionRepo {
	return &VersionRepo{db: db}
}

func scanVersion(rows *sql.Rows) (*model.DocumentVersion, error) {
	var v model.DocumentVersion
	if err := rows.Scan(&v.ID, &v.DocumentID, &v.UserID, &v.VersionLabel, &v.Content, &v.IsAutosave, &v.IsCurrent, &v.Ctime); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VersionRepo) Create(ctx context.Context, version *model.DocumentVersion) error {
	data := map[string]interface{}{
		"id":            version.ID,
		"document_id":   version.DocumentID,
		"user_id":       version.UserID,
		"version_label": version.VersionLabel,
		"content":       version.Content,
		"is_autosave":   version.IsAutosave,
		"is_current":    version.IsCurrent,
		"ctime":         version.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("document_versions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// CreateCurrent inserts a version that becomes the document's current one.
// The sibling clear and the insert share a transaction so a crash or a
// concurrent writer cannot leave two current versions.
func (r *VersionRepo) CreateCurrent(ctx context.Context, version *model.DocumentVersion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		"UPDATE document_versions SET is_current = FALSE WHERE document_id = $1 AND is_current",
		version.DocumentID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO document_versions (id, document_id, user_id, version_label, content, is_autosave, is_current, ctime) VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)",
		version.ID, version.DocumentID, version.UserID, version.VersionLabel, version.Content, version.IsAutosave, version.Ctime,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID is scoped to the document so a version id from another document
// resolves to ErrNotFound; ownership of the document is the caller's problem.
func (r *VersionRepo) GetByID(ctx context.Context, docID, versionID string) (*model.DocumentVersion, error) {
	where := map[string]interface{}{
		"id":          versionID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildSelect("document_versions", where, versionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanVersion(rows)
}

func (r *VersionRepo) List(ctx context.Context, docID string) ([]model.DocumentVersion, error) {
	where := map[string]interface{}{
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildSelect("document_versions", where, versionColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	versions := make([]model.DocumentVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func (r *VersionRepo) UpdateFields(ctx context.Context, docID, versionID string, update map[string]interface{}) error {
	where := map[string]interface{}{
		"id":          versionID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildUpdate("document_versions", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// UpdateFieldsCurrent applies a partial update that promotes the version to
// current, clearing its siblings in the same transaction.
func (r *VersionRepo) UpdateFieldsCurrent(ctx context.Context, docID, versionID string, update map[string]interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		"UPDATE document_versions SET is_current = FALSE WHERE document_id = $1 AND id != $2 AND is_current",
		docID, versionID,
	); err != nil {
		return err
	}
	where := map[string]interface{}{
		"id":          versionID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildUpdate("document_versions", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return tx.Commit()
}
