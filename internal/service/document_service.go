package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/kaelis/notemark/internal/model"
	"github.com/kaelis/notemark/internal/pkg/dbutil"
	appErr "github.com/kaelis/notemark/internal/pkg/errors"
	"github.com/kaelis/notemark/internal/pkg/timeutil"
	"github.com/kaelis/notemark/internal/repo"
)

type DocumentService struct {
	docs     *repo.DocumentRepo
	versions *repo.VersionRepo
}

func NewDocumentService(docs *repo.DocumentRepo, versions *repo.VersionRepo) *DocumentService {
	return &DocumentService{docs: docs, versions: versions}
}

type DocumentCreateInput struct {
	Title       string
	Slug        string
	Description string
	Folder      string
	Tags        string
	IsPinned    bool
	IsArchived  bool
}

// DocumentUpdateInput uses pointers so "not provided" and "provided as zero"
// stay distinct; only non-nil fields reach the UPDATE.
type DocumentUpdateInput struct {
	Title       *string
	Slug        *string
	Description *string
	Folder      *string
	Tags        *string
	IsPinned    *bool
	IsArchived  *bool
}

func (in DocumentUpdateInput) fields() map[string]interface{} {
	update := map[string]interface{}{}
	if in.Title != nil {
		update["title"] = *in.Title
	}
	if in.Slug != nil {
		update["slug"] = *in.Slug
	}
	if in.Description != nil {
		update["description"] = *in.Description
	}
	if in.Folder != nil {
		update["folder"] = *in.Folder
	}
	if in.Tags != nil {
		update["tags"] = *in.Tags
	}
	if in.IsPinned != nil {
		update["is_pinned"] = *in.IsPinned
	}
	if in.IsArchived != nil {
		update["is_archived"] = *in.IsArchived
	}
	return update
}

type VersionCreateInput struct {
	VersionLabel string
	Content      string
	IsAutosave   bool
	IsCurrent    bool
}

type VersionUpdateInput struct {
	VersionLabel *string
	Content      *string
	IsAutosave   *bool
	IsCurrent    *bool
}

func (in VersionUpdateInput) fields() map[string]interface{} {
	update := map[string]interface{}{}
	if in.VersionLabel != nil {
		update["version_label"] = *in.VersionLabel
	}
	if in.Content != nil {
		update["content"] = *in.Content
	}
	if in.IsAutosave != nil {
		update["is_autosave"] = *in.IsAutosave
	}
	if in.IsCurrent != nil {
		update["is_current"] = *in.IsCurrent
	}
	return update
}

func (s *DocumentService) Create(ctx context.Context, userID string, in DocumentCreateInput) (*model.Document, error) {
	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:          newID(),
		UserID:      userID,
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Folder:      in.Folder,
		Tags:        in.Tags,
		IsPinned:    in.IsPinned,
		IsArchived:  in.IsArchived,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("document created", zap.String("document_id", doc.ID), zap.String("user_id", userID))
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, userID, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) Update(ctx context.Context, userID, docID string, in DocumentUpdateInput) (*model.Document, error) {
	update := in.fields()
	if len(update) == 0 {
		return nil, appErr.ErrInvalid
	}
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	// mtime must move forward even for same-second writes.
	mtime := timeutil.NowUnix()
	if mtime <= doc.Mtime {
		mtime = doc.Mtime + 1
	}
	update["mtime"] = mtime
	if err := s.docs.UpdateFields(ctx, userID, docID, update); err != nil {
		return nil, err
	}
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) List(ctx context.Context, userID string, includeArchived, pinnedOnly bool) ([]model.Document, error) {
	return s.docs.List(ctx, userID, includeArchived, pinnedOnly)
}

func (s *DocumentService) CreateVersion(ctx context.Context, userID, docID string, in VersionCreateInput) (*model.DocumentVersion, error) {
	if in.Content == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	version := &model.DocumentVersion{
		ID:           newID(),
		DocumentID:   docID,
		UserID:       userID,
		VersionLabel: in.VersionLabel,
		Content:      in.Content,
		IsAutosave:   in.IsAutosave,
		IsCurrent:    in.IsCurrent,
		Ctime:        timeutil.NowUnix(),
	}
	var err error
	if in.IsCurrent {
		err = s.versions.CreateCurrent(ctx, version)
	} else {
		err = s.versions.Create(ctx, version)
	}
	if err != nil {
		if dbutil.IsConflict(err) {
			return nil, appErr.ErrConflict
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("version created",
		zap.String("document_id", docID),
		zap.String("version_id", version.ID),
		zap.Bool("is_current", in.IsCurrent),
		zap.Bool("is_autosave", in.IsAutosave),
	)
	return version, nil
}

func (s *DocumentService) GetVersion(ctx context.Context, userID, docID, versionID string) (*model.DocumentVersion, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.versions.GetByID(ctx, docID, versionID)
}

func (s *DocumentService) UpdateVersion(ctx context.Context, userID, docID, versionID string, in VersionUpdateInput) (*model.DocumentVersion, error) {
	update := in.fields()
	if len(update) == 0 {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	if _, err := s.versions.GetByID(ctx, docID, versionID); err != nil {
		return nil, err
	}
	var err error
	if in.IsCurrent != nil && *in.IsCurrent {
		err = s.versions.UpdateFieldsCurrent(ctx, docID, versionID, update)
	} else {
		err = s.versions.UpdateFields(ctx, docID, versionID, update)
	}
	if err != nil {
		if dbutil.IsConflict(err) {
			return nil, appErr.ErrConflict
		}
		return nil, err
	}
	return s.versions.GetByID(ctx, docID, versionID)
}

func (s *DocumentService) ListVersions(ctx context.Context, userID, docID string) ([]model.DocumentVersion, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.versions.List(ctx, docID)
}
