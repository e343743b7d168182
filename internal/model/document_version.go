package model

type DocumentVersion struct {
	ID           string `json:"id"`
	DocumentID   string `json:"document_id"`
	UserID       string `json:"user_id"`
	VersionLabel string `json:"version_label"`
	Content      string `json:"content"`
	IsAutosave   bool   `json:"is_autosave"`
	IsCurrent    bool   `json:"is_current"`
	Ctime        int64  `json:"ctime"`
}
