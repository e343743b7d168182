package model

type Document struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Folder      string `json:"folder"`
	Tags        string `json:"tags"`
	IsPinned    bool   `json:"is_pinned"`
	IsArchived  bool   `json:"is_archived"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}
