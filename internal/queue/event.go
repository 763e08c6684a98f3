// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for the domain events published after successful mutations.
const (
	VideoUploadedQueue = "video.uploaded"
	CommentAddedQueue  = "comment.added"
)

// VideoUploadedEvent is published when a video upload commits. It carries
// enough information for downstream consumers to log, notify, or trigger
// media processing without querying the primary database.
type VideoUploadedEvent struct {
	VideoID    uint64 `json:"video_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

// CommentAddedEvent is published when a comment insert commits. ParentID
// is zero for top-level comments.
type CommentAddedEvent struct {
	CommentID   uint64 `json:"comment_id"`
	VideoID     uint64 `json:"video_id"`
	UserID      uint64 `json:"user_id"`
	ParentID    uint64 `json:"parent_id,omitempty"`
	Comment     string `json:"comment"`
	SubmittedAt string `json:"submitted_at"`
}
