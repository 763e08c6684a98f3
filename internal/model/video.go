package model

import "time"

// Video mirrors the `videos` table.  The media file itself lives outside
// the database; Filename references it.  Duration is recorded in seconds
// at upload time.
type Video struct {
	ID          uint64    // videos.video_id
	UserID      uint64    // videos.user_id
	Title       string    // videos.title
	Filename    string    // videos.filename
	Description string    // videos.description
	Duration    uint32    // videos.duration (seconds)
	UploadDate  time.Time // videos.upload_date
}
