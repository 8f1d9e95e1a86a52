package history

import "time"

// TimestampLayout is how record timestamps are persisted and shown to users.
const TimestampLayout = "2006-01-02 15:04:05"

type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Timestamp  time.Time `json:"timestamp"`
	ResultText string    `json:"resultText"`
}
