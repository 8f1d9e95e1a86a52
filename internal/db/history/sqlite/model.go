package sqlite

type Record struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	Timestamp  string `db:"timestamp"`
	ResultText string `db:"result_text"`
}
