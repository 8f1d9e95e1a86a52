package sqlite

import "fmt"

const (
	tableName     = "history"
	colID         = "id"
	colUserID     = "user_id"
	colTimestamp  = "timestamp"
	colResultText = "result_text"
)

var createTable = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  %s INTEGER PRIMARY KEY AUTOINCREMENT,
  %s INTEGER NOT NULL,
  %s TEXT NOT NULL,
  %s TEXT NOT NULL CHECK (length(%s) > 0)
);
CREATE INDEX IF NOT EXISTS idx_history_user_id ON %s (%s, %s);`,
	tableName,
	colID,
	colUserID,
	colTimestamp,
	colResultText, colResultText,
	tableName, colUserID, colID,
)

var insert = fmt.Sprintf(`
INSERT INTO %s (%s, %s, %s)
VALUES (?, ?, ?);`,
	tableName,
	colUserID, colTimestamp, colResultText,
)

var selectRecentByUserId = fmt.Sprintf(`
SELECT %s, %s, %s, %s
FROM %s
WHERE %s = ?
ORDER BY %s DESC
LIMIT ?;`,
	colID, colUserID, colTimestamp, colResultText,
	tableName,
	colUserID,
	colID,
)

var deleteByUserId = fmt.Sprintf(`
DELETE FROM %s
WHERE %s = ?;`,
	tableName,
	colUserID,
)
