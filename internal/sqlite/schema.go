package sqlite

const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    kind TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

	upsertSlot = `INSERT INTO slots (kind, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(kind) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at`
)

// schemaDDL lists the statements applied on Open.
var schemaDDL = []string{
	createSlots,
}
