package storage

var pgMigration = []string{
	`CREATE TABLE summary (
id uuid PRIMARY KEY,
owner_id VARCHAR(255) NOT NULL,
video_url VARCHAR(255) NOT NULL,
video_title VARCHAR(255) NOT NULL,
video_thumbnail_url VARCHAR(255) NOT NULL DEFAULT '',
summary_text TEXT NOT NULL,
summary_type VARCHAR(32) NOT NULL,
summary_length VARCHAR(32) NOT NULL,
created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX summary_owner_idx ON summary (owner_id, created_at DESC)`,
}
