package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the audit database schema.
const Schema = `
-- Audit records table
CREATE TABLE IF NOT EXISTS audit_records (
    id TEXT PRIMARY KEY,

    -- Timestamps
    time TIMESTAMP NOT NULL,
    recorded_time TIMESTAMP NOT NULL,

    -- Extracted fields
    level TEXT NOT NULL,
    service TEXT,
    environment TEXT,
    domain TEXT,
    correlation_id TEXT,
    message TEXT,

    -- Remaining structured fields as JSON
    fields TEXT,

    -- Original serialized log line
    raw BLOB
);

-- Indexes for common query patterns
CREATE INDEX IF NOT EXISTS idx_audit_time ON audit_records(time);
CREATE INDEX IF NOT EXISTS idx_audit_level ON audit_records(level);
CREATE INDEX IF NOT EXISTS idx_audit_domain ON audit_records(domain);
CREATE INDEX IF NOT EXISTS idx_audit_correlation ON audit_records(correlation_id);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`
