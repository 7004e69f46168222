package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Scans: one immutable row per analysis run, keyed by normalized URL.
CREATE TABLE IF NOT EXISTS scans (
    scan_id INTEGER PRIMARY KEY AUTOINCREMENT,
    report_id TEXT NOT NULL UNIQUE,
    url TEXT NOT NULL,
    normalized_url TEXT NOT NULL,
    domain TEXT NOT NULL,
    score INTEGER NOT NULL,
    analysis_status TEXT NOT NULL,
    readiness TEXT NOT NULL,
    snapshot_quality TEXT,
    result_json TEXT NOT NULL,          -- full AnalysisResult
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scans_normalized ON scans(normalized_url, scan_id);
CREATE INDEX IF NOT EXISTS idx_scans_domain ON scans(domain);

-- Belief state: one mutable row per lowercase domain.
CREATE TABLE IF NOT EXISTS belief_states (
    domain TEXT PRIMARY KEY,
    readiness_state TEXT NOT NULL,
    confidence_score INTEGER NOT NULL,
    blocking_factors TEXT,              -- JSON string array
    supporting_signals TEXT,            -- JSON string array
    primary_uncertainty TEXT,
    previous_state_json TEXT,           -- snapshot of the pre-write record
    last_updated TIMESTAMP NOT NULL
);

-- Belief history: append-only audit trail, idempotent per report.
CREATE TABLE IF NOT EXISTS belief_history (
    history_id INTEGER PRIMARY KEY AUTOINCREMENT,
    domain TEXT NOT NULL,
    report_id TEXT NOT NULL,
    readiness_state TEXT NOT NULL,
    confidence_score INTEGER NOT NULL,
    explanation TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    UNIQUE(domain, report_id)
);

CREATE INDEX IF NOT EXISTS idx_history_domain ON belief_history(domain, history_id);

-- Sweep results: one row per classified model response.
CREATE TABLE IF NOT EXISTS sweep_results (
    sweep_id INTEGER PRIMARY KEY AUTOINCREMENT,
    prompt TEXT NOT NULL,
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    mentioned BOOLEAN NOT NULL,
    mention_rank INTEGER,
    winner TEXT,
    confidence INTEGER NOT NULL,
    parse_failed BOOLEAN NOT NULL,
    extraction_confidence TEXT NOT NULL,
    extraction_json TEXT NOT NULL,      -- full SweepExtraction
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sweep_provider_model ON sweep_results(provider, model);
`
