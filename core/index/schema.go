package index

// schemaVersion is stored in meta and bumped whenever the tables change.
const schemaVersion = "1"

const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS individuals (
		id TEXT PRIMARY KEY,
		given TEXT NOT NULL DEFAULT '',
		surname TEXT NOT NULL DEFAULT '',
		sex TEXT NOT NULL DEFAULT '',
		birth_date TEXT NOT NULL DEFAULT '',
		birth_place TEXT NOT NULL DEFAULT '',
		death_date TEXT NOT NULL DEFAULT '',
		death_place TEXT NOT NULL DEFAULT '',
		uid TEXT NOT NULL DEFAULT '',
		famc TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		husband TEXT NOT NULL DEFAULT '',
		wife TEXT NOT NULL DEFAULT '',
		marriage_date TEXT NOT NULL DEFAULT '',
		marriage_place TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS children (
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		individual_id TEXT NOT NULL,
		PRIMARY KEY (family_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_individuals_surname ON individuals(surname COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_children_individual ON children(individual_id);
`
