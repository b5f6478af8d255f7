package repos

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  plan TEXT NOT NULL DEFAULT 'FREE' CHECK (plan IN ('FREE','PRO')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Finalized offers (one row per record; enums constrained to their sets)
CREATE TABLE IF NOT EXISTS offers(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  niche TEXT NOT NULL DEFAULT '',
  audience TEXT NOT NULL DEFAULT '',
  main_problem TEXT NOT NULL DEFAULT '',
  desired_outcome TEXT NOT NULL DEFAULT '',
  bonuses TEXT NOT NULL DEFAULT '',
  offer_type TEXT NOT NULL CHECK (offer_type IN ('workshop','program','digital','coaching')),
  sessions_count INTEGER NOT NULL CHECK (sessions_count >= 1),
  session_length_mins INTEGER NOT NULL CHECK (session_length_mins >= 15),
  includes_replays INTEGER NOT NULL DEFAULT 0,
  has_group_chat INTEGER NOT NULL DEFAULT 0,
  is_first_paid_offer INTEGER NOT NULL DEFAULT 0,
  host_platform TEXT NOT NULL CHECK (host_platform IN ('stan','gumroad','shopify','squarespace','notion','other')),
  host_platform_other TEXT NOT NULL DEFAULT '',
  experience_level TEXT NOT NULL CHECK (experience_level IN ('beginner','intermediate','advanced')),
  audience_size TEXT NOT NULL CHECK (audience_size IN ('small','medium','large')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  currency TEXT NOT NULL DEFAULT '$',
  status TEXT NOT NULL CHECK (status IN ('draft','ready')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_offers_user       ON offers(user_id);
CREATE INDEX IF NOT EXISTS idx_offers_created_at ON offers(created_at);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures two USERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Plan, Hash string
	}
	mk := func(id, email, name, role, plan, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Plan: plan, Hash: string(h)}
	}

	users := []u{
		mk("u-maya", "maya@offerkit.test", "Maya", "USER", "FREE", "Passw0rd!"),
		mk("u-dana", "dana@offerkit.test", "Dana", "USER", "PRO", "Passw0rd!"),
		mk("u-admin", "admin@offerkit.test", "Admin", "ADMIN", "PRO", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,plan)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role, x.Plan); err != nil {
			return err
		}
	}

	return tx.Commit()
}
