package repos

import (
	"offerkit/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

const offerCols = `
  id, name, niche, audience, main_problem, desired_outcome, bonuses,
  offer_type, sessions_count, session_length_mins,
  includes_replays, has_group_chat, is_first_paid_offer,
  host_platform, host_platform_other, experience_level, audience_size,
  price, currency, status, created_at`

// Insert appends a finalized offer to the owner's collection.
func (r *OfferRepo) Insert(o domain.Offer, userID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO offers(
	    id, user_id, name, niche, audience, main_problem, desired_outcome, bonuses,
	    offer_type, sessions_count, session_length_mins,
	    includes_replays, has_group_chat, is_first_paid_offer,
	    host_platform, host_platform_other, experience_level, audience_size,
	    price, currency, status, created_at
	  ) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, userID, o.Name, o.Niche, o.Audience, o.MainProblem, o.DesiredOutcome, o.Bonuses,
		o.OfferType, o.SessionsCount, o.SessionLengthMins,
		o.IncludesReplays, o.HasGroupChat, o.IsFirstPaidOffer,
		o.HostPlatform, o.HostPlatformOther, o.ExperienceLevel, o.AudienceSize,
		o.Price, o.Currency, o.Status, o.CreatedAt)
	return err
}

func (r *OfferRepo) Get(id string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.Get(&o, `SELECT `+offerCols+` FROM offers WHERE id = ?`, id)
	return o, err
}

// OwnerID returns the user an offer belongs to (for access checks).
func (r *OfferRepo) OwnerID(id string) (string, error) {
	var uid string
	err := r.db.Get(&uid, `SELECT user_id FROM offers WHERE id = ?`, id)
	return uid, err
}

func (r *OfferRepo) ListByUser(userID string) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.Select(&out, `
	  SELECT `+offerCols+`
	  FROM offers
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OfferRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM offers WHERE user_id = ?`, userID)
	return n, err
}

func (r *OfferRepo) Delete(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM offers WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// Admin list summary
type OfferSummary struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Name      string  `db:"name"`
	OfferType string  `db:"offer_type"`
	Price     float64 `db:"price"`
	CreatedAt string  `db:"created_at"`
}

func (r *OfferRepo) ListLatest(limit int) ([]OfferSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OfferSummary
	err := r.db.Select(&out, `
	  SELECT id, user_id, name, offer_type, price, created_at
	  FROM offers
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
