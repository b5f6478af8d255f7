package services

import (
	"errors"
	"sync"

	"offerkit/internal/copygen"
	"offerkit/internal/domain"
	"offerkit/internal/repos"
	"offerkit/internal/wizard"
)

// FreeOfferLimit is the record cap for FREE-plan users. PRO is unlimited.
const FreeOfferLimit = 3

var (
	ErrPlanLimit = errors.New("free plan offer limit reached")
	ErrNoWizard  = errors.New("no active wizard for this session")
)

// OfferService owns the active wizard drafts (one per session id) and the
// handoff of finalized offers into the repository. The wizard core itself
// is single-threaded; the map guards concurrent sessions at the boundary.
type OfferService struct {
	Offers *repos.OfferRepo

	mu      sync.Mutex
	wizards map[string]*wizard.Controller // keyed by session id
}

func NewOfferService(offers *repos.OfferRepo) *OfferService {
	return &OfferService{Offers: offers, wizards: map[string]*wizard.Controller{}}
}

// StartWizard begins a fresh capture for this session, replacing any draft
// already in progress. FREE users at the record cap are refused up front.
func (s *OfferService) StartWizard(sid string, u *domain.User) error {
	if u.Plan != "PRO" {
		n, err := s.Offers.CountByUser(u.ID)
		if err != nil {
			return err
		}
		if n >= FreeOfferLimit {
			return ErrPlanLimit
		}
	}
	s.mu.Lock()
	s.wizards[sid] = wizard.New()
	s.mu.Unlock()
	return nil
}

func (s *OfferService) Wizard(sid string) (*wizard.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[sid]
	if !ok {
		return nil, ErrNoWizard
	}
	return w, nil
}

// CancelWizard drops the session's draft (retreat past step 1).
func (s *OfferService) CancelWizard(sid string) {
	s.mu.Lock()
	delete(s.wizards, sid)
	s.mu.Unlock()
}

// FinishWizard finalizes the draft, persists the offer under the user, and
// retires the wizard. The plan cap is re-checked at the handoff so a stale
// wizard cannot slip past it.
func (s *OfferService) FinishWizard(sid string, u *domain.User) (domain.Offer, error) {
	w, err := s.Wizard(sid)
	if err != nil {
		return domain.Offer{}, err
	}
	if u.Plan != "PRO" {
		n, err := s.Offers.CountByUser(u.ID)
		if err != nil {
			return domain.Offer{}, err
		}
		if n >= FreeOfferLimit {
			return domain.Offer{}, ErrPlanLimit
		}
	}
	o, err := w.Finalize()
	if err != nil {
		return domain.Offer{}, err
	}
	// Retire only after the record is stored: an insert failure leaves the
	// wizard intact so the user can finish again once persistence recovers.
	if err := s.Offers.Insert(o, u.ID); err != nil {
		return domain.Offer{}, err
	}
	w.Retire()
	s.CancelWizard(sid)
	return o, nil
}

func (s *OfferService) List(userID string) ([]domain.Offer, error) {
	return s.Offers.ListByUser(userID)
}

// GetOwned loads an offer and enforces ownership (admins see everything).
func (s *OfferService) GetOwned(id string, u *domain.User) (domain.Offer, error) {
	o, err := s.Offers.Get(id)
	if err != nil {
		return domain.Offer{}, err
	}
	if u.Role != "ADMIN" {
		owner, err := s.Offers.OwnerID(id)
		if err != nil {
			return domain.Offer{}, err
		}
		if owner != u.ID {
			return domain.Offer{}, errors.New("offer not found")
		}
	}
	return o, nil
}

// Document derives the landing copy for an offer. Pure pass-through to the
// generation engine; the record is never mutated.
func (s *OfferService) Document(o domain.Offer) string {
	return copygen.Document(o)
}

func (s *OfferService) Delete(id, userID string) error {
	return s.Offers.Delete(id, userID)
}
