// Package wizard holds the step-wise capture state machine for one offer
// draft. It is pure: no I/O, no clock beyond the finalize timestamp, and the
// draft is owned exclusively by its Controller.
package wizard

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"offerkit/internal/domain"
)

// Step is a closed step tag; the capture flow is exactly four steps.
type Step int

const (
	StepBasics   Step = 1 // name, niche, offer type
	StepAudience Step = 2 // audience, problem, outcome
	StepDelivery Step = 3 // sessions, replays, chat, platform
	StepPricing  Step = 4 // experience, audience size, price
)

const (
	FirstStep = StepBasics
	LastStep  = StepPricing
)

func (s Step) Title() string {
	switch s {
	case StepBasics:
		return "The basics"
	case StepAudience:
		return "Your audience"
	case StepDelivery:
		return "Delivery"
	case StepPricing:
		return "Pricing"
	}
	return ""
}

// Field minimums and edit-time fallbacks.
const (
	minSessions      = 1
	minSessionLength = 15
	defSessionLength = 60
	defCurrency      = "$"
	defName          = "Untitled Offer"
)

var ErrFinalized = errors.New("wizard already finalized")

// Draft mirrors the Offer field set pre-defaults. Numeric fields are clamped
// at the point of edit, so a read never observes an out-of-range value.
type Draft struct {
	Name              string
	Niche             string
	Audience          string
	MainProblem       string
	DesiredOutcome    string
	Bonuses           string
	OfferType         domain.OfferType
	SessionsCount     int
	SessionLengthMins int
	IncludesReplays   bool
	HasGroupChat      bool
	IsFirstPaidOffer  bool
	HostPlatform      domain.HostPlatform
	HostPlatformOther string
	ExperienceLevel   domain.ExperienceLevel
	AudienceSize      domain.AudienceSize
	Price             float64
	Currency          string
}

// Controller sequences the four capture steps and accumulates field edits
// into its draft. Finalize emits the one Offer and ends the session.
type Controller struct {
	step      Step
	draft     Draft
	finalized bool
}

func New() *Controller {
	return &Controller{
		step: FirstStep,
		draft: Draft{
			OfferType:         domain.OfferWorkshop,
			SessionsCount:     minSessions,
			SessionLengthMins: defSessionLength,
			HostPlatform:      domain.PlatformStan,
			ExperienceLevel:   domain.LevelBeginner,
			AudienceSize:      domain.AudienceSmall,
			Currency:          defCurrency,
		},
	}
}

func (w *Controller) Step() Step   { return w.step }
func (w *Controller) Draft() Draft { return w.draft }

// Advance moves to the next step; at the last step it is a no-op and the
// caller decides whether to finalize instead.
func (w *Controller) Advance() {
	if w.step < LastStep {
		w.step++
	}
}

// Retreat moves to the previous step. At the first step it does not move:
// it reports cancel=true and the caller tears the wizard down.
func (w *Controller) Retreat() (cancel bool) {
	if w.step > FirstStep {
		w.step--
		return false
	}
	return true
}

// ---------- Field edits (clamped on write, never on read) ----------

func (w *Controller) SetName(s string)     { w.draft.Name = s }
func (w *Controller) SetNiche(s string)    { w.draft.Niche = s }
func (w *Controller) SetAudience(s string) { w.draft.Audience = s }
func (w *Controller) SetProblem(s string)  { w.draft.MainProblem = s }
func (w *Controller) SetOutcome(s string)  { w.draft.DesiredOutcome = s }
func (w *Controller) SetBonuses(s string)  { w.draft.Bonuses = s }

// SetOfferType never resets session fields when the type moves away from
// workshop/program: stale values are simply ignored by generation, and they
// survive if the user switches back.
func (w *Controller) SetOfferType(raw string) {
	w.draft.OfferType = domain.ParseOfferType(raw)
}

func (w *Controller) SetSessionsCount(raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < minSessions {
		n = minSessions
	}
	w.draft.SessionsCount = n
}

func (w *Controller) SetSessionLength(raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = defSessionLength
	}
	if n < minSessionLength {
		n = minSessionLength
	}
	w.draft.SessionLengthMins = n
}

func (w *Controller) SetReplays(b bool)        { w.draft.IncludesReplays = b }
func (w *Controller) SetGroupChat(b bool)      { w.draft.HasGroupChat = b }
func (w *Controller) SetFirstPaidOffer(b bool) { w.draft.IsFirstPaidOffer = b }

// SetHostPlatform retains HostPlatformOther even when the platform is not
// "other"; generation ignores it in that case.
func (w *Controller) SetHostPlatform(raw string) {
	w.draft.HostPlatform = domain.ParseHostPlatform(raw)
}

func (w *Controller) SetHostPlatformOther(s string) { w.draft.HostPlatformOther = s }

func (w *Controller) SetExperienceLevel(raw string) {
	w.draft.ExperienceLevel = domain.ParseExperienceLevel(raw)
}

func (w *Controller) SetAudienceSize(raw string) {
	w.draft.AudienceSize = domain.ParseAudienceSize(raw)
}

func (w *Controller) SetPrice(raw string) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || p < 0 {
		p = 0
	}
	w.draft.Price = p
}

func (w *Controller) SetCurrency(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defCurrency
	}
	w.draft.Currency = s
}

// Finalize constructs the Offer: fresh id, defaulted name, created-at stamp,
// draft fields copied verbatim. It does not retire the controller: if the
// caller's handoff of the record fails, Finalize may be called again (with a
// fresh id). Call Retire once the record has been accepted.
func (w *Controller) Finalize() (domain.Offer, error) {
	if w.finalized {
		return domain.Offer{}, ErrFinalized
	}

	name := strings.TrimSpace(w.draft.Name)
	if name == "" {
		name = defName
	}
	return domain.Offer{
		ID:                uuid.NewString(),
		Name:              name,
		Niche:             w.draft.Niche,
		Audience:          w.draft.Audience,
		MainProblem:       w.draft.MainProblem,
		DesiredOutcome:    w.draft.DesiredOutcome,
		Bonuses:           w.draft.Bonuses,
		OfferType:         w.draft.OfferType,
		SessionsCount:     w.draft.SessionsCount,
		SessionLengthMins: w.draft.SessionLengthMins,
		IncludesReplays:   w.draft.IncludesReplays,
		HasGroupChat:      w.draft.HasGroupChat,
		IsFirstPaidOffer:  w.draft.IsFirstPaidOffer,
		HostPlatform:      w.draft.HostPlatform,
		HostPlatformOther: w.draft.HostPlatformOther,
		ExperienceLevel:   w.draft.ExperienceLevel,
		AudienceSize:      w.draft.AudienceSize,
		Price:             w.draft.Price,
		Currency:          w.draft.Currency,
		Status:            domain.StatusReady,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Retire ends the capture session; the controller is spent afterwards and a
// new capture starts a new Controller.
func (w *Controller) Retire() { w.finalized = true }
