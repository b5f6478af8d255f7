package domain

// Closed-set offer fields. Parse* helpers clamp unknown input to the set's
// default so a stored Offer can never hold an out-of-set value.

type OfferType string

const (
	OfferWorkshop OfferType = "workshop"
	OfferProgram  OfferType = "program"
	OfferDigital  OfferType = "digital"
	OfferCoaching OfferType = "coaching"
)

func ParseOfferType(s string) OfferType {
	switch OfferType(s) {
	case OfferWorkshop, OfferProgram, OfferDigital, OfferCoaching:
		return OfferType(s)
	}
	return OfferWorkshop
}

// IsLive reports whether the offer type carries scheduled sessions.
func (t OfferType) IsLive() bool { return t == OfferWorkshop || t == OfferProgram }

type HostPlatform string

const (
	PlatformStan        HostPlatform = "stan"
	PlatformGumroad     HostPlatform = "gumroad"
	PlatformShopify     HostPlatform = "shopify"
	PlatformSquarespace HostPlatform = "squarespace"
	PlatformNotion      HostPlatform = "notion"
	PlatformOther       HostPlatform = "other"
)

func ParseHostPlatform(s string) HostPlatform {
	switch HostPlatform(s) {
	case PlatformStan, PlatformGumroad, PlatformShopify, PlatformSquarespace, PlatformNotion, PlatformOther:
		return HostPlatform(s)
	}
	return PlatformStan
}

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

func ParseExperienceLevel(s string) ExperienceLevel {
	switch ExperienceLevel(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return ExperienceLevel(s)
	}
	return LevelBeginner
}

type AudienceSize string

const (
	AudienceSmall  AudienceSize = "small"
	AudienceMedium AudienceSize = "medium"
	AudienceLarge  AudienceSize = "large"
)

func ParseAudienceSize(s string) AudienceSize {
	switch AudienceSize(s) {
	case AudienceSmall, AudienceMedium, AudienceLarge:
		return AudienceSize(s)
	}
	return AudienceSmall
}

type OfferStatus string

const (
	StatusDraft OfferStatus = "draft"
	StatusReady OfferStatus = "ready"
)

// Offer is a finalized offer description. Immutable once emitted by the
// wizard; any later change must produce a new record.
type Offer struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Niche             string          `db:"niche"`
	Audience          string          `db:"audience"`
	MainProblem       string          `db:"main_problem"`
	DesiredOutcome    string          `db:"desired_outcome"`
	Bonuses           string          `db:"bonuses"`
	OfferType         OfferType       `db:"offer_type"`
	SessionsCount     int             `db:"sessions_count"`
	SessionLengthMins int             `db:"session_length_mins"`
	IncludesReplays   bool            `db:"includes_replays"`
	HasGroupChat      bool            `db:"has_group_chat"`
	IsFirstPaidOffer  bool            `db:"is_first_paid_offer"`
	HostPlatform      HostPlatform    `db:"host_platform"`
	HostPlatformOther string          `db:"host_platform_other"`
	ExperienceLevel   ExperienceLevel `db:"experience_level"`
	AudienceSize      AudienceSize    `db:"audience_size"`
	Price             float64         `db:"price"`
	Currency          string          `db:"currency"`
	Status            OfferStatus     `db:"status"`
	CreatedAt         string          `db:"created_at"`
}
