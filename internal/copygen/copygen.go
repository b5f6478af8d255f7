// Package copygen derives landing-page copy from a finalized offer. Every
// generator is a total, deterministic function of the record: empty fields
// resolve to fixed fallback phrases and no branch can fail, so the same
// offer always yields byte-identical text.
package copygen

import (
	"fmt"
	"math"
	"strings"

	"offerkit/internal/domain"
)

// Section produces one labeled block of the output document.
type Section func(domain.Offer) string

// Sections is the fixed document order. Document concatenates them with one
// blank line between blocks.
var Sections = []Section{
	Hero,
	WhoThisIsFor,
	Problem,
	Promise,
	WhatYouGet,
	FAQ,
	CallToAction,
}

func Document(o domain.Offer) string {
	parts := make([]string, 0, len(Sections))
	for _, s := range Sections {
		parts = append(parts, s(o))
	}
	return strings.Join(parts, "\n\n")
}

// orElse returns the fallback when the field is empty or whitespace.
func orElse(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// TypeLabel is the human label for an offer type.
func TypeLabel(t domain.OfferType) string {
	switch t {
	case domain.OfferProgram:
		return "4-week program"
	case domain.OfferDigital:
		return "digital toolkit"
	case domain.OfferCoaching:
		return "1:1 coaching"
	}
	return "live workshop"
}

// PlatformLabel names the host platform; "other" uses the free-text name or
// a generic phrase when that is empty too.
func PlatformLabel(o domain.Offer) string {
	switch o.HostPlatform {
	case domain.PlatformGumroad:
		return "Gumroad"
	case domain.PlatformShopify:
		return "Shopify"
	case domain.PlatformSquarespace:
		return "Squarespace"
	case domain.PlatformNotion:
		return "Notion"
	case domain.PlatformOther:
		return orElse(o.HostPlatformOther, "your chosen platform")
	}
	return "Stan"
}

// FormatPrice renders currency plus the price rounded to the nearest whole
// unit; this is the only price format the document uses.
func FormatPrice(o domain.Offer) string {
	return fmt.Sprintf("%s%d", orElse(o.Currency, "$"), int(math.Round(o.Price)))
}

func offerName(o domain.Offer) string {
	return orElse(o.Name, "Untitled Offer")
}

func Hero(o domain.Offer) string {
	audience := orElse(o.Audience, "your people")
	problem := orElse(o.MainProblem, "stuck and confused")
	outcome := orElse(o.DesiredOutcome, "clear, confident action")

	var b strings.Builder
	fmt.Fprintf(&b, "%s: a %s for %s\n", offerName(o), TypeLabel(o.OfferType), audience)
	fmt.Fprintf(&b, "Stop feeling %s. Start moving toward %s.\n", problem, outcome)
	b.WriteString("You bring the work you already do. This brings the plan that makes it sell.")
	return b.String()
}

func WhoThisIsFor(o domain.Offer) string {
	audience := orElse(o.Audience, "a creator building something real")
	problem := orElse(o.MainProblem, "spinning your wheels")
	outcome := orElse(o.DesiredOutcome, "a result you can point to")

	var b strings.Builder
	b.WriteString("Who this is for\n")
	fmt.Fprintf(&b, "- You are %s\n", audience)
	fmt.Fprintf(&b, "- You are tired of %s\n", problem)
	fmt.Fprintf(&b, "- You want %s", outcome)
	return b.String()
}

func Problem(o domain.Offer) string {
	problem := orElse(o.MainProblem, "you're stuck and not sure what to do next")

	var b strings.Builder
	b.WriteString("The problem\n")
	fmt.Fprintf(&b, "- Right now, %s\n", problem)
	b.WriteString("- You've tried piecing it together from free content, and it hasn't worked\n")
	b.WriteString("- Every week without a plan costs you momentum")
	return b.String()
}

func Promise(o domain.Offer) string {
	outcome := orElse(o.DesiredOutcome, "real, visible progress")

	var b strings.Builder
	b.WriteString("What changes\n")
	fmt.Fprintf(&b, "- By the end of %s, you'll have %s\n", offerName(o), outcome)
	b.WriteString("- A repeatable process you can run without second-guessing\n")
	b.WriteString("- Proof that your offer works, in your own numbers")
	return b.String()
}

func WhatYouGet(o domain.Offer) string {
	var b strings.Builder
	b.WriteString("What you get\n")

	switch {
	case o.OfferType.IsLive():
		fmt.Fprintf(&b, "- %d live %d-minute session(s) with direct feedback\n",
			o.SessionsCount, o.SessionLengthMins)
		if o.IncludesReplays {
			b.WriteString("- Replays of every session, yours to keep\n")
		}
	case o.OfferType == domain.OfferCoaching:
		b.WriteString("- Private 1:1 calls focused entirely on your situation\n")
	default:
		b.WriteString("- The complete digital toolkit, ready the moment you buy\n")
	}

	if o.HasGroupChat {
		b.WriteString("- A private group chat for questions between sessions\n")
	}
	if strings.TrimSpace(o.Bonuses) != "" {
		fmt.Fprintf(&b, "- Bonuses: %s\n", o.Bonuses)
	}
	fmt.Fprintf(&b, "- Access and delivery via %s", PlatformLabel(o))
	return b.String()
}

func FAQ(o domain.Offer) string {
	var b strings.Builder
	b.WriteString("FAQ\n")

	b.WriteString("Q: How much time does this take?\n")
	switch {
	case o.OfferType.IsLive():
		fmt.Fprintf(&b, "A: Plan for %d session(s) of about %d minutes each, plus a little practice in between.\n",
			o.SessionsCount, o.SessionLengthMins)
	case o.OfferType == domain.OfferCoaching:
		b.WriteString("A: Calls are scheduled around you. Expect about an hour per call.\n")
	default:
		b.WriteString("A: It's self-paced. Most people get value in the first sitting.\n")
	}

	b.WriteString("Q: Do I need experience?\n")
	switch o.ExperienceLevel {
	case domain.LevelAdvanced:
		b.WriteString("A: This assumes you know the basics and focuses on leverage, not fundamentals.\n")
	case domain.LevelIntermediate:
		b.WriteString("A: Some footing helps. If you've already started, you'll move fast.\n")
	default:
		b.WriteString("A: No. Every step is spelled out for beginners.\n")
	}

	b.WriteString("Q: What if I can't make it live?\n")
	switch {
	case o.OfferType.IsLive() && o.IncludesReplays:
		b.WriteString("A: Every session is recorded. Watch the replays whenever you want.\n")
	case o.OfferType.IsLive():
		b.WriteString("A: Sessions are live only, so pick times you can attend.\n")
	default:
		b.WriteString("A: Nothing here is live. Everything is delivered straight to you.\n")
	}

	b.WriteString("Q: How much does it cost?\n")
	fmt.Fprintf(&b, "A: %s, one simple payment.", FormatPrice(o))
	return b.String()
}

func CallToAction(o domain.Offer) string {
	outcome := orElse(o.DesiredOutcome, "clear, confident action")

	var b strings.Builder
	fmt.Fprintf(&b, "Ready for %s?\n", outcome)
	fmt.Fprintf(&b, "Join %s today for %s.\n", offerName(o), FormatPrice(o))
	b.WriteString("Your audience is already waiting. Give them something to buy.")
	return b.String()
}
