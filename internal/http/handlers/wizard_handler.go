package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"offerkit/internal/domain"
	applog "offerkit/internal/log"
	"offerkit/internal/services"
	"offerkit/internal/validate"
	"offerkit/internal/wizard"
)

const freeTextMax = 500

type WizardHandler struct {
	Offers *services.OfferService
}

// Start begins a new capture. Any draft already in progress for this
// session is replaced.
func (h *WizardHandler) Start(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	u, _ := c.Locals("user").(*domain.User)
	if u == nil || sid == "" {
		return c.Redirect("/login")
	}

	if err := h.Offers.StartWizard(sid, u); err != nil {
		if errors.Is(err, services.ErrPlanLimit) {
			applog.Info(c, "wizard.limit", map[string]any{"plan": u.Plan})
			return render(c, "notfound", fiber.Map{
				"Message": "You've reached the free plan limit of 3 offers. Upgrade to keep going.",
			})
		}
		applog.Error(c, "wizard.start.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not start the wizard"})
	}
	applog.Audit(c, "wizard.start", nil)
	return c.Redirect("/offers/wizard")
}

// Show renders the current step's form.
func (h *WizardHandler) Show(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	w, err := h.Offers.Wizard(sid)
	if err != nil {
		return c.Redirect("/offers/new")
	}
	return render(c, "wizard", fiber.Map{
		"Step":      int(w.Step()),
		"StepTitle": w.Step().Title(),
		"LastStep":  int(wizard.LastStep),
		"Draft":     w.Draft(),
	})
}

// Submit applies the posted step's fields to the draft and then navigates:
// nav=back|next|finish. Field-level clamping happens inside the wizard
// setters, so bad numeric input never fails the request.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	w, err := h.Offers.Wizard(sid)
	if err != nil {
		return c.Redirect("/offers/new")
	}

	h.applyFields(c, w)

	switch c.FormValue("nav") {
	case "back":
		if cancel := w.Retreat(); cancel {
			h.Offers.CancelWizard(sid)
			applog.Audit(c, "wizard.cancel", nil)
			return c.Redirect("/")
		}
	case "finish":
		if w.Step() == wizard.LastStep {
			o, err := h.Offers.FinishWizard(sid, u)
			if err != nil {
				if errors.Is(err, services.ErrPlanLimit) {
					return render(c, "notfound", fiber.Map{
						"Message": "You've reached the free plan limit of 3 offers. Upgrade to keep going.",
					})
				}
				applog.Error(c, "wizard.finish.fail", err, nil)
				return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save your offer"})
			}
			applog.Audit(c, "wizard.finish", map[string]any{"offer_id": o.ID})
			return c.Redirect("/offers/" + o.ID)
		}
		w.Advance()
	default:
		w.Advance()
	}
	return c.Redirect("/offers/wizard")
}

// applyFields writes the fields belonging to the current step. Fields from
// other steps are left alone so back-and-forth never loses input.
func (h *WizardHandler) applyFields(c *fiber.Ctx, w *wizard.Controller) {
	switch w.Step() {
	case wizard.StepBasics:
		w.SetName(validate.Text(c.FormValue("name"), freeTextMax))
		w.SetNiche(validate.Text(c.FormValue("niche"), freeTextMax))
		w.SetOfferType(c.FormValue("offer_type"))
	case wizard.StepAudience:
		w.SetAudience(validate.Text(c.FormValue("audience"), freeTextMax))
		w.SetProblem(validate.Text(c.FormValue("main_problem"), freeTextMax))
		w.SetOutcome(validate.Text(c.FormValue("desired_outcome"), freeTextMax))
	case wizard.StepDelivery:
		w.SetSessionsCount(c.FormValue("sessions_count"))
		w.SetSessionLength(c.FormValue("session_length"))
		w.SetReplays(validate.Checkbox(c.FormValue("includes_replays")))
		w.SetGroupChat(validate.Checkbox(c.FormValue("has_group_chat")))
		w.SetBonuses(validate.Text(c.FormValue("bonuses"), freeTextMax))
		w.SetHostPlatform(c.FormValue("host_platform"))
		w.SetHostPlatformOther(validate.Text(c.FormValue("host_platform_other"), freeTextMax))
	case wizard.StepPricing:
		w.SetExperienceLevel(c.FormValue("experience_level"))
		w.SetAudienceSize(c.FormValue("audience_size"))
		w.SetPrice(c.FormValue("price"))
		w.SetCurrency(validate.Text(c.FormValue("currency"), 8))
		w.SetFirstPaidOffer(validate.Checkbox(c.FormValue("is_first_paid_offer")))
	}
}
