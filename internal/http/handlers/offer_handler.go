package handlers

import (
	"github.com/gofiber/fiber/v2"

	"offerkit/internal/domain"
	applog "offerkit/internal/log"
	"offerkit/internal/services"
	"offerkit/internal/validate"
)

type OfferHandler struct {
	Offers *services.OfferService
	Sink   services.CopySink
}

// Home lists the current user's offers.
func (h *OfferHandler) Home(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	offers, err := h.Offers.List(u.ID)
	if err != nil {
		applog.Error(c, "offers.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your offers"})
	}
	return render(c, "home", fiber.Map{
		"Offers":    offers,
		"AtLimit":   u.Plan != "PRO" && len(offers) >= services.FreeOfferLimit,
		"FreeLimit": services.FreeOfferLimit,
	})
}

func (h *OfferHandler) load(c *fiber.Ctx) (domain.Offer, *domain.User, bool) {
	u, _ := c.Locals("user").(*domain.User)
	id, ok := validate.ID(c.Params("id"))
	if u == nil || !ok {
		return domain.Offer{}, nil, false
	}
	o, err := h.Offers.GetOwned(id, u)
	if err != nil {
		applog.Security(c, "access.denied.offer", map[string]any{"offer_id": id})
		return domain.Offer{}, nil, false
	}
	return o, u, true
}

// Detail shows the offer record and its generated landing copy.
func (h *OfferHandler) Detail(c *fiber.Ctx) error {
	o, _, ok := h.load(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Offer not found"})
	}
	return render(c, "offer", fiber.Map{
		"Offer":    o,
		"Document": h.Offers.Document(o),
	})
}

// CopyText serves the concatenated document as plain text so the browser
// can select-all/copy or save it.
func (h *OfferHandler) CopyText(c *fiber.Ctx) error {
	o, _, ok := h.load(c)
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(h.Offers.Document(o))
}

// Export writes the document to the copy sink. A sink failure is a notice
// only: the generated document stays valid and the offer is untouched.
func (h *OfferHandler) Export(c *fiber.Ctx) error {
	o, _, ok := h.load(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Offer not found"})
	}
	doc := h.Offers.Document(o)
	loc, err := h.Sink.Write(o.Name, doc)
	if err != nil {
		applog.Error(c, "offer.export.fail", err, map[string]any{"offer_id": o.ID})
		return render(c, "offer", fiber.Map{
			"Offer":    o,
			"Document": doc,
			"Notice":   "Export failed. Your copy is still shown below; try again or copy it by hand.",
		})
	}
	applog.Audit(c, "offer.export", map[string]any{"offer_id": o.ID, "path": loc})
	return render(c, "offer", fiber.Map{
		"Offer":    o,
		"Document": doc,
		"Notice":   "Exported to " + loc,
	})
}

func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	o, u, ok := h.load(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Offer not found"})
	}
	if err := h.Offers.Delete(o.ID, u.ID); err != nil {
		applog.Error(c, "offer.delete.fail", err, map[string]any{"offer_id": o.ID})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not delete offer"})
	}
	applog.Audit(c, "offer.delete", map[string]any{"offer_id": o.ID})
	return c.Redirect("/")
}
