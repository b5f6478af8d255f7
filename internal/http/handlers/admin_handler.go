package handlers

import (
	applog "offerkit/internal/log"
	"offerkit/internal/repos"
	"offerkit/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users  *repos.UserRepo
	Offers *repos.OfferRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	offers, _ := h.Offers.ListLatest(25)
	return render(c, "admin", fiber.Map{"Users": users, "Offers": offers})
}

// POST /admin/users/:id/plan
func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing user id")
	}
	plan, ok := validate.Plan(c.FormValue("plan"))
	if !ok {
		return c.Status(400).SendString("plan must be FREE or PRO")
	}
	if err := h.Users.UpdatePlan(id, plan); err != nil {
		applog.Error(c, "admin.plan.update.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not update plan")
	}
	applog.Audit(c, "admin.plan.update", map[string]any{"user_id": id, "plan": plan})
	return c.Redirect("/admin")
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing user id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.user.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.user.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin")
}
