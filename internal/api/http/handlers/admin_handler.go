package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/aggregate"
	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/service"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// AdminHandler exposes the cross-entity dashboard and administrative
// mutations. Every route behind it requires the admin role.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// Dashboard handles GET /admin/dashboard. Pass refresh=true to bypass the
// snapshot cache.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	snapshot, err := h.admin.DashboardSnapshot(c.UserContext(), c.QueryBool("refresh"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboardResponse(snapshot)})
}

// Users handles GET /admin/users with an optional search term.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	snapshot, err := h.admin.DashboardSnapshot(c.UserContext(), false)
	if err != nil {
		return err
	}
	users := aggregate.FilterUsers(snapshot.Users, aggregate.UserFilter{
		Search: c.Query("search"),
	})
	return c.JSON(fiber.Map{"data": dto.NewUserAccountResponses(users)})
}

// Tickets handles GET /admin/tickets with search, status and priority
// filters. Status and priority accept "all" as no constraint.
func (h *AdminHandler) Tickets(c *fiber.Ctx) error {
	snapshot, err := h.admin.DashboardSnapshot(c.UserContext(), false)
	if err != nil {
		return err
	}
	tickets := aggregate.FilterTickets(snapshot.Tickets, aggregate.TicketFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	})
	return c.JSON(fiber.Map{"data": dto.NewEnrichedTicketResponses(tickets)})
}

// Feedback handles GET /admin/feedback with search and rating filters.
func (h *AdminHandler) Feedback(c *fiber.Ctx) error {
	snapshot, err := h.admin.DashboardSnapshot(c.UserContext(), false)
	if err != nil {
		return err
	}
	feedback := aggregate.FilterFeedback(snapshot.Feedback, aggregate.FeedbackFilter{
		Search: c.Query("search"),
		Rating: c.Query("rating"),
	})
	return c.JSON(fiber.Map{"data": dto.NewEnrichedFeedbackResponses(feedback)})
}

// Identities handles GET /admin/identities.
func (h *AdminHandler) Identities(c *fiber.Ctx) error {
	identities, err := h.admin.ListIdentities(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.IdentityResponse, 0, len(identities))
	for i := range identities {
		out = append(out, dto.NewIdentityResponse(&identities[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// UpdateTicketStatus handles PATCH /admin/tickets/:id/status.
func (h *AdminHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TicketStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.admin.UpdateTicketStatus(c.UserContext(), principal.Identity.ID, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// DeleteTicket handles DELETE /admin/tickets/:id. Repeating the call for an
// already-removed id succeeds.
func (h *AdminHandler) DeleteTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.admin.DeleteTicket(c.UserContext(), principal.Identity.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// DeleteFeedback handles DELETE /admin/feedback/:id.
func (h *AdminHandler) DeleteFeedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.admin.DeleteFeedback(c.UserContext(), principal.Identity.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Export handles GET /admin/export, returning a fresh snapshot as a JSON
// attachment.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	snapshot, err := h.admin.DashboardSnapshot(c.UserContext(), true)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("crm-export-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(dashboardResponse(snapshot))
}

func dashboardResponse(snapshot *service.Snapshot) dto.DashboardResponse {
	return dto.DashboardResponse{
		Stats:       snapshot.Stats,
		Users:       dto.NewUserAccountResponses(snapshot.Users),
		Tickets:     dto.NewEnrichedTicketResponses(snapshot.Tickets),
		Feedback:    dto.NewEnrichedFeedbackResponses(snapshot.Feedback),
		Warnings:    snapshot.Warnings,
		GeneratedAt: snapshot.GeneratedAt,
	}
}
