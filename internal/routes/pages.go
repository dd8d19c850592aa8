package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/bills"
	"github.com/ccms-app/dashboard/internal/cards"
	"github.com/ccms-app/dashboard/internal/emis"
	"github.com/ccms-app/dashboard/internal/notifications"
	"github.com/ccms-app/dashboard/internal/pages"
)

// PageHandler serves the signed-in screens and their actions.
type PageHandler struct {
	pages    *pages.Pages
	validate *validator.Validate
	logger   *slog.Logger
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type emiPayRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate string           `json:"payment_date,omitempty"`
}

type autoPayRequest struct {
	Enable bool `json:"enable"`
	Day    int  `json:"auto_pay_date,omitempty" validate:"omitempty,min=1,max=28"`
}

type pinRequest struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

type verifyRequest struct {
	VerificationDate string `json:"verification_date,omitempty"`
}

// Dashboard renders the landing screen. Query: reveal (comma separated card
// ids), pay and emi (card id of the open modal).
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	state := pages.DashboardState{PayCardID: c.Query("pay"), EMICardID: c.Query("emi")}
	for _, id := range strings.Split(c.Query("reveal"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			state.Revealed = append(state.Revealed, id)
		}
	}
	d, err := h.pages.Dashboard(c.UserContext(), state)
	if err != nil {
		return unavailable(err)
	}
	return render(c, d.View())
}

func (h *PageHandler) Transactions(c *fiber.Ctx) error {
	t, err := h.pages.Transactions(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return unavailable(err)
	}
	return render(c, t.View())
}

func (h *PageHandler) CardDetails(c *fiber.Ctx) error {
	view, err := h.pages.CardDetails(c.UserContext(), c.Params("id"), c.QueryBool("reveal"))
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to load card")
	}
	return render(c, view)
}

func (h *PageHandler) myCards(c *fiber.Ctx, action func(m *pages.MyCards) error) error {
	m, err := h.pages.MyCards(c.UserContext())
	if err != nil {
		return unavailable(err)
	}
	if action == nil {
		return render(c, m.View())
	}
	return renderAction(c, action(m), func() any { return m.View() })
}

func (h *PageHandler) MyCards(c *fiber.Ctx) error {
	return h.myCards(c, nil)
}

func (h *PageHandler) AddCard(c *fiber.Ctx) error {
	var req cards.CreateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.myCards(c, func(m *pages.MyCards) error { return m.Add(c.UserContext(), req) })
}

func (h *PageHandler) BlockCard(c *fiber.Ctx) error {
	return h.myCards(c, func(m *pages.MyCards) error { return m.Block(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) UnblockCard(c *fiber.Ctx) error {
	return h.myCards(c, func(m *pages.MyCards) error { return m.Unblock(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) UpdatePIN(c *fiber.Ctx) error {
	var req pinRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.myCards(c, func(m *pages.MyCards) error { return m.UpdatePIN(c.UserContext(), c.Params("id"), req.PIN) })
}

func (h *PageHandler) DeleteCard(c *fiber.Ctx) error {
	return h.myCards(c, func(m *pages.MyCards) error { return m.Delete(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) billPayments(c *fiber.Ctx, action func(b *pages.BillPayments) error) error {
	b, err := h.pages.BillPayments(c.UserContext())
	if err != nil {
		return unavailable(err)
	}
	if action == nil {
		return render(c, b.View())
	}
	return renderAction(c, action(b), func() any { return b.View() })
}

func (h *PageHandler) BillPayments(c *fiber.Ctx) error {
	return h.billPayments(c, nil)
}

func (h *PageHandler) CreateBill(c *fiber.Ctx) error {
	var req bills.CreateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.billPayments(c, func(b *pages.BillPayments) error { return b.Create(c.UserContext(), req) })
}

// PayBill pays a bill; without an amount the full bill is paid.
func (h *PageHandler) PayBill(c *fiber.Ctx) error {
	var req amountRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.billPayments(c, func(b *pages.BillPayments) error { return b.Pay(c.UserContext(), c.Params("id"), req.Amount) })
}

func (h *PageHandler) BillAutoPay(c *fiber.Ctx) error {
	var req autoPayRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.billPayments(c, func(b *pages.BillPayments) error {
		return b.ToggleAutoPay(c.UserContext(), c.Params("id"), req.Enable)
	})
}

func (h *PageHandler) DeleteBill(c *fiber.Ctx) error {
	return h.billPayments(c, func(b *pages.BillPayments) error { return b.Delete(c.UserContext(), c.Params("id")) })
}

func notificationFilters(c *fiber.Ctx) notifications.Filters {
	f := notifications.Filters{
		Page:     c.QueryInt("page"),
		PerPage:  c.QueryInt("per_page"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
	}
	if c.Query("unread_only") != "" {
		v := c.QueryBool("unread_only")
		f.UnreadOnly = &v
	}
	return f
}

func (h *PageHandler) notifications(c *fiber.Ctx, action func(n *pages.Notifications) error) error {
	n, err := h.pages.Notifications(c.UserContext(), notificationFilters(c))
	if err != nil {
		return unavailable(err)
	}
	if action == nil {
		return render(c, n.View())
	}
	return renderAction(c, action(n), func() any { return n.View() })
}

func (h *PageHandler) Notifications(c *fiber.Ctx) error {
	return h.notifications(c, nil)
}

func (h *PageHandler) MarkRead(c *fiber.Ctx) error {
	return h.notifications(c, func(n *pages.Notifications) error { return n.MarkRead(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) MarkUnread(c *fiber.Ctx) error {
	return h.notifications(c, func(n *pages.Notifications) error { return n.MarkUnread(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) MarkAllRead(c *fiber.Ctx) error {
	return h.notifications(c, func(n *pages.Notifications) error { return n.MarkAllRead(c.UserContext()) })
}

func (h *PageHandler) DeleteNotification(c *fiber.Ctx) error {
	return h.notifications(c, func(n *pages.Notifications) error { return n.Delete(c.UserContext(), c.Params("id")) })
}

func (h *PageHandler) Profile(c *fiber.Ctx) error {
	view, err := h.pages.Profile()
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return render(c, view)
}

func (h *PageHandler) SaveProfile(c *fiber.Ctx) error {
	var form pages.ProfileForm
	if err := bind(c, h.validate, &form); err != nil {
		return err
	}
	view, err := h.pages.SaveProfile(c.UserContext(), form)
	if errors.Is(err, auth.ErrSignedOut) {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return renderAction(c, err, func() any { return view })
}

func emiFilters(c *fiber.Ctx) emis.Filters {
	return emis.Filters{
		Page:    c.QueryInt("page"),
		PerPage: c.QueryInt("per_page"),
		CardID:  c.Query("card_id"),
		Status:  c.Query("status"),
	}
}

func (h *PageHandler) emiManager(c *fiber.Ctx, action func(m *pages.EMIManager) error) error {
	m, err := h.pages.EMIManager(c.UserContext(), emiFilters(c))
	if err != nil {
		return unavailable(err)
	}
	if action == nil {
		return render(c, m.View())
	}
	return renderAction(c, action(m), func() any { return m.View() })
}

func (h *PageHandler) EMIManager(c *fiber.Ctx) error {
	return h.emiManager(c, nil)
}

func (h *PageHandler) ConvertEMI(c *fiber.Ctx) error {
	var req emis.CreateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.emiManager(c, func(m *pages.EMIManager) error { return m.Convert(c.UserContext(), req) })
}

func (h *PageHandler) PayEMI(c *fiber.Ctx) error {
	var req emiPayRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.emiManager(c, func(m *pages.EMIManager) error {
		return m.Pay(c.UserContext(), c.Params("id"), req.Amount, req.PaymentDate)
	})
}

func (h *PageHandler) PreCloseEMI(c *fiber.Ctx) error {
	var req amountRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.emiManager(c, func(m *pages.EMIManager) error { return m.PreClose(c.UserContext(), c.Params("id"), req.Amount) })
}

func (h *PageHandler) EMIAutoPay(c *fiber.Ctx) error {
	var req autoPayRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	return h.emiManager(c, func(m *pages.EMIManager) error {
		return m.ToggleAutoPay(c.UserContext(), c.Params("id"), req.Enable, req.Day)
	})
}

func (h *PageHandler) CancelEMI(c *fiber.Ctx) error {
	return h.emiManager(c, func(m *pages.EMIManager) error { return m.Cancel(c.UserContext(), c.Params("id")) })
}

// CalculateEMI prices an EMI. It does not touch the EMI list.
func (h *PageHandler) CalculateEMI(c *fiber.Ctx) error {
	var req emis.CalculateRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	out, err := h.pages.CalculateEMI(c.UserContext(), req)
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to calculate EMI")
	}
	return c.JSON(out)
}

func (h *PageHandler) CibilScore(c *fiber.Ctx) error {
	s, err := h.pages.CibilScore(c.UserContext())
	if err != nil {
		return unavailable(err)
	}
	return render(c, s.View())
}

func (h *PageHandler) VerifyScore(c *fiber.Ctx) error {
	var req verifyRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	s, err := h.pages.CibilScore(c.UserContext())
	if err != nil {
		return unavailable(err)
	}
	err = s.Verify(c.UserContext(), c.Params("id"), req.VerificationDate)
	return renderAction(c, err, func() any { return s.View() })
}

// RegisterPageRoutes wires the signed-in screens.
func RegisterPageRoutes(r fiber.Router, h *PageHandler) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/transactions", h.Transactions)

	r.Get("/cards", h.MyCards)
	r.Post("/cards", h.AddCard)
	r.Get("/cards/:id", h.CardDetails)
	r.Put("/cards/:id/block", h.BlockCard)
	r.Put("/cards/:id/unblock", h.UnblockCard)
	r.Put("/cards/:id/pin", h.UpdatePIN)
	r.Delete("/cards/:id", h.DeleteCard)

	r.Get("/bill-payments", h.BillPayments)
	r.Post("/bill-payments", h.CreateBill)
	r.Post("/bill-payments/:id/pay", h.PayBill)
	r.Put("/bill-payments/:id/auto-pay", h.BillAutoPay)
	r.Delete("/bill-payments/:id", h.DeleteBill)

	r.Get("/notifications", h.Notifications)
	r.Put("/notifications/mark-all-read", h.MarkAllRead)
	r.Put("/notifications/:id/read", h.MarkRead)
	r.Put("/notifications/:id/unread", h.MarkUnread)
	r.Delete("/notifications/:id", h.DeleteNotification)

	r.Get("/profile", h.Profile)
	r.Put("/profile", h.SaveProfile)

	r.Get("/emi-manager", h.EMIManager)
	r.Post("/emi-manager", h.ConvertEMI)
	r.Post("/emi-manager/calculator", h.CalculateEMI)
	r.Post("/emi-manager/:id/pay", h.PayEMI)
	r.Post("/emi-manager/:id/pre-close", h.PreCloseEMI)
	r.Put("/emi-manager/:id/auto-pay", h.EMIAutoPay)
	r.Delete("/emi-manager/:id", h.CancelEMI)

	r.Get("/cibil-score", h.CibilScore)
	r.Put("/cibil-score/:id/verify", h.VerifyScore)
}
