package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ccms-app/dashboard/internal/chat"
)

// ChatHandler relays the assistant widget to the chat API.
type ChatHandler struct {
	api      *chat.API
	validate *validator.Validate
}

type createSessionRequest struct {
	Title string `json:"title,omitempty"`
	Model string `json:"model,omitempty"`
}

func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	rec, err := h.api.CreateSession(c.UserContext(), req.Title, req.Model)
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to create chat session")
	}
	return c.Status(fiber.StatusCreated).JSON(chat.Normalize(rec))
}

func (h *ChatHandler) Sessions(c *fiber.Ctx) error {
	resp, err := h.api.Sessions(c.UserContext(), c.QueryInt("page"), c.QueryInt("per_page"))
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to load chat sessions")
	}
	sessions := make([]chat.Session, 0, len(resp.Sessions))
	for _, rec := range resp.Sessions {
		sessions = append(sessions, chat.Normalize(rec))
	}
	return c.JSON(fiber.Map{"sessions": sessions, "pagination": resp.Meta.Pagination()})
}

func (h *ChatHandler) Session(c *fiber.Ctx) error {
	rec, err := h.api.Session(c.UserContext(), c.Params("id"))
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to load chat session")
	}
	return c.JSON(chat.Normalize(rec))
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req chat.SendRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	out, err := h.api.Send(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to send message")
	}
	return c.JSON(out)
}

// Stream passes the API's event stream through unchanged.
func (h *ChatHandler) Stream(c *fiber.Ctx) error {
	var req chat.SendRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	body, err := h.api.Stream(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fiber.NewError(actionStatus(err), "Failed to send message")
	}
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	// fasthttp closes body once it has been copied out.
	return c.SendStream(body)
}

// RegisterChatRoutes wires the chat relay.
func RegisterChatRoutes(r fiber.Router, h *ChatHandler) {
	group := r.Group("/chat/sessions")
	group.Post("", h.CreateSession)
	group.Get("", h.Sessions)
	group.Get("/:id", h.Session)
	group.Post("/:id/send", h.Send)
	group.Post("/:id/stream", h.Stream)
}
