package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/users"
)

// AuthHandler exposes sign-in, sign-up and sign-out.
type AuthHandler struct {
	auth     *auth.Context
	validate *validator.Validate
}

type authState struct {
	Authenticated bool        `json:"authenticated"`
	Loading       bool        `json:"loading"`
	User          *users.User `json:"user"`
}

func (h *AuthHandler) state() authState {
	return authState{Authenticated: h.auth.IsAuthenticated(), Loading: h.auth.Loading(), User: h.auth.User()}
}

// Status returns who is signed in, if anyone.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.state())
}

// Login signs in with a username and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req users.Credentials
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.auth.Login(c.UserContext(), req.Username, req.Password); err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(h.state())
}

// Signup registers and signs in.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req users.SignupRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.auth.Signup(c.UserContext(), req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(h.state())
}

// Refresh reloads the signed-in user from the API.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	if !h.auth.IsAuthenticated() {
		return fiber.NewError(http.StatusUnauthorized, auth.ErrSignedOut.Error())
	}
	if err := h.auth.RefreshUser(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(h.state())
}

// Logout forgets the user; the navigation middleware turns the requested
// move to the sign-in screen into the response.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext())
	return c.JSON(h.state())
}

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *AuthHandler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Get("", h.Status)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/signup", h.Signup)
	group.Post("/refresh", h.Refresh)
	group.Post("/logout", h.Logout)
}
