package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"workday-admin/internal/models"
	"workday-admin/internal/timeapi"
)

// createUserForm mirrors the user-creation endpoint. Validation runs
// server-side; a form missing a required field never reaches the API.
type createUserForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
}

type usersData struct {
	Title string
	Users []models.User
	Error string
	Form  createUserForm
}

// UsersPage renders the account list and the creation form. The list is
// always a fresh fetch, never a locally patched copy.
func (h *Handler) UsersPage(c *fiber.Ctx) error {
	return h.renderUsers(c, usersData{
		Title: "User Management",
		Form:  createUserForm{Role: models.RoleEmployee},
	})
}

// CreateUser submits the creation form. On success the form is cleared
// by the redirect; on failure it is re-rendered still populated.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var form createUserForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	data := usersData{Title: "User Management", Form: form}

	if err := h.validate.Struct(&form); err != nil {
		data.Error = "All fields are required and the email must be valid"
		return h.renderUsers(c, data)
	}

	err := h.api.CreateUser(c.UserContext(), token(c), timeapi.CreateUserParams{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		if errors.Is(err, timeapi.ErrUnauthorized) {
			return h.expireSession(c)
		}
		h.log.Error().Err(err).Str("email", form.Email).Msg("create user failed")
		data.Error = errorMessage(err)
		return h.renderUsers(c, data)
	}

	return c.Redirect("/users")
}

// DeleteUser removes an account. The confirmation step lives in the
// template (a confirm guard on the per-row form); reaching this handler
// means the user confirmed.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.api.DeleteUser(c.UserContext(), token(c), id); err != nil {
		if errors.Is(err, timeapi.ErrUnauthorized) {
			return h.expireSession(c)
		}
		h.log.Error().Err(err).Str("user", id).Msg("delete user failed")
		return h.renderUsers(c, usersData{
			Title: "User Management",
			Error: errorMessage(err),
			Form:  createUserForm{Role: models.RoleEmployee},
		})
	}

	return c.Redirect("/users")
}

// renderUsers fetches the current list and renders the page with the
// given form state and error.
func (h *Handler) renderUsers(c *fiber.Ctx, data usersData) error {
	users, err := h.api.Users(c.UserContext(), token(c))
	if err != nil {
		if errors.Is(err, timeapi.ErrUnauthorized) {
			return h.expireSession(c)
		}
		h.log.Error().Err(err).Msg("load users failed")
		if data.Error == "" {
			data.Error = errorMessage(err)
		}
	}
	data.Users = users
	return c.Render("users", data, "layout")
}
