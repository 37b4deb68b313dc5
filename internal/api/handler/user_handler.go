package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Names     string `json:"names"    validate:"required"`
	Email     string `json:"email"    validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Role      string `json:"role"     validate:"omitempty,oneof=farmer manager admin"`
	ManagedBy *int64 `json:"managed_by"`
}

type updateUserRequest struct {
	Names     *string `json:"names"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	Role      *string `json:"role"      validate:"omitempty,oneof=farmer manager admin"`
	ManagedBy *int64  `json:"managed_by"`
	PhotoURL  *string `json:"photo_url"`
}

// Create provisions an account with an explicit role. This is the only way
// to mint manager and admin accounts; public registration is farmer-only.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Names:     req.Names,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Role:      req.Role,
		ManagedBy: req.ManagedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get returns one user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns users, optionally filtered by role, active flag, and gender.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role       query     string  false  "Filter by role"
// @Param        is_active  query     bool    false  "Filter by active flag"
// @Param        gender     query     string  false  "Filter by gender"
// @Success      200        {array}   domain.User
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{
		Role:   c.QueryParam("role"),
		Gender: c.QueryParam("gender"),
	}
	switch c.QueryParam("is_active") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	users, err := h.service.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update applies a partial update to a user. Non-admins may only update
// themselves, and may not change their own role or team.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if role != domain.RoleAdmin {
		if id != userID {
			return domain.ErrForbidden
		}
		if req.Role != nil || req.ManagedBy != nil {
			return domain.ErrForbidden
		}
	}

	user, err := h.service.UpdateUser(c.Request().Context(), id, ports.UserPatch{
		Names:        req.Names,
		Email:        req.Email,
		PasswordHash: req.Password,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Role:         req.Role,
		ManagedBy:    req.ManagedBy,
		PhotoURL:     req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate flips a user's active flag off; user rows are never deleted.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.DeactivateUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CheckPhone reports whether a phone number is already registered.
//
// @Summary      Check phone availability
// @Tags         users
// @Produce      json
// @Param        phone  query     string  true  "Phone number"
// @Success      200    {object}  map[string]bool
// @Router       /v1/users/check-phone [get]
func (h *UserHandler) CheckPhone(c echo.Context) error {
	phone := c.QueryParam("phone")
	if phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	exists, err := h.service.PhoneExists(c.Request().Context(), phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}
