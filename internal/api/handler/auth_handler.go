package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	CompanyName  string `json:"companyName" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Password     string `json:"password" validate:"required,min=8"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type authResponse struct {
	envelope
	User   *domain.User    `json:"user,omitempty"`
	Tokens ports.TokenPair `json:"tokens"`
}

type tokenResponse struct {
	envelope
	Tokens ports.TokenPair `json:"tokens"`
}

// Register opens a customer account.
//
// @Summary      Register a new customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tokens, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		CompanyName:  req.CompanyName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		BusinessType: req.BusinessType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		envelope: okMsg("account created"),
		User:     user,
		Tokens:   tokens,
	})
}

// Login authenticates a customer or admin.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tokens, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		envelope: ok(),
		User:     user,
		Tokens:   tokens,
	})
}

// Refresh exchanges a refresh token for a fresh access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{envelope: ok(), Tokens: tokens})
}

// Verify returns the account behind the presented access token.
//
// @Summary      Verify access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Verify(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, struct {
		envelope
		User *domain.User `json:"user"`
	}{envelope: ok(), User: user})
}

// Logout acknowledges the client discarding its tokens. Tokens are stateless,
// so there is nothing to revoke server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, okMsg("logged out"))
}
