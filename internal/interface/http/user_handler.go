package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
	"github.com/ramah83/ST-System-Bank/pkg/response"
	"github.com/ramah83/ST-System-Bank/pkg/validation"
)

type UserHandler struct {
	Users    *application.UserService
	Accounts *application.AccountService
	Logger   *logrus.Logger
	Cookies  *helpers.CookieManager
}

func NewUserHandler(users *application.UserService, accounts *application.AccountService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{
		Users:    users,
		Accounts: accounts,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type registerRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,pwd"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	AccountTypeID string `json:"account_type_id" binding:"required,uuid"`
	Gender        string `json:"gender" binding:"required,oneof=M F"`
	BirthDate     string `json:"birth_date,omitempty"` // YYYY-MM-DD
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register onboards a customer: user, bank account and address in one call.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		d, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"birth_date": "must match format 2006-01-02"})
			return
		}
		birthDate = &d
	}

	user, account, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		AccountTypeID: req.AccountTypeID,
		Gender:        req.Gender,
		BirthDate:     birthDate,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.Users.IndexUser(c.Request.Context(), user)

	response.Success(c, http.StatusCreated, gin.H{
		"user":    viewUser(user),
		"account": viewAccount(account),
	}, "registration successful", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, pair, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.Access, pair.AccessExpires, pair.Refresh, pair.RefreshExpires)
	h.Users.IndexUser(c.Request.Context(), user)

	response.Success(c, http.StatusOK, viewUser(user), "login successful", gin.H{
		"access_expires_at":  pair.AccessExpires,
		"refresh_expires_at": pair.RefreshExpires,
	})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Users.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Fail[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.Access, pair.AccessExpires, pair.Refresh, pair.RefreshExpires)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessExpires,
		"refresh_expires_at": pair.RefreshExpires,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if sid := c.GetString("sessionID"); sid != "" {
		if err := h.Users.Logout(c.Request.Context(), sid); err != nil {
			h.Logger.WithError(err).Warn("session revoke failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Profile returns the caller's user, account and address in one payload.
func (h *UserHandler) Profile(c *gin.Context) {
	actor := httpctx.Actor(c)
	user, account, address, err := h.Accounts.Profile(c.Request.Context(), actor.ID)
	if err != nil {
		fail(c, err)
		return
	}
	body := gin.H{"user": viewUser(user), "address": viewAddress(address)}
	if account != nil {
		body["account"] = viewAccount(account)
	}
	response.Success(c, http.StatusOK, body, "profile", nil)
}

// AccountTypes lists the open account offerings for the registration form.
func (h *UserHandler) AccountTypes(c *gin.Context) {
	types, err := h.Accounts.ListAccountTypes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]accountTypeView, 0, len(types))
	for _, t := range types {
		out = append(out, viewAccountType(t))
	}
	response.Success(c, http.StatusOK, out, "account types", nil)
}
