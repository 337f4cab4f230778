package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/wheelio/rental-backend/internal/apperrors"
	"github.com/wheelio/rental-backend/internal/auth"
	"github.com/wheelio/rental-backend/internal/db"
	"github.com/wheelio/rental-backend/internal/mail"
	"github.com/wheelio/rental-backend/internal/middleware"
	"github.com/wheelio/rental-backend/internal/models"
)

// AccountHandler handles signup, login and profile requests.
type AccountHandler struct {
	authService  *auth.Service
	accounts     db.AccountCollection
	statuses     db.StatusCollection
	mailer       mail.Mailer
	resetURLBase string
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(authService *auth.Service, accounts db.AccountCollection, statuses db.StatusCollection, mailer mail.Mailer, resetURLBase string) *AccountHandler {
	return &AccountHandler{
		authService:  authService,
		accounts:     accounts,
		statuses:     statuses,
		mailer:       mailer,
		resetURLBase: resetURLBase,
	}
}

type signupRequest struct {
	ShowroomName  string      `json:"showroomName"`
	OwnerName     string      `json:"ownerName"`
	CNIC          string      `json:"cnic"`
	ContactNumber string      `json:"contactNumber"`
	Address       string      `json:"address"`
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	Images        []string    `json:"images"`
	Role          models.Role `json:"role"`
}

// Signup registers a client or showroom account. Showroom signups also create
// a pending approval record and are unusable until approved.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	if !models.IsValidRole(req.Role) || req.Role == models.RoleAdmin {
		apperrors.Respond(c, apperrors.Validation("Invalid role"))
		return
	}
	if err := h.authService.ValidateEmail(req.Email); err != nil {
		apperrors.Respond(c, apperrors.Validation(err.Error()))
		return
	}
	if err := h.authService.ValidatePassword(req.Password); err != nil {
		apperrors.Respond(c, apperrors.Validation(err.Error()))
		return
	}
	if req.Role == models.RoleShowroom && req.ShowroomName == "" {
		apperrors.Respond(c, apperrors.Validation("Showroom name is required"))
		return
	}
	if req.Role == models.RoleClient && req.OwnerName == "" {
		apperrors.Respond(c, apperrors.Validation("Name is required"))
		return
	}

	if req.Role == models.RoleShowroom {
		_, err := h.accounts.FindAccountByShowroomName(c.Request.Context(), req.ShowroomName)
		if err == nil {
			apperrors.Respond(c, apperrors.Conflict("Showroom with this name already exists"))
			return
		}
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			apperrors.Respond(c, err)
			return
		}
	}

	_, err := h.accounts.FindAccountByEmail(c.Request.Context(), req.Email)
	if err == nil {
		apperrors.Respond(c, apperrors.Conflict("User already exists"))
		return
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		apperrors.Respond(c, err)
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	account := models.Account{
		Email:         req.Email,
		PasswordHash:  passwordHash,
		Role:          req.Role,
		OwnerName:     req.OwnerName,
		ShowroomName:  req.ShowroomName,
		CNIC:          req.CNIC,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Images:        req.Images,
	}

	accountID, err := h.accounts.InsertAccount(c.Request.Context(), account)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	if req.Role == models.RoleShowroom {
		status := models.ShowroomStatus{
			ShowroomID: accountID,
			Status:     models.ShowroomActive,
			Approved:   0,
		}
		if err := h.statuses.InsertStatus(c.Request.Context(), status); err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Showroom registered successfully, awaiting approval"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and issues a session cookie. Showroom accounts
// additionally pass a moderation check; rejections there are deliberate 200
// responses with a message and no token.
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		apperrors.Respond(c, apperrors.Validation("Email and password are required"))
		return
	}

	account, err := h.accounts.FindAccountByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			apperrors.Respond(c, apperrors.Auth("User with this email does not exist"))
			return
		}
		apperrors.Respond(c, err)
		return
	}

	if !h.authService.CheckPassword(req.Password, account.PasswordHash) {
		apperrors.Respond(c, apperrors.Auth("Invalid email or password"))
		return
	}

	var status *models.ShowroomStatus
	if account.Role == models.RoleShowroom {
		status, err = h.statuses.FindStatusByShowroomID(c.Request.Context(), account.ID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				c.JSON(http.StatusOK, gin.H{"message": "Showroom status not found."})
				return
			}
			apperrors.Respond(c, err)
			return
		}
		if status.Status == models.ShowroomBanned {
			c.JSON(http.StatusOK, gin.H{"message": "Your showroom is banned."})
			return
		}
		if status.Approved != 1 {
			c.JSON(http.StatusOK, gin.H{"message": "Your showroom is awaiting approval."})
			return
		}
	}

	token, err := h.authService.GenerateToken(account.ID.Hex(), account.Role)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(auth.TokenExpiry.Seconds()), "/", "", false, true)

	resp := gin.H{
		"message": "Login successful",
		"role":    account.Role,
		"name":    account.DisplayName(),
	}
	if status != nil {
		resp["approved"] = status.Approved
		resp["status"] = status.Status
	}
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. Idempotent.
func (h *AccountHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successfully"})
}

// ForgotPassword issues a single-use reset token and mails a reset link.
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		apperrors.Respond(c, apperrors.Validation("Email is required"))
		return
	}

	account, err := h.accounts.FindAccountByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			apperrors.Respond(c, apperrors.NotFound("User not found"))
			return
		}
		apperrors.Respond(c, err)
		return
	}

	token, err := h.authService.GenerateResetToken()
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	expires := time.Now().Add(auth.ResetTokenExpiry)
	account.ResetPasswordToken = token
	account.ResetPasswordExp = &expires
	if err := h.accounts.UpdateAccount(c.Request.Context(), account.ID.Hex(), *account); err != nil {
		apperrors.Respond(c, err)
		return
	}

	resetURL := h.resetURLBase + "/" + token
	body := "Please click on the following link to reset your password: " + resetURL
	if err := h.mailer.Send(req.Email, "Password Reset", body); err != nil {
		log.WithError(err).Error("failed to send password reset mail")
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}

// ResetPassword consumes a reset token and replaces the account password.
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}
	if req.Password != req.ConfirmPassword {
		apperrors.Respond(c, apperrors.Validation("Passwords do not match"))
		return
	}
	if err := h.authService.ValidatePassword(req.Password); err != nil {
		apperrors.Respond(c, apperrors.Validation(err.Error()))
		return
	}

	account, err := h.accounts.FindAccountByResetToken(c.Request.Context(), token)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}

	account.PasswordHash = passwordHash
	account.ResetPasswordToken = ""
	account.ResetPasswordExp = nil
	if err := h.accounts.UpdateAccount(c.Request.Context(), account.ID.Hex(), *account); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phonenum"`
	Address string `json:"address"`
	CNIC    string `json:"cnic"`
}

// UpdateProfile overwrites the caller's profile fields. All fields required.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" || req.CNIC == "" {
		apperrors.Respond(c, apperrors.Validation("All fields are required"))
		return
	}

	account, err := h.accounts.FindAccountByID(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	account.OwnerName = req.Name
	account.Email = req.Email
	account.ContactNumber = req.Phone
	account.Address = req.Address
	account.CNIC = req.CNIC
	if err := h.accounts.UpdateAccount(c.Request.Context(), account.ID.Hex(), *account); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Updated successfully",
		"updatedData": gin.H{
			"name":     account.OwnerName,
			"email":    account.Email,
			"phonenum": account.ContactNumber,
			"address":  account.Address,
			"cnic":     account.CNIC,
		},
	})
}

// GetProfile returns the caller's profile without sensitive fields.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	account, err := h.accounts.FindAccountByID(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userdata": gin.H{
		"email":         account.Email,
		"ownerName":     account.OwnerName,
		"showroomName":  account.ShowroomName,
		"cnic":          account.CNIC,
		"contactNumber": account.ContactNumber,
		"address":       account.Address,
	}})
}
