package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type validateOTPRequest struct {
	OTP      string `json:"otp" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bind decodes the JSON body into dst; a malformed body is a validation error.
func (h *handlers) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, h.logger, bindError(err))
		return false
	}
	return true
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (h *handlers) signup(c *gin.Context) {
	var req signupRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.auth.RequestSignup(c.Request.Context(), req.Username, req.Email); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.String(http.StatusOK, "An email containing OTP has been sent to the user")
}

func (h *handlers) validateOTP(c *gin.Context) {
	var req validateOTPRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.auth.VerifyOTPAndActivate(c.Request.Context(), req.Email, req.OTP, req.Password); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.String(http.StatusOK, "OTP is validated and user created")
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.String(http.StatusOK, "User registered successfully!")
}
