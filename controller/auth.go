package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-splendor/dto"
	"go-splendor/utils"
)

type AuthController struct {
	tokens *utils.TokenIssuer
}

func NewAuthController(tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{tokens: tokens}
}

// Guest issues tokens for a new anonymous user.
func (a *AuthController) Guest(c *gin.Context) {
	var req dto.GuestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	userID := uuid.NewString()

	access, err := a.tokens.GenerateAccessToken(userID, name)
	if err != nil {
		fail(c, err)
		return
	}
	refresh, err := a.tokens.GenerateRefreshToken(userID, name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "login ok", dto.TokenResponse{
		UserID:       userID,
		Name:         name,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (a *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	claims, err := a.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid refresh token"})
		return
	}
	access, err := a.tokens.GenerateAccessToken(claims.UserID, claims.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "token refreshed", dto.TokenResponse{
		UserID:      claims.UserID,
		Name:        claims.Name,
		AccessToken: access,
	})
}
