package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanfix/urbanfix/dto"
	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/repositories/admins"
	"github.com/urbanfix/urbanfix/repositories/citizens"
	"github.com/urbanfix/urbanfix/utils"
)

// POST /citizen/register
func RegisterCitizen(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RegisterCitizenDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		username := utils.NormalizeUsername(body.Username)
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid username"})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}

		citizen := models.Citizen{
			Username:    username,
			Password:    hash,
			Email:       body.Email,
			PhoneNumber: body.PhoneNumber,
		}

		if err := repo.Create(ctx, &citizen); err != nil {
			if errors.Is(err, citizens.ErrDuplicateUsername) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
	}
}

// POST /citizen/login
func CitizenLogin(repo citizens.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid login details"})
			return
		}

		citizen, err := repo.FindByUsername(ctx, utils.NormalizeUsername(body.Username))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user does not exist"})
			return
		}

		if err := utils.CheckPassword(citizen.Password, body.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "incorrect password"})
			return
		}

		ttl := utils.TokenTTL()
		token, err := utils.GenerateToken(citizen.Username, string(models.RoleCitizen), ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
			return
		}

		utils.SetTokenCookie(c, token, ttl)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Login success",
			"token":    token,
			"UserData": citizen,
		})
	}
}

// POST /citizen/admin
//
// Admin login lives under the citizen namespace for compatibility with the
// existing clients.
func AdminLogin(repo admins.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid admin account details"})
			return
		}

		admin, err := repo.FindByUsername(ctx, utils.NormalizeUsername(body.Username))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid admin account details"})
			return
		}

		if err := utils.CheckPassword(admin.Password, body.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid admin account details"})
			return
		}

		ttl := utils.TokenTTL()
		token, err := utils.GenerateToken(admin.Username, string(models.RoleAdmin), ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
			return
		}

		utils.SetTokenCookie(c, token, ttl)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Login success",
			"token":    token,
			"UserData": admin,
		})
	}
}
