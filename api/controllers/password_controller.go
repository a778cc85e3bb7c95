package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"Litfeed/api/mailer"
	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ForgotPassword issues a reset token and emails it to the account owner.
// The response is the same whether or not the email exists, so the endpoint
// cannot be used to probe for accounts.
func (server *Server) ForgotPassword(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	user := models.User{}
	if err := json.Unmarshal(body, &user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	sentResponse := gin.H{
		"status":   http.StatusOK,
		"response": "If that email is registered, a reset link has been sent",
	}

	existing := models.User{}
	err = server.DB.Model(models.User{}).Where("email = ?", user.Email).Take(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, sentResponse)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	resetPassword := models.ResetPassword{
		Email: existing.Email,
		Token: uuid.NewString(),
	}
	resetPassword.Prepare()
	if _, err := resetPassword.SaveDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	if err := mailer.SendResetPassword(existing.Email, resetPassword.Token); err != nil {
		logrus.WithError(err).Error("forgot password: could not send reset email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send reset email"})
		return
	}

	c.JSON(http.StatusOK, sentResponse)
}

// ResetPassword consumes a reset token and replaces the account password.
func (server *Server) ResetPassword(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	var payload struct {
		Token          string `json:"token"`
		NewPassword    string `json:"new_password"`
		RetypePassword string `json:"retype_password"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	errList := map[string]string{}
	if payload.Token == "" {
		errList["Required_token"] = "Reset token is required"
	}
	if len(payload.NewPassword) < 6 {
		errList["Invalid_password"] = "Password should be at least 6 characters"
	}
	if payload.NewPassword != payload.RetypePassword {
		errList["Password_unequal"] = "Passwords provided do not match"
	}
	if len(errList) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	resetPassword := models.ResetPassword{}
	err = server.DB.Where("token = ?", payload.Token).Take(&resetPassword).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"Invalid_token": "Invalid or expired reset token"},
		})
		return
	}

	user := models.User{Email: resetPassword.Email, Password: payload.NewPassword}
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}

	// Token is single-use.
	if _, err := resetPassword.DeleteDetails(server.DB); err != nil {
		logrus.WithError(err).Warn("reset password: could not delete consumed token")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated successfully",
	})
}
