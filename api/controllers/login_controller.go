package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"Litfeed/api/auth"
	"Litfeed/api/models"
	"Litfeed/api/monitoring"
	"Litfeed/api/security"
	"Litfeed/api/utils/formaterror"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Login authenticates with email and password and returns a signed token.
func (server *Server) Login(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		monitoring.LoginFailure.WithLabelValues("validation").Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}
	userData, err := server.SignIn(user.Email, user.Password)
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("credentials").Inc()
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}
	monitoring.LoginSuccess.Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(email, password string) (map[string]interface{}, error) {

	var err error

	userData := make(map[string]interface{})

	user := models.User{}

	normalizedEmail := strings.ToLower(email)
	err = server.DB.Model(models.User{}).Where("lower(email) = ?", normalizedEmail).Take(&user).Error
	if err != nil {
		logrus.WithError(err).Debug("login: user lookup failed")
		return nil, err
	}
	err = security.VerifyPassword(user.Password, password)
	if err != nil {
		logrus.WithError(err).Debug("login: password verification failed")
		return nil, err
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		logrus.WithError(err).Error("login: token creation failed")
		return nil, err
	}
	userData["token"] = token
	userData["id"] = user.ID
	userData["email"] = user.Email
	userData["avatar_path"] = user.AvatarPath
	userData["username"] = user.Username
	userData["is_admin"] = user.IsAdmin

	return userData, nil
}
