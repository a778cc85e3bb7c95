package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"Litfeed/api/models"
	"Litfeed/api/monitoring"
	"Litfeed/api/security"
	"Litfeed/api/utils/fileformat"
	"Litfeed/api/utils/formaterror"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateUser handles user registration
func (server *Server) CreateUser(c *gin.Context) {
	var user models.User

	// Use ShouldBindJSON to parse and validate JSON input
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errorMessages})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": formattedError})
		return
	}

	monitoring.RegisterSuccess.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": userToResponse(userCreated),
	})
}

// GetUsers retrieves all users
func (server *Server) GetUsers(c *gin.Context) {
	user := models.User{}

	users, err := user.FindAllUsers(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No users found"})
		return
	}

	userResponses := make([]UserDTO, len(*users))
	for i := range *users {
		userResponses[i] = userToResponse(&(*users)[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userResponses,
	})
}

// GetUser retrieves a user by ID
func (server *Server) GetUser(c *gin.Context) {
	uid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := models.User{}

	userGotten, err := user.FindUserByID(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(userGotten),
	})
}

// UpdateAvatar allows a user to update their avatar image
func (server *Server) UpdateAvatar(c *gin.Context) {
	uid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !canModifyResource(c, uid) {
		respondUnauthorized(c)
		return
	}

	// Pull and validate the uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open file"})
		return
	}
	defer f.Close()

	size := file.Size
	if size > 512_000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (<500KB)"})
		return
	}

	buf := make([]byte, size)
	if _, err := f.Read(buf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})
		return
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not an image"})
		return
	}

	// Generate S3 key under the avatars prefix
	filePath := fileformat.UniqueFormat(file.Filename)
	key := "avatars/" + filePath

	// Determine bucket name, stripping any accidental path suffix
	rawBucket := os.Getenv("S3_BUCKET")
	bucketName := strings.SplitN(rawBucket, "/", 2)[0]
	if bucketName == "" {
		logrus.Warnf("S3_BUCKET env var is empty or invalid: '%s'", rawBucket)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	// Load AWS config (uses default credential chain + region)
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		logrus.Errorf("AWS config load error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AWS configuration error"})
		return
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws2.String(bucketName),
		Key:           aws2.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws2.Int64(size),
		ContentType:   aws2.String(fileType),
	})
	if err != nil {
		logrus.Errorf("S3 upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	// Save avatar path in DB
	user := models.User{AvatarPath: filePath}
	updatedUser, err := user.UpdateAUserAvatar(server.DB, uid)
	if err != nil {
		logrus.Errorf("avatar DB update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot save image, please try again later"})
		return
	}

	// Public S3 URL (virtual-host style)
	updatedUser.AvatarPath = fmt.Sprintf(
		"https://%s.s3.%s.amazonaws.com/%s",
		bucketName,
		region,
		key,
	)

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": userToResponse(updatedUser)})
}

// UpdateUser allows a user to update their email and password
func (server *Server) UpdateUser(c *gin.Context) {
	uid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !canModifyResource(c, uid) {
		respondUnauthorized(c)
		return
	}

	var requestBody map[string]string
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	// Retrieve existing user data
	formerUser := models.User{}
	err := server.DB.Model(&models.User{}).Where("id = ?", uid).Take(&formerUser).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	newUser := models.User{}
	newUser.Username = formerUser.Username // Usernames are immutable

	// Handle password change if requested
	if currentPassword, ok := requestBody["current_password"]; ok {
		if newPassword, ok := requestBody["new_password"]; ok {
			if len(newPassword) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Password should be at least 6 characters"})
				return
			}
			err = security.VerifyPassword(formerUser.Password, currentPassword)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
				return
			}
			newUser.Password = newPassword
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
			return
		}
	}

	// Update email if provided
	if email, ok := requestBody["email"]; ok {
		newUser.Email = email
	} else {
		newUser.Email = formerUser.Email
	}

	newUser.Prepare()
	errorMessages := newUser.Validate("update")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errorMessages})
		return
	}

	updatedUser, err := newUser.UpdateAUser(server.DB, uid)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": formattedError})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(updatedUser),
	})
}

// DeleteUser deletes a user and their associated data
func (server *Server) DeleteUser(c *gin.Context) {
	uid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !canModifyResource(c, uid) {
		respondUnauthorized(c)
		return
	}

	user := models.User{}
	rows, err := user.DeleteAUser(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User deleted",
	})
}
