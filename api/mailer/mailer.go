package mailer

import (
	"errors"
	"os"
	"strings"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// SendResetPassword emails a password-reset link carrying the token.
// Rendering is done with hermes, delivery through SendGrid.
func SendResetPassword(toEmail, token string) error {
	apiKey := strings.TrimSpace(os.Getenv("SENDGRID_API_KEY"))
	if apiKey == "" {
		return errors.New("SENDGRID_API_KEY not set")
	}

	appURL := strings.TrimSpace(os.Getenv("APP_URL"))
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	h := hermes.Hermes{
		Product: hermes.Product{
			Name: "Litfeed",
			Link: appURL,
		},
	}

	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				"You requested a password reset for your Litfeed account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to choose a new password. The link is single-use.",
					Button: hermes.Button{
						Color: "#22BC66",
						Text:  "Reset your password",
						Link:  appURL + "/password/reset?token=" + token,
					},
				},
			},
			Outros: []string{
				"If you did not request a password reset, you can safely ignore this email.",
			},
		},
	}

	htmlBody, err := h.GenerateHTML(email)
	if err != nil {
		return err
	}
	textBody, err := h.GeneratePlainText(email)
	if err != nil {
		return err
	}

	fromAddress := strings.TrimSpace(os.Getenv("MAIL_FROM"))
	if fromAddress == "" {
		fromAddress = "no-reply@litfeed.app"
	}

	from := mail.NewEmail("Litfeed", fromAddress)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, "Reset your Litfeed password", to, textBody, htmlBody)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		logrus.WithFields(logrus.Fields{
			"status": response.StatusCode,
			"body":   response.Body,
		}).Warn("sendgrid rejected reset email")
		return errors.New("email delivery failed")
	}
	return nil
}
