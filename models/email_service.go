package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOTPEmail(toEmail, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "SmartBite - Password Recovery Request")

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 8px; overflow: hidden; border: 1px solid #eee;">
        <div style="background-color: #f97316; padding: 20px; text-align: center;">
            <h2 style="color: white; margin: 10px 0 0;">Password Recovery</h2>
        </div>
        <div style="padding: 30px;">
            <p style="color: #333; font-size: 16px;">Hello,</p>
            <p style="color: #555; font-size: 15px;">You have requested a password recovery for your SmartBite account. Here is your One-Time Password (OTP):</p>
            <div style="background-color: #fff7ed; border: 1px dashed #fdba74; padding: 15px; text-align: center; border-radius: 6px; margin: 25px 0;">
                <span style="font-size: 28px; font-weight: bold; letter-spacing: 5px; color: #ea580c;">%s</span>
            </div>
            <p style="color: #64748b; font-size: 13px;">This OTP will expire in <strong>10 minutes</strong>. Please do not share this code with anyone.</p>
            <p style="color: #555; font-size: 14px; margin-top: 30px;">If you did not request a password reset, please ignore this email.</p>
            <br />
            <p style="color: #333; font-size: 15px;">Best regards,<br /><strong>SmartBite Team</strong></p>
        </div>
        <div style="background-color: #f8fafc; padding: 15px; text-align: center; border-top: 1px solid #eee;">
            <p style="color: #94a3b8; font-size: 12px; margin: 0;">&copy; 2024 SmartBite. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
	`, otp)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
