package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"
	"time"

	"github.com/Kariqs/storefront-api/models"
)

type EmailData struct {
	Name               string
	Message            string
	CouponCode         string
	DiscountPercentage float64
	ExpiresOn          string
	ShopURL            string
}

// Mailer sends HTML mail rendered from templates in TemplateDir. A Mailer
// without a From address or SMTP address is disabled and sends nothing.
type Mailer struct {
	From        string
	Password    string
	Host        string
	Addr        string
	TemplateDir string
	ShopURL     string
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.From != "" && m.Addr != ""
}

func (m *Mailer) SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	body, err := renderEmail(filepath.Join(m.TemplateDir, templateName), data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.From,
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Addr, auth, m.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// CouponIssued tells the user about the gift coupon they just earned.
func (m *Mailer) CouponIssued(_ context.Context, user *models.User, coupon *models.Coupon) error {
	if !m.Enabled() {
		return nil
	}
	data := EmailData{
		Name:               user.Name,
		Message:            "Thank you for shopping with us! Here is a gift coupon for your next purchase.",
		CouponCode:         coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
		ExpiresOn:          coupon.ExpirationDate.Format(time.DateOnly),
		ShopURL:            m.ShopURL,
	}
	return m.SendEmail(user.Email, "You earned a gift coupon", data, "coupon_issued.html")
}

func renderEmail(templatePath string, data EmailData) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}
