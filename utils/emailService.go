package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"hrms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: HR Team <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00334D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00334D; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; font-size: 12px; color: #999999; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message. Please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendInterviewResultEmail informs a candidate about the outcome of an
// interview round. On failure the mail carries the earliest retry date.
func SendInterviewResultEmail(email, name string, passed bool, retryAfter *time.Time) error {
	if passed {
		body := fmt.Sprintf(`<p>Dear %s,</p>
		<p>Congratulations! You have cleared the interview process.</p>
		<p>Please log in to your onboarding portal and upload your documents to continue.</p>`, name)
		return SendEmail([]string{email}, "Interview Result - Congratulations!", getEmailTemplate("Interview Cleared", body))
	}

	retryLine := ""
	if retryAfter != nil {
		retryLine = fmt.Sprintf("<p>You may re-apply for the interview on or after <b>%s</b>.</p>", retryAfter.Format("02 Jan 2006"))
	}
	body := fmt.Sprintf(`<p>Dear %s,</p>
	<p>Thank you for your time. Unfortunately we will not be moving forward at this stage.</p>
	%s`, name, retryLine)
	return SendEmail([]string{email}, "Interview Result", getEmailTemplate("Interview Result", body))
}

// SendOfferLetterEmail tells a candidate their offer letter is ready to sign.
func SendOfferLetterEmail(email, name, position string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
	<p>Your offer letter for the position of <b>%s</b> has been uploaded.</p>
	<p>Please log in to your onboarding portal to review and sign it.</p>`, name, position)
	return SendEmail([]string{email}, "Your Offer Letter is Ready", getEmailTemplate("Offer Letter", body))
}

// SendRetryReminderEmail tells a candidate their cooldown has lapsed.
func SendRetryReminderEmail(email, name string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
	<p>The waiting period after your last interview has ended.</p>
	<p>You are now eligible to schedule a new interview from your onboarding portal.</p>`, name)
	return SendEmail([]string{email}, "You Can Re-apply Now", getEmailTemplate("Interview Retry Available", body))
}

// SendIDCardEmail confirms onboarding completion and the new employee code.
func SendIDCardEmail(email, name, cardNumber string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
	<p>Welcome aboard! Your employee ID card has been generated.</p>
	<p>Card number: <b>%s</b></p>`, name, cardNumber)
	return SendEmail([]string{email}, "Welcome Aboard - ID Card Generated", getEmailTemplate("Welcome Aboard", body))
}
