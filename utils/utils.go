package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"

	"hrms/config"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// SendOTPToMobile delivers an OTP through the SMS gateway. Delivery is
// best-effort; failures are logged and returned for the caller to decide.
func SendOTPToMobile(mobile, otp string) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.LocalTextApi,
			"route":            "dlt",
			"sender_id":        "HRTEAM",
			"message":          "197302", // DLT template id
			"variables_values": fmt.Sprintf("%s|10", otp),
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.LocalTextApiUrl)
	if err != nil {
		log.Printf("Error sending OTP SMS: %v", err)
		return err
	}
	if resp.StatusCode() != 200 {
		log.Printf("SMS gateway returned %d: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode())
	}
	return nil
}

// SendOTPToEmail delivers an OTP over email.
func SendOTPToEmail(email, otp string) error {
	body := fmt.Sprintf(`<p>Your verification code is <b>%s</b>.</p>
	<p>It is valid for 10 minutes.</p>`, otp)
	return SendEmail([]string{email}, "Your Verification Code", getEmailTemplate("Verification Code", body))
}
