package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// OTPMail arma subject + cuerpos (html y texto) para el código de login.
func OTPMail(appName, code string, ttl time.Duration) (subject, htmlBody, textBody string, err error) {
	subject = fmt.Sprintf("Your %s Login Code", appName)
	minutes := int(ttl.Minutes())

	textBody = fmt.Sprintf(
		"Your one-time password for %s is: %s\n\nThis code expires in %d minutes.\nIf you didn't request this code, please ignore this email.\n",
		appName, code, minutes,
	)

	var buf bytes.Buffer
	data := struct {
		AppName string
		Code    string
		Minutes int
		Year    int
	}{appName, code, minutes, time.Now().Year()}
	if err = otpHTML.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, buf.String(), textBody, nil
}

var otpHTML = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .container { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 10px; padding: 40px; text-align: center; }
    .otp-box { background: white; border-radius: 8px; padding: 30px; margin: 20px 0; }
    .otp-code { font-size: 36px; font-weight: bold; letter-spacing: 8px; color: #667eea; margin: 20px 0; }
    .footer { color: rgba(255, 255, 255, 0.8); font-size: 14px; margin-top: 20px; }
    h1 { color: white; margin: 0 0 10px 0; }
    p { color: rgba(255, 255, 255, 0.9); margin: 10px 0; }
  </style>
</head>
<body>
  <div class="container">
    <h1>&#128272; Login Verification</h1>
    <p>Your one-time password for {{.AppName}}</p>
    <div class="otp-box">
      <div class="otp-code">{{.Code}}</div>
      <p style="color: #666; margin: 0;">This code expires in {{.Minutes}} minutes</p>
    </div>
    <div class="footer">
      <p>If you didn't request this code, please ignore this email.</p>
      <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`))
