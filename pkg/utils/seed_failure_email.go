package utils

import (
	"fmt"
	"html"
	"time"
)

func SeedFailureEmailBody(source string, cause error, failedAt time.Time) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8" />
		<title>Scheduled import failed</title>
		<style>
			body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f6f6f6; }
			.container { max-width: 520px; margin: 40px auto; background: #ffffff; border-top: 5px solid #d9534f; padding: 20px 18px; }
			.cause { background: #fff6f6; border: 1px solid #f1c1c1; border-radius: 8px; padding: 12px 14px; font-family: monospace; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Scheduled import failed</h1>
			<p>The transaction dataset could not be refreshed from <b>%s</b> at %s.</p>
			<p>The previous dataset is still being served.</p>
			<div class="cause">%s</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(source), failedAt.UTC().Format(time.RFC1123), html.EscapeString(cause.Error()))
}

func SendSeedFailureEmail(cfg SMTPConfig, to, source string, cause error, failedAt time.Time) error {
	subject := "Scheduled transaction import failed"
	return SendEmail(cfg, to, subject, SeedFailureEmailBody(source, cause, failedAt))
}
