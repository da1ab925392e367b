package notify

import (
	"swiftship-backend/logger"

	mailer "swiftship-backend/httpServices/mailer"
)

// Dispatch sends a templated email on a background goroutine. Failures are
// logged and swallowed: notification is a best-effort side channel and must
// never fail or roll back the operation that triggered it.
func Dispatch(client *mailer.MailerClient, template string, payload mailer.EmailPayload) {
	if client == nil || payload.To == "" {
		return
	}

	go func() {
		if err := client.Send(template, payload); err != nil {
			logger.Error("Failed to dispatch "+template+" notification", err)
		}
	}()
}
