package export

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/mazen160/go-random"
)

// NotifyConfig configures the optional completion email for long exports.
// Disabled unless a server and at least one recipient are set.
type NotifyConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c NotifyConfig) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

// SendCompletionNotice mails a short summary of a finished export run.
func SendCompletionNotice(cfg NotifyConfig, stats Stats) error {
	runID, err := random.String(8)
	if err != nil {
		return err
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("WAHIS Export <%s>", cfg.EmailAddress)
	mail.To = cfg.To
	mail.Subject = fmt.Sprintf("WAHIS export %s finished", runID)

	body := fmt.Sprintf(`Export run %s completed.

Reports processed: %d
Rows written: %d
Flushes: %d`, runID, stats.Reports, stats.Rows, stats.Flushes)
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", cfg.Server, cfg.Port)
	err = mail.Send(addr, smtp.PlainAuth("", cfg.EmailAddress, cfg.Password, cfg.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}
