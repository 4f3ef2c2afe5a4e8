package services

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/utils/format"
)

// OrderNotifier is told about every order after it has been committed.
type OrderNotifier interface {
	OrderPlaced(order *models.Order) error
}

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	ShopName string
}

type Mailer struct {
	config MailerConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailerConfig) *Mailer {
	if cfg.ShopName == "" {
		cfg.ShopName = "Motoshop"
	}
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := []string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	if err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send html email: %w", err)
	}

	return nil
}

// OrderPlaced mails the order summary to the buyer. Orders without an email
// are skipped.
func (m *Mailer) OrderPlaced(order *models.Order) error {
	if order == nil || order.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("[%s] Xác nhận đơn hàng %s", m.config.ShopName, order.OrderCode)
	return m.SendHTMLEmail(order.Email, subject, BuildOrderConfirmationEmailBody(m.config.ShopName, order))
}

func BuildOrderConfirmationEmailBody(shopName string, order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.OrderItems {
		fmt.Fprintf(&rows, `
                    <tr>
                        <td>%s</td>
                        <td style="text-align:center">%d</td>
                        <td style="text-align:right">%s</td>
                        <td style="text-align:right">%s</td>
                    </tr>`,
			html.EscapeString(item.ProductName), item.Quantity, format.FormatVND(item.Price), format.FormatVND(item.Subtotal))
	}

	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Xác nhận đơn hàng %[2]s</title>
            <style>
                body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
                .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
                .header { background-color: #f8f8f8; padding: 10px 0; text-align: center; border-bottom: 1px solid #ddd; }
                table { width: 100%%; border-collapse: collapse; }
                td, th { padding: 6px; border-bottom: 1px solid #eee; }
                .total { font-size: 1.2em; font-weight: bold; text-align: right; margin-top: 12px; }
                .footer { font-size: 0.8em; color: #777; text-align: center; margin-top: 20px; border-top: 1px solid #ddd; padding-top: 10px; }
            </style>
        </head>
        <body>
            <div class="container">
                <div class="header">
                    <h2>Cảm ơn bạn đã đặt hàng!</h2>
                </div>
                <p>Xin chào %[3]s,</p>
                <p>Chúng tôi đã nhận được đơn hàng <strong>%[2]s</strong>. Nhân viên sẽ liên hệ qua số %[4]s để xác nhận.</p>
                <table>
                    <tr><th>Sản phẩm</th><th>SL</th><th>Đơn giá</th><th>Thành tiền</th></tr>%[5]s
                </table>
                <p class="total">Tổng cộng: %[6]s</p>
                <p>Địa chỉ nhận hàng: %[7]s</p>
                <div class="footer">
                    <p>&copy; %[1]s</p>
                </div>
            </div>
        </body>
        </html>
    `,
		html.EscapeString(shopName),
		html.EscapeString(order.OrderCode),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.Phone),
		rows.String(),
		format.FormatVND(order.Total),
		html.EscapeString(order.Address),
	)
}
