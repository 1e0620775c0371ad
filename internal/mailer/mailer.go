// Package mailer sends transactional mail off the request path. Delivery
// runs on a small worker pool; a full pool or SMTP failure is logged and
// dropped, never surfaced to the customer.
package mailer

import (
	"fmt"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/revline/revline/config"
	"github.com/revline/revline/internal/domain"
)

type Mailer struct {
	dialer *gomail.Dialer
	pool   *ants.Pool
	from   string
}

var std *Mailer

// Setup initializes the package-level mailer. Safe to skip in tests: the
// Send* helpers are no-ops until Setup runs.
func Setup(cfg *config.AppConfig) error {
	pool, err := ants.NewPool(4, ants.WithNonblocking(true))
	if err != nil {
		return err
	}
	std = &Mailer{
		dialer: gomail.NewDialer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password),
		pool:   pool,
		from:   cfg.Smtp.From,
	}
	return nil
}

// Release drains the worker pool.
func Release() {
	if std != nil {
		std.pool.Release()
	}
}

// SendOrderConfirmation queues an order confirmation mail.
func SendOrderConfirmation(to string, ord *domain.Order) {
	if std == nil || to == "" {
		return
	}
	id := ord.ID
	total := ord.TotalPrice.StringFixed(2)
	err := std.pool.Submit(func() {
		m := gomail.NewMessage()
		m.SetHeader("From", std.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed", id))
		m.SetBody("text/plain", fmt.Sprintf(
			"Thanks for your order!\n\nOrder number: %d\nTotal: %s\n\nWe will notify you when it ships.\n", id, total))
		if err := std.dialer.DialAndSend(m); err != nil {
			zap.L().Warn("order confirmation mail failed",
				zap.Int64("order_id", id), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("mail pool rejected task", zap.Int64("order_id", id), zap.Error(err))
	}
}

// SendStatusUpdate queues a mail notifying the customer of a status change.
func SendStatusUpdate(to string, ord *domain.Order) {
	if std == nil || to == "" {
		return
	}
	id := ord.ID
	status := ord.Status
	err := std.pool.Submit(func() {
		m := gomail.NewMessage()
		m.SetHeader("From", std.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Order #%d is now %s", id, status))
		m.SetBody("text/plain", fmt.Sprintf("Your order %d changed status to: %s\n", id, status))
		if err := std.dialer.DialAndSend(m); err != nil {
			zap.L().Warn("status mail failed", zap.Int64("order_id", id), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("mail pool rejected task", zap.Int64("order_id", id), zap.Error(err))
	}
}
