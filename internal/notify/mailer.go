package notify

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
)

//go:generate mockgen -source=./mailer.go -package=notifymocks -destination=./mocks/mailer.mock.go

// Notifier prévient le client par e-mail. Les échecs sont journalisés par
// l'appelant et ne remettent jamais en cause la commande.
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order, email string) error
	OrderUpdated(ctx context.Context, order models.Order, email string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	baseURL  string
}

// NewSMTPMailer retourne nil si SMTP_HOST n'est pas configuré
func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	if cfg.SMTPHost == "" {
		logger.L().Warn("⚠️ SMTP non configuré, e-mails désactivés")
		return nil
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		baseURL:  cfg.BaseURL,
	}
}

func (m *SMTPMailer) OrderPlaced(ctx context.Context, order models.Order, email string) error {
	qr, err := OrderQR(m.baseURL, order.ID)
	if err != nil {
		logger.L().Warn("⚠️ Génération QR échouée", zap.String("order_id", order.ID), zap.Error(err))
	}
	html, err := RenderConfirmation(order, qr != nil)
	if err != nil {
		return errors.Wrap(err, "rendu e-mail confirmation")
	}

	msg, err := m.newMsg(email, "✅ Confirmation de votre commande", html)
	if err != nil {
		return err
	}
	if qr != nil {
		msg.EmbedReader("commande.png", bytes.NewReader(qr))
	}
	return m.send(ctx, msg, email)
}

func (m *SMTPMailer) OrderUpdated(ctx context.Context, order models.Order, email string) error {
	subject, _ := statusWording(order)
	html, err := RenderStatusUpdate(order)
	if err != nil {
		return errors.Wrap(err, "rendu e-mail statut")
	}
	msg, err := m.newMsg(email, subject, html)
	if err != nil {
		return err
	}
	return m.send(ctx, msg, email)
}

func (m *SMTPMailer) newMsg(to, subject, html string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, errors.Wrap(err, "expéditeur invalide")
	}
	if err := msg.To(to); err != nil {
		return nil, errors.Wrap(err, "destinataire invalide")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)
	return msg, nil
}

func (m *SMTPMailer) send(ctx context.Context, msg *mail.Msg, to string) error {
	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return errors.Wrap(err, "client SMTP")
	}
	logger.L().Info("📤 Envoi de l'e-mail", zap.String("to", to))
	return client.DialAndSendWithContext(ctx, msg)
}

// OrderQR encode le lien de suivi de la commande en PNG
func OrderQR(baseURL, orderID string) ([]byte, error) {
	return qrcode.Encode(baseURL+"/orders/"+orderID, qrcode.Medium, 256)
}
