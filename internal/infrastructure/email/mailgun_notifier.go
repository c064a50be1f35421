package email

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 30 * time.Second

// MailgunNotifier delivers invoices and reminders through the Mailgun API.
//
// Credentials come from the Settings document first and fall back to the
// MAILGUN_DOMAIN / MAILGUN_API_KEY environment variables. When neither is
// configured the notifier reports a skipped delivery instead of failing, so
// invoice workflows keep working on installs without outbound email.

type MailgunNotifier struct{}

var _ interfaces.INotifier = (*MailgunNotifier)(nil)

func NewMailgunNotifier() *MailgunNotifier {
	return &MailgunNotifier{}
}

func (n *MailgunNotifier) SendInvoice(ctx context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, pdf []byte) (bool, error) {
	mg, sender, ok := n.client(settings)
	if !ok {
		log.Printf("[email][mailgun] not configured, invoice %s not sent", inv.InvoiceNumber)
		return false, nil
	}

	companyName := settings.CompanyName
	if companyName == "" {
		companyName = "AutoPro Rental"
	}
	subject := fmt.Sprintf("Facture %s - %s", inv.InvoiceNumber, companyName)
	text := fmt.Sprintf(
		"Bonjour %s,\n\nVeuillez trouver ci-joint la facture %s d'un montant de %.2f € TTC, payable avant le %s.\n\nCordialement,\n%s",
		client.ContactName, inv.InvoiceNumber, inv.GrandTotal, inv.DueDate.Format("02/01/2006"), companyName)

	m := mg.NewMessage(sender, subject, text, client.Email)
	m.SetHtml(fmt.Sprintf(
		"<p>Bonjour %s,</p><p>Veuillez trouver ci-joint la facture <b>%s</b> d'un montant de <b>%.2f € TTC</b>, payable avant le %s.</p><p>Cordialement,<br>%s</p>",
		client.ContactName, inv.InvoiceNumber, inv.GrandTotal, inv.DueDate.Format("02/01/2006"), companyName))
	m.AddBufferAttachment(inv.InvoiceNumber+".pdf", pdf)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := mg.Send(sendCtx, m)
	if err != nil {
		return false, fmt.Errorf("mailgun send: %w", err)
	}
	log.Printf("[email][mailgun] invoice %s sent to %s message_id=%s", inv.InvoiceNumber, client.Email, id)
	return true, nil
}

func (n *MailgunNotifier) SendPaymentReminder(ctx context.Context, inv entities.Invoice, client entities.Client, settings entities.Settings, daysOverdue int) (bool, error) {
	mg, sender, ok := n.client(settings)
	if !ok {
		log.Printf("[email][mailgun] not configured, reminder for %s not sent", inv.InvoiceNumber)
		return false, nil
	}

	companyName := settings.CompanyName
	if companyName == "" {
		companyName = "AutoPro Rental"
	}
	subject := fmt.Sprintf("Relance - Facture %s en retard de %d jours", inv.InvoiceNumber, daysOverdue)
	text := fmt.Sprintf(
		"Bonjour %s,\n\nSauf erreur de notre part, la facture %s d'un montant de %.2f € TTC, échue le %s, reste impayée (solde : %.2f €).\n\nMerci de régulariser la situation au plus vite.\n\nCordialement,\n%s",
		client.ContactName, inv.InvoiceNumber, inv.GrandTotal, inv.DueDate.Format("02/01/2006"), inv.RemainingAmount, companyName)

	m := mg.NewMessage(sender, subject, text, client.Email)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := mg.Send(sendCtx, m)
	if err != nil {
		return false, fmt.Errorf("mailgun send: %w", err)
	}
	log.Printf("[email][mailgun] reminder for %s sent to %s message_id=%s", inv.InvoiceNumber, client.Email, id)
	return true, nil
}

func (n *MailgunNotifier) client(settings entities.Settings) (*mailgun.MailgunImpl, string, bool) {
	domain := settings.MailgunDomain
	if domain == "" {
		domain = os.Getenv("MAILGUN_DOMAIN")
	}
	apiKey := settings.MailgunAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("MAILGUN_API_KEY")
	}
	if domain == "" || apiKey == "" {
		return nil, "", false
	}

	sender := os.Getenv("MAILGUN_DEFAULT_SENDER")
	if sender == "" {
		sender = "noreply@" + domain
	}
	return mailgun.NewMailgun(domain, apiKey), sender, true
}
