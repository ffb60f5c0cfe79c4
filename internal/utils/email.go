package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"aurelia_back_end/internal/order"

	"github.com/wneessen/go-mail"
)

func smtpClient() (*mail.Client, error) {
	return mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@aurelia-shop.be"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_aurelia.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderStatusEmail prévient l'utilisateur d'un changement de statut.
func SendOrderStatusEmail(o *order.Order, to string) error {
	labels := map[order.Status]string{
		order.StatusPaid:      "Votre paiement a bien été reçu",
		order.StatusShipped:   "Votre commande a été expédiée",
		order.StatusDelivered: "Votre commande a été livrée",
		order.StatusCancelled: "Votre commande a été annulée",
	}
	label, ok := labels[o.Status]
	if !ok {
		return nil
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">%s</h2>
		<p>Commande n° %s — total %s.</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Aurelia</strong>
		</p>
	</div>
</body>
</html>`, label, o.ID.String(), FormatEuros(o.Total))

	msg := mail.NewMsg()
	if err := msg.From("noreply@aurelia-shop.be"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Mise à jour de votre commande Aurelia")
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := smtpClient()
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// Les montants arrivent en centimes et ne sont formatés qu'à l'affichage.
func GenerateOrderConfirmationHTML(o *order.Order) string {
	itemsHTML := ""
	for _, item := range o.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
			</tr>`, item.Name, item.Quantity, FormatEuros(item.Price), FormatEuros(item.Price*int64(item.Quantity)))
	}

	shipping := "Gratuite"
	if o.ShippingAmount > 0 {
		shipping = FormatEuros(o.ShippingAmount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Sous-total :</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Livraison :</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">dont TVA :</td>
					<td style="padding: 10px;">%s</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total :</td>
					<td style="padding: 10px; font-weight: bold;">%s</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Aurelia</strong>
		</p>
	</div>
</body>
</html>`, itemsHTML, FormatEuros(o.Subtotal), shipping, FormatEuros(o.TaxAmount), FormatEuros(o.Total))
}
