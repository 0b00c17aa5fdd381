package notify

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/pricing"
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"lineTotal": func(item models.CartItem) string {
		return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
	},
}

const layoutHead = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">`

const layoutFoot = `<p style="margin-top: 30px; color: #555;">Cordialement,<br><strong>L'équipe Storefront</strong></p>
</div></body></html>`

const itemsTable = `<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
<thead><tr style="background-color: #f0f0f0;">
<th style="padding: 10px; text-align: left;">Produit</th>
<th style="padding: 10px; text-align: left;">Taille</th>
<th style="padding: 10px; text-align: left;">Quantité</th>
<th style="padding: 10px; text-align: left;">Prix unitaire</th>
<th style="padding: 10px; text-align: left;">Total</th>
</tr></thead>
<tbody>{{range .Order.Items}}<tr>
<td style="padding: 10px;">{{.Name}} <small>{{.Brand}}</small></td>
<td style="padding: 10px;">{{.Size}}</td>
<td style="padding: 10px;">{{.Quantity}}</td>
<td style="padding: 10px;">{{money .UnitPrice}}</td>
<td style="padding: 10px;">{{lineTotal .}}</td>
</tr>{{end}}</tbody>
<tfoot>
<tr><td colspan="4" style="text-align: right;">Total MRP</td><td>{{money .Totals.TotalMRP}}</td></tr>
<tr><td colspan="4" style="text-align: right;">Remise</td><td>-{{money .Totals.TotalDiscount}}</td></tr>
<tr><td colspan="4" style="text-align: right;">Frais de plateforme</td><td>{{money .Totals.PlatformFee}}</td></tr>
<tr><td colspan="4" style="text-align: right; font-weight: bold;">Total</td><td style="font-weight: bold;">{{money .Order.TotalAmount}}</td></tr>
</tfoot></table>`

var (
	confirmationTmpl = template.Must(template.New("confirmation").Funcs(funcs).Parse(layoutHead + `
<h2 style="color: #333;">Confirmation de votre commande</h2>
<p>Bonjour {{.Order.DeliveryInfo.FullName}},</p>
<p>Votre commande <strong>#{{.Order.ID}}</strong> a été enregistrée ({{.Order.PaymentMethod}}).</p>
` + itemsTable + `
<p>Livraison : {{.Order.DeliveryInfo.Address}} ({{.Order.DeliveryInfo.Phone}})</p>
{{if .HasQR}}<p><img src="cid:commande.png" alt="QR commande" width="160"></p>{{end}}
` + layoutFoot))

	statusTmpl = template.Must(template.New("status").Funcs(funcs).Parse(layoutHead + `
<h2 style="color: #333;">{{.Title}}</h2>
<p>Bonjour {{.Order.DeliveryInfo.FullName}},</p>
<p>{{.Message}}</p>
<p>Commande <strong>#{{.Order.ID}}</strong> : {{.Order.Status}}{{with .Order.ReturnStatus}} / retour : {{.}}{{end}}</p>
` + layoutFoot))

	receiptTmpl = template.Must(template.New("receipt").Funcs(funcs).Parse(layoutHead + `
<h2 style="color: #333;">Reçu de commande #{{.Order.ID}}</h2>
<p>Date : {{.Order.CreatedAt.Format "02/01/2006 15:04"}}</p>
<p>Paiement : {{.Order.PaymentMethod}}{{with .Order.PaymentStatus}} ({{.}}){{end}}</p>
` + itemsTable + `
<p>{{.Order.DeliveryInfo.FullName}}<br>{{.Order.DeliveryInfo.Address}}<br>{{.Order.DeliveryInfo.Phone}}</p>
` + layoutFoot))
)

type view struct {
	Title   string
	Message string
	Order   models.Order
	Totals  pricing.CartTotals
	HasQR   bool
}

func render(t *template.Template, v view) (string, error) {
	v.Totals = pricing.Calculate(v.Order.Items).Rounded()
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderConfirmation(order models.Order, withQR bool) (string, error) {
	return render(confirmationTmpl, view{Title: "Confirmation de commande", Order: order, HasQR: withQR})
}

func RenderStatusUpdate(order models.Order) (string, error) {
	subject, message := statusWording(order)
	return render(statusTmpl, view{Title: subject, Message: message, Order: order})
}

// RenderReceipt : reçu HTML archivé dans MinIO ou servi directement
func RenderReceipt(order models.Order) (string, error) {
	return render(receiptTmpl, view{Title: "Reçu de commande", Order: order})
}

func statusWording(order models.Order) (subject, message string) {
	if order.ReturnStatus != nil {
		switch *order.ReturnStatus {
		case models.ReturnRequested:
			return "↩️ Demande de retour reçue", "Nous avons bien reçu votre demande de retour."
		case models.ReturnApproved:
			return "✅ Retour accepté", "Votre retour a été accepté."
		case models.ReturnDenied:
			return "❌ Retour refusé", "Votre demande de retour a été refusée."
		case models.ReturnCancelled:
			return "↩️ Retour annulé", "Votre demande de retour a été annulée."
		}
	}
	switch order.Status {
	case models.StatusApproved:
		return "✅ Commande validée", "Votre commande a été validée et est en préparation."
	case models.StatusShipped:
		return "📦 Votre commande a été expédiée", "Votre commande est en route."
	case models.StatusDelivered:
		return "🎉 Votre commande a été livrée", "Votre commande a été livrée. Merci !"
	default:
		return "📋 Mise à jour de votre commande", "Le statut de votre commande a changé."
	}
}
