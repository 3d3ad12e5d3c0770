// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/domain/order"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("02/01/2006") },
}).Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Detail        *order.Detail
	Payment       *order.Payment
	Company       CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// GenerateInvoice renders the invoice of an order as PDF. It needs the
// wkhtmltopdf binary on PATH.
func (s *Service) GenerateInvoice(d *order.Detail) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(d)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderHTML builds the invoice markup
func (s *Service) RenderHTML(d *order.Detail) ([]byte, error) {
	data := InvoiceData{
		InvoiceNumber: "FAC-" + d.Order.NumberOrEmpty(),
		InvoiceDate:   s.now().Format("02/01/2006"),
		Detail:        d,
		Company: CompanyInfo{
			Name:    s.config.App.Name,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
		},
	}
	if len(d.Payments) > 0 {
		data.Payment = &d.Payments[len(d.Payments)-1]
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Factura {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; width: 90px; }
        .totals { float: right; width: 300px; }
        .totals table { width: 100%; border-collapse: collapse; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; text-align: right; }
        .total-row td { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; }
        .status-paid { background-color: #dcfce7; color: #166534; }
        .status-pending { background-color: #fef3c7; color: #92400e; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Tel: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>{{.Company.Email}}</p>{{end}}
        </div>
        <div style="text-align: right;">
            <div class="invoice-title">FACTURA</div>
            <p><strong>Factura:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Fecha:</strong> {{.InvoiceDate}}</p>
            <p><strong>Pedido:</strong> {{.Detail.Order.NumberOrEmpty}} ({{date .Detail.Order.CreatedAt}})</p>
            <p><strong>Estado:</strong> {{.Detail.Order.Status}}</p>
            {{with .Payment}}
            <p><strong>Pago:</strong>
                <span class="status-badge {{if eq .Status "PAGADO"}}status-paid{{else}}status-pending{{end}}">{{.Status}}</span>
                {{.Method}}
            </p>
            {{end}}
        </div>
    </div>

    <div>
        <div class="section-title">Cliente</div>
        {{with .Detail.Customer}}
        <p><strong>{{.FullName}}</strong></p>
        <p>{{.Email}}{{if .Phone}} · {{.Phone}}{{end}}</p>
        {{end}}
        {{with .Detail.ShippingAddress}}
        <div class="section-title">Envío</div>
        <p>{{.Recipient}}</p>
        <p>{{.Line1}}{{if .Line2}}, {{.Line2}}{{end}}</p>
        <p>{{.City}}, {{.Province}} {{.PostalCode}} {{.CountryCode}}</p>
        {{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Producto</th>
                <th class="num">Cant.</th>
                <th class="num">Precio</th>
                <th class="num">Desc.</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Detail.Lines}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .UnitPrice}}</td>
                <td class="num">{{money .Discount}}</td>
                <td class="num">{{money .Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td>{{money .Detail.Order.Subtotal}}</td></tr>
            <tr><td>Descuento:</td><td>-{{money .Detail.Order.Discount}}</td></tr>
            <tr><td>Envío:</td><td>{{money .Detail.Order.Shipping}}</td></tr>
            <tr><td>Impuesto:</td><td>{{money .Detail.Order.Tax}}</td></tr>
            <tr class="total-row"><td>Total {{.Detail.Order.Currency}}:</td><td>{{money .Detail.Order.Total}}</td></tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Gracias por su compra</p>
    </div>
</body>
</html>
`
