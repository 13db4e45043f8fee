package report

import (
	"time"

	"github.com/boutikla/backend/internal/domain/finance"
	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/boutikla/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReportRequest carries the period and optional client filter for the
// sales reports
type SalesReportRequest struct {
	StartDate time.Time  `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time  `form:"end_date" time_format:"2006-01-02"`
	ClientID  *uuid.UUID `form:"client_id"`
}

// ReceiptLine is one product line on a receipt
type ReceiptLine struct {
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// ReceiptPayment is one payment line on a receipt
type ReceiptPayment struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ReceiptResponse is a printable receipt: the sale's frozen lines and rate,
// client contact details and payment history, all in the sale's currency
type ReceiptResponse struct {
	SaleID        uuid.UUID        `json:"sale_id"`
	Date          time.Time        `json:"date"`
	ClientName    string           `json:"client_name"`
	ClientPhone   string           `json:"client_phone,omitempty"`
	ClientAddress string           `json:"client_address,omitempty"`
	Currency      string           `json:"currency"`
	ExchangeRate  decimal.Decimal  `json:"exchange_rate"`
	CreditSale    bool             `json:"credit_sale"`
	Status        string           `json:"status"`
	Lines         []ReceiptLine    `json:"lines"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	Payments      []ReceiptPayment `json:"payments"`
	PaidAmount    decimal.Decimal  `json:"paid_amount"`
	BalanceDue    decimal.Decimal  `json:"balance_due"`
	Remarks       string           `json:"remarks,omitempty"`
}

func buildReceipt(sale *trade.Sale, client *partner.Client, payments []*finance.Payment, paid decimal.Decimal) ReceiptResponse {
	lines := make([]ReceiptLine, len(sale.Items))
	for i, item := range sale.Items {
		lines[i] = ReceiptLine{
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TaxPercent:      item.TaxPercent,
			DiscountPercent: item.DiscountPercent,
			LineTotal:       item.LineTotal,
		}
	}

	paymentLines := make([]ReceiptPayment, 0, len(payments))
	for _, payment := range payments {
		if !payment.IsActive() {
			continue
		}
		paymentLines = append(paymentLines, ReceiptPayment{
			Amount:    payment.Amount,
			Method:    payment.Method.String(),
			Reference: payment.Reference,
			PaidAt:    payment.CreatedAt,
		})
	}

	receipt := ReceiptResponse{
		SaleID:       sale.ID,
		Date:         sale.CreatedAt,
		ClientName:   sale.ClientName,
		Currency:     sale.Currency.String(),
		ExchangeRate: sale.ExchangeRate,
		CreditSale:   sale.CreditSale,
		Status:       sale.Status.String(),
		Lines:        lines,
		TotalAmount:  sale.TotalAmount,
		Payments:     paymentLines,
		PaidAmount:   paid,
		BalanceDue:   sale.TotalAmount.Sub(paid),
		Remarks:      sale.Remarks,
	}

	if client != nil {
		receipt.ClientPhone = client.Phone
		if len(client.Addresses) > 0 {
			receipt.ClientAddress = client.Addresses[0]
		}
	}

	return receipt
}
