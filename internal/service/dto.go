package service

import "github.com/paothinnapat/sales-tracker/internal/domain"

// SubmitSaleRequest represents the sale submission payload
type SubmitSaleRequest struct {
	Date         string        `json:"date"`
	Store        string        `json:"store"`
	Items        []ItemPayload `json:"items"`
	Total        int           `json:"total"`
	SubmissionID string        `json:"submission_id"`
}

type ItemPayload struct {
	Product  string `json:"product"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int    `json:"subtotal"`
}

// ToDomain converts the wire payload into a domain submission
func (r *SubmitSaleRequest) ToDomain() *domain.SaleSubmission {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.LineItem{
			Product:  it.Product,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}
	return &domain.SaleSubmission{
		Date:         r.Date,
		Store:        r.Store,
		Items:        items,
		Total:        r.Total,
		SubmissionID: r.SubmissionID,
	}
}

// CatalogResponse is the payload of GET /api/catalog
type CatalogResponse struct {
	Products []domain.Product `json:"products"`
	Stores   []domain.Store   `json:"stores"`
}
