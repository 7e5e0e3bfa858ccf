package domain

// LineItem is one cart line: a product variant and the quantity sold.
// Subtotal is always Price * Quantity.
type LineItem struct {
	Product  string `json:"product"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int    `json:"subtotal"`
}

// SaleSubmission is the payload sent from the cart to the recorder.
// SubmissionID is a client-generated token so a retried submission can be
// recognized and not appended twice.
type SaleSubmission struct {
	Date         string     `json:"date"`
	Store        string     `json:"store"`
	Items        []LineItem `json:"items"`
	Total        int        `json:"total"`
	SubmissionID string     `json:"submission_id,omitempty"`
}

// SheetHeader is the fixed header row of the ledger worksheet, in column order
var SheetHeader = []string{"Date", "Store Plant", "Product Name", "Price", "Quantity", "Total"}

// SheetRows maps a submission to ledger rows, one per line item, with cells
// in SheetHeader order.
func SheetRows(sub *SaleSubmission) [][]interface{} {
	rows := make([][]interface{}, 0, len(sub.Items))
	for _, item := range sub.Items {
		rows = append(rows, []interface{}{
			sub.Date,
			sub.Store,
			item.Product,
			item.Price,
			item.Quantity,
			item.Subtotal,
		})
	}
	return rows
}
