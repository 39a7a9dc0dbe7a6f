package store

// Stores groups every store of the application. It is built once at start-up
// and handed to whatever consumes the state.
type Stores struct {
	Clients    *ClientDirectory
	Materials  *MaterialCatalog
	Quotations *QuotationLedger
	Invoices   *InvoiceLedger
	Settings   *SettingsStore
}

// New returns empty stores sharing the same options.
func New(opts ...Option) *Stores {
	return &Stores{
		Clients:    NewClientDirectory(opts...),
		Materials:  NewMaterialCatalog(opts...),
		Quotations: NewQuotationLedger(opts...),
		Invoices:   NewInvoiceLedger(opts...),
		Settings:   NewSettingsStore(),
	}
}
