package dto

// TicketRecord is one ticket as rendered by the listing endpoint. Field
// names match the dataset column names.
type TicketRecord struct {
	CSP               string  `json:"CSP"`
	Environment       string  `json:"Environment"`
	NarrowEnvironment string  `json:"NarrowEnvironment"`
	AlertType         string  `json:"AlertType"`
	Priority          string  `json:"Priority"`
	Key               string  `json:"Key"`
	AppCode           string  `json:"AppCode"`
	ConfigRule        string  `json:"ConfigRule"`
	Summary           string  `json:"Summary"`
	Account           string  `json:"Account"`
	Created           string  `json:"tCreated"`
	Resolved          *string `json:"tResolved"`
}

// TicketPageResponse response.
type TicketPageResponse struct {
	Tickets    []TicketRecord `json:"tickets"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
}

// TicketFilterOptionsResponse lists the distinct values offered by the
// table filters.
type TicketFilterOptionsResponse struct {
	Priority          []string `json:"Priority"`
	CSP               []string `json:"CSP"`
	AppCode           []string `json:"AppCode"`
	Environment       []string `json:"Environment"`
	NarrowEnvironment []string `json:"NarrowEnvironment"`
}
