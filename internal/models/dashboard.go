package models

// OfferSummary - агрегаты по предложениям одного участника.
type OfferSummary struct {
	Pending   int     `json:"pending" db:"pending"`
	Active    int     `json:"active" db:"active"`
	Completed int     `json:"completed" db:"completed"`
	Rejected  int     `json:"rejected" db:"rejected"`
	Total     float64 `json:"total" db:"total"`
}

// ClientDashboard - сводка для кабинета клиента.
type ClientDashboard struct {
	ActiveShipments    int        `json:"activeShipments"`
	CompletedShipments int        `json:"completedShipments"`
	CancelledShipments int        `json:"cancelledShipments"`
	TotalSpent         float64    `json:"totalSpent"`
	OpenQuotes         int        `json:"openQuotes"`
	RecentShipments    []Shipment `json:"recentShipments"`
}

// TransporterDashboard - сводка для кабинета перевозчика.
type TransporterDashboard struct {
	ActiveJobs    int                    `json:"activeJobs"`
	CompletedJobs int                    `json:"completedJobs"`
	PendingOffers int                    `json:"pendingOffers"`
	TotalEarned   float64                `json:"totalEarned"`
	Rating        RatingSummary          `json:"rating"`
	Vehicles      int                    `json:"vehicles"`
	Documents     map[DocumentStatus]int `json:"documents"`
	OpenQuotes    int                    `json:"openQuotes"`
}

// StatusCount - число записей в одном статусе.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// OfferTotal - число предложений и сумма по одному статусу.
type OfferTotal struct {
	Status OfferStatus `db:"status"`
	Count  int         `db:"count"`
	Amount float64     `db:"amount"`
}
