package models

// BookingRecord is a booking as returned by /api/booking/company/{companyId}.
type BookingRecord struct {
	ID             FlexID     `json:"id"`
	OwnerUserName  string     `json:"ownerUserName"`
	Location       string     `json:"location"`
	ProductName    string     `json:"productName"`
	PetInfo        string     `json:"petInfo"`
	PetCount       int        `json:"petCount"`
	StartDt        Timestamp  `json:"startDt"`
	EndDt          Timestamp  `json:"endDt"`
	TotalPrice     Number     `json:"totalPrice"`
	Status         StatusCode `json:"status"`
	SpecialRequest string     `json:"specialRequest"`
	PaymentStatus  string     `json:"paymentStatus"`
	CreatedAt      Timestamp  `json:"createdAt"`
	UpdatedAt      Timestamp  `json:"updatedAt"`
}

// BookingView is the display-ready booking. Every field is populated.
type BookingView struct {
	ID             int64   `json:"id"`
	UserName       string  `json:"userName"`
	UserLocation   string  `json:"userLocation"`
	UserAvatar     string  `json:"userAvatar"`
	ServiceName    string  `json:"serviceName"`
	PetInfo        string  `json:"petInfo"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Price          float64 `json:"price"`
	Status         Status  `json:"status"`
	Date           string  `json:"date"`
	SpecialRequest string  `json:"specialRequest"`
	PaymentStatus  string  `json:"paymentStatus"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// TodayStats summarises today's reservations for the dashboard header.
type TodayStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// MonthlyCounts maps YYYY-MM-DD to the number of reservations starting that day.
type MonthlyCounts map[string]int

// CompanyContext identifies the company a manager acts for.
type CompanyContext struct {
	UserID    string `json:"userId,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
	Role      string `json:"role,omitempty"`
}

// HasCompany reports whether a company id was resolved.
func (c *CompanyContext) HasCompany() bool {
	return c != nil && c.CompanyID > 0
}

// StatusResult is the body of status/cancel responses.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
