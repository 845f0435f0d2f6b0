package model

// ISODateTime - формат временных меток в ответах по партнёрам.
const ISODateTime = "2006-01-02T15:04:05Z07:00"

// AffiliateCarRentInfo - тарифы брони партнёра. Проверяются строго.
type AffiliateCarRentInfo struct {
	NormalHour          float64  `json:"normal_hour"`
	Rent1Hour           float64  `json:"rent_1_hour"`
	Rent4Hour           float64  `json:"rent_4_hour"`
	Rent8Hour           float64  `json:"rent_8_hour"`
	VATPercent          string   `json:"vat_percent"`
	HolidayHour         *float64 `json:"holiday_hour"`
	Rent12Hour          float64  `json:"rent_12_hour"`
	Rent24Hour          float64  `json:"rent_24_hour"`
	RentHoliday         float64  `json:"rent_holiday"`
	HostCommission      float64  `json:"host_commission"`
	RenterCommission    float64  `json:"renter_commission"`
	WeekendSurcharge    float64  `json:"weekend_surcharge"`
	MinBookingInHoliday float64  `json:"min_booking_in_holiday"`
}

// AffiliateBooking - бронь, приведённая партнёром.
type AffiliateBooking struct {
	ID                          int64                `json:"id"`
	BookingID                   string               `json:"booking_id"`
	ScheduledPickupTimestamp    string               `json:"scheduled_pickup_timestamp" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	ScheduledReturnTimestamp    string               `json:"scheduled_return_timestamp" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	CountTime                   string               `json:"count_time" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	CarSKU                      string               `json:"car_sku"`
	AmountToPay                 *float64             `json:"amount_to_pay"`
	PhoneNumber                 string               `json:"phone_number"`
	UserName                    string               `json:"user_name"`
	Status                      string               `json:"status"`
	ReasonOfCancel              string               `json:"reason_of_cancel"`
	BookingType                 string               `json:"booking_type"`
	Discount                    *float64             `json:"discount"`
	DeliveryOption              string               `json:"delivery_option"`
	DeliveryAddressToCust       *string              `json:"delivery_address_to_cust"`
	DeliveryAddressFromCust     *string              `json:"delivery_address_from_cust"`
	Lat                         *float64             `json:"lat"`
	Lng                         *float64             `json:"lng"`
	ReturnLat                   *float64             `json:"return_lat"`
	ReturnLng                   *float64             `json:"return_lng"`
	RentalAmount                *float64             `json:"rental_amount"`
	DeliveryFeeAmountToCustomer *float64             `json:"delivery_fee_amount_to_customer"`
	DepositAmount               *float64             `json:"deposit_amount"`
	VAT                         *float64             `json:"vat"`
	Platform                    *string              `json:"platform"`
	PromotionCode               *string              `json:"promotion_code"`
	Tag                         *string              `json:"tag"`
	UserCity                    string               `json:"user_city"`
	IsExportVAT                 bool                 `json:"is_export_vat"`
	CompanyName                 *string              `json:"company_name"`
	CompanyAddress              *string              `json:"company_address"`
	CompanyTaxCode              *string              `json:"company_tax_code"`
	CompanyEmail                *string              `json:"company_email"`
	Filters                     *string              `json:"filters"`
	Purpose                     *string              `json:"purpose"`
	Itinerary                   *string              `json:"itinerary"`
	ClientID                    int64                `json:"client_id"`
	RenterCheckinTime           *string              `json:"renter_checkin_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	RenterCheckoutTime          *string              `json:"renter_checkout_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CarRentInfo                 AffiliateCarRentInfo `json:"car_rent_info"`
	LicensePoint                *float64             `json:"license_point"`
	IsNoLicensePoint            *bool                `json:"is_no_license_point"`
	Version                     int64                `json:"version"`
	CreatedAt                   string               `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	UpdatedAt                   string               `json:"updated_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	IsHoldCarAfterCancel        bool                 `json:"is_hold_car_after_cancel"`
	IsRecalculated              bool                 `json:"is_recalculated"`
	IsBonbonPickupDelivery      bool                 `json:"is_bonbon_pickup_delivery"`
	IsBonbonReturnDelivery      bool                 `json:"is_bonbon_return_delivery"`
	InsuranceProductCode        string               `json:"insurance_product_code"`
	IsReceivedDeposit           bool                 `json:"is_received_deposit"`
	StatusBeforeCancel          *string              `json:"status_before_cancel"`
}

// Affiliate - партнёр со списком приведённых им броней.
type Affiliate struct {
	ID             int64              `json:"id"`
	AffiliateCode  string             `json:"affiliate_code"`
	AffiliateName  string             `json:"affiliate_name"`
	AffiliatePhone string             `json:"affiliate_phone"`
	AffiliateEmail string             `json:"affiliate_email" validate:"email"`
	Note           string             `json:"note"`
	CreatedAt      string             `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	UpdatedAt      string             `json:"updated_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	AffiliateLogo  *string            `json:"affiliate_logo"`
	City           *string            `json:"city"`
	Bookings       []AffiliateBooking `json:"bookings" validate:"dive"`
}

// AffiliateListResponse - страница партнёров.
type AffiliateListResponse struct {
	Data []Affiliate `json:"data" validate:"dive"`
	Meta Meta        `json:"meta"`
}

// AffiliateBookingsResponse - страница броней всех партнёров.
type AffiliateBookingsResponse struct {
	Data []AffiliateBooking `json:"data" validate:"dive"`
	Meta Meta               `json:"meta"`
}

// TopAffiliate - партнёр в рейтинге по выручке.
type TopAffiliate struct {
	ID            int64   `json:"id"`
	AffiliateCode string  `json:"affiliate_code"`
	AffiliateName string  `json:"affiliate_name"`
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Commission    float64 `json:"commission"`
}

// MonthlyStats - показатели за месяц (YYYY-MM).
type MonthlyStats struct {
	Month         string  `json:"month"`
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
	NewAffiliates int     `json:"newAffiliates"`
}

// BookingStatusStats - доля броней в статусе.
type BookingStatusStats struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CityStats - показатели по городу.
type CityStats struct {
	City           string  `json:"city"`
	AffiliateCount int     `json:"affiliateCount"`
	BookingCount   int     `json:"bookingCount"`
	Revenue        float64 `json:"revenue"`
}

// AffiliateOverview - сводка по партнёрской программе.
type AffiliateOverview struct {
	TotalAffiliates    int                  `json:"totalAffiliates"`
	TotalBookings      int                  `json:"totalBookings"`
	TotalRevenue       float64              `json:"totalRevenue"`
	TotalCommission    float64              `json:"totalCommission"`
	ActiveAffiliates   int                  `json:"activeAffiliates"`
	TopAffiliates      []TopAffiliate       `json:"topAffiliates"`
	MonthlyStats       []MonthlyStats       `json:"monthlyStats"`
	BookingStatusStats []BookingStatusStats `json:"bookingStatusStats"`
	CityStats          []CityStats          `json:"cityStats"`
}

// Period - отчётный период.
type Period struct {
	StartDate string `json:"startDate" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	EndDate   string `json:"endDate" validate:"datetime=2006-01-02T15:04:05Z07:00"`
}

// AffiliateDashboardResponse - статистика партнёрской программы за год.
type AffiliateDashboardResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Overview AffiliateOverview `json:"overview"`
		Period   Period            `json:"period"`
	} `json:"data"`
}
