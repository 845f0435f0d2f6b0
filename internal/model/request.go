package model

// Значения фильтра бронирований по умолчанию.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// BookingFilter - параметры запроса списка бронирований.
type BookingFilter struct {
	Page     int               `json:"page" validate:"min=1"`
	PageSize int               `json:"pageSize" validate:"min=1"`
	OrderBy  map[string]string `json:"orderBy"`
	Filters  *BookingFilters   `json:"filters,omitempty"`
}

// WithDefaults заполняет незаданные параметры значениями по умолчанию.
func (f BookingFilter) WithDefaults() BookingFilter {
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
	if len(f.OrderBy) == 0 {
		f.OrderBy = map[string]string{"id": string(SortDesc)}
	}
	return f
}

// CancelBookingRequest - запрос на отмену брони. Пустые host_commission и
// reason_of_cancel не отправляются.
type CancelBookingRequest struct {
	CancelFeePercentage int    `json:"cancel_fee_percentage" validate:"oneof=0 30 100"`
	IsNoDeposit         bool   `json:"is_no_deposit"`
	HostCommission      string `json:"host_commission,omitempty"`
	ReasonOfCancel      string `json:"reason_of_cancel,omitempty"`
}

// ChangeStatusRequest - запрос на ручную смену статуса.
type ChangeStatusRequest struct {
	Status BookingStatus `json:"status" validate:"enum"`
	Reason string        `json:"reason,omitempty"`
}

// SignContractRequest - подтверждение подписания договора.
type SignContractRequest struct {
	IsFromCMS bool `json:"is_from_cms"`
}

// UpdateDepositRequest - изменение суммы депозита и удержания.
type UpdateDepositRequest struct {
	HoldCarAmount *float64 `json:"hold_car_amount" validate:"required"`
	DepositAmount *float64 `json:"deposit_amount" validate:"required"`
}

// CreateBookingRequest - создание брони из CMS.
type CreateBookingRequest struct {
	CarSKU                   string         `json:"car_sku" validate:"required"`
	ScheduledPickupTimestamp string         `json:"scheduled_pickup_timestamp" validate:"required"`
	ScheduledReturnTimestamp string         `json:"scheduled_return_timestamp" validate:"required"`
	UserName                 string         `json:"user_name"`
	PhoneNumber              string         `json:"phone_number" validate:"required"`
	DeliveryOption           DeliveryOption `json:"delivery_option" validate:"enum"`
	DeliveryAddressToCust    *string        `json:"delivery_address_to_cust,omitempty"`
	DeliveryAddressFromCust  *string        `json:"delivery_address_from_cust,omitempty"`
	Purpose                  Purpose        `json:"purpose,omitempty" validate:"omitempty,enum"`
	PromotionCode            string         `json:"promotion_code,omitempty"`
	Lat                      *float64       `json:"lat,omitempty"`
	Lng                      *float64       `json:"lng,omitempty"`
	LatReturn                *float64       `json:"lat_return,omitempty"`
	LngReturn                *float64       `json:"lng_return,omitempty"`
}

// UpdateBookingFeeRequest - пересчёт стоимости брони по новым условиям.
type UpdateBookingFeeRequest struct {
	ScheduledPickupTimestamp string          `json:"scheduled_pickup_timestamp,omitempty"`
	ScheduledReturnTimestamp string          `json:"scheduled_return_timestamp,omitempty"`
	CarSKU                   string          `json:"car_sku,omitempty"`
	DeliveryOption           *DeliveryOption `json:"delivery_option,omitempty"`
	DeliveryAddressToCust    *string         `json:"delivery_address_to_cust,omitempty"`
	DeliveryAddressFromCust  *string         `json:"delivery_address_from_cust,omitempty"`
	PromotionCode            string          `json:"promotion_code,omitempty"`
	IsBonbonPickupDelivery   *bool           `json:"is_bonbon_pickup_delivery,omitempty"`
	IsBonbonReturnDelivery   *bool           `json:"is_bonbon_return_delivery,omitempty"`
}

// UpdateVatInfo - реквизиты для выставления счёта с НДС.
type UpdateVatInfo struct {
	IsExportVAT    bool   `json:"is_export_vat"`
	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyTaxCode string `json:"company_tax_code,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
}

// UpdateTripInfo - цель и маршрут поездки.
type UpdateTripInfo struct {
	Purpose   Purpose `json:"purpose"`
	Itinerary string  `json:"itinerary,omitempty"`
}

// UpdateLicenseInfo - баллы водительского удостоверения.
type UpdateLicenseInfo struct {
	LicensePoint     string `json:"license_point,omitempty"`
	IsNoLicensePoint *bool  `json:"is_no_license_point,omitempty"`
}

// FeeLine - строка начисления при сверке или черновом изменении.
type FeeLine struct {
	ID             *int64   `json:"id,omitempty"`
	FeeType        string   `json:"fee_type"`
	Value          float64  `json:"value"`
	VATPercent     *float64 `json:"vat_percent,omitempty"`
	HostCommission *float64 `json:"host_commission,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// FeeVerifyRequest - сверка или черновое изменение строк начисления.
type FeeVerifyRequest struct {
	BookingDetails          []FeeLine `json:"booking_details"`
	DeletedBookingDetailIDs []int64   `json:"deletedBookingDetailIds,omitempty"`
}

// ChangeClientRequest - перенос брони на другого клиента.
type ChangeClientRequest struct {
	UserName    string `json:"user_name"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// FeeInfoQuery - параметры предварительного расчёта стоимости брони.
type FeeInfoQuery map[string]string

// PromotionQuery - параметры подбора применимых промокодов.
type PromotionQuery struct {
	CarSKU                   string `validate:"required"`
	ScheduledPickupTimestamp string `validate:"required"`
	ScheduledReturnTimestamp string `validate:"required"`
}

// ListQuery - параметры постраничных списков партнёров и доплат.
type ListQuery struct {
	Page      int       `json:"page" validate:"min=1"`
	PageSize  int       `json:"pageSize" validate:"min=1"`
	Keyword   string    `json:"keyword"`
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty" validate:"omitempty,enum"`
}

// WithDefaults заполняет незаданные параметры значениями по умолчанию.
func (q ListQuery) WithDefaults() ListQuery {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}
