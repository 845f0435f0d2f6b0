package model

import (
	"encoding/json"

	"github.com/mmeshcher/booking-cms/internal/schema"
)

// Platform - платформа создания брони. null сохраняется, любое нестроковое
// значение заменяется на WEB.
type Platform struct {
	Value string
	Set   bool
}

// PlatformWeb подставляется вместо нестрокового значения.
const PlatformWeb = "WEB"

// UnmarshalJSON реализует json.Unmarshaler.
func (p *Platform) UnmarshalJSON(data []byte) error {
	*p = Platform{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		p.Value, p.Set = PlatformWeb, true
		return nil
	}
	switch v := raw.(type) {
	case nil:
	case string:
		p.Value, p.Set = v, true
	default:
		p.Value, p.Set = PlatformWeb, true
	}
	return nil
}

// MarshalJSON реализует json.Marshaler.
func (p Platform) MarshalJSON() ([]byte, error) {
	if !p.Set {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// BookingFilters - фильтр списка бронирований; API также возвращает его внутри брони.
type BookingFilters struct {
	Status               []BookingStatus `json:"status,omitempty" validate:"omitempty,dive,enum"`
	IsHoldCarAfterCancel *bool           `json:"is_hold_car_after_cancel,omitempty"`
	FilterSearch         string          `json:"filterSearch,omitempty"`
}

// CarRentInfo - тарифы, зафиксированные в брони.
type CarRentInfo struct {
	NormalHour          schema.NullNumber    `json:"normal_hour"`
	Rent1Hour           schema.NullNumber    `json:"rent_1_hour"`
	Rent4Hour           schema.NullNumber    `json:"rent_4_hour"`
	Rent8Hour           schema.NullNumber    `json:"rent_8_hour"`
	VATPercent          schema.NumericString `json:"vat_percent"`
	HolidayHour         schema.NullNumber    `json:"holiday_hour"`
	Rent12Hour          schema.NullNumber    `json:"rent_12_hour"`
	Rent24Hour          schema.NullNumber    `json:"rent_24_hour"`
	RentHoliday         schema.NullNumber    `json:"rent_holiday"`
	HostCommission      schema.NullNumber    `json:"host_commission"`
	RenterCommission    schema.NullNumber    `json:"renter_commission"`
	WeekendSurcharge    schema.NullNumber    `json:"weekend_surcharge"`
	MinBookingInHoliday schema.NullNumber    `json:"min_booking_in_holiday"`
}

// FeeMoreInfo - дополнительные сведения строки начисления.
type FeeMoreInfo struct {
	SurchargeCode    *string  `json:"surcharge_code,omitempty"`
	PromotionCode    *string  `json:"promotion_code,omitempty"`
	RenterCommission *float64 `json:"renter_commision,omitempty"`
}

// BookingDetail - строка начисления брони.
type BookingDetail struct {
	ID             *int64               `json:"id,omitempty"`
	ApplyTo        string               `json:"apply_to"`
	FeeType        FeeType              `json:"fee_type"`
	MoreInfo       *FeeMoreInfo         `json:"more_info,omitempty"`
	Value          schema.Number        `json:"value" validate:"required"`
	VATPercent     schema.NumericString `json:"vat_percent"`
	Description    *string              `json:"description,omitempty"`
	BookingID      *int64               `json:"booking_id,omitempty"`
	HostCommission *schema.Number       `json:"host_commission,omitempty"`
	Order          *int                 `json:"order,omitempty"`
}

// BookingFile - файл, приложенный к брони.
type BookingFile struct {
	ID          *int64               `json:"id,omitempty"`
	BookingID   *int64               `json:"booking_id,omitempty"`
	Name        string               `json:"name,omitempty"`
	FolderPath  string               `json:"folder_path,omitempty"`
	Size        *schema.Number       `json:"size,omitempty"`
	Extension   *string              `json:"extension,omitempty"`
	URL         string               `json:"url,omitempty"`
	Category    *BookingFileCategory `json:"category,omitempty"`
	Description string               `json:"description,omitempty"`
	CreatedAt   string               `json:"created_at,omitempty"`
	UpdatedAt   string               `json:"updated_at,omitempty"`
}

// PaymentTransaction - платёж, связанный с бронью.
type PaymentTransaction struct {
	ID                 int64                  `json:"id"`
	Type               PaymentTransactionType `json:"type"`
	Status             string                 `json:"status"`
	PaymentType        *string                `json:"payment_type"`
	Source             *string                `json:"source"`
	RemitterAccount    *string                `json:"remitter_account"`
	BeneficiaryAccount *string                `json:"beneficiary_account"`
	Note               *string                `json:"note"`
	Amount             *string                `json:"amount"`
	For                *string                `json:"for"`
	ReferenceID        *string                `json:"reference_id"`
	Receiver           *string                `json:"receiver"`
	Sender             *string                `json:"sender"`
	CreatedAt          *string                `json:"created_at"`
	UpdatedAt          *string                `json:"updated_at"`
	Description        *string                `json:"description"`
	Image              *string                `json:"image"`
}

// BookingTransaction связывает бронь с платежом.
type BookingTransaction struct {
	ID                 int64               `json:"id"`
	ApplyTo            ApplyTo             `json:"apply_to"`
	BookingID          int64               `json:"booking_id"`
	TransactionID      int64               `json:"transaction_id"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
	BookingDetailID    *int64              `json:"booking_detail_id"`
	PaymentType        *string             `json:"payment_type"`
	PaymentTransaction *PaymentTransaction `json:"payment_transaction,omitempty"`
}

// Client - краткие сведения о клиенте в списке бронирований.
type Client struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	BankName     *string `json:"bank_name,omitempty"`
	BankNumber   *string `json:"bank_number,omitempty"`
	BankUsername *string `json:"bank_username,omitempty"`
}

// BookingBase - поля, общие для всех представлений брони.
type BookingBase struct {
	ID                       schema.Number      `json:"id" validate:"required"`
	BookingID                schema.Number      `json:"booking_id" validate:"required"`
	ScheduledPickupTimestamp string             `json:"scheduled_pickup_timestamp"`
	ScheduledReturnTimestamp string             `json:"scheduled_return_timestamp"`
	CountTime                string             `json:"count_time"`
	CarSKU                   string             `json:"car_sku"`
	PhoneNumber              string             `json:"phone_number"`
	UserName                 string             `json:"user_name"`
	ReasonOfCancel           schema.EmptyString `json:"reason_of_cancel"`
	BookingType              *string            `json:"booking_type,omitempty"`
	Filters                  *BookingFilters    `json:"filters,omitempty"`
	Version                  schema.Number      `json:"version" validate:"required"`
	CreatedAt                string             `json:"created_at"`
	UpdatedAt                string             `json:"updated_at,omitempty"`
	IsBonbonPickupDelivery   *bool              `json:"is_bonbon_pickup_delivery,omitempty"`
	IsBonbonReturnDelivery   *bool              `json:"is_bonbon_return_delivery,omitempty"`
}

// BookingAmounts - денежные поля и координаты, приводимые к числу (null даёт 0).
type BookingAmounts struct {
	AmountToPay                 schema.Number `json:"amount_to_pay" validate:"required"`
	Discount                    schema.Number `json:"discount" validate:"required"`
	Lat                         schema.Number `json:"lat" validate:"required"`
	Lng                         schema.Number `json:"lng" validate:"required"`
	ReturnLat                   schema.Number `json:"return_lat" validate:"required"`
	ReturnLng                   schema.Number `json:"return_lng" validate:"required"`
	RentalAmount                schema.Number `json:"rental_amount" validate:"required"`
	DeliveryFeeAmountToCustomer schema.Number `json:"delivery_fee_amount_to_customer" validate:"required"`
	DepositAmount               schema.Number `json:"deposit_amount" validate:"required"`
	VAT                         schema.Number `json:"vat" validate:"required"`
}

// BookingInfo - необязательные поля брони в списке и в ответе на создание.
type BookingInfo struct {
	DeliveryAddressToCust   *string `json:"delivery_address_to_cust,omitempty"`
	DeliveryAddressFromCust *string `json:"delivery_address_from_cust,omitempty"`
	Tag                     *string `json:"tag,omitempty"`
	UserCity                *string `json:"user_city,omitempty"`
	CompanyName             *string `json:"company_name,omitempty"`
	CompanyAddress          *string `json:"company_address,omitempty"`
	CompanyTaxCode          *string `json:"company_tax_code,omitempty"`
	CompanyEmail            *string `json:"company_email,omitempty"`
	RenterCheckinTime       *string `json:"renter_checkin_time,omitempty"`
	RenterCheckoutTime      *string `json:"renter_checkout_time,omitempty"`
	LicensePoint            *string `json:"license_point,omitempty"`
	IsNoLicensePoint        *bool   `json:"is_no_license_point,omitempty"`
	IsHoldCarAfterCancel    *bool   `json:"is_hold_car_after_cancel,omitempty"`
}

// Booking - элемент списка бронирований.
type Booking struct {
	BookingBase
	BookingAmounts
	BookingInfo

	Status              schema.Catch[BookingStatus]  `json:"status"`
	DeliveryOption      schema.Catch[DeliveryOption] `json:"delivery_option"`
	Platform            Platform                     `json:"platform"`
	PromotionCode       schema.LenientString         `json:"promotion_code"`
	Purpose             schema.Catch[Purpose]        `json:"purpose"`
	ClientID            schema.LenientInt            `json:"client_id"`
	Itinerary           schema.LenientString         `json:"itinerary"`
	IsExportVAT         schema.LenientBool           `json:"is_export_vat"`
	CarRentInfo         *CarRentInfo                 `json:"car_rent_info,omitempty"`
	BookingDetails      []BookingDetail              `json:"booking_details" validate:"dive"`
	BookingTransactions []BookingTransaction         `json:"booking_transactions"`
	BookingFiles        []BookingFile                `json:"booking_files"`
	Client              *Client                      `json:"client,omitempty"`
	CountClientBooking  *int                         `json:"count_client_booking,omitempty"`
}

// NormalizeSchema подставляет пустые списки вместо отсутствующих.
func (b *Booking) NormalizeSchema() {
	if b.BookingDetails == nil {
		b.BookingDetails = []BookingDetail{}
	}
	if b.BookingTransactions == nil {
		b.BookingTransactions = []BookingTransaction{}
	}
	if b.BookingFiles == nil {
		b.BookingFiles = []BookingFile{}
	}
}

// BookingFull - полная карточка брони.
type BookingFull struct {
	BookingBase

	Status                     string               `json:"status"`
	DeliveryOption             string               `json:"delivery_option"`
	Platform                   *string              `json:"platform,omitempty"`
	AmountToPay                schema.NullNumber    `json:"amount_to_pay"`
	Discount                   schema.NullNumber    `json:"discount"`
	DeliveryAddressToCust      schema.EmptyString   `json:"delivery_address_to_cust"`
	DeliveryAddressFromCust    schema.EmptyString   `json:"delivery_address_from_cust"`
	Lat                        schema.NullNumber    `json:"lat"`
	Lng                        schema.NullNumber    `json:"lng"`
	ReturnLat                  schema.NullNumber    `json:"return_lat"`
	ReturnLng                  schema.NullNumber    `json:"return_lng"`
	RentalAmount               schema.NullNumber    `json:"rental_amount"`
	DeliveryFeeAmountToCust    schema.NullNumber    `json:"delivery_fee_amount_to_customer"`
	DepositAmount              schema.NullNumber    `json:"deposit_amount"`
	VAT                        schema.NullNumber    `json:"vat"`
	PromotionCode              schema.EmptyString   `json:"promotion_code"`
	Tag                        schema.EmptyString   `json:"tag"`
	UserCity                   schema.EmptyString   `json:"user_city"`
	IsExportVAT                schema.FalseBool     `json:"is_export_vat"`
	CompanyName                schema.EmptyString   `json:"company_name"`
	CompanyAddress             schema.EmptyString   `json:"company_address"`
	CompanyTaxCode             schema.EmptyString   `json:"company_tax_code"`
	CompanyEmail               schema.EmptyString   `json:"company_email"`
	Purpose                    schema.EmptyString   `json:"purpose"`
	Itinerary                  schema.EmptyString   `json:"itinerary"`
	ClientID                   schema.NullNumber    `json:"client_id"`
	RenterCheckinTime          schema.EmptyString   `json:"renter_checkin_time"`
	RenterCheckoutTime         schema.EmptyString   `json:"renter_checkout_time"`
	LicensePoint               schema.EmptyString   `json:"license_point"`
	IsNoLicensePoint           schema.FalseBool     `json:"is_no_license_point"`
	IsHoldCarAfterCancel       schema.FalseBool     `json:"is_hold_car_after_cancel"`
	IsRecalculated             schema.FalseBool     `json:"is_recalculated"`
	CarRentInfo                *CarRentInfo         `json:"car_rent_info,omitempty"`
	BookingDetails             []BookingDetail      `json:"booking_details" validate:"dive"`
	BookingFiles               []BookingFile        `json:"booking_files"`
	BookingTransactions        []BookingTransaction `json:"booking_transactions"`
	CarCity                    schema.EmptyString   `json:"car_city"`
	Car                        *Car                 `json:"car,omitempty"`
	TotalRefund                schema.NullNumber    `json:"total_refund"`
	VerifyStatus               schema.EmptyString   `json:"verify_status"`
	VerifyDocsStatus           schema.EmptyString   `json:"verify_docs_status"`
	CheckOutParkingInstruction schema.EmptyString   `json:"check_out_parking_instruction"`
	Client                     *ClientFull          `json:"client,omitempty"`
	CountClientBooking         schema.NullNumber    `json:"count_client_booking"`
}

// NormalizeSchema подставляет пустые списки вместо отсутствующих.
func (b *BookingFull) NormalizeSchema() {
	if b.BookingDetails == nil {
		b.BookingDetails = []BookingDetail{}
	}
	if b.BookingTransactions == nil {
		b.BookingTransactions = []BookingTransaction{}
	}
	if b.BookingFiles == nil {
		b.BookingFiles = []BookingFile{}
	}
}

// ClientFull - полные сведения о клиенте в карточке брони.
type ClientFull struct {
	ID                  *int64          `json:"id,omitempty"`
	Name                *string         `json:"name,omitempty"`
	Phone               *string         `json:"phone,omitempty"`
	StringFCM           *string         `json:"string_fcm,omitempty"`
	Confirmed           *bool           `json:"confirmed,omitempty"`
	Blocked             *bool           `json:"blocked,omitempty"`
	CreatedAt           *string         `json:"created_at,omitempty"`
	UpdatedAt           *string         `json:"updated_at,omitempty"`
	CreatedByID         *int64          `json:"created_by_id,omitempty"`
	UpdatedByID         *int64          `json:"updated_by_id,omitempty"`
	Address             *string         `json:"address,omitempty"`
	CustomerInfo        json.RawMessage `json:"customer_info,omitempty"`
	CSContact           *string         `json:"cs_contact,omitempty"`
	BankName            *string         `json:"bank_name,omitempty"`
	BankNumber          *string         `json:"bank_number,omitempty"`
	Email               *string         `json:"email,omitempty"`
	Reward              json.RawMessage `json:"reward,omitempty"`
	CurrentBooking      json.RawMessage `json:"current_booking,omitempty"`
	EmergencyName       *string         `json:"emergency_name,omitempty"`
	EmergencyPhone      *string         `json:"emergency_phone,omitempty"`
	EmergencyRelation   *string         `json:"emergency_relation,omitempty"`
	Province            *string         `json:"province,omitempty"`
	District            *string         `json:"district,omitempty"`
	Ward                *string         `json:"ward,omitempty"`
	Street              *string         `json:"street,omitempty"`
	BankUsername        *string         `json:"bank_username,omitempty"`
	IsConfirmDecree13   *bool           `json:"is_confirm_decree_13,omitempty"`
	DateConfirmDecree13 *string         `json:"date_confirm_decree_13,omitempty"`
	IPConfirmDecree13   *string         `json:"ip_confirm_decree_13,omitempty"`
	IdentityFrontHash   *string         `json:"identity_front_hash,omitempty"`
	FaceHash            *string         `json:"face_hash,omitempty"`
}

// CreateCarRentInfo - тарифы в ответе на создание брони.
type CreateCarRentInfo struct {
	Rent1Hour           *float64             `json:"rent_1_hour"`
	Rent4Hour           *float64             `json:"rent_4_hour"`
	Rent8Hour           *float64             `json:"rent_8_hour"`
	Rent12Hour          *float64             `json:"rent_12_hour"`
	Rent24Hour          *float64             `json:"rent_24_hour"`
	RentHoliday         float64              `json:"rent_holiday"`
	NormalHour          float64              `json:"normal_hour"`
	HolidayHour         *float64             `json:"holiday_hour"`
	WeekendSurcharge    *float64             `json:"weekend_surcharge"`
	MinBookingInHoliday float64              `json:"min_booking_in_holiday"`
	VATPercent          schema.NumericString `json:"vat_percent"`
	HostCommission      *float64             `json:"host_commission"`
	RenterCommission    *float64             `json:"renter_commission"`
}

// CreatedBooking - бронь в ответе на создание.
type CreatedBooking struct {
	BookingBase
	BookingAmounts
	BookingInfo

	Status               string            `json:"status"`
	DeliveryOption       string            `json:"delivery_option"`
	Platform             *string           `json:"platform,omitempty"`
	PromotionCode        *string           `json:"promotion_code,omitempty"`
	IsExportVAT          *bool             `json:"is_export_vat,omitempty"`
	Purpose              *string           `json:"purpose,omitempty"`
	Itinerary            *string           `json:"itinerary,omitempty"`
	ClientID             *int64            `json:"client_id,omitempty"`
	CarRentInfo          CreateCarRentInfo `json:"car_rent_info"`
	InsuranceProductCode *string           `json:"insurance_product_code"`
	BookingDetails       []BookingDetail   `json:"bookingDetails" validate:"dive"`
}
