// Package model описывает формат данных внешнего API бронирований.
package model

// BookingStatus - статус жизненного цикла бронирования.
type BookingStatus string

// Статусы бронирования.
const (
	BookingStatusAll              BookingStatus = "ALL"
	BookingStatusDraft            BookingStatus = "DRAFT"
	BookingStatusPending          BookingStatus = "PENDING"
	BookingStatusConfirmed        BookingStatus = "CONFIRMED"
	BookingStatusCancelled        BookingStatus = "CANCELLED"
	BookingStatusBooked           BookingStatus = "BOOKED"
	BookingStatusVerifying        BookingStatus = "VERIFYING"
	BookingStatusVerified         BookingStatus = "VERIFIED"
	BookingStatusContractSigned   BookingStatus = "CONTRACT_SIGNED"
	BookingStatusDeposit          BookingStatus = "DEPOSIT"
	BookingStatusIsBooking        BookingStatus = "ISBOOKING"
	BookingStatusRenterCheckedOut BookingStatus = "RENTER_CHECKED_OUT"
	BookingStatusHostCheckedOut   BookingStatus = "HOST_CHECKED_OUT"
	BookingStatusFeeVerified      BookingStatus = "FEE_VERIFIED"
	BookingStatusCompleted        BookingStatus = "COMPLETED"
	BookingStatusCancel           BookingStatus = "CANCEL"
	BookingStatusNoDeposit        BookingStatus = "NO_DEPOSIT"
	BookingStatusHostVerified     BookingStatus = "HOST_VERIFIED"
	BookingStatusRenterVerified   BookingStatus = "RENTER_VERIFIED"
)

// BookingStatuses перечисляет все статусы в порядке жизненного цикла.
var BookingStatuses = []BookingStatus{
	BookingStatusAll, BookingStatusDraft, BookingStatusPending, BookingStatusConfirmed,
	BookingStatusCancelled, BookingStatusBooked, BookingStatusVerifying, BookingStatusVerified,
	BookingStatusContractSigned, BookingStatusDeposit, BookingStatusIsBooking,
	BookingStatusRenterCheckedOut, BookingStatusHostCheckedOut, BookingStatusFeeVerified,
	BookingStatusCompleted, BookingStatusCancel, BookingStatusNoDeposit,
	BookingStatusHostVerified, BookingStatusRenterVerified,
}

// Valid сообщает, входит ли статус в известный набор.
func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Fallback возвращает статус, подставляемый вместо неизвестного.
func (BookingStatus) Fallback() BookingStatus { return BookingStatusDraft }

// frontendToBackend сопоставляет ключи фильтра интерфейса значениям API.
// Сейчас сопоставление тождественное, но фильтр всегда проходит через него.
var frontendToBackend = func() map[BookingStatus]BookingStatus {
	m := make(map[BookingStatus]BookingStatus, len(BookingStatuses))
	for _, s := range BookingStatuses {
		m[s] = s
	}
	return m
}()

// BackendStatus переводит статус фильтра интерфейса в значение API.
func BackendStatus(s BookingStatus) BookingStatus {
	if v, ok := frontendToBackend[s]; ok {
		return v
	}
	return s
}

// DeliveryOption - способ передачи автомобиля.
type DeliveryOption string

// Способы передачи.
const (
	DeliveryCustomerPickUp DeliveryOption = "Customer pick up"
	DeliveryToCustomer     DeliveryOption = "Delivery to Customer"
	DeliveryTwoWay         DeliveryOption = "Two way delivery"
)

// Valid сообщает, входит ли значение в известный набор.
func (d DeliveryOption) Valid() bool {
	switch d {
	case DeliveryCustomerPickUp, DeliveryToCustomer, DeliveryTwoWay:
		return true
	}
	return false
}

// Fallback возвращает способ передачи по умолчанию.
func (DeliveryOption) Fallback() DeliveryOption { return DeliveryCustomerPickUp }

// Purpose - цель поездки.
type Purpose string

// Цели поездки.
const (
	PurposeBusiness      Purpose = "Business"
	PurposeVacation      Purpose = "Vacation"
	PurposeHometownVisit Purpose = "Hometown visit"
	PurposeOthers        Purpose = "Others"
	PurposeOthersVI      Purpose = "Khác"
	PurposeBusinessVI    Purpose = "Công tác"
)

// Valid сообщает, входит ли значение в известный набор.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeBusiness, PurposeVacation, PurposeHometownVisit, PurposeOthers, PurposeOthersVI, PurposeBusinessVI:
		return true
	}
	return false
}

// Fallback возвращает цель по умолчанию.
func (Purpose) Fallback() Purpose { return PurposeOthers }

// FeeType - вид строки начисления.
type FeeType string

// Виды начислений.
const (
	FeeBookingFee          FeeType = "BOOKING_FEE"
	FeeVAT                 FeeType = "VAT"
	FeeSurcharge           FeeType = "SURCHARGE"
	FeeHoldCar             FeeType = "HOLD_CAR"
	FeeInsurance           FeeType = "INSURANCE_FEE"
	FeeDiscountPromotion   FeeType = "DISCOUNT_PROMOTION"
	FeeDeposit             FeeType = "DEPOSIT"
	FeeInsuranceWithoutVAT FeeType = "INSURANCE_FEE_WITHOUT_VAT"
	FeeRenterCommission    FeeType = "RENTER_COMMISSION"
	FeeDiscountSystem      FeeType = "DISCOUNT_SYSTEM"
	FeeHolidayMarkup       FeeType = "HOLIDAY_MARKUP"
	FeeMarkup              FeeType = "MARKUP"
	FeeTotalAmountToPay    FeeType = "TOTAL_AMOUNT_TO_PAY"
)

// Valid сообщает, входит ли значение в известный набор.
func (f FeeType) Valid() bool {
	switch f {
	case FeeBookingFee, FeeVAT, FeeSurcharge, FeeHoldCar, FeeInsurance, FeeDiscountPromotion,
		FeeDeposit, FeeInsuranceWithoutVAT, FeeRenterCommission, FeeDiscountSystem,
		FeeHolidayMarkup, FeeMarkup, FeeTotalAmountToPay:
		return true
	}
	return false
}

// ApplyTo - сторона, к которой относится начисление.
type ApplyTo string

// Стороны.
const (
	ApplyToHost   ApplyTo = "HOST"
	ApplyToRenter ApplyTo = "RENTER"
)

// Valid сообщает, входит ли значение в известный набор.
func (a ApplyTo) Valid() bool {
	return a == ApplyToHost || a == ApplyToRenter
}

// PaymentTransactionType - направление платежа.
type PaymentTransactionType string

// Направления платежа.
const (
	PaymentIn      PaymentTransactionType = "IN"
	PaymentOut     PaymentTransactionType = "OUT"
	PaymentCashIn  PaymentTransactionType = "CASHIN"
	PaymentCashOut PaymentTransactionType = "CASHOUT"
)

// Valid сообщает, входит ли значение в известный набор.
func (p PaymentTransactionType) Valid() bool {
	switch p {
	case PaymentIn, PaymentOut, PaymentCashIn, PaymentCashOut:
		return true
	}
	return false
}

// BookingFileCategory - категория файла бронирования.
type BookingFileCategory string

// Категории файлов.
const (
	FileDriverLicense    BookingFileCategory = "DRIVER_LICENSE"
	FileFaceVerification BookingFileCategory = "FACE_VERIFICATION"
	FileHostDelivery     BookingFileCategory = "HOST_DELIVERY"
	FileRenterCheckin    BookingFileCategory = "RENTER_CHECKIN"
	FileRenterCheckout   BookingFileCategory = "RENTER_CHECKOUT"
	FileHostConfirmFee   BookingFileCategory = "HOST_CONFIRM_FEE"
	FileInsurance        BookingFileCategory = "INSURANCE"
	FileDocumentVerify   BookingFileCategory = "DOCUMENT_VERIFY"
	FileFaceVerify       BookingFileCategory = "FACE_VERIFY"
	FileHostCheckin      BookingFileCategory = "HOST_CHECKIN"
	FileHostCheckout     BookingFileCategory = "HOST_CHECKOUT"
)

// Valid сообщает, входит ли значение в известный набор.
func (c BookingFileCategory) Valid() bool {
	switch c {
	case FileDriverLicense, FileFaceVerification, FileHostDelivery, FileRenterCheckin,
		FileRenterCheckout, FileHostConfirmFee, FileInsurance, FileDocumentVerify,
		FileFaceVerify, FileHostCheckin, FileHostCheckout:
		return true
	}
	return false
}

// ApplyType - режим применения доплаты.
type ApplyType string

// Режимы применения.
const (
	ApplyTypeBasic    ApplyType = "BASIC"
	ApplyTypeAdvanced ApplyType = "ADVANCED"
)

// Valid сообщает, входит ли значение в известный набор.
func (a ApplyType) Valid() bool {
	return a == ApplyTypeBasic || a == ApplyTypeAdvanced
}

// SurchargeType - момент начисления доплаты.
type SurchargeType string

// Моменты начисления.
const (
	SurchargePre    SurchargeType = "PRE"
	SurchargePost   SurchargeType = "POST"
	SurchargeCancel SurchargeType = "CANCEL"
)

// Valid сообщает, входит ли значение в известный набор.
func (s SurchargeType) Valid() bool {
	return s == SurchargePre || s == SurchargePost || s == SurchargeCancel
}

// SortOrder - направление сортировки списков.
type SortOrder string

// Направления сортировки.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Valid сообщает, входит ли значение в известный набор.
func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}
