package model

import (
	"encoding/json"
	"strings"

	"github.com/mmeshcher/booking-cms/internal/pagination"
	"github.com/mmeshcher/booking-cms/internal/schema"
)

// Meta - метаданные списка.
type Meta = pagination.Meta

// BookingListResponse - ответ на запрос списка бронирований.
type BookingListResponse struct {
	Data []Booking `json:"data" validate:"dive"`
	Meta Meta      `json:"meta"`
}

// NormalizeSchema подставляет пустой список вместо null.
func (r *BookingListResponse) NormalizeSchema() {
	if r.Data == nil {
		r.Data = []Booking{}
	}
}

// BookingPage - список бронирований с производными полями страницы.
type BookingPage struct {
	BookingListResponse
	pagination.Window
}

// BookingActionResponse - ответ на действие жизненного цикла брони.
type BookingActionResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    Booking `json:"data"`
}

// MessageResponse - ответ без данных.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BookingFeeResponse - ответ с обновлённой полной карточкой брони.
type BookingFeeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *BookingFull `json:"data,omitempty"`
}

// BookingFeeInfoItem - строка предварительного расчёта стоимости.
type BookingFeeInfoItem struct {
	ApplyTo        string               `json:"apply_to"`
	FeeType        string               `json:"fee_type"`
	Value          string               `json:"value"`
	VATPercent     schema.NumericString `json:"vat_percent"`
	HostCommission string               `json:"host_commission,omitempty"`
	Description    string               `json:"description,omitempty"`
	MoreInfo       map[string]any       `json:"more_info,omitempty"`
	Order          *int                 `json:"order,omitempty"`
}

// BookingFeeInfoResponse - предварительный расчёт стоимости брони.
type BookingFeeInfoResponse struct {
	Success bool                 `json:"success"`
	Data    []BookingFeeInfoItem `json:"data"`
}

// CreateBookingResponse - ответ на создание брони.
type CreateBookingResponse struct {
	Success bool           `json:"success"`
	Data    CreatedBooking `json:"data"`
}

// CarSkuList - список артикулов автомобилей.
type CarSkuList struct {
	Data []string `json:"data"`
}

// ClientSuggestion - клиент, найденный по телефону или имени.
type ClientSuggestion struct {
	UserName    *string `json:"user_name"`
	PhoneNumber string  `json:"phone_number"`
}

// ClientSearch - результат поиска клиентов.
type ClientSearch struct {
	Data []ClientSuggestion `json:"data"`
}

// PromotionList - применимые промокоды.
type PromotionList struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

// PlaceSuggestion - подсказка адреса.
type PlaceSuggestion struct {
	Description   string `json:"description"`
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// LatLng - координаты точки.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ErrorResponse - тело ответа внешнего API с ошибкой. Поле message приходит
// строкой, объектом с message-строкой или объектом со списком строк.
type ErrorResponse struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
	Status  *int            `json:"status,omitempty"`
}

// Text возвращает текст ошибки из любого из вариантов поля message.
func (e ErrorResponse) Text() string {
	if len(e.Message) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}

	var nested struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(e.Message, &nested); err != nil || len(nested.Message) == 0 {
		return ""
	}
	if err := json.Unmarshal(nested.Message, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(nested.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
