package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmeshcher/booking-cms/internal/schema"
)

// Коды доплат, для которых известна форма условия.
const (
	SurchargeCodeDelivery     = "DELIVERY_FEE"
	SurchargeCodeCleaning     = "CLEANING_FEE"
	SurchargeCodeLateReturn   = "LATE_RETURN_FEE"
	SurchargeCodeCancellation = "CANCELLATION_FEE"
)

// ConditionKind - вариант условия доплаты.
type ConditionKind string

const (
	ConditionNone         ConditionKind = "none"
	ConditionDelivery     ConditionKind = "delivery"
	ConditionCleaning     ConditionKind = "cleaning"
	ConditionLateReturn   ConditionKind = "late_return"
	ConditionCancellation ConditionKind = "cancellation"
	ConditionOpaque       ConditionKind = "opaque"
)

// DeliveryCondition - условие доплаты за доставку.
type DeliveryCondition struct {
	MinDeliveryFee             float64 `json:"minDeliveryFee"`
	FeePerKm                   float64 `json:"feePerKm"`
	DistanceMultiplier         float64 `json:"distanceMultiplier"`
	MinDistanceForDiscount     float64 `json:"minDistanceForDiscount"`
	MaxDistanceForDiscount     float64 `json:"maxDistanceForDiscount"`
	MinBookingPriceForDiscount float64 `json:"minBookingPriceForDiscount"`
	DiscountPercent            float64 `json:"discountPercent"`
}

// CleaningCondition - стоимость уборки по типу кузова.
type CleaningCondition struct {
	Sedan5    float64 `json:"Sedan5"`
	SUV5      float64 `json:"SUV5"`
	SUV7      float64 `json:"SUV7"`
	MPV7      float64 `json:"MPV7"`
	HatchBack float64 `json:"HatchBack"`
	MiniVan   float64 `json:"MiniVan"`
	BanTai    float64 `json:"BanTai"`
}

type LateReturnCondition struct {
	PercentageOfRent24Hour float64 `json:"percentageOfRent24Hour"`
}

type CancellationCondition struct {
	PercentageOfRent float64 `json:"percentageOfRent"`
}

// ConditionValue - условие доплаты. Вариант определяется кодом доплаты,
// поэтому до вызова Resolve значение хранит исходный JSON.
type ConditionValue struct {
	Kind         ConditionKind
	Delivery     *DeliveryCondition
	Cleaning     *CleaningCondition
	LateReturn   *LateReturnCondition
	Cancellation *CancellationCondition
	Opaque       map[string]any

	raw   json.RawMessage
	issue *schema.Diagnostic
}

func (c *ConditionValue) UnmarshalJSON(data []byte) error {
	*c = ConditionValue{raw: append(json.RawMessage(nil), data...)}
	return nil
}

// Resolve выбирает вариант по коду доплаты. Неподходящая форма сохраняется
// как ConditionOpaque и даёт диагностику.
func (c *ConditionValue) Resolve(code string) {
	raw := bytes.TrimSpace(c.raw)
	if c.raw == nil {
		// уже разобрано либо поле отсутствовало
		if c.Kind == "" {
			c.Kind = ConditionNone
		}
		return
	}
	c.raw = nil

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		c.Kind = ConditionNone
		return
	}

	var opaque map[string]any
	if err := json.Unmarshal(raw, &opaque); err != nil || opaque == nil {
		c.Kind = ConditionOpaque
		c.issue = &schema.Diagnostic{
			Message:  "Expected object, received " + kindName(raw),
			Expected: "object",
			Received: kindName(raw),
			Code:     schema.CodeInvalidType,
		}
		return
	}

	var (
		kind ConditionKind
		dst  any
		keys []string
	)
	switch code {
	case SurchargeCodeDelivery:
		c.Delivery = &DeliveryCondition{}
		kind, dst = ConditionDelivery, c.Delivery
		keys = []string{"minDeliveryFee", "feePerKm", "distanceMultiplier", "minDistanceForDiscount",
			"maxDistanceForDiscount", "minBookingPriceForDiscount", "discountPercent"}
	case SurchargeCodeCleaning:
		c.Cleaning = &CleaningCondition{}
		kind, dst = ConditionCleaning, c.Cleaning
		keys = []string{"Sedan5", "SUV5", "SUV7", "MPV7", "HatchBack", "MiniVan", "BanTai"}
	case SurchargeCodeLateReturn:
		c.LateReturn = &LateReturnCondition{}
		kind, dst = ConditionLateReturn, c.LateReturn
		keys = []string{"percentageOfRent24Hour"}
	case SurchargeCodeCancellation:
		c.Cancellation = &CancellationCondition{}
		kind, dst = ConditionCancellation, c.Cancellation
		keys = []string{"percentageOfRent"}
	default:
		c.Kind, c.Opaque = ConditionOpaque, opaque
		return
	}

	if key, ok := fitsNumbers(opaque, keys); !ok {
		*c = ConditionValue{Kind: ConditionOpaque, Opaque: opaque}
		c.issue = &schema.Diagnostic{
			Path:     key,
			Message:  fmt.Sprintf("condition for %s expects number at %q", code, key),
			Expected: "number",
			Received: describe(opaque[key]),
			Code:     schema.CodeInvalidType,
		}
		return
	}
	_ = json.Unmarshal(raw, dst)
	c.Kind = kind
}

// SchemaIssue реализует schema.Checker.
func (c ConditionValue) SchemaIssue() (schema.Diagnostic, bool) {
	if c.issue == nil {
		return schema.Diagnostic{}, false
	}
	return *c.issue, true
}

func (c ConditionValue) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	switch c.Kind {
	case ConditionDelivery:
		return json.Marshal(c.Delivery)
	case ConditionCleaning:
		return json.Marshal(c.Cleaning)
	case ConditionLateReturn:
		return json.Marshal(c.LateReturn)
	case ConditionCancellation:
		return json.Marshal(c.Cancellation)
	case ConditionOpaque:
		return json.Marshal(c.Opaque)
	default:
		return []byte("null"), nil
	}
}

func fitsNumbers(m map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if _, ok := m[k].(float64); !ok {
			return k, false
		}
	}
	return "", true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}

func kindName(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "undefined"
	}
	return describe(v)
}

// SurchargeBase - общие поля доплаты в списке и в карточке.
type SurchargeBase struct {
	ID             int64          `json:"id"`
	Code           string         `json:"code"`
	SurchargeName  string         `json:"surcharge_name"`
	ApplyTo        string         `json:"apply_to"`
	UOM            string         `json:"uom"`
	ApplyType      string         `json:"apply_type"`
	ConditionValue ConditionValue `json:"condition_value"`
	Type           string         `json:"type"`
	IsActive       bool           `json:"is_active"`
	IsIncludedVAT  bool           `json:"is_included_vat"`
	ChargeVAT      bool           `json:"charge_vat"`
	VATPercent     *float64       `json:"vat_percent"`
	Order          float64        `json:"order"`
}

// NormalizeSchema выбирает вариант условия по коду доплаты.
func (s *SurchargeBase) NormalizeSchema() {
	s.ConditionValue.Resolve(s.Code)
}

// Surcharge - доплата в списке. default_value приходит строкой.
type Surcharge struct {
	SurchargeBase
	DefaultValue string `json:"default_value"`
}

// SurchargeItem - карточка доплаты. default_value приводится к числу.
type SurchargeItem struct {
	SurchargeBase
	DefaultValue schema.Number `json:"default_value" validate:"required"`
}

type SurchargeMeta struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	SurchargeName string `json:"surcharge_name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
}

type SurchargeListResponse struct {
	Data []Surcharge `json:"data" validate:"dive"`
	Meta Meta        `json:"meta"`
}

type SurchargeDetailResponse struct {
	Data SurchargeItem `json:"data"`
	Meta SurchargeMeta `json:"meta"`
}

// UpdateSurchargeRequest - изменение доплаты из формы редактирования.
type UpdateSurchargeRequest struct {
	Code           string         `json:"code" validate:"required"`
	SurchargeName  string         `json:"surcharge_name" validate:"required"`
	ApplyTo        ApplyTo        `json:"apply_to" validate:"enum"`
	DefaultValue   *float64       `json:"default_value,omitempty" validate:"omitempty,min=0"`
	UOM            string         `json:"uom" validate:"required"`
	ApplyType      ApplyType      `json:"apply_type" validate:"enum"`
	ConditionValue map[string]any `json:"condition_value,omitempty"`
	Type           SurchargeType  `json:"type" validate:"enum"`
	IsActive       bool           `json:"is_active"`
	IsIncludedVAT  bool           `json:"is_included_vat"`
	ChargeVAT      bool           `json:"charge_vat"`
	VATPercent     *float64       `json:"vat_percent" validate:"omitempty,min=0,max=100"`
	Order          int            `json:"order" validate:"min=0"`
	Meta           any            `json:"meta,omitempty"`
}

type UpdateSurchargeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    SurchargeItem `json:"data"`
}
