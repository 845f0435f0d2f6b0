package bookingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/pagination"
)

func bookingPath(id int64, suffix string) string {
	return "/bookings/" + strconv.FormatInt(id, 10) + suffix
}

// GetBookings возвращает страницу бронирований. Статусы фильтра переводятся
// в значения API, к ответу добавляются page, pageSize и total.
func (c *Client) GetBookings(ctx context.Context, filter model.BookingFilter) (model.BookingPage, error) {
	const op = "get bookings"

	filter = filter.WithDefaults()
	if err := c.validate(op, filter); err != nil {
		return model.BookingPage{}, err
	}

	orderBy, err := json.Marshal(filter.OrderBy)
	if err != nil {
		return model.BookingPage{}, fmt.Errorf("%s: encode orderBy: %w", op, err)
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("pageSize", strconv.Itoa(filter.PageSize))
	q.Set("orderBy", string(orderBy))

	if filter.Filters != nil {
		f := *filter.Filters
		if f.Status != nil {
			statuses := make([]model.BookingStatus, 0, len(f.Status))
			for _, s := range f.Status {
				statuses = append(statuses, model.BackendStatus(s))
			}
			f.Status = statuses
		}
		filters, err := json.Marshal(f)
		if err != nil {
			return model.BookingPage{}, fmt.Errorf("%s: encode filters: %w", op, err)
		}
		q.Set("filters", string(filters))
	}

	list, err := call[model.BookingListResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/bookings/filter", query: q,
	}, "fetch bookings")
	if err != nil {
		return model.BookingPage{}, err
	}

	return model.BookingPage{
		BookingListResponse: list,
		Window:              pagination.Attach(list.Meta),
	}, nil
}

// GetBooking возвращает полную карточку брони.
func (c *Client) GetBooking(ctx context.Context, id int64) (model.BookingFull, error) {
	return call[model.BookingFull](ctx, c, request{
		op: "get booking", method: http.MethodGet, path: bookingPath(id, ""),
	}, "fetch booking")
}

// CancelBooking отменяет бронь. Пустые host_commission и reason_of_cancel не отправляются.
func (c *Client) CancelBooking(ctx context.Context, id int64, req model.CancelBookingRequest) (model.MessageResponse, error) {
	const op = "cancel booking"
	if err := c.validate(op, req); err != nil {
		return model.MessageResponse{}, err
	}
	return call[model.MessageResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, "/cancel"), body: req,
	}, op)
}

func (c *Client) ChangeBookingStatus(ctx context.Context, id int64, req model.ChangeStatusRequest) (model.BookingActionResponse, error) {
	const op = "change booking status"
	if err := c.validate(op, req); err != nil {
		return model.BookingActionResponse{}, err
	}
	return call[model.BookingActionResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, "/status/change"), body: req,
	}, op)
}

// Action - действие жизненного цикла брони без тела запроса.
type Action struct {
	Name string
	Path string
}

// Действия жизненного цикла, которые возвращают обновлённую бронь.
var (
	ActionBook            = Action{Name: "book booking", Path: "/book"}
	ActionConfirmDeposit  = Action{Name: "confirm deposit booking", Path: "/deposit"}
	ActionRenterCheckin   = Action{Name: "renter check-in", Path: "/cms/check-in"}
	ActionRenterCheckout  = Action{Name: "confirm renter check-out", Path: "/cms/renter-check-out"}
	ActionHostCheckout    = Action{Name: "host check-out", Path: "/host-check-out"}
	ActionCompleteBooking = Action{Name: "complete booking", Path: "/complete"}
)

// RunAction выполняет действие жизненного цикла.
func (c *Client) RunAction(ctx context.Context, id int64, a Action) (model.BookingActionResponse, error) {
	return call[model.BookingActionResponse](ctx, c, request{
		op: a.Name, method: http.MethodPost, path: bookingPath(id, a.Path),
	}, a.Name)
}

func (c *Client) BookBooking(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionBook)
}

func (c *Client) ConfirmDeposit(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionConfirmDeposit)
}

func (c *Client) RenterCheckin(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionRenterCheckin)
}

func (c *Client) ConfirmRenterCheckout(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionRenterCheckout)
}

func (c *Client) HostCheckout(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionHostCheckout)
}

func (c *Client) CompleteBooking(ctx context.Context, id int64) (model.BookingActionResponse, error) {
	return c.RunAction(ctx, id, ActionCompleteBooking)
}

func (c *Client) ConfirmSignContract(ctx context.Context, id int64, req model.SignContractRequest) (model.BookingActionResponse, error) {
	const op = "confirm sign contract"
	if err := c.validate(op, req); err != nil {
		return model.BookingActionResponse{}, err
	}
	return call[model.BookingActionResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, "/sign-contract"), body: req,
	}, op)
}

// UpdateDeposit меняет сумму депозита и удержания. Ответ - пересчитанные строки стоимости.
func (c *Client) UpdateDeposit(ctx context.Context, id int64, req model.UpdateDepositRequest) (model.BookingFeeInfoResponse, error) {
	const op = "update deposit"
	if err := c.validate(op, req); err != nil {
		return model.BookingFeeInfoResponse{}, err
	}
	return call[model.BookingFeeInfoResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, "/deposit/update"), body: req,
	}, op)
}

func (c *Client) message(ctx context.Context, op string, id int64, suffix string) (model.MessageResponse, error) {
	return call[model.MessageResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, suffix),
	}, op)
}

// VerifyFace подтверждает лицо арендатора вручную.
func (c *Client) VerifyFace(ctx context.Context, id int64) (model.MessageResponse, error) {
	return c.message(ctx, "verify face", id, "/face/bypass")
}

func (c *Client) UnverifyFace(ctx context.Context, id int64) (model.MessageResponse, error) {
	return c.message(ctx, "unverify face", id, "/face/revoke")
}

func (c *Client) HostVerifyBooking(ctx context.Context, id int64) (model.MessageResponse, error) {
	return c.message(ctx, "verify host", id, "/host-verify")
}

func (c *Client) RenterVerifyBooking(ctx context.Context, id int64) (model.MessageResponse, error) {
	return c.message(ctx, "verify renter", id, "/cms/renter-verify")
}

func (c *Client) fee(ctx context.Context, op string, id int64, suffix string, body any) (model.BookingFeeResponse, error) {
	return call[model.BookingFeeResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, suffix), body: body,
	}, op)
}

func (c *Client) UpdateVatInfo(ctx context.Context, id int64, req model.UpdateVatInfo) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "update vat info", id, "/update-vat-info", req)
}

func (c *Client) UpdateTripInfo(ctx context.Context, id int64, req model.UpdateTripInfo) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "update trip info", id, "/update-purpose-info", req)
}

func (c *Client) UpdateLicenseInfo(ctx context.Context, id int64, req model.UpdateLicenseInfo) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "update license info", id, "/update-license-info", req)
}

func (c *Client) UnverifyLicenseInfo(ctx context.Context, id int64) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "unverify license info", id, "/unverify-license-info", nil)
}

func (c *Client) FeeVerifyBooking(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "fee verify booking", id, "/fee-verify", req)
}

func (c *Client) UpdateBookingFeeDraft(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error) {
	return c.fee(ctx, "update booking fee draft", id, "/detail/update", req)
}

// UpdateBookingFee пересчитывает стоимость брони. Некорректный ответ - ошибка.
func (c *Client) UpdateBookingFee(ctx context.Context, id int64, req model.UpdateBookingFeeRequest) (model.BookingFeeResponse, error) {
	const op = "update booking fee"
	return callStrict[model.BookingFeeResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: bookingPath(id, "/update-fees"), body: req,
	}, op)
}

// ChangeClient переносит бронь на другого клиента.
func (c *Client) ChangeClient(ctx context.Context, id int64, req model.ChangeClientRequest) (model.BookingFeeResponse, error) {
	const op = "change client"
	if err := c.validate(op, req); err != nil {
		return model.BookingFeeResponse{}, err
	}
	return c.fee(ctx, op, id, "/change-client", req)
}

// GetBookingFeeInfo возвращает предварительный расчёт стоимости. Параметры
// передаются в строке запроса как есть.
func (c *Client) GetBookingFeeInfo(ctx context.Context, params model.FeeInfoQuery) (model.BookingFeeInfoResponse, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return call[model.BookingFeeInfoResponse](ctx, c, request{
		op: "get booking fee info", method: http.MethodGet, path: "/bookings/booking-info/cms", query: q,
	}, "get booking fee info")
}

// CreateBooking создаёт бронь из CMS.
func (c *Client) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.CreateBookingResponse, error) {
	const op = "create booking"
	if err := c.validate(op, req); err != nil {
		return model.CreateBookingResponse{}, err
	}
	return call[model.CreateBookingResponse](ctx, c, request{
		op: op, method: http.MethodPost, path: "/bookings/cms", body: req,
	}, op)
}
