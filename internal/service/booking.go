package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/booking-cms/internal/bookingapi"
	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/querycache"
)

// ErrUnknownAction возвращается для неизвестного действия с бронью.
var ErrUnknownAction = errors.New("unknown booking action")

// ListBookings возвращает страницу бронирований.
func (s *Service) ListBookings(ctx context.Context, filter model.BookingFilter) (model.BookingPage, error) {
	filter = filter.WithDefaults()
	return querycache.Fetch(ctx, s.cache, key(ctx, "bookings", "list", fingerprint(filter)),
		func(ctx context.Context) (model.BookingPage, error) {
			return s.api.GetBookings(ctx, filter)
		})
}

// GetBooking возвращает карточку брони.
func (s *Service) GetBooking(ctx context.Context, id int64) (model.BookingFull, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, "bookings", "detail", id64(id)),
		func(ctx context.Context) (model.BookingFull, error) {
			return s.api.GetBooking(ctx, id)
		})
}

// mutateBooking выполняет изменение брони и сбрасывает её карточку и списки.
func mutateBooking[T any](ctx context.Context, s *Service, id int64, fn func(context.Context) (T, error)) (T, error) {
	return querycache.Mutate(ctx, s.cache, fn,
		key(ctx, "bookings", "detail", id64(id)),
		key(ctx, "bookings", "list"),
	)
}

func (s *Service) CancelBooking(ctx context.Context, id int64, req model.CancelBookingRequest) (model.MessageResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.MessageResponse, error) {
		return s.api.CancelBooking(ctx, id, req)
	})
}

func (s *Service) ChangeBookingStatus(ctx context.Context, id int64, req model.ChangeStatusRequest) (model.BookingActionResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingActionResponse, error) {
		return s.api.ChangeBookingStatus(ctx, id, req)
	})
}

func (s *Service) UpdateDeposit(ctx context.Context, id int64, req model.UpdateDepositRequest) (model.BookingFeeInfoResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeInfoResponse, error) {
		return s.api.UpdateDeposit(ctx, id, req)
	})
}

func (s *Service) UpdateVatInfo(ctx context.Context, id int64, req model.UpdateVatInfo) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.UpdateVatInfo(ctx, id, req)
	})
}

func (s *Service) UpdateTripInfo(ctx context.Context, id int64, req model.UpdateTripInfo) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.UpdateTripInfo(ctx, id, req)
	})
}

func (s *Service) UpdateLicenseInfo(ctx context.Context, id int64, req model.UpdateLicenseInfo) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.UpdateLicenseInfo(ctx, id, req)
	})
}

func (s *Service) UpdateBookingFee(ctx context.Context, id int64, req model.UpdateBookingFeeRequest) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.UpdateBookingFee(ctx, id, req)
	})
}

func (s *Service) FeeVerifyBooking(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.FeeVerifyBooking(ctx, id, req)
	})
}

func (s *Service) UpdateBookingFeeDraft(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.UpdateBookingFeeDraft(ctx, id, req)
	})
}

func (s *Service) ChangeClient(ctx context.Context, id int64, req model.ChangeClientRequest) (model.BookingFeeResponse, error) {
	return mutateBooking(ctx, s, id, func(ctx context.Context) (model.BookingFeeResponse, error) {
		return s.api.ChangeClient(ctx, id, req)
	})
}

// RunAction выполняет действие жизненного цикла по имени.
func (s *Service) RunAction(ctx context.Context, id int64, name string) (any, error) {
	var fn func(context.Context) (any, error)

	lifecycle := func(a bookingapi.Action) func(context.Context) (any, error) {
		return func(ctx context.Context) (any, error) { return s.api.RunAction(ctx, id, a) }
	}

	switch name {
	case "book":
		fn = lifecycle(bookingapi.ActionBook)
	case "deposit":
		fn = lifecycle(bookingapi.ActionConfirmDeposit)
	case "check-in":
		fn = lifecycle(bookingapi.ActionRenterCheckin)
	case "renter-check-out":
		fn = lifecycle(bookingapi.ActionRenterCheckout)
	case "host-check-out":
		fn = lifecycle(bookingapi.ActionHostCheckout)
	case "complete":
		fn = lifecycle(bookingapi.ActionCompleteBooking)
	case "sign-contract":
		fn = func(ctx context.Context) (any, error) {
			return s.api.ConfirmSignContract(ctx, id, model.SignContractRequest{IsFromCMS: true})
		}
	case "face-verify":
		fn = func(ctx context.Context) (any, error) { return s.api.VerifyFace(ctx, id) }
	case "face-revoke":
		fn = func(ctx context.Context) (any, error) { return s.api.UnverifyFace(ctx, id) }
	case "host-verify":
		fn = func(ctx context.Context) (any, error) { return s.api.HostVerifyBooking(ctx, id) }
	case "renter-verify":
		fn = func(ctx context.Context) (any, error) { return s.api.RenterVerifyBooking(ctx, id) }
	case "unverify-license":
		fn = func(ctx context.Context) (any, error) { return s.api.UnverifyLicenseInfo(ctx, id) }
	default:
		return nil, ErrUnknownAction
	}

	return mutateBooking(ctx, s, id, fn)
}

// GetBookingFeeInfo возвращает предварительный расчёт стоимости.
func (s *Service) GetBookingFeeInfo(ctx context.Context, params model.FeeInfoQuery) (model.BookingFeeInfoResponse, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, "booking-fee-info", fingerprint(params)),
		func(ctx context.Context) (model.BookingFeeInfoResponse, error) {
			return s.api.GetBookingFeeInfo(ctx, params)
		})
}

// CreateBooking создаёт бронь и сбрасывает списки.
func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.CreateBookingResponse, error) {
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (model.CreateBookingResponse, error) {
		return s.api.CreateBooking(ctx, req)
	}, key(ctx, "bookings", "list"))
}

// CarSkuList возвращает артикулы автомобилей (пустой список при ошибке).
func (s *Service) CarSkuList(ctx context.Context) model.CarSkuList {
	res, _ := querycache.Fetch(ctx, s.cache, key(ctx, "create-booking", "car-sku-list"),
		func(ctx context.Context) (model.CarSkuList, error) {
			return s.api.GetCarSkuList(ctx), nil
		})
	return res
}

// SearchClients ищет клиентов по телефону или имени.
func (s *Service) SearchClients(ctx context.Context, search string) model.ClientSearch {
	res, _ := querycache.Fetch(ctx, s.cache, key(ctx, "create-booking", "client-search", search),
		func(ctx context.Context) (model.ClientSearch, error) {
			return s.api.SearchClientsByPhone(ctx, search), nil
		})
	return res
}

// ApplicablePromotions возвращает промокоды для автомобиля и периода.
func (s *Service) ApplicablePromotions(ctx context.Context, q model.PromotionQuery) model.PromotionList {
	res, _ := querycache.Fetch(ctx, s.cache,
		key(ctx, "create-booking", "promotions", q.CarSKU, q.ScheduledPickupTimestamp, q.ScheduledReturnTimestamp),
		func(ctx context.Context) (model.PromotionList, error) {
			return s.api.GetApplicablePromotions(ctx, q), nil
		})
	return res
}

// AddressSuggestions возвращает подсказки адресов.
func (s *Service) AddressSuggestions(ctx context.Context, input string) []model.PlaceSuggestion {
	if s.places == nil {
		return []model.PlaceSuggestion{}
	}
	res, _ := querycache.Fetch(ctx, s.cache, key(ctx, "create-booking", "address-search", input),
		func(ctx context.Context) ([]model.PlaceSuggestion, error) {
			return s.places.Autocomplete(ctx, input), nil
		})
	return res
}

// Geocode возвращает координаты адреса или nil.
func (s *Service) Geocode(ctx context.Context, address string) *model.LatLng {
	if s.places == nil {
		return nil
	}
	return s.places.Geocode(ctx, address)
}
