package service

import (
	"context"
	"strconv"

	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/querycache"
)

func (s *Service) ListAffiliates(ctx context.Context, q model.ListQuery) (model.AffiliateListResponse, error) {
	q = q.WithDefaults()
	return querycache.Fetch(ctx, s.cache, key(ctx, "affiliates", "list", fingerprint(q)),
		func(ctx context.Context) (model.AffiliateListResponse, error) {
			return s.api.GetAffiliates(ctx, q)
		})
}

func (s *Service) ListAffiliateBookings(ctx context.Context, q model.ListQuery) (model.AffiliateBookingsResponse, error) {
	q = q.WithDefaults()
	return querycache.Fetch(ctx, s.cache, key(ctx, "affiliate-bookings", "list", fingerprint(q)),
		func(ctx context.Context) (model.AffiliateBookingsResponse, error) {
			return s.api.GetAffiliateBookings(ctx, q)
		})
}

// AffiliateStatistics возвращает статистику партнёров за год.
func (s *Service) AffiliateStatistics(ctx context.Context, year int) (model.AffiliateDashboardResponse, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, "affiliates", "dashboard-stats", strconv.Itoa(year)),
		func(ctx context.Context) (model.AffiliateDashboardResponse, error) {
			return s.api.GetAffiliateDashboardStats(ctx, year)
		})
}

func (s *Service) ListSurcharges(ctx context.Context, q model.ListQuery) (model.SurchargeListResponse, error) {
	q = q.WithDefaults()
	return querycache.Fetch(ctx, s.cache, key(ctx, "surcharge-list", fingerprint(q)),
		func(ctx context.Context) (model.SurchargeListResponse, error) {
			return s.api.GetSurcharges(ctx, q)
		})
}

func (s *Service) GetSurcharge(ctx context.Context, id int64) (model.SurchargeDetailResponse, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, "surcharge-detail", id64(id)),
		func(ctx context.Context) (model.SurchargeDetailResponse, error) {
			return s.api.GetSurchargeDetail(ctx, id)
		})
}

// UpdateSurcharge сохраняет доплату и сбрасывает её карточку и список.
func (s *Service) UpdateSurcharge(ctx context.Context, id int64, req model.UpdateSurchargeRequest) (model.UpdateSurchargeResponse, error) {
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (model.UpdateSurchargeResponse, error) {
		return s.api.UpdateSurcharge(ctx, id, req)
	}, key(ctx, "surcharge-detail", id64(id)), key(ctx, "surcharge-list"))
}
