package bookingapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/booking-cms/internal/model"
)

func listQuery(q model.ListQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	v.Set("keyword", q.Keyword)
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", string(q.SortOrder))
	}
	return v
}

// GetAffiliates возвращает страницу партнёров.
func (c *Client) GetAffiliates(ctx context.Context, q model.ListQuery) (model.AffiliateListResponse, error) {
	const op = "get affiliates"
	q = q.WithDefaults()
	if err := c.validate(op, q); err != nil {
		return model.AffiliateListResponse{}, err
	}
	return call[model.AffiliateListResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/affiliates", query: listQuery(q),
	}, op)
}

// GetAffiliateBookings возвращает брони, приведённые партнёрами.
func (c *Client) GetAffiliateBookings(ctx context.Context, q model.ListQuery) (model.AffiliateBookingsResponse, error) {
	const op = "get affiliate bookings"
	q = q.WithDefaults()
	if err := c.validate(op, q); err != nil {
		return model.AffiliateBookingsResponse{}, err
	}
	return call[model.AffiliateBookingsResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/affiliates/bookings", query: listQuery(q),
	}, op)
}

// GetAffiliateDashboardStats возвращает статистику партнёрской программы за год.
func (c *Client) GetAffiliateDashboardStats(ctx context.Context, year int) (model.AffiliateDashboardResponse, error) {
	const op = "get affiliate dashboard stats"
	return call[model.AffiliateDashboardResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/affiliates/statistic",
		query: url.Values{"year": {strconv.Itoa(year)}},
	}, op)
}

// GetSurcharges возвращает страницу доплат.
func (c *Client) GetSurcharges(ctx context.Context, q model.ListQuery) (model.SurchargeListResponse, error) {
	const op = "get surcharges"
	q = q.WithDefaults()
	if err := c.validate(op, q); err != nil {
		return model.SurchargeListResponse{}, err
	}
	return call[model.SurchargeListResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/surcharge", query: listQuery(q),
	}, op)
}

func (c *Client) GetSurchargeDetail(ctx context.Context, id int64) (model.SurchargeDetailResponse, error) {
	const op = "get surcharge detail"
	return call[model.SurchargeDetailResponse](ctx, c, request{
		op: op, method: http.MethodGet, path: "/surcharge/" + strconv.FormatInt(id, 10),
	}, op)
}

// UpdateSurcharge сохраняет изменения доплаты.
func (c *Client) UpdateSurcharge(ctx context.Context, id int64, req model.UpdateSurchargeRequest) (model.UpdateSurchargeResponse, error) {
	const op = "update surcharge"
	if err := c.validate(op, req); err != nil {
		return model.UpdateSurchargeResponse{}, err
	}
	return call[model.UpdateSurchargeResponse](ctx, c, request{
		op: op, method: http.MethodPut, path: "/surcharge/" + strconv.FormatInt(id, 10), body: req,
	}, op)
}
