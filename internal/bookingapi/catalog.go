package bookingapi

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/model"
)

// Справочники для формы создания брони. Ошибка не мешает заполнять форму,
// поэтому вместо неё возвращается пустой результат.

// GetCarSkuList возвращает артикулы автомобилей или пустой список.
func (c *Client) GetCarSkuList(ctx context.Context) model.CarSkuList {
	const op = "fetch car SKU list"

	res, err := call[model.CarSkuList](ctx, c, request{
		op: op, method: http.MethodGet, path: "/cars/sku/list",
	}, op)
	if err != nil || res.Data == nil {
		return model.CarSkuList{Data: []string{}}
	}
	return res
}

// SearchClientsByPhone ищет клиентов по телефону или имени.
func (c *Client) SearchClientsByPhone(ctx context.Context, search string) model.ClientSearch {
	const op = "search clients by phone"

	res, err := call[model.ClientSearch](ctx, c, request{
		op: op, method: http.MethodGet, path: "/clients/phone_name_list",
		query: url.Values{"search": {search}},
	}, op)
	if err != nil || res.Data == nil {
		return model.ClientSearch{Data: []model.ClientSuggestion{}}
	}
	return res
}

// GetApplicablePromotions возвращает промокоды, применимые к автомобилю и периоду.
func (c *Client) GetApplicablePromotions(ctx context.Context, q model.PromotionQuery) model.PromotionList {
	const op = "get applicable promotions"
	empty := model.PromotionList{Success: false, Data: []string{}}

	if err := c.validate(op, q); err != nil {
		return empty
	}

	res, err := call[model.PromotionList](ctx, c, request{
		op: op, method: http.MethodGet, path: "/promotions/applicable/list",
		query: url.Values{
			"car_sku":                    {q.CarSKU},
			"scheduled_pickup_timestamp": {q.ScheduledPickupTimestamp},
			"scheduled_return_timestamp": {q.ScheduledReturnTimestamp},
		},
	}, op)
	if err != nil {
		c.logger.Warn("promotions unavailable", zap.Error(err))
		return empty
	}
	if res.Data == nil {
		res.Data = []string{}
	}
	return res
}
