// Package service связывает клиент API бронирований с кэшем запросов и
// сессией: выбирает ключи кэша, сбрасывает их после изменений и ведёт
// состояние входа.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/bookingapi"
	"github.com/mmeshcher/booking-cms/internal/model"
	"github.com/mmeshcher/booking-cms/internal/querycache"
	"github.com/mmeshcher/booking-cms/internal/session"
)

// BookingAPI описывает контракт внешнего API, используемый сервисом.
type BookingAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Logout(ctx context.Context) error

	GetBookings(ctx context.Context, filter model.BookingFilter) (model.BookingPage, error)
	GetBooking(ctx context.Context, id int64) (model.BookingFull, error)
	CancelBooking(ctx context.Context, id int64, req model.CancelBookingRequest) (model.MessageResponse, error)
	ChangeBookingStatus(ctx context.Context, id int64, req model.ChangeStatusRequest) (model.BookingActionResponse, error)
	RunAction(ctx context.Context, id int64, a bookingapi.Action) (model.BookingActionResponse, error)
	ConfirmSignContract(ctx context.Context, id int64, req model.SignContractRequest) (model.BookingActionResponse, error)
	UpdateDeposit(ctx context.Context, id int64, req model.UpdateDepositRequest) (model.BookingFeeInfoResponse, error)
	VerifyFace(ctx context.Context, id int64) (model.MessageResponse, error)
	UnverifyFace(ctx context.Context, id int64) (model.MessageResponse, error)
	HostVerifyBooking(ctx context.Context, id int64) (model.MessageResponse, error)
	RenterVerifyBooking(ctx context.Context, id int64) (model.MessageResponse, error)
	UpdateVatInfo(ctx context.Context, id int64, req model.UpdateVatInfo) (model.BookingFeeResponse, error)
	UpdateTripInfo(ctx context.Context, id int64, req model.UpdateTripInfo) (model.BookingFeeResponse, error)
	UpdateLicenseInfo(ctx context.Context, id int64, req model.UpdateLicenseInfo) (model.BookingFeeResponse, error)
	UnverifyLicenseInfo(ctx context.Context, id int64) (model.BookingFeeResponse, error)
	UpdateBookingFee(ctx context.Context, id int64, req model.UpdateBookingFeeRequest) (model.BookingFeeResponse, error)
	FeeVerifyBooking(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error)
	UpdateBookingFeeDraft(ctx context.Context, id int64, req model.FeeVerifyRequest) (model.BookingFeeResponse, error)
	ChangeClient(ctx context.Context, id int64, req model.ChangeClientRequest) (model.BookingFeeResponse, error)
	GetBookingFeeInfo(ctx context.Context, params model.FeeInfoQuery) (model.BookingFeeInfoResponse, error)
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.CreateBookingResponse, error)

	GetCarSkuList(ctx context.Context) model.CarSkuList
	SearchClientsByPhone(ctx context.Context, search string) model.ClientSearch
	GetApplicablePromotions(ctx context.Context, q model.PromotionQuery) model.PromotionList

	GetAffiliates(ctx context.Context, q model.ListQuery) (model.AffiliateListResponse, error)
	GetAffiliateBookings(ctx context.Context, q model.ListQuery) (model.AffiliateBookingsResponse, error)
	GetAffiliateDashboardStats(ctx context.Context, year int) (model.AffiliateDashboardResponse, error)
	GetSurcharges(ctx context.Context, q model.ListQuery) (model.SurchargeListResponse, error)
	GetSurchargeDetail(ctx context.Context, id int64) (model.SurchargeDetailResponse, error)
	UpdateSurcharge(ctx context.Context, id int64, req model.UpdateSurchargeRequest) (model.UpdateSurchargeResponse, error)
}

// Places подсказывает адреса.
type Places interface {
	Autocomplete(ctx context.Context, input string) []model.PlaceSuggestion
	Geocode(ctx context.Context, address string) *model.LatLng
}

// SessionPurger удаляет давно не использованные сессии из постоянного хранилища
// и возвращает их идентификаторы.
type SessionPurger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) ([]string, error)
}

// Sessions - сессии, загруженные в память процесса.
type Sessions interface {
	Forget(ids ...string)
	Evict(ctx context.Context, maxIdle time.Duration) ([]string, error)
}

// Service содержит логику BFF панели бронирований.
type Service struct {
	api      BookingAPI
	cache    *querycache.Cache
	places   Places
	sessions Sessions
	purger   SessionPurger
	logger   *zap.Logger
}

// NewService создаёт сервис. places, sessions и purger могут быть nil.
func NewService(
	api BookingAPI,
	cache *querycache.Cache,
	places Places,
	sessions Sessions,
	purger SessionPurger,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = querycache.New(querycache.WithPermanent(bookingapi.IsUnauthorized))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:      api,
		cache:    cache,
		places:   places,
		sessions: sessions,
		purger:   purger,
		logger:   logger,
	}
}

// namespace - первый сегмент ключей кэша: данные разных сессий не смешиваются.
func namespace(ctx context.Context) string {
	if s, ok := session.FromContext(ctx); ok {
		return s.ID()
	}
	return "default"
}

func key(ctx context.Context, segments ...string) querycache.Key {
	return querycache.Key(segments).In(namespace(ctx))
}

func id64(id int64) string {
	return strconv.FormatInt(id, 10)
}

// fingerprint превращает параметры запроса в сегмент ключа.
func fingerprint(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(b)
}

// Profile - состояние входа текущей сессии.
type Profile struct {
	Authenticated bool          `json:"authenticated"`
	Email         string        `json:"email,omitempty"`
	Role          string        `json:"role,omitempty"`
	Landing       model.Landing `json:"landing,omitempty"`
}

// Login выполняет вход, сохраняет профиль и сбрасывает кэш сессии.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (Profile, error) {
	res, err := s.api.Login(ctx, req)
	if err != nil {
		return Profile{}, err
	}

	if sess, ok := session.FromContext(ctx); ok {
		if err := sess.SetProfile(ctx, res.Email, res.Role); err != nil {
			s.logger.Error("store profile", zap.Error(err))
		}
	}
	s.cache.InvalidatePrefix(querycache.Key{namespace(ctx)})

	return Profile{
		Authenticated: true,
		Email:         res.Email,
		Role:          res.Role,
		Landing:       model.LandingFor(res.Role),
	}, nil
}

// Logout завершает сессию. Локальное состояние очищается даже при ошибке API.
func (s *Service) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn("logout request failed", zap.Error(err))
	}

	if sess, ok := session.FromContext(ctx); ok {
		if _, cerr := sess.Clear(ctx); cerr != nil {
			s.logger.Error("clear session", zap.Error(cerr))
		}
	}
	s.cache.InvalidatePrefix(querycache.Key{namespace(ctx)})

	return err
}

// Me возвращает состояние входа текущей сессии.
func (s *Service) Me(ctx context.Context) Profile {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return Profile{}
	}
	email, role := sess.Profile()
	return Profile{
		Authenticated: true,
		Email:         email,
		Role:          role,
		Landing:       model.LandingFor(role),
	}
}

// OnSessionExpired сбрасывает кэш сессии, токен которой отклонил API.
func (s *Service) OnSessionExpired(_ context.Context, sess *session.Session) {
	s.logger.Info("session expired", zap.String("session", sess.ID()))
	s.cache.InvalidatePrefix(querycache.Key{sess.ID()})
}

// PurgeSessions удаляет сессии, не обновлявшиеся дольше maxAge, выгружает из памяти
// их и простаивающие сессии, а затем чистит кэш: устаревшие записи и данные
// выгруженных сессий.
func (s *Service) PurgeSessions(ctx context.Context, maxAge time.Duration) {
	var dropped []string

	if s.purger != nil {
		ids, err := s.purger.PurgeStale(ctx, maxAge)
		switch {
		case err != nil && !errors.Is(err, context.Canceled):
			s.logger.Error("purge sessions", zap.Error(err))
		case len(ids) > 0:
			s.logger.Info("purged stale sessions", zap.Int("sessions", len(ids)))
			if s.sessions != nil {
				s.sessions.Forget(ids...)
			}
			dropped = append(dropped, ids...)
		}
	}

	if s.sessions != nil {
		ids, err := s.sessions.Evict(ctx, maxAge)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("evict idle sessions", zap.Error(err))
		}
		dropped = append(dropped, ids...)
	}

	swept := s.cache.Sweep()
	for _, id := range dropped {
		swept += s.cache.InvalidatePrefix(querycache.Key{id})
	}
	s.logger.Debug("query cache cleaned",
		zap.Int("removed", swept),
		zap.Int("entries", s.cache.Len()),
	)
}

// StartSessionCleanup запускает очистку сессий и кэша по расписанию cron
// (например, "@every 1h") и блокируется до отмены ctx.
func (s *Service) StartSessionCleanup(ctx context.Context, spec string, maxAge time.Duration) error {
	if spec == "" {
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() { s.PurgeSessions(ctx, maxAge) }); err != nil {
		return fmt.Errorf("schedule session cleanup %q: %w", spec, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
