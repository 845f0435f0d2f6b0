package model

// LoginRequest - учётные данные сотрудника.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ на вход. Токен наружу из BFF не отдаётся.
type LoginResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Landing - раздел панели, доступный роли после входа.
type Landing string

const (
	LandingAffiliateBookings Landing = "affiliate-bookings"
	LandingStatistics        Landing = "statistics"
	LandingNotFound          Landing = "not-found"
)

// LandingFor выбирает раздел по роли. b2b_user встречается у сохранённых
// сессий и ведёт туда же, куда affiliate.
func LandingFor(role string) Landing {
	switch role {
	case "affiliate", "b2b_user":
		return LandingAffiliateBookings
	case "admin", "superadmin", "strapi-super-admin":
		return LandingStatistics
	default:
		return LandingNotFound
	}
}
