package model

import "github.com/mmeshcher/booking-cms/internal/schema"

// PhotoURL - ссылка на один формат фотографии.
type PhotoURL struct {
	URL *string `json:"url,omitempty"`
}

// CarPhotoFormats - форматы главной фотографии автомобиля.
type CarPhotoFormats struct {
	Medium    *PhotoURL `json:"medium,omitempty"`
	Thumbnail *PhotoURL `json:"thumbnail,omitempty"`
	Small     *PhotoURL `json:"small,omitempty"`
	Large     *PhotoURL `json:"large,omitempty"`
}

// CarPhotos - фотографии автомобиля.
type CarPhotos struct {
	ID        *int64 `json:"id,omitempty"`
	MainPhoto *struct {
		Formats *CarPhotoFormats `json:"formats,omitempty"`
	} `json:"Main_Photo,omitempty"`
}

// CarRent - тарифы и комиссии автомобиля.
type CarRent struct {
	ID                                      *int64            `json:"id,omitempty"`
	Rent1Hour                               *string           `json:"Rent_1_hour,omitempty"`
	Rent4Hour                               *string           `json:"Rent_4_hour,omitempty"`
	Rent8Hour                               *string           `json:"Rent_8_hour,omitempty"`
	Rent12Hour                              *string           `json:"Rent_12_hour,omitempty"`
	Rent24Hour                              *string           `json:"Rent_24_hour,omitempty"`
	HostCommission                          *float64          `json:"host_commission,omitempty"`
	RateInHoliday                           *string           `json:"rate_in_holiday,omitempty"`
	RenterCommission                        *float64          `json:"renter_commision,omitempty"`
	WeekendSurcharge                        *string           `json:"Weekend_surcharge,omitempty"`
	MinBookingInHoliday                     schema.NullNumber `json:"min_booking_in_holiday"`
	OverKmFeeCommission                     schema.NullNumber `json:"over_km_fee_commission"`
	LateReturnFeeCommission                 schema.NullNumber `json:"late_return_fee_commission"`
	CancellationFeeCommission               *float64          `json:"cancellation_fee_commission,omitempty"`
	EVElectricChargeCommission              schema.NullNumber `json:"ev_electric_charge_commission"`
	BBCRevenueFromDamageCommission          schema.NullNumber `json:"bbc_revenue_from_damage_commission"`
	FuelCollectedFromCustCommission         *float64          `json:"fuel_collected_from_cust_commission,omitempty"`
	VETCCollectedFromCustCommission         *float64          `json:"vetc_collected_from_cust_commission,omitempty"`
	DamageCollectedFromCustCommission       *float64          `json:"damage_collected_from_cust_commission,omitempty"`
	CleaningCollectedFromCustCommission     *float64          `json:"cleaning_collected_from_cust_commission,omitempty"`
	ParkingFeeToRefundCustomerCommission    *string           `json:"parking_fee_to_refund_customer_commission,omitempty"`
	DeliveryFeeAmountToCustomerCommission   *float64          `json:"delivery_fee_amount_to_customer_commission,omitempty"`
	DeliveryFeeAmountFromCustomerCommission *float64          `json:"delivery_fee_amount_from_customer_commission,omitempty"`
}

// CarInfo - оснащение автомобиля.
type CarInfo struct {
	ID                           *int64  `json:"id,omitempty"`
	ETC                          *bool   `json:"etc,omitempty"`
	GPS                          *bool   `json:"gps,omitempty"`
	Map                          *bool   `json:"map,omitempty"`
	USB                          *bool   `json:"usb,omitempty"`
	Airbag                       *bool   `json:"airbag,omitempty"`
	Dashcam                      *bool   `json:"dashcam,omitempty"`
	Sunroof                      *bool   `json:"sunroof,omitempty"`
	Bluetooth                    *bool   `json:"bluetooth,omitempty"`
	FuelType                     *string `json:"fuel_type,omitempty"`
	Camera360                    *bool   `json:"camera_360,omitempty"`
	DVDPlayer                    *bool   `json:"dvd_player,omitempty"`
	SpareTyre                    *bool   `json:"spare_tyre,omitempty"`
	FuelEconomy                  *string `json:"fuel_economy,omitempty"`
	ImpactSensor                 *bool   `json:"impact_sensor,omitempty"`
	SpeedWarning                 *bool   `json:"speed_warning,omitempty"`
	ReverseCamera                *bool   `json:"reverse_camera,omitempty"`
	CarDescription               *string `json:"car_description,omitempty"`
	SideViewCamera               *bool   `json:"side_view_camera,omitempty"`
	TirePressureMonitoringSystem *bool   `json:"tire_pressure_monitoring_system,omitempty"`
}

// CarInternal - внутренняя отметка об автомобиле.
type CarInternal struct {
	ID        *int64  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	ExpireDay *string `json:"expire_day,omitempty"`
}

// CarUser - пользователь CMS, создавший или изменивший карточку автомобиля.
type CarUser struct {
	ID               *int64  `json:"id,omitempty"`
	Email            string  `json:"email,omitempty"`
	Blocked          *bool   `json:"blocked,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	Lastname         string  `json:"lastname,omitempty"`
	Username         *string `json:"username,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	Firstname        string  `json:"firstname,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
	PreferedLanguage *string `json:"preferedLanguage,omitempty"`
}

// Car - карточка автомобиля в полной карточке брони.
type Car struct {
	ID                         *int64        `json:"id,omitempty"`
	Rent                       *CarRent      `json:"Rent,omitempty"`
	Size                       *string       `json:"Size,omitempty"`
	MoCop                      *string       `json:"Mo_cop,omitempty"`
	Photos                     *CarPhotos    `json:"Photos,omitempty"`
	Status                     string        `json:"Status,omitempty"`
	Is247                      *bool         `json:"is_247,omitempty"`
	Cam360                     *string       `json:"Cam_360,omitempty"`
	CamLui                     *string       `json:"Cam_lui,omitempty"`
	CarPlay                    *string       `json:"CarPlay,omitempty"`
	CarSKU                     string        `json:"Car_SKU,omitempty"`
	Vietmap                    *string       `json:"Vietmap,omitempty"`
	Keyword                    *string       `json:"keyword,omitempty"`
	MapLink                    *string       `json:"mapLink,omitempty"`
	District                   *string       `json:"District,omitempty"`
	CarInfo                    *CarInfo      `json:"car_info,omitempty"`
	CarColor                   *string       `json:"Car_Color,omitempty"`
	CarModel                   *string       `json:"Car_Model,omitempty"`
	CreatedAt                  string        `json:"createdAt,omitempty"`
	CreatedBy                  *CarUser      `json:"createdBy,omitempty"`
	IsLuxury                   *bool         `json:"is_luxury,omitempty"`
	UpdatedAt                  string        `json:"updatedAt,omitempty"`
	UpdatedBy                  *CarUser      `json:"updatedBy,omitempty"`
	UsageNote                  *string       `json:"Usage_Note,omitempty"`
	YearField                  *string       `json:"Year_field,omitempty"`
	IsUseKey                   *bool         `json:"is_use_key,omitempty"`
	IsFavorite                 *bool         `json:"is_favorite,omitempty"`
	PublishedAt                string        `json:"publishedAt,omitempty"`
	StakeMoney                 *string       `json:"stake_money,omitempty"`
	PlateNumber                *string       `json:"Plate_Number,omitempty"`
	Transmission               *string       `json:"Transmission,omitempty"`
	CarInternal                []CarInternal `json:"car_internal,omitempty"`
	ElectricFee                *string       `json:"electric_fee,omitempty"`
	MainPhoto2                 *string       `json:"main_photo_2,omitempty"`
	CamHanhTrinh               *string       `json:"Cam_hanhtrinh,omitempty"`
	ShortLocation              *string       `json:"Short_location,omitempty"`
	DefaultStation             *string       `json:"Default_Station,omitempty"`
	CurrentParkingLocation     *string       `json:"Current_Parking_Location,omitempty"`
	CheckoutParkingInstruction *string       `json:"Checkout_Parking_Instruction,omitempty"`
	CarCity                    *string       `json:"car_city,omitempty"`
}
