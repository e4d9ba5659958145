// Package gorm provides the Postgres-backed implementations of the domain
// repositories. Each entity has a row model with storage tags and explicit
// mapping to and from its domain model, so storage concerns never leak into
// the domain packages.
package gorm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roomledger/roomledger/internal/domain/billing"
	"github.com/roomledger/roomledger/internal/domain/maintenance"
	"github.com/roomledger/roomledger/internal/domain/reading"
	"github.com/roomledger/roomledger/internal/domain/resident"
	"github.com/roomledger/roomledger/internal/domain/room"
	"github.com/roomledger/roomledger/internal/domain/shop"
	"github.com/roomledger/roomledger/internal/domain/user"
	"github.com/roomledger/roomledger/internal/types"
)

type baseRow struct {
	TenantID  string       `gorm:"index;not null"`
	Status    types.Status `gorm:"type:varchar(20);not null;default:published"`
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

func (b baseRow) toDomain() types.BaseModel {
	return types.BaseModel{
		TenantID:  b.TenantID,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		CreatedBy: b.CreatedBy,
		UpdatedBy: b.UpdatedBy,
	}
}

func baseFromDomain(m types.BaseModel) baseRow {
	return baseRow(m)
}

type roomRow struct {
	ID               string `gorm:"primaryKey"`
	RoomNumber       string `gorm:"index"`
	RoomType         string
	RateMonthly      decimal.Decimal `gorm:"type:numeric(20,6)"`
	RateDaily        decimal.Decimal `gorm:"type:numeric(20,6)"`
	WaterRate        decimal.Decimal `gorm:"type:numeric(20,6)"`
	ElectricRate     decimal.Decimal `gorm:"type:numeric(20,6)"`
	WaterMeterMax    *decimal.Decimal `gorm:"type:numeric(20,6)"`
	ElectricMeterMax *decimal.Decimal `gorm:"type:numeric(20,6)"`
	baseRow          `gorm:"embedded"`
}

func (roomRow) TableName() string { return "rooms" }

func (r roomRow) toDomain() *room.Room {
	return &room.Room{
		ID:               r.ID,
		RoomNumber:       r.RoomNumber,
		RoomType:         r.RoomType,
		RateMonthly:      r.RateMonthly,
		RateDaily:        r.RateDaily,
		WaterRate:        r.WaterRate,
		ElectricRate:     r.ElectricRate,
		WaterMeterMax:    r.WaterMeterMax,
		ElectricMeterMax: r.ElectricMeterMax,
		BaseModel:        r.baseRow.toDomain(),
	}
}

func roomFromDomain(m *room.Room) *roomRow {
	return &roomRow{
		ID:               m.ID,
		RoomNumber:       m.RoomNumber,
		RoomType:         m.RoomType,
		RateMonthly:      m.RateMonthly,
		RateDaily:        m.RateDaily,
		WaterRate:        m.WaterRate,
		ElectricRate:     m.ElectricRate,
		WaterMeterMax:    m.WaterMeterMax,
		ElectricMeterMax: m.ElectricMeterMax,
		baseRow:          baseFromDomain(m.BaseModel),
	}
}

type readingRow struct {
	ID            string `gorm:"primaryKey"`
	RoomID        string `gorm:"index"`
	ReadingDate   time.Time
	WaterUnits    decimal.Decimal `gorm:"type:numeric(20,6)"`
	ElectricUnits decimal.Decimal `gorm:"type:numeric(20,6)"`
	baseRow       `gorm:"embedded"`
}

func (readingRow) TableName() string { return "meter_readings" }

func (r readingRow) toDomain() *reading.MeterReading {
	return &reading.MeterReading{
		ID:            r.ID,
		RoomID:        r.RoomID,
		ReadingDate:   r.ReadingDate,
		WaterUnits:    r.WaterUnits,
		ElectricUnits: r.ElectricUnits,
		BaseModel:     r.baseRow.toDomain(),
	}
}

func readingFromDomain(m *reading.MeterReading) *readingRow {
	return &readingRow{
		ID:            m.ID,
		RoomID:        m.RoomID,
		ReadingDate:   m.ReadingDate,
		WaterUnits:    m.WaterUnits,
		ElectricUnits: m.ElectricUnits,
		baseRow:       baseFromDomain(m.BaseModel),
	}
}

type billRow struct {
	ID         string `gorm:"primaryKey"`
	RoomID     string `gorm:"index"`
	ResidentID string `gorm:"index"`
	PayDate    time.Time
	PeriodEnd  time.Time `gorm:"index"`
	Summary    *billing.BillSummary `gorm:"serializer:json"`
	baseRow    `gorm:"embedded"`
}

func (billRow) TableName() string { return "bills" }

func (r billRow) toDomain() *billing.Bill {
	return &billing.Bill{
		ID:         r.ID,
		RoomID:     r.RoomID,
		ResidentID: r.ResidentID,
		PayDate:    r.PayDate,
		Summary:    r.Summary,
		BaseModel:  r.baseRow.toDomain(),
	}
}

func billFromDomain(m *billing.Bill) *billRow {
	row := &billRow{
		ID:         m.ID,
		RoomID:     m.RoomID,
		ResidentID: m.ResidentID,
		PayDate:    m.PayDate,
		Summary:    m.Summary,
		baseRow:    baseFromDomain(m.BaseModel),
	}
	if m.Summary != nil {
		row.PeriodEnd = m.Summary.PeriodEnd
	}
	return row
}

type residentRow struct {
	ID           string `gorm:"primaryKey"`
	RoomID       string `gorm:"index"`
	FullName     string
	Phone        string
	Email        string
	RentalType   types.RentalType `gorm:"type:varchar(10)"`
	RentDueDay   *int
	CheckInDate  time.Time
	CheckOutDate *time.Time
	baseRow      `gorm:"embedded"`
}

func (residentRow) TableName() string { return "residents" }

func (r residentRow) toDomain() *resident.Resident {
	return &resident.Resident{
		ID:           r.ID,
		RoomID:       r.RoomID,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
		RentalType:   r.RentalType,
		RentDueDay:   r.RentDueDay,
		CheckInDate:  r.CheckInDate,
		CheckOutDate: r.CheckOutDate,
		BaseModel:    r.baseRow.toDomain(),
	}
}

func residentFromDomain(m *resident.Resident) *residentRow {
	return &residentRow{
		ID:           m.ID,
		RoomID:       m.RoomID,
		FullName:     m.FullName,
		Phone:        m.Phone,
		Email:        m.Email,
		RentalType:   m.RentalType,
		RentDueDay:   m.RentDueDay,
		CheckInDate:  m.CheckInDate,
		CheckOutDate: m.CheckOutDate,
		baseRow:      baseFromDomain(m.BaseModel),
	}
}

type maintenanceRow struct {
	ID            string `gorm:"primaryKey"`
	RoomID        string `gorm:"index"`
	Title         string
	Description   string
	RequestStatus types.MaintenanceStatus `gorm:"type:varchar(20);index"`
	ResolvedAt    *time.Time
	baseRow       `gorm:"embedded"`
}

func (maintenanceRow) TableName() string { return "maintenance_requests" }

func (r maintenanceRow) toDomain() *maintenance.Request {
	return &maintenance.Request{
		ID:            r.ID,
		RoomID:        r.RoomID,
		Title:         r.Title,
		Description:   r.Description,
		RequestStatus: r.RequestStatus,
		ResolvedAt:    r.ResolvedAt,
		BaseModel:     r.baseRow.toDomain(),
	}
}

func maintenanceFromDomain(m *maintenance.Request) *maintenanceRow {
	return &maintenanceRow{
		ID:            m.ID,
		RoomID:        m.RoomID,
		Title:         m.Title,
		Description:   m.Description,
		RequestStatus: m.RequestStatus,
		ResolvedAt:    m.ResolvedAt,
		baseRow:       baseFromDomain(m.BaseModel),
	}
}

type productRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,6)"`
	Stock     int
	baseRow   `gorm:"embedded"`
}

func (productRow) TableName() string { return "products" }

func (r productRow) toDomain() *shop.Product {
	return &shop.Product{
		ID:        r.ID,
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		Stock:     r.Stock,
		BaseModel: r.baseRow.toDomain(),
	}
}

func productFromDomain(m *shop.Product) *productRow {
	return &productRow{
		ID:        m.ID,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
		Stock:     m.Stock,
		baseRow:   baseFromDomain(m.BaseModel),
	}
}

type saleRow struct {
	ID         string `gorm:"primaryKey"`
	ResidentID string `gorm:"index"`
	Items      []shop.SaleItem `gorm:"serializer:json"`
	Total      decimal.Decimal `gorm:"type:numeric(20,6)"`
	SoldAt     time.Time       `gorm:"index"`
	baseRow    `gorm:"embedded"`
}

func (saleRow) TableName() string { return "sales" }

func (r saleRow) toDomain() *shop.Sale {
	return &shop.Sale{
		ID:         r.ID,
		ResidentID: r.ResidentID,
		Items:      r.Items,
		Total:      r.Total,
		SoldAt:     r.SoldAt,
		BaseModel:  r.baseRow.toDomain(),
	}
}

func saleFromDomain(m *shop.Sale) *saleRow {
	return &saleRow{
		ID:         m.ID,
		ResidentID: m.ResidentID,
		Items:      m.Items,
		Total:      m.Total,
		SoldAt:     m.SoldAt,
		baseRow:    baseFromDomain(m.BaseModel),
	}
}

type userRow struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"index"`
	Role         types.UserRole `gorm:"type:varchar(20)"`
	PasswordHash string
	baseRow      `gorm:"embedded"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *user.User {
	return &user.User{
		ID:           r.ID,
		Email:        r.Email,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
		BaseModel:    r.baseRow.toDomain(),
	}
}

func userFromDomain(m *user.User) *userRow {
	return &userRow{
		ID:           m.ID,
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		baseRow:      baseFromDomain(m.BaseModel),
	}
}
