package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the same shape the storefront has always used.
	decimal.MarshalJSONWithoutQuotes = true
}

type Fuel string

const (
	FuelGasoline Fuel = "gasoline"
	FuelDiesel   Fuel = "diesel"
	FuelHybrid   Fuel = "hybrid"
	FuelElectric Fuel = "electric"
)

func (f Fuel) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	}
	return false
}

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

func (t Transmission) Valid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

type CarStatus string

const (
	CarAvailable CarStatus = "available"
	CarSold      CarStatus = "sold"
	CarReserved  CarStatus = "reserved"
)

func (s CarStatus) Valid() bool {
	switch s {
	case CarAvailable, CarSold, CarReserved:
		return true
	}
	return false
}

// StringList is stored as a JSON array in a single TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("StringList: unsupported source %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

type Car struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Brand        string          `db:"brand" json:"brand"`
	Model        string          `db:"model" json:"model"`
	Year         int             `db:"year" json:"year"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Category     string          `db:"category" json:"category"` // category name, not id
	Fuel         Fuel            `db:"fuel" json:"fuel"`
	Transmission Transmission    `db:"transmission" json:"transmission"`
	Mileage      int             `db:"mileage" json:"mileage"`
	Color        string          `db:"color" json:"color"`
	Description  string          `db:"description" json:"description"`
	Features     StringList      `db:"features" json:"features"`
	Images       StringList      `db:"images" json:"images"`
	Status       CarStatus       `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// CarPatch carries the fields of a partial update; nil means "leave as is".
type CarPatch struct {
	Name         *string          `json:"name,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	Model        *string          `json:"model,omitempty"`
	Year         *int             `json:"year,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Fuel         *Fuel            `json:"fuel,omitempty"`
	Transmission *Transmission    `json:"transmission,omitempty"`
	Mileage      *int             `json:"mileage,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Features     *[]string        `json:"features,omitempty"`
	Images       *[]string        `json:"images,omitempty"`
	Status       *CarStatus       `json:"status,omitempty"`
}

// Apply merges the patch into c. Timestamps are the caller's business.
func (p CarPatch) Apply(c *Car) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Brand != nil {
		c.Brand = *p.Brand
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Year != nil {
		c.Year = *p.Year
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Fuel != nil {
		c.Fuel = *p.Fuel
	}
	if p.Transmission != nil {
		c.Transmission = *p.Transmission
	}
	if p.Mileage != nil {
		c.Mileage = *p.Mileage
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Features != nil {
		c.Features = StringList(*p.Features)
	}
	if p.Images != nil {
		c.Images = StringList(*p.Images)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

// CarFilter narrows the catalog listing. Zero values mean "any".
type CarFilter struct {
	Q            string
	Brand        string
	Category     string
	Fuel         Fuel
	Transmission Transmission
	Status       CarStatus
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Sort         string // newest | price_asc | price_desc; default is id order
}
