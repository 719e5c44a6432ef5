package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceType string

const (
	PriceTypeBase       PriceType = "base"
	PriceTypeAdditional PriceType = "additional"
)

func (p PriceType) Valid() bool {
	return p == PriceTypeBase || p == PriceTypeAdditional
}

type WidgetType string

const (
	WidgetTypeSwitch WidgetType = "switch"
	WidgetTypeRadio  WidgetType = "radio"
)

func (w WidgetType) Valid() bool {
	return w == WidgetTypeSwitch || w == WidgetTypeRadio
}

// PriceOption is one named pricing slot a category exposes, e.g.
// "Size" -> base price chosen from S/M/L.
type PriceOption struct {
	PriceType        PriceType `bson:"priceType" json:"priceType"`
	AvailableOptions []string  `bson:"availableOptions" json:"availableOptions"`
}

// Attribute is a customizable widget a category declares for its items.
// Order of the attribute list is preserved as inserted.
type Attribute struct {
	Name             string     `bson:"name" json:"name"`
	WidgetType       WidgetType `bson:"widgetType" json:"widgetType"`
	DefaultValue     string     `bson:"defaultValue" json:"defaultValue"`
	AvailableOptions []string   `bson:"availableOptions" json:"availableOptions"`
}

type Category struct {
	ID                 primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name               string                 `bson:"name" json:"name"`
	PriceConfiguration map[string]PriceOption `bson:"priceConfiguration" json:"priceConfiguration"`
	Attributes         []Attribute            `bson:"attributes" json:"attributes"`
	CreatedAt          time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// CategorySummary is the projection joined onto items on reads.
type CategorySummary struct {
	ID                 primitive.ObjectID     `bson:"_id" json:"id"`
	Name               string                 `bson:"name" json:"name"`
	Attributes         []Attribute            `bson:"attributes" json:"attributes"`
	PriceConfiguration map[string]PriceOption `bson:"priceConfiguration" json:"priceConfiguration"`
}

// ProductPriceOption instantiates a category price slot with concrete
// numeric prices per option name.
type ProductPriceOption struct {
	PriceType        PriceType          `bson:"priceType" json:"priceType"`
	AvailableOptions map[string]float64 `bson:"availableOptions" json:"availableOptions"`
}

type ProductAttribute struct {
	Name  string `bson:"name" json:"name"`
	Value any    `bson:"value" json:"value"`
}

type Product struct {
	ID                 primitive.ObjectID            `bson:"_id,omitempty" json:"id"`
	Name               string                        `bson:"name" json:"name"`
	Description        string                        `bson:"description" json:"description"`
	Image              string                        `bson:"image" json:"image"`
	PriceConfiguration map[string]ProductPriceOption `bson:"priceConfiguration" json:"priceConfiguration"`
	Attributes         []ProductAttribute            `bson:"attributes" json:"attributes"`
	TenantID           string                        `bson:"tenantId" json:"tenantId"`
	CategoryID         primitive.ObjectID            `bson:"categoryId" json:"categoryId"`
	IsPublish          bool                          `bson:"isPublish" json:"isPublish"`
	CreatedAt          time.Time                     `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                     `bson:"updatedAt" json:"updatedAt"`
}

type ProductWithCategory struct {
	Product  `bson:",inline"`
	Category *CategorySummary `bson:"category" json:"category"`
}

type Topping struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image" json:"image"`
	Price      float64            `bson:"price" json:"price"`
	TenantID   string             `bson:"tenantId" json:"tenantId"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	IsPublish  bool               `bson:"isPublish" json:"isPublish"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ToppingWithCategory struct {
	Topping  `bson:",inline"`
	Category *CategorySummary `bson:"category" json:"category"`
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)
