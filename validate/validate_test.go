package validate

import (
	"testing"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/models"
)

func TestCategoryAttributes(t *testing.T) {
	valid := []models.Attribute{{
		Name:             "Size",
		WidgetType:       models.WidgetTypeRadio,
		DefaultValue:     "M",
		AvailableOptions: []string{"S", "M", "L"},
	}}
	if err := CategoryAttributes(valid); err != nil {
		t.Fatalf("valid attributes rejected: %v", err)
	}

	cases := []struct {
		name  string
		attrs []models.Attribute
	}{
		{"empty list", []models.Attribute{}},
		{"default not in options", []models.Attribute{{
			Name: "Size", WidgetType: models.WidgetTypeRadio,
			DefaultValue: "XL", AvailableOptions: []string{"S", "M", "L"},
		}}},
		{"missing default", []models.Attribute{{
			Name: "Size", WidgetType: models.WidgetTypeRadio,
			AvailableOptions: []string{"S", "M"},
		}}},
		{"single option", []models.Attribute{{
			Name: "Spicy", WidgetType: models.WidgetTypeSwitch,
			DefaultValue: "yes", AvailableOptions: []string{"yes"},
		}}},
		{"bad widget type", []models.Attribute{{
			Name: "Size", WidgetType: models.WidgetType("slider"),
			DefaultValue: "M", AvailableOptions: []string{"S", "M"},
		}}},
		{"unnamed attribute", []models.Attribute{{
			WidgetType: models.WidgetTypeSwitch, DefaultValue: "no",
			AvailableOptions: []string{"yes", "no"},
		}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CategoryAttributes(c.attrs)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Fatalf("expected Validation kind, got %v", err)
			}
		})
	}
}

func TestCategoryPriceConfiguration(t *testing.T) {
	valid := map[string]models.PriceOption{
		"Size": {PriceType: models.PriceTypeBase, AvailableOptions: []string{"S", "M", "L"}},
		"Crust": {PriceType: models.PriceTypeAdditional, AvailableOptions: []string{"thin", "thick"}},
	}
	if err := CategoryPriceConfiguration(valid); err != nil {
		t.Fatalf("valid configuration rejected: %v", err)
	}

	if err := CategoryPriceConfiguration(map[string]models.PriceOption{}); err == nil {
		t.Fatal("present-but-empty configuration must be rejected")
	}

	if err := CategoryPriceConfiguration(map[string]models.PriceOption{
		"Size": {PriceType: models.PriceType("flat"), AvailableOptions: []string{"S"}},
	}); err == nil {
		t.Fatal("invalid priceType must be rejected")
	}

	if err := CategoryPriceConfiguration(map[string]models.PriceOption{
		"Size": {PriceType: models.PriceTypeBase, AvailableOptions: nil},
	}); err == nil {
		t.Fatal("empty option list must be rejected")
	}
}

func TestProductPriceConfiguration(t *testing.T) {
	valid := map[string]models.ProductPriceOption{
		"Size": {
			PriceType:        models.PriceTypeBase,
			AvailableOptions: map[string]float64{"S": 100, "M": 150, "L": 200},
		},
	}
	if err := ProductPriceConfiguration(valid); err != nil {
		t.Fatalf("valid configuration rejected: %v", err)
	}

	if err := ProductPriceConfiguration(nil); err == nil {
		t.Fatal("empty configuration must be rejected")
	}

	if err := ProductPriceConfiguration(map[string]models.ProductPriceOption{
		"Size": {PriceType: models.PriceTypeBase},
	}); err == nil {
		t.Fatal("entry without prices must be rejected")
	}
}

func TestProductAttributes(t *testing.T) {
	if err := ProductAttributes([]models.ProductAttribute{{Name: "Spicy", Value: true}}); err != nil {
		t.Fatalf("valid attributes rejected: %v", err)
	}
	if err := ProductAttributes(nil); err == nil {
		t.Fatal("empty attributes must be rejected")
	}
	if err := ProductAttributes([]models.ProductAttribute{{Name: "Spicy"}}); err == nil {
		t.Fatal("nil value must be rejected")
	}
}

func TestStruct(t *testing.T) {
	type payload struct {
		Name string `validate:"required,min=3"`
	}

	if err := Struct(payload{Name: "Pizza"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if err := Struct(payload{}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("missing field should be Validation, got %v", err)
	}
	if err := Struct(payload{Name: "ab"}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("short field should be Validation, got %v", err)
	}
}

func TestObjectID(t *testing.T) {
	if _, err := ObjectID("not-a-hex-id"); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("invalid hex should be Validation, got %v", err)
	}

	id, err := ObjectID("6614f0a9c9d5f2a3b4c5d6e7")
	if err != nil {
		t.Fatalf("valid hex rejected: %v", err)
	}
	if id.Hex() != "6614f0a9c9d5f2a3b4c5d6e7" {
		t.Fatalf("round trip mismatch: %s", id.Hex())
	}
}
