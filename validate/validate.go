// Package validate checks the cross-field invariants the schema demands.
// Primitive shapes are covered by struct tags; everything relational
// (default value membership, non-empty configuration maps) is an explicit
// check so the rules read in one place.
package validate

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag validation and reports the first offending field as a
// Validation error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperror.Validation("invalid request body")
	}
	return apperror.Validation("%s", fieldMessage(errs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ObjectID parses a hex id from a path or query parameter.
func ObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid id")
	}
	return id, nil
}

// CategoryPriceConfiguration rejects a present-but-empty map and checks
// each entry's price type and option list.
func CategoryPriceConfiguration(pc map[string]models.PriceOption) error {
	if len(pc) == 0 {
		return apperror.Validation("priceConfiguration cannot be empty if provided")
	}
	for key, option := range pc {
		if !option.PriceType.Valid() {
			return apperror.Validation("priceConfiguration %q priceType must be one of: %s, %s",
				key, models.PriceTypeBase, models.PriceTypeAdditional)
		}
		if len(option.AvailableOptions) == 0 {
			return apperror.Validation("priceConfiguration %q availableOptions cannot be empty", key)
		}
		for _, name := range option.AvailableOptions {
			if name == "" {
				return apperror.Validation("priceConfiguration %q availableOptions cannot contain empty values", key)
			}
		}
	}
	return nil
}

// CategoryAttributes checks every attribute widget, its option list size
// and the invariant that the default value is one of its own options.
func CategoryAttributes(attrs []models.Attribute) error {
	if len(attrs) == 0 {
		return apperror.Validation("attributes cannot be empty if provided")
	}
	for _, attr := range attrs {
		if attr.Name == "" {
			return apperror.Validation("attribute name cannot be empty")
		}
		if !attr.WidgetType.Valid() {
			return apperror.Validation("attribute %q widgetType must be one of: %s, %s",
				attr.Name, models.WidgetTypeSwitch, models.WidgetTypeRadio)
		}
		if len(attr.AvailableOptions) < 2 {
			return apperror.Validation("attribute %q must have at least two available options", attr.Name)
		}
		if attr.DefaultValue == "" {
			return apperror.Validation("attribute %q default value is required", attr.Name)
		}
		if !slices.Contains(attr.AvailableOptions, attr.DefaultValue) {
			return apperror.Validation("attribute %q default value is not from available options", attr.Name)
		}
	}
	return nil
}

// ProductPriceConfiguration checks the item-side shape: each entry carries
// a valid price type and a non-empty option -> price map.
func ProductPriceConfiguration(pc map[string]models.ProductPriceOption) error {
	if len(pc) == 0 {
		return apperror.Validation("priceConfiguration cannot be empty")
	}
	for key, option := range pc {
		if !option.PriceType.Valid() {
			return apperror.Validation("priceConfiguration %q priceType must be one of: %s, %s",
				key, models.PriceTypeBase, models.PriceTypeAdditional)
		}
		if len(option.AvailableOptions) == 0 {
			return apperror.Validation("priceConfiguration %q availableOptions cannot be empty", key)
		}
	}
	return nil
}

// ProductAttributes checks item attribute entries. Values are free-form;
// whether they must come from the owning category's option lists is not
// enforced here (see DESIGN.md).
func ProductAttributes(attrs []models.ProductAttribute) error {
	if len(attrs) == 0 {
		return apperror.Validation("attributes cannot be empty")
	}
	for _, attr := range attrs {
		if attr.Name == "" {
			return apperror.Validation("attribute name cannot be empty")
		}
		if attr.Value == nil {
			return apperror.Validation("attribute %q value cannot be null", attr.Name)
		}
	}
	return nil
}
