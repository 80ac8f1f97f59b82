package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/dressshop/pkg/validate"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"nullable"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "Secret@123",
	})
	assert.False(t, validate.HasErrors(errs))
}

func TestStructRequired(t *testing.T) {
	errs := validate.Struct(&registerInput{})
	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.NotContains(t, errs, "phone") // nullable
}

func TestStructEmail(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Name:     "Priya",
		Email:    "not-an-email",
		Password: "Secret@123",
	})
	assert.Contains(t, errs, "email")
}

func TestStructMinLength(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "short",
	})
	assert.Contains(t, errs, "password")
}

type productInput struct {
	Price    float64  `json:"price" validate:"gte=0"`
	Category string   `json:"category" validate:"required,in=Sarees,Kurtis,Lehengas,Salwar,Gowns,Tops,Dresses"`
	Sizes    []string `json:"sizes" validate:"required"`
}

func TestStructZeroPrice(t *testing.T) {
	// 0 is a legitimate price; gte=0 without required must accept it.
	errs := validate.Struct(&productInput{Price: 0, Category: "Tops", Sizes: []string{"M"}})
	assert.NotContains(t, errs, "price")
}

func TestStructInRule(t *testing.T) {
	errs := validate.Struct(&productInput{Price: 999, Category: "Sarees", Sizes: []string{"M"}})
	assert.False(t, validate.HasErrors(errs))

	errs = validate.Struct(&productInput{Price: 999, Category: "Shoes", Sizes: []string{"M"}})
	assert.Contains(t, errs, "category")
}

func TestStructRequiredSlice(t *testing.T) {
	errs := validate.Struct(&productInput{Price: 999, Category: "Tops", Sizes: nil})
	assert.Contains(t, errs, "sizes")
}

func TestStructGte(t *testing.T) {
	errs := validate.Struct(&productInput{Price: -1, Category: "Tops", Sizes: []string{"M"}})
	assert.Contains(t, errs, "price")
}

type patchInput struct {
	Name     *string  `json:"name" validate:"min=1"`
	Price    *float64 `json:"price" validate:"gte=0"`
	Category *string  `json:"category" validate:"in=Sarees,Tops"`
	Owner    *string  `json:"owner" validate:"required"`
}

func TestStructPointerFields(t *testing.T) {
	owner := "admin"

	// Nil optional pointers skip every rule.
	errs := validate.Struct(&patchInput{Owner: &owner})
	assert.False(t, validate.HasErrors(errs))

	// A nil pointer still trips required.
	errs = validate.Struct(&patchInput{})
	assert.Contains(t, errs, "owner")

	// Provided pointers are validated by their pointed-to value.
	name := ""
	price := -5.0
	category := "Shoes"
	errs = validate.Struct(&patchInput{
		Name:     &name,
		Price:    &price,
		Category: &category,
		Owner:    &owner,
	})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "category")

	price = 0
	category = "Tops"
	name = "Silk Top"
	errs = validate.Struct(&patchInput{
		Name:     &name,
		Price:    &price,
		Category: &category,
		Owner:    &owner,
	})
	assert.False(t, validate.HasErrors(errs))
}
