package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/bind"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// ProductController serves the public catalog and the admin CRUD.
type ProductController struct {
	svc *services.ProductService
}

// NewProductController wires the controller.
func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// List returns every product. GET /api/products
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.List(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, products)
}

// Featured returns up to 8 featured products. GET /api/products/featured
func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.FeaturedList(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, products)
}

// Get returns one product. GET /api/products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.svc.Get(r, chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, product)
}

// Create adds a product. POST /api/products (admin)
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.svc.Create(r, in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Created(w, product)
}

// Update merges the provided fields into a product. PUT /api/products/{id} (admin)
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductUpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.svc.Update(r, chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, product)
}

// Delete removes a product. DELETE /api/products/{id} (admin)
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r, chi.URLParam(r, "id")); err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Message(w, "Product deleted successfully")
}
