package controllers

import (
	"net/http"
	"strconv"

	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/app/resources"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/resource"
	"github.com/ordena/ordena/pkg/response"
)

// maxImageBytes caps product image uploads at 8 MB.
const maxImageBytes = 8 << 20

type ProductController struct {
	products *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{products: services.NewProductService()}
}

// Index lists the catalog with search, category and price filters.
func (pc *ProductController) Index(c *ctx.Context) {
	page, limit := pageParams(c)
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	filter := repositories.ProductFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		Limit:    limit,
	}

	products, pagination, err := pc.products.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Paginated(c.W, products, pagination)
}

// Categories lists the distinct category names.
func (pc *ProductController) Categories(c *ctx.Context) {
	categories, err := pc.products.Categories()
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(categories)
}

// Show returns one product.
func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	product, err := pc.products.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.ProductResource{}, product).Respond(c.W)
}

// Store creates a product. Staff only.
func (pc *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.products.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(product)
}

// Update replaces a product's fields. Staff only.
func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := pc.products.Update(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Destroy deletes a product. Admin only.
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := pc.products.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]uint{"deleted": id})
}

// UploadImage stores a multipart "image" file on the configured disk.
func (pc *ProductController) UploadImage(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxImageBytes)
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	url, err := pc.products.AttachImage(id, header.Filename, file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"url": url})
}
