package controllers

import (
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/session"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" validate:"required,gte=1"`
	Quantity  int  `json:"quantity"`
}

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// sessionID pins the session so its cookie reaches the client, then
// returns the ID the cart is keyed by.
func (cc *CartController) sessionID(c *ctx.Context) string {
	sess := session.FromCtx(c.R)
	sess.Set("cart_active", true)
	if err := sess.Save(c.W); err != nil {
		logger.Warn("cart: save session", "error", err)
	}
	return sess.ID()
}

// Show returns the cart with totals.
func (cc *CartController) Show(c *ctx.Context) {
	view, err := cc.carts.View(cc.sessionID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Add puts a product into the cart, merging quantities.
func (cc *CartController) Add(c *ctx.Context) {
	var in CartItemInput
	if !c.BindJSON(&in) {
		return
	}

	view, err := cc.carts.Add(cc.sessionID(c), in.ProductID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// UpdateItem replaces a line's quantity; zero or less removes the line.
func (cc *CartController) UpdateItem(c *ctx.Context) {
	productID, ok := paramUint(c, "productID")
	if !ok {
		return
	}

	var in struct {
		Quantity int `json:"quantity"`
	}
	if !c.BindJSON(&in) {
		return
	}

	view, err := cc.carts.UpdateQuantity(cc.sessionID(c), productID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Remove deletes a line from the cart.
func (cc *CartController) Remove(c *ctx.Context) {
	productID, ok := paramUint(c, "productID")
	if !ok {
		return
	}

	view, err := cc.carts.Remove(cc.sessionID(c), productID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Clear empties the cart.
func (cc *CartController) Clear(c *ctx.Context) {
	if err := cc.carts.Clear(cc.sessionID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"cleared": true})
}
