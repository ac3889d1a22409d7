package controllers

import (
	"github.com/ordena/ordena/app/realtime"
	"github.com/ordena/ordena/app/resources"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/middleware"
	"github.com/ordena/ordena/pkg/resource"
	"github.com/ordena/ordena/pkg/response"
	"github.com/ordena/ordena/pkg/session"
	"github.com/ordena/ordena/pkg/sse"
)

type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

type OrderController struct {
	orders   *services.OrderService
	checkout *services.CheckoutService
}

func NewOrderController(checkout *services.CheckoutService) *OrderController {
	return &OrderController{
		orders:   services.NewOrderService(),
		checkout: checkout,
	}
}

// Index lists the caller's orders; staff see every order.
func (oc *OrderController) Index(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)
	page, limit := pageParams(c)

	orders, pagination, err := oc.orders.List(userID, role, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Paginated(c.W, orders, pagination)
}

// Show returns one order with its items.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)

	order, err := oc.orders.Find(id, userID, role)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.OrderResource{}, order).Respond(c.W)
}

// Checkout turns the session's cart into an order.
func (oc *OrderController) Checkout(c *ctx.Context) {
	userID, _ := middleware.UserIDFromCtx(c.R)
	sess := session.FromCtx(c.R)

	order, err := oc.checkout.Checkout(c.Context(), sess.ID(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// Events streams the order's status over SSE until it is delivered or
// the client disconnects.
func (oc *OrderController) Events(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromCtx(c.R)
	role, _ := middleware.RoleFromCtx(c.R)

	order, err := oc.orders.Find(id, userID, role)
	if err != nil {
		fail(c, err)
		return
	}

	stream := sse.New(c.W, c.R)
	realtime.StreamOrderStatus(stream, order.ID, order.Status)
}

// ChangeStatus advances an order's status. Staff only.
func (oc *OrderController) ChangeStatus(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var in StatusInput
	if !c.BindJSON(&in) {
		return
	}

	role, _ := middleware.RoleFromCtx(c.R)
	order, err := oc.orders.ChangeStatus(id, in.Status, role)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
