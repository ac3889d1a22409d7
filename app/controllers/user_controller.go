package controllers

import (
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/response"
)

type UserController struct {
	users *services.UserService
}

func NewUserController() *UserController {
	return &UserController{users: services.NewUserService()}
}

// Index lists users. Admin only.
func (uc *UserController) Index(c *ctx.Context) {
	page, limit := pageParams(c)

	users, pagination, err := uc.users.List(page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Paginated(c.W, users, pagination)
}

// Show returns one user.
func (uc *UserController) Show(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Store creates a user.
func (uc *UserController) Store(c *ctx.Context) {
	var in services.UserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.users.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}

// Update replaces a user's fields; an empty password keeps the old one.
func (uc *UserController) Update(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var in services.UserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.users.Update(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Destroy deletes a user.
func (uc *UserController) Destroy(c *ctx.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := uc.users.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]uint{"deleted": id})
}
