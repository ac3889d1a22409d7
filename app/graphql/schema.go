// Package graphql exposes a read-only query surface over the catalog and
// orders. Mutations stay on the REST API.
package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	gql "github.com/ordena/ordena/pkg/graphql"
	"github.com/ordena/ordena/pkg/middleware"
	"github.com/ordena/ordena/pkg/response"
)

type roleCtxKey struct{}

var errStaffOnly = errors.New("orders are only queryable by staff")

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"category":    &graphql.Field{Type: graphql.String},
		"active":      &graphql.Field{Type: graphql.Boolean},
	},
})

var orderItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderItem",
	Fields: graphql.Fields{
		"productId": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).ProductID, nil
		}},
		"name": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Name, nil
		}},
		"quantity": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).Quantity, nil
		}},
		"unitPrice": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.OrderItem).UnitPrice, nil
		}},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).ID, nil
		}},
		"userId": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).UserID, nil
		}},
		"status": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).Status, nil
		}},
		"total": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).Total, nil
		}},
		"items": &graphql.Field{Type: graphql.NewList(orderItemType), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(models.Order).Items, nil
		}},
	},
})

func rootQuery() *graphql.Object {
	products := repositories.NewProductRepository()
	orders := repositories.NewOrderRepository()

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["q"].(string)
					category, _ := p.Args["category"].(string)
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)

					list, _, err := products.List(repositories.ProductFilter{
						Search: search, Category: category, Page: page, Limit: limit,
					})
					return list, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return products.FindByID(uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.Categories()
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					role, _ := p.Context.Value(roleCtxKey{}).(string)
					if !models.IsStaff(role) {
						return nil, errStaffOnly
					}
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					list, _, err := orders.ListAll(page, limit)
					return list, err
				},
			},
		},
	})
}

// Handler builds the schema once and serves POST {"query": "..."} requests.
func Handler() http.HandlerFunc {
	schema, err := gql.NewSchema(rootQuery())

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "schema unavailable")
			return
		}

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
			response.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		role, _ := middleware.RoleFromCtx(r)
		reqCtx := context.WithValue(r.Context(), roleCtxKey{}, role)

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        reqCtx,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
