package datasource

import (
	"github.com/gabpaderog/maxicoffee-admin/internal/mirror"
	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
)

// The constructors below bind each catalog entity to its resource path,
// mirror key and the grid columns the admin UI filters and sorts on.

func Products(rc *remote.Client, ms mirror.Store) *DataSource[models.Product] {
	return New(rc, ms, Config[models.Product]{
		Resource:  "/products",
		MirrorKey: "products-store",
		ID:        func(p models.Product) int { return p.ID },
		SetID:     func(p *models.Product, id int) { p.ID = id },
		Field: func(p models.Product, name string) any {
			switch name {
			case "id":
				return p.ID
			case "name":
				return p.Name
			case "category":
				return p.Category.Name
			case "price":
				return p.BasePrice
			case "status":
				return p.Status()
			case "createdAt":
				return p.CreatedAt
			}
			return nil
		},
		Validate: func(p models.Product) models.FieldErrors {
			errs := checkStruct(p)
			if errs == nil {
				errs = models.FieldErrors{}
			}
			if p.Category.Name == "" && p.Category.ID == 0 {
				errs["category"] = "Category is required"
			}
			if errs.Ok() {
				return nil
			}
			return errs
		},
	})
}

func Categories(rc *remote.Client, ms mirror.Store) *DataSource[models.Category] {
	return New(rc, ms, Config[models.Category]{
		Resource:  "/categories",
		MirrorKey: "categories-store",
		ID:        func(c models.Category) int { return c.ID },
		SetID:     func(c *models.Category, id int) { c.ID = id },
		Field: func(c models.Category, name string) any {
			switch name {
			case "id":
				return c.ID
			case "name":
				return c.Name
			case "createdAt":
				return c.CreatedAt
			}
			return nil
		},
		Validate: func(c models.Category) models.FieldErrors {
			return checkStruct(c)
		},
	})
}

func Addons(rc *remote.Client, ms mirror.Store) *DataSource[models.Addon] {
	return New(rc, ms, Config[models.Addon]{
		Resource:  "/addons",
		MirrorKey: "addons-store",
		ID:        func(a models.Addon) int { return a.ID },
		SetID:     func(a *models.Addon, id int) { a.ID = id },
		Field: func(a models.Addon, name string) any {
			switch name {
			case "id":
				return a.ID
			case "name":
				return a.Name
			case "price":
				return a.Price
			case "isGlobal":
				return a.IsGlobal
			case "available":
				return a.Available
			}
			return nil
		},
		Validate: func(a models.Addon) models.FieldErrors {
			return checkStruct(a)
		},
	})
}

func Discounts(rc *remote.Client, ms mirror.Store) *DataSource[models.Discount] {
	return New(rc, ms, Config[models.Discount]{
		Resource:  "/discounts",
		MirrorKey: "discounts-store",
		ID:        func(d models.Discount) int { return d.ID },
		SetID:     func(d *models.Discount, id int) { d.ID = id },
		Field: func(d models.Discount, name string) any {
			switch name {
			case "id":
				return d.ID
			case "name":
				return d.Name
			case "percentage":
				return d.Percentage
			case "requiresVerification":
				return d.RequiresVerification
			}
			return nil
		},
		Validate: func(d models.Discount) models.FieldErrors {
			return checkStruct(d)
		},
	})
}

func Orders(rc *remote.Client, ms mirror.Store) *DataSource[models.Order] {
	return New(rc, ms, Config[models.Order]{
		Resource:  "/orders",
		MirrorKey: "orders-store",
		ID:        func(o models.Order) int { return o.ID },
		SetID:     func(o *models.Order, id int) { o.ID = id },
		Field: func(o models.Order, name string) any {
			switch name {
			case "id":
				return o.ID
			case "name":
				return o.User.Name
			case "status":
				return o.Status
			case "total":
				return o.Total
			case "date":
				return o.CreatedAt
			}
			return nil
		},
		Validate: func(o models.Order) models.FieldErrors {
			return checkStruct(o)
		},
	})
}
