package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-resto-orders/internal/orders"
)

const itemsPerPage = 30

type Repo struct{ DB *pgxpool.Pool }

type CreateCategoryInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	DisplayOrder int      `json:"display_order"`
	Type         MenuType `json:"type"`
}

func (in *CreateCategoryInput) Validate() error {
	if in.Name == "" {
		return &orders.ValidationError{Field: "name", Reason: "required"}
	}
	if in.DisplayOrder < 0 {
		return &orders.ValidationError{Field: "display_order", Reason: "must be >= 0"}
	}
	switch in.Type {
	case TypeFood, TypeWine, TypeCocktail:
		return nil
	default:
		return &orders.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown menu type %q", in.Type)}
	}
}

func (r *Repo) CreateCategory(ctx context.Context, in CreateCategoryInput) (*Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &Category{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Slug:         Slugify(in.Name),
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		Type:         in.Type,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO categories(id, name, slug, description, display_order, type)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, c.ID, c.Name, c.Slug, c.Description, c.DisplayOrder, c.Type).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, slug, description, display_order, type, created_at
		FROM categories ORDER BY display_order, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.DisplayOrder, &c.Type, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return orders.ErrNotFound
	}
	return nil
}

type CreateItemInput struct {
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Image           string `json:"image"`
	Available       bool   `json:"available"`
	Featured        bool   `json:"featured"`
	IsSpicy         bool   `json:"is_spicy"`
	IsVegetarian    bool   `json:"is_vegetarian"`
	IsVegan         bool   `json:"is_vegan"`
	GlutenFree      bool   `json:"gluten_free"`
	PreparationTime *int   `json:"preparation_time,omitempty"`
}

func (in *CreateItemInput) price() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(in.Price)
	if err != nil {
		return decimal.Zero, &orders.ValidationError{Field: "price", Reason: "malformed decimal"}
	}
	if !p.IsPositive() {
		return decimal.Zero, &orders.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	return p, nil
}

func (r *Repo) CreateItem(ctx context.Context, in CreateItemInput) (*Item, error) {
	if in.Name == "" {
		return nil, &orders.ValidationError{Field: "name", Reason: "required"}
	}
	if in.CategoryID == "" {
		return nil, &orders.ValidationError{Field: "category_id", Reason: "required"}
	}
	price, err := in.price()
	if err != nil {
		return nil, err
	}

	it := &Item{
		ID:              uuid.NewString(),
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           price,
		Image:           in.Image,
		Available:       in.Available,
		Featured:        in.Featured,
		IsSpicy:         in.IsSpicy,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		GlutenFree:      in.GlutenFree,
		PreparationTime: in.PreparationTime,
	}
	err = r.DB.QueryRow(ctx, `
		INSERT INTO menu_items(id, category_id, name, description, price, image,
		                       available, featured, is_spicy, is_vegetarian, is_vegan,
		                       gluten_free, preparation_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, it.ID, it.CategoryID, it.Name, it.Description, it.Price.String(), it.Image,
		it.Available, it.Featured, it.IsSpicy, it.IsVegetarian, it.IsVegan,
		it.GlutenFree, it.PreparationTime).Scan(&it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ListItems pages newest-first by (created_at, id) cursor.
func (r *Repo) ListItems(ctx context.Context, cursor string) (items []Item, nextCursor string, err error) {
	q := `
		SELECT mi.id, mi.category_id, c.name, mi.name, mi.description, mi.price::text,
		       mi.image, mi.available, mi.featured, mi.is_spicy, mi.is_vegetarian,
		       mi.is_vegan, mi.gluten_free, mi.preparation_time, mi.created_at
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id`
	args := []any{}
	if cursor != "" {
		q += `
		WHERE (mi.created_at, mi.id) < (SELECT created_at, id FROM menu_items WHERE id = $1)`
		args = append(args, cursor)
	}
	q += fmt.Sprintf(`
		ORDER BY mi.created_at DESC, mi.id DESC
		LIMIT %d`, itemsPerPage)

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, "", err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	if len(items) == itemsPerPage {
		nextCursor = items[len(items)-1].ID
	}
	return items, nextCursor, nil
}

func (r *Repo) ListAvailableByCategorySlug(ctx context.Context, slug string) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT mi.id, mi.category_id, c.name, mi.name, mi.description, mi.price::text,
		       mi.image, mi.available, mi.featured, mi.is_spicy, mi.is_vegetarian,
		       mi.is_vegan, mi.gluten_free, mi.preparation_time, mi.created_at
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE c.slug = $1 AND mi.available
		ORDER BY mi.name
	`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

type UpdateItemInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

func (r *Repo) UpdateItem(ctx context.Context, id string, in UpdateItemInput) error {
	var price *string
	if in.Price != nil {
		p, err := decimal.NewFromString(*in.Price)
		if err != nil || !p.IsPositive() {
			return &orders.ValidationError{Field: "price", Reason: "must be a positive decimal"}
		}
		s := p.String()
		price = &s
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE menu_items SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4::numeric, price),
			image       = COALESCE($5, image),
			available   = COALESCE($6, available),
			featured    = COALESCE($7, featured)
		WHERE id = $1
	`, id, in.Name, in.Description, price, in.Image, in.Available, in.Featured)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return orders.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteItem(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return orders.ErrNotFound
	}
	return nil
}

func scanItem(rows pgx.Rows) (*Item, error) {
	var (
		it       Item
		priceRaw string
	)
	if err := rows.Scan(&it.ID, &it.CategoryID, &it.CategoryName, &it.Name, &it.Description,
		&priceRaw, &it.Image, &it.Available, &it.Featured, &it.IsSpicy, &it.IsVegetarian,
		&it.IsVegan, &it.GlutenFree, &it.PreparationTime, &it.CreatedAt); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, err
	}
	it.Price = p
	return &it, nil
}
