package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/model"
)

const productColumns = `id, restaurant_id, name, description, category, price, stock, is_available`

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   pgtype.Numeric
	)
	err := row.Scan(
		&product.ID,
		&product.RestaurantID,
		&product.Name,
		&product.Description,
		&product.Category,
		&price,
		&product.Stock,
		&product.IsAvailable,
	)
	if err != nil {
		return model.Product{}, err
	}
	product.Price = decimalFromNumeric(price)
	return product, nil
}

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (model.Product, error) {
	row := q.pool.QueryRow(
		c,
		`select `+productColumns+` from products where id = $1`,
		id,
	)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed finding product by id with error=%w", err)
	}
	return product, nil
}

func (q *Queries) FindProductsByRestaurantId(
	c context.Context,
	restaurantId uuid.UUID,
) ([]model.Product, error) {
	rows, err := q.pool.Query(
		c,
		`select `+productColumns+` from products
		 where restaurant_id = $1
		 order by category, name`,
		restaurantId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed finding products by restaurantId with error=%w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed scanning product with error=%w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (q *Queries) InsertProduct(c context.Context, product model.Product) (model.Product, error) {
	row := q.pool.QueryRow(
		c,
		`insert into products (id, restaurant_id, name, description, category, price, stock, is_available)
		 values ($1, $2, $3, $4, $5, $6, $7, $8)
		 returning `+productColumns,
		product.ID,
		product.RestaurantID,
		product.Name,
		product.Description,
		product.Category,
		numericFromDecimal(product.Price),
		product.Stock,
		product.IsAvailable,
	)
	inserted, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed inserting product with error=%w", err)
	}
	return inserted, nil
}

func (q *Queries) UpdateProduct(c context.Context, product model.Product) (model.Product, error) {
	row := q.pool.QueryRow(
		c,
		`update products
		 set name = $2, description = $3, category = $4, price = $5, stock = $6,
		     is_available = $7, updated_at = now()
		 where id = $1
		 returning `+productColumns,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		numericFromDecimal(product.Price),
		product.Stock,
		product.IsAvailable,
	)
	updated, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed updating product with error=%w", err)
	}
	return updated, nil
}

// UpdateProductStock adjusts stock by delta and keeps is_available in sync
// with the resulting stock, mirroring how vendors restock items.
func (q *Queries) UpdateProductStock(
	c context.Context,
	id uuid.UUID,
	delta int32,
) (model.Product, error) {
	row := q.pool.QueryRow(
		c,
		`update products
		 set stock = stock + $2, is_available = stock + $2 > 0, updated_at = now()
		 where id = $1
		 returning `+productColumns,
		id,
		delta,
	)
	updated, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed updating product stock with error=%w", err)
	}
	return updated, nil
}

func (q *Queries) UpdateProductAvailability(
	c context.Context,
	id uuid.UUID,
	isAvailable bool,
) (model.Product, error) {
	row := q.pool.QueryRow(
		c,
		`update products set is_available = $2, updated_at = now()
		 where id = $1
		 returning `+productColumns,
		id,
		isAvailable,
	)
	updated, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, inErrors.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf(
			"failed updating product availability with error=%w",
			err,
		)
	}
	return updated, nil
}
