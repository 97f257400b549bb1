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

const restaurantColumns = `id, name, address, phone, cuisine, rating, delivery_fee, is_active`

func scanRestaurant(row pgx.Row) (model.Restaurant, error) {
	var (
		restaurant  model.Restaurant
		deliveryFee pgtype.Numeric
	)
	err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.Phone,
		&restaurant.Cuisine,
		&restaurant.Rating,
		&deliveryFee,
		&restaurant.IsActive,
	)
	if err != nil {
		return model.Restaurant{}, err
	}
	restaurant.DeliveryFee = decimalFromNumeric(deliveryFee)
	return restaurant, nil
}

func (q *Queries) FindRestaurantById(c context.Context, id uuid.UUID) (model.Restaurant, error) {
	row := q.pool.QueryRow(
		c,
		`select `+restaurantColumns+` from restaurants where id = $1`,
		id,
	)
	restaurant, err := scanRestaurant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Restaurant{}, inErrors.ErrRestaurantNotFound
	}
	if err != nil {
		return model.Restaurant{}, fmt.Errorf(
			"failed finding restaurant by id with error=%w",
			err,
		)
	}
	return restaurant, nil
}

// FindRestaurants lists active restaurants best rated first, optionally
// filtered by a name search term and a minimum rating.
func (q *Queries) FindRestaurants(
	c context.Context,
	searchTerm string,
	minRating float64,
) ([]model.Restaurant, error) {
	rows, err := q.pool.Query(
		c,
		`select `+restaurantColumns+` from restaurants
		 where is_active
		   and ($1 = '' or name ilike '%' || $1 || '%')
		   and rating >= $2
		 order by rating desc, name`,
		searchTerm,
		minRating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed finding restaurants with error=%w", err)
	}
	defer rows.Close()

	restaurants := []model.Restaurant{}
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed scanning restaurant with error=%w", err)
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (q *Queries) InsertRestaurant(
	c context.Context,
	restaurant model.Restaurant,
) (model.Restaurant, error) {
	row := q.pool.QueryRow(
		c,
		`insert into restaurants (id, name, address, phone, cuisine, rating, delivery_fee, is_active)
		 values ($1, $2, $3, $4, $5, $6, $7, $8)
		 returning `+restaurantColumns,
		restaurant.ID,
		restaurant.Name,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Cuisine,
		restaurant.Rating,
		numericFromDecimal(restaurant.DeliveryFee),
		restaurant.IsActive,
	)
	inserted, err := scanRestaurant(row)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("failed inserting restaurant with error=%w", err)
	}
	return inserted, nil
}

func (q *Queries) UpdateRestaurant(
	c context.Context,
	restaurant model.Restaurant,
) (model.Restaurant, error) {
	row := q.pool.QueryRow(
		c,
		`update restaurants
		 set name = $2, address = $3, phone = $4, cuisine = $5, rating = $6,
		     delivery_fee = $7, is_active = $8, updated_at = now()
		 where id = $1
		 returning `+restaurantColumns,
		restaurant.ID,
		restaurant.Name,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Cuisine,
		restaurant.Rating,
		numericFromDecimal(restaurant.DeliveryFee),
		restaurant.IsActive,
	)
	updated, err := scanRestaurant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Restaurant{}, inErrors.ErrRestaurantNotFound
	}
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("failed updating restaurant with error=%w", err)
	}
	return updated, nil
}
