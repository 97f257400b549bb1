package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inErrors "github.com/arkandha/feastly/internal/errors"
	"github.com/arkandha/feastly/internal/log"
	"github.com/arkandha/feastly/internal/model"
)

// OrderSummary is a history row: one order joined with its restaurant name
// and the number of lines it contains.
type OrderSummary struct {
	ID             uuid.UUID       `json:"id"`
	RestaurantID   uuid.UUID       `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         model.OrderStatus `json:"status"`
	OrderDate      time.Time       `json:"orderDate"`
	ItemCount      int64           `json:"itemCount"`
}

// CreateOrder persists the order and its items in one transaction. On any
// failure nothing is visible: the transaction rolls back as a whole.
func (q *Queries) CreateOrder(c context.Context, order model.Order) (model.Order, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Queries CreateOrder").
		Str(log.KeyOrderID, order.ID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := q.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func() {
		lg := logger.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		err := tx.Rollback(c)
		if err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			lg.Error().Err(err).Msg(err.Error())
			return
		}
		lg.Info().Msg("rolled back transaction")
	}()

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	_, err = tx.Exec(
		c,
		`insert into orders (id, customer_id, restaurant_id, total_amount, delivery_address,
		                     payment_method, status, order_date, delivery_date)
		 values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID,
		order.CustomerID,
		order.RestaurantID,
		numericFromDecimal(order.TotalAmount),
		order.DeliveryAddress,
		string(order.PaymentMethod),
		string(order.Status),
		order.OrderDate,
		order.DeliveryDate,
	)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting orderItems").Logger()
	logger.Info().Msg("inserting orderItems")
	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(
			`insert into order_items (id, order_id, product_id, product_name, unit_price, quantity)
			 values ($1, $2, $3, $4, $5, $6)`,
			uuid.New(),
			order.ID,
			item.ProductID,
			item.ProductName,
			numericFromDecimal(item.UnitPrice),
			item.Quantity,
		)
	}
	err = tx.SendBatch(c, batch).Close()
	if err != nil {
		err = fmt.Errorf("failed inserting orderItems with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msgf("inserted %d orderItems", len(order.Items))

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return model.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	return order, nil
}

const orderColumns = `id, customer_id, restaurant_id, total_amount, delivery_address,
	payment_method, status, order_date, delivery_date`

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		order         model.Order
		totalAmount   pgtype.Numeric
		paymentMethod string
		status        string
	)
	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.RestaurantID,
		&totalAmount,
		&order.DeliveryAddress,
		&paymentMethod,
		&status,
		&order.OrderDate,
		&order.DeliveryDate,
	)
	if err != nil {
		return model.Order{}, err
	}
	order.TotalAmount = decimalFromNumeric(totalAmount)
	order.PaymentMethod = model.PaymentMethod(paymentMethod)
	order.Status = model.OrderStatus(status)
	return order, nil
}

func (q *Queries) findOrderItems(c context.Context, orderId uuid.UUID) ([]model.OrderItem, error) {
	rows, err := q.pool.Query(
		c,
		`select product_id, product_name, unit_price, quantity
		 from order_items where order_id = $1
		 order by product_name`,
		orderId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed finding orderItems with error=%w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var (
			item  model.OrderItem
			price pgtype.Numeric
		)
		err := rows.Scan(&item.ProductID, &item.ProductName, &price, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed scanning orderItem with error=%w", err)
		}
		item.UnitPrice = decimalFromNumeric(price)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q *Queries) FindOrderById(c context.Context, id uuid.UUID) (model.Order, error) {
	row := q.pool.QueryRow(
		c,
		`select `+orderColumns+` from orders where id = $1`,
		id,
	)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, inErrors.ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("failed finding order by id with error=%w", err)
	}
	order.Items, err = q.findOrderItems(c, id)
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (q *Queries) FindOrdersByCustomerId(
	c context.Context,
	customerId uuid.UUID,
) ([]OrderSummary, error) {
	return q.findOrderSummaries(
		c,
		`select o.id, o.restaurant_id, r.name, o.total_amount, o.status, o.order_date,
		        (select count(*) from order_items oi where oi.order_id = o.id)
		 from orders o
		 join restaurants r on r.id = o.restaurant_id
		 where o.customer_id = $1
		 order by o.order_date desc`,
		customerId,
	)
}

func (q *Queries) FindOrdersByRestaurantId(
	c context.Context,
	restaurantId uuid.UUID,
) ([]OrderSummary, error) {
	return q.findOrderSummaries(
		c,
		`select o.id, o.restaurant_id, r.name, o.total_amount, o.status, o.order_date,
		        (select count(*) from order_items oi where oi.order_id = o.id)
		 from orders o
		 join restaurants r on r.id = o.restaurant_id
		 where o.restaurant_id = $1
		 order by o.order_date desc`,
		restaurantId,
	)
}

func (q *Queries) findOrderSummaries(
	c context.Context,
	query string,
	arg any,
) ([]OrderSummary, error) {
	rows, err := q.pool.Query(c, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed finding orders with error=%w", err)
	}
	defer rows.Close()

	summaries := []OrderSummary{}
	for rows.Next() {
		var (
			summary     OrderSummary
			totalAmount pgtype.Numeric
			status      string
		)
		err := rows.Scan(
			&summary.ID,
			&summary.RestaurantID,
			&summary.RestaurantName,
			&totalAmount,
			&status,
			&summary.OrderDate,
			&summary.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed scanning order summary with error=%w", err)
		}
		summary.TotalAmount = decimalFromNumeric(totalAmount)
		summary.Status = model.OrderStatus(status)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// UpdateOrderStatus persists a status change; deliveryDate is set only when
// the transition stamped one.
func (q *Queries) UpdateOrderStatus(
	c context.Context,
	id uuid.UUID,
	status model.OrderStatus,
	deliveryDate *time.Time,
) error {
	tag, err := q.pool.Exec(
		c,
		`update orders
		 set status = $2, delivery_date = coalesce($3, delivery_date), updated_at = now()
		 where id = $1`,
		id,
		string(status),
		deliveryDate,
	)
	if err != nil {
		return fmt.Errorf("failed updating order status with error=%w", err)
	}
	if tag.RowsAffected() == 0 {
		return inErrors.ErrOrderNotFound
	}
	return nil
}

// OrderStats aggregates the admin dashboard numbers. Cancelled orders count
// toward totals but not revenue.
func (q *Queries) OrderStats(c context.Context) (model.OrderStats, error) {
	stats := model.OrderStats{CountsByStatus: map[model.OrderStatus]int64{}}

	row := q.pool.QueryRow(
		c,
		`select count(*),
		        coalesce(sum(total_amount) filter (where status <> $1), 0)
		 from orders`,
		string(model.OrderStatusCancelled),
	)
	var revenue pgtype.Numeric
	if err := row.Scan(&stats.TotalOrders, &revenue); err != nil {
		return model.OrderStats{}, fmt.Errorf("failed aggregating orders with error=%w", err)
	}
	stats.TotalRevenue = decimalFromNumeric(revenue)

	rows, err := q.pool.Query(c, `select status, count(*) from orders group by status`)
	if err != nil {
		return model.OrderStats{}, fmt.Errorf("failed counting orders by status with error=%w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return model.OrderStats{}, fmt.Errorf(
				"failed scanning order status count with error=%w",
				err,
			)
		}
		stats.CountsByStatus[model.OrderStatus(status)] = count
	}
	return stats, rows.Err()
}
