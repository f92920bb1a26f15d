package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"snapshop/internal/model"
	"snapshop/internal/validation"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockOrderRepo(t *testing.T) (OrderRepository, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewOrderRepository(mock, validation.New(), fixedID("o-new"), zerolog.Nop()), mock
}

func testOrder(id string, status model.OrderStatus, products ...string) model.Order {
	return model.Order{ID: id, BuyerEmail: "a@b.com", Products: products, Status: status}
}

func TestOrderRepository_List(t *testing.T) {
	ctx := context.Background()
	pending := model.OrderStatusPending

	tests := []struct {
		name   string
		filter model.OrderFilter
		query  string
		args   []any
	}{
		{
			name:   "No filters",
			filter: model.OrderFilter{Limit: 25},
			query:  `SELECT doc FROM orders ORDER BY id LIMIT \$1 OFFSET \$2`,
			args:   []any{25, 0},
		},
		{
			name:   "Product filter",
			filter: model.OrderFilter{Limit: 5, Offset: 5, ProductID: strPtr("p1")},
			query:  `SELECT doc FROM orders WHERE doc @> jsonb_build_object\('products', jsonb_build_array\(\$1::text\)\) ORDER BY id LIMIT \$2 OFFSET \$3`,
			args:   []any{"p1", 5, 5},
		},
		{
			name:   "Status filter",
			filter: model.OrderFilter{Limit: 25, Status: &pending},
			query:  `SELECT doc FROM orders WHERE doc @> jsonb_build_object\('status', \$1::text\) ORDER BY id LIMIT \$2 OFFSET \$3`,
			args:   []any{"PENDING", 25, 0},
		},
		{
			name:   "Both filters are combined with AND",
			filter: model.OrderFilter{Limit: 25, ProductID: strPtr("p1"), Status: &pending},
			query:  `SELECT doc FROM orders WHERE .*\$1::text.* AND .*\$2::text.* ORDER BY id LIMIT \$3 OFFSET \$4`,
			args:   []any{"p1", "PENDING", 25, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockOrderRepo(t)
			raw, err := json.Marshal(testOrder("o1", model.OrderStatusPending, "p1"))
			require.NoError(t, err)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(pgxmockv3.NewRows([]string{"doc"}).AddRow(raw))

			orders, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, "o1", orders[0].ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		raw, err := json.Marshal(testOrder("o1", model.OrderStatusCompleted, "p1", "p2"))
		require.NoError(t, err)
		mock.ExpectQuery("SELECT doc FROM orders WHERE id =").
			WithArgs("o1").
			WillReturnRows(pgxmockv3.NewRows([]string{"doc"}).AddRow(raw))

		o, err := repo.GetByID(ctx, "o1")
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, []string{"p1", "p2"}, o.Products)
		assert.Equal(t, model.OrderStatusCompleted, o.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		mock.ExpectQuery("SELECT doc FROM orders WHERE id =").
			WithArgs("o1").
			WillReturnError(pgx.ErrNoRows)

		o, err := repo.GetByID(ctx, "o1")
		assert.NoError(t, err)
		assert.Nil(t, o)
	})
}

func TestOrderRepository_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults status to CREATED", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		mock.ExpectExec("INSERT INTO orders").
			WithArgs("o-new", pgxmockv3.AnyArg()).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

		o := model.Order{BuyerEmail: "a@b.com", Products: []string{"p1"}}
		require.NoError(t, repo.Insert(ctx, &o))
		assert.Equal(t, "o-new", o.ID)
		assert.Equal(t, model.OrderStatusCreated, o.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejects unknown status", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)

		o := model.Order{BuyerEmail: "a@b.com", Products: []string{"p1"}, Status: "BOGUS"}
		err := repo.Insert(ctx, &o)

		var ve *model.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "status")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejects missing products", func(t *testing.T) {
		repo, _ := newMockOrderRepo(t)

		o := model.Order{BuyerEmail: "a@b.com"}
		err := repo.Insert(ctx, &o)
		assert.True(t, model.IsValidation(err))
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		mock.ExpectExec("INSERT INTO orders").
			WithArgs("o-new", pgxmockv3.AnyArg()).
			WillReturnError(errors.New("disk full"))

		o := model.Order{BuyerEmail: "a@b.com", Products: []string{"p1"}}
		err := repo.Insert(ctx, &o)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert order")
	})
}

func TestOrderRepository_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("Bogus status fails validation", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)

		o := testOrder("o1", "BOGUS", "p1")
		err := repo.Replace(ctx, &o)
		assert.True(t, model.IsValidation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing order", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		mock.ExpectExec("UPDATE orders SET doc").
			WithArgs("o1", pgxmockv3.AnyArg()).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

		o := testOrder("o1", model.OrderStatusPending, "p1")
		assert.ErrorIs(t, repo.Replace(ctx, &o), model.ErrNotFound)
	})

	t.Run("Any status may follow any other", func(t *testing.T) {
		repo, mock := newMockOrderRepo(t)
		mock.ExpectExec("UPDATE orders SET doc").
			WithArgs("o1", pgxmockv3.AnyArg()).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

		o := testOrder("o1", model.OrderStatusCreated, "p1")
		assert.NoError(t, repo.Replace(ctx, &o))
	})
}

func TestOrderRepository_Delete(t *testing.T) {
	repo, mock := newMockOrderRepo(t)
	mock.ExpectExec("DELETE FROM orders WHERE id =").
		WithArgs("missing").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
