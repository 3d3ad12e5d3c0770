package order

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tienda-backend/internal/config"
)

func TestQueryService_CourierList(t *testing.T) {
	const courier = uint(30)

	testCases := []struct {
		name      string
		req       CourierListRequest
		wantWhere string
		wantArgs  []driver.Value
	}{
		{
			name:      "filters on order status",
			req:       CourierListRequest{Status: "pagado"},
			wantWhere: "WHERE shipments.courier_id = \\? AND orders.status IN \\(\\?\\) ORDER BY orders.id DESC LIMIT \\?$",
			wantArgs:  []driver.Value{courier, "PAGADO", 20},
		},
		{
			name:      "several statuses",
			req:       CourierListRequest{Status: "ASIGNADO, EN_REPARTO"},
			wantWhere: "WHERE shipments.courier_id = \\? AND orders.status IN \\(\\?,\\?\\) ORDER BY orders.id DESC LIMIT \\?$",
			wantArgs:  []driver.Value{courier, "ASIGNADO", "EN_REPARTO", 20},
		},
		{
			name:      "shipment status is not an order status",
			req:       CourierListRequest{Status: "ENTREGADO"},
			wantWhere: "WHERE shipments.courier_id = \\? ORDER BY orders.id DESC LIMIT \\?$",
			wantArgs:  []driver.Value{courier, 20},
		},
		{
			name:      "page is clamped",
			req:       CourierListRequest{Limit: 500, Offset: 40},
			wantWhere: "WHERE shipments.courier_id = \\? ORDER BY orders.id DESC LIMIT \\? OFFSET \\?$",
			wantArgs:  []driver.Value{courier, 100, 40},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery("SELECT .* FROM `orders` JOIN users ON users.id = orders.user_id .*" + tc.wantWhere).
				WithArgs(tc.wantArgs...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "status", "shipment_status", "courier_id"}).
					AddRow(12, "PAGADO", "ENTREGADO", courier).
					AddRow(9, "PAGADO", "ENTREGADO", courier))

			rows, err := NewQueryService(db, &config.Config{}).CourierList(context.Background(), courier, &tc.req)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, uint(12), rows[0].ID)
			assert.Equal(t, OrderStatusPaid, rows[0].Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
