package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/handler"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/handler/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	orderID    = uuid.MustParse("4f0c2c4e-3f7b-4a4e-9d3b-3e2f4b9a1c11")
	validOrder = entities.Order{
		ID:              orderID,
		OrderNumber:     "ORD202405170007",
		DriverRef:       "driver-1",
		VendorRef:       "vendor-1",
		TotalBillAmount: decimal.RequireFromString("25"),
		CollectedAmount: decimal.RequireFromString("20"),
		PendingAmount:   decimal.RequireFromString("5"),
		Status:          entities.StatusPending,
		IsActive:        true,
		Items: []entities.LineItem{
			{ProductRef: "P1", Quantity: 2, UnitPrice: decimal.RequireFromString("10"), LineTotal: decimal.RequireFromString("20")},
			{ProductRef: "P2", Quantity: 1, UnitPrice: decimal.RequireFromString("5"), LineTotal: decimal.RequireFromString("5")},
		},
	}
)

func serve(t *testing.T, svc *mocks.MockOrderService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc)

	r := chi.NewRouter()
	h.Init(r)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHTTPHandler_GetOrderByID(t *testing.T) {
	testCases := []struct {
		name         string
		id           string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			id:   orderID.String(),
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("GetOrderByID", mock.Anything, orderID).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"orderNumber":"ORD202405170007"`,
		},
		{
			name: "not found",
			id:   orderID.String(),
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("GetOrderByID", mock.Anything, orderID).Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:         "malformed id",
			id:           "not-a-uuid",
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `invalid order id`,
		},
		{
			name: "internal error",
			id:   orderID.String(),
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("GetOrderByID", mock.Anything, orderID).Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			rr := serve(t, svc, http.MethodGet, "/orders/"+tc.id, "")

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestHTTPHandler_GetOrderByID_Body(t *testing.T) {
	svc := mocks.NewMockOrderService(t)
	svc.On("GetOrderByID", mock.Anything, orderID).Return(validOrder, nil).Once()

	rr := serve(t, svc, http.MethodGet, "/orders/"+orderID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got handler.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, orderID.String(), got.ID)
	assert.Equal(t, 25.0, got.TotalBillAmount)
	assert.Equal(t, 5.0, got.PendingAmount)
	assert.Equal(t, "pending", got.Status)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, []string{}, got.Tags)
	assert.Nil(t, got.Location)
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	const body = `{
		"driverRef": "driver-1",
		"vendorRef": "vendor-1",
		"items": [
			{"productRef": "P1", "quantity": 2, "unitPrice": 10.00},
			{"productRef": "P2", "quantity": 1, "unitPrice": "5.00"}
		],
		"totalBillAmount": 25.00,
		"collectedAmount": 20.00,
		"tags": ["cold"]
	}`

	matchInput := mock.MatchedBy(func(in entities.NewOrder) bool {
		return in.DriverRef == "driver-1" &&
			len(in.Items) == 2 &&
			in.Items[1].UnitPrice != nil && in.Items[1].UnitPrice.Equal(decimal.RequireFromString("5")) &&
			in.DeclaredTotal.Equal(decimal.RequireFromString("25")) &&
			in.DeclaredCollected.Equal(decimal.RequireFromString("20"))
	})

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "created",
			body: body,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("CreateOrder", mock.Anything, matchInput).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"pendingAmount":5`,
		},
		{
			name: "amount mismatch",
			body: body,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("CreateOrder", mock.Anything, matchInput).
					Return(entities.Order{}, fmt.Errorf("%w: declared 25.00, computed 30.00", entities.ErrAmountMismatch)).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `declared total does not match line items: declared 25.00, computed 30.00`,
		},
		{
			name: "over collection",
			body: body,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("CreateOrder", mock.Anything, matchInput).Return(entities.Order{}, entities.ErrOverCollection).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "number conflict",
			body: body,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("CreateOrder", mock.Anything, matchInput).Return(entities.Order{}, entities.ErrConflict).Once()
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:         "empty items",
			body:         `{"driverRef":"d","vendorRef":"v","items":[],"totalBillAmount":0}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"items":"min"`,
		},
		{
			name:         "zero quantity",
			body:         `{"driverRef":"d","vendorRef":"v","items":[{"productRef":"P1","quantity":0}]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"quantity":"gt"`,
		},
		{
			name:         "unknown field",
			body:         `{"driverRef":"d","vendorRef":"v","driverName":"x"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `invalid json body`,
		},
		{
			name:         "broken json",
			body:         `{"driverRef":`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			rr := serve(t, svc, http.MethodPost, "/orders", tc.body)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestHTTPHandler_Mutations(t *testing.T) {
	base := "/orders/" + orderID.String()

	testCases := []struct {
		name         string
		method       string
		target       string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:   "status changed",
			method: http.MethodPatch,
			target: base + "/status",
			body:   `{"status":"in_progress"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				o := validOrder
				o.Status = entities.StatusInProgress
				svc.On("UpdateStatus", mock.Anything, orderID, entities.StatusInProgress).Return(o, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"in_progress"`,
		},
		{
			name:   "illegal transition",
			method: http.MethodPatch,
			target: base + "/status",
			body:   `{"status":"in_progress"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("UpdateStatus", mock.Anything, orderID, entities.StatusInProgress).
					Return(entities.Order{}, fmt.Errorf("%w: cannot transition from completed to in_progress", entities.ErrIllegalTransition)).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `cannot transition from completed to in_progress`,
		},
		{
			name:         "unknown status",
			method:       http.MethodPatch,
			target:       base + "/status",
			body:         `{"status":"lost"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"status":"oneof"`,
		},
		{
			name:   "over collection",
			method: http.MethodPatch,
			target: base + "/payment",
			body:   `{"collectedAmount":26}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("UpdatePayment", mock.Anything, orderID, mock.Anything, (*entities.PaymentInfo)(nil)).
					Return(entities.Order{}, entities.ErrOverCollection).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "delivery updated",
			method: http.MethodPatch,
			target: base + "/delivery",
			body:   `{"address":"Main st. 1","contactPhone":"+100"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("UpdateDeliveryInfo", mock.Anything, orderID, entities.DeliveryInfo{Address: "Main st. 1", ContactPhone: "+100"}).
					Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "location updated",
			method: http.MethodPatch,
			target: base + "/location",
			body:   `{"latitude":55.75,"longitude":37.61}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("UpdateLocation", mock.Anything, orderID, 55.75, 37.61).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "latitude out of range",
			method:       http.MethodPatch,
			target:       base + "/location",
			body:         `{"latitude":91,"longitude":0}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"latitude":"lte"`,
		},
		{
			name:         "missing longitude",
			method:       http.MethodPatch,
			target:       base + "/location",
			body:         `{"latitude":10}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"longitude":"required"`,
		},
		{
			name:   "partial update",
			method: http.MethodPatch,
			target: base,
			body:   `{"isUrgent":true,"tags":["cold"]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("UpdateOrder", mock.Anything, orderID, mock.MatchedBy(func(u entities.OrderUpdate) bool {
					return u.IsUrgent != nil && *u.IsUrgent && len(u.Tags) == 1 && u.Status == nil
				})).Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "removed",
			method: http.MethodDelete,
			target: base,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("RemoveOrder", mock.Anything, orderID).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "remove non pending",
			method: http.MethodDelete,
			target: base,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("RemoveOrder", mock.Anything, orderID).
					Return(fmt.Errorf("%w: only pending orders can be removed", entities.ErrValidation)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `only pending orders can be removed`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			rr := serve(t, svc, tc.method, tc.target, tc.body)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestHTTPHandler_Listings(t *testing.T) {
	page := entities.NewPage([]entities.Order{validOrder}, 5, 1, 2)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(2024, 5, 31, 23, 59, 59, 999999999, time.UTC)

	testCases := []struct {
		name         string
		target       string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:   "search",
			target: "/orders?status=pending&sortBy=createdAt&sortOrder=ASC&page=1&limit=2&isUrgent=false&tags=a,b&minAmount=10.5",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("SearchOrders", mock.Anything, mock.MatchedBy(func(q entities.OrderQuery) bool {
					return q.Status == entities.StatusPending &&
						q.SortBy == entities.SortByCreatedAt &&
						q.SortOrder == entities.SortAsc &&
						q.Page == 1 && q.PageSize == 2 &&
						q.IsUrgent != nil && !*q.IsUrgent &&
						len(q.Tags) == 2 &&
						q.MinAmount != nil && q.MinAmount.Equal(decimal.RequireFromString("10.5"))
				})).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":5,"page":1,"limit":2,"totalPages":3,"hasNext":true,"hasPrev":false`,
		},
		{
			name:   "search with unknown sort",
			target: "/orders?sortBy=vendorName",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("SearchOrders", mock.Anything, mock.Anything).
					Return(entities.Page[entities.Order]{}, fmt.Errorf("%w: unknown sort field", entities.ErrValidation)).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "search with bad page",
			target:       "/orders?page=first",
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `invalid page`,
		},
		{
			name:   "pending",
			target: "/orders/pending?page=1&limit=2",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("ListPending", mock.Anything, 1, 2).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"data":[{"id":"` + orderID.String(),
		},
		{
			name:   "urgent",
			target: "/orders/urgent",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("ListUrgent", mock.Anything, 0, 0).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "by driver",
			target: "/orders/by-driver/driver-1?limit=2",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("ListByDriver", mock.Anything, "driver-1", 0, 2).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "by status",
			target: "/orders/by-status/completed",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("ListByStatus", mock.Anything, entities.StatusCompleted, 0, 0).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "by date",
			target: "/orders/by-date?from=2024-05-01&to=2024-05-31",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("ListByDateRange", mock.Anything, from, endOfDay, 0, 0).Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "by date without end",
			target:       "/orders/by-date?from=2024-05-01",
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `from and to are required`,
		},
		{
			name:   "revenue",
			target: "/orders/revenue?from=2024-05-01T00:00:00Z&to=2024-05-31",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("RevenueInRange", mock.Anything, from, endOfDay).Return(entities.Revenue{
					TotalRevenue:      decimal.RequireFromString("100"),
					OrderCount:        3,
					AverageOrderValue: decimal.RequireFromString("33.33"),
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"totalRevenue":100,"orderCount":3,"averageOrderValue":33.33}`,
		},
		{
			name:   "stats",
			target: "/orders/stats?from=2024-05-01&to=2024-05-31",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.On("StatusBreakdown", mock.Anything, from, endOfDay).Return([]entities.StatusSummary{
					{Status: entities.StatusPending, OrderCount: 2, TotalBillAmount: decimal.RequireFromString("50")},
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"pending","orderCount":2,"totalBillAmount":50`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			rr := serve(t, svc, http.MethodGet, tc.target, "")

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}
