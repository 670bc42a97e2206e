package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in entities.NewOrder) (entities.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (entities.Order, error)

	UpdateOrder(ctx context.Context, id uuid.UUID, upd entities.OrderUpdate) (entities.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.Status) (entities.Order, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, collected decimal.Decimal, payment *entities.PaymentInfo) (entities.Order, error)
	UpdateDeliveryInfo(ctx context.Context, id uuid.UUID, info entities.DeliveryInfo) (entities.Order, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) (entities.Order, error)
	RemoveOrder(ctx context.Context, id uuid.UUID) error

	SearchOrders(ctx context.Context, q entities.OrderQuery) (entities.Page[entities.Order], error)
	ListByDriver(ctx context.Context, driverRef string, page, pageSize int) (entities.Page[entities.Order], error)
	ListByVendor(ctx context.Context, vendorRef string, page, pageSize int) (entities.Page[entities.Order], error)
	ListByProduct(ctx context.Context, productRef string, page, pageSize int) (entities.Page[entities.Order], error)
	ListByStatus(ctx context.Context, status entities.Status, page, pageSize int) (entities.Page[entities.Order], error)
	ListPending(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error)
	ListInProgress(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error)
	ListCompleted(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error)
	ListUrgent(ctx context.Context, page, pageSize int) (entities.Page[entities.Order], error)
	ListByDateRange(ctx context.Context, from, to time.Time, page, pageSize int) (entities.Page[entities.Order], error)

	RevenueInRange(ctx context.Context, from, to time.Time) (entities.Revenue, error)
	StatusBreakdown(ctx context.Context, from, to time.Time) ([]entities.StatusSummary, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: newValidator(),
		svc:      svc,
	}
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.SearchOrders)

		r.Get("/pending", h.listFixed(h.svc.ListPending))
		r.Get("/in-progress", h.listFixed(h.svc.ListInProgress))
		r.Get("/completed", h.listFixed(h.svc.ListCompleted))
		r.Get("/urgent", h.listFixed(h.svc.ListUrgent))

		r.Get("/by-driver/{ref}", h.listByRef(h.svc.ListByDriver))
		r.Get("/by-vendor/{ref}", h.listByRef(h.svc.ListByVendor))
		r.Get("/by-product/{ref}", h.listByRef(h.svc.ListByProduct))
		r.Get("/by-status/{status}", h.ListByStatus)
		r.Get("/by-date", h.ListByDateRange)

		r.Get("/revenue", h.Revenue)
		r.Get("/stats", h.StatusBreakdown)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetOrderByID)
			r.Patch("/", h.UpdateOrder)
			r.Delete("/", h.RemoveOrder)

			r.Patch("/status", h.UpdateStatus)
			r.Patch("/payment", h.UpdatePayment)
			r.Patch("/delivery", h.UpdateDeliveryInfo)
			r.Patch("/location", h.UpdateLocation)
		})
	})
}

// CreateOrder создаёт заказ.
// @Summary      Создать заказ
// @Description  Сверяет заявленные суммы с позициями и сохраняет заказ в статусе pending
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      CreateOrderRequest  true  "Заказ"
// @Success      201    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      409    {object}  utils.ErrorResponse "Не удалось выдать номер заказа"
// @Failure      422    {object}  utils.ErrorResponse "Суммы не сходятся"
// @Failure      500    {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, CreateOrderJSONToEntity(req))
	if err != nil {
		h.writeError(ctx, w, err, "failed to create order")
		return
	}

	ordersCreated.WithLabelValues("http").Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ по ID
// @Description  Возвращает информацию о заказе по его уникальному идентификатору
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.GetOrderByID(ctx, id)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateOrder частично обновляет заказ.
// @Summary      Обновить заказ
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Идентификатор заказа"
// @Param        order  body      UpdateOrderRequest  true  "Изменяемые поля"
// @Success      200    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404    {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409    {object}  utils.ErrorResponse "Недопустимый переход статуса"
// @Failure      422    {object}  utils.ErrorResponse "Собрано больше суммы заказа"
// @Failure      500    {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [patch]
func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	h.mutate(w, r, &req, func(ctx context.Context, id uuid.UUID) (entities.Order, error) {
		return h.svc.UpdateOrder(ctx, id, UpdateOrderJSONToEntity(req))
	})
}

// UpdateStatus меняет статус заказа.
// @Summary      Сменить статус
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Идентификатор заказа"
// @Param        status  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200     {object}  Order
// @Failure      400     {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404     {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409     {object}  utils.ErrorResponse "Недопустимый переход статуса"
// @Failure      500     {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	h.mutate(w, r, &req, func(ctx context.Context, id uuid.UUID) (entities.Order, error) {
		order, err := h.svc.UpdateStatus(ctx, id, entities.Status(req.Status))
		if err == nil {
			statusTransitions.WithLabelValues(req.Status).Inc()
		}
		return order, err
	})
}

// UpdatePayment обновляет собранную сумму.
// @Summary      Обновить оплату
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Идентификатор заказа"
// @Param        payment  body      UpdatePaymentRequest  true  "Собранная сумма"
// @Success      200      {object}  Order
// @Failure      400      {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404      {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      422      {object}  utils.ErrorResponse "Собрано больше суммы заказа"
// @Failure      500      {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/payment [patch]
func (h *HTTPHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req UpdatePaymentRequest
	h.mutate(w, r, &req, func(ctx context.Context, id uuid.UUID) (entities.Order, error) {
		return h.svc.UpdatePayment(ctx, id, req.CollectedAmount, PaymentJSONToEntity(req.Payment))
	})
}

// UpdateDeliveryInfo заменяет информацию о доставке.
// @Summary      Обновить доставку
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id        path      string        true  "Идентификатор заказа"
// @Param        delivery  body      DeliveryInfo  true  "Информация о доставке"
// @Success      200       {object}  Order
// @Failure      400       {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404       {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500       {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/delivery [patch]
func (h *HTTPHandler) UpdateDeliveryInfo(w http.ResponseWriter, r *http.Request) {
	var req DeliveryInfo
	h.mutate(w, r, &req, func(ctx context.Context, id uuid.UUID) (entities.Order, error) {
		return h.svc.UpdateDeliveryInfo(ctx, id, *DeliveryJSONToEntity(&req))
	})
}

// UpdateLocation обновляет координаты заказа.
// @Summary      Обновить координаты
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id        path      string                 true  "Идентификатор заказа"
// @Param        location  body      UpdateLocationRequest  true  "Координаты"
// @Success      200       {object}  Order
// @Failure      400       {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404       {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500       {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/location [patch]
func (h *HTTPHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req UpdateLocationRequest
	h.mutate(w, r, &req, func(ctx context.Context, id uuid.UUID) (entities.Order, error) {
		return h.svc.UpdateLocation(ctx, id, *req.Latitude, *req.Longitude)
	})
}

// RemoveOrder помечает заказ удалённым.
// @Summary      Удалить заказ
// @Description  Удалить можно только заказ в статусе pending, запись остаётся в базе
// @Tags         orders
// @Param        id   path  string  true  "Идентификатор заказа"
// @Success      204
// @Failure      400  {object}  utils.ValidationErrorResponse "Заказ нельзя удалить"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [delete]
func (h *HTTPHandler) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.svc.RemoveOrder(ctx, id); err != nil {
		h.writeError(ctx, w, err, "failed to remove order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchOrders ищет заказы.
// @Summary      Поиск заказов
// @Description  Фильтрация, сортировка и пагинация
// @Tags         orders
// @Produce      json
// @Param        page        query     int     false  "Номер страницы"
// @Param        limit       query     int     false  "Размер страницы"
// @Param        search      query     string  false  "Часть номера заказа"
// @Param        driverRef   query     string  false  "Водитель"
// @Param        vendorRef   query     string  false  "Поставщик"
// @Param        productRef  query     string  false  "Товар"
// @Param        status      query     string  false  "Статус"
// @Param        isUrgent    query     bool    false  "Срочный"
// @Param        tags        query     string  false  "Теги через запятую"
// @Param        from        query     string  false  "Начало периода (RFC3339 или YYYY-MM-DD)"
// @Param        to          query     string  false  "Конец периода (RFC3339 или YYYY-MM-DD)"
// @Param        minAmount   query     number  false  "Минимальная сумма"
// @Param        maxAmount   query     number  false  "Максимальная сумма"
// @Param        sortBy      query     string  false  "Поле сортировки"
// @Param        sortOrder   query     string  false  "asc или desc"
// @Success      200         {object}  OrderList
// @Failure      400         {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500         {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseOrderQuery(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	page, err := h.svc.SearchOrders(ctx, q)
	if err != nil {
		h.writeError(ctx, w, err, "failed to search orders")
		return
	}

	utils.WriteJSON(w, PageEntityToJSON(page), http.StatusOK)
}

// ListByStatus заказы в статусе.
// @Summary      Заказы по статусу
// @Tags         orders
// @Produce      json
// @Param        status  path      string  true   "Статус"
// @Param        page    query     int     false  "Номер страницы"
// @Param        limit   query     int     false  "Размер страницы"
// @Success      200     {object}  OrderList
// @Failure      400     {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500     {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/by-status/{status} [get]
func (h *HTTPHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	h.listByRef(func(ctx context.Context, status string, page, limit int) (entities.Page[entities.Order], error) {
		return h.svc.ListByStatus(ctx, entities.Status(status), page, limit)
	})(w, r)
}

// ListByDateRange заказы за период.
// @Summary      Заказы за период
// @Tags         orders
// @Produce      json
// @Param        from   query     string  true   "Начало периода"
// @Param        to     query     string  true   "Конец периода"
// @Param        page   query     int     false  "Номер страницы"
// @Param        limit  query     int     false  "Размер страницы"
// @Success      200    {object}  OrderList
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500    {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/by-date [get]
func (h *HTTPHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := parseRange(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	page, limit, err := parsePagination(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.svc.ListByDateRange(ctx, from, to, page, limit)
	if err != nil {
		h.writeError(ctx, w, err, "failed to list orders")
		return
	}
	utils.WriteJSON(w, PageEntityToJSON(res), http.StatusOK)
}

// Revenue выручка за период.
// @Summary      Выручка за период
// @Tags         reports
// @Produce      json
// @Param        from  query     string  true  "Начало периода"
// @Param        to    query     string  true  "Конец периода"
// @Success      200   {object}  Revenue
// @Failure      400   {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500   {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/revenue [get]
func (h *HTTPHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := parseRange(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	revenue, err := h.svc.RevenueInRange(ctx, from, to)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get revenue")
		return
	}
	utils.WriteJSON(w, RevenueEntityToJSON(revenue), http.StatusOK)
}

// StatusBreakdown сводка по статусам за период.
// @Summary      Сводка по статусам
// @Tags         reports
// @Produce      json
// @Param        from  query     string  true  "Начало периода"
// @Param        to    query     string  true  "Конец периода"
// @Success      200   {array}   StatusSummary
// @Failure      400   {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500   {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/stats [get]
func (h *HTTPHandler) StatusBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := parseRange(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	summary, err := h.svc.StatusBreakdown(ctx, from, to)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get status breakdown")
		return
	}
	utils.WriteJSON(w, SummaryEntityToJSON(summary), http.StatusOK)
}

type listFunc func(ctx context.Context, page, limit int) (entities.Page[entities.Order], error)

type listByRefFunc func(ctx context.Context, ref string, page, limit int) (entities.Page[entities.Order], error)

// listFixed serves /orders/pending, /in-progress, /completed and /urgent.
func (h *HTTPHandler) listFixed(list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, limit, err := parsePagination(r)
		if err != nil {
			utils.WriteValidationError(w, err)
			return
		}

		res, err := list(ctx, page, limit)
		if err != nil {
			h.writeError(ctx, w, err, "failed to list orders")
			return
		}
		utils.WriteJSON(w, PageEntityToJSON(res), http.StatusOK)
	}
}

func (h *HTTPHandler) listByRef(list listByRefFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "ref")
		if ref == "" {
			ref = chi.URLParam(r, "status")
		}
		if err := h.validate.Var(ref, "required,max=64"); err != nil {
			utils.WriteValidationError(w, err)
			return
		}

		h.listFixed(func(ctx context.Context, page, limit int) (entities.Page[entities.Order], error) {
			return list(ctx, ref, page, limit)
		})(w, r)
	}
}

// mutate decodes and validates req, then runs fn for the order in the path.
func (h *HTTPHandler) mutate(w http.ResponseWriter, r *http.Request, req any, fn func(ctx context.Context, id uuid.UUID) (entities.Order, error)) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := utils.DecodeBody(r, req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := fn(ctx, id)
	if err != nil {
		h.writeError(ctx, w, err, "failed to update order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	kind := errorKind(err)
	requestErrors.WithLabelValues(kind).Inc()

	switch kind {
	case "validation":
		utils.WriteValidationError(w, err)
	case "not_found":
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case "illegal_transition", "conflict":
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case "amount_mismatch", "over_collection":
		utils.WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return "validation"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, entities.ErrConflict):
		return "conflict"
	case errors.Is(err, entities.ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, entities.ErrOverCollection):
		return "over_collection"
	default:
		return "internal"
	}
}

func orderID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid order id: %w", err)
	}
	return id, nil
}

func parsePagination(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page, err := queryInt(query.Get("page"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page: %w", err)
	}

	limitRaw := query.Get("limit")
	if limitRaw == "" {
		limitRaw = query.Get("pageSize")
	}
	limit, err := queryInt(limitRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit: %w", err)
	}
	return page, limit, nil
}

func parseOrderQuery(r *http.Request) (entities.OrderQuery, error) {
	query := r.URL.Query()

	page, limit, err := parsePagination(r)
	if err != nil {
		return entities.OrderQuery{}, err
	}

	q := entities.OrderQuery{
		DriverRef:  query.Get("driverRef"),
		VendorRef:  query.Get("vendorRef"),
		ProductRef: query.Get("productRef"),
		Status:     entities.Status(query.Get("status")),
		Search:     query.Get("search"),
		SortBy:     entities.SortField(query.Get("sortBy")),
		SortOrder:  entities.SortOrder(strings.ToLower(query.Get("sortOrder"))),
		Page:       page,
		PageSize:   limit,
	}

	if raw := query.Get("isUrgent"); raw != "" {
		urgent, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("invalid isUrgent: %w", err)
		}
		q.IsUrgent = &urgent
	}
	if raw := query.Get("tags"); raw != "" {
		q.Tags = strings.Split(raw, ",")
	}
	if q.From, err = queryTime(query.Get("from"), false); err != nil {
		return q, fmt.Errorf("invalid from: %w", err)
	}
	if q.To, err = queryTime(query.Get("to"), true); err != nil {
		return q, fmt.Errorf("invalid to: %w", err)
	}
	if q.MinAmount, err = queryDecimal(query.Get("minAmount")); err != nil {
		return q, fmt.Errorf("invalid minAmount: %w", err)
	}
	if q.MaxAmount, err = queryDecimal(query.Get("maxAmount")); err != nil {
		return q, fmt.Errorf("invalid maxAmount: %w", err)
	}
	return q, nil
}

// parseRange reads the required from/to pair.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	from, err := queryTime(query.Get("from"), false)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %w", err)
	}
	to, err := queryTime(query.Get("to"), true)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %w", err)
	}
	if from == nil || to == nil {
		return time.Time{}, time.Time{}, errors.New("from and to are required")
	}
	return *from, *to, nil
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// queryTime accepts RFC3339 or a bare date. A bare date used as the end of a
// range covers the whole day.
func queryTime(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
