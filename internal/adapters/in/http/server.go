// Package http is the inbound HTTP adapter: an echo server translating the
// REST surface into commands and queries, plus the SSE bridge for realtime
// rooms.
package http

import (
	"net/http"
	"strconv"
	"time"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/application/usecases/queries"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler            commands.CreateOrderCommandHandler
	acceptOrderHandler            commands.AcceptOrderCommandHandler
	startPreparingHandler         commands.StartPreparingCommandHandler
	requestRiderHandler           commands.RequestRiderCommandHandler
	acceptOfferHandler            commands.AcceptOfferCommandHandler
	cancelOrderHandler            commands.CancelOrderCommandHandler
	completeDeliveryHandler       commands.CompleteDeliveryCommandHandler
	rateOrderHandler              commands.RateOrderCommandHandler
	registerCourierHandler        commands.RegisterCourierCommandHandler
	updateCourierLocationHandler  commands.UpdateCourierLocationCommandHandler
	setCourierAvailabilityHandler commands.SetCourierAvailabilityCommandHandler

	// Query handlers
	getOrderHandler              queries.GetOrderQueryHandler
	getActiveOrdersHandler       queries.GetActiveOrdersQueryHandler
	getWalletBalanceHandler      queries.GetWalletBalanceQueryHandler
	getWalletTransactionsHandler queries.GetWalletTransactionsQueryHandler

	// Realtime
	bus ports.EventBus
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	startPreparingHandler commands.StartPreparingCommandHandler,
	requestRiderHandler commands.RequestRiderCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	registerCourierHandler commands.RegisterCourierCommandHandler,
	updateCourierLocationHandler commands.UpdateCourierLocationCommandHandler,
	setCourierAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getWalletBalanceHandler queries.GetWalletBalanceQueryHandler,
	getWalletTransactionsHandler queries.GetWalletTransactionsQueryHandler,
	bus ports.EventBus,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		acceptOrderHandler:            acceptOrderHandler,
		startPreparingHandler:         startPreparingHandler,
		requestRiderHandler:           requestRiderHandler,
		acceptOfferHandler:            acceptOfferHandler,
		cancelOrderHandler:            cancelOrderHandler,
		completeDeliveryHandler:       completeDeliveryHandler,
		rateOrderHandler:              rateOrderHandler,
		registerCourierHandler:        registerCourierHandler,
		updateCourierLocationHandler:  updateCourierLocationHandler,
		setCourierAvailabilityHandler: setCourierAvailabilityHandler,
		getOrderHandler:               getOrderHandler,
		getActiveOrdersHandler:        getActiveOrdersHandler,
		getWalletBalanceHandler:       getWalletBalanceHandler,
		getWalletTransactionsHandler:  getWalletTransactionsHandler,
		bus:                           bus,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/prepare", s.StartPreparing)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/offer/accept", s.AcceptOffer)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/delivered", s.CompleteDelivery)
	api.POST("/orders/:id/rating", s.RateOrder)

	api.POST("/couriers", s.RegisterCourier)
	api.POST("/couriers/:id/location", s.UpdateCourierLocation)
	api.POST("/couriers/:id/availability", s.SetCourierAvailability)

	api.GET("/wallets/:id/balance", s.GetWalletBalance)
	api.GET("/wallets/:id/transactions", s.GetWalletTransactions)

	api.GET("/realtime/:room", s.StreamRoom)
}

// NewOrderItem is one basket line in an order creation request.
type NewOrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	CustomerID    string         `json:"customer_id"`
	RestaurantID  string         `json:"restaurant_id"`
	Items         []NewOrderItem `json:"items"`
	DeliveryLat   float64        `json:"delivery_lat"`
	DeliveryLon   float64        `json:"delivery_lon"`
	PaymentMethod string         `json:"payment_method"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id: "+err.Error())
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant_id: "+err.Error())
	}

	deliveryPoint, err := kernel.NewGeoPoint(req.DeliveryLat, req.DeliveryLon)
	if err != nil {
		return respondError(ctx, err)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItemID, idErr := kernel.UUIDFromString(line.MenuItemID)
		if idErr != nil {
			return badRequest(ctx, "invalid menu_item_id: "+idErr.Error())
		}
		unitPrice, priceErr := kernel.NewMoney(line.UnitPrice)
		if priceErr != nil {
			return respondError(ctx, priceErr)
		}
		item, itemErr := order.NewLineItem(menuItemID, line.Name, line.Quantity, unitPrice)
		if itemErr != nil {
			return respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, restaurantID, items, deliveryPoint, paymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - restaurant accepts.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparing handles POST /api/v1/orders/:id/prepare.
func (s *Server) StartPreparing(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	cmd, err := commands.NewStartPreparingCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.startPreparingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrderTransition reports the state an order landed in after a lifecycle
// endpoint succeeds, saving clients a follow-up read.
type OrderTransition struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Candidate is one offered courier in a dispatch response.
type Candidate struct {
	CourierID        string  `json:"courier_id"`
	CourierName      string  `json:"courier_name"`
	DistanceKm       float64 `json:"distance_km"`
	EstimatedEarning int64   `json:"estimated_earning"`
}

// DispatchResult is the dispatch endpoint response. Zero candidates is a
// normal outcome, reported with 200.
type DispatchResult struct {
	Candidates []Candidate `json:"candidates"`
	Count      int         `json:"count"`
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch - marks the order
// ready for pickup and runs the first dispatch round. An optional radius_m
// query parameter widens (or narrows) the search.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var radiusMeters float64
	if raw := ctx.QueryParam("radius_m"); raw != "" {
		radiusMeters, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "invalid radius_m: "+err.Error())
		}
	}

	cmd, err := commands.NewRequestRiderCommand(orderID, radiusMeters)
	if err != nil {
		return respondError(ctx, err)
	}

	offers, err := s.requestRiderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDispatchResult(offers))
}

func toDispatchResult(offers []services.CandidateOffer) DispatchResult {
	candidates := make([]Candidate, 0, len(offers))
	for _, offer := range offers {
		candidates = append(candidates, Candidate{
			CourierID:        offer.CourierID.String(),
			CourierName:      offer.CourierName,
			DistanceKm:       offer.DistanceKm,
			EstimatedEarning: offer.EstimatedEarning.Amount(),
		})
	}
	return DispatchResult{Candidates: candidates, Count: len(candidates)}
}

// AcceptOfferRequest is the body of a courier accepting an offer.
type AcceptOfferRequest struct {
	CourierID string `json:"courier_id"`
}

// AcceptOffer handles POST /api/v1/orders/:id/offer/accept - a courier
// races to take the delivery. Exactly one concurrent caller wins; the rest
// get 409.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req AcceptOfferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id: "+err.Error())
	}

	cmd, err := commands.NewAcceptOfferCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransition{
		OrderID: orderID.String(),
		Status:  order.OutForDelivery.String(),
	})
}

// CancelOrderRequest is the cancellation request body.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTransition{
		OrderID: orderID.String(),
		Status:  order.Cancelled.String(),
	})
}

// CompleteDelivery handles POST /api/v1/orders/:id/delivered.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateOrderRequest is the rating request body.
type RateOrderRequest struct {
	Rating int `json:"rating"`
}

// RateOrder handles POST /api/v1/orders/:id/rating.
func (s *Server) RateOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req RateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, req.Rating)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NewCourier is the courier onboarding request body.
type NewCourier struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Verified bool    `json:"verified"`
}

// RegisterCourier handles POST /api/v1/couriers - onboards a courier.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var req NewCourier
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCourierCommand(courierID, req.Name, location, req.Verified)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"courier_id": courierID.String()})
}

// CourierLocation is the location update request body.
type CourierLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UpdateCourierLocation handles POST /api/v1/couriers/:id/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id: "+err.Error())
	}

	var req CourierLocation
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateCourierLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CourierAvailability is the availability toggle request body.
type CourierAvailability struct {
	Online bool `json:"online"`
}

// SetCourierAvailability handles POST /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id: "+err.Error())
	}

	var req CourierAvailability
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, req.Online)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.setCourierAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrderItem is one basket line in an order response.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

// Order is the full order read model returned by GET /orders/:id.
type Order struct {
	ID                 string      `json:"id"`
	CustomerID         string      `json:"customer_id"`
	RestaurantID       string      `json:"restaurant_id"`
	CourierID          *string     `json:"courier_id,omitempty"`
	Items              []OrderItem `json:"items"`
	TotalAmount        int64       `json:"total_amount"`
	DeliveryLat        float64     `json:"delivery_lat"`
	DeliveryLon        float64     `json:"delivery_lon"`
	PaymentMethod      string      `json:"payment_method"`
	PaymentStatus      string      `json:"payment_status"`
	Status             string      `json:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
	RefundIssued       bool        `json:"refund_issued"`
	Rating             *int        `json:"rating,omitempty"`
	ActualDeliveryTime *time.Time  `json:"actual_delivery_time,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// GetOrder handles GET /api/v1/orders/:id - the reconciliation read model
// for clients that missed realtime events.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

func toOrderResponse(resp queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	out := Order{
		ID:                 resp.ID.String(),
		CustomerID:         resp.CustomerID.String(),
		RestaurantID:       resp.RestaurantID.String(),
		Items:              items,
		TotalAmount:        resp.TotalAmount,
		DeliveryLat:        resp.DeliveryLat,
		DeliveryLon:        resp.DeliveryLon,
		PaymentMethod:      resp.PaymentMethod,
		PaymentStatus:      resp.PaymentStatus,
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
		RefundIssued:       resp.RefundIssued,
		Rating:             resp.Rating,
		ActualDeliveryTime: resp.ActualDeliveryTime,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}
	if resp.CourierID != nil {
		id := resp.CourierID.String()
		out.CourierID = &id
	}
	return out
}

// ActiveOrder is one row of the active orders listing.
type ActiveOrder struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetActiveOrders handles GET /api/v1/orders/active - orders that are not
// yet delivered or cancelled, oldest first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ActiveOrder, 0, len(orders))
	for _, o := range orders {
		response = append(response, ActiveOrder{
			ID:          o.ID.String(),
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// WalletBalance is the balance response body.
type WalletBalance struct {
	OwnerID string `json:"owner_id"`
	Balance int64  `json:"balance"`
}

// GetWalletBalance handles GET /api/v1/wallets/:id/balance.
func (s *Server) GetWalletBalance(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid wallet owner id: "+err.Error())
	}

	query, err := queries.NewGetWalletBalanceQuery(ownerID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getWalletBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WalletBalance{
		OwnerID: resp.OwnerID.String(),
		Balance: resp.Balance,
	})
}

// WalletTransaction is one ledger entry in the transactions listing.
type WalletTransaction struct {
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// GetWalletTransactions handles GET /api/v1/wallets/:id/transactions -
// newest first, capped by the optional limit parameter.
func (s *Server) GetWalletTransactions(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid wallet owner id: "+err.Error())
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid limit: "+err.Error())
		}
	}

	query, err := queries.NewGetWalletTransactionsQuery(ownerID, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	transactions, err := s.getWalletTransactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]WalletTransaction, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, WalletTransaction{
			Type:      tx.Type,
			Amount:    tx.Amount,
			Reason:    tx.Reason,
			Timestamp: tx.Timestamp,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}
