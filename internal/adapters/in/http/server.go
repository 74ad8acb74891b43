// Package http provides the inbound REST adapter for the dispatch service.
// It translates HTTP requests into commands and queries and maps domain errors
// onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler  commands.CreateDeliveryCommandHandler
	assignDeliveryHandler  commands.AssignDeliveryCommandHandler
	autoAssignHandler      commands.AutoAssignDeliveryCommandHandler
	updateStatusHandler    commands.UpdateDeliveryStatusCommandHandler
	clusterAndMergeHandler commands.ClusterAndMergeCommandHandler
	completeOrderHandler   commands.CompleteOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	updateLocationHandler  commands.UpdatePartnerLocationCommandHandler

	// Query handlers
	findPartnersNearHandler    queries.FindPartnersNearQueryHandler
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	autoAssignHandler commands.AutoAssignDeliveryCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	clusterAndMergeHandler commands.ClusterAndMergeCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateLocationHandler commands.UpdatePartnerLocationCommandHandler,
	findPartnersNearHandler queries.FindPartnersNearQueryHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:      createDeliveryHandler,
		assignDeliveryHandler:      assignDeliveryHandler,
		autoAssignHandler:          autoAssignHandler,
		updateStatusHandler:        updateStatusHandler,
		clusterAndMergeHandler:     clusterAndMergeHandler,
		completeOrderHandler:       completeOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		updateLocationHandler:      updateLocationHandler,
		findPartnersNearHandler:    findPartnersNearHandler,
		getActiveDeliveriesHandler: getActiveDeliveriesHandler,
	}
}

// RegisterRoutes attaches all dispatch endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.POST("/deliveries/:deliveryId/assign", s.AssignDelivery)
	api.POST("/deliveries/:deliveryId/auto-assign", s.AutoAssignDelivery)
	api.POST("/deliveries/:deliveryId/status", s.UpdateDeliveryStatus)

	api.POST("/restaurants/:restaurantId/merge-pass", s.RunMergePass)

	api.GET("/partners/near", s.FindPartnersNear)
	api.POST("/partners/:partnerId/location", s.UpdatePartnerLocation)
	api.GET("/partners/:partnerId/deliveries/active", s.GetPartnerActiveDeliveries)
	api.POST("/partners/:partnerId/orders/:orderId/complete", s.CompleteOrder)
	api.POST("/partners/:partnerId/orders/:orderId/cancel", s.CancelOrder)
}

// CreateDelivery handles POST /api/v1/deliveries - creates a delivery for an order.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req NewDelivery
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid pickup location: "+err.Error())
	}

	dropoff, err := kernel.NewGeoPoint(req.Dropoff.Latitude, req.Dropoff.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff location: "+err.Error())
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, orderID, pickup, dropoff)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if handleErr := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedDelivery{ID: deliveryID.String()})
}

// AssignDelivery handles POST /api/v1/deliveries/:deliveryId/assign - assigns a
// specific partner to a delivery.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var req AssignPartner
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return badRequest(ctx, "Invalid partner id: "+err.Error())
	}

	cmd, err := commands.NewAssignDeliveryCommand(deliveryID, partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	assigned, err := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryView(assigned))
}

// AutoAssignDelivery handles POST /api/v1/deliveries/:deliveryId/auto-assign -
// matches the best available partner near the pickup point.
func (s *Server) AutoAssignDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var req AutoAssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAutoAssignDeliveryCommand(deliveryID, req.RadiusKm, req.MinRating)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	assigned, updated, err := s.autoAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	result := AutoAssignResult{Assigned: assigned}
	if updated != nil {
		view := toDeliveryView(updated)
		result.Delivery = &view
	}

	return ctx.JSON(http.StatusOK, result)
}

// UpdateDeliveryStatus handles POST /api/v1/deliveries/:deliveryId/status -
// advances a delivery through its lifecycle.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var req StatusChange
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, status, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryView(updated))
}

// RunMergePass handles POST /api/v1/restaurants/:restaurantId/merge-pass -
// runs one consolidation pass for a restaurant and returns the committed merges.
func (s *Server) RunMergePass(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantId"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id: "+err.Error())
	}

	cmd, err := commands.NewClusterAndMergeCommand(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid merge request: "+err.Error())
	}

	records, err := s.clusterAndMergeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]MergeGroup, len(records))
	for i, record := range records {
		orderIDs := make([]string, 0, len(record.OrderIDs()))
		for _, id := range record.OrderIDs() {
			orderIDs = append(orderIDs, id.String())
		}

		response[i] = MergeGroup{
			GroupID:  record.GroupID().String(),
			OrderIDs: orderIDs,
			Score:    record.Score(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// FindPartnersNear handles GET /api/v1/partners/near - retrieves available
// partners around a point.
func (s *Server) FindPartnersNear(ctx echo.Context) error {
	var req NearbyPartnersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid query parameters")
	}

	query, err := queries.NewFindPartnersNearQuery(req.Latitude, req.Longitude, req.RadiusKm, req.MinRating)
	if err != nil {
		return badRequest(ctx, "Invalid search: "+err.Error())
	}

	partners, err := s.findPartnersNearHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to find partners")
	}

	response := make([]Partner, len(partners))
	for i, p := range partners {
		response[i] = Partner{
			ID:   p.ID.String(),
			Name: p.Name,
			Location: GeoPoint{
				Latitude:  p.Location.Latitude(),
				Longitude: p.Location.Longitude(),
			},
			Rating:           p.Rating,
			ActiveOrderCount: p.ActiveOrderCount,
			CompletionRate:   p.CompletionRate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active - retrieves all
// in-flight deliveries.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, toActiveDeliveries(deliveries))
}

// GetPartnerActiveDeliveries handles GET /api/v1/partners/:partnerId/deliveries/active -
// retrieves a single partner's in-flight workload.
func (s *Server) GetPartnerActiveDeliveries(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id: "+err.Error())
	}

	query, err := queries.NewGetPartnerActiveDeliveriesQuery(partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid partner id: "+err.Error())
	}

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	return ctx.JSON(http.StatusOK, toActiveDeliveries(deliveries))
}

// UpdatePartnerLocation handles POST /api/v1/partners/:partnerId/location -
// records a partner's reported GPS position.
func (s *Server) UpdatePartnerLocation(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id: "+err.Error())
	}

	var req GeoPoint
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewUpdatePartnerLocationCommand(partnerID, location)
	if err != nil {
		return badRequest(ctx, "Invalid location data: "+err.Error())
	}

	if handleErr := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toDeliveryView(aggregate *delivery.Delivery) Delivery {
	view := Delivery{
		ID:      aggregate.ID().String(),
		OrderID: aggregate.OrderID().String(),
		Status:  aggregate.Status().String(),
		Pickup: GeoPoint{
			Latitude:  aggregate.Pickup().Latitude(),
			Longitude: aggregate.Pickup().Longitude(),
		},
		Dropoff: GeoPoint{
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
		},
		CancellationReason: aggregate.CancellationReason(),
		CreatedAt:          aggregate.CreatedAt().Format(time.RFC3339),
	}

	if id := aggregate.PartnerID(); id != nil {
		view.PartnerID = id.String()
	}
	if at := aggregate.AssignedAt(); at != nil {
		view.AssignedAt = at.Format(time.RFC3339)
	}
	if at := aggregate.PickedUpAt(); at != nil {
		view.PickedUpAt = at.Format(time.RFC3339)
	}
	if at := aggregate.CompletedAt(); at != nil {
		view.CompletedAt = at.Format(time.RFC3339)
	}

	return view
}

func toActiveDeliveries(deliveries []queries.GetActiveDeliveriesQueryResponse) []ActiveDelivery {
	response := make([]ActiveDelivery, len(deliveries))
	for i, d := range deliveries {
		var partnerID string
		if d.PartnerID != nil {
			partnerID = d.PartnerID.String()
		}

		response[i] = ActiveDelivery{
			ID:        d.ID.String(),
			OrderID:   d.OrderID.String(),
			PartnerID: partnerID,
			Status:    d.Status,
			Pickup: GeoPoint{
				Latitude:  d.Pickup.Latitude(),
				Longitude: d.Pickup.Longitude(),
			},
			Dropoff: GeoPoint{
				Latitude:  d.Dropoff.Latitude(),
				Longitude: d.Dropoff.Longitude(),
			},
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		}
	}
	return response
}

// CompleteOrder handles POST /api/v1/partners/:partnerId/orders/:orderId/complete -
// records a successful hand-off and releases the partner slot.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	partnerID, orderID, err := partnerOrderParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteOrderCommand(partnerID, orderID)
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	if _, handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/partners/:partnerId/orders/:orderId/cancel -
// records a cancelled hand-off and releases the partner slot.
func (s *Server) CancelOrder(ctx echo.Context) error {
	partnerID, orderID, err := partnerOrderParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CancelRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(partnerID, orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if _, handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func partnerOrderParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid partner id: " + err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid order id: " + err.Error())
	}

	return partnerID, orderID, nil
}

// domainError maps domain failures onto HTTP status codes: missing entities to
// 404, business conflicts to 409, everything else to 500.
func domainError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	var duplicate *errs.DuplicateAssignmentError
	var capacity *errs.CapacityExceededError
	var transition *errs.InvalidStateTransitionError
	var version *errs.VersionIsInvalidError
	if errors.As(err, &duplicate) || errors.As(err, &capacity) ||
		errors.As(err, &transition) || errors.As(err, &version) ||
		errors.Is(err, partner.ErrPartnerNotAvailable) ||
		errors.Is(err, partner.ErrOrderNotAssigned) ||
		errors.Is(err, partner.ErrOrderAlreadyAssigned) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
