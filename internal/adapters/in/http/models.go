package http

// GeoPoint is the wire representation of a geographic coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewDelivery is the request body for creating a delivery.
type NewDelivery struct {
	OrderID string   `json:"orderId"`
	Pickup  GeoPoint `json:"pickup"`
	Dropoff GeoPoint `json:"dropoff"`
}

// CreatedDelivery is returned after a delivery has been created.
type CreatedDelivery struct {
	ID string `json:"id"`
}

// AssignPartner is the request body for a manual partner assignment.
type AssignPartner struct {
	PartnerID string `json:"partnerId"`
}

// AutoAssignRequest tunes the partner search. Zero values fall back to the
// default search radius and no rating floor.
type AutoAssignRequest struct {
	RadiusKm  float64 `json:"radiusKm"`
	MinRating float64 `json:"minRating"`
}

// AutoAssignResult reports whether a partner could be matched, carrying the
// updated delivery when one was.
type AutoAssignResult struct {
	Assigned bool      `json:"assigned"`
	Delivery *Delivery `json:"delivery,omitempty"`
}

// Delivery is the wire representation of a delivery and its lifecycle state.
type Delivery struct {
	ID                 string   `json:"id"`
	OrderID            string   `json:"orderId"`
	PartnerID          string   `json:"partnerId,omitempty"`
	Status             string   `json:"status"`
	Pickup             GeoPoint `json:"pickup"`
	Dropoff            GeoPoint `json:"dropoff"`
	CancellationReason string   `json:"cancellationReason,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	AssignedAt         string   `json:"assignedAt,omitempty"`
	PickedUpAt         string   `json:"pickedUpAt,omitempty"`
	CompletedAt        string   `json:"completedAt,omitempty"`
}

// StatusChange is the request body for advancing a delivery lifecycle.
type StatusChange struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// CancelRequest is the request body for cancelling an order hand-off.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// MergeGroup describes one committed order consolidation.
type MergeGroup struct {
	GroupID  string   `json:"groupId"`
	OrderIDs []string `json:"orderIds"`
	Score    float64  `json:"score"`
}

// NearbyPartnersRequest carries the query parameters of a partner search.
type NearbyPartnersRequest struct {
	Latitude  float64 `query:"lat"`
	Longitude float64 `query:"lon"`
	RadiusKm  float64 `query:"radiusKm"`
	MinRating float64 `query:"minRating"`
}

// Partner is the wire representation of a delivery partner.
type Partner struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Location         GeoPoint `json:"location"`
	Rating           float64  `json:"rating"`
	ActiveOrderCount int      `json:"activeOrderCount"`
	CompletionRate   float64  `json:"completionRate"`
}

// ActiveDelivery is the wire representation of an in-flight delivery.
type ActiveDelivery struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"orderId"`
	PartnerID string   `json:"partnerId,omitempty"`
	Status    string   `json:"status"`
	Pickup    GeoPoint `json:"pickup"`
	Dropoff   GeoPoint `json:"dropoff"`
	CreatedAt string   `json:"createdAt"`
}

// Error is the common error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
