package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/heilocal/feedmap/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type catalogItemInput struct {
	ItemID string `path:"itemID"`
	ItemQuery
}

type pinPath struct {
	ID     string `path:"id"`
	ItemID string `path:"itemID"`
}

type viewportInput struct {
	sessionPath
	ViewportRequest
}

type filterInput struct {
	sessionPath
	FilterRequest
}

type anchorInput struct {
	sessionPath
	AnchorRequest
}

type gestureInput struct {
	sessionPath
	GestureRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "feedmap API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Feed sessions that keep a looping place feed and a map in sync.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/catalog
	getCatalog, _ := r.NewOperationContext(http.MethodGet, "/api/catalog")
	getCatalog.SetSummary("List catalog")
	getCatalog.SetDescription("Returns the catalog filtered by category and ranked by distance from the anchor, if given.")
	getCatalog.AddReqStructure(CatalogQuery{})
	getCatalog.AddRespStructure(CatalogResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCatalog.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getCatalog)

	// GET /api/catalog/{itemID}
	getItem, _ := r.NewOperationContext(http.MethodGet, "/api/catalog/{itemID}")
	getItem.SetSummary("Get catalog item")
	getItem.SetDescription("Returns one item with its plus code, and its distance from the anchor if given.")
	getItem.AddReqStructure(catalogItemInput{})
	getItem.AddRespStructure(ItemResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getItem)

	// POST /api/sessions
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	postSession.SetSummary("Open feed session")
	postSession.SetDescription("Opens a feed over the catalog. The first item is soft-selected.")
	postSession.AddReqStructure(CreateSessionRequest{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSession)

	// GET /api/sessions/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	getSession.SetSummary("Get session")
	getSession.SetDescription("Returns the ranked feed, carousel state, current item and open detail.")
	getSession.AddReqStructure(sessionPath{})
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// DELETE /api/sessions/{id}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{id}")
	deleteSession.SetSummary("Close session")
	deleteSession.SetDescription("Closes the session and ends its event streams.")
	deleteSession.AddReqStructure(sessionPath{})
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteSession)

	// POST /api/sessions/{id}/gestures
	postGesture, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/gestures")
	postGesture.SetSummary("Send gesture")
	postGesture.SetDescription("Feeds one touch, pointer or wheel event to the session.")
	postGesture.AddReqStructure(gestureInput{})
	postGesture.AddRespStructure(GestureResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGesture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGesture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postGesture)

	// PUT /api/sessions/{id}/viewport
	putViewport, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{id}/viewport")
	putViewport.SetSummary("Set viewport extent")
	putViewport.SetDescription("Sets the feed's viewport height in pixels. Non-positive values fall back to a default.")
	putViewport.AddReqStructure(viewportInput{})
	putViewport.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putViewport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putViewport)

	// PUT /api/sessions/{id}/filter
	putFilter, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{id}/filter")
	putFilter.SetSummary("Set category filter")
	putFilter.SetDescription("Re-ranks the feed and restarts it at the nearest item.")
	putFilter.AddReqStructure(filterInput{})
	putFilter.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putFilter.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putFilter.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putFilter)

	// PUT /api/sessions/{id}/anchor
	putAnchor, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{id}/anchor")
	putAnchor.SetSummary("Set anchor")
	putAnchor.SetDescription("Sets the user's position used for ranking. A null anchor ranks in catalog order.")
	putAnchor.AddReqStructure(anchorInput{})
	putAnchor.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putAnchor.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putAnchor.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putAnchor)

	// POST /api/sessions/{id}/map/pins/{itemID}
	postPin, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/map/pins/{itemID}")
	postPin.SetSummary("Tap map pin")
	postPin.SetDescription("Hard select: jumps the feed to the item and requests its detail.")
	postPin.AddReqStructure(pinPath{})
	postPin.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postPin)

	// POST /api/sessions/{id}/map/background
	postBackground, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/map/background")
	postBackground.SetSummary("Tap map background")
	postBackground.SetDescription("Closes the detail overlay. The feed position is unchanged.")
	postBackground.AddReqStructure(sessionPath{})
	postBackground.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postBackground.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postBackground)

	// POST /api/sessions/{id}/detail/close
	postClose, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/detail/close")
	postClose.SetSummary("Close detail")
	postClose.SetDescription("Closes the detail overlay. The feed position is unchanged.")
	postClose.AddReqStructure(sessionPath{})
	postClose.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postClose.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postClose)

	// GET /api/sessions/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events: a session snapshot, then one feed event per soft select, hard select, detail close and map command.")
	getEvents.AddReqStructure(sessionPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/sessions/{id}/stream
	getStream, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/stream")
	getStream.SetSummary("WebSocket stream")
	getStream.SetDescription("Upgrades to a WebSocket. Send StreamFrame messages; receive the same events as the SSE stream.")
	getStream.AddReqStructure(sessionPath{})
	getStream.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getStream)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
