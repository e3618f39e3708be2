package http

import (
	"net/http"

	"kds-backend/internal/handlers"
	"kds-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	monitorHandler *handlers.MonitorHandler,
	boardHandler *handlers.BoardHandler,
	lineActionHandler *handlers.LineActionHandler,
	historyHandler *handlers.HistoryHandler,
	intakeHandler *handlers.IntakeHandler,
	eventHandler *handlers.EventHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Board websocket. Token rides the query string because browsers cannot
	// set headers on websocket upgrades; the display re-authenticates over
	// the REST surface anyway.
	r.HandleFunc("/ws/board/{monitorId}", boardHandler.Subscribe)

	// Monitors: reads for any signed-in user, writes for managers
	monitorsAPI := r.PathPrefix("/api/monitors").Subrouter()
	monitorsAPI.Use(authMiddleware.Authenticate)
	monitorsAPI.HandleFunc("", monitorHandler.ListMonitors).Methods("GET")
	monitorsAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(monitorHandler.CreateMonitor)).ServeHTTP).Methods("POST")
	monitorsAPI.HandleFunc("/{id}", monitorHandler.GetMonitor).Methods("GET")
	monitorsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(monitorHandler.UpdateMonitor)).ServeHTTP).Methods("PUT")
	monitorsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(monitorHandler.DeleteMonitor)).ServeHTTP).Methods("DELETE")

	// Board snapshots and history
	boardAPI := r.PathPrefix("/api/board").Subrouter()
	boardAPI.Use(authMiddleware.Authenticate)
	boardAPI.HandleFunc("/{monitorId}", boardHandler.GetBoard).Methods("GET")
	boardAPI.HandleFunc("/{monitorId}/history", historyHandler.GetClosedLines).Methods("GET")

	// Line lifecycle actions
	linesAPI := r.PathPrefix("/api/lines").Subrouter()
	linesAPI.Use(authMiddleware.Authenticate)
	linesAPI.HandleFunc("/start", lineActionHandler.StartBatch).Methods("POST")
	linesAPI.HandleFunc("/finish", lineActionHandler.FinishBatch).Methods("POST")
	linesAPI.HandleFunc("/serve", lineActionHandler.ServeBatch).Methods("POST")
	linesAPI.HandleFunc("/{lineId}/start", lineActionHandler.StartLine).Methods("POST")
	linesAPI.HandleFunc("/{lineId}/finish", lineActionHandler.FinishLine).Methods("POST")
	linesAPI.HandleFunc("/{lineId}/serve", lineActionHandler.ServeLine).Methods("POST")
	linesAPI.HandleFunc("/{lineId}/recall", historyHandler.RecallLine).Methods("POST")

	// Course marching
	coursesAPI := r.PathPrefix("/api/courses").Subrouter()
	coursesAPI.Use(authMiddleware.Authenticate)
	coursesAPI.HandleFunc("/march", lineActionHandler.MarchCourse).Methods("POST")
	coursesAPI.HandleFunc("/unmarch", lineActionHandler.UnmarchCourse).Methods("POST")

	// Order intake seam
	ticketsAPI := r.PathPrefix("/api/tickets").Subrouter()
	ticketsAPI.Use(authMiddleware.Authenticate)
	ticketsAPI.HandleFunc("", intakeHandler.CreateTicket).Methods("POST")
	ticketsAPI.HandleFunc("/{ticketId}/items", intakeHandler.AddItems).Methods("POST")
	ticketsAPI.HandleFunc("/{ticketId}/events", eventHandler.ListTicketEvents).Methods("GET")

	// Users and reports: manager only
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireManager)
	usersAPI.HandleFunc("", authHandler.CreateUser).Methods("POST")

	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequireManager)
	reportsAPI.HandleFunc("/events", reportHandler.DailyEventsPDF).Methods("GET")

	return r
}
