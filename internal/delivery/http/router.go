package http

import (
	"net/http"

	"oncotrack/internal/delivery/http/handler"
	"oncotrack/internal/delivery/http/middleware"
	"oncotrack/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	moodHandler        *handler.MoodHandler
	symptomHandler     *handler.SymptomHandler
	appointmentHandler *handler.AppointmentHandler
	medicationHandler  *handler.MedicationHandler
	postHandler        *handler.PostHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	moodHandler *handler.MoodHandler,
	symptomHandler *handler.SymptomHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicationHandler *handler.MedicationHandler,
	postHandler *handler.PostHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		moodHandler:        moodHandler,
		symptomHandler:     symptomHandler,
		appointmentHandler: appointmentHandler,
		medicationHandler:  medicationHandler,
		postHandler:        postHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

// Setup registers every route. Path user ids are numeric so literal segments
// such as /symptoms/options never reach an id route.
func (r *Router) Setup() http.Handler {
	api := r.router

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/users", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/login/refresh", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	api.Handle("/logout", r.authed(r.authHandler.Logout)).Methods(http.MethodPost)

	// Users
	api.Handle("/users", r.authed(r.userHandler.ListUsers)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", r.owner("id", r.userHandler.GetUser)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}/audit-logs", r.owner("id", r.userHandler.ListAuditLogs)).Methods(http.MethodGet)

	// Appointments
	api.Handle("/appointments", r.authed(r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	api.Handle("/appointments/user/{userId:[0-9]+}", r.owner("userId", r.appointmentHandler.ListAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments/{id:[0-9]+}", r.authed(r.appointmentHandler.UpdateAppointment)).Methods(http.MethodPut)
	api.Handle("/appointments/{id:[0-9]+}", r.authed(r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)

	// Moods
	api.Handle("/moods", r.authed(r.moodHandler.RecordMood)).Methods(http.MethodPost)
	api.Handle("/moods/{userId:[0-9]+}", r.owner("userId", r.moodHandler.ListMoods)).Methods(http.MethodGet)
	api.Handle("/moods/{userId:[0-9]+}/today", r.owner("userId", r.moodHandler.GetTodayMood)).Methods(http.MethodGet)
	api.Handle("/moods/{userId:[0-9]+}/today", r.owner("userId", r.moodHandler.UpdateTodayMood)).Methods(http.MethodPut)

	// Symptoms
	api.Handle("/symptoms/options", r.authed(r.symptomHandler.CreateSymptomOption)).Methods(http.MethodPost)
	api.Handle("/symptoms/options/{userId:[0-9]+}", r.owner("userId", r.symptomHandler.ListSymptomOptions)).Methods(http.MethodGet)
	api.Handle("/symptoms", r.authed(r.symptomHandler.CreateSymptom)).Methods(http.MethodPost)
	api.Handle("/symptoms/{userId:[0-9]+}", r.owner("userId", r.symptomHandler.ListSymptoms)).Methods(http.MethodGet)
	api.Handle("/symptoms/{userId:[0-9]+}/today", r.owner("userId", r.symptomHandler.ListTodaySymptoms)).Methods(http.MethodGet)
	api.Handle("/symptoms/{id:[0-9]+}", r.authed(r.symptomHandler.DeleteSymptom)).Methods(http.MethodDelete)

	// Medications
	api.Handle("/medications", r.authed(r.medicationHandler.CreateMedication)).Methods(http.MethodPost)
	api.Handle("/medications/user/{userId:[0-9]+}", r.owner("userId", r.medicationHandler.ListMedications)).Methods(http.MethodGet)
	api.Handle("/medications/{id:[0-9]+}", r.authed(r.medicationHandler.DeleteMedication)).Methods(http.MethodDelete)

	// Posts
	api.Handle("/posts", r.authed(r.postHandler.CreatePost)).Methods(http.MethodPost)
	api.Handle("/posts", r.authed(r.postHandler.ListPosts)).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// CORS wraps the router so preflight requests are answered before route matching.
	return r.corsMiddleware.Handle(r.loggingMiddleware.Handle(r.router))
}

func (r *Router) authed(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(h)
}

func (r *Router) owner(param string, h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequireOwner(param)(h))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
