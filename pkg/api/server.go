package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/auth"
	"github.com/rutamundo/backend/pkg/middleware"
	"github.com/rutamundo/backend/pkg/observability"
	"github.com/rutamundo/backend/pkg/store"
)

// Server is the HTTP API server.
type Server struct {
	router *mux.Router

	users    *store.Users
	trips    *store.Trips
	news     *store.News
	contacts *store.Contacts

	hasher        auth.PasswordHasher
	authenticator *auth.CredentialAuthenticator
	admission     *middleware.Authenticator

	logger  *observability.Logger
	metrics *observability.Metrics
	auditor *audit.DBLogger
}

// Deps carries everything the server needs. All fields except Metrics
// and Auditor are required.
type Deps struct {
	Users    *store.Users
	Trips    *store.Trips
	News     *store.News
	Contacts *store.Contacts

	Hasher        auth.PasswordHasher
	Authenticator *auth.CredentialAuthenticator
	Admission     *middleware.Authenticator

	Logger  *observability.Logger
	Metrics *observability.Metrics
	Auditor *audit.DBLogger
}

// NewServer creates the API server and registers all routes.
func NewServer(deps Deps) *Server {
	s := &Server{
		router:        mux.NewRouter(),
		users:         deps.Users,
		trips:         deps.Trips,
		news:          deps.News,
		contacts:      deps.Contacts,
		hasher:        deps.Hasher,
		authenticator: deps.Authenticator,
		admission:     deps.Admission,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
		auditor:       deps.Auditor,
	}
	s.setupRoutes()
	return s
}

// route is one row of the static route table: method, path, the
// permission keys the caller must hold, and the handler. A nil
// requirement means the route is public.
type route struct {
	method      string
	path        string
	requirement *auth.Requirement
	handler     http.HandlerFunc
}

func requires(keys ...auth.PermissionKey) *auth.Requirement {
	return &auth.Requirement{Required: keys}
}

func (s *Server) routes() []route {
	return []route{
		// Users
		{"POST", "/users", nil, s.registerUser},
		{"POST", "/users/login", nil, s.login},
		{"GET", "/users/auth", requires(auth.PermissionViewUser), s.authenticatedUser},
		{"GET", "/users/count", requires(auth.PermissionViewUser), s.countUsers},
		{"GET", "/users", requires(auth.PermissionViewUser), s.listUsers},
		{"GET", "/users/{id}", requires(auth.PermissionViewUser), s.getUser},
		{"PATCH", "/users/{id}", requires(auth.PermissionUpdateUser), s.updateUser},
		{"DELETE", "/users/{id}", requires(auth.PermissionDeleteUser), s.deleteUser},

		// Trips: reads public, mutations gated.
		{"GET", "/trips", nil, s.listTrips},
		{"GET", "/trips/count", nil, s.countTrips},
		{"GET", "/trips/{id}", nil, s.getTrip},
		{"POST", "/trips", requires(auth.PermissionManageTrips), s.createTrip},
		{"PUT", "/trips/{id}", requires(auth.PermissionManageTrips), s.replaceTrip},
		{"PATCH", "/trips/{id}", requires(auth.PermissionManageTrips), s.patchTrip},
		{"DELETE", "/trips/{id}", requires(auth.PermissionManageTrips), s.deleteTrip},

		// News: reads public, mutations gated.
		{"GET", "/news", nil, s.listNews},
		{"GET", "/news/count", nil, s.countNews},
		{"GET", "/news/{id}", nil, s.getNewsItem},
		{"POST", "/news", requires(auth.PermissionManageNews), s.createNewsItem},
		{"PATCH", "/news/{id}", requires(auth.PermissionManageNews), s.updateNewsItem},
		{"DELETE", "/news/{id}", requires(auth.PermissionManageNews), s.deleteNewsItem},

		// Contacts: the form is public, everything else gated.
		{"POST", "/contacts", nil, s.createContact},
		{"GET", "/contacts", requires(auth.PermissionManageContacts), s.listContacts},
		{"GET", "/contacts/count", requires(auth.PermissionManageContacts), s.countContacts},
		{"GET", "/contacts/{id}", requires(auth.PermissionManageContacts), s.getContact},
		{"PATCH", "/contacts/{id}", requires(auth.PermissionManageContacts), s.markContactSeen},
		{"DELETE", "/contacts/{id}", requires(auth.PermissionManageContacts), s.deleteContact},
	}
}

func (s *Server) setupRoutes() {
	for _, rt := range s.routes() {
		var handler http.Handler = rt.handler
		if rt.requirement != nil {
			handler = s.admission.Require(*rt.requirement, handler)
		} else {
			handler = s.admission.Optional(handler)
		}
		if s.metrics != nil {
			handler = s.metrics.HTTPMiddleware(rt.path, handler)
		}
		s.router.Handle(rt.path, handler).Methods(rt.method)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
