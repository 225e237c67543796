package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"docspot/internal/appointments"
	"docspot/internal/auth"
	"docspot/internal/health"
	"docspot/internal/messages"
	"docspot/internal/prescriptions"
	"docspot/internal/records"
	"docspot/internal/store"
	"docspot/internal/users"
)

type Options struct {
	Secret    string
	Debug     bool
	Latency   time.Duration // artificial delay on create endpoints
	AuthRate  float64
	AuthBurst int
	Gatherer  prometheus.Gatherer
	// Notifications receives messages for the notification worker; nil disables them.
	Notifications chan messages.Message
}

type Router struct {
	App     *iris.Application
	Store   *store.Store
	Auth    *auth.Service
	Routes  []*Route
	Options Options

	users         *store.Collection[users.User]
	appointments  *store.Collection[appointments.Appointment]
	prescriptions *store.Collection[prescriptions.Prescription]
	records       *store.Collection[records.MedicalRecord]
	health        *store.Collection[health.Data]
	messages      *store.Collection[messages.Message]
	limiter       *RateLimiter
}

func NewRouter(st *store.Store, opts Options) *Router {
	if opts.AuthRate <= 0 {
		opts.AuthRate = 5
	}
	if opts.AuthBurst <= 0 {
		opts.AuthBurst = 10
	}
	router := &Router{
		App:           iris.New(),
		Store:         st,
		Auth:          auth.NewService(st),
		Options:       opts,
		users:         users.Collection(st),
		appointments:  appointments.Collection(st),
		prescriptions: prescriptions.Collection(st),
		records:       records.Collection(st),
		health:        health.Collection(st),
		messages:      messages.Collection(st),
		limiter:       NewRateLimiter(opts.AuthRate, opts.AuthBurst),
	}
	return router
}

func (r *Router) Init() {
	if r.Options.Debug {
		log.Warning("Cross Origin requests allowed (ENV::DEBUG)")
		r.App.UseRouter(cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}))
	}

	r.App.Use(ProxyIPMiddleware)

	r.Routes = append(r.Routes, addRouteIndex(r)...)
	r.Routes = append(r.Routes, addRouteAuth(r)...)
	r.Routes = append(r.Routes, addRouteUsers(r)...)
	r.Routes = append(r.Routes, addRouteAppointments(r)...)
	r.Routes = append(r.Routes, addRoutePrescriptions(r)...)
	r.Routes = append(r.Routes, addRouteRecords(r)...)
	r.Routes = append(r.Routes, addRouteMessages(r)...)

	log.Infof("Found %d route(s).", len(r.Routes))
	log.Info("Loading routes that do not require JWT...")
	r.LoadRoutes(false)

	log.Info("Enabling JWT Middleware...")
	r.App.Use(VerifySession(r.Options.Secret))

	log.Info("Loading JWT routes...")
	r.LoadRoutes(true)
}

func (r *Router) LoadRoutes(JWT bool) {
	for n := range r.Routes {
		v := r.Routes[n]
		if v.JWT != JWT {
			continue
		}

		handlers := []iris.Handler{}
		if v.Limited {
			handlers = append(handlers, r.limiter.Handler)
		}
		handlers = append(handlers, func(ctx iris.Context) {
			if err := v.Func(ctx); err != nil {
				log.WithField("route", v.Name).Error(err)
				if ctx.GetStatusCode() < http.StatusBadRequest {
					ctx.StopWithStatus(http.StatusInternalServerError)
				}
			}
		})

		log.Debugf("Loaded route: %s (%s) - %s", v.Name, v.Type, v.Path)
		switch v.Type {
		case RouteType_GET:
			r.App.Get(v.Path, handlers...)
		case RouteType_POST:
			r.App.Post(v.Path, handlers...)
		case RouteType_PUT:
			r.App.Put(v.Path, handlers...)
		case RouteType_DELETE:
			r.App.Delete(v.Path, handlers...)
		default:
			log.Warnf("unknown route type %s for %s", v.Type, v.Path)
		}
	}
}

func (r *Router) Listen(host string) error {
	return r.App.Listen(host)
}

func (r *Router) Close() {
	r.limiter.Close()
}

// simulateLatency imitates a network round trip before create operations.
func (r *Router) simulateLatency(ctx iris.Context) error {
	if r.Options.Latency <= 0 {
		return nil
	}
	t := time.NewTimer(r.Options.Latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Request().Context().Done():
		return ctx.Request().Context().Err()
	}
}

// fail writes {"error": msg} with the status code mapped from err.
func fail(ctx iris.Context, code int, err error) error {
	ctx.StatusCode(code)
	return ctx.JSON(iris.Map{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword), errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrMissingFields), errors.Is(err, users.ErrMissingIdentity),
		errors.Is(err, appointments.ErrInvalidStatus), errors.Is(err, prescriptions.ErrNoMedications):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fillNames looks up display names for the ids when the caller left them blank.
func (r *Router) fillNames(ctx iris.Context, patientID, doctorID string, patientName, doctorName *string) {
	if *patientName != "" && *doctorName != "" {
		return
	}
	all, err := r.users.List(ctx.Request().Context())
	if err != nil {
		log.Warnf("unable to look up names: %v", err)
		return
	}
	for _, u := range all {
		if u.ID == patientID && *patientName == "" {
			*patientName = u.Name
		}
		if u.ID == doctorID && *doctorName == "" {
			*doctorName = u.Name
		}
	}
}

func addRouteIndex(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Index",
		Path: "/",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			_, err := ctx.WriteString("API is running")
			return err
		},
		Type: RouteType_GET,
	})

	if r.Options.Gatherer != nil {
		tempRoutes = append(tempRoutes, &Route{
			Name: "Metrics",
			Path: "/metrics",
			JWT:  false,
			Func: metricsHandler(r.Options.Gatherer),
			Type: RouteType_GET,
		})
	}

	return tempRoutes
}
