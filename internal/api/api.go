package api

import (
	"context"
	"net/http"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler  http.Handler
	logger   *zap.SugaredLogger
	jwts     jwtManager
	commands commandService
}

type jwtManager interface {
	ParseToken(token string) (model.Identity, error)
}

type commandService interface {
	ListEvents(ctx context.Context) ([]*model.Event, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	CreateEvent(ctx context.Context, who model.Identity, info *model.EventCreate) (*model.Event, error)
	DeleteEvent(ctx context.Context, who model.Identity, id int64) error
	CancelEvent(ctx context.Context, who model.Identity, id int64) (*model.Event, error)
	Signup(ctx context.Context, who model.Identity, eventID int64, position string) (*model.Event, error)
}

func NewApi(logger *zap.SugaredLogger, jwts jwtManager, commands commandService) *Api {
	a := &Api{
		logger:   logger,
		jwts:     jwts,
		commands: commands,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	r := chi.NewMux()

	r.Use(a.requestID, a.logRequest, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.With(a.auth).Route("/events", func(r chi.Router) {
		r.Get("/", a.getEventsHandler)
		r.Post("/", a.createEventHandler)

		r.With(a.eventID).Route("/{eventID}", func(r chi.Router) {
			r.Get("/", a.getEventHandler)
			r.Delete("/", a.deleteEventHandler)
			r.Post("/cancel", a.cancelEventHandler)
			r.Post("/signups", a.signupHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
