package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyIdentity  = contextKey("identity")
	contextKeyEventID   = contextKey("event_id")
	contextKeyRequestID = contextKey("request_id")
)

const requestIDHeader = "X-Request-Id"

var (
	errCantRetrieveIdentity = errors.New("can't retrieve identity")
	errCantRetrieveEventID  = errors.New("can't retrieve event id")
)

func (a *Api) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Api) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debugw(r.URL.RequestURI(),
			"request_id", requestIDFrom(r),
			"addr", r.RemoteAddr,
			"protocol", r.Proto,
			"method", r.Method,
		)
		next.ServeHTTP(w, r)
	})
}

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		identity, err := a.jwts.ParseToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		identityCtx := context.WithValue(r.Context(), contextKeyIdentity, identity)
		next.ServeHTTP(w, r.WithContext(identityCtx))
	})
}

func (a *Api) eventID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
		if err != nil {
			a.notFoundResponse(w, r)
			return
		}

		eventCtx := context.WithValue(r.Context(), contextKeyEventID, id)
		next.ServeHTTP(w, r.WithContext(eventCtx))
	})
}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(contextKeyRequestID).(string)
	return id
}

func identityFrom(r *http.Request) (model.Identity, error) {
	identity, ok := r.Context().Value(contextKeyIdentity).(model.Identity)
	if !ok {
		return model.Identity{}, errCantRetrieveIdentity
	}

	return identity, nil
}

func eventIDFrom(r *http.Request) (int64, error) {
	id, ok := r.Context().Value(contextKeyEventID).(int64)
	if !ok {
		return 0, errCantRetrieveEventID
	}

	return id, nil
}
