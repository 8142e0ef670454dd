package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/auth"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/meet"
)

//NewRouter returns an HTTP router for the HTTP API
func NewRouter(d *db.DB, m *meet.Service, a *auth.Authenticator, sess *MemorySessionStore) http.Handler {

	r := mux.NewRouter()

	r.Path("/auth").Methods("POST").Handler(postAuth(a, sess))
	r.Path("/auth").Methods("PUT").Handler(putAuth(a, sess))
	r.Path("/auth").Methods("DELETE").Handler(deleteAuth(a, sess))
	r.Path("/events").Methods("GET").Handler(getEvents(m))
	r.Path("/events").Methods("POST").Handler(postEvent(m, sess))
	r.Path("/events/{id}").Methods("DELETE").Handler(deleteEvent(m, sess))
	r.Path("/results").Methods("GET").Handler(getResults(m))
	r.Path("/results").Methods("POST").Handler(postResult(m, sess))
	r.Path("/results/{id}").Methods("DELETE").Handler(deleteResult(m, sess))
	r.Path("/leaderboard").Methods("GET").Handler(getLeaderboard(m))
	r.Path("/document").Methods("DELETE").Handler(deleteDocument(m, sess))
	r.Path("/revisions").Methods("GET").Handler(getRevisions(d, sess))
	r.Path("/revisions/{id:[0-9]+}").Methods("GET").Handler(getRevision(d, sess))

	r.NotFoundHandler = http.HandlerFunc(notFound)

	chain := handlers.LoggingHandler(os.Stdout, handlers.CompressHandler(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Accept", "Authorization", "Content-Type", "Origin"}),
	)(http.StripPrefix("/api/1.0", r))))

	return chain
}
