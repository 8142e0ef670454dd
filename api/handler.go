package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/auth"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/db"
	"github.com/muhammedfarooqchalil-dev/sportiva-2k26-jamia/meet"
)

var authRegexp = regexp.MustCompile("^SESSION id=([a-zA-Z0-9]{22})$")

var validate = validator.New()

type jsonError struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func codeToJSON(code int) *jsonError {
	return &jsonError{Code: code, Description: http.StatusText(code)}
}

//returnHTTP writes the correct headers. If body is not nil then it's JSON encoded.
//Otherwise a JSON representation of the HTTP code is encoded
func returnHTTP(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if body == nil {
		body = codeToJSON(code)
	}

	e := json.NewEncoder(w)
	err := e.Encode(body)
	if err != nil {
		log.Println("Unable to encode body:", err)
	}
}

//returnError writes err as JSON. Rejected operations are returned with their description;
//anything else is logged and hidden behind a 500
func returnError(w http.ResponseWriter, action string, err error) {
	var mErr *meet.Error
	if !errors.As(err, &mErr) {
		log.Printf("Unable to %s: %v", action, err)
		returnHTTP(w, http.StatusInternalServerError, nil)
		return
	}

	code := http.StatusInternalServerError
	switch mErr.Kind {
	case meet.KindValidation:
		code = http.StatusBadRequest
	case meet.KindNotFound:
		code = http.StatusNotFound
	case meet.KindConflict:
		code = http.StatusConflict
	}

	returnHTTP(w, code, &jsonError{Code: code, Description: mErr.Description})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	returnHTTP(w, http.StatusNotFound, nil)
}

func checkJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		returnHTTP(w, http.StatusBadRequest, nil)
		return false
	}

	if mediaType != "application/json" {
		returnHTTP(w, http.StatusBadRequest, nil)
		return false
	}

	return true
}

//decodeJSON decodes and validates the request body into v.
//If the body is invalid decodeJSON returns false and writes the error to w
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if !checkJSON(w, r) {
		return false
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		log.Println("Unable to decode request body:", err)
		returnHTTP(w, http.StatusBadRequest, nil)
		return false
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Println("Unable to validate request body:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return false
		}

		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
		}
		returnHTTP(w, http.StatusBadRequest, &jsonError{Code: http.StatusBadRequest, Description: strings.Join(msgs, "; ")})
		return false
	}

	return true
}

//checkAuth checks if the given request is authorized in the session store
//If the request is not authorized checkAuth returns false and writes the error to w
//Otherwise checkAuth returns the session id and true
func checkAuth(w http.ResponseWriter, r *http.Request, s *MemorySessionStore) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		returnHTTP(w, http.StatusUnauthorized, nil)
		return "", false
	}

	match := authRegexp.FindStringSubmatch(header)
	if len(match) != 2 {
		returnHTTP(w, http.StatusBadRequest, nil)
		return "", false
	}

	id := match[1]
	if !s.Check(id) {
		returnHTTP(w, http.StatusUnauthorized, nil)
		return "", false
	}

	return id, true
}

type authRequest struct {
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	SessionID string `json:"session_id"`
}

func postAuth(a *auth.Authenticator, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(authRequest)
		if !decodeJSON(w, r, req) {
			return
		}

		status, err := a.Login(req.Password)
		if err != nil {
			log.Println("Unable to check password:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		if !status {
			returnHTTP(w, http.StatusUnauthorized, nil)
			return
		}

		id, err := s.Create()
		if err != nil {
			log.Println("Unable to create session:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		returnHTTP(w, http.StatusOK, &authResponse{SessionID: id})
	}
}

func putAuth(a *auth.Authenticator, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		req := new(authRequest)
		if !decodeJSON(w, r, req) {
			return
		}

		if err := a.UpdatePassword(req.Password); err != nil {
			log.Println("Unable to update password:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		returnHTTP(w, http.StatusOK, nil)
	}
}

func deleteAuth(a *auth.Authenticator, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := checkAuth(w, r, s)
		if !ok {
			return
		}

		s.Delete(id)

		if err := a.Logout(); err != nil {
			log.Println("Unable to clear admin session:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		returnHTTP(w, http.StatusOK, nil)
	}
}

func getEvents(m *meet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := m.Events()
		if err != nil {
			returnError(w, "read events", err)
			return
		}

		returnHTTP(w, http.StatusOK, events)
	}
}

type eventRequest struct {
	Name     string      `json:"name" validate:"required"`
	Category db.Category `json:"category" validate:"required,oneof=Athletics Games"`
}

func postEvent(m *meet.Service, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		req := new(eventRequest)
		if !decodeJSON(w, r, req) {
			return
		}

		event, err := m.AddEvent(req.Name, req.Category)
		if err != nil {
			returnError(w, "add event", err)
			return
		}

		returnHTTP(w, http.StatusCreated, event)
	}
}

func deleteEvent(m *meet.Service, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		if err := m.DeleteEvent(mux.Vars(r)["id"]); err != nil {
			returnError(w, "delete event", err)
			return
		}

		returnHTTP(w, http.StatusOK, nil)
	}
}

//feedFilter reads the team and category query parameters. "All" or an empty value matches everything
func feedFilter(r *http.Request) (meet.FeedFilter, error) {
	var f meet.FeedFilter
	q := r.URL.Query()

	if team := q.Get("team"); team != "" && team != "All" {
		if err := validate.Var(team, "oneof=Green Red Blue"); err != nil {
			return f, fmt.Errorf("unknown team %q", team)
		}
		f.Team = db.TeamColor(team)
	}

	if category := q.Get("category"); category != "" && category != "All" {
		if err := validate.Var(category, "oneof=Athletics Games"); err != nil {
			return f, fmt.Errorf("unknown category %q", category)
		}
		f.Category = db.Category(category)
	}

	return f, nil
}

func getResults(m *meet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := feedFilter(r)
		if err != nil {
			returnHTTP(w, http.StatusBadRequest, &jsonError{Code: http.StatusBadRequest, Description: err.Error()})
			return
		}

		entries, err := m.Feed(filter)
		if err != nil {
			returnError(w, "read results", err)
			return
		}

		returnHTTP(w, http.StatusOK, entries)
	}
}

type resultRequest struct {
	EventID        string       `json:"event_id" validate:"required"`
	StudentName    string       `json:"student_name" validate:"required"`
	RegisterNumber string       `json:"register_number" validate:"required"`
	Team           db.TeamColor `json:"team" validate:"required,oneof=Green Red Blue"`
	Placement      int          `json:"placement" validate:"required,oneof=1 2 3"`
}

func postResult(m *meet.Service, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		req := new(resultRequest)
		if !decodeJSON(w, r, req) {
			return
		}

		result, err := m.AddResult(req.EventID, req.StudentName, req.RegisterNumber, req.Team, req.Placement)
		if err != nil {
			returnError(w, "add result", err)
			return
		}

		returnHTTP(w, http.StatusCreated, result)
	}
}

func deleteResult(m *meet.Service, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		if err := m.DeleteResult(mux.Vars(r)["id"]); err != nil {
			returnError(w, "delete result", err)
			return
		}

		returnHTTP(w, http.StatusOK, nil)
	}
}

func getLeaderboard(m *meet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores, err := m.Leaderboard()
		if err != nil {
			returnError(w, "calculate leaderboard", err)
			return
		}

		returnHTTP(w, http.StatusOK, scores)
	}
}

func deleteDocument(m *meet.Service, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		if err := m.Reset(); err != nil {
			returnError(w, "reset database", err)
			return
		}

		returnHTTP(w, http.StatusOK, nil)
	}
}

type revisionsResponse struct {
	Revisions []*db.Revision `json:"revisions"`
}

func getRevisions(d *db.DB, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		rev, err := d.Revisions()
		if err != nil {
			log.Println("Unable to read database revisions:", err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		returnHTTP(w, http.StatusOK, &revisionsResponse{Revisions: rev})
	}
}

func getRevision(d *db.DB, s *MemorySessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := checkAuth(w, r, s); !ok {
			return
		}

		idStr := mux.Vars(r)["id"]
		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			returnHTTP(w, http.StatusBadRequest, nil)
			return
		}

		rev, err := d.ReadRevision(int32(id))
		if err != nil {
			log.Printf("Unable to read database revision %d: %v", id, err)
			returnHTTP(w, http.StatusInternalServerError, nil)
			return
		}

		if rev == nil {
			returnHTTP(w, http.StatusNotFound, nil)
			return
		}

		returnHTTP(w, http.StatusOK, rev)
	}
}
