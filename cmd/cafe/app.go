package main

import (
	"bitbucket.org/sotavant/cafe-backend/internal/logger"
	"bitbucket.org/sotavant/cafe-backend/internal/menu"
	"bitbucket.org/sotavant/cafe-backend/internal/metrics"
	"bitbucket.org/sotavant/cafe-backend/internal/models"
	"bitbucket.org/sotavant/cafe-backend/internal/store"
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"strconv"
	"time"
)

// формат даты как у toLocaleString('tr-TR')
const messageDateLayout = "02.01.2006 15:04:05"

type app struct {
	store store.Store
	menu  *menu.Service
	now   func() time.Time
}

func newApp(s store.Store) *app {
	return &app{
		store: s,
		menu:  menu.New(s),
		now:   time.Now,
	}
}

func (a *app) routes(staticDir string) http.Handler {
	r := mux.NewRouter()
	metrics.Instrument(r)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/menu", a.listMenu).Methods(http.MethodGet)
	api.HandleFunc("/menu", a.createMenuItem).Methods(http.MethodPost)
	api.HandleFunc("/menu/{id}", a.updateMenuItem).Methods(http.MethodPut)
	api.HandleFunc("/menu/{id}", a.deleteMenuItem).Methods(http.MethodDelete)
	api.HandleFunc("/messages", a.listMessages).Methods(http.MethodGet)
	api.HandleFunc("/messages", a.createMessage).Methods(http.MethodPost)
	api.HandleFunc("/messages/{id}", a.deleteMessage).Methods(http.MethodDelete)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir))).Methods(http.MethodGet, http.MethodHead)

	return r
}

func (a *app) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := a.menu.List(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		resp = append(resp, toMenuItem(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *app) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := a.menu.Create(r.Context(), menu.Input{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItem(item))
}

func (a *app) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.MenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := a.menu.Update(r.Context(), id, menu.Input{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuItem(item))
}

func (a *app) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.menu.Delete(r.Context(), id); err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.StatusResponse{Message: models.MessageDeleted})
}

func (a *app) createMessage(w http.ResponseWriter, r *http.Request) {
	var req models.MessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := a.store.SaveMessage(r.Context(), store.Message{
		Name:    req.Name,
		Email:   req.Email,
		Payload: req.Message,
		Date:    a.now().Format(messageDateLayout),
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	logger.Log.Debug("message saved", zap.Int64("id", id))
	writeJSON(w, http.StatusCreated, models.StatusResponse{Message: models.MessageReceived})
}

func (a *app) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := a.store.ListMessages(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, models.Message{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Message: m.Payload,
			Date:    m.Date,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *app) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	affected, err := a.store.DeleteMessage(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	logger.Log.Debug("message deleted", zap.Int64("id", id), zap.Int64("affected", affected))
	writeJSON(w, http.StatusOK, models.StatusResponse{Message: models.MessageMessageDeleted})
}

// writeError answers 400 for every failure. Store errors are reported with
// the text of the underlying cause.
func (a *app) writeError(w http.ResponseWriter, err error) {
	if menu.IsClientError(err) {
		logger.Log.Debug("rejected request", zap.Error(err))
	} else {
		logger.Log.Error("store failure", zap.Error(err))
	}

	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: rootCause(err).Error()})
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Log.Debug("bad id in path", zap.String("id", raw))
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "geçersiz id: " + raw})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
	}
}

func toMenuItem(item store.MenuItem) models.MenuItem {
	return models.MenuItem{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Category: item.Category,
	}
}
