package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/driftline/infinite-library/internal/domain"
	"github.com/driftline/infinite-library/internal/store"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	store    *store.SettingsStore
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewSettingsHandler(s *store.SettingsStore, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  s,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// every surface on the machine may watch, origin carries no
			// meaning for a local archive
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// storageNotice rides along on every settings response so callers cannot
// miss where the blob lives: a plain local file, secret included.
type storageNotice struct {
	Location  string `json:"location"`
	Encrypted bool   `json:"encrypted"`
}

var localPlaintext = storageNotice{Location: "local", Encrypted: false}

type settingsResponse struct {
	Settings domain.Settings `json:"settings"`
	Storage  storageNotice   `json:"storage"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse{
		Settings: h.store.Load(),
		Storage:  localPlaintext,
	})
}

// Put replaces the settings wholesale. Callers that want to keep what is
// stored must load, modify, and send the whole object back.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.Save(req); err != nil {
		h.logger.Error("settings persist failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to persist settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: req, Storage: localPlaintext})
}

// Watch upgrades to a websocket and streams one frame per settings write,
// starting with the current value so a surface renders without waiting
// for an edit. The subscription is dropped when the socket goes away.
func (h *SettingsHandler) Watch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the handshake error
		h.logger.Debug("settings watch upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := make(chan domain.Settings, 8)
	cancel := h.store.Subscribe(func(s domain.Settings) {
		select {
		case updates <- s:
		default:
			// a stalled watcher loses frames rather than blocking writers
		}
	})
	defer cancel()

	if err := conn.WriteJSON(h.store.Load()); err != nil {
		return
	}

	// reader goroutine exists only to notice the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case s := <-updates:
			if err := conn.WriteJSON(s); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
