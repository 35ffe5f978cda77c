package handlers

import (
	"net/http"

	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandlers serves the settings screen
type SettingsHandlers struct {
	settings inbound.SettingsService
	logger   *zap.Logger
}

// NewSettingsHandlers creates a new settings handlers instance
func NewSettingsHandlers(settings inbound.SettingsService, logger *zap.Logger) *SettingsHandlers {
	return &SettingsHandlers{
		settings: settings,
		logger:   logger.Named("settings-handlers"),
	}
}

// SettingsView is what clients see of the stored settings. The key itself
// never leaves the server.
type SettingsView struct {
	HasAPIKey    bool   `json:"has_api_key"`
	MaskedAPIKey string `json:"masked_api_key,omitempty"`
	NumPeople    int    `json:"num_people"`
	MinPeople    int    `json:"min_people"`
	MaxPeople    int    `json:"max_people"`
}

// UpdateSettingsRequest saves the settings screen. Without api_key only the
// party size is stored.
type UpdateSettingsRequest struct {
	APIKey    *string `json:"api_key"`
	NumPeople *int    `json:"num_people"`
}

func newSettingsView(s domain.Settings) SettingsView {
	return SettingsView{
		HasAPIKey:    s.HasAPIKey(),
		MaskedAPIKey: s.MaskedAPIKey(),
		NumPeople:    s.NumPeople,
		MinPeople:    domain.MinNumPeople,
		MaxPeople:    domain.MaxNumPeople,
	}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandlers) Get(c *gin.Context) {
	s, err := h.settings.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, newSettingsView(s), "")
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandlers) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		saved domain.Settings
		err   error
	)
	switch {
	case req.APIKey != nil:
		numPeople := domain.DefaultNumPeople
		if req.NumPeople != nil {
			numPeople = *req.NumPeople
		} else if current, loadErr := h.settings.Load(ctx); loadErr == nil {
			numPeople = current.NumPeople
		}
		saved, err = h.settings.Save(ctx, inbound.SaveSettingsCommand{APIKey: *req.APIKey, NumPeople: numPeople})
	case req.NumPeople != nil:
		saved, err = h.settings.SetNumPeople(ctx, *req.NumPeople)
	default:
		saved, err = h.settings.Load(ctx)
	}
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, newSettingsView(saved), "Settings saved")
}

// ClearAPIKey handles DELETE /api/v1/settings/api-key
func (h *SettingsHandlers) ClearAPIKey(c *gin.Context) {
	if err := h.settings.ClearAPIKey(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}

	s, err := h.settings.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, newSettingsView(s), "API key removed")
}
