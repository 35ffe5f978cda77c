package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageFormField is the multipart field carrying the fridge photo
const ImageFormField = "image"

// KitchenHandlers serves the screens that talk to the oracle
type KitchenHandlers struct {
	kitchen inbound.KitchenService
	logger  *zap.Logger
}

// NewKitchenHandlers creates a new kitchen handlers instance
func NewKitchenHandlers(kitchen inbound.KitchenService, logger *zap.Logger) *KitchenHandlers {
	return &KitchenHandlers{
		kitchen: kitchen,
		logger:  logger.Named("kitchen-handlers"),
	}
}

// ScanFridgeRequest is the JSON form of a fridge scan
type ScanFridgeRequest struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
}

// ExportCalendarRequest selects the plan to export
type ExportCalendarRequest struct {
	Text      string   `json:"text"`
	Meals     []string `json:"meals"`
	Reference string   `json:"reference,omitempty"`
}

// RenderRequest carries arbitrary generated text
type RenderRequest struct {
	Text string `json:"text"`
}

// RenderResponse is the display and share form of a text
type RenderResponse struct {
	*inbound.Presentation
	Share inbound.ShareMessage `json:"share"`
}

// Options handles GET /api/v1/options
func (h *KitchenHandlers) Options(c *gin.Context) {
	respond(c, http.StatusOK, h.kitchen.Options(), "")
}

// ScanFridge handles POST /api/v1/fridge-scan with either a multipart
// "image" file or a JSON body holding base64 image data
func (h *KitchenHandlers) ScanFridge(c *gin.Context) {
	cmd, err := h.scanCommand(c)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.kitchen.ScanFridge(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "Ingredients identified")
}

func (h *KitchenHandlers) scanCommand(c *gin.Context) (inbound.ScanFridgeCommand, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, header, err := c.Request.FormFile(ImageFormField)
		if errors.Is(err, http.ErrMissingFile) {
			return inbound.ScanFridgeCommand{}, nil
		}
		if err != nil {
			return inbound.ScanFridgeCommand{}, bodyError(err)
		}
		defer file.Close()
		return readImage(file, header)
	}

	var req ScanFridgeRequest
	if err := bindJSON(c, &req); err != nil {
		return inbound.ScanFridgeCommand{}, err
	}
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return inbound.ScanFridgeCommand{}, apperrors.NewBadRequestError("image_base64 is not valid base64")
	}
	return inbound.ScanFridgeCommand{Image: data, MIMEType: req.MIMEType}, nil
}

func readImage(file multipart.File, header *multipart.FileHeader) (inbound.ScanFridgeCommand, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return inbound.ScanFridgeCommand{}, bodyError(err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}
	if mimeType != "" && !strings.HasPrefix(mimeType, "image/") {
		mimeType = outbound.DefaultImageMIMEType
	}
	return inbound.ScanFridgeCommand{Image: data, MIMEType: mimeType}, nil
}

// FindRecipe handles POST /api/v1/recipes
func (h *KitchenHandlers) FindRecipe(c *gin.Context) {
	var cmd inbound.FindRecipeCommand
	if err := bindJSON(c, &cmd); err != nil {
		fail(c, err)
		return
	}

	result, err := h.kitchen.FindRecipe(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "Recipe generated")
}

// SurpriseMe handles POST /api/v1/chefs-choice
func (h *KitchenHandlers) SurpriseMe(c *gin.Context) {
	var cmd inbound.SurpriseMeCommand
	if err := bindJSON(c, &cmd); err != nil {
		fail(c, err)
		return
	}

	result, err := h.kitchen.SurpriseMe(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "Recipe generated")
}

// PlanMeals handles POST /api/v1/meal-plans
func (h *KitchenHandlers) PlanMeals(c *gin.Context) {
	var cmd inbound.PlanMealsCommand
	if err := bindJSON(c, &cmd); err != nil {
		fail(c, err)
		return
	}

	result, err := h.kitchen.PlanMeals(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result, "Meal plan generated")
}

// ExportCalendar handles POST /api/v1/meal-plans/calendar. The ICS file is
// returned as an attachment unless the client asks for JSON.
func (h *KitchenHandlers) ExportCalendar(c *gin.Context) {
	var req ExportCalendarRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	cmd := inbound.ExportCalendarCommand{Text: req.Text, Meals: req.Meals}
	if req.Reference != "" {
		ref, err := parseReference(req.Reference)
		if err != nil {
			fail(c, apperrors.NewBadRequestError("reference must be a date (YYYY-MM-DD) or RFC 3339 time"))
			return
		}
		cmd.Reference = ref
	}

	doc, err := h.kitchen.ExportCalendar(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err)
		return
	}

	if c.NegotiateFormat(doc.MIMEType, gin.MIMEJSON) == gin.MIMEJSON {
		message := ""
		if doc.Notice != nil {
			message = doc.Notice.Message
		}
		respond(c, http.StatusOK, doc, message)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Header("X-Calendar-Events", strconv.Itoa(doc.Events))
	c.Data(http.StatusOK, doc.MIMEType+"; charset=utf-8", []byte(doc.Content))
}

func parseReference(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// Render handles POST /api/v1/render for JSON or plain text bodies
func (h *KitchenHandlers) Render(c *gin.Context) {
	var text string
	if strings.HasPrefix(c.ContentType(), "text/plain") {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, bodyError(err))
			return
		}
		text = string(raw)
	} else {
		var req RenderRequest
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		text = req.Text
	}

	respond(c, http.StatusOK, RenderResponse{
		Presentation: h.kitchen.Present(text),
		Share:        h.kitchen.ShareText(text),
	}, "")
}
