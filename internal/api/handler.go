// Package api exposes the upload, chat and summary operations over HTTP
// with Fiber. All responses are JSON.
package api

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/statement-analyzer/internal/analysis"
	"fjacquet/statement-analyzer/internal/chat"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/parsererror"
	"fjacquet/statement-analyzer/internal/report"
	"fjacquet/statement-analyzer/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	msgNoFile = "⚠️ Please upload a .csv file with transactions."
	msgNoData = "⚠️ Please upload your transaction JSON first."
)

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Status    string `json:"status"`
	Count     int    `json:"count"`
	DatasetID string `json:"datasetId"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned by POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
	Keyword  string `json:"keyword,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Session *session.Session
	Agent   *chat.Agent
	TopN    int
	Logger  logging.Logger
}

// NewApp builds the Fiber application with every route registered.
// bodyLimit caps upload size in bytes; zero keeps Fiber's default.
func NewApp(h *Handler, bodyLimit int) *fiber.App {
	if h.Logger == nil {
		h.Logger = logging.NewLogrusAdapter("info", "text")
	}
	app := fiber.New(fiber.Config{
		AppName:               "statement-analyzer",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/upload", h.HandleUpload)
	app.Post("/api/chat", h.HandleChat)
	app.Get("/api/summary", h.HandleSummary)
}

// HandleHealth reports liveness and the loaded dataset.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	ds := h.Session.Dataset()
	return c.JSON(fiber.Map{
		"status":    "ok",
		"version":   Version,
		"records":   ds.Count,
		"datasetId": ds.ID,
	})
}

// HandleUpload replaces the session with the uploaded statement, read from
// the multipart field "file". CSV and JSON uploads are accepted.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, msgNoFile)
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	ds, err := h.Session.LoadReader(f, fh.Filename)
	if err != nil {
		if errors.Is(err, parsererror.ErrHeaderNotFound) {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("❌ Error while parsing CSV: %v", err))
		}
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("❌ Error while reading upload: %v", err))
	}

	return c.JSON(UploadResponse{
		Status:    session.StatusMessage(ds),
		Count:     ds.Count,
		DatasetID: ds.ID,
	})
}

// HandleChat answers a question against the loaded statement.
func (h *Handler) HandleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid request body. Send {\"message\": \"...\"}.")
	}
	if strings.TrimSpace(req.Message) == "" {
		return writeError(c, fiber.StatusBadRequest, "Message must not be empty.")
	}

	reply := h.Agent.Ask(c.UserContext(), h.Session, req.Message)
	return c.JSON(ChatResponse{
		Response: reply.Text,
		Keyword:  reply.Resolution.Keyword,
		Source:   string(reply.Resolution.Source),
	})
}

// HandleSummary returns the analysis summary of the loaded statement. The
// optional query parameters are month (any accepted month form) and top.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	records := h.Session.Records()
	if len(records) == 0 {
		return writeError(c, fiber.StatusNotFound, msgNoData)
	}

	topN := c.QueryInt("top", h.TopN)
	summary := analysis.Summarize(records, h.Session.Columns(), topN, c.Query("month"))
	if summary.InvalidMonth() {
		return writeError(c, fiber.StatusBadRequest, report.InvalidMonthMessage)
	}
	return c.JSON(summary)
}

func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	h.Logger.WithError(err).Warn("Request failed",
		logging.F("path", c.Path()),
		logging.F("status", code))
	return writeError(c, code, err.Error())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
