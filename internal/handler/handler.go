package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"contribution-engine/internal/engine"
	"contribution-engine/internal/format"
	"contribution-engine/internal/model"
	"contribution-engine/internal/payroll"
	"contribution-engine/internal/settings"
)

// SettingsStore reads and saves the contribution setting.
type SettingsStore interface {
	Get(ctx context.Context) (settings.Current, error)
	Save(ctx context.Context, s model.ContributionSetting) (model.ContributionSetting, error)
	History(ctx context.Context, limit int) ([]model.SettingsChange, error)
}

// SummarySource supplies the year-to-date summary.
type SummarySource interface {
	Summary(ctx context.Context) (model.YtdSummary, payroll.Source, error)
}

type Config struct {
	Settings       SettingsStore
	Summaries      SummarySource
	Logger         *slog.Logger
	CORSOrigin     string
	RequestTimeout time.Duration
}

// Handler serves the contribution API.
type Handler struct {
	settings   SettingsStore
	summaries  SummarySource
	logger     *slog.Logger
	corsOrigin string
	timeout    time.Duration
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		settings:   cfg.Settings,
		summaries:  cfg.Summaries,
		logger:     logger,
		corsOrigin: cfg.CORSOrigin,
		timeout:    timeout,
	}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	if h.corsOrigin != "" {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", h.corsOrigin)
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")
	}

	if ctx.IsOptions() {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	} else {
		h.route(ctx)
	}

	h.logger.Debug("request",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"duration", time.Since(start))
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/":
		if allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"message": "Backend is working!"})
		}
	case "/health":
		if allow(ctx, fasthttp.MethodGet) {
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("ok")
		}
	case "/api/contribution":
		if allow(ctx, fasthttp.MethodGet, fasthttp.MethodPut) {
			if ctx.IsGet() {
				h.getContribution(ctx)
			} else {
				h.putContribution(ctx)
			}
		}
	case "/api/contribution/history":
		if allow(ctx, fasthttp.MethodGet) {
			h.getHistory(ctx)
		}
	case "/api/ytd_summary":
		if allow(ctx, fasthttp.MethodGet) {
			h.getSummary(ctx)
		}
	case "/api/projection":
		if allow(ctx, fasthttp.MethodGet, fasthttp.MethodPost) {
			if ctx.IsGet() {
				h.getProjection(ctx)
			} else {
				h.postProjection(ctx)
			}
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) getContribution(ctx *fasthttp.RequestCtx) {
	c, cancel := h.context()
	defer cancel()

	cur, err := h.settings.Get(c)
	if err != nil {
		h.internalError(ctx, "load settings", err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, cur.Setting)
}

func (h *Handler) putContribution(ctx *fasthttp.RequestCtx) {
	var s model.ContributionSetting
	if err := json.Unmarshal(ctx.PostBody(), &s); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, cancel := h.context()
	defer cancel()

	saved, err := h.settings.Save(c, s)
	if errors.Is(err, settings.ErrInvalidInput) {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.internalError(ctx, "save settings", err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, saved)
}

func (h *Handler) getHistory(ctx *fasthttp.RequestCtx) {
	limit := 0
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil || n < 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	c, cancel := h.context()
	defer cancel()

	changes, err := h.settings.History(c, limit)
	if err != nil {
		h.internalError(ctx, "list history", err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, changes)
}

func (h *Handler) getSummary(ctx *fasthttp.RequestCtx) {
	c, cancel := h.context()
	defer cancel()

	summary, source, err := h.summaries.Summary(c)
	if err != nil {
		h.internalError(ctx, "load summary", err)
		return
	}
	ctx.Response.Header.Set("X-Summary-Source", string(source))
	writeJSON(ctx, fasthttp.StatusOK, summary)
}

func (h *Handler) getProjection(ctx *fasthttp.RequestCtx) {
	h.project(ctx, model.ProjectionRequest{})
}

func (h *Handler) postProjection(ctx *fasthttp.RequestCtx) {
	var req model.ProjectionRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	h.project(ctx, req)
}

// project fills whatever req leaves out from the store and the summary
// source, then runs the engine. A summary sent in the request is checked the
// same way the payroll client checks remote ones.
func (h *Handler) project(ctx *fasthttp.RequestCtx, req model.ProjectionRequest) {
	c, cancel := h.context()
	defer cancel()

	var setting model.ContributionSetting
	if req.Settings != nil {
		setting = *req.Settings
	} else {
		cur, err := h.settings.Get(c)
		if err != nil {
			h.internalError(ctx, "load settings", err)
			return
		}
		setting = cur.Setting
	}

	var summary model.YtdSummary
	source := "request"
	if req.Summary != nil {
		if err := req.Summary.Validate(); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		summary = *req.Summary
	} else {
		s, src, err := h.summaries.Summary(c)
		if err != nil {
			h.internalError(ctx, "load summary", err)
			return
		}
		summary, source = s, string(src)
	}

	resp := engine.Process(setting, summary)
	resp.CalculationMetadata.SummarySource = source
	if resp.Projection != nil {
		d := format.Display(*resp.Projection)
		resp.Display = &d
	}

	status := fasthttp.StatusOK
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, resp)
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.timeout)
}

func (h *Handler) internalError(ctx *fasthttp.RequestCtx, op string, err error) {
	h.logger.Error("request failed", "op", op, "path", string(ctx.Path()), "error", err)
	writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
}

// allow writes 405 and returns false when the method is not one of methods.
func allow(ctx *fasthttp.RequestCtx, methods ...string) bool {
	m := string(ctx.Method())
	for _, allowed := range methods {
		if m == allowed {
			return true
		}
	}
	ctx.Response.Header.Set("Allow", strings.Join(methods, ", "))
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":500,"message":"Failed to encode response"}`)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
