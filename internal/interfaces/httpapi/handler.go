package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/israelis-abroad/footballmap/internal/usecase"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Handler struct {
	playerService  *usecase.PlayerService
	fixtureService *usecase.FixtureService
	logger         *logging.Logger
	page           PageConfig
}

// PageConfig feeds the landing page template.
type PageConfig struct {
	Title            string
	NextGamesEnabled bool
}

func NewHandler(
	playerService *usecase.PlayerService,
	fixtureService *usecase.FixtureService,
	page PageConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if page.Title == "" {
		page.Title = "Israeli Players Abroad"
	}

	return &Handler{
		playerService:  playerService,
		fixtureService: fixtureService,
		logger:         logger,
		page:           page,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Index")
	defer span.End()

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.page); err != nil {
		h.logger.ErrorContext(ctx, "render index failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
