package handlers

import (
  "errors"
  "net/http"
  "strconv"
  "strings"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/passosperdidos/parlamento-backend/internal/logger"
  "github.com/passosperdidos/parlamento-backend/internal/repos"
  "github.com/passosperdidos/parlamento-backend/internal/services"
)

type InitiativeHandler struct {
  service services.InitiativeService
  log     *logger.Logger
}

func NewInitiativeHandler(service services.InitiativeService, baseLog *logger.Logger) *InitiativeHandler {
  handlerLog := baseLog.With("handler", "InitiativeHandler")
  return &InitiativeHandler{service: service, log: handlerLog}
}

// List handles GET /api/projetos.
func (h *InitiativeHandler) List(c *gin.Context) {
  filter := repos.InitiativeFilter{
    Type:              c.Query("type"),
    TitleContains:     c.Query("title_contains"),
    AuthorName:        c.Query("author_name"),
    AuthorParty:       c.Query("author_party"),
    PhaseName:         c.Query("phase_name"),
    LegislatureNumber: c.Query("legislature"),
    InitiativeNumber:  c.Query("initiative_number"),
  }
  if raw := c.Query("type_in"); raw != "" {
    for _, v := range strings.Split(raw, ",") {
      if v = strings.TrimSpace(v); v != "" {
        filter.Types = append(filter.Types, v)
      }
    }
  }
  var err error
  // start_date/end_date are the older names for the same range.
  if filter.DateAfter, err = parseQueryDate(firstQuery(c, "date_after", "start_date")); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  if filter.DateBefore, err = parseQueryDate(firstQuery(c, "date_before", "end_date")); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_date", err)
    return
  }
  filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
  filter.Size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))

  page, err := h.service.List(c.Request.Context(), filter)
  if err != nil {
    h.log.Error("listing initiatives", "error", err)
    RespondError(c, http.StatusInternalServerError, "list_failed", err)
    return
  }
  RespondOK(c, page)
}

// Get handles GET /api/projetos/:external_id.
func (h *InitiativeHandler) Get(c *gin.Context) {
  externalID := c.Param("external_id")
  ini, err := h.service.Get(c.Request.Context(), externalID)
  if err != nil {
    if errors.Is(err, services.ErrNotFound) {
      RespondError(c, http.StatusNotFound, "not_found", errors.New("initiative not found"))
      return
    }
    h.log.Error("loading initiative", "external_id", externalID, "error", err)
    RespondError(c, http.StatusInternalServerError, "get_failed", err)
    return
  }
  RespondOK(c, ini)
}

// Types handles GET /api/types.
func (h *InitiativeHandler) Types(c *gin.Context) {
  values, err := h.service.Types(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "types_failed", err)
    return
  }
  RespondOK(c, values)
}

// PhaseNames handles GET /api/phases.
func (h *InitiativeHandler) PhaseNames(c *gin.Context) {
  values, err := h.service.PhaseNames(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "phases_failed", err)
    return
  }
  RespondOK(c, values)
}

// Parties handles GET /api/parties.
func (h *InitiativeHandler) Parties(c *gin.Context) {
  values, err := h.service.Parties(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "parties_failed", err)
    return
  }
  RespondOK(c, values)
}

func firstQuery(c *gin.Context, names ...string) string {
  for _, name := range names {
    if v := c.Query(name); v != "" {
      return v
    }
  }
  return ""
}

func parseQueryDate(raw string) (*time.Time, error) {
  if raw == "" {
    return nil, nil
  }
  t, err := time.Parse("2006-01-02", raw)
  if err != nil {
    return nil, errors.New("dates must be YYYY-MM-DD")
  }
  return &t, nil
}
