package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taperedworks/enquiry-tracker/internal/classify"
	"github.com/taperedworks/enquiry-tracker/internal/match"
	"github.com/taperedworks/enquiry-tracker/internal/params"
	"github.com/taperedworks/enquiry-tracker/internal/repository"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type classifyRequest struct {
	ProjectName string `json:"project_name"`
}

type classifyResponse struct {
	ProjectName string       `json:"project_name"`
	Result      match.Result `json:"result"`
	Warning     string       `json:"warning,omitempty"`
}

// handleClassify ranks existing catalog projects against the candidate name. Catalog
// failures degrade to an empty result with an inline warning rather than an error
// response, so the UI can continue on the new-enquiry path.
func (s *Server) handleClassify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProjectName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "project_name is required")
	}

	result, warning := s.classifier.Classify(c.Request().Context(), req.ProjectName)
	return c.JSON(http.StatusOK, classifyResponse{
		ProjectName: req.ProjectName,
		Result:      result,
		Warning:     warning,
	})
}

type resolveRequest struct {
	ProjectName string `json:"project_name"`
	// Selection indexes the ranked match list; -1 means "none of the above".
	Selection int `json:"selection"`
}

type resolveResponse struct {
	EnquiryType string         `json:"enquiry_type"`
	Parameters  []params.Entry `json:"parameters,omitempty"`
	Warning     string         `json:"warning,omitempty"`
}

// handleResolve applies the human selection. A confirmed amendment pulls the full
// record and reconciles its parameters; everything else falls through as a new
// enquiry whose parameters come from the extraction endpoint instead.
func (s *Server) handleResolve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProjectName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "project_name is required")
	}

	ctx := c.Request().Context()

	result, warning := s.classifier.Classify(ctx, req.ProjectName)
	res, err := s.classifier.Resolve(ctx, result, req.Selection)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	if warning == "" {
		warning = res.Warning
	}

	resp := resolveResponse{EnquiryType: string(res.Type), Warning: warning}
	if res.Type == classify.Amendment {
		set := params.FromCatalogItem(res.Item, time.Now())
		resp.Parameters = set.Ordered()
		s.recordHistory(c, req.ProjectName, res, set)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) recordHistory(c echo.Context, projectName string, res classify.Resolution, set params.Set) {
	if s.history == nil {
		return
	}
	rec := &repository.EnquiryRecord{
		ProjectName: projectName,
		EnquiryType: string(res.Type),
		Params:      set,
	}
	if res.Candidate != nil {
		rec.MatchedItemID = res.Candidate.ID
		rec.Similarity = res.Candidate.Similarity
	}
	if err := s.history.Record(c.Request().Context(), rec); err != nil {
		s.log.Warn("http.history.record_error", "error", err)
	}
}

type extractRequest struct {
	Text        string `json:"text"`
	EnquiryType string `json:"enquiry_type"`
	ProjectName string `json:"project_name"`
	// Mode "json" asks the oracle for schema-validated JSON; default is free text.
	Mode string `json:"mode"`
}

type extractResponse struct {
	EnquiryType string         `json:"enquiry_type"`
	Parameters  []params.Entry `json:"parameters"`
	Analysis    string         `json:"analysis,omitempty"`
}

// handleExtract runs the oracle analysis over externally extracted text, for the
// new-enquiry path.
func (s *Server) handleExtract(c echo.Context) error {
	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	if req.EnquiryType == "" {
		req.EnquiryType = string(classify.NewEnquiry)
	}

	ctx := c.Request().Context()

	var (
		set      params.Set
		analysis string
		err      error
	)
	if req.Mode == "json" {
		var raw []byte
		set, raw, err = s.extractor.AnalyzeJSON(ctx, req.Text, req.EnquiryType)
		analysis = string(raw)
	} else {
		set, analysis, err = s.extractor.AnalyzeText(ctx, req.Text, req.EnquiryType)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	if s.history != nil {
		rec := &repository.EnquiryRecord{
			ProjectName: req.ProjectName,
			EnquiryType: req.EnquiryType,
			Params:      set,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			s.log.Warn("http.history.record_error", "error", err)
		}
	}

	return c.JSON(http.StatusOK, extractResponse{
		EnquiryType: req.EnquiryType,
		Parameters:  set.Ordered(),
		Analysis:    analysis,
	})
}

type exportRequest struct {
	Parameters   map[string]string `json:"parameters"`
	FullResponse string            `json:"full_response"`
}

// handleExport streams the parameters as an XLSX attachment.
func (s *Server) handleExport(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	set := params.New()
	for k, v := range req.Parameters {
		if _, ok := set[k]; ok && v != "" {
			set[k] = v
		}
	}

	blob, err := s.exporter.ParametersXLSX(set, req.FullResponse)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="Technical_Parameters.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
}

// handleHistory lists recent enquiry records, newest first.
func (s *Server) handleHistory(c echo.Context) error {
	if s.history == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "history database not configured")
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	recs, err := s.history.List(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, recs)
}
