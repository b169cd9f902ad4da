package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mazeroute/mazeroute/pkg/buildinfo"
	apperrors "github.com/mazeroute/mazeroute/pkg/errors"
	"github.com/mazeroute/mazeroute/pkg/grid"
	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

// solveRequest is the POST /v1/solve body.
type solveRequest struct {
	Grid         string `json:"grid"`
	Facing       string `json:"facing,omitempty"`
	IncludeTiles bool   `json:"include_tiles,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`
}

// solveResponse is the POST /v1/solve success body.
type solveResponse struct {
	RunID     string         `json:"run_id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Cost      int            `json:"cost"`
	NoRoute   bool           `json:"no_route"`
	TileCount int            `json:"tile_count"`
	Tiles     []grid.Cell    `json:"tiles,omitempty"`
	Stats     pipeline.Stats `json:"stats"`
	CacheHit  bool           `json:"cache_hit"`
}

// errorResponse is the body for all error statuses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := apperrors.ValidateGridText(req.Grid); err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Facing:       req.Facing,
		IncludeTiles: req.IncludeTiles,
		Refresh:      req.Refresh,
		Logger:       s.logger.With("request_id", requestIDFrom(r.Context())),
	}
	res, err := s.runner.SolveReader(r.Context(), strings.NewReader(req.Grid), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		RunID:     res.RunID,
		Width:     res.Grid.Width,
		Height:    res.Grid.Height,
		Cost:      res.Cost,
		NoRoute:   res.NoRoute,
		TileCount: res.TileCount,
		Tiles:     res.Tiles,
		Stats:     res.Stats,
		CacheHit:  res.CacheInfo.RouteHit,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error code onto an HTTP status and writes the error
// body. Errors without a code become 500s.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, statusForCode(code), errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: apperrors.UserMessage(err),
		},
	})
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGrid, apperrors.ErrCodeInvalidHeading:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
