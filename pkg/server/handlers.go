package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stackchart/pkg/chart/coord"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/recipe"
	"github.com/matzehuels/stackchart/pkg/store"
)

type createRequest struct {
	Title  string        `json:"title"`
	Recipe string        `json:"recipe"`
	Fields recipe.Fields `json:"fields"`
	// Either inline rows or a path below the server's data directory.
	Data       []data.Datum `json:"data"`
	Source     string       `json:"source"`
	DataFormat string       `json:"data_format"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Theme      string       `json:"theme"`
}

func (s *Server) createChart(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	rows := req.Data
	if rows == nil {
		var err error
		if rows, err = s.loadSource(r, req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if len(rows) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidData, "chart has no rows"))
		return
	}

	rec := &store.Record{
		Title:  req.Title,
		Recipe: req.Recipe,
		Fields: req.Fields,
		Data:   rows,
		Width:  req.Width,
		Height: req.Height,
		Theme:  req.Theme,
	}
	if rec.Width == 0 {
		rec.Width = pipeline.DefaultWidth
	}
	if rec.Height == 0 {
		rec.Height = pipeline.DefaultHeight
	}
	if err := rec.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Create(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("created chart", "id", rec.ID, "recipe", rec.Recipe, "rows", len(rec.Data))
	writeJSON(w, http.StatusCreated, rec)
}

// loadSource reads a create request's source file below DataDir.
func (s *Server) loadSource(r *http.Request, req createRequest) ([]data.Datum, error) {
	if req.Source == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "data or source is required")
	}
	if s.cfg.DataDir == "" {
		return nil, errors.New(errors.ErrCodeUnsupported, "file sources are disabled on this server")
	}
	if err := errors.ValidatePath(req.Source); err != nil {
		return nil, err
	}
	return s.runner.Load(r.Context(), pipeline.Options{
		Source:     filepath.Join(s.cfg.DataDir, filepath.FromSlash(req.Source)),
		DataFormat: req.DataFormat,
	})
}

func (s *Server) listCharts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]store.Summary, len(recs))
	for i, rec := range recs {
		out[i] = rec.Summary()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordOptions converts a record to pipeline options, applying the query
// overrides width, height, theme and scale.
func recordOptions(rec *store.Record, r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Rows:   rec.Data,
		Recipe: rec.Recipe,
		Fields: rec.Fields,
		Title:  rec.Title,
		Width:  rec.Width,
		Height: rec.Height,
		Theme:  rec.Theme,
	}
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &opts.Width}, {"height", &opts.Height}, {"scale", &opts.Scale}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", p.name, v)
		}
		*p.dst = f
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	return opts, nil
}

func (s *Server) renderChart(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := recordOptions(rec, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.Chart != nil {
		defer res.Chart.Destroy()
	}

	cacheState := "MISS"
	if res.CacheInfo.RenderHit {
		cacheState = "HIT"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type tooltipItem struct {
	Title string     `json:"title"`
	Name  string     `json:"name"`
	Value string     `json:"value"`
	Color string     `json:"color,omitempty"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Data  data.Datum `json:"data"`
}

type tooltipResponse struct {
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	InPlot bool          `json:"in_plot"`
	Items  []tooltipItem `json:"items"`
}

func (s *Server) tooltip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y must be numbers"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := recordOptions(rec, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	c, err := pipeline.Build(rec.Data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer c.Destroy()

	p := coord.Point{X: x, Y: y}
	resp := tooltipResponse{X: x, Y: y, InPlot: c.IsPointInPlot(p), Items: []tooltipItem{}}
	if resp.InPlot {
		for _, it := range c.GetTooltipItems(p) {
			resp.Items = append(resp.Items, tooltipItem{
				Title: it.Title,
				Name:  it.Name,
				Value: it.Value,
				Color: it.Color,
				X:     it.X,
				Y:     it.Y,
				Data:  it.Data,
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
