package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lineage/pkg/buildinfo"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layout. Option fields left out
// keep the server defaults.
type LayoutRequest struct {
	Members []family.Member `json:"members"`
	pipeline.Options
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.source.Members(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if members == nil {
		members = []family.Member{}
	}
	writeJSON(w, http.StatusOK, graph.Roster{Members: members})
}

func (s *Server) handleMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateMemberID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	members, err := s.source.Members(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, ok := family.Find(members, id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeMemberNotFound, "member %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req := LayoutRequest{Options: s.defaultOptions()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err))
		return
	}
	if err := family.ValidateAll(req.Members); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.layout(w, r, req.Members, req.Options)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	members, err := s.source.Members(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.layout(w, r, members, opts)
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request, members []family.Member, opts pipeline.Options) {
	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), members, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cacheHeader(w, hit)
	writeBytes(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	members, err := s.source.Members(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts.Formats = []string{pipeline.FormatSVG}
	res, err := s.runner.Execute(r.Context(), members, opts)
	if err != nil {
		card, ok := pipeline.ErrorCard(err, opts)
		if !ok {
			s.writeError(w, r, err)
			return
		}
		writeBytes(w, StatusFor(errors.GetCode(err)), "image/svg+xml", card)
		return
	}
	cacheHeader(w, res.CacheInfo.LayoutHit)
	writeBytes(w, http.StatusOK, "image/svg+xml", res.Artifacts[pipeline.FormatSVG])
}

// defaultOptions returns a copy of the server defaults that does not share
// margins with them. The frame is already resolved, so a request that sets
// width or height to zero gets a degenerate-area error.
func (s *Server) defaultOptions() pipeline.Options {
	opts := s.defaults
	if s.defaults.Margins != nil {
		m := *s.defaults.Margins
		opts.Margins = &m
	}
	opts.Formats = nil
	opts.Logger = s.logger
	opts.SetLayoutDefaults()
	return opts
}

func (s *Server) queryOptions(q url.Values) (pipeline.Options, error) {
	opts := s.defaultOptions()
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		if v := q.Get(p.name); v != "" {
			f, err := parseNumber(p.name, v)
			if err != nil {
				return opts, err
			}
			*p.dst = f
		}
	}
	if v := q.Get("margin"); v != "" {
		f, err := parseNumber("margin", v)
		if err != nil {
			return opts, err
		}
		m := lineage.UniformMargins(f)
		opts.Margins = &m
	}
	if v := q.Get("type"); v != "" {
		opts.VizType = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "detailed: %q is not a boolean", v)
		}
		opts.Detailed = b
	}
	// Fill in the rest so that error cards get the requested frame size.
	opts.SetLayoutDefaults()
	return opts, nil
}

func parseNumber(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
	}
	return f, nil
}
