package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propscout/hmo-app/internal/admin"
	"github.com/propscout/hmo-app/internal/app"
	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/propscout/hmo-app/internal/health"
	"github.com/propscout/hmo-app/internal/listings"
	"github.com/rs/zerolog"
)

type Handler struct {
	logger   zerolog.Logger
	checks   *article4.Service
	areas    *area.Store
	health   *health.Reporter
	listings *listings.Service
	admins   *admin.Service
}

func NewHandler(l zerolog.Logger) *Handler {
	return &Handler{
		logger: l,
	}
}

func (h *Handler) NewLogWriter(w http.ResponseWriter, r *http.Request) *LogWriter {
	return NewLogWriter(h.logger, w, r)
}

// checkResponse is the wire shape of a single Article 4 check.
type checkResponse struct {
	Success        bool               `json:"success"`
	InArticle4     bool               `json:"inArticle4"`
	Areas          []area.MatchedArea `json:"areas"`
	Confidence     float64            `json:"confidence"`
	Source         string             `json:"source"`
	ProcessingTime int64              `json:"processingTime"`
	Postcode       string             `json:"postcode"`
}

func asCheckResponse(result article4.CheckResult) checkResponse {
	return checkResponse{
		Success:        result.Source != article4.SourceError,
		InArticle4:     result.InArticle4,
		Areas:          result.Areas,
		Confidence:     result.Confidence,
		Source:         result.Source,
		ProcessingTime: result.ProcessingTimeMs,
		Postcode:       result.Postcode,
	}
}

func (h *Handler) HandleCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		postcode, err := ParsePostcode(r.URL.Query().Get("postcode"))
		if err != nil {
			writer.WriteError(err)
			return
		}

		result := h.checks.CheckStatus(r.Context(), postcode)

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   asCheckResponse(result),
		})
	}
}

func (h *Handler) HandleBatchCheck() http.HandlerFunc {
	type req struct {
		Postcodes []string `json:"postcodes"`
	}
	type res struct {
		Results []checkResponse `json:"results"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		var body req
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writer.WriteError(&app.ServerResponseError{
				Err:        err,
				Msg:        "Invalid request body",
				StatusCode: http.StatusBadRequest,
			})
			return
		}

		results := h.checks.CheckBatch(r.Context(), body.Postcodes)

		out := res{Results: make([]checkResponse, len(results))}
		for i, result := range results {
			out.Results[i] = asCheckResponse(result)
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   out,
		})
	}
}

func (h *Handler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body:   h.health.GetSystemHealth(r.Context()),
		})
	}
}

func (h *Handler) HandleGetListings() http.HandlerFunc {
	type res struct {
		City     string             `json:"city"`
		Count    int                `json:"count"`
		Listings []listings.Listing `json:"listings"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)
		q := r.URL.Query()

		minBedrooms, err := ParseOptionalInt("min_bedrooms", q.Get("min_bedrooms"))
		if err != nil {
			writer.WriteError(err)
			return
		}
		maxPrice, err := ParseOptionalInt("max_price", q.Get("max_price"))
		if err != nil {
			writer.WriteError(err)
			return
		}

		found, err := h.listings.Search(r.Context(), listings.SearchParams{
			City:        q.Get("city"),
			MinBedrooms: minBedrooms,
			MaxPrice:    maxPrice,
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("HandleGetListings: search failed")
			writer.WriteError(err)
			return
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body: res{
				City:     q.Get("city"),
				Count:    len(found),
				Listings: found,
			},
		})
	}
}

func (h *Handler) HandleRefreshAreas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		if err := h.areas.Refresh(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("HandleRefreshAreas: refresh failed")
			writer.WriteError(errors.New("refresh failed"))
			return
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   h.areas.GetCacheInfo(),
		})
	}
}

func (h *Handler) HandlePostSignup() http.HandlerFunc {
	type req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type res struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		var body req
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writer.WriteError(&app.ServerResponseError{
				Err:        err,
				Msg:        "Invalid request body",
				StatusCode: http.StatusBadRequest,
			})
			return
		}

		if err := h.admins.Signup(r.Context(), body.Username, body.Password); err != nil {
			h.logger.Warn().Err(err).Msg("HandlePostSignup: signup failed")
			writer.WriteError(err)
			return
		}

		writer.Write(Response{
			Status: http.StatusCreated,
			Body:   res{Message: "Signup complete, awaiting approval"},
		})
	}
}

func (h *Handler) HandlePostLogin() http.HandlerFunc {
	type req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type res struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		var body req
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writer.WriteError(&app.ServerResponseError{
				Err:        err,
				Msg:        "Invalid request body",
				StatusCode: http.StatusBadRequest,
			})
			return
		}

		token, err := h.admins.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			h.logger.Warn().Err(err).Msg("HandlePostLogin: login failed")
			writer.WriteError(err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminTokenCookieKey,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   res{Message: "Logged in"},
		})
	}
}

func (h *Handler) HandleImportListings() http.HandlerFunc {
	type req struct {
		Listings []listings.Listing `json:"listings"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		var body req
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writer.WriteError(&app.ServerResponseError{
				Err:        err,
				Msg:        "Invalid request body",
				StatusCode: http.StatusBadRequest,
			})
			return
		}

		result := h.listings.Import(r.Context(), body.Listings)

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   result,
		})
	}
}
