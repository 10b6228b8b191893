// Package api exposes the prediction service over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gomgca/app"
	"gomgca/domain/calibration"
	"gomgca/domain/mgca"
	"gomgca/internal"
	"gomgca/internal/errors"
)

// App is the HTTP API application.
type App struct {
	router *chi.Mux
	svc    *app.PredictionService
	log    *internal.Logger
}

// NewApp creates the API application and mounts its routes.
func NewApp(svc *app.PredictionService, log *internal.Logger) *App {
	a := &App{
		router: chi.NewRouter(),
		svc:    svc,
		log:    log,
	}
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/species", a.handleSpecies)
		r.Post("/predict", a.handlePredict)
	})
	return a
}

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

// predictRequest is the JSON body for POST /api/predict. Scalar salinity,
// ph, and omega may be sent as single-element arrays.
type predictRequest struct {
	SeaTemp  []float64 `json:"seatemp"`
	Cleaning []float64 `json:"cleaning"`
	Salinity []float64 `json:"salinity"`
	PH       []float64 `json:"ph"`
	Omega    []float64 `json:"omega"`
	Species  string    `json:"species"`
	Age      *float64  `json:"age,omitempty"`
	Seed     int64     `json:"seed"`
}

type predictResponse struct {
	Species     string      `json:"species"`
	Draws       int         `json:"draws"`
	Percentiles [][]float64 `json:"percentiles"`
	Q           []float64   `json:"q"`
}

func (a *App) handleSpecies(w http.ResponseWriter, r *http.Request) {
	species := calibration.CanonicalSpecies()
	names := make([]string, len(species))
	for i, sp := range species {
		names[i] = sp.String()
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"species": names})
}

func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	res, err := a.svc.Predict(r.Context(), app.PredictRequest{
		SeaTemp:  req.SeaTemp,
		Cleaning: req.Cleaning,
		Salinity: req.Salinity,
		PH:       req.PH,
		Omega:    req.Omega,
		Species:  req.Species,
		Age:      req.Age,
		Seed:     req.Seed,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, predictResponse{
		Species:     res.Prediction.Species().String(),
		Draws:       res.Prediction.DrawCount(),
		Percentiles: res.Percentiles,
		Q:           append([]float64(nil), mgca.DefaultPercentiles...),
	})
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidSpecies, errors.CodeCovariateShape, errors.CodeAgeOutOfRange, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		a.log.Error("request failed: %v", err)
	}
	a.writeJSON(w, status, map[string]string{"code": code, "error": err.Error()})
}
