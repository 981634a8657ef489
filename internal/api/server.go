// Package api exposes capture, scoring, and generation over REST.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quickcap/internal/aidetect"
	"quickcap/internal/classify"
	"quickcap/internal/compose"
	"quickcap/internal/config"
	"quickcap/internal/domain"
	"quickcap/internal/fetcher"
	"quickcap/internal/generator"
	"quickcap/internal/learning"
	"quickcap/internal/logging"
	"quickcap/internal/store"
	"quickcap/internal/taskparse"
)

// Server handles HTTP requests for the quickcap API.
type Server struct {
	store  *store.Store
	engine *learning.Engine
	gen    generator.Generator
	cfg    config.Config
}

// New creates a new API server. gen may be nil when no generation model
// is configured; the generate endpoint then returns 503.
func New(s *store.Store, gen generator.Generator, cfg config.Config) *Server {
	return &Server{
		store:  s,
		engine: learning.NewEngine(s),
		gen:    gen,
		cfg:    cfg,
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	mux := http.NewServeMux()

	// Captures
	mux.HandleFunc("POST /captures", s.addCapture)
	mux.HandleFunc("GET /captures", s.listCaptures)
	mux.HandleFunc("POST /captures/classify", s.classifyOnly)

	// Tasks
	mux.HandleFunc("GET /tasks", s.listTasks)

	// Copy intelligence
	mux.HandleFunc("POST /score", s.scoreCopy)
	mux.HandleFunc("POST /generate", s.generate)
	mux.HandleFunc("GET /generations", s.listGenerations)
	mux.HandleFunc("POST /generations/{id}/rating", s.rateGeneration)
	mux.HandleFunc("GET /learnings", s.globalLearnings)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	logging.Info("starting server on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, withCORS(mux))
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CaptureRequest is the request body for adding a capture.
type CaptureRequest struct {
	Content string `json:"content"`
	// TypeOverride skips classification and forces a capture type.
	TypeOverride string `json:"type_override,omitempty"`
}

// CaptureResponse reports what the capture became.
type CaptureResponse struct {
	Detection domain.DetectionResult `json:"detection"`
	Task      *domain.Task           `json:"task,omitempty"`
	Capture   *domain.Capture        `json:"capture,omitempty"`
}

func (s *Server) addCapture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	content := req.Content
	sourceURL := ""
	if fetcher.IsURL(content) {
		sourceURL = strings.TrimSpace(content)
		if text, err := fetcher.Fetch(sourceURL, s.cfg.Capture.MaxFetchChars); err == nil {
			content = text
		} else {
			logging.Error("fetch %s: %v", sourceURL, err)
		}
	}

	detection := s.classify(content)
	if req.TypeOverride != "" {
		detection = domain.DetectionResult{
			SuggestedType: domain.CaptureType(req.TypeOverride),
			Confidence:    domain.ConfidenceHigh,
			Reason:        "user override",
		}
	}

	resp := CaptureResponse{Detection: detection}

	switch detection.SuggestedType {
	case domain.CaptureTask:
		task, err := s.store.AddTask(taskparse.Parse(content, time.Now()))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Task = task
	case domain.CaptureIncome, domain.CaptureExpense:
		cents, _ := classify.ParseAmount(content)
		capture, err := s.store.AddCapture(detection.SuggestedType, content, cents, sourceURL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Capture = capture
	default:
		capture, err := s.store.AddCapture(detection.SuggestedType, content, 0, sourceURL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Capture = capture
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) classifyOnly(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	detection := s.classify(req.Content)
	out := map[string]interface{}{"detection": detection}
	if detection.SuggestedType == domain.CaptureTask {
		out["parsed"] = taskparse.Parse(req.Content, time.Now())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) classify(content string) domain.DetectionResult {
	opts := classify.DefaultOptions()
	if s.cfg.Capture.AmbiguousCurrency == "income" {
		opts.AmbiguousCurrency = domain.CaptureIncome
	}
	return classify.ClassifyWith(content, opts)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 20)

	tasks, err := s.store.ListTasks(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":  tasks,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) listCaptures(w http.ResponseWriter, r *http.Request) {
	limit, _ := pagination(r, 20)
	typ := domain.CaptureType(r.URL.Query().Get("type"))

	captures, err := s.store.ListCaptures(typ, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"captures": captures,
		"limit":    limit,
	})
}

// ScoreRequest is the request body for scoring a piece of copy.
type ScoreRequest struct {
	Text string `json:"text"`
}

func (s *Server) scoreCopy(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := aidetect.Check(req.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":     result,
		"assessment": aidetect.Assessment(result.Score),
	})
}

// GenerateRequest is the request body for a generation.
type GenerateRequest struct {
	UserID      string `json:"user_id"`
	ContentType string `json:"content_type"`
	Topic       string `json:"topic,omitempty"`
}

// GenerateResponse returns the copy plus everything that shaped it.
type GenerateResponse struct {
	Generation *domain.Generation       `json:"generation"`
	Adaptive   domain.AdaptiveParams    `json:"adaptive"`
	Pattern    *domain.FeedbackPattern  `json:"pattern,omitempty"`
	Detection  domain.AIDetectionResult `json:"detection"`
	Assessment string                   `json:"assessment"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if s.gen == nil {
		writeError(w, http.StatusServiceUnavailable, "no generation model configured")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.ContentType == "" {
		writeError(w, http.StatusBadRequest, "user_id and content_type are required")
		return
	}

	pattern := s.engine.AnalyzeFeedback(r.Context(), req.UserID, req.ContentType)
	adaptive := s.engine.AdaptiveParamsFor(pattern)

	prompt := compose.Compose(compose.Request{
		ContentType: req.ContentType,
		Topic:       req.Topic,
		Voice:       s.voice(),
		Adaptive:    adaptive,
	})

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	output, err := s.gen.Generate(ctx, prompt, compose.Temperature(s.cfg.Model.BaseTemperature, adaptive))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	detection := aidetect.Check(output)

	gen, err := s.store.AddGeneration(req.UserID, req.ContentType, req.Topic, prompt, output, detection.Score)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, GenerateResponse{
		Generation: gen,
		Adaptive:   adaptive,
		Pattern:    pattern,
		Detection:  detection,
		Assessment: aidetect.Assessment(detection.Score),
	})
}

func (s *Server) voice() domain.VoiceProfile {
	return domain.VoiceProfile{
		Name:        s.cfg.Voice.Name,
		Description: s.cfg.Voice.Description,
		Traits:      s.cfg.Voice.Traits,
		Audience:    s.cfg.Voice.Audience,
	}
}

func (s *Server) listGenerations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'user_id' is required")
		return
	}
	limit, _ := pagination(r, 20)

	gens, err := s.store.ListGenerations(userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"generations": gens,
		"limit":       limit,
	})
}

// RatingRequest is the request body for rating a generation.
type RatingRequest struct {
	Rating       float64  `json:"rating"`
	FeedbackTags []string `json:"feedback_tags,omitempty"`
}

func (s *Server) rateGeneration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 0 || req.Rating > 10 {
		writeError(w, http.StatusBadRequest, "rating must be between 0 and 10")
		return
	}

	if err := s.store.RateGeneration(id, req.Rating, req.FeedbackTags); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	gen, err := s.store.GetGeneration(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, gen)
}

func (s *Server) globalLearnings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'user_id' is required")
		return
	}

	learnings := s.engine.GlobalLearnings(r.Context(), userID)
	if learnings == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"learnings": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"learnings": learnings})
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
