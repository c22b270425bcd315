// Package server exposes the fleet simulation over HTTP: a YAML scenario
// goes in, an NPV distribution comes out.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/storage-npv/internal/config"
	"github.com/iwvelando/storage-npv/internal/simulation"
	"github.com/iwvelando/storage-npv/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type simulateOptions struct {
	IncludeTrajectories bool
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Simulation endpoint (YAML scenario upload)
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Simulation endpoint for editor-driven JSON payloads
	mux.HandleFunc("/api/editor/simulate", h.handleSimulateEditor)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateResponse struct {
	NPVs                []float64              `json:"npvs"`
	Median              float64                `json:"median"`
	TenthPercentile     float64                `json:"tenthPercentile"`
	NinetiethPercentile float64                `json:"ninetiethPercentile"`
	CapitalCost         float64                `json:"capitalCost"`
	Units               int                    `json:"units"`
	HorizonYears        int                    `json:"horizonYears"`
	Seed                int64                  `json:"seed"`
	CSV                 string                 `json:"csv"`
	Trajectories        [][]float64            `json:"trajectories,omitempty"`
	Warnings            []string               `json:"warnings,omitempty"`
	Duration            string                 `json:"duration"`
	Config              map[string]interface{} `json:"config,omitempty"`
	ConfigYAML          string                 `json:"configYaml,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleSimulate")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleSimulate")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleSimulate")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleSimulate"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleSimulate")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleSimulate")
		return
	}

	h.runSimulation(w, configBytes, configMap, start, "server.handleSimulate", simulateOptions{})
}

func (h *handler) handleSimulateEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleSimulateEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleSimulateEditor")
			return
		}
		configPayload = cfgMap
	}

	options := simulateOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid options payload: expected object", "server.handleSimulateEditor")
			return
		}
		if trajectoriesVal, ok := optsMap["includeTrajectories"]; ok {
			options.IncludeTrajectories = coerceBool(trajectoriesVal)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleSimulateEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleSimulateEditor")
		return
	}

	h.runSimulation(w, configBytes, configMap, start, "server.handleSimulateEditor", options)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runSimulation(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts simulateOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := cfg.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.Warnings()

	engine := simulation.NewEngine(h.logger, cfg)
	result, err := engine.SimulateFleet()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to run simulation: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := simulateResponse{
		NPVs:                result.NPVs,
		Median:              result.Median,
		TenthPercentile:     result.TenthPercentile,
		NinetiethPercentile: result.NinetiethPercentile,
		CapitalCost:         result.CapitalCost,
		Units:               result.Units,
		HorizonYears:        result.HorizonYears,
		Seed:                result.Seed,
		CSV:                 output.CsvString(result),
		Warnings:            warnings,
		Duration:            elapsed.String(),
		Config:              configMap,
		ConfigYAML:          string(configBytes),
	}
	if opts.IncludeTrajectories {
		response.Trajectories = result.Trajectories
	}

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("units", result.Units),
		zap.Int("horizonYears", result.HorizonYears),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
