package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/storage-npv/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func yamlUnmarshal(data string, out interface{}) error {
	return yaml.Unmarshal([]byte(data), out)
}

const testScenarioYAML = `storage:
  capacity: 250000
  efficiency: 0.8
  hourlyLossRate: 0.00037
  thermal: false
  minPeakPrice: 0.0672
  maxPeakPrice: 0.11
  minTroughPrice: 0.01
  maxTroughPrice: 0.03
  minStorageHours: 3
  maxStorageHours: 5
financing:
  storageUnitCost: 80
  directCostFactor: 0.7
  indirectCostFactor: 0.5
  loanTermYears: 10
  loanRate: 0.08
  annualLaborCost: 10
tax:
  taxRate: 0.21
  discountRate: 0.1
  depreciationRates: [0.1429, 0.2449, 0.1749, 0.1249, 0.0893, 0.0892, 0.0893, 0.0446]
simulation:
  horizonYears: 5
  units: 20
  seed: 7
  workers: 2
`

func uploadRequest(t *testing.T, yamlBody string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "scenario.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(yamlBody)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleSimulateSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, testScenarioYAML))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp simulateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.NPVs) != 20 {
		t.Errorf("expected 20 NPVs, got %d", len(resp.NPVs))
	}
	if resp.TenthPercentile > resp.Median || resp.Median > resp.NinetiethPercentile {
		t.Errorf("expected p10 <= median <= p90, got %v, %v, %v",
			resp.TenthPercentile, resp.Median, resp.NinetiethPercentile)
	}
	if resp.CapitalCost <= 0 {
		t.Errorf("expected positive capital cost, got %v", resp.CapitalCost)
	}
	if resp.CSV == "" {
		t.Error("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if resp.Config == nil {
		t.Error("expected config data in response")
	}
	if resp.ConfigYAML == "" {
		t.Error("expected config YAML in response")
	}
	if len(resp.Trajectories) != 0 {
		t.Error("expected no trajectories unless requested")
	}
}

func TestHandleSimulateInvalidConfig(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	invalid := strings.Replace(testScenarioYAML, "minPeakPrice: 0.0672", "minPeakPrice: 0.5", 1)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, invalid))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "peak price") {
		t.Errorf("expected validation detail in response, got %s", rr.Body.String())
	}
}

func TestHandleSimulateMissingFile(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/simulate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleSimulateMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/simulate", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleSimulateEditorWithTrajectories(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	var configMap map[string]interface{}
	if err := yamlUnmarshal(testScenarioYAML, &configMap); err != nil {
		t.Fatalf("failed to build config payload: %v", err)
	}

	payload := map[string]interface{}{
		"config": configMap,
		"options": map[string]interface{}{
			"includeTrajectories": true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/editor/simulate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp simulateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Trajectories) != 20 {
		t.Fatalf("expected 20 trajectories, got %d", len(resp.Trajectories))
	}
	for unit, trajectory := range resp.Trajectories {
		if len(trajectory) != 5 {
			t.Fatalf("unit %d: expected 5 yearly entries, got %d", unit, len(trajectory))
		}
	}
}

func TestHandleSimulateEditorInvalidOptions(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodPost, "/api/editor/simulate",
		strings.NewReader(`{"config": {}, "options": "yes"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "1.2.3")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp["version"])
	}
}

func TestHandleVersionMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/version", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}
