package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ironsheep/fontfit-mcp/internal/config"
	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
	"github.com/ironsheep/fontfit-mcp/internal/pipeline"
	"github.com/ironsheep/fontfit-mcp/internal/store"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		MinSize: 8, MaxSize: 60,
		CoarseStep: 4, FineStep: 0.5, FineWindow: 4, BaselineStep: 2,
		ExpandRatio: 0.2, BlockSize: 11, ThresholdC: 2,
		Workers: 1, TargetWidth: 200,
		MinOCRConfidence: 0.5,
		OutputDir:        dir,
		ResultTTL:        time.Hour,
		OverlayColor:     "#FF0000", OverlayAlpha: 128,
	}
	renderer, err := fontfit.NewRenderer("", nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	svc, err := pipeline.New(pipeline.Deps{Config: cfg, Renderer: renderer, Store: fs})
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return New(svc, nil), dir
}

func TestNew(t *testing.T) {
	s, _ := newTestServer(t)
	if s.cache == nil {
		t.Fatal("New() did not share the service cache")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Routing(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		method   string
		wantNil  bool
		wantCode int
	}{
		{"initialize", false, 0},
		{"notifications/initialized", true, 0},
		{"tools/list", false, 0},
		{"ping", false, 0},
		{"resources/list", false, CodeMethodNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(ctx, &MCPRequest{JSONRPC: "2.0", ID: 1, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestGetToolDefinitions(t *testing.T) {
	want := map[string]bool{
		"image_load": true, "image_dimensions": true, "image_normalize": true,
		"fontfit_region": true, "fontfit_process_image": true, "fontfit_get_result": true,
	}
	tools := GetToolDefinitions()
	if len(tools) != len(want) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(want))
	}
	for _, tool := range tools {
		if !want[tool.Name] {
			t.Errorf("unexpected tool %q", tool.Name)
		}
		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type should be object", tool.Name)
		}
		if _, ok := tool.InputSchema["required"].([]string); !ok {
			t.Errorf("%s: missing required list", tool.Name)
		}
	}
}

func TestServe(t *testing.T) {
	s, _ := newTestServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")
	var out bytes.Buffer

	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var ids []float64
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		ids = append(ids, resp.ID.(float64))
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("response ids: got %v, want [1 2]", ids)
	}
}

// createTestImageFile writes a solid PNG and returns its path.
func createTestImageFile(t *testing.T, dir string, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}
