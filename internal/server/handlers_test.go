package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/factfence/rag-controller/internal/config"
	"github.com/factfence/rag-controller/internal/engine"
)

// #region fakes

type fakeEngine struct {
	result       engine.AnswerResult
	lastQuestion string
}

func (f *fakeEngine) Answer(_ context.Context, question string) engine.AnswerResult {
	f.lastQuestion = question
	return f.result
}

type fakeCounts struct{ facts, external int }

func (f fakeCounts) Counts() (int, int) { return f.facts, f.external }

func newTestServer(result engine.AnswerResult) (*Server, *fakeEngine) {
	eng := &fakeEngine{result: result}
	srv := New(eng, fakeCounts{facts: 12, external: 4}, config.ServerConfig{}, zerolog.Nop())
	return srv, eng
}

// #endregion fakes

func TestHandleAsk(t *testing.T) {
	srv, eng := newTestServer(engine.AnswerResult{
		Answer: "AED 149,900 [facts:F020:c0].",
		Status: engine.StatusAnswered,
		Citations: []engine.Citation{
			{Source: engine.CorpusFacts, DocID: "F020", ChunkID: "c0"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"What's the price?"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code: got %d, want 200", rec.Code)
	}
	if eng.lastQuestion != "What's the price?" {
		t.Errorf("question: got %q", eng.lastQuestion)
	}

	var body struct {
		Answer    string `json:"answer"`
		Status    string `json:"status"`
		Citations []struct {
			Source  string `json:"source"`
			DocID   string `json:"doc_id"`
			ChunkID string `json:"chunk_id"`
		} `json:"citations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "answered" {
		t.Errorf("status: got %q", body.Status)
	}
	if len(body.Citations) != 1 || body.Citations[0].Source != "facts" ||
		body.Citations[0].DocID != "F020" || body.Citations[0].ChunkID != "c0" {
		t.Errorf("citations: %+v", body.Citations)
	}
}

func TestHandleAskValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty-question", `{"question":""}`},
		{"whitespace-question", `{"question":"   "}`},
		{"malformed-json", `{"question"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(engine.AnswerResult{})
			req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("code: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleAskErrorStaysHTTP200(t *testing.T) {
	srv, _ := newTestServer(engine.AnswerResult{
		Answer:    "I'm sorry, I'm unable to generate a response at the moment. Please try again later.",
		Status:    engine.StatusError,
		Citations: []engine.Citation{},
	})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"q"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("engine outcomes ride in the envelope, got HTTP %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"error"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(engine.AnswerResult{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code: got %d", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.FactsDocuments != 12 || body.ExternalDocuments != 4 {
		t.Errorf("counts: %+v", body)
	}
}

func TestHandleRoot(t *testing.T) {
	srv, _ := newTestServer(engine.AnswerResult{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("code: got %d", rec.Code)
	}
}
