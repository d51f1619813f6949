package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Sadra-Dezdar/IBGPT/internal/service"
	service_mocks "github.com/Sadra-Dezdar/IBGPT/internal/service/mocks"
)

func TestAskHandlerSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assistant := service_mocks.NewMockAssistant(ctrl)
	assistant.EXPECT().
		Ask(gomock.Any(), service.AskRequest{Question: "How do I improve my physics IA?"}).
		Return(service.AskResponse{
			Answer:    "Focus on criterion A.",
			QueryType: "ia_feedback",
			Subject:   "Physics",
			Level:     "HL",
			References: []service.Reference{
				{Source: "guide.md", Subject: "Physics", Relevance: 0.9},
			},
		}, nil)

	handler := NewAskHandler(assistant)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask",
		strings.NewReader(`{"question": "How do I improve my physics IA?"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp AskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "Focus on criterion A." || resp.QueryType != "ia_feedback" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.References) != 1 || resp.References[0].Source != "guide.md" {
		t.Errorf("references = %+v", resp.References)
	}
}

func TestAskHandlerNilReferencesEncodeAsEmptyArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assistant := service_mocks.NewMockAssistant(ctrl)
	assistant.EXPECT().
		Ask(gomock.Any(), gomock.Any()).
		Return(service.AskResponse{Answer: "a", QueryType: "general_info"}, nil)

	handler := NewAskHandler(assistant)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "q"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"references":[]`) {
		t.Errorf("references should encode as an empty array: %s", rec.Body.String())
	}
}

func TestAskHandlerMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAskHandler(service_mocks.NewMockAssistant(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAskHandlerBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"empty question", `{"question": ""}`},
		{"missing question", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := NewAskHandler(service_mocks.NewMockAssistant(ctrl))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAskHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", &service.ValidationError{Field: "question", Message: "bad"}, http.StatusBadRequest},
		{"external service error", service.ErrExternalService, http.StatusBadGateway},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			assistant := service_mocks.NewMockAssistant(ctrl)
			assistant.EXPECT().
				Ask(gomock.Any(), gomock.Any()).
				Return(service.AskResponse{}, tt.err)

			handler := NewAskHandler(assistant)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "q"}`))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error body missing message")
			}
		})
	}
}
