package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wisewallet/backend/apperr"
	"wisewallet/backend/middleware"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		kind           apperr.Kind
		providerStatus int
		expected       int
	}{
		{apperr.KindValidation, http.StatusBadGateway, http.StatusBadRequest},
		{apperr.KindAuth, http.StatusBadGateway, http.StatusUnauthorized},
		{apperr.KindForbidden, http.StatusBadGateway, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusBadGateway, http.StatusNotFound},
		{apperr.KindProvider, http.StatusBadGateway, http.StatusBadGateway},
		{apperr.KindProvider, http.StatusBadRequest, http.StatusBadRequest},
		{apperr.KindInternal, http.StatusBadRequest, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := statusFor(tc.kind, tc.providerStatus); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestErrorResponder(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		showDetail      bool
		expectedStatus  int
		expectedMessage string
		expectedDetail  string
	}{
		{"validation", apperr.Validation("Invalid date"), true, http.StatusBadRequest, "Invalid date", ""},
		{"provider with cause", apperr.Provider("Failed to fetch expenses", errors.New("db locked")), true, http.StatusBadRequest, "Failed to fetch expenses", "db locked"},
		{"provider in production", apperr.Provider("Failed to fetch expenses", errors.New("db locked")), false, http.StatusBadRequest, "Failed to fetch expenses", ""},
		{"unclassified", errors.New("nil pointer"), true, http.StatusInternalServerError, "Something went wrong!", "nil pointer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			responder := errorResponder{providerStatus: http.StatusBadRequest, showDetail: tc.showDetail}
			rr := httptest.NewRecorder()
			responder.respond(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
			var body middleware.ErrorBody
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Message != tc.expectedMessage {
				t.Errorf("Expected message %q, got %q", tc.expectedMessage, body.Message)
			}
			if body.Error != tc.expectedDetail {
				t.Errorf("Expected detail %q, got %q", tc.expectedDetail, body.Error)
			}
		})
	}
}

func TestFlexString(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{`"4.50"`, "4.50", false},
		{`4.5`, "4.5", false},
		{`2026`, "2026", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"a":1}`, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			var v struct {
				F flexString `json:"f"`
			}
			err := json.Unmarshal([]byte(`{"f":`+tc.input+`}`), &v)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(v.F) != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, v.F)
			}
		})
	}
}
