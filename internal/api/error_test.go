package api

import (
	"net/http"
	"testing"
)

func TestNormalize_ServerErrorString(t *testing.T) {
	apiErr := normalize(http.StatusInternalServerError, []byte(`{"error":"boom"}`))

	if apiErr.Kind != KindServer {
		t.Fatalf("Kind = %v, want KindServer", apiErr.Kind)
	}
	if apiErr.Message != "boom" {
		t.Fatalf("Message = %q, want the server string verbatim", apiErr.Message)
	}
}

func TestNormalize_ValidationMapFlattens(t *testing.T) {
	body := []byte(`{"errors":{"name":["Name is required"],"email":["Email is required","Email is invalid"]}}`)
	apiErr := normalize(http.StatusUnprocessableEntity, body)

	if apiErr.Kind != KindValidation {
		t.Fatalf("Kind = %v, want KindValidation", apiErr.Kind)
	}
	// Fields are flattened in sorted order so the message is deterministic.
	want := "Email is required\nEmail is invalid\nName is required"
	if apiErr.Message != want {
		t.Fatalf("Message = %q, want %q", apiErr.Message, want)
	}
	if len(apiErr.Fields["email"]) != 2 {
		t.Fatalf("Fields not carried through: %+v", apiErr.Fields)
	}
}

func TestNormalize_ValidationWinsOverErrorString(t *testing.T) {
	body := []byte(`{"error":"generic","errors":{"name":["Name is required"]}}`)
	apiErr := normalize(http.StatusUnprocessableEntity, body)

	if apiErr.Message != "Name is required" {
		t.Fatalf("Message = %q, validation map should win", apiErr.Message)
	}
}

func TestNormalize_UnauthorizedKind(t *testing.T) {
	apiErr := normalize(http.StatusUnauthorized, nil)

	if apiErr.Kind != KindUnauthorized {
		t.Fatalf("Kind = %v, want KindUnauthorized", apiErr.Kind)
	}
	if apiErr.Message != GenericMessage {
		t.Fatalf("Message = %q, want generic fallback for a bodyless 401", apiErr.Message)
	}
}

func TestNormalize_UnrecognizedShapeFallsBack(t *testing.T) {
	for _, body := range [][]byte{nil, []byte(`not json`), []byte(`{"something":"else"}`)} {
		apiErr := normalize(http.StatusBadGateway, body)
		if apiErr.Kind != KindUnknown {
			t.Fatalf("Kind = %v for %q, want KindUnknown", apiErr.Kind, body)
		}
		if apiErr.Message != GenericMessage {
			t.Fatalf("Message = %q for %q, want generic fallback", apiErr.Message, body)
		}
	}
}

func TestNormalize_ErrorMessageFieldNotPreferred(t *testing.T) {
	// errorMessage is part of the recognized wire shape but never wins.
	apiErr := normalize(http.StatusBadRequest, []byte(`{"error":"real","errorMessage":"decoy"}`))
	if apiErr.Message != "real" {
		t.Fatalf("Message = %q, want %q", apiErr.Message, "real")
	}
}
