package routes

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestErrorFrameEscapesMessage(t *testing.T) {
	cases := []error{
		errors.New("plain failure"),
		errors.New(`agent said "no"`),
		errors.New(`path C:\tmp\x`),
		errors.New("multi\nline"),
	}
	for _, err := range cases {
		frame := errorFrame(err)
		var decoded map[string]string
		if jerr := json.Unmarshal(frame, &decoded); jerr != nil {
			t.Fatalf("frame for %q is not valid json: %v", err, jerr)
		}
		if decoded["error"] != err.Error() {
			t.Errorf("expected %q, got %q", err.Error(), decoded["error"])
		}
	}
}
