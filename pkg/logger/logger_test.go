package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud", Format: "text"}); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New(Config{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestTextLogging(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(Config{Level: "debug", Format: "text"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	l.WithField("bank", "galicia").Info("parsed")
	if !strings.Contains(buf.String(), "parsed") || !strings.Contains(buf.String(), "galicia") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	l.WithFields(Fields{"transactions": 42}).Info("statement parsed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not valid json: %v", err)
	}
	if entry["msg"] != "statement parsed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["transactions"] != float64(42) {
		t.Errorf("transactions = %v", entry["transactions"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(Config{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn should pass at warn level")
	}
}
