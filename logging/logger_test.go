package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestNewLogLoggerReturnsLogger(t *testing.T) {
	if l := NewLogLogger(); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLogLoggerPrintfWritesToStdLog(t *testing.T) {
	origOutput := log.Writer()
	origFlags := log.Flags()
	origPrefix := log.Prefix()
	defer func() {
		log.SetOutput(origOutput)
		log.SetFlags(origFlags)
		log.SetPrefix(origPrefix)
	}()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	log.SetPrefix("")

	LogLogger{}.Printf("hello %s", "world")
	if !strings.Contains(buf.String(), "hello world") {
		t.Fatalf("expected log output to contain formatted message, got %q", buf.String())
	}
}
