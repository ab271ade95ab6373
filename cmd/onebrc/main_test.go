package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func input(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "measurements.txt")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestRunStdout(t *testing.T) {
	p := input(t, "StationA;10.0\nStationB;-5.5\nStationA;20.0\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-workers", "2", p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expect exit 0, got %d (%s)", code, stderr.String())
	}
	if got := stdout.String(); got != "{StationA=10.0/15.0/20.0, StationB=-5.5/-5.5/-5.5}\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if !strings.Contains(stderr.String(), "Time took") {
		t.Fatalf("expect timing log, got %q", stderr.String())
	}
}

func TestRunOutputFileEncounterOrder(t *testing.T) {
	p := input(t, "b;1.0\na;2.0\n")
	out := filepath.Join(t.TempDir(), "result.txt")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-impl", "single", "-order", "encounter", "-o", out, p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expect exit 0, got %d (%s)", code, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(b) != "{b=1.0/1.0/1.0, a=2.0/2.0/2.0}\n" {
		t.Fatalf("unexpected result file %q", b)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expect nothing on stdout, got %q", stdout.String())
	}
}

func TestRunMalformed(t *testing.T) {
	p := input(t, "a;1.0\nbad\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-tree", "-v", p}, &stdout, &stderr); code != 1 {
		t.Fatalf("expect exit 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expect no output, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "malformed record") {
		t.Fatalf("expect malformed record error, got %q", stderr.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	p := input(t, "a;1.0\n")
	cases := [][]string{
		{},
		{"-impl", "dumb", p},
		{"-order", "random", p},
		{"-profile", "gpu", p},
		{"-nope", p},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 2 {
			t.Fatalf("%v: expect exit 2, got %d", args, code)
		}
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{filepath.Join(t.TempDir(), "missing.txt")}, &stdout, &stderr); code != 1 {
		t.Fatalf("expect exit 1, got %d", code)
	}
}

func TestRunProfile(t *testing.T) {
	p := input(t, "a;1.0\n")
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-profile", "mem", "-profile-dir", dir, p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expect exit 0, got %d (%s)", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "mem.pprof")); err != nil {
		t.Fatalf("expect mem profile: %v", err)
	}
}

func TestRunOutputFileFailureLeavesNothing(t *testing.T) {
	p := input(t, "a;1.0\n")
	dir := t.TempDir()
	out := filepath.Join(dir, "result")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", out, p}, &stdout, &stderr); code != 1 {
		t.Fatalf("expect exit 1, got %d", code)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "result" || !entries[0].IsDir() {
		t.Fatalf("expect only the result directory, got %v", entries)
	}
}

func TestRunOutputFileReplaces(t *testing.T) {
	p := input(t, "a;1.0\n")
	out := filepath.Join(t.TempDir(), "result.txt")
	if err := os.WriteFile(out, []byte(strings.Repeat("stale\n", 100)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", out, p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expect exit 0, got %d (%s)", code, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(b) != "{a=1.0/1.0/1.0}\n" {
		t.Fatalf("unexpected result file %q", b)
	}
}
