package bootcode

import (
	"bytes"
	"testing"
)

func TestReportRoundTrip(t *testing.T) {
	p := prog(t, sampleLoop, 9)
	res, err := Repair(p)
	if err != nil {
		t.Fatalf("Repair failed: %v", err)
	}

	report := NewRepairReport(p, res)
	data, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport failed: %v", err)
	}

	got, err := UnmarshalReport(data)
	if err != nil {
		t.Fatalf("UnmarshalReport failed: %v", err)
	}

	if got.ProgramHash != p.HashString() {
		t.Errorf("Expected hash %s, got %s", p.HashString(), got.ProgramHash)
	}
	if got.Acc != 8 || got.Patched != 7 || !got.Terminated {
		t.Errorf("Unexpected report contents: %+v", got)
	}
	if len(got.LoopPath) != len(res.LoopPath) {
		t.Errorf("Expected loop path %v, got %v", res.LoopPath, got.LoopPath)
	}
}

func TestReportEncodingIsDeterministic(t *testing.T) {
	p := prog(t, sampleLoop, 9)
	res, err := Repair(p)
	if err != nil {
		t.Fatalf("Repair failed: %v", err)
	}
	report := NewRepairReport(p, res)

	a, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport failed: %v", err)
	}
	b, err := MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Expected canonical encoding to be byte-stable")
	}
}

func TestUnmarshalReportRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalReport([]byte("not cbor at all")); err == nil {
		t.Error("Expected an error for invalid CBOR")
	}
}
