package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/chazu/bootfix/pkg/bootcode"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), ".bootfix", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(t *testing.T) (*bootcode.RepairReport, []byte) {
	t.Helper()
	prog := bootcode.ParseString("nop +0\nacc +1\njmp +4\nacc +3\njmp -3\nacc -99\nacc +1\njmp -4\nacc +6")
	res, err := bootcode.Repair(prog)
	if err != nil {
		t.Fatalf("Repair failed: %v", err)
	}
	report := bootcode.NewRepairReport(prog, res)
	raw, err := bootcode.MarshalReport(report)
	if err != nil {
		t.Fatalf("MarshalReport failed: %v", err)
	}
	return report, raw
}

func TestRecordAndLookup(t *testing.T) {
	store := openTestStore(t)
	report, raw := sampleReport(t)

	if err := store.Record(report, raw); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.LastForProgram(report.ProgramHash)
	if err != nil {
		t.Fatalf("LastForProgram failed: %v", err)
	}
	if got.Acc != report.Acc || got.Patched != report.Patched {
		t.Errorf("Expected acc=%d patched=%d, got acc=%d patched=%d",
			report.Acc, report.Patched, got.Acc, got.Patched)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 run, got %d", n)
	}
}

func TestLastForProgramReturnsNewest(t *testing.T) {
	store := openTestStore(t)
	report, raw := sampleReport(t)

	if err := store.Record(report, raw); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	second := *report
	second.Trials = 99
	raw2, err := bootcode.MarshalReport(&second)
	if err != nil {
		t.Fatalf("MarshalReport failed: %v", err)
	}
	if err := store.Record(&second, raw2); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.LastForProgram(report.ProgramHash)
	if err != nil {
		t.Fatalf("LastForProgram failed: %v", err)
	}
	if got.Trials != 99 {
		t.Errorf("Expected the newest run (trials=99), got trials=%d", got.Trials)
	}
}

func TestLastForProgramMissing(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LastForProgram("deadbeef"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	report, raw := sampleReport(t)
	if err := store.Record(report, raw); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.LastForProgram(report.ProgramHash); err != nil {
		t.Errorf("Expected recorded run after reopen, got %v", err)
	}
}
