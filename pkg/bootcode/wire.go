package bootcode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bootcode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// RepairReport is the machine-readable record of one repair run, suitable
// for writing to disk or storing in the run history.
type RepairReport struct {
	ProgramHash string `cbor:"program_hash"`
	Length      int    `cbor:"length"`
	Terminated  bool   `cbor:"terminated"`
	Patched     int    `cbor:"patched"` // -1 when no patch was needed
	Acc         int64  `cbor:"acc"`
	LoopPath    []int  `cbor:"loop_path,omitempty"`
	Trials      int    `cbor:"trials"`
}

// NewRepairReport builds a report from a program and its repair result.
func NewRepairReport(prog Program, res RepairResult) *RepairReport {
	return &RepairReport{
		ProgramHash: prog.HashString(),
		Length:      len(prog),
		Terminated:  true,
		Patched:     res.Patched,
		Acc:         res.Acc,
		LoopPath:    res.LoopPath,
		Trials:      res.Trials,
	}
}

// MarshalReport serializes a RepairReport to CBOR bytes.
func MarshalReport(r *RepairReport) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalReport deserializes a RepairReport from CBOR bytes.
func UnmarshalReport(data []byte) (*RepairReport, error) {
	var r RepairReport
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("bootcode: unmarshal report: %w", err)
	}
	return &r, nil
}
