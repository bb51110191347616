// bootfix - loads a handheld boot-code program, detects the infinite
// loop, and finds the single jmp/nop swap that lets it terminate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/bootfix/history"
	"github.com/chazu/bootfix/manifest"
	"github.com/chazu/bootfix/pkg/bootcode"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output (execution and repair trace)")
	disasm := flag.Bool("disasm", false, "Print an annotated program listing")
	reportPath := flag.String("report", "", "Write the CBOR repair report to this file")
	noHistory := flag.Bool("no-history", false, "Skip recording the run in the history database")
	projectDir := flag.String("C", ".", "Project directory for bootfix.toml discovery")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bootfix [options] [program-file]\n\n")
		fmt.Fprintf(os.Stderr, "Repairs a looping boot-code program and prints the final accumulator.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bootfix                        # Run instructions.txt (or bootfix.toml program path)\n")
		fmt.Fprintf(os.Stderr, "  bootfix day8.txt -disasm       # Repair day8.txt and show the patched listing\n")
		fmt.Fprintf(os.Stderr, "  bootfix -v -report out.cbor    # Trace execution and save the report\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*projectDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verbosity := m.Log.Verbosity
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("bootfix")

	programPath := m.ProgramPath()
	if flag.NArg() > 0 {
		programPath = flag.Arg(0)
	}

	prog, err := bootcode.LoadFile(programPath)
	if err != nil {
		log.Errorf("reading %s: %v", programPath, err)
		fmt.Fprintln(os.Stderr, "Something's wrong with the input file!")
		os.Exit(1)
	}
	log.Infof("loaded %d instructions from %s", len(prog), programPath)

	result, err := bootcode.Repair(prog)
	if err != nil {
		if errors.Is(err, bootcode.ErrNoRepair) {
			fmt.Fprintf(os.Stderr, "Error: tried %d candidates, %v\n", result.Trials, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if *disasm {
		fmt.Print(prog.DisassembleRepair(result))
		fmt.Println()
	}

	report := bootcode.NewRepairReport(prog, result)
	raw, err := bootcode.MarshalReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, raw, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing report: %v\n", err)
			os.Exit(1)
		}
		log.Infof("wrote report to %s", *reportPath)
	}

	if !*noHistory && !m.History.Disabled {
		if err := recordRun(m.HistoryPath(), report, raw); err != nil {
			// History is bookkeeping; a failed insert must not mask the answer.
			log.Errorf("recording run: %v", err)
		}
	}

	fmt.Printf("Our accumulator hit %d\n", result.Acc)
}

func recordRun(dbPath string, report *bootcode.RepairReport, raw []byte) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(report, raw)
}
