package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"iactidy/internal"
	"iactidy/internal/config"
	"iactidy/internal/storage"
)

const (
	sheetAssess     = "ASSESS"
	sheetReccPrefix = "RECC"
	sheetPPI        = "PPI"
	sheetEmissions  = "State Emissions"

	// ColRECC tags each recommendation with its origin sheet.
	ColRECC = "RECC"

	FileAssessTidy = "iac_assess_tidy.csv"
	FileReccTidy   = "iac_recc_tidy.csv"
	FilePPITidy    = "ppi_tidy.csv"
	FileGeneration = "generation.csv"
	FileEmissions  = "emissions_tidy.csv"
	FileNullNAICS  = "null_naics_v3.csv"
	FileWorkbook   = "tidy_tables.xlsx"

	metaLastRun = "last_run_trace"
)

// Inputs are the raw sheets of one batch.
type Inputs struct {
	Assess     *internal.Table
	Recc       *internal.Table
	PPI        *internal.Table
	Generation *internal.Table
	Emissions  *internal.Table
}

// Output is a tidy table bound to its file name.
type Output struct {
	File  string
	Table *internal.Table
}

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type RunResult struct {
	TraceID string
	Outputs []internal.OutputRecord
}

// Run loads every source, builds the tidy tables and writes them. Nothing is
// written unless every source loads and transforms.
func (s *ProcessingService) Run() (RunResult, error) {
	traceID := uuid.NewString()
	start := time.Now()
	runID, err := s.db.StartRun(traceID, start.UTC().Format(time.RFC3339))
	if err != nil {
		return RunResult{}, err
	}
	timings := map[string]float64{}
	fail := func(err error) (RunResult, error) {
		timings["totalMs"] = float64(time.Since(start).Milliseconds())
		_ = s.db.FinishRun(runID, internal.RunFailed, time.Now().UTC().Format(time.RFC3339), nil, timings, err)
		return RunResult{TraceID: traceID}, err
	}

	slog.Info("run started", slog.String("trace_id", traceID), slog.String("raw_data_dir", s.cfg.RawDataDir))

	stage := time.Now()
	in, err := LoadInputs(s.cfg)
	if err != nil {
		return fail(err)
	}
	timings["loadMs"] = float64(time.Since(stage).Milliseconds())

	stage = time.Now()
	outputs, err := Transform(in, s.cfg.PPIDefault)
	if err != nil {
		return fail(err)
	}
	timings["transformMs"] = float64(time.Since(stage).Milliseconds())

	stage = time.Now()
	records, err := s.export(outputs)
	if err != nil {
		return fail(err)
	}
	timings["exportMs"] = float64(time.Since(stage).Milliseconds())
	timings["totalMs"] = float64(time.Since(start).Milliseconds())

	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.Name] = r.Rows
	}
	if err := s.db.InsertOutputs(runID, records); err != nil {
		return RunResult{}, err
	}
	if err := s.db.FinishRun(runID, internal.RunSucceeded, time.Now().UTC().Format(time.RFC3339), counts, timings, nil); err != nil {
		return RunResult{}, err
	}
	if err := s.db.SetMetadata(metaLastRun, traceID); err != nil {
		return RunResult{}, err
	}

	slog.Info("run finished", slog.String("trace_id", traceID), slog.Float64("total_ms", timings["totalMs"]))
	return RunResult{TraceID: traceID, Outputs: records}, nil
}

// RunNullNAICS writes only the null-classification diagnostic extract.
func (s *ProcessingService) RunNullNAICS() (internal.OutputRecord, error) {
	wb, err := LoadWorkbook(s.cfg.IACPath())
	if err != nil {
		return internal.OutputRecord{}, err
	}
	defer wb.Close()

	assess, recc, err := loadIAC(wb)
	if err != nil {
		return internal.OutputRecord{}, err
	}
	extract, err := NullNAICSEnergy(assess, recc)
	if err != nil {
		return internal.OutputRecord{}, err
	}
	path := s.cfg.OutputPath(FileNullNAICS)
	if err := ExportCSV(extract, path); err != nil {
		return internal.OutputRecord{}, err
	}
	return internal.OutputRecord{Name: outputName(FileNullNAICS), Path: path, Rows: extract.Len()}, nil
}

func (s *ProcessingService) export(outputs []Output) ([]internal.OutputRecord, error) {
	records := make([]internal.OutputRecord, 0, len(outputs)+1)
	tables := make([]*internal.Table, 0, len(outputs))
	for _, o := range outputs {
		path := s.cfg.OutputPath(o.File)
		if err := ExportCSV(o.Table, path); err != nil {
			return nil, err
		}
		records = append(records, internal.OutputRecord{Name: outputName(o.File), Path: path, Rows: o.Table.Len()})
		tables = append(tables, o.Table)
	}

	if s.cfg.ExportXLSX {
		path := s.cfg.OutputPath(FileWorkbook)
		if err := ExportXLSX(tables, path); err != nil {
			return nil, fmt.Errorf("export %s: %w", path, err)
		}
		records = append(records, internal.OutputRecord{Name: outputName(FileWorkbook), Path: path})
	}
	return records, nil
}

// LoadInputs reads every source sheet. Any missing workbook or sheet fails
// the whole load.
func LoadInputs(cfg config.Config) (Inputs, error) {
	var in Inputs

	iac, err := LoadWorkbook(cfg.IACPath())
	if err != nil {
		return in, err
	}
	defer iac.Close()
	if in.Assess, in.Recc, err = loadIAC(iac); err != nil {
		return in, err
	}

	if in.PPI, err = readOne(cfg.PPIPath(), sheetPPI, 0); err != nil {
		return in, err
	}
	if in.Generation, err = readOne(cfg.GenerationPath(), cfg.GenerationSheet, generationHeaderOffset); err != nil {
		return in, err
	}
	if in.Emissions, err = readOne(cfg.EmissionsPath(), sheetEmissions, 0); err != nil {
		return in, err
	}
	return in, nil
}

// Transform builds every tidy table from the raw inputs. ppiFill replaces
// missing price indices.
func Transform(in Inputs, ppiFill float64) ([]Output, error) {
	recc, err := UnpivotRecommendations(in.Recc)
	if err != nil {
		return nil, err
	}
	assess, err := UnpivotAssessments(in.Assess)
	if err != nil {
		return nil, err
	}
	ppi, err := UnpivotPPI(in.PPI)
	if err != nil {
		return nil, err
	}
	emissions, err := UnpivotEmissions(in.Emissions)
	if err != nil {
		return nil, err
	}
	nullNAICS, err := NullNAICSEnergy(in.Assess, in.Recc)
	if err != nil {
		return nil, err
	}

	return []Output{
		{File: FileAssessTidy, Table: CleanAssessments(assess)},
		{File: FileReccTidy, Table: CleanRecommendations(recc)},
		{File: FilePPITidy, Table: CleanPPI(ppi, ppiFill)},
		{File: FileGeneration, Table: CleanGeneration(in.Generation)},
		{File: FileEmissions, Table: CleanEmissions(emissions)},
		{File: FileNullNAICS, Table: nullNAICS},
	}, nil
}

func loadIAC(wb *Workbook) (assess, recc *internal.Table, err error) {
	if recc, err = wb.ConcatSheets(sheetReccPrefix, ColRECC); err != nil {
		return nil, nil, err
	}
	if assess, err = wb.ReadSheet(sheetAssess, 0); err != nil {
		return nil, nil, err
	}
	return assess, recc, nil
}

func readOne(path, sheet string, headerOffset int) (*internal.Table, error) {
	wb, err := LoadWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.ReadSheet(sheet, headerOffset)
}

func outputName(file string) string {
	return strings.TrimSuffix(strings.TrimSuffix(file, ".csv"), ".xlsx")
}
