package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/vbalak/kanjibot/internal/app/seeder/jmdict"
	"github.com/vbalak/kanjibot/internal/app/seeder/kanjidic"
	"github.com/vbalak/kanjibot/internal/app/seeder/kradfile"
	"github.com/vbalak/kanjibot/internal/domain"
)

// allPhases defines the canonical execution order. Radicals must run
// before kanji: kanji rows reference radicals by position.
var allPhases = []string{"radicals", "kanji", "words"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the 3-phase import into an empty database.
type Pipeline struct {
	log     *slog.Logger
	repo    ImportRepo
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo ImportRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "seeder"),
		repo:    repo,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed
// phases run (still in canonical order).
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "radicals":
			result = p.runRadicals(ctx)
		case "kanji":
			result = p.runKanji(ctx)
		case "words":
			result = p.runWords(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// runRadicals loads the classical radicals, one rune each, preserving
// file order.
func (p *Pipeline) runRadicals(ctx context.Context) PhaseResult {
	raw, err := os.ReadFile(p.cfg.RadicalsPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read radicals: %w", err)}
	}

	var radicals []string
	for _, r := range strings.TrimSpace(string(raw)) {
		if r == '\n' || r == '\r' || r == ' ' {
			continue
		}
		radicals = append(radicals, string(r))
	}

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(radicals)}
	}

	inserted, err := p.repo.InsertRadicals(ctx, radicals)
	if err != nil {
		return PhaseResult{Err: err}
	}

	return PhaseResult{Inserted: inserted}
}

// runKanji streams kanjidic2 records, attaching krad decompositions.
// A record that fails to insert is logged and skipped; the stream
// continues.
func (p *Pipeline) runKanji(ctx context.Context) PhaseResult {
	components, err := p.loadComponents()
	if err != nil {
		return PhaseResult{Err: err}
	}

	f, err := os.Open(p.cfg.KanjidicPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open kanjidic: %w", err)}
	}
	defer f.Close()

	var result PhaseResult
	err = kanjidic.Parse(f, func(k kanjidic.Kanji) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if p.cfg.DryRun {
			result.Skipped++
			return nil
		}

		record := domain.KanjiImport{
			Literal:        k.Literal,
			Meanings:       k.Meanings,
			OnReadings:     k.OnReadings,
			KunReadings:    k.KunReadings,
			NanoriReadings: k.Nanori,
			Components:     components[k.Literal],
			RadicalNumber:  k.RadicalNumber,
			Grade:          k.Grade,
			StrokeCount:    k.StrokeCount,
			Frequency:      k.Frequency,
			JLPTLevel:      k.JLPTLevel,
		}

		if err := p.repo.InsertKanji(ctx, record); err != nil {
			result.Errors++
			p.log.Warn("kanji insert failed",
				slog.String("literal", k.Literal),
				slog.String("error", err.Error()),
			)
			return nil
		}

		result.Inserted++
		return nil
	})
	if err != nil {
		result.Err = err
	}

	return result
}

// loadComponents merges kradfile2 over kradfile. Either file may be
// absent; decomposition is optional data.
func (p *Pipeline) loadComponents() (map[string][]string, error) {
	components := make(map[string][]string)

	for _, path := range []string{p.cfg.KradfilePath, p.cfg.Kradfile2Path} {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			p.log.Warn("krad file missing", slog.String("path", path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}

		parsed, err := kradfile.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		components = kradfile.Merge(components, parsed)
	}

	return components, nil
}

// runWords streams JMdict entries. Same failure policy as runKanji.
func (p *Pipeline) runWords(ctx context.Context) PhaseResult {
	f, err := os.Open(p.cfg.JMdictPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open jmdict: %w", err)}
	}
	defer f.Close()

	var result PhaseResult
	err = jmdict.Parse(f, func(e jmdict.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if p.cfg.DryRun {
			result.Skipped++
			return nil
		}

		record := domain.WordImport{SequenceNumber: e.SequenceNumber}
		for _, w := range e.Wordings {
			record.Wordings = append(record.Wordings, domain.Wording{Text: w.Text, Info: w.Info})
		}
		for _, r := range e.Readings {
			record.Readings = append(record.Readings, domain.Reading{Text: r.Text, Info: r.Info})
		}
		for _, s := range e.Senses {
			record.Senses = append(record.Senses, domain.Sense{
				PartsOfSpeech: s.PartsOfSpeech,
				Fields:        s.Fields,
				Misc:          s.Misc,
				Glosses:       s.Glosses,
			})
		}

		if err := p.repo.InsertWord(ctx, record); err != nil {
			result.Errors++
			p.log.Warn("word insert failed",
				slog.Int64("sequence", e.SequenceNumber),
				slog.String("error", err.Error()),
			)
			return nil
		}

		result.Inserted++
		return nil
	})
	if err != nil {
		result.Err = err
	}

	return result
}
