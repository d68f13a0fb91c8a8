package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"catalogprep/internal/artifactcache"
	"catalogprep/internal/dataset"
	"catalogprep/internal/figures"
	"catalogprep/internal/fileutil"
	"catalogprep/internal/frequency"
	"catalogprep/internal/imagecheck"
	"catalogprep/internal/language"
	"catalogprep/internal/logging"
	"catalogprep/internal/services"
	"catalogprep/internal/stage"
	"catalogprep/internal/textnorm"
)

// languageRuleVersion versions the language artifact. Bump it when the
// detector or the label table changes.
const languageRuleVersion = "whatlang-v1"

type base struct {
	name   string
	logger *slog.Logger
}

func (b *base) Name() string { return b.name }

func (b *base) SetLogger(logger *slog.Logger) { b.logger = logger }

func (b *base) log() *slog.Logger {
	if b.logger == nil {
		return logging.NewNop()
	}
	return b.logger
}

// loadStage reads the features and labels tables and aligns them.
type loadStage struct {
	base
	featuresPath string
	labelsPath   string
}

func (s *loadStage) Execute(ctx context.Context, st *stage.State) error {
	table, err := dataset.LoadFeatures(s.featuresPath)
	if err != nil {
		return wrapInput(s.name, "load features", err)
	}
	labels, err := dataset.LoadLabels(s.labelsPath)
	if err != nil {
		return wrapInput(s.name, "load labels", err)
	}
	codes, err := dataset.Align(table, labels)
	if err != nil {
		return services.Wrap(services.ErrValidation, s.name, "align", "features and labels disagree", err)
	}
	hash, err := fileutil.HashFiles(s.featuresPath, s.labelsPath)
	if err != nil {
		return services.Wrap(services.ErrTransient, s.name, "hash inputs", "", err)
	}
	st.Features = table
	st.Labels = labels
	st.Codes = codes
	st.RawHash = hash
	s.log().Info("dataset loaded",
		logging.String(logging.FieldEventType, "dataset_loaded"),
		logging.Int("records", table.Len()),
		logging.Bool("fused", table.Fused),
	)
	return ctx.Err()
}

func (s *loadStage) HealthCheck(context.Context) stage.Health {
	for _, path := range []string{s.featuresPath, s.labelsPath} {
		if _, err := os.Stat(path); err != nil {
			return stage.Unhealthy(s.name, fmt.Sprintf("%s: %v", path, err))
		}
	}
	return stage.Healthy(s.name)
}

func wrapInput(stageName, op string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return services.Wrap(services.ErrNotFound, stageName, op, "input file missing", err)
	}
	return services.Wrap(services.ErrValidation, stageName, op, "unreadable input", err)
}

// imagesStage validates every file in the image directory.
type imagesStage struct {
	base
	dir         string
	expectation imagecheck.Expectation
}

func (s *imagesStage) Execute(ctx context.Context, st *stage.State) error {
	summary, err := imagecheck.ValidateDir(ctx, s.dir, s.expectation, s.log())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return services.Wrap(services.ErrNotFound, s.name, "scan", "image directory unreadable", err)
	}
	st.Images = summary
	s.log().Info("images validated",
		logging.String(logging.FieldEventType, "images_validated"),
		logging.Int("checked", summary.Checked),
		logging.Int("with_issues", summary.FilesWithIssues()),
	)
	return nil
}

func (s *imagesStage) HealthCheck(context.Context) stage.Health {
	info, err := os.Stat(s.dir)
	if err != nil {
		return stage.Unhealthy(s.name, err.Error())
	}
	if !info.IsDir() {
		return stage.Unhealthy(s.name, s.dir+" is not a directory")
	}
	return stage.Healthy(s.name)
}

// fusionStage builds the descriptif column and reports dataset statistics.
type fusionStage struct {
	base
	imageDir string
}

func (s *fusionStage) Execute(ctx context.Context, st *stage.State) error {
	if st.Features == nil {
		return errors.New("features not loaded")
	}
	if !st.Features.Fused {
		dataset.Fuse(st.Features)
	}

	if s.imageDir != "" {
		missing := 0
		for i, rec := range st.Features.Records {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if !imagecheck.Exists(s.imageDir, rec.ImageID, rec.ProductID) {
				missing++
			}
		}
		st.MissingImages = missing
		if missing > 0 {
			logging.WarnWithContext(s.log(), "records without image file", "images_missing",
				logging.Int("missing", missing),
				logging.Int("records", st.Features.Len()),
				logging.String(logging.FieldImpact, "records kept; image features will be absent"),
			)
		}
	}

	dist := st.Labels.Distribution()
	for _, lc := range dist {
		s.log().Debug("label count",
			logging.String("prdtypecode", lc.Code),
			logging.Int("count", lc.Count),
		)
	}
	s.log().Info("descriptions fused",
		logging.String(logging.FieldEventType, "fusion_complete"),
		logging.Int("records", st.Features.Len()),
		logging.Int("classes", len(dist)),
	)
	return nil
}

func (s *fusionStage) HealthCheck(context.Context) stage.Health { return stage.Healthy(s.name) }

// languageStage classifies the language of every descriptif.
type languageStage struct {
	base
	classifier *language.Classifier
	cache      artifactStore
}

func (s *languageStage) Execute(ctx context.Context, st *stage.State) error {
	index := recordIndex(st.Features)
	key := artifactcache.Key{Stage: s.name, RuleVersion: languageRuleVersion, InputHash: st.RawHash}

	var labels []string
	hit, err := cachedPayload(ctx, s.cache, key, s.log(),
		func(payload []byte) error {
			got, err := decodeColumn(payload, dataset.ColumnLanguage, index)
			if err != nil {
				return err
			}
			labels = got
			return nil
		},
		func() ([]byte, int, error) {
			got, err := s.classifier.ClassifyAll(ctx, st.Features.Texts())
			if err != nil {
				return nil, 0, err
			}
			labels = got
			var buf bytes.Buffer
			if err := dataset.WriteColumn(&buf, dataset.ColumnLanguage, index, got); err != nil {
				return nil, 0, err
			}
			return buf.Bytes(), len(got), nil
		},
	)
	if err != nil {
		return err
	}
	st.RecordCache(s.name, hit)
	st.Languages = labels
	st.LanguageReport = language.BuildReport(labels)

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "language_report"),
		logging.Int("records", st.LanguageReport.Total),
	}
	for i, c := range st.LanguageReport.Counts {
		if i == 5 {
			break
		}
		attrs = append(attrs, logging.Int(c.Label, c.Count))
	}
	s.log().Info("language distribution", logging.Args(attrs...)...)
	return nil
}

func (s *languageStage) HealthCheck(context.Context) stage.Health {
	if s.classifier == nil {
		return stage.Unhealthy(s.name, "no language detector")
	}
	return stage.Healthy(s.name)
}

// normalizeStage cleans every descriptif with the configured step list.
type normalizeStage struct {
	base
	normalizer *textnorm.Pipeline
	cache      artifactStore
}

func (s *normalizeStage) Execute(ctx context.Context, st *stage.State) error {
	key := artifactcache.Key{Stage: s.name, RuleVersion: s.normalizer.RuleSetVersion(), InputHash: st.RawHash}
	index := recordIndex(st.Features)

	var cleaned []string
	hit, err := cachedPayload(ctx, s.cache, key, s.log(),
		func(payload []byte) error {
			table, err := dataset.ReadFeatures(bytes.NewReader(payload))
			if err != nil {
				return err
			}
			if err := sameIndex(recordIndex(table), index); err != nil {
				return err
			}
			cleaned = table.Texts()
			return nil
		},
		func() ([]byte, int, error) {
			texts := st.Features.Texts()
			out := make([]string, len(texts))
			for i, text := range texts {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return nil, 0, err
					}
				}
				out[i] = s.normalizer.Normalize(text)
			}
			cleaned = out
			snapshot := cloneTable(st.Features)
			if err := snapshot.SetTexts(out); err != nil {
				return nil, 0, err
			}
			payload, err := dataset.EncodeFeatures(snapshot)
			return payload, len(out), err
		},
	)
	if err != nil {
		return err
	}
	st.RecordCache(s.name, hit)
	if err := st.Features.SetTexts(cleaned); err != nil {
		return err
	}

	empty := 0
	for _, text := range cleaned {
		if text == "" {
			empty++
		}
	}
	s.log().Info("descriptions normalized",
		logging.String(logging.FieldEventType, "normalize_complete"),
		logging.String("rule_version", key.RuleVersion),
		logging.Int("records", len(cleaned)),
		logging.Int("empty_after_cleaning", empty),
	)
	return nil
}

func (s *normalizeStage) HealthCheck(context.Context) stage.Health {
	if s.normalizer == nil {
		return stage.Unhealthy(s.name, "normalizer not configured")
	}
	return stage.Healthy(s.name)
}

// frequencyStage aggregates token counts per label.
type frequencyStage struct {
	base
}

func (s *frequencyStage) Execute(ctx context.Context, st *stage.State) error {
	if len(st.Codes) != st.Features.Len() {
		return fmt.Errorf("have %d labels for %d records", len(st.Codes), st.Features.Len())
	}
	m := &frequency.Matrix{}
	for i, text := range st.Features.Texts() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		m.Add(st.Codes[i], text)
	}
	st.Matrix = m
	s.log().Info("token frequencies aggregated",
		logging.String(logging.FieldEventType, "frequency_complete"),
		logging.Int("classes", len(m.Labels())),
		logging.Int("vocabulary", len(m.Tokens())),
	)
	return nil
}

func (s *frequencyStage) HealthCheck(context.Context) stage.Health { return stage.Healthy(s.name) }

// figuresStage renders one chart per class into an empty figures directory.
type figuresStage struct {
	base
	dir      string
	topN     int
	renderer figures.Renderer
}

func (s *figuresStage) Execute(ctx context.Context, st *stage.State) error {
	if st.Matrix == nil {
		return errors.New("frequency matrix unavailable")
	}
	result, err := figures.GenerateIfEmpty(ctx, s.dir, st.Matrix, s.topN, s.renderer, s.log())
	st.Figures = result
	if err != nil {
		return services.Wrap(services.ErrTransient, s.name, "render", "", err)
	}
	if !result.Skipped {
		s.log().Info("figures rendered",
			logging.String(logging.FieldEventType, "figures_complete"),
			logging.Int("generated", result.Generated),
			logging.Int("empty_classes", len(result.Empty)),
		)
	}
	return nil
}

func (s *figuresStage) HealthCheck(context.Context) stage.Health {
	if s.renderer == nil {
		return stage.Unhealthy(s.name, "no renderer")
	}
	return stage.Healthy(s.name)
}

// splitStage writes the train and test partitions.
type splitStage struct {
	base
	dir   string
	ratio float64
	seed  uint64
}

func (s *splitStage) Execute(ctx context.Context, st *stage.State) error {
	part, err := dataset.Split(st.Features, st.Labels, s.ratio, s.seed)
	if err != nil {
		return services.Wrap(services.ErrValidation, s.name, "partition", "", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, s.name, "create output dir", s.dir, err)
	}
	if err := dataset.WritePartition(s.dir, part); err != nil {
		return services.Wrap(services.ErrTransient, s.name, "write partitions", s.dir, err)
	}
	st.Partition = part
	s.log().Info("dataset split",
		logging.String(logging.FieldEventType, "split_complete"),
		logging.Int("train", part.XTrain.Len()),
		logging.Int("test", part.XTest.Len()),
		logging.String("output_dir", s.dir),
	)
	return nil
}

func (s *splitStage) HealthCheck(context.Context) stage.Health {
	if s.ratio <= 0 || s.ratio >= 1 {
		return stage.Unhealthy(s.name, fmt.Sprintf("invalid test ratio %v", s.ratio))
	}
	return stage.Healthy(s.name)
}

func recordIndex(table *dataset.Table) []string {
	out := make([]string, table.Len())
	for i, rec := range table.Records {
		out[i] = rec.Index
	}
	return out
}

func cloneTable(table *dataset.Table) *dataset.Table {
	out := &dataset.Table{Records: make([]dataset.Record, len(table.Records)), Fused: table.Fused}
	copy(out.Records, table.Records)
	return out
}

func decodeColumn(payload []byte, name string, want []string) ([]string, error) {
	index, values, err := dataset.ReadColumn(bytes.NewReader(payload), name)
	if err != nil {
		return nil, err
	}
	if err := sameIndex(index, want); err != nil {
		return nil, err
	}
	return values, nil
}

func sameIndex(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("artifact has %d rows, dataset has %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("artifact row %d has index %q, dataset has %q", i, got[i], want[i])
		}
	}
	return nil
}
