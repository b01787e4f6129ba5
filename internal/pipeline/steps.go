package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aqwel-ai/aion/internal/code"
	"github.com/aqwel-ai/aion/internal/config"
	"github.com/aqwel-ai/aion/internal/embed"
	"github.com/aqwel-ai/aion/internal/fileutil"
	"github.com/aqwel-ai/aion/internal/model"
	"github.com/aqwel-ai/aion/internal/scan"
	"github.com/aqwel-ai/aion/internal/textutil"
)

// CollectStep walks the target path and loads eligible files into the report
// as documents.
//
// Design decision: Collection is a separate step because:
// 1. It's the foundation every other step builds on
// 2. Ignore patterns and size limits apply once, in one place
// 3. Later steps can assume documents are loaded and classified
type CollectStep struct {
	// ignorePatterns are glob patterns for paths to skip.
	ignorePatterns []string

	// maxFileSize skips files larger than this many bytes.
	maxFileSize int64

	// maxFiles caps how many files are collected.
	maxFiles int

	// rules holds per-path overrides applied on top of the global
	// ignore patterns and size limit.
	rules *config.File

	// logger for structured logging.
	logger *slog.Logger
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithIgnorePatterns sets glob patterns for paths to skip.
func WithIgnorePatterns(patterns []string) CollectStepOption {
	return func(s *CollectStep) {
		s.ignorePatterns = patterns
	}
}

// WithMaxFileSize sets the per-file size limit in bytes.
func WithMaxFileSize(size int64) CollectStepOption {
	return func(s *CollectStep) {
		s.maxFileSize = size
	}
}

// WithMaxFiles caps the number of collected files.
func WithMaxFiles(n int) CollectStepOption {
	return func(s *CollectStep) {
		s.maxFiles = n
	}
}

// WithCollectRules applies per-path rule overrides during collection.
func WithCollectRules(rules *config.File) CollectStepOption {
	return func(s *CollectStep) {
		s.rules = rules
	}
}

// WithCollectLogger sets a custom logger for the collect step.
func WithCollectLogger(logger *slog.Logger) CollectStepOption {
	return func(s *CollectStep) {
		s.logger = logger
	}
}

// NewCollectStep creates a new file collection step.
func NewCollectStep(opts ...CollectStepOption) *CollectStep {
	s := &CollectStep{
		ignorePatterns: config.DefaultIgnorePatterns,
		maxFileSize:    config.DefaultMaxFileSize,
		maxFiles:       config.DefaultMaxFiles,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do executes the collection step.
func (s *CollectStep) Do(ctx context.Context, report *model.Report) error {
	files, skipped, err := fileutil.CollectFiles(report.Target, fileutil.CollectOptions{
		IgnorePatterns: s.ignorePatterns,
		MaxFileSize:    s.walkSizeLimit(),
		MaxFiles:       s.maxFiles,
	})
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}

	for _, path := range skipped {
		reason := "unreadable"
		if info, err := fileutil.Info(path); err == nil && s.maxFileSize > 0 && info.Size > s.maxFileSize {
			reason = fmt.Sprintf("exceeds size limit (%d bytes)", s.maxFileSize)
			report.AddFinding(model.NewFinding("oversized_file", "Oversized File Skipped", "", path))
		}
		report.AddSkipped(path, reason)
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.rules != nil {
			rule := s.rules.RuleForPath(file.RelPath)
			if fileutil.MatchesAny(rule.IgnorePatterns, file.RelPath) {
				continue
			}
			if limit := s.sizeLimitFor(rule); limit > 0 && file.Size > limit {
				report.AddFinding(model.NewFinding("oversized_file", "Oversized File Skipped", "", file.RelPath))
				report.AddSkipped(file.RelPath, fmt.Sprintf("exceeds size limit (%d bytes)", limit))
				continue
			}
		}

		raw, err := fileutil.Read(file.Path)
		if err != nil {
			s.logger.Warn("failed to read file", "path", file.Path, "error", err)
			report.AddSkipped(file.RelPath, "unreadable")
			continue
		}

		doc := model.NewDocument(file.RelPath, raw)

		switch doc.Kind {
		case model.KindImage, model.KindBinary:
			// Raw bytes only; no snapshot
		default:
			if !textutil.IsText(raw) {
				doc.Kind = model.KindBinary
				doc.SourceLanguage = ""
				report.AddFinding(model.NewFinding("non_utf8_file", "Non-UTF-8 File", "", doc.Path))
				break
			}
			snapshot, truncated := clipSnapshot(string(raw), model.MaxSnapshotSize)
			doc.Truncated = truncated
			doc.Snapshot = snapshot
			doc.Lines = textutil.CountLines(snapshot)
		}

		report.AddDocument(doc)
	}

	s.logger.Info("collection completed",
		"documents", len(report.Documents),
		"skipped", len(report.SkippedFiles),
	)

	return nil
}

// walkSizeLimit is the size limit passed to the directory walk. Rules
// may raise the limit for their subtree, so the walk must keep every
// file the most permissive rule would accept; the per-file check in Do
// then enforces each path's own limit.
func (s *CollectStep) walkSizeLimit() int64 {
	limit := s.maxFileSize
	if s.rules == nil {
		return limit
	}
	if s.rules.Defaults.MaxFileSize > limit {
		limit = s.rules.Defaults.MaxFileSize
	}
	for _, rule := range s.rules.Rules {
		if rule.MaxFileSize > limit {
			limit = rule.MaxFileSize
		}
	}
	return limit
}

// sizeLimitFor returns the size limit governing one file.
func (s *CollectStep) sizeLimitFor(rule config.RuleConfig) int64 {
	if rule.MaxFileSize > 0 {
		return rule.MaxFileSize
	}
	return s.maxFileSize
}

// clipSnapshot truncates s to at most limit bytes without cutting a
// multi-byte rune in half.
func clipSnapshot(s string, limit int) (string, bool) {
	if len(s) <= limit {
		return s, false
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

// TextStatsStep computes text statistics for text and code documents.
//
// Design decision: Text statistics are separate from collection because:
// 1. They can be skipped for code-only or watch runs
// 2. Language detection is comparatively expensive
// 3. HTML extraction belongs with text concerns, not file loading
type TextStatsStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// TextStatsStepOption configures a TextStatsStep.
type TextStatsStepOption func(*TextStatsStep)

// WithTextStatsLogger sets a custom logger for the text stats step.
func WithTextStatsLogger(logger *slog.Logger) TextStatsStepOption {
	return func(s *TextStatsStep) {
		s.logger = logger
	}
}

// NewTextStatsStep creates a new text statistics step.
func NewTextStatsStep(opts ...TextStatsStepOption) *TextStatsStep {
	s := &TextStatsStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *TextStatsStep) Name() string {
	return "text_stats"
}

// Do executes the text statistics step.
func (s *TextStatsStep) Do(ctx context.Context, report *model.Report) error {
	for _, doc := range report.Documents {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if doc.Snapshot == "" {
			continue
		}

		text := doc.Snapshot

		// HTML files are measured on their visible text, not markup
		ext := strings.ToLower(filepath.Ext(doc.Path))
		if ext == ".html" || ext == ".htm" {
			if extracted, err := textutil.ExtractText(text); err == nil {
				text = extracted
			}
		}

		stats := &model.TextStats{
			Words:       textutil.CountWords(text),
			Characters:  textutil.CountCharacters(text),
			Sentences:   textutil.CountSentences(text),
			UniqueWords: textutil.UniqueWords(text),
		}

		// Natural language detection only makes sense for prose
		if doc.Kind == model.KindText {
			tag, confidence := textutil.DetectLanguage(text)
			stats.Language = tag.String()
			stats.LanguageConfidence = confidence
		}

		doc.TextStats = stats
	}

	return nil
}

// CodeAnalysisStep extracts structure and complexity metrics from source
// code documents and reports code smells as findings.
type CodeAnalysisStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// CodeAnalysisStepOption configures a CodeAnalysisStep.
type CodeAnalysisStepOption func(*CodeAnalysisStep)

// WithCodeAnalysisLogger sets a custom logger for the code analysis step.
func WithCodeAnalysisLogger(logger *slog.Logger) CodeAnalysisStepOption {
	return func(s *CodeAnalysisStep) {
		s.logger = logger
	}
}

// NewCodeAnalysisStep creates a new code analysis step.
func NewCodeAnalysisStep(opts ...CodeAnalysisStepOption) *CodeAnalysisStep {
	s := &CodeAnalysisStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CodeAnalysisStep) Name() string {
	return "code_analysis"
}

// smellTitles maps smell types to human-readable finding titles.
var smellTitles = map[string]string{
	"long_function": "Long Function",
	"deep_nesting":  "Deeply Nested Code",
	"magic_numbers": "Magic Number Cluster",
	"long_lines":    "Overlong Lines",
	"todo_comment":  "TODO Marker",
	"bare_except":   "Bare Except Clause",
}

// Do executes the code analysis step.
func (s *CodeAnalysisStep) Do(ctx context.Context, report *model.Report) error {
	analyzed := 0
	for _, doc := range report.Documents {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if doc.Kind != model.KindCode || doc.Snapshot == "" {
			continue
		}

		doc.CodeStats = code.AnalyzeComplexity(doc.Snapshot, doc.SourceLanguage)
		analyzed++

		for _, smell := range code.FindCodeSmells(doc.Snapshot, doc.SourceLanguage) {
			location := doc.Path
			if smell.Location != "" {
				location = doc.Path + ":" + smell.Location
			}
			title, ok := smellTitles[smell.Type]
			if !ok {
				title = "Code Smell"
			}
			f := model.NewFinding(smell.Type, title, smell.Description, location)
			report.AddFinding(f)
		}
	}

	s.logger.Info("code analysis completed", "files_analyzed", analyzed)
	return nil
}

// SensitiveDataStep runs the sensitive-data analyzers on collected
// documents.
//
// Design decision: Sensitive-data analysis is a separate step because:
// 1. It operates on accumulated data from previous steps
// 2. It has its own configuration (which analyzers to run)
// 3. Its results are the primary security findings
type SensitiveDataStep struct {
	// analyzer is the main analyzer coordinator.
	analyzer *scan.Analyzer

	// rules disables analyzers per document path when set.
	rules *config.File

	// logger for structured logging.
	logger *slog.Logger
}

// SensitiveDataStepOption configures a SensitiveDataStep.
type SensitiveDataStepOption func(*SensitiveDataStep)

// WithSensitiveDataLogger sets a custom logger for the step.
func WithSensitiveDataLogger(logger *slog.Logger) SensitiveDataStepOption {
	return func(s *SensitiveDataStep) {
		s.logger = logger
	}
}

// WithAnalyzer replaces the default analyzer coordinator.
func WithAnalyzer(analyzer *scan.Analyzer) SensitiveDataStepOption {
	return func(s *SensitiveDataStep) {
		s.analyzer = analyzer
	}
}

// WithScanRules applies per-path analyzer rules. Documents whose
// governing rule disables an analyzer are checked by a coordinator
// with that analyzer removed.
func WithScanRules(rules *config.File) SensitiveDataStepOption {
	return func(s *SensitiveDataStep) {
		s.rules = rules
	}
}

// NewSensitiveDataStep creates a new sensitive-data analysis step.
func NewSensitiveDataStep(opts ...SensitiveDataStepOption) *SensitiveDataStep {
	s := &SensitiveDataStep{
		analyzer: scan.NewAnalyzer(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SensitiveDataStep) Name() string {
	return "sensitive_data"
}

// Do executes the sensitive-data analysis step.
func (s *SensitiveDataStep) Do(ctx context.Context, report *model.Report) error {
	if len(report.Documents) == 0 {
		s.logger.Debug("skipping sensitive-data analysis, no documents collected")
		return nil
	}

	total := 0
	for _, group := range s.groupDocuments(report.Documents) {
		data := &scan.AnalysisData{
			Target:    report.Target,
			Documents: group.documents,
			Report:    report,
		}

		findings, err := group.analyzer.Analyze(ctx, data)
		if err != nil {
			// Non-fatal: return partial results
			s.logger.Warn("sensitive-data analysis completed with error", "error", err)
		}

		for _, f := range findings {
			report.AddFinding(f)
		}
		total += len(findings)
	}

	s.logger.Info("sensitive-data analysis completed",
		"findings_count", total,
	)

	return nil
}

// analyzerGroup is a set of documents sharing one analyzer configuration.
type analyzerGroup struct {
	analyzer  *scan.Analyzer
	documents []*model.Document
}

// groupDocuments partitions documents by the analyzer set their rule
// leaves enabled. Without rules there is a single group using the
// step's own analyzer. Groups come back in a stable order so findings
// are deterministic.
func (s *SensitiveDataStep) groupDocuments(docs []*model.Document) []analyzerGroup {
	if s.rules == nil {
		return []analyzerGroup{{analyzer: s.analyzer, documents: docs}}
	}

	byKey := make(map[string][]*model.Document)
	disabledByKey := make(map[string][]string)
	for _, doc := range docs {
		rule := s.rules.RuleForPath(doc.Path)
		names := append([]string(nil), rule.DisabledAnalyzers...)
		sort.Strings(names)
		key := strings.Join(names, ",")
		byKey[key] = append(byKey[key], doc)
		disabledByKey[key] = names
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]analyzerGroup, 0, len(keys))
	for _, key := range keys {
		analyzer := s.analyzer
		if names := disabledByKey[key]; len(names) > 0 {
			analyzer = scan.NewAnalyzer(scan.WithDisabledAnalyzers(names))
		}
		groups = append(groups, analyzerGroup{analyzer: analyzer, documents: byKey[key]})
	}
	return groups
}

// EmbeddingStore persists embeddings produced by the embed step.
// *database.ArchiveDB satisfies this interface.
type EmbeddingStore interface {
	SaveEmbedding(ctx context.Context, emb *model.Embedding) (int64, error)
}

// EmbedStep embeds text and code documents into feature-hashed vectors.
// Embeddings are kept on the step and optionally persisted to a store.
type EmbedStep struct {
	// embedder converts snapshots into vectors.
	embedder *embed.Embedder

	// store receives embeddings when set.
	store EmbeddingStore

	// embeddings holds everything produced during the run.
	embeddings []*model.Embedding

	// logger for structured logging.
	logger *slog.Logger
}

// EmbedStepOption configures an EmbedStep.
type EmbedStepOption func(*EmbedStep)

// WithEmbedder replaces the default embedder.
func WithEmbedder(embedder *embed.Embedder) EmbedStepOption {
	return func(s *EmbedStep) {
		s.embedder = embedder
	}
}

// WithEmbeddingStore sets a store that receives each embedding.
func WithEmbeddingStore(store EmbeddingStore) EmbedStepOption {
	return func(s *EmbedStep) {
		s.store = store
	}
}

// WithEmbedLogger sets a custom logger for the embed step.
func WithEmbedLogger(logger *slog.Logger) EmbedStepOption {
	return func(s *EmbedStep) {
		s.logger = logger
	}
}

// NewEmbedStep creates a new embedding step.
func NewEmbedStep(opts ...EmbedStepOption) (*EmbedStep, error) {
	embedder, err := embed.NewEmbedder()
	if err != nil {
		return nil, err
	}

	s := &EmbedStep{
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Name returns the step name.
func (s *EmbedStep) Name() string {
	return "embed"
}

// Embeddings returns the embeddings produced by the last run.
func (s *EmbedStep) Embeddings() []*model.Embedding {
	return s.embeddings
}

// Do executes the embedding step.
func (s *EmbedStep) Do(ctx context.Context, report *model.Report) error {
	s.embeddings = s.embeddings[:0]

	for _, doc := range report.Documents {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if doc.Snapshot == "" {
			continue
		}

		emb, err := s.embedder.EmbedText(doc.Snapshot)
		if err != nil {
			s.logger.Warn("failed to embed document", "path", doc.Path, "error", err)
			continue
		}
		emb.Source = doc.Path

		if s.store != nil {
			if _, err := s.store.SaveEmbedding(ctx, emb); err != nil {
				s.logger.Warn("failed to store embedding", "path", doc.Path, "error", err)
			}
		}
		s.embeddings = append(s.embeddings, emb)
	}

	s.logger.Info("embedding completed", "embeddings", len(s.embeddings))
	return nil
}

// SummaryStep builds the curated summary from everything the earlier steps
// accumulated. It should run last.
type SummaryStep struct{}

// NewSummaryStep creates a new summary step.
func NewSummaryStep() *SummaryStep {
	return &SummaryStep{}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, report *model.Report) error {
	report.Summary = model.NewSummary(report)
	return nil
}

// DefaultPipeline creates a pipeline with all standard analysis steps
// configured from cfg.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want all checks
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
func DefaultPipeline(cfg *config.Config, pipelineOpts ...Option) (*Pipeline, error) {
	p := New(pipelineOpts...)

	collectOpts := []CollectStepOption{
		WithIgnorePatterns(cfg.EffectiveIgnorePatterns()),
		WithMaxFileSize(cfg.MaxFileSize),
		WithMaxFiles(cfg.MaxFiles),
	}
	scanStepOpts := []SensitiveDataStepOption{}
	if cfg.Rules != nil {
		collectOpts = append(collectOpts, WithCollectRules(cfg.Rules))
		scanStepOpts = append(scanStepOpts, WithScanRules(cfg.Rules))
	}

	embedStep, err := NewEmbedStep(WithEmbedder(mustEmbedder(cfg.EmbedDimension)))
	if err != nil {
		return nil, err
	}

	p.AddSteps(
		NewCollectStep(collectOpts...),
		NewTextStatsStep(),
		NewCodeAnalysisStep(),
		NewSensitiveDataStep(scanStepOpts...),
		embedStep,
		NewSummaryStep(),
	)

	return p, nil
}

// mustEmbedder builds an embedder for the configured dimension, falling
// back to the default dimension when the value is invalid. Config
// validation rejects invalid dimensions before this point.
func mustEmbedder(dimension int) *embed.Embedder {
	embedder, err := embed.NewEmbedder(embed.WithDimension(dimension))
	if err != nil {
		embedder, _ = embed.NewEmbedder()
	}
	return embedder
}
