package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/netex"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
)

// Properties read from base data GeoJSON
const (
	propName     = "name"
	propCityName = "Jméno"
)

// SuggestionInvalidator drops cached reconstructions after the data behind
// them changed.
type SuggestionInvalidator interface {
	InvalidateCities(ctx context.Context) error
}

// ImportUseCase загружает NeTEx цепочки и базовые слои, выгружает найденные станции
type ImportUseCase struct {
	chainRepo       repository.ChainRepository
	stationRepo     repository.StationRepository
	baseStationRepo repository.BaseStationRepository
	baseCityRepo    repository.BaseCityRepository
	invalidator     SuggestionInvalidator
	batchSize       int
	importDir       string
	logger          *zap.Logger
}

func NewImportUseCase(
	chainRepo repository.ChainRepository,
	stationRepo repository.StationRepository,
	baseStationRepo repository.BaseStationRepository,
	baseCityRepo repository.BaseCityRepository,
	invalidator SuggestionInvalidator,
	batchSize int,
	importDir string,
	logger *zap.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		chainRepo:       chainRepo,
		stationRepo:     stationRepo,
		baseStationRepo: baseStationRepo,
		baseCityRepo:    baseCityRepo,
		invalidator:     invalidator,
		batchSize:       batchSize,
		importDir:       importDir,
		logger:          logger,
	}
}

// Run выполняет задание из очереди импорта
func (uc *ImportUseCase) Run(ctx context.Context, job domain.ImportJob) (*domain.ImportResult, error) {
	path, err := uc.ResolvePath(job.Path)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Running import job",
		zap.String("job_id", job.JobID.String()),
		zap.String("kind", string(job.Kind)),
		zap.String("path", path))

	switch job.Kind {
	case domain.ImportNetex:
		return uc.ImportNetex(ctx, path, nil)
	case domain.ImportBaseStations:
		return uc.ImportBaseStations(ctx, path)
	case domain.ImportBaseCities:
		return uc.ImportBaseCities(ctx, path)
	default:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"kind": job.Kind})
	}
}

// ResolvePath ограничивает путь каталогом импорта, если он задан
func (uc *ImportUseCase) ResolvePath(path string) (string, error) {
	if uc.importDir == "" {
		return path, nil
	}

	root, err := filepath.Abs(uc.importDir)
	if err != nil {
		return "", fmt.Errorf("resolve import dir: %w", err)
	}
	full := filepath.Clean(filepath.Join(root, path))
	if filepath.IsAbs(path) {
		full = filepath.Clean(path)
	}
	if !within(root, full) {
		return "", errOutsideImportDir
	}

	// Симлинк внутри каталога может вести наружу
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolve import dir: %w", err)
	}
	realPath, err := filepath.EvalSymlinks(full)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return full, nil
	case err != nil:
		return "", fmt.Errorf("resolve import path: %w", err)
	case !within(realRoot, realPath):
		return "", errOutsideImportDir
	}
	return full, nil
}

var errOutsideImportDir = errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
	"path": "outside of import directory",
})

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ImportNetex извлекает цепочки из архива и заменяет ими все сохранённые цепочки
func (uc *ImportUseCase) ImportNetex(ctx context.Context, path string, progress netex.ProgressFunc) (*domain.ImportResult, error) {
	start := time.Now()

	var opts []netex.Option
	if progress != nil {
		opts = append(opts, netex.WithProgress(progress))
	}
	res, err := netex.ExtractFile(ctx, path, opts...)
	if err != nil {
		uc.logger.Error("NeTEx extraction failed", zap.String("path", path), zap.Error(err))
		return nil, errors.ErrImportFailed.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	failed := make([]string, len(res.Failed))
	for i, f := range res.Failed {
		failed[i] = f.Name
		uc.logger.Warn("Skipping unreadable NeTEx member",
			zap.String("member", f.Name),
			zap.Error(f.Err))
	}
	// Пустой результат не должен стирать сохранённые цепочки
	if res.Members == 0 || len(res.Failed) == res.Members {
		uc.logger.Error("No readable NeTEx member, keeping stored chains",
			zap.String("path", path),
			zap.Int("members", res.Members))
		return nil, errors.ErrImportFailed.WithDetails(map[string]interface{}{
			"reason":       "no readable NeTEx document",
			"members":      res.Members,
			"failed_files": failed,
		})
	}
	uc.warnSeparator(res.Chains)
	for _, hash := range res.Collisions {
		uc.logger.Warn("Chain identity collision, keeping first sequence", zap.String("chain_hash", hash))
	}

	if err := uc.chainRepo.ReplaceAll(ctx, res.Chains, uc.batchSize); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	result := &domain.ImportResult{
		Kind:         domain.ImportNetex,
		Members:      res.Members,
		FailedFiles:  failed,
		Chains:       len(res.Chains),
		ChainStops:   res.Chains.StopCount(),
		Collisions:   len(res.Collisions),
		DurationMSec: time.Since(start).Milliseconds(),
	}
	uc.logger.Info("NeTEx import finished",
		zap.Int("members", result.Members),
		zap.Int("failed", len(failed)),
		zap.Int("chains", result.Chains),
		zap.Int("chain_stops", result.ChainStops))
	return result, nil
}

// warnSeparator logs names that make chain identities ambiguous.
func (uc *ImportUseCase) warnSeparator(chains domain.Chains) {
	seen := make(map[string]struct{})
	for _, names := range chains {
		for _, n := range names {
			if !strings.Contains(n, domain.ChainSeparator) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			uc.logger.Warn("Stop name contains the chain separator", zap.String("name", n))
		}
	}
}

// ImportBaseStations заменяет базовый слой остановок точками из GeoJSON
func (uc *ImportUseCase) ImportBaseStations(ctx context.Context, path string) (*domain.ImportResult, error) {
	start := time.Now()
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	stations := make([]domain.BaseStation, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		point, ok := featurePoint(f)
		name := cleanName(f.Properties, propName)
		if !ok || name == "" {
			skipped++
			continue
		}
		stations = append(stations, domain.BaseStation{Name: name, Point: point})
	}

	if err := uc.baseStationRepo.ReplaceAll(ctx, stations, uc.batchSize); err != nil {
		return nil, err
	}

	return uc.baseResult(domain.ImportBaseStations, len(stations), skipped, start), nil
}

// ImportBaseCities заменяет слой городов; имя берётся из "Jméno" или "name"
func (uc *ImportUseCase) ImportBaseCities(ctx context.Context, path string) (*domain.ImportResult, error) {
	start := time.Now()
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	cities := make([]domain.BaseCity, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		point, ok := featurePoint(f)
		name := cleanName(f.Properties, propCityName)
		if name == "" {
			name = cleanName(f.Properties, propName)
		}
		if !ok || name == "" {
			skipped++
			continue
		}
		cities = append(cities, domain.BaseCity{Name: name, Point: point})
	}

	if err := uc.baseCityRepo.ReplaceAll(ctx, cities, uc.batchSize); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return uc.baseResult(domain.ImportBaseCities, len(cities), skipped, start), nil
}

func (uc *ImportUseCase) baseResult(kind domain.ImportKind, rows, skipped int, start time.Time) *domain.ImportResult {
	if skipped > 0 {
		uc.logger.Warn("Skipped features without point geometry or name",
			zap.String("kind", string(kind)),
			zap.Int("skipped", skipped))
	}
	uc.logger.Info("Base data import finished",
		zap.String("kind", string(kind)),
		zap.Int("rows", rows))
	return &domain.ImportResult{
		Kind:         kind,
		Rows:         rows,
		SkippedRows:  skipped,
		DurationMSec: time.Since(start).Milliseconds(),
	}
}

// ExportStations пишет все найденные станции как GeoJSON FeatureCollection
func (uc *ImportUseCase) ExportStations(ctx context.Context, w io.Writer) (int, error) {
	stations, err := uc.stationRepo.All(ctx)
	if err != nil {
		return 0, err
	}

	fc := geojson.NewFeatureCollection()
	for _, s := range stations {
		f := geojson.NewFeature(orb.Point{s.Lon, s.Lat})
		names := append([]string(nil), s.Names...)
		sort.Strings(names)
		f.Properties[propName] = names
		f.Properties["stop_id"] = s.StopID.String()
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("marshal stations: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("write stations: %w", err)
	}
	return len(stations), nil
}

func (uc *ImportUseCase) invalidate(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.InvalidateCities(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate cached suggestions", zap.Error(err))
	}
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrImportFailed.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.ErrImportFailed.WithDetails(map[string]interface{}{
			"reason": fmt.Sprintf("parse geojson: %v", err),
		})
	}
	return fc, nil
}

func featurePoint(f *geojson.Feature) (domain.Point, bool) {
	p, ok := f.Geometry.(orb.Point)
	if !ok {
		return domain.Point{}, false
	}
	point := domain.Point{Lat: p.Lat(), Lon: p.Lon()}
	return point, point.Valid()
}

// cleanName reads a name property; non-string values are formatted and
// quotes are dropped.
func cleanName(props geojson.Properties, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}
