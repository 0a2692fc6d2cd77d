package netex

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// MemberError records an archive member that could not be extracted.
type MemberError struct {
	Name string
	Err  error
}

func (e MemberError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// ArchiveResult is the merged outcome of extracting every document of an
// export.
type ArchiveResult struct {
	Chains     domain.Chains
	Members    int
	Failed     []MemberError
	Collisions []string
}

// ProgressFunc is called after every processed member.
type ProgressFunc func(done, total int)

type archiveOptions struct {
	progress ProgressFunc
}

// Option configures ExtractFile.
type Option func(*archiveOptions)

// WithProgress reports per-member progress.
func WithProgress(fn ProgressFunc) Option {
	return func(o *archiveOptions) {
		o.progress = fn
	}
}

// ExtractFile extracts chains from a zip archive of NeTEx documents or from
// a single XML document. Archive members that fail to parse are skipped and
// listed in ArchiveResult.Failed; the chains of the remaining members are
// merged by identity. A plain XML document that fails is returned as error.
func ExtractFile(ctx context.Context, path string, opts ...Option) (*ArchiveResult, error) {
	o := &archiveOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return extractDocument(path, o)
	}
	return extractArchive(ctx, path, o)
}

func extractDocument(path string, o *archiveOptions) (*ArchiveResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netex document: %w", err)
	}
	defer f.Close()

	chains, err := Extract(f)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	if o.progress != nil {
		o.progress(1, 1)
	}
	return &ArchiveResult{Chains: chains, Members: 1}, nil
}

func extractArchive(ctx context.Context, path string, o *archiveOptions) (*ArchiveResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open netex archive: %w", err)
	}
	defer zr.Close()

	members := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".xml") {
			continue
		}
		members = append(members, f)
	}

	res := &ArchiveResult{Chains: make(domain.Chains)}
	for i, f := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chains, err := extractMember(f)
		if err != nil {
			res.Failed = append(res.Failed, MemberError{Name: f.Name, Err: err})
		} else {
			res.Collisions = append(res.Collisions, res.Chains.Merge(chains)...)
		}
		res.Members++

		if o.progress != nil {
			o.progress(i+1, len(members))
		}
	}
	return res, nil
}

func extractMember(f *zip.File) (domain.Chains, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open member: %w", err)
	}
	defer rc.Close()
	return Extract(rc)
}
